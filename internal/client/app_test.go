package client

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-trip-keeper/internal/logger"
	"github.com/MKhiriev/go-trip-keeper/internal/mock"
	"github.com/MKhiriev/go-trip-keeper/internal/service"
	"github.com/MKhiriev/go-trip-keeper/internal/tui"
	"github.com/MKhiriev/go-trip-keeper/models"
)

type fakeUI struct {
	logins   int
	loginErr error
	// logouts holds the MainLoop answers in order; the last one repeats
	logouts []bool
	loops   int
}

func (u *fakeUI) LoginFlow(context.Context) (models.Session, error) {
	u.logins++
	if u.loginErr != nil {
		return models.Session{}, u.loginErr
	}
	return models.Session{AccessToken: "token", User: models.User{UserID: 1}}, nil
}

func (u *fakeUI) MainLoop(context.Context) (bool, error) {
	i := min(u.loops, len(u.logouts)-1)
	u.loops++
	return u.logouts[i], nil
}

type fakeWorker struct {
	runs, stops int
}

func (w *fakeWorker) Run()  { w.runs++ }
func (w *fakeWorker) Stop() { w.stops++ }

func newTestApp(t *testing.T, ui UI) (*App, *mock.MockClientAuthService, *mock.MockClientSyncService, *fakeWorker) {
	t.Helper()
	ctrl := gomock.NewController(t)
	auth := mock.NewMockClientAuthService(ctrl)
	sync := mock.NewMockClientSyncService(ctrl)
	bg := &fakeWorker{}

	services := &service.ClientServices{AuthService: auth, SyncService: sync}
	return NewApp(services, ui, bg, logger.Nop()), auth, sync, bg
}

func TestApp_RestoredSessionSkipsLogin(t *testing.T) {
	ui := &fakeUI{logouts: []bool{false}}
	app, auth, sync, bg := newTestApp(t, ui)

	auth.EXPECT().RestoreSession(gomock.Any()).Return(models.Session{AccessToken: "token"}, nil)
	sync.EXPECT().Wait()

	require.NoError(t, app.Run())
	assert.Zero(t, ui.logins)
	assert.Equal(t, 1, bg.runs)
	assert.Equal(t, 1, bg.stops)
}

func TestApp_LoginAfterExpiredSession(t *testing.T) {
	ui := &fakeUI{logouts: []bool{false}}
	app, auth, sync, _ := newTestApp(t, ui)

	auth.EXPECT().RestoreSession(gomock.Any()).Return(models.Session{}, service.ErrSessionExpired)
	sync.EXPECT().Wait()

	require.NoError(t, app.Run())
	assert.Equal(t, 1, ui.logins)
}

func TestApp_SignOutReturnsToLogin(t *testing.T) {
	ui := &fakeUI{logouts: []bool{true, false}}
	app, auth, sync, _ := newTestApp(t, ui)

	gomock.InOrder(
		auth.EXPECT().RestoreSession(gomock.Any()).Return(models.Session{AccessToken: "token"}, nil),
		auth.EXPECT().RestoreSession(gomock.Any()).Return(models.Session{}, service.ErrNoSession),
	)
	sync.EXPECT().Wait().Times(2)

	require.NoError(t, app.Run())
	assert.Equal(t, 1, ui.logins)
	assert.Equal(t, 2, ui.loops)
}

func TestApp_QuitFromLogin(t *testing.T) {
	ui := &fakeUI{loginErr: tui.ErrUserQuit}
	app, auth, _, bg := newTestApp(t, ui)

	auth.EXPECT().RestoreSession(gomock.Any()).Return(models.Session{}, service.ErrNoSession)

	require.NoError(t, app.Run())
	assert.Equal(t, 1, bg.stops)
}

func TestApp_LoginFailure(t *testing.T) {
	boom := errors.New("terminal gone")
	ui := &fakeUI{loginErr: boom}
	app, auth, _, _ := newTestApp(t, ui)

	auth.EXPECT().RestoreSession(gomock.Any()).Return(models.Session{}, errors.New("corrupt session row"))

	assert.ErrorIs(t, app.Run(), boom)
}
