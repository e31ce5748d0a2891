package service

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-trip-keeper/internal/config"
	"github.com/MKhiriev/go-trip-keeper/internal/logger"
	"github.com/MKhiriev/go-trip-keeper/models"
)

type fakeSES struct {
	input *ses.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(_ context.Context, params *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestSESMailer_Send(t *testing.T) {
	client := &fakeSES{}
	mailer := NewSESMailer(client, "noreply@trip-keeper.example", logger.Nop())

	err := mailer.Send(context.Background(), models.Mail{To: "ann@example.com", Subject: "Hi", Text: "plain"})
	require.NoError(t, err)

	require.NotNil(t, client.input)
	assert.Equal(t, "noreply@trip-keeper.example", aws.ToString(client.input.Source))
	assert.Equal(t, []string{"ann@example.com"}, client.input.Destination.ToAddresses)
	assert.Equal(t, "Hi", aws.ToString(client.input.Message.Subject.Data))
	assert.Equal(t, "plain", aws.ToString(client.input.Message.Body.Text.Data))
	assert.Nil(t, client.input.Message.Body.Html, "html part only when given")
}

func TestSESMailer_SendHTML(t *testing.T) {
	client := &fakeSES{}
	mailer := NewSESMailer(client, "noreply@trip-keeper.example", logger.Nop())

	require.NoError(t, mailer.Send(context.Background(), models.Mail{To: "ann@example.com", Text: "t", HTML: "<p>t</p>"}))
	require.NotNil(t, client.input.Message.Body.Html)
	assert.Equal(t, "<p>t</p>", aws.ToString(client.input.Message.Body.Html.Data))
}

func TestSESMailer_SendError(t *testing.T) {
	sesErr := errors.New("throttled")
	mailer := NewSESMailer(&fakeSES{err: sesErr}, "noreply@trip-keeper.example", logger.Nop())

	err := mailer.Send(context.Background(), models.Mail{To: "ann@example.com"})
	assert.ErrorIs(t, err, ErrMailNotSent)
	assert.ErrorIs(t, err, sesErr)
}

func TestNewMailer_WithoutSender(t *testing.T) {
	mailer, err := NewMailer(context.Background(), &config.StructuredConfig{}, logger.Nop())
	require.NoError(t, err)

	assert.IsType(t, &logMailer{}, mailer)
	assert.NoError(t, mailer.Send(context.Background(), models.Mail{To: "ann@example.com", Subject: "Hi"}))
}
