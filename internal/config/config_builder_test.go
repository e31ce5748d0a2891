package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

type fakeSSM struct {
	value *string
	err   error
	names []string
}

func (f *fakeSSM) GetParameter(_ context.Context, in *ssm.GetParameterInput, _ ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	f.names = append(f.names, aws.ToString(in.Name))
	if f.err != nil {
		return nil, f.err
	}
	return &ssm.GetParameterOutput{Parameter: &types.Parameter{Value: f.value}}, nil
}

func writeTempFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

// ── build ─────────────────────────────────────────────────────────────────────

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_FirstSourceWins verifies that an earlier non-zero value is not
// overwritten by later sources while zero fields are filled.
func TestBuild_FirstSourceWins(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{App: App{TokenIssuer: "env-issuer"}},
		&StructuredConfig{App: App{TokenIssuer: "file-issuer", Version: "1.0.0"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "env-issuer", cfg.App.TokenIssuer)
	assert.Equal(t, "1.0.0", cfg.App.Version)
}

func TestBuild_RejectsNegativeDurations(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{Workers: Workers{SyncTimeout: -time.Second}})

	_, err := b.build()
	assert.ErrorIs(t, err, ErrInvalidWorkerConfigs)
}

// ── sources ───────────────────────────────────────────────────────────────────

func TestWithDefaults_FillsZeroFields(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{Workers: Workers{SyncTimeout: 3 * time.Second}})

	cfg, err := b.withDefaults().build()
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, cfg.Workers.SyncTimeout)
	assert.Equal(t, DefaultProbeInterval, cfg.Workers.ProbeInterval)
	assert.Equal(t, DefaultMaxRetries, cfg.Workers.MaxRetries)
}

func TestWithFlags_BadFlag(t *testing.T) {
	b := newConfigBuilder()
	b.args = []string{"-unknown"}

	_, err := b.withFlags().build()
	require.Error(t, err)
}

func TestWithFile_PathFromEarlierSource(t *testing.T) {
	p := writeTempFile(t, "cfg.yaml", "app:\n  token_issuer: from-file\n")

	b := newConfigBuilder()
	b.args = []string{"-c", p}

	cfg, err := b.withFlags().withFile().build()
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.App.TokenIssuer)
	assert.Equal(t, p, cfg.FilePath)
}

func TestWithFile_MissingFile(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{FilePath: filepath.Join(t.TempDir(), "nope.json")})

	_, err := b.withFile().build()
	require.Error(t, err)
}

func TestWithFile_NoPathIsNoop(t *testing.T) {
	b := newConfigBuilder().withFile()
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

func TestWithSSM_LoadsYAMLParameter(t *testing.T) {
	fake := &fakeSSM{value: aws.String("storage:\n  db:\n    dsn: postgres://ssm/db\nworkers:\n  sync_timeout: 12s\n")}

	b := newConfigBuilder()
	b.ssmFetcher = fake
	b.configs = append(b.configs, &StructuredConfig{SSMParameter: "/trip-keeper/prod"})

	cfg, err := b.withSSM(context.Background()).build()
	require.NoError(t, err)
	assert.Equal(t, []string{"/trip-keeper/prod"}, fake.names)
	assert.Equal(t, "postgres://ssm/db", cfg.Storage.DB.DSN)
	assert.Equal(t, 12*time.Second, cfg.Workers.SyncTimeout)
}

func TestWithSSM_EmptyParameter(t *testing.T) {
	b := newConfigBuilder()
	b.ssmFetcher = &fakeSSM{}
	b.configs = append(b.configs, &StructuredConfig{SSMParameter: "/empty"})

	_, err := b.withSSM(context.Background()).build()
	assert.ErrorIs(t, err, ErrEmptyParameter)
}

func TestWithSSM_FetchError(t *testing.T) {
	boom := errors.New("access denied")
	b := newConfigBuilder()
	b.ssmFetcher = &fakeSSM{err: boom}
	b.configs = append(b.configs, &StructuredConfig{SSMParameter: "/denied"})

	_, err := b.withSSM(context.Background()).build()
	assert.ErrorIs(t, err, boom)
}

func TestWithSSM_NoParameterIsNoop(t *testing.T) {
	fake := &fakeSSM{}
	b := newConfigBuilder()
	b.ssmFetcher = fake

	b.withSSM(context.Background())
	assert.Empty(t, fake.names)
	assert.Empty(t, b.configs)
}

// ── validation ────────────────────────────────────────────────────────────────

func TestValidateServer(t *testing.T) {
	valid := func() *StructuredConfig {
		return &StructuredConfig{
			App:     App{TokenSignKey: "k", TokenIssuer: "i", TokenDuration: time.Hour, HashKey: "h"},
			Storage: Storage{DB: DB{DSN: "postgres://x"}, Photos: Photos{Dir: "photos"}},
		}
	}

	require.NoError(t, valid().ValidateServer())

	noDSN := valid()
	noDSN.Storage.DB.DSN = ""
	assert.ErrorIs(t, noDSN.ValidateServer(), ErrInvalidStorageConfigs)

	noKey := valid()
	noKey.App.TokenSignKey = ""
	assert.ErrorIs(t, noKey.ValidateServer(), ErrInvalidAppConfigs)

	localWithoutHash := valid()
	localWithoutHash.App.HashKey = ""
	assert.ErrorIs(t, localWithoutHash.ValidateServer(), ErrInvalidAppConfigs)

	s3WithoutHash := valid()
	s3WithoutHash.App.HashKey = ""
	s3WithoutHash.Storage.Photos.Bucket = "b"
	assert.NoError(t, s3WithoutHash.ValidateServer())
}

func TestNewClientConfig(t *testing.T) {
	b := newConfigBuilder()
	cfg, err := b.withDefaults().build()
	require.NoError(t, err)

	clientCfg := newClientConfig(cfg)
	require.NoError(t, clientCfg.validate())
	assert.Equal(t, DefaultClientDSN, clientCfg.Storage.DB.DSN)
	assert.Equal(t, DefaultSyncTimeout, clientCfg.Workers.SyncTimeout)
	assert.Equal(t, "http://localhost:8080", clientCfg.Adapter.HTTPAddress)
}

func TestClientConfig_Validate(t *testing.T) {
	base := ClientConfig{
		Adapter: ClientAdapter{HTTPAddress: "http://x", RequestTimeout: time.Second},
		Storage: ClientStorage{DB: ClientDB{DSN: "file.db"}},
		Workers: ClientWorkers{ProbeInterval: time.Second, SyncTimeout: time.Second},
	}
	require.NoError(t, base.validate())

	mem := base
	mem.Storage.DB.DSN = ":memory:"
	assert.ErrorIs(t, mem.validate(), ErrInvalidStorageConfigs)

	noAddr := base
	noAddr.Adapter.HTTPAddress = ""
	assert.ErrorIs(t, noAddr.validate(), ErrInvalidAdapterConfigs)

	noProbe := base
	noProbe.Workers.ProbeInterval = 0
	assert.ErrorIs(t, noProbe.validate(), ErrInvalidWorkerConfigs)
}
