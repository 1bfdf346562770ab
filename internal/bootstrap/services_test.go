package bootstrap

import (
	"encoding/hex"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copperline/bizportal/config"
	"github.com/copperline/bizportal/internal/data/cryptoutil"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewServices_NilDeps(t *testing.T) {
	t.Parallel()

	container := NewServices(nil)

	assert.Nil(t, container.Auth)
	assert.Nil(t, container.Connection)
	assert.Nil(t, container.Sync)
	assert.Nil(t, container.Inquiries)
}

func TestNewServices_NoAdaptersConfigured(t *testing.T) {
	t.Parallel()

	container := NewServices(&ServiceDeps{
		Config: &config.AppConfig{},
		Logger: testLogger(),
	})

	// Without redis, db, or an accounting provider nothing can be wired.
	assert.Nil(t, container.Auth)
	assert.Nil(t, container.Connection)
	assert.Nil(t, container.Sync)
	assert.Nil(t, container.Inquiries)
}

func TestCreateEncryptor_EmptyKeyFallsBackToNoop(t *testing.T) {
	t.Parallel()

	enc := CreateEncryptor("", testLogger())

	_, ok := enc.(*cryptoutil.NoopEncryptor)
	assert.True(t, ok, "expected noop encryptor for empty key")
}

func TestCreateEncryptor_HexKey(t *testing.T) {
	t.Parallel()

	key := hex.EncodeToString([]byte(strings.Repeat("k", 32)))
	enc := CreateEncryptor(key, testLogger())

	_, ok := enc.(*cryptoutil.AESGCMEncryptor)
	require.True(t, ok, "expected AES-GCM encryptor for 32-byte hex key")

	ciphertext, err := enc.Encrypt([]byte("credential"))
	require.NoError(t, err)
	plaintext, err := enc.Decrypt(ciphertext)
	require.NoError(t, err)
	assert.Equal(t, "credential", string(plaintext))
}

func TestCreateEncryptor_PassphraseIsHashed(t *testing.T) {
	t.Parallel()

	enc := CreateEncryptor("not-a-hex-key", testLogger())

	_, ok := enc.(*cryptoutil.AESGCMEncryptor)
	assert.True(t, ok, "expected passphrase to be hashed into an AES key")
}

func TestBuildConnector_Unconfigured(t *testing.T) {
	t.Parallel()

	connector, err := BuildConnector(config.AccountingConfig{}, testLogger())

	require.NoError(t, err)
	assert.Nil(t, connector)
}

func TestBuildConnector_StaticEndpoints(t *testing.T) {
	t.Parallel()

	connector, err := BuildConnector(config.AccountingConfig{
		ClientID:     "portal",
		ClientSecret: "secret",
		RedirectURL:  "https://app.example.com/api/accounting/callback",
		AuthURL:      "https://idp.example.com/authorize",
		TokenURL:     "https://idp.example.com/token",
	}, testLogger())

	require.NoError(t, err)
	require.NotNil(t, connector)
	assert.Contains(t, connector.AuthorizationURL(), "https://idp.example.com/authorize")
}

func TestBuildAccountingClient_Unconfigured(t *testing.T) {
	t.Parallel()

	client, err := BuildAccountingClient(config.AccountingConfig{}, testLogger())

	require.NoError(t, err)
	assert.Nil(t, client)
}

func TestRouterServices_UnconfiguredServicesStayNilInterfaces(t *testing.T) {
	t.Parallel()

	services := routerServices(&config.AppConfig{}, ServiceContainer{}, testLogger())

	// A nil *service.X assigned into an interface field would make the
	// interface non-nil and the router would dispatch onto a nil receiver.
	assert.True(t, services.Auth == nil, "auth must stay an untyped nil interface")
	assert.True(t, services.Connection == nil, "connection must stay an untyped nil interface")
	assert.True(t, services.Sync == nil, "sync must stay an untyped nil interface")
	assert.True(t, services.Clients == nil, "clients must stay an untyped nil interface")
	assert.True(t, services.Inquiries == nil, "inquiries must stay an untyped nil interface")
	assert.True(t, services.Metrics == nil, "metrics must stay an untyped nil interface")
}
