package vault_test

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guaychou/coult/pkg/vault"
)

const (
	testToken      = "dead-c0de"
	testSecretPath = "secret/app"

	v1Envelope = `{
		"request_id": "41acbf87-7dbb-42f5-7ae3-ec5b3b90b0b1",
		"lease_id": "",
		"renewable": false,
		"lease_duration": 2764800,
		"data": {"password": "hunter2"},
		"wrap_info": null,
		"warnings": null,
		"auth": null
	}`

	v2Envelope = `{
		"request_id": "6cb6b656-4ff6-fa34-2a24-0a45e9f2c5b6",
		"lease_id": "",
		"renewable": false,
		"lease_duration": 0,
		"data": {"data": {"password": "hunter2"}},
		"wrap_info": null,
		"warnings": null,
		"auth": null
	}`
)

type credentials struct {
	Password string `json:"password"`
}

// Builds a Config pointed at the given httptest server, so no environment
// fallback kicks in during client tests.
func testConfig(t *testing.T, server *httptest.Server) vault.Config {
	parsed, err := url.Parse(server.URL)
	require.Nil(t, err)

	host, port, err := net.SplitHostPort(parsed.Host)
	require.Nil(t, err)

	return vault.Config{
		Protocol:   parsed.Scheme,
		Host:       host,
		Port:       port,
		Token:      testToken,
		SecretPath: testSecretPath,
	}
}

// A stand-in vault node: healthy on /v1/sys/health, configurable answer on
// the secret path, counting every secret read it serves.
func testVault(secretStatus int, secretBody string, secretHits *int32) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/sys/health":
			fmt.Fprint(w, `{"initialized": true, "sealed": false, "standby": false}`)
		case "/v1/" + testSecretPath:
			if secretHits != nil {
				atomic.AddInt32(secretHits, 1)
			}
			w.WriteHeader(secretStatus)
			fmt.Fprint(w, secretBody)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func TestNewVaultClient_StatusCodeMapping(t *testing.T) {
	statusTests := []struct {
		status int
		kind   vault.Kind
	}{
		{http.StatusNotFound, vault.KindInvalidPath},
		{http.StatusTooManyRequests, vault.KindSealed},
		{vault.StatusActiveDRSecondaryNode, vault.KindActiveDRSecondaryNode},
		{vault.StatusStandbyPerformanceNode, vault.KindStandbyPerformanceNode},
		{http.StatusNotImplemented, vault.KindNotInitialized},
		{http.StatusServiceUnavailable, vault.KindSealed},
		// Codes outside the mapping all land on the unknown kind.
		{http.StatusTeapot, vault.KindUnknown},
		{599, vault.KindUnknown},
	}

	for _, test := range statusTests {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(test.status)
		}))

		_, err := vault.NewVaultClient(context.Background(), testConfig(t, server))
		require.NotNil(t, err, "Expected NewVaultClient() to return error for health status %v", test.status)

		var apiError *vault.ApiError
		require.True(t, errors.As(err, &apiError), "Expected an ApiError for health status %v, got %v", test.status, err)
		assert.Equal(t, test.kind, apiError.Kind, "Expected kind %v for health status %v", test.kind, test.status)
		assert.Equal(t, test.status, apiError.StatusCode, "Expected the original status code to be preserved")

		server.Close()
	}
}

func TestNewVaultClient_Healthy(t *testing.T) {
	server := httptest.NewServer(testVault(http.StatusOK, v1Envelope, nil))
	defer server.Close()

	client, err := vault.NewVaultClient(context.Background(), testConfig(t, server))
	require.Nil(t, err, "Expected NewVaultClient() to succeed against a healthy node: %v", err)
	assert.Equal(t, testSecretPath, client.Config().SecretPath)
}

func TestNewVaultClient_RequestHeaders(t *testing.T) {
	var gotToken, gotContentType string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-Vault-Token")
		gotContentType = r.Header.Get("Content-Type")
	}))
	defer server.Close()

	_, err := vault.NewVaultClient(context.Background(), testConfig(t, server))
	require.Nil(t, err)

	assert.Equal(t, testToken, gotToken, "Expected the health check to carry the X-Vault-Token header")
	assert.Equal(t, "application/json", gotContentType, "Expected the health check to carry the json content type")
}

func TestNewVaultClient_SealedNeverFetchesSecret(t *testing.T) {
	var secretHits int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/sys/health" {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		atomic.AddInt32(&secretHits, 1)
	}))
	defer server.Close()

	_, err := vault.NewVaultClient(context.Background(), testConfig(t, server))
	require.NotNil(t, err, "Expected NewVaultClient() to fail against a sealed node")

	var apiError *vault.ApiError
	require.True(t, errors.As(err, &apiError))
	assert.Equal(t, vault.KindSealed, apiError.Kind)
	assert.Equal(t, int32(0), secretHits, "Expected the secret path to never be requested after a failed health check")
}

func TestNewVaultClient_ConnectionRefused(t *testing.T) {
	// Grab a port nothing listens on.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	config := testConfig(t, server)
	server.Close()

	_, err := vault.NewVaultClient(context.Background(), config)
	require.NotNil(t, err, "Expected NewVaultClient() to fail when nothing is listening")

	var apiError *vault.ApiError
	assert.False(t, errors.As(err, &apiError), "Expected a transport error, not an ApiError: %v", err)
}

func TestGetSecret_V1RoundTrip(t *testing.T) {
	server := httptest.NewServer(testVault(http.StatusOK, v1Envelope, nil))
	defer server.Close()

	client, err := vault.NewVaultClient(context.Background(), testConfig(t, server))
	require.Nil(t, err)

	secret, err := vault.GetSecret[credentials](client)
	require.Nil(t, err, "Expected GetSecret() to succeed: %v", err)
	assert.Equal(t, "hunter2", secret.Password)
}

func TestGetSecretV2_RoundTrip(t *testing.T) {
	server := httptest.NewServer(testVault(http.StatusOK, v2Envelope, nil))
	defer server.Close()

	client, err := vault.NewVaultClient(context.Background(), testConfig(t, server))
	require.Nil(t, err)

	secret, err := vault.GetSecretV2[credentials](client)
	require.Nil(t, err, "Expected GetSecretV2() to succeed: %v", err)
	assert.Equal(t, "hunter2", secret.Password)
}

func TestGetSecret_InvalidPath(t *testing.T) {
	// The 404 body is deliberately not valid JSON; a non-200 answer must be
	// mapped before any parsing happens.
	server := httptest.NewServer(testVault(http.StatusNotFound, `<html>not json</html>`, nil))
	defer server.Close()

	client, err := vault.NewVaultClient(context.Background(), testConfig(t, server))
	require.Nil(t, err)

	_, err = vault.GetSecret[credentials](client)
	require.NotNil(t, err, "Expected GetSecret() to fail on 404")

	var apiError *vault.ApiError
	require.True(t, errors.As(err, &apiError), "Expected an ApiError, got %v", err)
	assert.Equal(t, vault.KindInvalidPath, apiError.Kind)
	assert.Equal(t, http.StatusNotFound, apiError.StatusCode)
}

func TestGetSecret_MalformedEnvelope(t *testing.T) {
	server := httptest.NewServer(testVault(http.StatusOK, `{"data": "not-an-object"`, nil))
	defer server.Close()

	client, err := vault.NewVaultClient(context.Background(), testConfig(t, server))
	require.Nil(t, err)

	_, err = vault.GetSecret[credentials](client)
	require.NotNil(t, err, "Expected GetSecret() to fail on a malformed envelope")

	var apiError *vault.ApiError
	assert.False(t, errors.As(err, &apiError), "Expected a decode error, not an ApiError: %v", err)
}

func TestGetSecret_RepeatedCalls(t *testing.T) {
	var secretHits int32

	server := httptest.NewServer(testVault(http.StatusOK, v1Envelope, &secretHits))
	defer server.Close()

	client, err := vault.NewVaultClient(context.Background(), testConfig(t, server))
	require.Nil(t, err)

	first, err := vault.GetSecret[credentials](client)
	require.Nil(t, err)

	second, err := vault.GetSecret[credentials](client)
	require.Nil(t, err)

	assert.Equal(t, first, second, "Expected repeated reads of an unchanged secret to return identical payloads")
	assert.Equal(t, int32(2), secretHits, "Expected one request per call, no caching")
}

func TestClientHealth(t *testing.T) {
	server := httptest.NewServer(testVault(http.StatusOK, v1Envelope, nil))
	defer server.Close()

	client, err := vault.NewVaultClient(context.Background(), testConfig(t, server))
	require.Nil(t, err)

	health, err := client.Health()
	require.Nil(t, err, "Expected Health() to succeed: %v", err)
	assert.True(t, health.Ready(), "Expected an initialized, unsealed, active node to report ready")
}
