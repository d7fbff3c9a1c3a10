package vault

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Environment variables consulted when an explicit value is not supplied.
const (
	EnvVaultAddr       = "VAULT_ADDR"
	EnvVaultPort       = "VAULT_PORT"
	EnvVaultProtocol   = "VAULT_PROTOCOL"
	EnvVaultToken      = "VAULT_TOKEN"
	EnvVaultSecretPath = "VAULT_SECRET_PATH"
)

// Defaults applied when a field is set neither explicitly nor through the
// environment. Token and secret path have no default.
const (
	DefaultHost     = "127.0.0.1"
	DefaultPort     = "8200"
	DefaultProtocol = "http"
)

var (
	ErrMissingToken      = errors.New("vault token cannot be empty, set Config.Token or " + EnvVaultToken)
	ErrMissingSecretPath = errors.New("vault secret path cannot be empty, set Config.SecretPath or " + EnvVaultSecretPath)
)

// Config holds the caller-supplied connection parameters. Every field is
// optional here; Resolve fills the gaps from the environment and the
// defaults above, and reports what is still missing.
type Config struct {
	Protocol   string
	Host       string
	Port       string
	Token      string
	SecretPath string

	// Insecure skips SSL certificate verification, for self-signed vault
	// deployments.
	Insecure bool

	// Timeout bounds each request. Zero leaves the transport defaults in
	// charge.
	Timeout time.Duration
}

// ResolvedConfig is a complete set of connection parameters. Built once per
// client and never mutated afterwards.
type ResolvedConfig struct {
	Protocol   string
	Host       string
	Port       uint16
	Token      string
	SecretPath string
	Insecure   bool
	Timeout    time.Duration
}

// Resolve produces a complete configuration, preferring explicit values over
// environment variables over defaults. Missing token, missing secret path,
// an unparsable port, or an unrecognized protocol fail here, at build time,
// rather than surfacing later as a request error.
func (c Config) Resolve() (ResolvedConfig, error) {
	resolved := ResolvedConfig{
		Protocol:   firstOf(c.Protocol, os.Getenv(EnvVaultProtocol), DefaultProtocol),
		Host:       firstOf(c.Host, os.Getenv(EnvVaultAddr), DefaultHost),
		Token:      firstOf(c.Token, os.Getenv(EnvVaultToken)),
		SecretPath: firstOf(c.SecretPath, os.Getenv(EnvVaultSecretPath)),
		Insecure:   c.Insecure,
		Timeout:    c.Timeout,
	}

	if resolved.Protocol != "http" && resolved.Protocol != "https" {
		return ResolvedConfig{}, fmt.Errorf("vault protocol must be 'http' or 'https', got '%v'", resolved.Protocol)
	}

	port := firstOf(c.Port, os.Getenv(EnvVaultPort), DefaultPort)
	parsed, err := strconv.ParseUint(port, 10, 16)
	if err != nil {
		return ResolvedConfig{}, fmt.Errorf("vault port '%v' is not a valid 16-bit unsigned integer: %w", port, err)
	}
	resolved.Port = uint16(parsed)

	if resolved.Token == "" {
		return ResolvedConfig{}, ErrMissingToken
	}

	if resolved.SecretPath == "" {
		return ResolvedConfig{}, ErrMissingSecretPath
	}

	return resolved, nil
}

// Address renders the base URL for the v1 HTTP API, like
// 'http://127.0.0.1:8200/v1'.
func (c ResolvedConfig) Address() string {
	return fmt.Sprintf("%v://%v:%v/v1", c.Protocol, c.Host, c.Port)
}

func firstOf(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}

	return ""
}
