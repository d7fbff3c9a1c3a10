package vault

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"time"

	"gopkg.in/resty.v1"
)

var (
	TLSHandshakeTimeout   = 10
	ResponseHeaderTimeout = 20
	ExpectContinueTimeout = 10
	KeepAlive             = 3
)

// A Client represents a go-resty based HTTP client bound to one resolved
// vault configuration. The configuration is immutable after construction, so
// a single client is safe for repeated and concurrent reads.
type Client struct {
	config ResolvedConfig

	client *resty.Client
	ctx    context.Context
}

// Config returns the resolved connection parameters this client was built
// with.
func (v *Client) Config() ResolvedConfig {
	return v.config
}

// Sets up the go-resty client used to interact with the vault API service,
// with our own custom HTTP.Transport so connections are pooled and kept
// alive across calls, and so we can ignore self-signed SSL certs if
// required.
func (v *Client) setup() {
	v.client = resty.New()
	v.client.SetHeader("Content-Type", "application/json")
	v.client.SetTransport(&http.Transport{
		DialContext: (&net.Dialer{
			KeepAlive: time.Duration(int64(KeepAlive) * time.Second.Nanoseconds()),
		}).DialContext,
		TLSHandshakeTimeout:   time.Duration(int64(TLSHandshakeTimeout) * time.Second.Nanoseconds()),
		ResponseHeaderTimeout: time.Duration(int64(ResponseHeaderTimeout) * time.Second.Nanoseconds()),
		ExpectContinueTimeout: time.Duration(int64(ExpectContinueTimeout) * time.Second.Nanoseconds()),
		TLSClientConfig:       &tls.Config{InsecureSkipVerify: v.config.Insecure},
	})
	v.client.SetHostURL(v.config.Address())

	if v.config.Timeout > 0 {
		v.client.SetTimeout(v.config.Timeout)
	}
}

// Every request to the vault HTTP API carries the token header and the
// caller's context.
func (v *Client) newRequest() *resty.Request {
	return v.client.NewRequest().SetContext(v.ctx).SetHeader("X-Vault-Token", v.config.Token)
}
