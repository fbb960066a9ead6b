// Package http builds the HTTP client used for outbound provider calls.
package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient creates an HTTP client configured for external API calls.
//
// http.DefaultClient has no timeout, so outbound calls always go through
// a client built here. The transport is set explicitly so connection
// reuse and handshake limits are under our control:
//   - Proxy honours HTTP_PROXY and friends
//   - Dialer.Timeout bounds TCP connect time
//   - MaxIdleConns / IdleConnTimeout keep a pool of reusable connections
//   - TLSHandshakeTimeout bounds the HTTPS handshake
//   - Client.Timeout bounds the whole request, passed in by the caller
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
