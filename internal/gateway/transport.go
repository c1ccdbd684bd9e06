package gateway

import (
	"log/slog"
	"net/http"
)

// LoggingTransport logs every outbound request before handing it to Base.
type LoggingTransport struct {
	Base   http.RoundTripper
	Logger *slog.Logger
}

// NewHTTPClient returns a client for the search API.
// When logRequests is set every request is logged through logger.
func NewHTTPClient(logger *slog.Logger, logRequests bool, base *http.Client) *http.Client {
	if base == nil {
		base = &http.Client{}
	}
	if !logRequests {
		return base
	}
	client := *base
	client.Transport = &LoggingTransport{Base: base.Transport, Logger: logger}
	return &client
}

func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	t.Logger.InfoContext(ctx, "outbound request", "method", req.Method, "url", req.URL.String())
	for name, values := range req.Header {
		for _, value := range values {
			t.Logger.DebugContext(ctx, "outbound request header", "name", name, "value", value)
		}
	}

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(req)
}
