// Package function adapts API Gateway HTTP API (payload v2) events to a
// plain http.Handler so the chi router runs unchanged inside AWS Lambda.
package function

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"github.com/MKhiriev/go-trip-keeper/internal/logger"
	"github.com/MKhiriev/go-trip-keeper/internal/utils"
)

type Proxy struct {
	handler http.Handler
	logger  *logger.Logger
}

func NewProxy(handler http.Handler, logger *logger.Logger) *Proxy {
	return &Proxy{handler: handler, logger: logger}
}

// Handle serves one event. Handler failures are reported through the status
// code; the returned error is reserved for events that cannot be decoded.
func (p *Proxy) Handle(ctx context.Context, event events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	req, err := newRequest(ctx, event)
	if err != nil {
		p.logger.Err(err).Str("request_id", event.RequestContext.RequestID).Msg("undecodable event")
		return events.APIGatewayV2HTTPResponse{}, err
	}

	w := newResponseWriter()
	p.handler.ServeHTTP(w, req)

	return w.response(), nil
}

func newRequest(ctx context.Context, event events.APIGatewayV2HTTPRequest) (*http.Request, error) {
	body := []byte(event.Body)
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(event.Body)
		if err != nil {
			return nil, fmt.Errorf("error decoding event body: %w", err)
		}
		body = decoded
	}

	path := event.RawPath
	if path == "" {
		path = event.RequestContext.HTTP.Path
	}
	target := &url.URL{Path: path, RawQuery: event.RawQueryString}

	req, err := http.NewRequestWithContext(ctx, event.RequestContext.HTTP.Method, target.String(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("error building request: %w", err)
	}
	for name, value := range event.Headers {
		// API Gateway joins repeated headers with commas
		req.Header.Set(name, value)
	}
	if len(event.Cookies) > 0 {
		req.Header.Set("Cookie", strings.Join(event.Cookies, "; "))
	}
	if req.Header.Get(utils.TraceIDHeader) == "" && event.RequestContext.RequestID != "" {
		req.Header.Set(utils.TraceIDHeader, event.RequestContext.RequestID)
	}
	req.RemoteAddr = event.RequestContext.HTTP.SourceIP
	req.ContentLength = int64(len(body))

	return req, nil
}

// responseWriter buffers the whole response; Lambda has no streaming for
// the v2 payload.
type responseWriter struct {
	header http.Header
	body   bytes.Buffer
	status int
}

func newResponseWriter() *responseWriter {
	return &responseWriter{header: make(http.Header)}
}

func (w *responseWriter) Header() http.Header {
	return w.header
}

func (w *responseWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.WriteHeader(http.StatusOK)
	}
	return w.body.Write(b)
}

func (w *responseWriter) WriteHeader(status int) {
	if w.status == 0 {
		w.status = status
	}
}

func (w *responseWriter) response() events.APIGatewayV2HTTPResponse {
	status := w.status
	if status == 0 {
		status = http.StatusOK
	}

	resp := events.APIGatewayV2HTTPResponse{
		StatusCode: status,
		Headers:    make(map[string]string, len(w.header)),
		Cookies:    w.header.Values("Set-Cookie"),
	}
	for name, values := range w.header {
		if name == "Set-Cookie" {
			continue
		}
		resp.Headers[name] = strings.Join(values, ",")
	}

	if isTextual(w.header) {
		resp.Body = w.body.String()
	} else {
		resp.Body = base64.StdEncoding.EncodeToString(w.body.Bytes())
		resp.IsBase64Encoded = true
	}
	return resp
}

// isTextual reports whether the body can travel as a plain string.
func isTextual(header http.Header) bool {
	if header.Get("Content-Encoding") != "" {
		return false
	}
	contentType := header.Get("Content-Type")
	if contentType == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return strings.HasPrefix(mediaType, "text/") ||
		mediaType == "application/json" ||
		strings.HasSuffix(mediaType, "+json")
}
