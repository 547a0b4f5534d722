// Package backend is the HTTP client of the remote inventory backend.
// It implements the repository ports of every domain package.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"storeops/internal/core/apperror"
	appctx "storeops/internal/core/context"
	"storeops/pkg/logger"
)

var tracer = otel.Tracer("storeops/backend")

// HeaderIdempotencyKey carries the per-submission idempotency key.
const HeaderIdempotencyKey = "Idempotency-Key"

// maxBodyBytes bounds a decoded response body.
const maxBodyBytes = 32 << 20

// Config holds backend client configuration.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// Client talks JSON over HTTPS to the inventory backend.
type Client struct {
	http      *http.Client
	baseURL   string
	userAgent string
}

// New creates a backend client.
func New(cfg Config) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = "storeops-console"
	}
	return &Client{
		http:      &http.Client{Timeout: timeout},
		baseURL:   baseURL,
		userAgent: ua,
	}
}

// request describes one backend call.
type request struct {
	op      string
	method  string
	path    string
	query   url.Values
	body    any
	headers map[string]string
}

// response is a fully read backend response.
type response struct {
	status int
	header http.Header
	body   []byte
}

// storePath builds "/stores/{storeId}/..." for the session's store.
func storePath(sess *appctx.Session, parts ...string) string {
	var b strings.Builder
	b.WriteString("/stores/")
	b.WriteString(url.PathEscape(sess.StoreID))
	for _, p := range parts {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(p))
	}
	return b.String()
}

// do performs r and returns the response of a 2xx status. Other statuses
// are mapped to AppErrors; transport failures become BACKEND_UNAVAILABLE.
func (c *Client) do(ctx context.Context, sess *appctx.Session, r request) (*response, error) {
	ctx, span := tracer.Start(ctx, "backend."+r.op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", r.method),
			attribute.String("backend.path", r.path),
		))
	defer span.End()

	if c.baseURL == "" {
		err := fmt.Errorf("backend base URL is not configured")
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, apperror.NewBackendUnavailable(err)
	}

	target := c.baseURL + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		raw, err := json.Marshal(r.body)
		if err != nil {
			return nil, apperror.NewInternal(fmt.Errorf("encode %s request: %w", r.op, err))
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target, body)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("create %s request: %w", r.op, err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip")
	req.Header.Set("User-Agent", c.userAgent)
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sess != nil && sess.Token != "" {
		req.Header.Set("Authorization", "Bearer "+sess.Token)
	}
	for k, v := range appctx.OutgoingHeaders(ctx) {
		req.Header.Set(k, v)
	}
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport")
		logger.Warn(ctx, "backend request failed", "op", r.op, "error", err)
		return nil, apperror.NewBackendUnavailable(err)
	}
	defer resp.Body.Close()

	raw, err := readBody(resp)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "read body")
		return nil, apperror.NewBackendUnavailable(err)
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	logger.Debug(ctx, "backend request",
		"op", r.op,
		"status", resp.StatusCode,
		"latency_ms", time.Since(started).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		appErr := mapStatus(resp.StatusCode, raw)
		span.SetStatus(codes.Error, appErr.Message)
		return nil, appErr
	}
	return &response{status: resp.StatusCode, header: resp.Header, body: raw}, nil
}

// readBody reads the body, decoding gzip when the backend compressed it.
func readBody(resp *http.Response) ([]byte, error) {
	var r io.Reader = resp.Body
	if strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		zr, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("open gzip body: %w", err)
		}
		defer zr.Close()
		r = zr
	}
	raw, err := io.ReadAll(io.LimitReader(r, maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(raw) > maxBodyBytes {
		return nil, fmt.Errorf("response body exceeds %d bytes", maxBodyBytes)
	}
	return raw, nil
}

// getJSON performs a GET and decodes the body into out.
func (c *Client) getJSON(ctx context.Context, sess *appctx.Session, op, path string, query url.Values, out any) error {
	resp, err := c.do(ctx, sess, request{op: op, method: http.MethodGet, path: path, query: query})
	if err != nil {
		return err
	}
	return decode(op, resp.body, out)
}

// sendJSON performs a write with a JSON body and decodes the response into out (nil skips decoding).
func (c *Client) sendJSON(ctx context.Context, sess *appctx.Session, op, method, path string, body any, headers map[string]string, out any) error {
	resp, err := c.do(ctx, sess, request{op: op, method: method, path: path, body: body, headers: headers})
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(resp.body)) == 0 {
		return nil
	}
	return decode(op, resp.body, out)
}

func decode(op string, body []byte, out any) error {
	if err := json.Unmarshal(body, out); err != nil {
		return apperror.NewBackendUnavailable(fmt.Errorf("decode %s response: %w", op, err))
	}
	return nil
}

// unwrap returns the object under key, else under "data", else the body itself.
// Backend versions differ in whether single objects are enveloped.
func unwrap(body []byte, key string) []byte {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return body
	}
	var env map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return body
	}
	for _, k := range []string{key, "data"} {
		if k == "" {
			continue
		}
		if v, ok := env[k]; ok && len(bytes.TrimSpace(v)) > 0 && !bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			return v
		}
	}
	return body
}

// getObject GETs path and decodes the (possibly enveloped) object under key.
func (c *Client) getObject(ctx context.Context, sess *appctx.Session, op, path, key string, query url.Values, out any) error {
	resp, err := c.do(ctx, sess, request{op: op, method: http.MethodGet, path: path, query: query})
	if err != nil {
		return err
	}
	return decode(op, unwrap(resp.body, key), out)
}

// sendObject writes body and decodes the (possibly enveloped) object under key.
func (c *Client) sendObject(ctx context.Context, sess *appctx.Session, op, method, path, key string, body any, headers map[string]string, out any) error {
	resp, err := c.do(ctx, sess, request{op: op, method: method, path: path, body: body, headers: headers})
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(resp.body)) == 0 {
		return nil
	}
	return decode(op, unwrap(resp.body, key), out)
}

// Ping checks that the backend answers its health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.do(ctx, nil, request{op: "health", method: http.MethodGet, path: "/health"})
	return err
}
