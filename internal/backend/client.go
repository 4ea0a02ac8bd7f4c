package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// TokenSource returns the bearer token bound to ctx, or "" for anonymous calls.
type TokenSource func(ctx context.Context) string

// Client is the single outbound client to the Workoo REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a Client whose transport attaches the bearer token found by
// tokens to every request. Calls are attempted exactly once.
func NewClient(baseURL string, timeout time.Duration, tokens TokenSource, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &bearerTransport{
				next:   otelhttp.NewTransport(http.DefaultTransport),
				tokens: tokens,
			},
		},
		logger: logger,
	}
}

// bearerTransport is the request interceptor.
type bearerTransport struct {
	next   http.RoundTripper
	tokens TokenSource
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.tokens == nil {
		return t.next.RoundTrip(req)
	}
	token := t.tokens(req.Context())
	if token == "" {
		return t.next.RoundTrip(req)
	}
	// RoundTrippers must not modify the caller's request.
	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "Bearer "+token)
	return t.next.RoundTrip(clone)
}

// FileUpload is one file part of a multipart request.
type FileUpload struct {
	FieldName   string
	FileName    string
	ContentType string
	Content     io.Reader
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// envelope is the {"message", "data"} wrapper most endpoints respond with.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request body for %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(payload)
	}
	raw, err := c.send(ctx, method, path, body, "application/json")
	if err != nil {
		return err
	}
	return decodeData(raw, out)
}

func (c *Client) doMultipart(ctx context.Context, method, path string, fields map[string]string, files []FileUpload, out interface{}) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return fmt.Errorf("failed to write multipart field %q: %w", k, err)
		}
	}
	for _, f := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			quoteEscaper.Replace(f.FieldName), quoteEscaper.Replace(f.FileName)))
		contentType := f.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header.Set("Content-Type", contentType)
		part, err := w.CreatePart(header)
		if err != nil {
			return fmt.Errorf("failed to create multipart file %q: %w", f.FieldName, err)
		}
		if _, err := io.Copy(part, f.Content); err != nil {
			return fmt.Errorf("failed to copy multipart file %q: %w", f.FieldName, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close multipart body: %w", err)
	}

	raw, err := c.send(ctx, method, path, &buf, w.FormDataContentType())
	if err != nil {
		return err
	}
	return decodeData(raw, out)
}

// send performs the request and returns the body of a 2xx response. Every
// failure comes back as *APIError and is logged once.
func (c *Client) send(ctx context.Context, method, path string, body io.Reader, contentType string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		apiErr := &APIError{Method: method, Path: path, Err: err}
		c.logger.Warn("Backend request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return nil, apiErr
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		apiErr := &APIError{Method: method, Path: path, Status: resp.StatusCode, Err: err}
		c.logger.Warn("Backend response unreadable", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return nil, apiErr
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{
			Method:  method,
			Path:    path,
			Status:  resp.StatusCode,
			Message: parseErrorMessage(raw),
			Body:    raw,
		}
		fields := []zap.Field{
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status_code", resp.StatusCode),
			zap.Duration("latency", time.Since(start)),
		}
		if apiErr.Message != "" {
			fields = append(fields, zap.String("message", apiErr.Message))
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			c.logger.Error("Backend request rejected", fields...)
		} else {
			c.logger.Info("Backend request rejected", fields...)
		}
		return nil, apiErr
	}

	c.logger.Debug("Backend request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status_code", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)
	return raw, nil
}

// decodeData decodes raw into out, unwrapping a {"data": ...} envelope when present.
func decodeData(raw []byte, out interface{}) error {
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && len(env.Data) > 0 && !bytes.Equal(env.Data, []byte("null")) {
		raw = env.Data
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode backend response: %w", err)
	}
	return nil
}
