package htree

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"pkt.systems/htree/html"
)

// ErrResponseTooLarge reports a response body longer than
// HTTPRenderRequest.MaxBytes.
var ErrResponseTooLarge = errors.New("response body too large")

// HTTPRenderRequest configures HTTPRender.
type HTTPRenderRequest struct {
	URL     string
	Client  *http.Client
	Writer  io.Writer
	Width   int
	Theme   Theme
	Options []RenderOption

	// MaxBytes caps the response body. Zero means no cap.
	MaxBytes int64
	// Timeout bounds the fetch and read. Zero means the context decides.
	Timeout time.Duration
	// MaxDepth, when non-zero, is passed to the parser as html.WithMaxDepth.
	MaxDepth int
}

// HTTPRender fetches markup over HTTP(S) and writes its tree dump. Responses
// declaring a non-text content type are refused before the body is read.
func HTTPRender(ctx context.Context, req HTTPRenderRequest) error {
	if req.URL == "" {
		return fmt.Errorf("render http: URL is required")
	}
	if req.Writer == nil {
		return fmt.Errorf("render http: Writer is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}
	client := req.Client
	if client == nil {
		client = http.DefaultClient
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return fmt.Errorf("render http: build request: %w", err)
	}
	if httpReq.URL.Scheme != "http" && httpReq.URL.Scheme != "https" {
		return fmt.Errorf("render http: unsupported scheme %q", httpReq.URL.Scheme)
	}
	httpReq.Header.Set("Accept", "text/html, application/xhtml+xml, text/plain;q=0.5")
	resp, err := client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("render http: request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("render http: status %s", resp.Status)
	}
	if ct := resp.Header.Get("Content-Type"); !markupContentType(ct) {
		return fmt.Errorf("render http: unsupported content type %q", ct)
	}

	var body io.Reader = resp.Body
	if req.MaxBytes > 0 {
		body = &cappedReader{r: resp.Body, remaining: req.MaxBytes}
	}
	options := req.Options
	if req.MaxDepth != 0 {
		options = append(options[:len(options):len(options)], WithParseOptions(html.WithMaxDepth(req.MaxDepth)))
	}
	if err := Render(RenderRequest{
		Reader:  body,
		Writer:  req.Writer,
		Width:   req.Width,
		Theme:   req.Theme,
		Options: options,
	}); err != nil {
		return fmt.Errorf("render http: %s: %w", req.URL, err)
	}
	return nil
}

// markupContentType accepts a missing header and any text or XML type.
func markupContentType(header string) bool {
	if header == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(header)
	if err != nil {
		return false
	}
	return strings.HasPrefix(mediaType, "text/") || strings.HasSuffix(mediaType, "+xml") || mediaType == "application/xml"
}

// cappedReader fails with ErrResponseTooLarge once more than remaining bytes
// are available, instead of silently truncating like io.LimitReader.
type cappedReader struct {
	r         io.Reader
	remaining int64
}

func (c *cappedReader) Read(p []byte) (int, error) {
	if c.remaining <= 0 {
		var extra [1]byte
		n, err := c.r.Read(extra[:])
		if n > 0 {
			return 0, ErrResponseTooLarge
		}
		return 0, err
	}
	if int64(len(p)) > c.remaining {
		p = p[:c.remaining]
	}
	n, err := c.r.Read(p)
	c.remaining -= int64(n)
	return n, err
}
