package hermes

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/0xRadioAc7iv/hermes-address/internal"
	"github.com/0xRadioAc7iv/hermes-address/internal/record"
)

// AddressRecord is the document shape served at the address URL.
type AddressRecord = record.AddressRecord

var ErrBodyTooLarge = errors.New("response body too large")

// StatusError is returned when the server answers with a non-2xx status.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

type Client struct {
	cfg  *internal.Config
	http *http.Client
}

func NewClient(opts ...Option) *Client {
	cfg := internal.DefaultConfig()

	for _, opt := range opts {
		opt(cfg)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{cfg: cfg, http: httpClient}
}

// Fetch downloads the address document, decodes it and validates it.
func Fetch(ctx context.Context, opts ...Option) (*AddressRecord, error) {
	return NewClient(opts...).Fetch(ctx)
}

func (c *Client) URL() string {
	return c.cfg.URL
}

func (c *Client) Fetch(ctx context.Context) (*AddressRecord, error) {
	body, err := c.download(ctx)
	if err != nil {
		return nil, err
	}

	rec, err := record.Decode(body)
	if err != nil {
		return nil, err
	}

	if err := record.Validate(rec); err != nil {
		return nil, fmt.Errorf("invalid address document: %w", err)
	}

	return rec, nil
}

func (c *Client) download(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.URL, nil)
	if err != nil {
		return nil, err
	}
	// Setting this turns off the transport's own gzip handling
	req.Header.Set("Accept-Encoding", "zstd, gzip")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: c.cfg.URL, StatusCode: resp.StatusCode}
	}

	r, closeFn, err := decompress(resp.Body, resp.Header.Get("Content-Encoding"), c.cfg.MaxBody)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	data, err := io.ReadAll(io.LimitReader(r, c.cfg.MaxBody+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > c.cfg.MaxBody {
		return nil, fmt.Errorf("GET %s: %w (limit %d bytes)", c.cfg.URL, ErrBodyTooLarge, c.cfg.MaxBody)
	}

	return data, nil
}

// decompress wraps body for the given Content-Encoding. maxMemory bounds
// the zstd decoder window as well as its output.
func decompress(body io.Reader, encoding string, maxMemory int64) (io.Reader, func(), error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", "identity":
		return body, func() {}, nil
	case "zstd":
		dec, err := zstd.NewReader(body,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderMaxMemory(uint64(maxMemory)),
		)
		if err != nil {
			return nil, nil, err
		}
		return dec, dec.Close, nil
	case "gzip":
		zr, err := gzip.NewReader(body)
		if err != nil {
			return nil, nil, err
		}
		return zr, func() { _ = zr.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unsupported content encoding %q", encoding)
	}
}
