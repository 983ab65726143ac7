package httputil

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/matzehuels/stylebox/pkg/buildinfo"
	"github.com/matzehuels/stylebox/pkg/errors"
)

// DefaultMaxBytes bounds a fetched response body.
const DefaultMaxBytes = 64 << 20

const defaultTimeout = 30 * time.Second

// IsRemote reports whether ref is an http or https URL rather than a file
// path.
func IsRemote(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// FetcherOption configures a [Fetcher].
type FetcherOption func(*Fetcher)

// WithClient sets the HTTP client.
func WithClient(c *http.Client) FetcherOption {
	return func(f *Fetcher) { f.client = c }
}

// WithBackoff sets the retry policy.
func WithBackoff(b Backoff) FetcherOption {
	return func(f *Fetcher) { f.backoff = b }
}

// WithMaxBytes sets the largest accepted response body.
func WithMaxBytes(n int64) FetcherOption {
	return func(f *Fetcher) { f.maxBytes = n }
}

// Fetcher downloads remote resources.
type Fetcher struct {
	client   *http.Client
	backoff  Backoff
	maxBytes int64
}

// NewFetcher creates a fetcher with a 30s timeout, [DefaultBackoff] and
// [DefaultMaxBytes].
func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		client:   &http.Client{Timeout: defaultTimeout},
		backoff:  DefaultBackoff,
		maxBytes: DefaultMaxBytes,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Get fetches url and returns the response body.
func (f *Fetcher) Get(ctx context.Context, url string) ([]byte, error) {
	var data []byte
	err := f.backoff.Retry(ctx, func() error {
		var err error
		data, err = f.get(ctx, url)
		return err
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "bad url %s", url)
	}
	req.Header.Set("User-Agent", buildinfo.UserAgent())

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &RetryableError{Err: errors.Wrap(errors.ErrCodeUnavailable, err, "fetch %s", url)}
	}
	defer resp.Body.Close()

	if err := checkStatus(url, resp.StatusCode); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, &RetryableError{Err: errors.Wrap(errors.ErrCodeUnavailable, err, "read %s", url)}
	}
	if int64(len(data)) > f.maxBytes {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s is larger than %d bytes", url, f.maxBytes)
	}
	return data, nil
}

func checkStatus(url string, code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return errors.New(errors.ErrCodeFileNotFound, "no such resource: %s", url)
	case code == http.StatusTooManyRequests, code >= 500:
		return &RetryableError{Err: errors.New(errors.ErrCodeUnavailable, "fetch %s: status %d", url, code)}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "fetch %s: status %d", url, code)
	}
}
