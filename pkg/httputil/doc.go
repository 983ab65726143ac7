// Package httputil fetches remote resources, such as sprite sheets
// referenced by URL from a layout document.
//
// # Fetching
//
// A [Fetcher] performs GET requests with a timeout, a response size limit
// and retries:
//
//	f := httputil.NewFetcher(httputil.WithMaxBytes(8 << 20))
//	data, err := f.Get(ctx, "https://cdn.example.com/ui.png")
//
// Failures carry a stylebox error code: FILE_NOT_FOUND for 404 responses,
// UNAVAILABLE for network errors and 5xx responses once retries are
// exhausted, and INVALID_INPUT for anything else.
//
// # Retry
//
// [Backoff.Retry] re-runs an operation that failed with a [RetryableError],
// doubling the delay after each attempt:
//
//   - Network errors
//   - 5xx server errors
//   - 429 rate limit responses
//
// Other errors are returned at once.
package httputil
