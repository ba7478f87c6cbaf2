// Package source fetches the raw dataset from a local file or over HTTP
// with config-driven retry logic.
package source

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"sharkclean/internal/config"
)

// ErrUnexpectedStatusCode indicates an HTTP response with unexpected status.
var ErrUnexpectedStatusCode = errors.New("unexpected status code")

// Fetcher retrieves raw dataset bytes.
type Fetcher struct {
	client      *http.Client
	retryPolicy *config.RetryPolicy
}

// NewFetcher creates a fetcher with the given retry policy.
func NewFetcher(retryPolicy *config.RetryPolicy) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: retryPolicy.GetTimeout(),
		},
		retryPolicy: retryPolicy,
	}
}

// Fetch reads the dataset described by the source config: a local file when
// one is configured, otherwise the URL.
func (f *Fetcher) Fetch(src *config.SourceConfig) ([]byte, error) {
	if src.IsLocalFile() {
		return f.ReadLocalFile(src.File)
	}

	return f.Download(src.URL)
}

// ReadLocalFile reads the dataset from a local path.
func (f *Fetcher) ReadLocalFile(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read local file %s: %w", path, err)
	}

	return content, nil
}

// Download fetches the dataset over HTTP, retrying transient failures with
// exponential backoff.
func (f *Fetcher) Download(url string) ([]byte, error) {
	var lastErr error

	for attempt := 1; attempt <= f.retryPolicy.MaxAttempts; attempt++ {
		if attempt > 1 {
			if delay := f.retryPolicy.GetRetryDelay(attempt); delay > 0 {
				time.Sleep(delay)
			}
		}

		body, err := f.download(url)
		if err == nil {
			return body, nil
		}

		lastErr = fmt.Errorf("attempt %d/%d: %w", attempt, f.retryPolicy.MaxAttempts, err)

		if !retryable(err) {
			break
		}
	}

	return nil, lastErr
}

func (f *Fetcher) download(url string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "text/csv,text/plain;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, &statusError{code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, nil
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("%v: %d", ErrUnexpectedStatusCode, e.code)
}

func (e *statusError) Unwrap() error {
	return ErrUnexpectedStatusCode
}

// retryable reports whether the failure is worth another attempt. Network
// errors and temporary HTTP statuses are; anything else is not.
func retryable(err error) bool {
	var se *statusError
	if !errors.As(err, &se) {
		return true
	}

	switch se.code {
	case http.StatusRequestTimeout,
		http.StatusTooManyRequests,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}

	return false
}
