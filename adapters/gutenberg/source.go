// Package gutenberg downloads raw book text from Project Gutenberg
// style URLs.
package gutenberg

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tjhootman/audiobook-generator/domain/entities"
	"github.com/tjhootman/audiobook-generator/domain/repositories"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "Mozilla/5.0"
)

// Config holds configuration for the Source adapter.
type Config struct {
	Timeout   time.Duration // Optional: per-request timeout (default: 30s)
	UserAgent string        // Optional: User-Agent header (default: Mozilla/5.0)
}

// Source implements BookSource over plain HTTP.
type Source struct {
	client    *http.Client
	userAgent string
	retry     retryPolicy
	logger    *zap.Logger
}

var _ repositories.BookSource = (*Source)(nil)

// retryPolicy is the minimal surface Source needs from internal/retry,
// kept as an interface so tests can observe attempts.
type retryPolicy interface {
	Do(ctx context.Context, op func(ctx context.Context) error) error
}

// NewSource creates a Source with the shared retry policy.
func NewSource(config Config, policy retryPolicy, logger *zap.Logger) *Source {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	userAgent := config.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	return &Source{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
		retry:     policy,
		logger:    logger,
	}
}

// Download fetches the raw text behind rawURL. A malformed URL, a
// non-success status or a non-text payload all surface as FetchError;
// transient statuses are retried first.
func (s *Source) Download(ctx context.Context, rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", &entities.FetchError{URL: rawURL, Err: fmt.Errorf("invalid URL format")}
	}

	s.logger.Info("Downloading book text", zap.String("url", rawURL))

	var body string
	err = s.retry.Do(ctx, func(ctx context.Context) error {
		var opErr error
		body, opErr = s.fetch(ctx, rawURL)
		return opErr
	})
	if err != nil {
		return "", &entities.FetchError{URL: rawURL, Err: err}
	}

	s.logger.Info("Download successful", zap.Int("bytes", len(body)))
	return body, nil
}

func (s *Source) fetch(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", &transientError{fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := fmt.Errorf("unexpected status %s", resp.Status)
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return "", &transientError{err}
		}
		return "", err
	}

	contentType := strings.TrimSpace(strings.Split(resp.Header.Get("Content-Type"), ";")[0])
	if contentType != "" && !strings.HasPrefix(contentType, "text/") {
		return "", fmt.Errorf("expected a text resource, got Content-Type %q", contentType)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &transientError{fmt.Errorf("reading response body: %w", err)}
	}
	return string(data), nil
}

// transientError marks a failure as retryable for the policy predicate.
type transientError struct {
	err error
}

func (e *transientError) Error() string { return e.err.Error() }

func (e *transientError) Unwrap() error { return e.err }

// Transient reports whether err was classified as retryable by this
// adapter. Use it as the retry policy's predicate.
func Transient(err error) bool {
	var te *transientError
	return errors.As(err, &te)
}
