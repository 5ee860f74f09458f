package fetcher

import (
	"time"

	"go.uber.org/zap"
	"resty.dev/v3"
)

const (
	// Default retry configuration
	defaultRetryWaitTime    = 500 * time.Millisecond
	defaultRetryMaxWaitTime = 5 * time.Second
)

// HTTPOptions tunes the client built by NewHTTPClient.
type HTTPOptions struct {
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries int
	// Timeout bounds a single attempt. Zero leaves it to the request context.
	Timeout time.Duration
	Logger  *zap.Logger
}

// NewHTTPClient creates a new HTTP client with retry logic and exponential backoff.
// Rate-limited responses are not retried: the caller is expected to move on to
// another provider instead of hammering a throttled one.
func NewHTTPClient(baseURL string, opts HTTPOptions) *resty.Client {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetRetryCount(opts.MaxRetries).
		SetRetryWaitTime(defaultRetryWaitTime).
		SetRetryMaxWaitTime(defaultRetryMaxWaitTime).
		SetRetryDefaultConditions(false).
		AddRetryConditions(retryCondition).
		AddRetryHooks(retryHook(log))

	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}

	return client
}

// retryCondition determines whether a request should be retried based on the response and error
func retryCondition(r *resty.Response, err error) bool {
	// Retry on network errors
	if err != nil {
		return true
	}

	switch {
	case r.StatusCode() == 429:
		return false
	case r.StatusCode() == 408:
		return true
	case r.StatusCode() >= 500:
		return true
	default:
		return false
	}
}

// retryHook logs retry attempts for observability
func retryHook(log *zap.Logger) func(*resty.Response, error) {
	return func(r *resty.Response, err error) {
		if err != nil {
			log.Debug("retrying request due to error",
				zap.String("url", r.Request.URL),
				zap.Int("attempt", r.Request.Attempt),
				zap.Error(err))
			return
		}

		log.Debug("retrying request due to status code",
			zap.String("url", r.Request.URL),
			zap.Int("attempt", r.Request.Attempt),
			zap.Int("status_code", r.StatusCode()))
	}
}
