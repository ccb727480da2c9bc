// Package httpx is the shared rate-limited, retried HTTP transport used by
// internal/entrez, internal/idconvert, and internal/auxsvc. It generalizes
// the request/rate-limit/classify-error shape of the corpus's
// asta.Client.callTool into a single reusable helper so every outbound
// NCBI call goes through the same token bucket, credential rotation, and
// retry policy (spec.md §4.1-§4.3, §5).
package httpx

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/rajdeepmondaldotcom/pmcgrab/internal/ratelimit"
	"github.com/rajdeepmondaldotcom/pmcgrab/internal/retry"
)

// DefaultTimeout is the per-request timeout applied to every HTTP call
// (spec.md §5), overridable via the TIMEOUT environment variable.
const DefaultTimeout = 60 * time.Second

// Client wraps an *http.Client with the rate limiter, credential pool, and
// retry policy every NCBI-facing caller needs.
type Client struct {
	HTTP    *http.Client
	Limiter *ratelimit.Limiter
	Creds   *ratelimit.CredentialPool
	Policy  retry.Policy
	Log     zerolog.Logger
}

// New builds a Client with connection pooling handled by the shared
// *http.Client (spec.md §5: "HTTP client: shared with internal connection
// pooling").
func New(limiter *ratelimit.Limiter, creds *ratelimit.CredentialPool, policy retry.Policy, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		HTTP:    &http.Client{Timeout: timeout},
		Limiter: limiter,
		Creds:   creds,
		Policy:  policy,
		Log:     log,
	}
}

// classifyHTTPError maps a transport-level error or status code to a
// retry.Kind per spec.md §4.3 and §7.
func classifyHTTPError(err error, statusCode int) *retry.Error {
	if err != nil {
		return retry.New(retry.KindNetworkError, err)
	}
	switch {
	case statusCode == http.StatusTooManyRequests:
		return retry.New(retry.KindRateLimited, fmt.Errorf("HTTP %d", statusCode))
	case statusCode >= 500:
		return retry.New(retry.KindServerError, fmt.Errorf("HTTP %d", statusCode))
	case statusCode >= 400:
		return retry.New(retry.KindNotFound, fmt.Errorf("HTTP %d", statusCode))
	default:
		return nil
	}
}

// GetParams describes one rate-limited, retried GET request.
type GetParams struct {
	BaseURL    string
	Query      url.Values
	EmailParam string // query param name for the rotated email, "" to omit
	APIKeyName string // query param name for the API key, "" to omit
}

// Get performs a GET request under the shared rate limiter and retry
// policy, attaching a rotated email and the configured API key. It
// returns the response body bytes on success, or a *retry.Error on
// failure.
func (c *Client) Get(ctx context.Context, p GetParams) ([]byte, error) {
	var body []byte
	result := retry.Run(ctx, c.Policy, c.Limiter, func(ctx context.Context, attempt int) error {
		q := url.Values{}
		for k, vs := range p.Query {
			q[k] = vs
		}
		if p.EmailParam != "" && c.Creds != nil {
			q.Set(p.EmailParam, c.Creds.NextEmail())
		}
		if p.APIKeyName != "" && c.Creds != nil && c.Creds.HasAPIKey() {
			q.Set(p.APIKeyName, c.Creds.APIKey())
		}

		reqURL := p.BaseURL
		if encoded := q.Encode(); encoded != "" {
			reqURL += "?" + encoded
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return retry.New(retry.KindConfigError, err)
		}

		c.Log.Debug().Str("url", p.BaseURL).Int("attempt", attempt).Msg("issuing request")

		resp, err := c.HTTP.Do(req)
		if err != nil {
			return classifyHTTPError(err, 0)
		}
		defer resp.Body.Close()

		if classified := classifyHTTPError(nil, resp.StatusCode); classified != nil {
			return classified
		}

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return retry.New(retry.KindNetworkError, err)
		}
		if len(data) == 0 {
			return retry.New(retry.KindNotFound, fmt.Errorf("empty response body"))
		}
		body = data
		return nil
	})

	if result.Err != nil {
		return nil, result.Err
	}
	return body, nil
}
