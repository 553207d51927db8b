package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"
)

// DefaultRequestTimeout bounds a provider call when the caller's context has no deadline.
const DefaultRequestTimeout = 30 * time.Second

// maxResponseBytes caps how much of a provider response body is read.
const maxResponseBytes = 1 << 20

// OAuth2ConfigExchanger is an interface for the Exchange method of oauth2.Config.
// This allows us to create shared helper functions that work with any provider's config.
type OAuth2ConfigExchanger interface {
	Exchange(ctx context.Context, code string, opts ...oauth2.AuthCodeOption) (*oauth2.Token, error)
}

// ResolveHTTPClient returns client, or a new client with the given timeout when client is nil.
func ResolveHTTPClient(client *http.Client, timeout time.Duration) *http.Client {
	if client != nil {
		return client
	}
	return &http.Client{Timeout: ResolveTimeout(timeout)}
}

// ResolveTimeout returns timeout, or DefaultRequestTimeout when timeout is not positive.
func ResolveTimeout(timeout time.Duration) time.Duration {
	if timeout <= 0 {
		return DefaultRequestTimeout
	}
	return timeout
}

// EnsureContextTimeout ensures the context has a deadline, adding one if needed.
// If the context already has a deadline, returns the original context with a no-op cancel.
func EnsureContextTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, ResolveTimeout(timeout))
}

// ExchangeCode performs the authorization-code grant and returns the access token.
// It makes exactly one request to the token endpoint and classifies failures:
//   - *oauth2.RetrieveError (error status or error payload): KindUpstreamRejected
//   - transport failures and context cancellation: KindNetwork
//   - unparsable responses or a missing access token: KindMalformed
//
// An empty code is rejected with KindUpstreamRejected before any request is made.
func ExchangeCode(ctx context.Context, p Provider, config OAuth2ConfigExchanger, httpClient *http.Client, code string, opts ...oauth2.AuthCodeOption) (string, error) {
	if code == "" {
		return "", EmptyCodeError(p)
	}

	// Use custom HTTP client
	ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)

	token, err := config.Exchange(ctx, code, opts...)
	if err != nil {
		return "", classifyExchangeError(p, err)
	}
	if token == nil || token.AccessToken == "" {
		return "", &Error{
			Kind:        KindMalformed,
			Provider:    p,
			Op:          OpExchangeCode,
			Description: "token response has no access_token",
		}
	}

	return token.AccessToken, nil
}

func classifyExchangeError(p Provider, err error) error {
	var re *oauth2.RetrieveError
	if errors.As(err, &re) {
		// The raw body is not kept; only the OAuth error code and description.
		status := 0
		if re.Response != nil {
			status = re.Response.StatusCode
		}
		desc := re.ErrorCode
		if re.ErrorDescription != "" {
			desc += ": " + re.ErrorDescription
		}
		if desc == "" {
			desc = "token endpoint rejected the request"
		}
		return &Error{
			Kind:        KindUpstreamRejected,
			Provider:    p,
			Op:          OpExchangeCode,
			Status:      status,
			Description: desc,
		}
	}

	if isNetworkError(err) {
		return &Error{Kind: KindNetwork, Provider: p, Op: OpExchangeCode, Err: err}
	}

	return &Error{Kind: KindMalformed, Provider: p, Op: OpExchangeCode, Err: err}
}

// isNetworkError reports whether err is a transport-level failure.
func isNetworkError(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// GetJSON issues a single bearer-authenticated GET to endpoint and decodes the JSON
// response into out. A non-2xx status is KindUpstreamRejected, a transport failure
// is KindNetwork and an undecodable body is KindMalformed.
func GetJSON(ctx context.Context, p Provider, op string, httpClient *http.Client, endpoint, accept, accessToken string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return ConfigurationError(p, op, fmt.Errorf("failed to create request: %w", err))
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", accept)

	resp, err := httpClient.Do(req)
	if err != nil {
		return &Error{Kind: KindNetwork, Provider: p, Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return &Error{
			Kind:        KindUpstreamRejected,
			Provider:    p,
			Op:          op,
			Status:      resp.StatusCode,
			Description: "request failed",
		}
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		if isNetworkError(err) {
			return &Error{Kind: KindNetwork, Provider: p, Op: op, Err: err}
		}
		return &Error{
			Kind:        KindMalformed,
			Provider:    p,
			Op:          op,
			Status:      resp.StatusCode,
			Description: "failed to decode response",
			Err:         err,
		}
	}

	return nil
}

// LoadCredential reads p's OAuth application credential from auth and validates
// it for op. Every failure is KindConfiguration.
func LoadCredential(ctx context.Context, auth AuthenticationService, p Provider, op string) (*Credential, error) {
	cred, err := auth.OAuthCredential(ctx, p)
	if err != nil {
		return nil, ConfigurationError(p, op, fmt.Errorf("failed to read credential: %w", err))
	}

	validate := cred.Validate
	if op == OpExchangeCode {
		validate = cred.ValidateForExchange
	}
	if err := validate(); err != nil {
		return nil, ConfigurationError(p, op, err)
	}

	return cred, nil
}
