package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	oauthgithub "golang.org/x/oauth2/github"

	"github.com/giantswarm/oauth-clients/providers"
	"github.com/giantswarm/oauth-clients/providers/oidc"
)

// Compile-time check that Client implements the providers.Client interface.
var _ providers.Client = (*Client)(nil)

// provider is the selector this client serves.
const provider = providers.ProviderGitHub

// GitHub API endpoints
const (
	userEndpoint   = "https://api.github.com/user"
	emailsEndpoint = "https://api.github.com/user/emails"
	acceptHeader   = "application/vnd.github+json"
)

// Client implements providers.Client for GitHub OAuth Apps.
type Client struct {
	auth           providers.AuthenticationService
	endpoint       oauth2.Endpoint
	userURL        string
	emailsURL      string
	scopes         []string
	httpClient     *http.Client
	requestTimeout time.Duration
}

// Config holds optional GitHub client settings.
type Config struct {
	// Scopes are optional custom scopes (defaults to ["read:user", "user:email"]).
	Scopes []string

	// HTTPClient is an optional custom HTTP client.
	HTTPClient *http.Client

	// RequestTimeout is the timeout for GitHub API calls (default: 30s).
	RequestTimeout time.Duration
}

// NewClient creates a GitHub client that reads its OAuth application
// credential from auth on every call. It performs no network I/O.
func NewClient(auth providers.AuthenticationService, cfg *Config) (*Client, error) {
	if auth == nil {
		return nil, errors.New("authentication service is required")
	}
	if cfg == nil {
		cfg = &Config{}
	}

	// Default scopes if none provided
	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = []string{"read:user", "user:email"}
	}

	// Deep copy scopes to prevent external modification
	scopesCopy := make([]string, len(scopes))
	copy(scopesCopy, scopes)

	// SECURITY: Validate scopes
	if err := oidc.ValidateScopes(scopesCopy); err != nil {
		return nil, fmt.Errorf("invalid scopes: %w", err)
	}

	requestTimeout := providers.ResolveTimeout(cfg.RequestTimeout)

	// A fixed auth style keeps the exchange to a single request; auto-detection
	// retries failed exchanges with the other style.
	endpoint := oauthgithub.Endpoint
	endpoint.AuthStyle = oauth2.AuthStyleInParams

	return &Client{
		auth:           auth,
		endpoint:       endpoint,
		userURL:        userEndpoint,
		emailsURL:      emailsEndpoint,
		scopes:         scopesCopy,
		httpClient:     providers.ResolveHTTPClient(cfg.HTTPClient, requestTimeout),
		requestTimeout: requestTimeout,
	}, nil
}

// Provider returns the identity provider this client serves.
func (c *Client) Provider() providers.Provider {
	return provider
}

// oauth2Config builds a fresh oauth2.Config from the current credential.
func (c *Client) oauth2Config(cred *providers.Credential) *oauth2.Config {
	scopes := make([]string, len(c.scopes))
	copy(scopes, c.scopes)

	return &oauth2.Config{
		ClientID:     cred.ClientID,
		ClientSecret: cred.ClientSecret,
		RedirectURL:  cred.RedirectURL,
		Scopes:       scopes,
		Endpoint:     c.endpoint,
	}
}

// AuthorizationURL returns the GitHub authorization URL for the configured OAuth App.
func (c *Client) AuthorizationURL(ctx context.Context) (string, error) {
	cred, err := providers.LoadCredential(ctx, c.auth, provider, providers.OpAuthorizationURL)
	if err != nil {
		return "", err
	}

	return c.oauth2Config(cred).AuthCodeURL(""), nil
}

// ExchangeCodeForToken exchanges an authorization code for an access token.
// GitHub reports invalid codes with a 200 response carrying an error payload,
// which is classified as upstream rejected.
func (c *Client) ExchangeCodeForToken(ctx context.Context, code string) (string, error) {
	if code == "" {
		return "", providers.EmptyCodeError(provider)
	}

	cred, err := providers.LoadCredential(ctx, c.auth, provider, providers.OpExchangeCode)
	if err != nil {
		return "", err
	}

	ctx, cancel := providers.EnsureContextTimeout(ctx, c.requestTimeout)
	defer cancel()

	return providers.ExchangeCode(ctx, provider, c.oauth2Config(cred), c.httpClient, code)
}

// FetchUserEmail returns the user's primary email from /user/emails.
// The primary address must be verified.
func (c *Client) FetchUserEmail(ctx context.Context, accessToken string) (string, error) {
	ctx, cancel := providers.EnsureContextTimeout(ctx, c.requestTimeout)
	defer cancel()

	var emails []struct {
		Email    string `json:"email"`
		Primary  bool   `json:"primary"`
		Verified bool   `json:"verified"`
	}
	if err := providers.GetJSON(ctx, provider, providers.OpFetchEmail, c.httpClient, c.emailsURL, acceptHeader, accessToken, &emails); err != nil {
		return "", err
	}

	for _, email := range emails {
		if !email.Primary {
			continue
		}
		if email.Email == "" {
			break
		}
		if !email.Verified {
			return "", &providers.Error{
				Kind:        providers.KindMalformed,
				Provider:    provider,
				Op:          providers.OpFetchEmail,
				Description: "primary email is not verified",
			}
		}
		return email.Email, nil
	}

	return "", &providers.Error{
		Kind:        providers.KindMalformed,
		Provider:    provider,
		Op:          providers.OpFetchEmail,
		Description: "no primary email in response",
	}
}

// FetchUserFullName returns the user's profile name from /user.
// Accounts without a profile name yield an empty string.
func (c *Client) FetchUserFullName(ctx context.Context, accessToken string) (string, error) {
	ctx, cancel := providers.EnsureContextTimeout(ctx, c.requestTimeout)
	defer cancel()

	var ghUser struct {
		ID    int64  `json:"id"`
		Login string `json:"login"`
		Name  string `json:"name"`
	}
	if err := providers.GetJSON(ctx, provider, providers.OpFetchFullName, c.httpClient, c.userURL, acceptHeader, accessToken, &ghUser); err != nil {
		return "", err
	}

	if ghUser.ID == 0 && ghUser.Login == "" {
		return "", &providers.Error{
			Kind:        providers.KindMalformed,
			Provider:    provider,
			Op:          providers.OpFetchFullName,
			Description: "user response has no id or login",
		}
	}

	return ghUser.Name, nil
}
