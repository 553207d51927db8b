package gitlab

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	oauthgitlab "golang.org/x/oauth2/gitlab"

	"github.com/giantswarm/oauth-clients/internal/util"
	"github.com/giantswarm/oauth-clients/providers"
	"github.com/giantswarm/oauth-clients/providers/oidc"
)

// Compile-time check that Client implements the providers.Client interface.
var _ providers.Client = (*Client)(nil)

const provider = providers.ProviderGitLab

// DefaultBaseURL is the GitLab SaaS instance.
const DefaultBaseURL = "https://gitlab.com"

// Paths relative to the instance base URL
const (
	authorizePath = "/oauth/authorize"
	tokenPath     = "/oauth/token"
	userInfoPath  = "/oauth/userinfo"
)

// Client implements providers.Client for GitLab, either gitlab.com or a
// self-managed instance.
type Client struct {
	auth           providers.AuthenticationService
	baseURL        string
	endpoint       oauth2.Endpoint
	userInfoURL    string
	scopes         []string
	httpClient     *http.Client
	requestTimeout time.Duration
}

// Config holds optional GitLab client settings.
type Config struct {
	// BaseURL is the GitLab instance URL (default: https://gitlab.com).
	// Self-managed instances may live under a relative path, e.g. https://example.com/gitlab.
	BaseURL string

	// Scopes are optional custom scopes (defaults to ["openid", "profile", "email"]).
	Scopes []string

	// HTTPClient is an optional custom HTTP client.
	HTTPClient *http.Client

	// RequestTimeout is the timeout for GitLab API calls (default: 30s).
	RequestTimeout time.Duration
}

// NewClient creates a GitLab client that reads its OAuth application
// credential from auth on every call. It performs no network I/O.
func NewClient(auth providers.AuthenticationService, cfg *Config) (*Client, error) {
	if auth == nil {
		return nil, errors.New("authentication service is required")
	}
	if cfg == nil {
		cfg = &Config{}
	}

	baseURL := DefaultBaseURL
	if cfg.BaseURL != "" {
		baseURL = util.NormalizeURL(cfg.BaseURL)
		// SECURITY: the client secret is posted to this host
		if err := oidc.ValidateBaseURL(baseURL); err != nil {
			return nil, fmt.Errorf("invalid GitLab URL: %w", err)
		}
	}

	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = []string{"openid", "profile", "email"}
	}
	scopesCopy := make([]string, len(scopes))
	copy(scopesCopy, scopes)

	if err := oidc.ValidateScopes(scopesCopy); err != nil {
		return nil, fmt.Errorf("invalid scopes: %w", err)
	}

	requestTimeout := providers.ResolveTimeout(cfg.RequestTimeout)

	return &Client{
		auth:           auth,
		baseURL:        baseURL,
		endpoint:       endpointFor(baseURL),
		userInfoURL:    baseURL + userInfoPath,
		scopes:         scopesCopy,
		httpClient:     providers.ResolveHTTPClient(cfg.HTTPClient, requestTimeout),
		requestTimeout: requestTimeout,
	}, nil
}

// endpointFor returns the OAuth endpoints of the instance at baseURL.
func endpointFor(baseURL string) oauth2.Endpoint {
	endpoint := oauthgitlab.Endpoint
	if baseURL != DefaultBaseURL {
		endpoint = oauth2.Endpoint{
			AuthURL:  baseURL + authorizePath,
			TokenURL: baseURL + tokenPath,
		}
	}
	endpoint.AuthStyle = oauth2.AuthStyleInParams
	return endpoint
}

// Provider returns the identity provider this client serves.
func (c *Client) Provider() providers.Provider {
	return provider
}

// BaseURL returns the GitLab instance URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

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

// AuthorizationURL returns the authorization URL of the GitLab instance.
func (c *Client) AuthorizationURL(ctx context.Context) (string, error) {
	cred, err := providers.LoadCredential(ctx, c.auth, provider, providers.OpAuthorizationURL)
	if err != nil {
		return "", err
	}

	return c.oauth2Config(cred).AuthCodeURL(""), nil
}

// ExchangeCodeForToken exchanges an authorization code for an access token.
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

// FetchUserEmail returns the user's email from the OIDC userinfo endpoint.
// GitLab must report the address as verified.
func (c *Client) FetchUserEmail(ctx context.Context, accessToken string) (string, error) {
	ctx, cancel := providers.EnsureContextTimeout(ctx, c.requestTimeout)
	defer cancel()

	info, err := oidc.FetchUserInfo(ctx, provider, providers.OpFetchEmail, c.httpClient, c.userInfoURL, accessToken)
	if err != nil {
		return "", err
	}
	return info.VerifiedEmail(provider)
}

// FetchUserFullName returns the user's display name from the OIDC userinfo
// endpoint, or an empty string when the account has none.
func (c *Client) FetchUserFullName(ctx context.Context, accessToken string) (string, error) {
	ctx, cancel := providers.EnsureContextTimeout(ctx, c.requestTimeout)
	defer cancel()

	info, err := oidc.FetchUserInfo(ctx, provider, providers.OpFetchFullName, c.httpClient, c.userInfoURL, accessToken)
	if err != nil {
		return "", err
	}
	return info.FullName(), nil
}
