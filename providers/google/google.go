package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	oauthgoogle "golang.org/x/oauth2/google"

	"github.com/giantswarm/oauth-clients/providers"
	"github.com/giantswarm/oauth-clients/providers/oidc"
)

// Compile-time check that Client implements the providers.Client interface.
var _ providers.Client = (*Client)(nil)

const provider = providers.ProviderGoogle

// userInfoEndpoint is Google's OpenID Connect userinfo endpoint.
const userInfoEndpoint = "https://www.googleapis.com/oauth2/v3/userinfo"

// Default scopes
const (
	ScopeUserInfoEmail   = "https://www.googleapis.com/auth/userinfo.email"
	ScopeUserInfoProfile = "https://www.googleapis.com/auth/userinfo.profile"
)

// Client implements providers.Client for Google OAuth 2.0.
type Client struct {
	auth           providers.AuthenticationService
	endpoint       oauth2.Endpoint
	userInfoURL    string
	scopes         []string
	httpClient     *http.Client
	requestTimeout time.Duration
}

// Config holds optional Google client settings.
type Config struct {
	// Scopes are optional custom scopes (defaults to userinfo.email and userinfo.profile).
	Scopes []string

	// HTTPClient is an optional custom HTTP client.
	HTTPClient *http.Client

	// RequestTimeout is the timeout for Google API calls (default: 30s).
	RequestTimeout time.Duration
}

// NewClient creates a Google client that reads its OAuth application
// credential from auth on every call. It performs no network I/O.
func NewClient(auth providers.AuthenticationService, cfg *Config) (*Client, error) {
	if auth == nil {
		return nil, errors.New("authentication service is required")
	}
	if cfg == nil {
		cfg = &Config{}
	}

	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = []string{ScopeUserInfoEmail, ScopeUserInfoProfile}
	}
	scopesCopy := make([]string, len(scopes))
	copy(scopesCopy, scopes)

	if err := oidc.ValidateScopes(scopesCopy); err != nil {
		return nil, fmt.Errorf("invalid scopes: %w", err)
	}

	requestTimeout := providers.ResolveTimeout(cfg.RequestTimeout)

	endpoint := oauthgoogle.Endpoint
	endpoint.AuthStyle = oauth2.AuthStyleInParams

	return &Client{
		auth:           auth,
		endpoint:       endpoint,
		userInfoURL:    userInfoEndpoint,
		scopes:         scopesCopy,
		httpClient:     providers.ResolveHTTPClient(cfg.HTTPClient, requestTimeout),
		requestTimeout: requestTimeout,
	}, nil
}

// Provider returns the identity provider this client serves.
func (c *Client) Provider() providers.Provider {
	return provider
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

// AuthorizationURL returns the Google consent screen URL. It requests offline
// access so Google issues a refresh token alongside the access token.
func (c *Client) AuthorizationURL(ctx context.Context) (string, error) {
	cred, err := providers.LoadCredential(ctx, c.auth, provider, providers.OpAuthorizationURL)
	if err != nil {
		return "", err
	}

	return c.oauth2Config(cred).AuthCodeURL("", oauth2.AccessTypeOffline), nil
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

// FetchUserEmail returns the user's email from the userinfo endpoint.
// Google must report the address as verified.
func (c *Client) FetchUserEmail(ctx context.Context, accessToken string) (string, error) {
	ctx, cancel := providers.EnsureContextTimeout(ctx, c.requestTimeout)
	defer cancel()

	info, err := oidc.FetchUserInfo(ctx, provider, providers.OpFetchEmail, c.httpClient, c.userInfoURL, accessToken)
	if err != nil {
		return "", err
	}
	return info.VerifiedEmail(provider)
}

// FetchUserFullName returns the user's display name from the userinfo endpoint,
// or an empty string when the profile scope was not granted.
func (c *Client) FetchUserFullName(ctx context.Context, accessToken string) (string, error) {
	ctx, cancel := providers.EnsureContextTimeout(ctx, c.requestTimeout)
	defer cancel()

	info, err := oidc.FetchUserInfo(ctx, provider, providers.OpFetchFullName, c.httpClient, c.userInfoURL, accessToken)
	if err != nil {
		return "", err
	}
	return info.FullName(), nil
}
