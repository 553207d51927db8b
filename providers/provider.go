package providers

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Provider identifies an external identity provider.
type Provider string

// Supported identity providers.
const (
	ProviderGitHub Provider = "github"
	ProviderGitLab Provider = "gitlab"
	ProviderGoogle Provider = "google"
)

// ErrCredentialNotFound is returned by an AuthenticationService when no OAuth
// application credential is configured for a provider.
var ErrCredentialNotFound = errors.New("oauth credential not found")

// Providers returns the production identity providers.
func Providers() []Provider {
	return []Provider{ProviderGitHub, ProviderGitLab, ProviderGoogle}
}

// Valid reports whether p is one of the production identity providers.
func (p Provider) Valid() bool {
	switch p {
	case ProviderGitHub, ProviderGitLab, ProviderGoogle:
		return true
	}
	return false
}

// String returns the provider name.
func (p Provider) String() string {
	return string(p)
}

// ParseProvider parses a provider name case-insensitively.
func ParseProvider(name string) (Provider, error) {
	p := Provider(strings.ToLower(strings.TrimSpace(name)))
	if !p.Valid() {
		return "", &Error{
			Kind:        KindConfiguration,
			Op:          "parse_provider",
			Description: fmt.Sprintf("unknown provider %q", name),
		}
	}
	return p, nil
}

// Client is the capability set every identity provider client implements.
// Implementations are safe for concurrent use by multiple goroutines.
type Client interface {
	// AuthorizationURL builds the provider's authorization endpoint URL with the
	// registered client ID, redirect URI and scopes. It performs no network I/O
	// against the provider.
	AuthorizationURL(ctx context.Context) (string, error)

	// ExchangeCodeForToken trades a one-time authorization code for a bearer access token.
	ExchangeCodeForToken(ctx context.Context, code string) (string, error)

	// FetchUserEmail returns the verified email address of the token's owner.
	FetchUserEmail(ctx context.Context, accessToken string) (string, error)

	// FetchUserFullName returns the display name of the token's owner.
	// An account without a display name yields an empty string and no error.
	FetchUserFullName(ctx context.Context, accessToken string) (string, error)
}

// AuthenticationService is the host's authentication subsystem. Clients use it
// only to read their OAuth application credential and never mutate it.
type AuthenticationService interface {
	// OAuthCredential returns the credential configured for the provider,
	// or an error wrapping ErrCredentialNotFound.
	OAuthCredential(ctx context.Context, provider Provider) (*Credential, error)
}

// Credential is an OAuth application registration at an identity provider.
type Credential struct {
	// ClientID is the OAuth application client ID.
	ClientID string

	// ClientSecret is the OAuth application client secret.
	ClientSecret string

	// RedirectURL is the callback URL registered with the provider.
	RedirectURL string
}

// Validate checks the fields required to build an authorization URL.
func (c *Credential) Validate() error {
	if c == nil {
		return errors.New("credential is nil")
	}
	if c.ClientID == "" {
		return errors.New("client ID is required")
	}
	if c.RedirectURL == "" {
		return errors.New("redirect URL is required")
	}
	u, err := url.Parse(c.RedirectURL)
	if err != nil {
		return fmt.Errorf("invalid redirect URL: %w", err)
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return fmt.Errorf("redirect URL must use http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("redirect URL must be absolute")
	}
	return nil
}

// ValidateForExchange checks the fields required for the token exchange.
func (c *Credential) ValidateForExchange() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.ClientSecret == "" {
		return errors.New("client secret is required")
	}
	return nil
}
