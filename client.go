package oauthclient

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/giantswarm/oauth-clients/providers"
	"github.com/giantswarm/oauth-clients/providers/github"
	"github.com/giantswarm/oauth-clients/providers/gitlab"
	"github.com/giantswarm/oauth-clients/providers/google"
)

// opNewClient names client construction in configuration errors.
const opNewClient = "new_client"

// ErrUnsupportedProvider is wrapped in the configuration error returned for a
// provider selector outside the supported set.
var ErrUnsupportedProvider = errors.New("unsupported provider")

// NewClient returns the client for provider p. The client reads its OAuth
// application credential from auth on every call, so credential changes take
// effect without rebuilding clients.
//
// NewClient performs no I/O. Every call returns an independent client; the
// only state shared between clients is auth and what cfg points to.
//
// An unknown provider, a nil auth or an invalid cfg is a configuration error.
func NewClient(p providers.Provider, auth providers.AuthenticationService, cfg *Config) (providers.Client, error) {
	client, err := newClient(p, auth, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.observed() {
		client = newInstrumentedClient(p, client, cfg)
	}
	return client, nil
}

// MustNewClient is like NewClient but panics on error. It is meant for
// static wiring at program start, where a bad provider is a fatal
// configuration error.
func MustNewClient(p providers.Provider, auth providers.AuthenticationService, cfg *Config) providers.Client {
	client, err := NewClient(p, auth, cfg)
	if err != nil {
		panic(fmt.Sprintf("oauthclient: %v", err))
	}
	return client
}

func newClient(p providers.Provider, auth providers.AuthenticationService, cfg *Config) (providers.Client, error) {
	if client, ok := testClient(p); ok {
		return client, nil
	}

	if auth == nil {
		return nil, providers.ConfigurationError(p, opNewClient, errors.New("authentication service is required"))
	}

	var (
		httpClient = httpClientFrom(cfg)
		timeout    = timeoutFrom(cfg)
		client     providers.Client
		err        error
	)

	switch p {
	case providers.ProviderGitHub:
		client, err = github.NewClient(auth, &github.Config{
			Scopes:         cfg.scopesFor(p),
			HTTPClient:     httpClient,
			RequestTimeout: timeout,
		})
	case providers.ProviderGitLab:
		client, err = gitlab.NewClient(auth, &gitlab.Config{
			BaseURL:        gitLabURLFrom(cfg),
			Scopes:         cfg.scopesFor(p),
			HTTPClient:     httpClient,
			RequestTimeout: timeout,
		})
	case providers.ProviderGoogle:
		client, err = google.NewClient(auth, &google.Config{
			Scopes:         cfg.scopesFor(p),
			HTTPClient:     httpClient,
			RequestTimeout: timeout,
		})
	default:
		return nil, providers.ConfigurationError(p, opNewClient, fmt.Errorf("%w: %q", ErrUnsupportedProvider, string(p)))
	}
	if err != nil {
		return nil, providers.ConfigurationError(p, opNewClient, err)
	}

	return client, nil
}

func httpClientFrom(cfg *Config) *http.Client {
	if cfg == nil {
		return nil
	}
	return cfg.HTTPClient
}

func timeoutFrom(cfg *Config) time.Duration {
	if cfg == nil {
		return 0
	}
	return cfg.RequestTimeout
}

func gitLabURLFrom(cfg *Config) string {
	if cfg == nil {
		return ""
	}
	return cfg.GitLabURL
}
