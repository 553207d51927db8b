package oauthclient

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/giantswarm/oauth-clients/instrumentation"
	"github.com/giantswarm/oauth-clients/providers"
	"github.com/giantswarm/oauth-clients/security"
)

// Config holds optional client settings. A nil *Config means defaults.
type Config struct {
	// HTTPClient is a custom HTTP client for provider requests.
	// Can be used to add proxies, transport-level logging, etc.
	// Default: a client with RequestTimeout
	HTTPClient *http.Client

	// RequestTimeout bounds each provider request when the caller's context
	// has no deadline.
	// Default: 30 seconds
	RequestTimeout time.Duration

	// GitLabURL is the base URL of a self-managed GitLab instance.
	// Default: https://gitlab.com
	GitLabURL string

	// Scopes overrides the default scopes per provider.
	Scopes map[providers.Provider][]string

	// Logger for structured logging of client operations.
	// Codes and tokens are never logged.
	Logger *slog.Logger

	// Instrumentation records spans and metrics for client operations (optional).
	Instrumentation *instrumentation.Instrumentation

	// Auditor records provider call outcomes with hashed email addresses (optional).
	Auditor *security.Auditor
}

// scopesFor returns the configured scopes for p, or nil for the provider defaults.
func (c *Config) scopesFor(p providers.Provider) []string {
	if c == nil || c.Scopes == nil {
		return nil
	}
	return c.Scopes[p]
}

// observed reports whether any observability component is configured.
func (c *Config) observed() bool {
	return c != nil && (c.Logger != nil || c.Instrumentation != nil || c.Auditor != nil)
}
