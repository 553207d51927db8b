package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/giantswarm/oauth-clients/providers"
)

// Test fixtures
const (
	TestClientID     = "test-client-id"
	TestClientSecret = "test-client-secret"
	TestRedirectURL  = "https://example.com/oauth/callback"

	// RejectedCode is refused by the IdentityProvider token endpoints.
	RejectedCode = "rejected-code"
)

// TestCredential returns a complete credential for tests.
func TestCredential() *providers.Credential {
	return &providers.Credential{
		ClientID:     TestClientID,
		ClientSecret: TestClientSecret,
		RedirectURL:  TestRedirectURL,
	}
}

// StaticAuth is an in-memory providers.AuthenticationService that counts reads.
type StaticAuth struct {
	mu    sync.RWMutex
	creds map[providers.Provider]*providers.Credential
	reads atomic.Int64
	err   error
}

// NewStaticAuth returns a StaticAuth serving cred for every production provider.
func NewStaticAuth(cred *providers.Credential) *StaticAuth {
	a := &StaticAuth{creds: make(map[providers.Provider]*providers.Credential)}
	for _, p := range providers.Providers() {
		a.creds[p] = cred
	}
	return a
}

// OAuthCredential implements providers.AuthenticationService.
func (a *StaticAuth) OAuthCredential(_ context.Context, p providers.Provider) (*providers.Credential, error) {
	a.reads.Add(1)

	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.err != nil {
		return nil, a.err
	}
	cred, ok := a.creds[p]
	if !ok || cred == nil {
		return nil, fmt.Errorf("%w for %s", providers.ErrCredentialNotFound, p)
	}
	c := *cred
	return &c, nil
}

// Set replaces the credential for p. A nil cred removes it.
func (a *StaticAuth) Set(p providers.Provider, cred *providers.Credential) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if cred == nil {
		delete(a.creds, p)
		return
	}
	a.creds[p] = cred
}

// FailWith makes every subsequent read return err.
func (a *StaticAuth) FailWith(err error) {
	a.mu.Lock()
	a.err = err
	a.mu.Unlock()
}

// Reads returns the number of credential reads.
func (a *StaticAuth) Reads() int64 {
	return a.reads.Load()
}

// RewriteTransport sends every request to Target, keeping path and query.
// It lets clients with hardcoded provider endpoints talk to a test server.
type RewriteTransport struct {
	Target *url.URL
	Base   http.RoundTripper
}

// RoundTrip implements http.RoundTripper.
func (t *RewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.URL.Scheme = t.Target.Scheme
	r.URL.Host = t.Target.Host
	r.Host = t.Target.Host

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(r)
}

// IdentityProvider is a stub server speaking the token and user endpoints of
// GitHub, GitLab and Google. Every identity is derived from the token, and every
// token from the code, so concurrent callers can check their results.
type IdentityProvider struct {
	Server *httptest.Server

	// UnverifiedEmail makes every user endpoint report an unverified email.
	UnverifiedEmail atomic.Bool

	requests atomic.Int64
}

// TokenForCode returns the access token the stub issues for code.
func TokenForCode(code string) string {
	return "token-" + code
}

// EmailForToken returns the verified email the stub reports for token.
func EmailForToken(token string) string {
	return strings.TrimPrefix(token, "token-") + "@example.com"
}

// NameForToken returns the display name the stub reports for token.
func NameForToken(token string) string {
	return "User " + strings.TrimPrefix(token, "token-")
}

// NewIdentityProvider starts the stub. Callers must Close it.
func NewIdentityProvider() *IdentityProvider {
	idp := &IdentityProvider{}
	mux := http.NewServeMux()

	// Token endpoints
	mux.HandleFunc("/login/oauth/access_token", idp.handleToken) // GitHub
	mux.HandleFunc("/oauth/token", idp.handleToken)              // GitLab
	mux.HandleFunc("/token", idp.handleToken)                    // Google

	// GitHub API
	mux.HandleFunc("/user", idp.withBearer(func(w http.ResponseWriter, token string) {
		writeJSON(w, map[string]any{
			"id":    42,
			"login": strings.TrimPrefix(token, "token-"),
			"name":  NameForToken(token),
		})
	}))
	mux.HandleFunc("/user/emails", idp.withBearer(func(w http.ResponseWriter, token string) {
		writeJSON(w, []map[string]any{
			{"email": "secondary-" + EmailForToken(token), "primary": false, "verified": true},
			{"email": EmailForToken(token), "primary": true, "verified": !idp.UnverifiedEmail.Load()},
		})
	}))

	// OIDC userinfo (GitLab, Google)
	userinfo := idp.withBearer(func(w http.ResponseWriter, token string) {
		writeJSON(w, map[string]any{
			"sub":            strings.TrimPrefix(token, "token-"),
			"email":          EmailForToken(token),
			"email_verified": !idp.UnverifiedEmail.Load(),
			"name":           NameForToken(token),
		})
	})
	mux.HandleFunc("/oauth/userinfo", userinfo)
	mux.HandleFunc("/oauth2/v3/userinfo", userinfo)

	idp.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		idp.requests.Add(1)
		mux.ServeHTTP(w, r)
	}))
	return idp
}

// HTTPClient returns a client routing every request to the stub.
func (idp *IdentityProvider) HTTPClient() *http.Client {
	target, _ := url.Parse(idp.Server.URL)
	return &http.Client{Transport: &RewriteTransport{Target: target}}
}

// Requests returns the number of requests the stub has served.
func (idp *IdentityProvider) Requests() int64 {
	return idp.requests.Load()
}

// Close shuts the stub down.
func (idp *IdentityProvider) Close() {
	idp.Server.Close()
}

func (idp *IdentityProvider) handleToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}
	if r.FormValue("client_id") != TestClientID || r.FormValue("client_secret") != TestClientSecret {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_client"})
		return
	}

	code := r.FormValue("code")
	if code == "" || code == RejectedCode {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"error":             "invalid_grant",
			"error_description": "The authorization code is invalid or expired",
		})
		return
	}

	writeJSON(w, map[string]any{
		"access_token": TokenForCode(code),
		"token_type":   "bearer",
	})
}

func (idp *IdentityProvider) withBearer(next func(w http.ResponseWriter, token string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || !strings.HasPrefix(token, "token-") {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, token)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
