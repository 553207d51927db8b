package credentials

import (
	"context"
	"fmt"
	"sync"

	"github.com/giantswarm/oauth-clients/providers"
)

// Compile-time check that Store implements providers.AuthenticationService.
var _ providers.AuthenticationService = (*Store)(nil)

// Store is a concurrency-safe in-memory providers.AuthenticationService.
// Credentials can be replaced at any time; clients pick up the change on their
// next call. The zero value is an empty store ready for use.
type Store struct {
	mu    sync.RWMutex
	creds map[providers.Provider]providers.Credential
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{creds: make(map[providers.Provider]providers.Credential)}
}

// OAuthCredential implements providers.AuthenticationService. It returns a copy
// of the stored credential or an error wrapping providers.ErrCredentialNotFound.
func (s *Store) OAuthCredential(_ context.Context, p providers.Provider) (*providers.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cred, ok := s.creds[p]
	if !ok {
		return nil, fmt.Errorf("%w for provider %q", providers.ErrCredentialNotFound, string(p))
	}
	return &cred, nil
}

// Set stores cred for p after validating it.
func (s *Store) Set(p providers.Provider, cred providers.Credential) error {
	if !p.Valid() {
		return fmt.Errorf("unknown provider %q", string(p))
	}
	if err := cred.ValidateForExchange(); err != nil {
		return fmt.Errorf("invalid %s credential: %w", p, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.initLocked()
	s.creds[p] = cred
	return nil
}

// Delete removes the credential for p.
func (s *Store) Delete(p providers.Provider) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.creds, p)
}

// Providers returns the providers that have a credential, in the order of
// providers.Providers.
func (s *Store) Providers() []providers.Provider {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []providers.Provider
	for _, p := range providers.Providers() {
		if _, ok := s.creds[p]; ok {
			out = append(out, p)
		}
	}
	return out
}

// merge stores every credential in creds, failing on the first invalid one.
// Nothing is stored when any credential is invalid.
func (s *Store) merge(creds map[providers.Provider]providers.Credential) error {
	for p, cred := range creds {
		if err := cred.ValidateForExchange(); err != nil {
			return fmt.Errorf("invalid %s credential: %w", p, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.initLocked()
	for p, cred := range creds {
		s.creds[p] = cred
	}
	return nil
}

// initLocked allocates the credential map. s.mu must be held for writing.
func (s *Store) initLocked() {
	if s.creds == nil {
		s.creds = make(map[providers.Provider]providers.Credential)
	}
}
