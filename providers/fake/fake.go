// Package fake provides a deterministic providers.Client for tests of code that
// drives the sign-in flow. It never touches the network.
package fake

import (
	"context"
	"sync"

	"github.com/giantswarm/oauth-clients/providers"
)

// Fixed values returned by every Client.
const (
	AuthorizationURL = "https://example.com"
	AccessToken      = "token"

	DefaultEmail = "fake@email.com"
	DefaultName  = "Test Name"
)

// Compile-time check that Client implements the providers.Client interface.
var _ providers.Client = (*Client)(nil)

// Client returns hard-coded successes: AuthorizationURL and AccessToken for the
// first two operations, and Email and Name for any access token, including "".
// Any authorization code is accepted, including "".
type Client struct {
	Email string
	Name  string

	mu         sync.Mutex
	callCounts map[string]int // guarded by mu
}

// New returns a Client for DefaultEmail and DefaultName.
func New() *Client {
	return NewWithIdentity(DefaultEmail, DefaultName)
}

// NewWithIdentity returns a Client reporting the given email and name.
func NewWithIdentity(email, name string) *Client {
	return &Client{
		Email:      email,
		Name:       name,
		callCounts: make(map[string]int),
	}
}

func (c *Client) recordCall(op string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.callCounts == nil {
		c.callCounts = make(map[string]int)
	}
	c.callCounts[op]++
}

// Calls returns how many times op was called.
func (c *Client) Calls(op string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.callCounts[op]
}

// AuthorizationURL returns AuthorizationURL.
func (c *Client) AuthorizationURL(_ context.Context) (string, error) {
	c.recordCall(providers.OpAuthorizationURL)
	return AuthorizationURL, nil
}

// ExchangeCodeForToken returns AccessToken for any code.
func (c *Client) ExchangeCodeForToken(_ context.Context, _ string) (string, error) {
	c.recordCall(providers.OpExchangeCode)
	return AccessToken, nil
}

// FetchUserEmail returns c.Email for any access token.
func (c *Client) FetchUserEmail(_ context.Context, _ string) (string, error) {
	c.recordCall(providers.OpFetchEmail)
	return c.Email, nil
}

// FetchUserFullName returns c.Name for any access token.
func (c *Client) FetchUserFullName(_ context.Context, _ string) (string, error) {
	c.recordCall(providers.OpFetchFullName)
	return c.Name, nil
}
