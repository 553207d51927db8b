package fake

import (
	"context"
	"sync"
	"testing"

	"github.com/giantswarm/oauth-clients/providers"
)

func TestClient_FixedValues(t *testing.T) {
	client := New()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		authURL, err := client.AuthorizationURL(ctx)
		if err != nil || authURL != "https://example.com" {
			t.Errorf("AuthorizationURL() = %q, %v, want %q", authURL, err, "https://example.com")
		}
	}

	for _, code := range []string{"abc", "", "rejected-code"} {
		token, err := client.ExchangeCodeForToken(ctx, code)
		if err != nil || token != "token" {
			t.Errorf("ExchangeCodeForToken(%q) = %q, %v, want %q", code, token, err, "token")
		}
	}
}

func TestClient_Identity(t *testing.T) {
	tests := []struct {
		name      string
		client    *Client
		wantEmail string
		wantName  string
	}{
		{name: "default identity", client: New(), wantEmail: "fake@email.com", wantName: "Test Name"},
		{name: "custom identity", client: NewWithIdentity("jane@example.com", "Jane Doe"), wantEmail: "jane@example.com", wantName: "Jane Doe"},
		{name: "zero value", client: &Client{}, wantEmail: "", wantName: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, token := range []string{"token", "", "anything"} {
				email, err := tt.client.FetchUserEmail(context.Background(), token)
				if err != nil || email != tt.wantEmail {
					t.Errorf("FetchUserEmail(%q) = %q, %v, want %q", token, email, err, tt.wantEmail)
				}
				name, err := tt.client.FetchUserFullName(context.Background(), token)
				if err != nil || name != tt.wantName {
					t.Errorf("FetchUserFullName(%q) = %q, %v, want %q", token, name, err, tt.wantName)
				}
			}
		})
	}
}

func TestClient_CallCounts(t *testing.T) {
	client := New()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = client.ExchangeCodeForToken(ctx, "code")
			_, _ = client.FetchUserEmail(ctx, "token")
		}()
	}
	wg.Wait()

	if got := client.Calls(providers.OpExchangeCode); got != 50 {
		t.Errorf("Calls(exchange) = %d, want 50", got)
	}
	if got := client.Calls(providers.OpFetchEmail); got != 50 {
		t.Errorf("Calls(fetch_email) = %d, want 50", got)
	}
	if got := client.Calls(providers.OpFetchFullName); got != 0 {
		t.Errorf("Calls(fetch_full_name) = %d, want 0", got)
	}
}

func TestClient_ZeroValueCountsConcurrently(t *testing.T) {
	var client Client
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = client.AuthorizationURL(ctx)
		}()
		go func() {
			defer wg.Done()
			_ = client.Calls(providers.OpAuthorizationURL)
		}()
	}
	wg.Wait()

	if got := client.Calls(providers.OpAuthorizationURL); got != 20 {
		t.Errorf("Calls(authorization_url) = %d, want 20", got)
	}
}
