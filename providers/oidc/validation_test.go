package oidc

import (
	"strings"
	"testing"
)

func TestValidateBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
		errMsg  string
	}{
		{name: "gitlab.com", url: "https://gitlab.com"},
		{name: "self-managed with path", url: "https://example.com/gitlab"},
		{name: "self-managed with port", url: "https://gitlab.example.com:8443"},
		{name: "private IP allowed", url: "https://10.0.0.12"},

		{name: "reject http", url: "http://gitlab.example.com", wantErr: true, errMsg: "must use HTTPS"},
		{name: "reject missing scheme", url: "gitlab.example.com", wantErr: true, errMsg: "must use HTTPS"},
		{name: "reject missing host", url: "https://", wantErr: true, errMsg: "must have a hostname"},
		{name: "reject query", url: "https://gitlab.example.com?x=1", wantErr: true, errMsg: "query or fragment"},
		{name: "reject loopback", url: "https://127.0.0.1", wantErr: true, errMsg: "loopback"},
		{name: "reject IPv6 loopback", url: "https://[::1]", wantErr: true, errMsg: "loopback"},
		{name: "reject localhost", url: "https://localhost", wantErr: true, errMsg: "loopback"},
		{name: "reject localhost with port", url: "https://LOCALHOST:8443/gitlab", wantErr: true, errMsg: "loopback"},
		{name: "reject localhost subdomain", url: "https://gitlab.localhost", wantErr: true, errMsg: "loopback"},
		{name: "reject metadata service", url: "https://169.254.169.254", wantErr: true, errMsg: "link-local"},
		{name: "reject unspecified", url: "https://0.0.0.0", wantErr: true, errMsg: "unspecified"},
		{name: "reject unparsable", url: "https://gitlab.example.com/%zz", wantErr: true, errMsg: "invalid base URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBaseURL(tt.url)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ValidateBaseURL(%q) expected error, got nil", tt.url)
				}
				if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("ValidateBaseURL(%q) error = %v, want error containing %q", tt.url, err, tt.errMsg)
				}
				return
			}
			if err != nil {
				t.Errorf("ValidateBaseURL(%q) unexpected error = %v", tt.url, err)
			}
		})
	}
}

func TestValidateScopes(t *testing.T) {
	tooMany := make([]string, 51)
	for i := range tooMany {
		tooMany[i] = "scope"
	}

	tests := []struct {
		name    string
		scopes  []string
		wantErr bool
		errMsg  string
	}{
		{name: "valid single scope", scopes: []string{"openid"}},
		{name: "valid multiple scopes", scopes: []string{"openid", "profile", "email"}},
		{name: "valid with URL scope", scopes: []string{"https://www.googleapis.com/auth/userinfo.email"}},
		{name: "empty array", scopes: []string{}},
		{name: "accept max scope length", scopes: []string{strings.Repeat("a", 256)}},

		{name: "reject empty scope", scopes: []string{"openid", "", "profile"}, wantErr: true, errMsg: "is empty"},
		{name: "reject too many scopes", scopes: tooMany, wantErr: true, errMsg: "too many scopes"},
		{name: "reject scope too long", scopes: []string{strings.Repeat("a", 257)}, wantErr: true, errMsg: "exceeds maximum length"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateScopes(tt.scopes)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ValidateScopes() expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("ValidateScopes() error = %v, want error containing %q", err, tt.errMsg)
				}
				return
			}
			if err != nil {
				t.Errorf("ValidateScopes() unexpected error = %v", err)
			}
		})
	}
}
