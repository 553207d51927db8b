package oidc

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/giantswarm/oauth-clients/providers"
)

func boolPtr(b bool) *bool { return &b }

func TestFetchUserInfo(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind providers.Kind
		wantSub  string
	}{
		{
			name:    "standard claims",
			status:  http.StatusOK,
			body:    `{"sub":"123","email":"jane@example.com","email_verified":true,"name":"Jane Doe"}`,
			wantSub: "123",
		},
		{
			name:     "missing sub",
			status:   http.StatusOK,
			body:     `{"email":"jane@example.com"}`,
			wantKind: providers.KindMalformed,
		},
		{
			name:     "invalid JSON",
			status:   http.StatusOK,
			body:     `{not json`,
			wantKind: providers.KindMalformed,
		},
		{
			name:     "expired token",
			status:   http.StatusUnauthorized,
			body:     `{"error":"invalid_token"}`,
			wantKind: providers.KindUpstreamRejected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if got := r.Header.Get("Authorization"); got != "Bearer access-token" {
					t.Errorf("Authorization = %q, want bearer token", got)
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			info, err := FetchUserInfo(context.Background(), providers.ProviderGitLab, providers.OpFetchEmail,
				server.Client(), server.URL, "access-token")

			if tt.wantKind != providers.KindUnknown {
				if err == nil {
					t.Fatal("FetchUserInfo() expected error, got nil")
				}
				if got := providers.KindOf(err); got != tt.wantKind {
					t.Errorf("KindOf() = %v, want %v", got, tt.wantKind)
				}
				return
			}
			if err != nil {
				t.Fatalf("FetchUserInfo() unexpected error = %v", err)
			}
			if info.Subject != tt.wantSub {
				t.Errorf("Subject = %q, want %q", info.Subject, tt.wantSub)
			}
		})
	}
}

func TestUserInfo_VerifiedEmail(t *testing.T) {
	tests := []struct {
		name    string
		info    UserInfo
		want    string
		wantErr bool
	}{
		{name: "verified", info: UserInfo{Email: "jane@example.com", EmailVerified: boolPtr(true)}, want: "jane@example.com"},
		{name: "unverified", info: UserInfo{Email: "jane@example.com", EmailVerified: boolPtr(false)}, wantErr: true},
		{name: "verification claim missing", info: UserInfo{Email: "jane@example.com"}, wantErr: true},
		{name: "email missing", info: UserInfo{EmailVerified: boolPtr(true)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.info.VerifiedEmail(providers.ProviderGoogle)
			if tt.wantErr {
				if !errors.Is(err, providers.ErrMalformed) {
					t.Errorf("VerifiedEmail() error = %v, want malformed", err)
				}
				if got != "" {
					t.Errorf("VerifiedEmail() = %q, want empty on error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("VerifiedEmail() unexpected error = %v", err)
			}
			if got != tt.want {
				t.Errorf("VerifiedEmail() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUserInfo_FullName(t *testing.T) {
	tests := []struct {
		name string
		info UserInfo
		want string
	}{
		{"name claim", UserInfo{Name: "Jane Doe", GivenName: "J", FamilyName: "D"}, "Jane Doe"},
		{"given and family", UserInfo{GivenName: "Jane", FamilyName: "Doe"}, "Jane Doe"},
		{"given only", UserInfo{GivenName: "Jane"}, "Jane"},
		{"family only", UserInfo{FamilyName: "Doe"}, "Doe"},
		{"no name", UserInfo{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.FullName(); got != tt.want {
				t.Errorf("FullName() = %q, want %q", got, tt.want)
			}
		})
	}
}
