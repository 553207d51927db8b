package oidc

import (
	"fmt"
	"net"
	"net/url"

	"github.com/giantswarm/oauth-clients/internal/util"
)

// ValidateBaseURL validates the base URL of a self-managed provider instance.
//
// Security Considerations:
//   - HTTPS Enforcement: Prevents client secret and code interception
//   - Loopback Blocking: Prevents attacks against localhost services
//   - Link-local Blocking: Prevents metadata service attacks (169.254.169.254)
//
// Private ranges are allowed: self-managed GitLab commonly runs on an internal network.
//
// Example:
//
//	if err := ValidateBaseURL("https://gitlab.example.com"); err != nil {
//	    return fmt.Errorf("invalid GitLab URL: %w", err)
//	}
func ValidateBaseURL(baseURL string) error {
	u, err := url.Parse(baseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}

	// SECURITY: Enforce HTTPS to prevent credential leakage
	if u.Scheme != "https" {
		return fmt.Errorf("base URL must use HTTPS, got %q", u.Scheme)
	}

	host := u.Hostname()
	if host == "" {
		return fmt.Errorf("base URL must have a hostname")
	}

	if u.RawQuery != "" || u.Fragment != "" {
		return fmt.Errorf("base URL must not have a query or fragment")
	}

	if util.IsLoopbackHostname(host) {
		return fmt.Errorf("base URL must not point to loopback addresses")
	}

	if ip := net.ParseIP(host); ip != nil {
		switch util.ClassifyIP(ip) {
		case util.IPClassificationLoopback:
			return fmt.Errorf("base URL must not point to loopback addresses")
		case util.IPClassificationLinkLocal:
			return fmt.Errorf("base URL must not point to link-local addresses")
		case util.IPClassificationUnspecified:
			return fmt.Errorf("base URL must not point to unspecified addresses")
		}
	}

	return nil
}

// ValidateScopes validates OAuth scopes.
//
// Security Considerations:
//   - Array Size Limit: Prevents DoS from excessive scopes
//   - String Length Limit: Prevents memory exhaustion
//   - Empty Scope Detection: Prevents malformed requests
//
// Example:
//
//	scopes := []string{"openid", "profile", "email"}
//	if err := ValidateScopes(scopes); err != nil {
//	    return fmt.Errorf("invalid scopes: %w", err)
//	}
func ValidateScopes(scopes []string) error {
	if len(scopes) > 50 {
		return fmt.Errorf("too many scopes (max 50, got %d)", len(scopes))
	}

	for i, scope := range scopes {
		if scope == "" {
			return fmt.Errorf("scope at index %d is empty", i)
		}
		if len(scope) > 256 {
			return fmt.Errorf("scope at index %d exceeds maximum length of 256 characters", i)
		}
	}

	return nil
}
