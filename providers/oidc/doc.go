// Package oidc provides shared OpenID Connect utilities for the GitLab and
// Google clients.
//
// # Security Features
//
//   - HTTPS enforcement and loopback/link-local blocking for self-managed base URLs
//   - Input validation for scopes
//   - Verified-email enforcement on userinfo claims
//
// # Example Usage
//
//	info, err := oidc.FetchUserInfo(ctx, providers.ProviderGitLab, providers.OpFetchEmail,
//	    httpClient, "https://gitlab.com/oauth/userinfo", accessToken)
//	if err != nil {
//	    return "", err
//	}
//	return info.VerifiedEmail(providers.ProviderGitLab)
package oidc
