// Package github implements providers.Client for GitHub OAuth Apps.
//
// GitHub OAuth differs from OIDC providers in several key ways:
//   - No OIDC discovery: Endpoints are hardcoded (not dynamically discovered)
//   - Error payloads: invalid codes come back as HTTP 200 with an "error" field
//   - Email privacy: the profile email may be hidden, so the address is read from
//     /user/emails, which also reports verification status
//
// # Default Scopes
//
// When no custom scopes are provided, the client requests:
//   - read:user: Read user profile data
//   - user:email: Read user email addresses (required for FetchUserEmail)
//
// # Email Verification
//
// FetchUserEmail only returns the primary address, and only when GitHub marks it
// verified. An unverified primary address is reported as providers.KindMalformed.
//
// # Example Usage
//
//	client, err := github.NewClient(authService, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	authURL, err := client.AuthorizationURL(ctx)
package github
