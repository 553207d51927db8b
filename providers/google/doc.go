// Package google implements providers.Client for Google OAuth 2.0.
//
// The client uses the authorization code flow against Google's authorization
// server and reads identity from the OpenID Connect userinfo endpoint
// (https://www.googleapis.com/oauth2/v3/userinfo).
//
// By default the client requests the userinfo.email and userinfo.profile scopes
// and asks for offline access.
//
// FetchUserEmail requires the email_verified claim to be true. Google Workspace
// accounts are always verified; consumer accounts created with a third-party
// address may not be.
//
// Example usage:
//
//	client, err := google.NewClient(authService, &google.Config{
//	    RequestTimeout: 10 * time.Second,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	token, err := client.ExchangeCodeForToken(ctx, code)
package google
