// Package oauthclient selects and constructs OAuth identity-provider clients.
//
// NewClient maps a providers.Provider selector to the matching client:
//
//	client, err := oauthclient.NewClient(providers.ProviderGitHub, authService, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	authURL, err := client.AuthorizationURL(ctx)
//	// ... user signs in, provider redirects back with ?code=...
//	token, err := client.ExchangeCodeForToken(ctx, code)
//	email, err := client.FetchUserEmail(ctx, token)
//	name, err := client.FetchUserFullName(ctx, token)
//
// Every client reads its OAuth application credential (client ID, secret,
// redirect URL) from the providers.AuthenticationService on each call.
//
// # Errors
//
// Failures are *providers.Error values classified by kind (configuration,
// network, upstream rejected, malformed). Show end users providers.PublicMessage
// only, and send the error itself to logs:
//
//	email, err := client.FetchUserEmail(ctx, token)
//	if err != nil {
//	    logger.Warn("sign-in failed", "provider", p, "error_kind", providers.KindOf(err), "error", err)
//	    http.Error(w, providers.PublicMessage, http.StatusUnauthorized)
//	    return
//	}
//
// # Test Client
//
// Builds with the testutils tag accept ProviderTest, which returns a
// providers/fake client with fixed values and no network access:
//
//	go test -tags testutils ./...
//
// Regular builds reject the "test" selector like any unknown provider.
//
// # Observability
//
// When Config carries a Logger, Instrumentation or Auditor, the returned client
// logs, traces and audits every operation. Codes and tokens are never recorded.
package oauthclient
