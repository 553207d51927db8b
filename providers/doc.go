// Package providers defines the client contract shared by all OAuth identity providers.
//
// The Client interface covers the four operations of the authorization-code sign-in
// flow: building the authorization URL, exchanging the code for an access token, and
// looking up the signed-in user's verified email address and display name.
//
// Implementations are provided in subpackages:
//   - providers/github: GitHub OAuth Apps
//   - providers/gitlab: GitLab.com and self-managed GitLab
//   - providers/google: Google OAuth 2.0
//   - providers/fake: deterministic stub for tests, no network access
//
// Clients read their OAuth application credential from an AuthenticationService on
// every call, so credential changes take effect without rebuilding clients.
//
// # Errors
//
// Every failure is a *Error classified by Kind:
//   - KindConfiguration: missing or invalid client ID, secret or redirect URL
//   - KindNetwork: the provider could not be reached
//   - KindUpstreamRejected: the provider rejected the code or token
//   - KindMalformed: the provider response lacks an expected field, or the
//     account's email address is not verified
//
// Nothing is retried. Authorization codes and access tokens never appear in
// error messages. End users should only ever see PublicMessage.
package providers
