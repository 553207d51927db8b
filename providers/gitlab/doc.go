// Package gitlab implements providers.Client for GitLab.
//
// Both gitlab.com and self-managed instances are supported. GitLab acts as an
// OpenID Connect provider, so identity is read from /oauth/userinfo rather than
// the REST API.
//
// # Self-managed Instances
//
// Set Config.BaseURL to the instance URL. The URL must use HTTPS and must not
// point at loopback or link-local addresses; private network addresses are
// allowed. Instances served under a relative URL root work as expected:
//
//	client, err := gitlab.NewClient(authService, &gitlab.Config{
//	    BaseURL: "https://example.com/gitlab",
//	})
//
// # Default Scopes
//
// When no custom scopes are provided, the client requests openid, profile and
// email. FetchUserEmail requires the email_verified claim, which GitLab sets
// once the primary address is confirmed.
package gitlab
