// Package security provides sign-in audit logging, request correlation and
// HTTP security headers for applications built on the provider clients.
//
// # Audit Logging
//
// The Auditor writes structured slog records for provider calls and sign-in
// outcomes. Email addresses are hashed (truncated SHA-256) before logging, and
// authorization codes and access tokens are never passed to it.
//
//	auditor := security.NewAuditor(logger, true)
//	auditor.LogSignInCompleted(ctx, "github", email)
//
// # Request Correlation
//
// RequestIDMiddleware assigns each request an ID (a random UUID unless a valid
// X-Request-ID arrives from an upstream proxy). The ID travels in the request
// context and appears in audit records and client logs.
//
// # Security Headers
//
// SetSecurityHeaders applies clickjacking, sniffing, caching and referrer
// protections to sign-in responses.
package security
