// Package testutil provides test fixtures and a stub identity provider speaking the
// GitHub, GitLab and Google endpoints used by the provider clients.
package testutil
