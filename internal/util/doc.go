// Package util provides common utility functions used across the oauth-clients library.
//
// Key utilities:
//   - NormalizeURL: Strips trailing slashes from provider base URLs
//   - ClassifyIP: Classifies IP addresses (public, private, loopback, link-local)
//   - IsLinkLocal: Checks if an IP is link-local (cloud metadata SSRF protection)
package util
