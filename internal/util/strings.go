package util

import "strings"

// NormalizeURL normalizes a base URL by removing trailing slashes, so that
// "https://gitlab.example.com/" and "https://gitlab.example.com" join paths the same way.
//
// Example:
//
//	NormalizeURL("https://example.com/")   // Returns: "https://example.com"
//	NormalizeURL("https://example.com")    // Returns: "https://example.com"
//	NormalizeURL("https://example.com///") // Returns: "https://example.com"
func NormalizeURL(url string) string {
	return strings.TrimRight(url, "/")
}
