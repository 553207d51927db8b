//go:build !testutils

package oauthclient

import "github.com/giantswarm/oauth-clients/providers"

// testClient never matches in regular builds, so the fake client cannot be
// selected in production.
func testClient(providers.Provider) (providers.Client, bool) {
	return nil, false
}
