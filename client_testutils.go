//go:build testutils

package oauthclient

import (
	"github.com/giantswarm/oauth-clients/providers"
	"github.com/giantswarm/oauth-clients/providers/fake"
)

// ProviderTest selects the fake client. It only exists in builds with the
// testutils tag.
const ProviderTest providers.Provider = "test"

// testClient returns a fresh fake client for ProviderTest.
func testClient(p providers.Provider) (providers.Client, bool) {
	if p != ProviderTest {
		return nil, false
	}
	return fake.New(), true
}
