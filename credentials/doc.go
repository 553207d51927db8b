// Package credentials provides an in-memory providers.AuthenticationService
// loaded from YAML, dotenv files or the process environment.
//
// Applications with their own secret store implement
// providers.AuthenticationService directly; this package serves examples,
// tests and small deployments.
//
//	store := credentials.NewStore()
//	if err := store.LoadYAMLFile("credentials.yaml"); err != nil {
//	    log.Fatal(err)
//	}
//	client, err := oauthclient.NewClient(providers.ProviderGitHub, store, nil)
package credentials
