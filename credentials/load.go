package credentials

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/giantswarm/oauth-clients/providers"
)

// EnvPrefix prefixes the credential environment variables, e.g.
// OAUTH_GITHUB_CLIENT_ID, OAUTH_GITHUB_CLIENT_SECRET, OAUTH_GITHUB_REDIRECT_URL.
const EnvPrefix = "OAUTH_"

// fileCredential is the YAML form of a providers.Credential.
type fileCredential struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RedirectURL  string `yaml:"redirect_url"`
}

// LoadYAML reads credentials keyed by provider name from r:
//
//	github:
//	  client_id: Iv1.abc
//	  client_secret: s3cr3t
//	  redirect_url: https://app.example.com/oauth/github/callback
//	gitlab:
//	  ...
//
// Unknown provider names are rejected.
func (s *Store) LoadYAML(r io.Reader) error {
	var raw map[string]fileCredential
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("failed to decode credentials: %w", err)
	}

	creds := make(map[providers.Provider]providers.Credential, len(raw))
	for name, fc := range raw {
		p, err := providers.ParseProvider(name)
		if err != nil {
			return err
		}
		creds[p] = providers.Credential{
			ClientID:     fc.ClientID,
			ClientSecret: fc.ClientSecret,
			RedirectURL:  fc.RedirectURL,
		}
	}

	return s.merge(creds)
}

// LoadYAMLFile is LoadYAML on the file at path.
func (s *Store) LoadYAMLFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open credentials file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return s.LoadYAML(f)
}

// LoadEnvFile reads credentials from a dotenv file without touching the
// process environment. See EnvPrefix for the variable names.
func (s *Store) LoadEnvFile(path string) error {
	env, err := godotenv.Read(path)
	if err != nil {
		return fmt.Errorf("failed to read env file: %w", err)
	}
	return s.loadEnv(func(key string) string { return env[key] })
}

// LoadEnv reads credentials from the process environment. See EnvPrefix for
// the variable names. Providers without a client ID are skipped.
func (s *Store) LoadEnv() error {
	return s.loadEnv(os.Getenv)
}

func (s *Store) loadEnv(getenv func(string) string) error {
	creds := make(map[providers.Provider]providers.Credential)
	for _, p := range providers.Providers() {
		prefix := EnvPrefix + strings.ToUpper(string(p)) + "_"
		cred := providers.Credential{
			ClientID:     getenv(prefix + "CLIENT_ID"),
			ClientSecret: getenv(prefix + "CLIENT_SECRET"),
			RedirectURL:  getenv(prefix + "REDIRECT_URL"),
		}
		if cred.ClientID == "" {
			continue
		}
		creds[p] = cred
	}

	return s.merge(creds)
}
