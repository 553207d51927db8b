package oidc

import (
	"context"
	"net/http"

	"github.com/giantswarm/oauth-clients/providers"
)

// UserInfo holds the standard claims read from an OpenID Connect userinfo endpoint.
type UserInfo struct {
	Subject       string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified *bool  `json:"email_verified"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
}

// FetchUserInfo makes a single bearer-authenticated GET to endpoint and decodes
// the standard claims. A response without a subject is providers.KindMalformed.
func FetchUserInfo(ctx context.Context, p providers.Provider, op string, httpClient *http.Client, endpoint, accessToken string) (*UserInfo, error) {
	var info UserInfo
	if err := providers.GetJSON(ctx, p, op, httpClient, endpoint, "application/json", accessToken, &info); err != nil {
		return nil, err
	}

	if info.Subject == "" {
		return nil, &providers.Error{
			Kind:        providers.KindMalformed,
			Provider:    p,
			Op:          op,
			Description: "userinfo response has no sub claim",
		}
	}

	return &info, nil
}

// VerifiedEmail returns the email claim when the provider marks it verified.
// A missing email or a missing or false email_verified claim is providers.KindMalformed.
func (u *UserInfo) VerifiedEmail(p providers.Provider) (string, error) {
	if u.Email == "" {
		return "", &providers.Error{
			Kind:        providers.KindMalformed,
			Provider:    p,
			Op:          providers.OpFetchEmail,
			Description: "userinfo response has no email claim",
		}
	}
	if u.EmailVerified == nil || !*u.EmailVerified {
		return "", &providers.Error{
			Kind:        providers.KindMalformed,
			Provider:    p,
			Op:          providers.OpFetchEmail,
			Description: "email is not verified",
		}
	}
	return u.Email, nil
}

// FullName returns the name claim, falling back to the given and family names.
// It returns an empty string when the provider has no name for the user.
func (u *UserInfo) FullName() string {
	if u.Name != "" {
		return u.Name
	}
	switch {
	case u.GivenName != "" && u.FamilyName != "":
		return u.GivenName + " " + u.FamilyName
	case u.GivenName != "":
		return u.GivenName
	default:
		return u.FamilyName
	}
}
