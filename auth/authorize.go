// Package auth holds the pieces of TD Ameritrade's manual authorization
// process: the consent URL a user opens once, and the authorization code it
// redirects back with. The code is then exchanged for a refresh token that
// stays valid for roughly three months.
package auth

import (
	"errors"
	"net/url"
	"strings"

	"golang.org/x/oauth2"
)

const (
	// ClientIDSuffix is appended to the app's consumer key to form the OAuth client id.
	ClientIDSuffix = "@AMER.OAUTHAP"
	// DefaultRedirectURI is the callback most local apps register.
	DefaultRedirectURI = "https://127.0.0.1"
)

// Endpoint is TD Ameritrade's OAuth2 endpoint. The client id is sent in the
// form body and there is no client secret.
var Endpoint = oauth2.Endpoint{
	AuthURL:   "https://auth.tdameritrade.com/auth",
	TokenURL:  "https://api.tdameritrade.com/v1/oauth2/token",
	AuthStyle: oauth2.AuthStyleInParams,
}

// ClientID returns the consumer key with ClientIDSuffix appended, unless it
// already carries it.
func ClientID(consumerKey string) string {
	key := strings.TrimSpace(consumerKey)
	if key == "" || strings.HasSuffix(key, ClientIDSuffix) {
		return key
	}
	return key + ClientIDSuffix
}

// ConsentURL returns the URL the account owner opens in a browser to
// authorize the app. The browser is then redirected to redirectURI with a
// code query parameter.
func ConsentURL(endpoint oauth2.Endpoint, consumerKey, redirectURI string) string {
	if redirectURI == "" {
		redirectURI = DefaultRedirectURI
	}
	cfg := oauth2.Config{
		ClientID:    ClientID(consumerKey),
		RedirectURL: redirectURI,
		Endpoint:    endpoint,
	}
	return cfg.AuthCodeURL("")
}

// CodeFromRedirect extracts the authorization code from either the full
// redirect URL the browser landed on or from a bare, possibly still
// URL-encoded, code. A literal '+' in a bare code is kept.
func CodeFromRedirect(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", errors.New("authorization code is empty")
	}

	if strings.Contains(input, "://") {
		u, err := url.Parse(input)
		if err != nil {
			return "", err
		}
		code := u.Query().Get("code")
		if code == "" {
			return "", errors.New("redirect url has no code parameter")
		}
		return code, nil
	}

	code, err := url.PathUnescape(input)
	if err != nil {
		return "", err
	}
	return code, nil
}
