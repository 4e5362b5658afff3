package tdameritrade

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/hanegraaff/tdameritrade-api-authentication/auth"
)

// RefreshAccessToken exchanges a refresh token for an access token valid for
// about 30 minutes. A status other than 200 or 201 fails with
// ErrTokenExchangeFailed and is not retried.
func (c *Client) RefreshAccessToken(ctx context.Context, clientID, refreshToken string) (*oauth2.Token, error) {
	if strings.TrimSpace(clientID) == "" || strings.TrimSpace(refreshToken) == "" {
		return nil, fmt.Errorf("%w: client id and refresh token are required", ErrInvalidCredentials)
	}

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)
	form.Set("client_id", auth.ClientID(clientID))

	token, err := c.requestToken(ctx, form, refreshToken)
	if err != nil {
		return nil, err
	}

	logrus.WithField("expiry", token.Expiry).Debug("Access token refreshed")
	return token, nil
}

// ExchangeCode trades the authorization code from the consent redirect for a
// token pair. The refresh token on the result is the long-lived one to pass to
// RefreshAccessToken afterwards.
func (c *Client) ExchangeCode(ctx context.Context, clientID, code, redirectURI string) (*oauth2.Token, error) {
	if strings.TrimSpace(clientID) == "" || strings.TrimSpace(code) == "" {
		return nil, fmt.Errorf("%w: client id and authorization code are required", ErrInvalidCredentials)
	}
	if redirectURI == "" {
		redirectURI = auth.DefaultRedirectURI
	}

	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("access_type", "offline")
	form.Set("code", code)
	form.Set("client_id", auth.ClientID(clientID))
	form.Set("redirect_uri", redirectURI)

	token, err := c.requestToken(ctx, form, "")
	if err != nil {
		return nil, err
	}
	if token.RefreshToken == "" {
		logrus.Warn("Authorization code exchange returned no refresh token")
	}
	return token, nil
}
