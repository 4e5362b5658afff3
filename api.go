package tdameritrade

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/hanegraaff/tdameritrade-api-authentication/types"
)

// requestToken posts a grant to the token endpoint and turns the answer into
// an oauth2.Token. refreshToken is kept on the result when the response does
// not rotate it.
func (c *Client) requestToken(ctx context.Context, form url.Values, refreshToken string) (*oauth2.Token, error) {
	logrus.WithFields(logrus.Fields{
		"grant_type": form.Get("grant_type"),
		"client_id":  form.Get("client_id"),
	}).Debug("Requesting access token")

	var parsed types.TokenResponse
	resp, err := c.client.PostForm(ctx, c.tokenURL, form, c.headers(), &parsed)
	if err != nil {
		return nil, newAPIError(ErrTokenExchangeFailed, resp, err)
	}

	if parsed.AccessToken == "" {
		msg := "token response missing access_token"
		if m := parsed.Message(); m != "" {
			msg += " (" + m + ")"
		}
		return nil, newAPIError(ErrTokenExchangeFailed, resp, errors.New(msg))
	}

	return c.newToken(parsed, refreshToken), nil
}

func (c *Client) newToken(parsed types.TokenResponse, refreshToken string) *oauth2.Token {
	tokenType := parsed.TokenType
	if tokenType == "" {
		tokenType = "Bearer"
	}
	if parsed.RefreshToken != "" {
		refreshToken = parsed.RefreshToken
	}

	lifetime := DefaultAccessTokenLifetime
	if parsed.ExpiresIn > 0 {
		lifetime = time.Duration(parsed.ExpiresIn) * time.Second
	}

	token := &oauth2.Token{
		AccessToken:  parsed.AccessToken,
		TokenType:    tokenType,
		RefreshToken: refreshToken,
		Expiry:       c.now().Add(lifetime),
	}

	extra := map[string]interface{}{}
	if parsed.Scope != "" {
		extra["scope"] = parsed.Scope
	}
	if parsed.RefreshTokenExpiresIn > 0 {
		extra["refresh_token_expires_in"] = parsed.RefreshTokenExpiresIn
	}
	return token.WithExtra(extra)
}
