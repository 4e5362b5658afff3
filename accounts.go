package tdameritrade

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

// AccountSnapshot is an account document exactly as the API returned it.
type AccountSnapshot struct {
	AccountID string
	Raw       json.RawMessage
}

// Pretty returns the document indented with four spaces.
func (s *AccountSnapshot) Pretty() (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, s.Raw, "", "    "); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// HasField reports whether name is a key of the document, or of the
// securitiesAccount object the API nests account data in.
func (s *AccountSnapshot) HasField(name string) bool {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(s.Raw, &doc); err != nil {
		return false
	}
	if _, ok := doc[name]; ok {
		return true
	}
	nested, ok := doc["securitiesAccount"]
	if !ok {
		return false
	}
	var inner map[string]json.RawMessage
	if err := json.Unmarshal(nested, &inner); err != nil {
		return false
	}
	_, ok = inner[name]
	return ok
}

// GetAccount fetches one account with the given optional fields
// (FieldPositions, FieldOrders). A status other than 200 or 201 fails with
// ErrAccountFetchFailed and is not retried.
func (c *Client) GetAccount(ctx context.Context, token *oauth2.Token, accountID string, fields ...string) (*AccountSnapshot, error) {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return nil, fmt.Errorf("%w: account id is required", ErrInvalidCredentials)
	}
	if token == nil || token.AccessToken == "" {
		return nil, newAPIError(ErrAccountFetchFailed, nil, errors.New("access token is missing"))
	}

	params := url.Values{}
	if len(fields) > 0 {
		params.Set("fields", strings.Join(fields, ","))
	}

	logrus.WithFields(logrus.Fields{
		"account_id": accountID,
		"fields":     params.Get("fields"),
	}).Debug("Fetching account")

	var raw json.RawMessage
	resp, err := c.client.WithBearerToken(token.AccessToken).
		Get(ctx, c.apiURL+accountsPath+url.PathEscape(accountID), params, c.headers(), &raw)
	if err != nil {
		return nil, newAPIError(ErrAccountFetchFailed, resp, err)
	}

	return &AccountSnapshot{AccountID: accountID, Raw: raw}, nil
}
