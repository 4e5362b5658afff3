package tdameritrade

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// Credentials are the inputs of a run. They are supplied by the caller and
// never written anywhere.
type Credentials struct {
	ClientID     string
	RefreshToken string
	AccountID    string
}

// Validate returns ErrInvalidCredentials naming every empty field.
func (c Credentials) Validate() error {
	var missing []string
	if strings.TrimSpace(c.ClientID) == "" {
		missing = append(missing, "client id")
	}
	if strings.TrimSpace(c.RefreshToken) == "" {
		missing = append(missing, "refresh token")
	}
	if strings.TrimSpace(c.AccountID) == "" {
		missing = append(missing, "account id")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidCredentials, strings.Join(missing, ", "))
	}
	return nil
}

// AuthAndFetch refreshes an access token and uses it to fetch the account
// with its positions. A failed token exchange stops the run before the
// accounts endpoint is contacted. Failures are logged with the raw response
// body and returned; nothing is retried.
func AuthAndFetch(ctx context.Context, client *Client, creds Credentials) (*AccountSnapshot, error) {
	if client == nil {
		client = New()
	}
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	token, err := client.RefreshAccessToken(ctx, creds.ClientID, creds.RefreshToken)
	if err != nil {
		logrus.WithError(err).Error("Unable to generate access token")
		return nil, err
	}
	logrus.Info("Generated Access Token")

	snapshot, err := client.GetAccount(ctx, token, creds.AccountID, FieldPositions)
	if err != nil {
		logrus.WithError(err).Error("Unable to show account details")
		return nil, err
	}
	return snapshot, nil
}
