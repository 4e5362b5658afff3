package tdameritrade

import "time"

const (
	baseURL      = "https://api.tdameritrade.com"
	tokenPath    = "/v1/oauth2/token"
	accountsPath = "/v1/accounts/"

	// DefaultAccessTokenLifetime is assumed when the token response carries no expires_in.
	DefaultAccessTokenLifetime = 30 * time.Minute

	// FieldPositions asks the accounts endpoint to include open positions.
	FieldPositions = "positions"
	// FieldOrders asks the accounts endpoint to include working orders.
	FieldOrders = "orders"
)
