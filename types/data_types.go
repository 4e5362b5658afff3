package types

// TokenResponse is the body returned by the /v1/oauth2/token endpoint for both
// the refresh_token and authorization_code grants.
type TokenResponse struct {
	AccessToken           string `json:"access_token"`
	RefreshToken          string `json:"refresh_token,omitempty"`
	TokenType             string `json:"token_type,omitempty"`
	ExpiresIn             int64  `json:"expires_in,omitempty"`
	Scope                 string `json:"scope,omitempty"`
	RefreshTokenExpiresIn int64  `json:"refresh_token_expires_in,omitempty"`
	Error                 string `json:"error,omitempty"`
	ErrorDescription      string `json:"error_description,omitempty"`
}

// Message returns the provider's error text, if any.
func (t TokenResponse) Message() string {
	if t.ErrorDescription != "" {
		return t.ErrorDescription
	}
	return t.Error
}
