package tdameritrade

import (
	"errors"
	"strings"

	"github.com/hanegraaff/tdameritrade-api-authentication/httpwrap"
)

var (
	// ErrInvalidCredentials is returned before any request is made when a
	// required credential is missing.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrTokenExchangeFailed marks a failed call to the token endpoint.
	ErrTokenExchangeFailed = errors.New("unable to generate access token")
	// ErrAccountFetchFailed marks a failed call to the accounts endpoint.
	ErrAccountFetchFailed = errors.New("unable to fetch account details")
)

// APIError describes a failed API call. Kind is one of the Err* values above
// and Body is the raw response body, when the server sent one.
type APIError struct {
	Kind       error
	Status     string
	StatusCode int
	Body       []byte
	Err        error
}

func (e *APIError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Status != "" {
		b.WriteString(": response status ")
		b.WriteString(e.Status)
	}
	// an HTTPError cause only repeats the status
	var httpErr httpwrap.HTTPError
	if e.Err != nil && !errors.As(e.Err, &httpErr) {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	if body := strings.TrimSpace(string(e.Body)); body != "" {
		b.WriteString(": ")
		b.WriteString(body)
	}
	return b.String()
}

func (e *APIError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newAPIError(kind error, resp *httpwrap.Response, err error) *APIError {
	apiErr := &APIError{Kind: kind, Err: err}

	var httpErr httpwrap.HTTPError
	if errors.As(err, &httpErr) {
		apiErr.Status = httpErr.Status
		apiErr.StatusCode = httpErr.StatusCode
		apiErr.Body = httpErr.Body
	} else if resp != nil {
		apiErr.Status = resp.Status
		apiErr.StatusCode = resp.StatusCode
		apiErr.Body = resp.Body
	}
	return apiErr
}
