package httpwrap

import (
	"fmt"
	"strings"
)

// HTTPError is returned for responses with an unexpected status code.
// Body holds the raw response body as sent by the server.
type HTTPError struct {
	Status     string
	StatusCode int
	Body       []byte
	Err        error
}

func (e HTTPError) Error() string {
	body := strings.TrimSpace(string(e.Body))
	if body == "" {
		return fmt.Sprintf("response status %s", e.Status)
	}
	return fmt.Sprintf("response status %s: %s", e.Status, body)
}

func (e HTTPError) Unwrap() error {
	return e.Err
}
