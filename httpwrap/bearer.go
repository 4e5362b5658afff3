package httpwrap

import "net/http"

// BearerTransport is a custom RoundTripper that adds a Bearer Token to requests.
type BearerTransport struct {
	Transport http.RoundTripper
	Token     string
}

// RoundTrip executes a single HTTP transaction and adds the Bearer Token.
func (b *BearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not modify the caller's request
	reqClone := req.Clone(req.Context())
	reqClone.Header.Set("Authorization", "Bearer "+b.Token)

	transport := b.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	return transport.RoundTrip(reqClone)
}
