package tdameritrade

import (
	"net/http"
	"strings"
	"time"

	"github.com/hanegraaff/tdameritrade-api-authentication/auth"
	"github.com/hanegraaff/tdameritrade-api-authentication/httpwrap"
)

// Client talks to the TD Ameritrade REST API.
type Client struct {
	client    *httpwrap.Client
	apiURL    string
	tokenURL  string
	userAgent string
	now       func() time.Time
}

// New creates a Client pointed at the production API.
func New() *Client {
	return &Client{
		client:    httpwrap.NewClient(),
		apiURL:    baseURL,
		tokenURL:  auth.Endpoint.TokenURL,
		userAgent: GetRandomUserAgent(),
		now:       time.Now,
	}
}

// WithHTTPClient sends every request through a copy of httpClient. It
// replaces any timeout or proxy configured earlier; later WithClientTimeout
// and SetProxy calls do not touch the caller's client.
func (c *Client) WithHTTPClient(httpClient *http.Client) *Client {
	c.client = httpwrap.NewClientWith(httpClient)
	return c
}

// WithBaseURL points both the token and the accounts endpoints at another host,
// e.g. a test server.
func (c *Client) WithBaseURL(rawURL string) *Client {
	rawURL = strings.TrimRight(rawURL, "/")
	c.apiURL = rawURL
	c.tokenURL = rawURL + tokenPath
	return c
}

// WithTokenURL overrides the token endpoint only.
func (c *Client) WithTokenURL(rawURL string) *Client {
	c.tokenURL = rawURL
	return c
}

// SetUserAgent sets the user agent sent with every request
func (c *Client) SetUserAgent(userAgent string) *Client {
	c.userAgent = userAgent
	return c
}

// client timeout
func (c *Client) WithClientTimeout(timeout time.Duration) *Client {
	c.client.SetTimeout(timeout)
	return c
}

// SetProxy
// set http proxy in the format `http://HOST:PORT`
// set socket proxy in the format `socks5://HOST:PORT`
func (c *Client) SetProxy(proxyAddr string) error {
	return c.client.SetProxy(proxyAddr)
}

func (c *Client) headers() httpwrap.Header {
	return httpwrap.NewHeader().WithUserAgent(c.userAgent)
}
