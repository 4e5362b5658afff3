package httpwrap

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/proxy"
)

// Client is a wrapper around http.Client that provides simplified HTTP methods.
type Client struct {
	httpClient *http.Client
	proxy      string
}

// Response is an HTTP response whose body has been read in full.
type Response struct {
	Status     string
	StatusCode int
	Header     http.Header
	Body       []byte
}

// NewClient creates a new Client. No overall timeout is set, use SetTimeout
// to bound requests.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConnsPerHost: 10,
				TLSHandshakeTimeout: 5 * time.Second,
			},
		},
	}
}

// NewClientWith wraps a copy of an existing http.Client, keeping its timeout,
// transport and jar. SetTimeout and SetProxy change the copy only.
func NewClientWith(httpClient *http.Client) *Client {
	if httpClient == nil {
		return NewClient()
	}
	hc := *httpClient
	return &Client{httpClient: &hc}
}

// IsSuccess reports whether code is one of the statuses the API answers with
// on success. Anything else, including other 2xx codes, is a failure.
func IsSuccess(code int) bool {
	return code == http.StatusOK || code == http.StatusCreated
}

// DoRequest sends an HTTP request with the given method, URL, body, and headers
// and reads the whole response. A status other than 200 or 201 is returned as
// an HTTPError carrying the raw body.
func (c *Client) DoRequest(ctx context.Context, method, url string, bodyReader io.Reader, headers Header) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, err
	}

	for key, value := range headers {
		req.Header.Set(key, value)
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logrus.WithError(err).WithField("url", req.URL.Redacted()).Debug("Failed to execute request")
		return nil, err
	}
	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			logrus.Errorf("error closing response body: %v", err)
		}
	}(resp.Body)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"method":      method,
		"path":        req.URL.Path,
		"status_code": resp.StatusCode,
	}).Debug("Received response")

	if !IsSuccess(resp.StatusCode) {
		httpErr := HTTPError{
			Status:     resp.Status,
			StatusCode: resp.StatusCode,
			Body:       respBody,
			Err:        fmt.Errorf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
		}
		return nil, httpErr
	}

	return &Response{
		Status:     resp.Status,
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
	}, nil
}

// Get sends an HTTP GET request and decodes the JSON body into obj when obj is
// not nil. On a decode failure the response is still returned alongside the error.
func (c *Client) Get(ctx context.Context, baseURL string, urlParams url.Values, headers Header, obj any) (*Response, error) {
	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if len(urlParams) > 0 {
		parsedURL.RawQuery = urlParams.Encode()
	}

	resp, err := c.DoRequest(ctx, http.MethodGet, parsedURL.String(), nil, headers)
	if err != nil {
		return nil, err
	}
	return resp, decode(resp, obj)
}

// PostForm sends a form-encoded HTTP POST request and decodes the JSON body
// into obj when obj is not nil.
func (c *Client) PostForm(ctx context.Context, url string, form url.Values, headers Header, obj any) (*Response, error) {
	if headers == nil {
		headers = NewHeader()
	}
	headers.AddContentType("application/x-www-form-urlencoded")

	resp, err := c.DoRequest(ctx, http.MethodPost, url, strings.NewReader(form.Encode()), headers)
	if err != nil {
		return nil, err
	}
	return resp, decode(resp, obj)
}

func decode(resp *Response, obj any) error {
	if obj == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body, obj); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// SetTimeout sets the timeout for the underlying http.Client.
func (c *Client) SetTimeout(timeout time.Duration) {
	c.httpClient.Timeout = timeout
}

// SetProxy sets the proxy for the underlying http.Client.
// An empty address resets the transport to a direct connection.
func (c *Client) SetProxy(proxyAddr string) error {
	if proxyAddr == "" {
		c.httpClient.Transport = &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: c.httpClient.Timeout,
			}).DialContext,
		}
		c.proxy = ""
	} else if strings.HasPrefix(proxyAddr, "http") {
		urlproxy, err := url.Parse(proxyAddr)
		if err != nil {
			return err
		}
		c.httpClient.Transport = &http.Transport{
			Proxy: http.ProxyURL(urlproxy),
			DialContext: (&net.Dialer{
				Timeout: c.httpClient.Timeout,
			}).DialContext,
		}
		c.proxy = proxyAddr
	} else if strings.HasPrefix(proxyAddr, "socks5") {
		baseDialer := &net.Dialer{
			Timeout:   c.httpClient.Timeout,
			KeepAlive: c.httpClient.Timeout,
		}
		proxyURL, err := url.Parse(proxyAddr)
		if err != nil {
			return err
		}

		var auth *proxy.Auth
		if proxyURL.User != nil {
			password, _ := proxyURL.User.Password()
			auth = &proxy.Auth{User: proxyURL.User.Username(), Password: password}
		}

		dialSocksProxy, err := proxy.SOCKS5("tcp", proxyURL.Host, auth, baseDialer)
		if err != nil {
			return errors.New("error creating socks5 proxy: " + err.Error())
		}
		contextDialer, ok := dialSocksProxy.(proxy.ContextDialer)
		if !ok {
			return errors.New("failed type assertion to DialContext")
		}
		c.httpClient.Transport = &http.Transport{
			DialContext: contextDialer.DialContext,
		}
		c.proxy = proxyAddr
	} else {
		return errors.New("only support http(s) or socks5 protocol")
	}
	return nil
}

// Proxy returns the proxy address set with SetProxy.
func (c *Client) Proxy() string {
	return c.proxy
}

// WithBearerToken returns a copy of the client that sends token as a Bearer
// credential on every request. The receiver is left untouched.
func (c *Client) WithBearerToken(token string) *Client {
	httpClient := *c.httpClient
	httpClient.Transport = &BearerTransport{
		Transport: c.httpClient.Transport,
		Token:     token,
	}
	return &Client{
		httpClient: &httpClient,
		proxy:      c.proxy,
	}
}
