// Command td-api-auth refreshes a TD Ameritrade access token and prints the
// positions of one brokerage account.
//
// The refresh token comes from the manual authorization process, which has
// to be repeated roughly every three months:
//
//	td-api-auth -authorize -client_id KEY          print the consent URL
//	td-api-auth -code 'https://127.0.0.1/?code=..' -client_id KEY
//	td-api-auth -client_id KEY -refresh_token TOKEN -account_id ID
//
// Every value can also be set through TD_CLIENT_ID, TD_REFRESH_TOKEN and
// TD_ACCOUNT_ID, either in the environment or in a .env file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	tdameritrade "github.com/hanegraaff/tdameritrade-api-authentication"
	"github.com/hanegraaff/tdameritrade-api-authentication/auth"
)

const usageDesc = `A demonstration of the TD Ameritrade APIs. Shows how to generate an
access token from a refresh token and use it to call an API.

Flags:
`

var errMissingFlags = errors.New("missing required flags")

type options struct {
	clientID     string
	refreshToken string
	accountID    string
	baseURL      string
	proxy        string
	timeout      time.Duration
	debug        bool
	authorize    bool
	redirectURI  string
	code         string
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "loading .env: %v\n", err)
	}
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, os.Getenv))
}

// run executes the command and returns the process exit status. Only bad
// usage yields a non-zero status: API failures are logged and the run
// completes normally.
func run(args []string, stdout, stderr io.Writer, getenv func(string) string) int {
	opts, err := parseFlags(args, stderr, getenv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	configureLogging(stderr, opts.debug)

	client, err := newClient(opts)
	if err != nil {
		logrus.WithError(err).Error("Invalid client configuration")
		return 2
	}

	ctx := context.Background()
	switch {
	case opts.authorize:
		fmt.Fprintln(stdout, "Open this URL in your browser and copy the URL it redirects to:")
		fmt.Fprintln(stdout, auth.ConsentURL(auth.Endpoint, opts.clientID, opts.redirectURI))
	case opts.code != "":
		exchangeCode(ctx, client, opts, stdout)
	default:
		authAndFetch(ctx, client, opts, stdout)
	}
	return 0
}

func parseFlags(args []string, output io.Writer, getenv func(string) string) (*options, error) {
	fs := flag.NewFlagSet("td-api-auth", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [flags]\n\n%s", fs.Name(), usageDesc)
		fs.PrintDefaults()
	}

	opts := &options{}
	fs.StringVar(&opts.clientID, "client_id", getenv("TD_CLIENT_ID"), "The Client ID (Consumer Key) of the registered application")
	fs.StringVar(&opts.refreshToken, "refresh_token", getenv("TD_REFRESH_TOKEN"), "The Refresh Token generated using the login process")
	fs.StringVar(&opts.accountID, "account_id", getenv("TD_ACCOUNT_ID"), "The TD Ameritrade brokerage account ID")
	fs.StringVar(&opts.baseURL, "base_url", "", "Override the API host (token and accounts endpoints)")
	fs.StringVar(&opts.proxy, "proxy", "", "Proxy address, http://HOST:PORT or socks5://HOST:PORT")
	fs.DurationVar(&opts.timeout, "timeout", 0, "HTTP client timeout (default none)")
	fs.BoolVar(&opts.debug, "debug", false, "Log debug level statements, including request details")
	fs.BoolVar(&opts.authorize, "authorize", false, "Print the consent URL used to obtain an authorization code")
	fs.StringVar(&opts.redirectURI, "redirect_uri", auth.DefaultRedirectURI, "Callback URL registered for the application")
	fs.StringVar(&opts.code, "code", "", "Authorization code, or the full redirect URL, to exchange for a refresh token")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	required := map[string]string{"client_id": opts.clientID}
	if !opts.authorize && opts.code == "" {
		required["refresh_token"] = opts.refreshToken
		required["account_id"] = opts.accountID
	}

	var missing []string
	for _, name := range []string{"client_id", "refresh_token", "account_id"} {
		if value, ok := required[name]; ok && strings.TrimSpace(value) == "" {
			missing = append(missing, "-"+name)
		}
	}
	if len(missing) > 0 {
		fmt.Fprintf(output, "%s: %s\n\n", errMissingFlags, strings.Join(missing, ", "))
		fs.Usage()
		return nil, errMissingFlags
	}

	return opts, nil
}

func configureLogging(out io.Writer, debug bool) {
	logrus.SetOutput(out)
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	logrus.SetLevel(logrus.InfoLevel)
	if debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
}

func newClient(opts *options) (*tdameritrade.Client, error) {
	client := tdameritrade.New()
	if opts.baseURL != "" {
		client.WithBaseURL(opts.baseURL)
	}
	if opts.timeout > 0 {
		client.WithClientTimeout(opts.timeout)
	}
	if opts.proxy != "" {
		if err := client.SetProxy(opts.proxy); err != nil {
			return nil, fmt.Errorf("proxy %q: %w", opts.proxy, err)
		}
	}
	return client, nil
}

func authAndFetch(ctx context.Context, client *tdameritrade.Client, opts *options, stdout io.Writer) {
	snapshot, err := tdameritrade.AuthAndFetch(ctx, client, tdameritrade.Credentials{
		ClientID:     opts.clientID,
		RefreshToken: opts.refreshToken,
		AccountID:    opts.accountID,
	})
	if err != nil {
		// already logged with the response body
		return
	}

	pretty, err := snapshot.Pretty()
	if err != nil {
		logrus.WithError(err).Error("Unable to format account details")
		return
	}
	logrus.Info("Displaying Account Info")
	fmt.Fprintln(stdout, pretty)
}

func exchangeCode(ctx context.Context, client *tdameritrade.Client, opts *options, stdout io.Writer) {
	code, err := auth.CodeFromRedirect(opts.code)
	if err != nil {
		logrus.WithError(err).Error("Unable to read authorization code")
		return
	}

	token, err := client.ExchangeCode(ctx, opts.clientID, code, opts.redirectURI)
	if err != nil {
		logrus.WithError(err).Error("Unable to exchange authorization code")
		return
	}

	fields := logrus.Fields{}
	if v, ok := token.Extra("refresh_token_expires_in").(int64); ok {
		fields["refresh_token_expiry"] = time.Now().Add(time.Duration(v) * time.Second).Format(time.DateOnly)
	}
	logrus.WithFields(fields).Info("Generated Refresh Token")
	fmt.Fprintln(stdout, token.RefreshToken)
}
