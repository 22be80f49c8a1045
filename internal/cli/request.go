package cli

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/JuulLabs-OSS/loogi-http/internal/app"
	"github.com/JuulLabs-OSS/loogi-http/internal/logger"
)

// Static error definitions for better error handling.
var (
	// ErrInvalidParam indicates that a --param value is not in key=value form.
	ErrInvalidParam = errors.New("param must be in key=value form")
	// ErrInvalidHeader indicates that a --header value is not in "Key: value" form.
	ErrInvalidHeader = errors.New("header must be in 'Key: value' form")
)

// newRequestCommand creates the command issuing requests with the given method.
func newRequestCommand(method string) *cobra.Command {
	cmd := &cobra.Command{
		Use:              strings.ToLower(method) + " [flags] {url}",
		Short:            fmt.Sprintf("Send a %s request and print the response.", method),
		Args:             cobra.ExactArgs(1),
		PersistentPreRun: initConfig,
		Run: func(cmd *cobra.Command, args []string) {
			req, err := requestFromFlags(cmd.Flags(), method, args[0])
			if err != nil {
				logger.Fatalf(cmd.Context(), "Failed to parse flags: %v", err)
			}

			app.ExecuteRequestCommand(cmd.Context(), appConfig, req, cmd.OutOrStdout())
		},
	}

	addRequestFlags(cmd.Flags(), method != http.MethodGet)

	return cmd
}

func addRequestFlags(flags *pflag.FlagSet, withData bool) {
	flags.StringArrayP("param", "p", nil, "query parameter as key=value (repeatable).")
	flags.StringArrayP("header", "H", nil, "request header as 'Key: value' (repeatable).")
	flags.Bool("debug", false, "trace the request and the response.")
	flags.StringP("user", "u", "", "username for basic authentication.")
	flags.String("password", "", "password for basic authentication.")
	flags.StringP("output", "o", "", "output format: json, yaml or raw.")
	flags.StringP("timeout", "t", "", "request timeout, for example: 500ms, 10s.")
	flags.Bool("log-requests", false, "log one summary line per request.")
	flags.String("base-url", "", "URL that relative request URLs are resolved against.")
	flags.String("user-agent", "", "User-Agent sent with the request.")

	if withData {
		flags.StringP("data", "d", "", "JSON document sent as the request body.")
	}
}

// requestFromFlags builds the request described by the command line.
func requestFromFlags(flags *pflag.FlagSet, method, rawURL string) (app.Request, error) {
	req := app.Request{
		Method: method,
		URL:    rawURL,
	}

	rawParams, _ := flags.GetStringArray("param")

	params, err := parseParams(rawParams)
	if err != nil {
		return req, err
	}

	rawHeaders, _ := flags.GetStringArray("header")

	headers, err := parseHeaders(rawHeaders)
	if err != nil {
		return req, err
	}

	req.Params = params
	req.Headers = headers
	req.Debug, _ = flags.GetBool("debug")
	req.Username, _ = flags.GetString("user")
	req.Password, _ = flags.GetString("password")

	if flags.Lookup("data") != nil {
		req.Data, _ = flags.GetString("data")
	}

	return req, nil
}

func parseParams(raw []string) (url.Values, error) {
	params := make(url.Values, len(raw))

	for _, item := range raw {
		key, value, found := strings.Cut(item, "=")
		if !found || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("%w: '%s'", ErrInvalidParam, item)
		}

		params.Add(strings.TrimSpace(key), value)
	}

	return params, nil
}

func parseHeaders(raw []string) (http.Header, error) {
	headers := make(http.Header, len(raw))

	for _, item := range raw {
		key, value, found := strings.Cut(item, ":")
		if !found || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("%w: '%s'", ErrInvalidHeader, item)
		}

		headers.Add(strings.TrimSpace(key), strings.TrimSpace(value))
	}

	return headers, nil
}
