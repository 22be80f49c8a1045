// Package app provides the use cases of the loogi-http CLI.
// It builds a connection stack from the configuration, runs one request
// through it and renders the response.
package app
