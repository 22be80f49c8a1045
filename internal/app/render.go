package app

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	loogihttp "github.com/JuulLabs-OSS/loogi-http"
	"github.com/JuulLabs-OSS/loogi-http/internal/config"
)

// renderedResponse is the document printed in YAML output.
type renderedResponse struct {
	Status  int               `yaml:"status"`
	Headers map[string]string `yaml:"headers"`
	Body    any               `yaml:"body"`
}

// RenderResponse writes resp to out in the given output format.
func RenderResponse(out io.Writer, resp *loogihttp.Response, format string) error {
	switch format {
	case config.OutputFormatRaw:
		_, err := out.Write(resp.RawBody())

		return err
	case config.OutputFormatYAML:
		return renderYAML(out, resp)
	case config.OutputFormatJSON, "":
		return renderJSON(out, resp)
	default:
		return fmt.Errorf("%w: '%s'", config.ErrUnknownOutputFormat, format)
	}
}

func renderJSON(out io.Writer, resp *loogihttp.Response) error {
	var b strings.Builder

	fmt.Fprintf(&b, "HTTP %d %s\n", resp.Status(), http.StatusText(resp.Status()))

	for _, key := range sortedKeys(resp.Header()) {
		fmt.Fprintf(&b, "%s: %s\n", key, strings.Join(resp.Header()[key], ", "))
	}

	b.WriteString("\n")

	switch body := resp.Body().(type) {
	case string:
		b.WriteString(body)
	case nil:
	default:
		data, err := json.MarshalIndent(body, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to render body: %w", err)
		}

		b.Write(data)
	}

	if !strings.HasSuffix(b.String(), "\n") {
		b.WriteString("\n")
	}

	_, err := io.WriteString(out, b.String())

	return err
}

func renderYAML(out io.Writer, resp *loogihttp.Response) error {
	doc := renderedResponse{
		Status:  resp.Status(),
		Headers: make(map[string]string, len(resp.Header())),
		Body:    resp.Body(),
	}

	for key, values := range resp.Header() {
		doc.Headers[key] = strings.Join(values, ", ")
	}

	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(2)

	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to render YAML: %w", err)
	}

	return encoder.Close()
}

func sortedKeys(header http.Header) []string {
	keys := make([]string, 0, len(header))
	for key := range header {
		keys = append(keys, key)
	}

	slices.Sort(keys)

	return keys
}
