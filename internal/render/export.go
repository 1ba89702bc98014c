package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mwiater/evalboard/internal/evalreport"
	"go.yaml.in/yaml/v3"
)

// Export formats.
const (
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// WriteYAML writes v as YAML.
func WriteYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// Export writes the overview using one of the data formats.
func Export(w io.Writer, ov evalreport.Overview, format string) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatJSON, "":
		return WriteJSON(w, ov)
	case FormatYAML, "yml":
		return WriteYAML(w, ov)
	default:
		return fmt.Errorf("unsupported export format %q (want json or yaml)", format)
	}
}

// Document renders the overview as a markdown or HTML document.
func Document(ov evalreport.Overview, format string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatMarkdown, "md", "":
		return Markdown(ov)
	case FormatHTML:
		return HTML(ov)
	default:
		return "", fmt.Errorf("unsupported report format %q (want markdown or html)", format)
	}
}
