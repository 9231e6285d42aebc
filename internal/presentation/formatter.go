// Package presentation turns domain values into CLI output: JSON, YAML or a
// Markdown manager report rendered for the terminal.
package presentation

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
)

// Formatter writes structured values in one format.
type Formatter struct {
	writer io.Writer
	format string
}

// NewFormatter creates a formatter. Only FormatJSON and FormatYAML are
// structured; anything else is rejected by Encode.
func NewFormatter(writer io.Writer, format string) *Formatter {
	return &Formatter{writer: writer, format: format}
}

// Encode writes v as indented JSON or YAML.
func (f *Formatter) Encode(v any) error {
	switch f.format {
	case FormatJSON, "":
		encoder := json.NewEncoder(f.writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	case FormatYAML:
		encoder := yaml.NewEncoder(f.writer)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return err
		}
		return encoder.Close()
	default:
		return fmt.Errorf("unsupported output format %q", f.format)
	}
}
