// Package view provides output formatting for md2docx commands.
package view

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
)

// Format represents an output format.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatPlain Format = "plain"
)

// ValidFormats returns the accepted output format names.
func ValidFormats() []string {
	return []string{string(FormatTable), string(FormatJSON), string(FormatPlain)}
}

// ValidateFormat checks an output format name. Empty means the default.
func ValidateFormat(format string) error {
	if format == "" {
		return nil
	}
	for _, f := range ValidFormats() {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("invalid output format %q (valid: %s)", format, strings.Join(ValidFormats(), ", "))
}

// Renderer renders data in a specific format.
type Renderer struct {
	format  Format
	writer  io.Writer
	noColor bool
}

// NewRenderer creates a new renderer with the specified format.
func NewRenderer(format Format, noColor bool) *Renderer {
	if noColor {
		color.NoColor = true
	}
	if format == "" {
		format = FormatTable
	}
	return &Renderer{
		format:  format,
		writer:  os.Stdout,
		noColor: noColor,
	}
}

// SetWriter sets the output writer.
func (r *Renderer) SetWriter(w io.Writer) {
	r.writer = w
}

// Format returns the renderer's output format.
func (r *Renderer) Format() Format {
	return r.format
}

// RenderTable renders rows under headers. Table output aligns columns,
// JSON output is an array of objects keyed by lower-cased header, plain
// output is tab separated without headers. Rows shorter than headers leave
// the missing cells out of JSON objects.
func (r *Renderer) RenderTable(headers []string, rows [][]string) {
	switch r.format {
	case FormatJSON:
		objects := make([]map[string]string, 0, len(rows))
		for _, row := range rows {
			obj := make(map[string]string, len(headers))
			for i := 0; i < len(headers) && i < len(row); i++ {
				obj[strings.ToLower(headers[i])] = row[i]
			}
			objects = append(objects, obj)
		}
		_ = r.RenderJSON(objects)
	case FormatPlain:
		for _, row := range rows {
			fmt.Fprintln(r.writer, strings.Join(row, "\t"))
		}
	default:
		tw := tabwriter.NewWriter(r.writer, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, strings.Join(headers, "\t"))
		for _, row := range rows {
			fmt.Fprintln(tw, strings.Join(row, "\t"))
		}
		_ = tw.Flush()
	}
}

// RenderJSON writes v as indented JSON.
func (r *Renderer) RenderJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	fmt.Fprintln(r.writer, string(data))
	return nil
}

// RenderText writes one line of text.
func (r *Renderer) RenderText(text string) {
	fmt.Fprintln(r.writer, text)
}

// RenderKeyValue writes "key: value", or a one-key JSON object.
func (r *Renderer) RenderKeyValue(key, value string) {
	if r.format == FormatJSON {
		data, _ := json.Marshal(map[string]string{key: value})
		fmt.Fprintln(r.writer, string(data))
		return
	}
	_, _ = color.New(color.Bold).Fprintf(r.writer, "%s: ", key)
	fmt.Fprintln(r.writer, value)
}

// Success writes a green check line.
func (r *Renderer) Success(msg string) { r.status(color.FgGreen, "✓", msg) }

// Warning writes a yellow "!" line.
func (r *Renderer) Warning(msg string) { r.status(color.FgYellow, "!", msg) }

// Error writes a red cross line.
func (r *Renderer) Error(msg string) { r.status(color.FgRed, "✗", msg) }

func (r *Renderer) status(attr color.Attribute, marker, msg string) {
	_, _ = color.New(attr).Fprintln(r.writer, marker+" "+msg)
}

// Truncate shortens s to at most maxLen bytes, ending in "..." when there
// is room for it.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
