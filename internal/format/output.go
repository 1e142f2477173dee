package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// Texter is implemented by values that have a human-readable rendering for --format text.
type Texter interface {
	WriteText(w io.Writer) error
}

// Write writes output in the requested format.
//
// Supported formats:
// - json (default)
// - text (values implementing Texter; anything else falls back to indented JSON)
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch format {
	case "", "json":
		return WriteJSON(w, v, pretty)
	case "text":
		if t, ok := v.(Texter); ok {
			return t.WriteText(w)
		}
		return WriteJSON(w, v, true)
	default:
		return fmt.Errorf("unknown format: %s (want json or text)", format)
	}
}

// WriteJSON writes strict JSON output for CLI commands.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}

// WriteTable writes rows as left-aligned columns separated by two spaces. Widths are measured in
// terminal cells, so wide runes line up. The last column is never padded.
func WriteTable(w io.Writer, rows [][]string) error {
	var widths []int
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			if cw := xansi.StringWidth(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}
	var b strings.Builder
	for _, row := range rows {
		for i, cell := range row {
			b.WriteString(cell)
			if i < len(row)-1 {
				b.WriteString(strings.Repeat(" ", widths[i]-xansi.StringWidth(cell)+2))
			}
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}
