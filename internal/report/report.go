// Package report writes scan results as TSV or JSON lines.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/trevor-leach/multisearch/internal/scan"
)

var (
	pathStyle   = color.New(color.FgCyan, color.Bold)
	termStyle   = color.New(color.FgRed, color.Bold)
	headerStyle = color.New(color.FgWhite, color.Bold)
)

// Format is an output format.
type Format string

const (
	FormatTSV  Format = "tsv"
	FormatJSON Format = "json"
)

// Writer formats results onto an io.Writer.
type Writer struct {
	out     io.Writer
	format  Format
	colored bool
	header  bool
	count   int
}

// New returns a Writer. colorMode is "always", "never" or "auto"; auto
// colors only when fatih/color detects a terminal.
func New(out io.Writer, format Format, colorMode string) (*Writer, error) {
	switch format {
	case FormatTSV, FormatJSON:
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}

	var colored bool
	switch colorMode {
	case "always":
		colored = true
	case "never":
		colored = false
	case "auto", "":
		colored = !color.NoColor
	default:
		return nil, fmt.Errorf("unknown color mode %q", colorMode)
	}

	return &Writer{out: out, format: format, colored: colored && format == FormatTSV}, nil
}

// Count returns the number of matches written so far.
func (w *Writer) Count() int {
	return w.count
}

type record struct {
	Path  string `json:"path"`
	Term  string `json:"term"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Write writes every match of every result. Results with an error are skipped.
func (w *Writer) Write(results []scan.Result) error {
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		for _, m := range r.Matches {
			if err := w.writeMatch(r.Path, m.Term, m.Location); err != nil {
				return err
			}
			w.count++
		}
	}
	return nil
}

func (w *Writer) writeMatch(path, term string, loc [2]int) error {
	if w.format == FormatJSON {
		b, err := json.Marshal(record{Path: path, Term: term, Start: loc[0], End: loc[1]})
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w.out, "%s\n", b)
		return err
	}

	if !w.header {
		w.header = true
		if _, err := fmt.Fprintln(w.out, w.paint(headerStyle, "Path\tTerm\tStart\tEnd")); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w.out, "%s\t%s\t%d\t%d\n", w.paint(pathStyle, path), w.paint(termStyle, term), loc[0], loc[1])
	return err
}

func (w *Writer) paint(style *color.Color, s string) string {
	if !w.colored {
		return s
	}
	style.EnableColor()
	return style.Sprint(s)
}
