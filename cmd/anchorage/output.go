package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/tsawler/anchorage/selector"
)

// quoteWidth is the display width quoted text is cut to in pretty output.
const quoteWidth = 60

var (
	kindColor   = color.New(color.FgCyan, color.Bold)
	okColor     = color.New(color.FgGreen, color.Bold)
	orphanColor = color.New(color.FgRed, color.Bold)
	dimColor    = color.New(color.Faint)
)

// truncate shortens s to at most width display cells.
func truncate(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeSelectorsPretty(w io.Writer, sels selector.Set) error {
	for _, s := range sels {
		var detail string
		switch v := s.(type) {
		case selector.Range:
			detail = fmt.Sprintf("%s:%d .. %s:%d",
				containerLabel(v.StartContainer), v.StartOffset,
				containerLabel(v.EndContainer), v.EndOffset)
		case selector.TextPosition:
			detail = fmt.Sprintf("[%d, %d)", v.Start, v.End)
		case selector.TextQuote:
			detail = fmt.Sprintf("%q", truncate(v.Exact, quoteWidth))
			if v.Prefix != "" || v.Suffix != "" {
				detail += dimColor.Sprintf("  prefix %q suffix %q",
					truncate(v.Prefix, quoteWidth/3), truncate(v.Suffix, quoteWidth/3))
			}
		default:
			continue
		}
		if _, err := fmt.Fprintf(w, "%s %s\n", kindColor.Sprintf("%-22s", s.Kind()), detail); err != nil {
			return err
		}
	}
	return nil
}

func containerLabel(path string) string {
	if path == "" {
		return "(root)"
	}
	return path
}
