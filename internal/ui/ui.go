// Package ui holds the terminal output helpers shared by the citygraph commands.
package ui

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
)

var (
	Brand  = color.New(color.FgHiGreen, color.Bold)
	Subtle = color.New(color.FgHiBlack)
	Warn   = color.New(color.FgYellow)
	Info   = color.New(color.FgCyan)
	Good   = color.New(color.FgGreen)
	Bad    = color.New(color.FgRed)
)

// Table writes an aligned table to w. Nothing is written when rows is empty.
func Table(w io.Writer, headers []string, rows [][]string) {
	if len(rows) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if n := utf8.RuneCountInString(cell); i < len(widths) && n > widths[i] {
				widths[i] = n
			}
		}
	}

	var header, sep strings.Builder
	for i, h := range headers {
		header.WriteString(pad(h, widths[i]))
		sep.WriteString(strings.Repeat("─", widths[i]) + "  ")
	}
	Subtle.Fprintln(w, "  "+strings.TrimRight(header.String(), " "))
	Subtle.Fprintln(w, "  "+strings.TrimRight(sep.String(), " "))

	for _, row := range rows {
		var line strings.Builder
		for i, cell := range row {
			if i < len(widths) {
				line.WriteString(pad(cell, widths[i]))
			}
		}
		fmt.Fprintln(w, "  "+strings.TrimRight(line.String(), " "))
	}
}

func pad(s string, width int) string {
	return s + strings.Repeat(" ", width-utf8.RuneCountInString(s)+2)
}

// StatusIcon returns a status icon string.
func StatusIcon(ok bool) string {
	if ok {
		return Good.Sprint("✓")
	}
	return Bad.Sprint("✗")
}

// KeyValue writes "key: value" pairs with the keys dimmed and aligned.
func KeyValue(w io.Writer, pairs [][2]string) {
	width := 0
	for _, p := range pairs {
		width = max(width, utf8.RuneCountInString(p[0]))
	}
	for _, p := range pairs {
		key := p[0] + ":" + strings.Repeat(" ", width-utf8.RuneCountInString(p[0]))
		fmt.Fprintf(w, "  %s %s\n", Subtle.Sprint(key), p[1])
	}
}

// Fail prints err to w in red. Hints, when present, follow on their own lines.
func Fail(w io.Writer, err error, hints ...string) {
	fmt.Fprintf(w, "%s %s\n", StatusIcon(false), Bad.Sprint(err.Error()))
	for _, h := range hints {
		fmt.Fprintf(w, "  %s %s\n", Warn.Sprint("hint:"), h)
	}
}
