package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"projectswitch/internal/state"

	"github.com/fatih/color"
)

var (
	// fatih/color turns these off when stdout is not a TTY
	successColor = color.New(color.FgGreen, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	headerColor  = color.New(color.FgBlue, color.Bold)
	labelColor   = color.New(color.FgWhite, color.Bold)
	valueColor   = color.New(color.FgHiBlack)
)

// consoleNotifier prints flow notifications
type consoleNotifier struct {
	out io.Writer
}

func (n consoleNotifier) Info(format string, args ...any) {
	_, _ = successColor.Fprintf(n.out, "✓ %s\n", fmt.Sprintf(format, args...))
}

func (n consoleNotifier) Warn(format string, args ...any) {
	_, _ = warningColor.Fprintf(n.out, "⚠ %s\n", fmt.Sprintf(format, args...))
}

// printJSON writes v as indented JSON
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printLabelValue prints a label-value pair
func printLabelValue(w io.Writer, label, value string) {
	_, _ = labelColor.Fprintf(w, "  %s: ", label)
	_, _ = valueColor.Fprintln(w, value)
}

// printTable prints rows under headers with padded columns
func printTable(w io.Writer, headers []string, rows [][]string) {
	if len(headers) == 0 || len(rows) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	cells := make([]string, len(headers))
	for i, h := range headers {
		cells[i] = fmt.Sprintf("%-*s", widths[i], h)
	}
	_, _ = headerColor.Fprintf(w, "  %s\n", strings.TrimRight(strings.Join(cells, "  "), " "))

	for i, width := range widths {
		cells[i] = strings.Repeat("-", width)
	}
	fmt.Fprintf(w, "  %s\n", strings.Join(cells, "  "))

	for _, row := range rows {
		for i := range cells {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			cells[i] = fmt.Sprintf("%-*s", widths[i], cell)
		}
		fmt.Fprintf(w, "  %s\n", strings.TrimRight(strings.Join(cells, "  "), " "))
	}
}

// printEmpty prints a dimmed placeholder
func printEmpty(w io.Writer, msg string) {
	_, _ = valueColor.Fprintf(w, "  %s\n", msg)
}

// exitCode reports err on w and maps it to a process exit code. A cancel
// is silent and a missing project or group is only a warning.
func exitCode(err error, w io.Writer) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, state.ErrCancelled):
		return 0
	case errors.Is(err, state.ErrNotFound):
		_, _ = warningColor.Fprintf(w, "⚠ %v\n", err)
		return 0
	}
	_, _ = errorColor.Fprintf(w, "✗ %v\n", err)
	return 1
}
