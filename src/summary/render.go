// Package summary renders human-readable summaries of command results for
// people reading CI logs. Summaries go to stderr; stdout stays machine-readable.
package summary

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"pantry-ci/src/platform"
)

// DefaultWidth is used when the caller has no terminal width.
const DefaultWidth = 100

const keyWidth = 12

// minWidth leaves room for the key column, the border and one value column.
const minWidth = keyWidth + 8

// RenderPlatform renders a resolved platform record.
func RenderPlatform(name string, rec platform.Record, runnerSize int, width int) (string, error) {
	fields, err := rec.Fields()
	if err != nil {
		return "", err
	}

	styles := DefaultStyles()
	width = clampWidth(width)
	valueWidth := width - keyWidth - 5

	lines := []string{styles.TitleStyle().Render(name)}
	for _, f := range fields {
		lines = append(lines, row(styles, f.Key, f.Value, valueWidth))
	}
	lines = append(lines, styles.NoteStyle().Render(fmt.Sprintf("build runner sized for %d cores", runnerSize)))

	return frame(styles, lines, width), nil
}

// RenderFilter renders the outcome of a filter run.
func RenderFilter(requested, kept []string, invert bool, width int) string {
	styles := DefaultStyles()
	width = clampWidth(width)
	valueWidth := width - keyWidth - 5

	mode := "missing"
	if invert {
		mode = "installed"
	}

	lines := []string{
		styles.TitleStyle().Render(fmt.Sprintf("kept %d of %d (%s)", len(kept), len(requested), mode)),
	}

	keptSet := make(map[string]int, len(kept))
	for _, k := range kept {
		keptSet[k]++
	}
	for _, r := range requested {
		status, style := "skipped", styles.KeyStyle()
		if keptSet[r] > 0 {
			keptSet[r]--
			status, style = "kept", styles.KeptStyle()
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			style.Render(TruncateAndPad(status, keyWidth)),
			styles.ValueStyle().Render(Truncate(r, valueWidth)),
		))
	}

	return frame(styles, lines, width)
}

func row(styles *StyleConfig, key, value string, valueWidth int) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		styles.KeyStyle().Render(TruncateAndPad(key, keyWidth)),
		styles.ValueStyle().Render(Truncate(value, valueWidth)),
	)
}

func frame(styles *StyleConfig, lines []string, width int) string {
	body := styles.BoxStyle().Render(strings.Join(lines, "\n"))

	// Borders can push a line past width on narrow terminals.
	out := strings.Split(body, "\n")
	for i, l := range out {
		if ansi.StringWidth(l) > width {
			out[i] = ansi.Truncate(l, width, "")
		}
	}
	return strings.Join(out, "\n") + "\n"
}

func clampWidth(width int) int {
	if width <= 0 {
		return DefaultWidth
	}
	if width < minWidth {
		return minWidth
	}
	return width
}
