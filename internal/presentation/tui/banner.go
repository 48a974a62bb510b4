package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// gradient colours the banner letter by letter (Emerald to Indigo).
var gradient = []string{"#34d399", "#2dd4bf", "#22d3ee", "#38bdf8", "#60a5fa", "#818cf8", "#a78bfa", "#c084fc"}

// PrintBanner writes the morphfst banner with the given version to w.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()

	var sb strings.Builder
	for i, r := range "morphfst" {
		sb.WriteString(termenv.String(string(r)).Bold().Foreground(p.Color(gradient[i%len(gradient)])).String())
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s  %s\n", sb.String(), termenv.String("v"+strings.TrimSpace(version)).Faint())
	fmt.Fprintf(w, "  %s\n\n", termenv.String("rule files to finite-state transducers").Faint())
}

// ErrorText colours an error message for terminal output.
func ErrorText(msg string) termenv.Style {
	p := termenv.ColorProfile()
	return termenv.String(msg).Foreground(p.Color("#f87171"))
}
