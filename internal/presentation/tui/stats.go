package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/morphfst/pkg/domain"
)

// StatsMarkdown summarises an automaton as a markdown table.
func StatsMarkdown(key string, s domain.Stats) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", key)
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|---|---:|\n")
	fmt.Fprintf(&sb, "| States | %d |\n", s.States)
	fmt.Fprintf(&sb, "| Arcs | %d |\n", s.Arcs)
	fmt.Fprintf(&sb, "| Final states | %d |\n", s.Finals)
	fmt.Fprintf(&sb, "| Max out-degree | %d |\n", s.MaxOutDegree)
	return sb.String()
}
