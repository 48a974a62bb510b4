package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/morphfst/pkg/domain"
	"github.com/aretw0/morphfst/pkg/realizer"
)

// GraphOverlay contains walk data to highlight on the graph.
type GraphOverlay struct {
	Visited []domain.StateID
	Current domain.StateID
}

// OverlayFromTrace highlights the states a walk went through and the state it
// stopped on.
func OverlayFromTrace(tr *realizer.Trace) *GraphOverlay {
	o := &GraphOverlay{Current: domain.NoState}
	for _, step := range tr.Steps {
		o.Visited = append(o.Visited, step.From)
		o.Current = step.To
	}
	return o
}

// GenerateMermaid produces a Mermaid flowchart of the automaton.
// Shapes:
// - Start: ((Circle))
// - Final: (((Double circle)))
// - Default: [Rectangle]
// Arcs are labelled with their input symbol, plus ":output" when it differs.
// A positive limit renders only states below it and notes the rest.
func GenerateMermaid(a *domain.Automaton, overlay *GraphOverlay, limit int) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	start, hasStart := a.Start()
	states := a.States()
	shown := len(states)
	if limit > 0 && limit < shown {
		shown = limit
	}

	for i := 0; i < shown; i++ {
		id := domain.StateID(i)
		st := states[i]

		opener, closer := "[", "]"
		switch {
		case hasStart && id == start:
			opener, closer = "((", "))"
		case st.Final:
			opener, closer = "(((", ")))"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%d\"%s\n", nodeID(id), opener, i, closer))

		for _, arc := range st.Arcs {
			if int(arc.NextState) >= shown {
				continue
			}
			sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n", nodeID(id), arcLabel(arc), nodeID(arc.NextState)))
		}
	}

	if shown < len(states) {
		sb.WriteString(fmt.Sprintf("    more[\"... %d more states\"]\n", len(states)-shown))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[domain.StateID]bool)
		for _, id := range overlay.Visited {
			if seen[id] || int(id) >= shown {
				continue
			}
			seen[id] = true
			sb.WriteString(fmt.Sprintf("    class %s visited;\n", nodeID(id)))
		}
		if overlay.Current != domain.NoState && int(overlay.Current) < shown {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", nodeID(overlay.Current)))
		}
	}

	return sb.String()
}

func nodeID(s domain.StateID) string {
	return fmt.Sprintf("s%d", s)
}

func arcLabel(arc domain.Arc) string {
	label := escape(rune(arc.ILabel))
	if arc.OLabel != arc.ILabel {
		label += ":" + escape(rune(arc.OLabel))
	}
	return label
}

// escape renders a symbol safely inside a quoted Mermaid label.
func escape(r rune) string {
	switch r {
	case '"':
		return "#quot;"
	case ' ':
		return "#32;"
	}
	return string(r)
}
