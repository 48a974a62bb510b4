package domain

// Stats summarises the shape of an automaton.
type Stats struct {
	States       int `json:"states" yaml:"states"`
	Arcs         int `json:"arcs" yaml:"arcs"`
	Finals       int `json:"finals" yaml:"finals"`
	MaxOutDegree int `json:"max_out_degree" yaml:"max_out_degree"`
}

// Stats computes the shape of the automaton.
func (a *Automaton) Stats() Stats {
	var s Stats
	s.States = len(a.states)
	for _, st := range a.states {
		s.Arcs += len(st.Arcs)
		if st.Final {
			s.Finals++
		}
		if len(st.Arcs) > s.MaxOutDegree {
			s.MaxOutDegree = len(st.Arcs)
		}
	}
	return s
}
