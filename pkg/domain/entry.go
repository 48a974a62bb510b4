package domain

// Entry is one (lemma, tags, word) triple taken from a rule line.
// Tags holds everything after the first '+' of a form, undivided.
type Entry struct {
	Lemma string `json:"lemma" yaml:"lemma"`
	Tags  string `json:"tags" yaml:"tags"`
	Word  string `json:"word" yaml:"word"`
}

// Sequence returns the characters laid down for the entry, in path order.
func (e Entry) Sequence() []rune {
	seq := make([]rune, 0, len(e.Lemma)+len(e.Tags)+len(e.Word))
	seq = append(seq, []rune(e.Lemma)...)
	seq = append(seq, []rune(e.Tags)...)
	seq = append(seq, []rune(e.Word)...)
	return seq
}
