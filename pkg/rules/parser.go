package rules

import (
	"strings"

	"github.com/aretw0/morphfst/pkg/domain"
)

// ParseLine turns one rule line into its entries.
// It fails with domain.ErrMalformedEntry when the line has no ':'.
func ParseLine(line string) ([]domain.Entry, error) {
	idx := strings.Index(line, ":")
	if idx < 0 {
		return nil, &domain.EntryError{Text: line}
	}
	lemma := strings.TrimSpace(line[:idx])

	var entries []domain.Entry
	for _, form := range strings.Split(line[idx+1:], ",") {
		form = strings.TrimSpace(form)
		word, tags, ok := strings.Cut(form, "+")
		if !ok {
			continue
		}
		entries = append(entries, domain.Entry{
			Lemma: lemma,
			Tags:  tags,
			Word:  word,
		})
	}
	return entries, nil
}
