package rules

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/morphfst/pkg/domain"
)

// maxLineSize bounds a single rule line.
const maxLineSize = 1 << 20

// Scanner reads entries from a rule file one line at a time.
// Every line must hold an entry; a blank line is malformed.
type Scanner struct {
	sc      *bufio.Scanner
	line    int
	entries []domain.Entry
	err     error
}

// NewScanner creates a Scanner reading from r.
func NewScanner(r io.Reader) *Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &Scanner{sc: sc}
}

// Scan advances to the next line.
// It returns false at EOF or on the first error.
func (s *Scanner) Scan() bool {
	if s.err != nil {
		return false
	}
	for s.sc.Scan() {
		s.line++
		text := s.sc.Text()
		entries, err := ParseLine(text)
		if err != nil {
			s.err = &domain.EntryError{Line: s.line, Text: text}
			return false
		}
		s.entries = entries
		return true
	}
	if err := s.sc.Err(); err != nil {
		s.err = fmt.Errorf("read line %d: %w", s.line+1, err)
	}
	return false
}

// Entries returns the entries of the current line. A line whose forms all
// lack '+' yields none.
func (s *Scanner) Entries() []domain.Entry {
	return s.entries
}

// Line returns the 1-based number of the current line.
func (s *Scanner) Line() int {
	return s.line
}

// Err returns the first error met by Scan.
func (s *Scanner) Err() error {
	return s.err
}

// ParseAll reads every entry from r.
func ParseAll(r io.Reader) ([]domain.Entry, error) {
	var all []domain.Entry
	sc := NewScanner(r)
	for sc.Scan() {
		all = append(all, sc.Entries()...)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return all, nil
}

// ParseFile reads every entry from the rule file at path.
func ParseFile(path string) ([]domain.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &domain.StoreError{Op: "open rules", Key: path, Err: err}
	}
	defer f.Close()
	return ParseAll(f)
}
