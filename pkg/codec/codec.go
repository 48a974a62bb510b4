// Package codec defines the on-disk form of an automaton.
//
// Layout: the 4-byte magic "MFST", one version byte, then a snappy block
// holding uvarints: start+1 (0 when unset), the state count, and per state a
// flag byte (bit 0 = final), the final weight bits when final, the arc count
// and, per arc, ilabel, olabel, weight bits and target state.
package codec

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/aretw0/morphfst/pkg/domain"
	"github.com/golang/snappy"
)

// Magic prefixes every encoded automaton.
const Magic = "MFST"

// Version is the current layout version.
const Version byte = 1

const flagFinal = 1 << 0

// Marshal encodes a into its persisted form.
func Marshal(a *domain.Automaton) ([]byte, error) {
	if a == nil {
		return nil, errors.New("codec: nil automaton")
	}
	var buf []byte

	start, ok := a.Start()
	if ok {
		buf = binary.AppendUvarint(buf, uint64(start)+1)
	} else {
		buf = binary.AppendUvarint(buf, 0)
	}

	states := a.States()
	buf = binary.AppendUvarint(buf, uint64(len(states)))
	for _, st := range states {
		var flags byte
		if st.Final {
			flags |= flagFinal
		}
		buf = append(buf, flags)
		if st.Final {
			buf = binary.AppendUvarint(buf, uint64(math.Float32bits(float32(st.FinalWeight))))
		}
		buf = binary.AppendUvarint(buf, uint64(len(st.Arcs)))
		for _, arc := range st.Arcs {
			buf = binary.AppendUvarint(buf, uint64(arc.ILabel))
			buf = binary.AppendUvarint(buf, uint64(arc.OLabel))
			buf = binary.AppendUvarint(buf, uint64(math.Float32bits(float32(arc.Weight))))
			buf = binary.AppendUvarint(buf, uint64(arc.NextState))
		}
	}

	out := make([]byte, 0, len(Magic)+1+snappy.MaxEncodedLen(len(buf)))
	out = append(out, Magic...)
	out = append(out, Version)
	return append(out, snappy.Encode(nil, buf)...), nil
}

// Unmarshal decodes bytes produced by Marshal.
// Any structural problem is reported as domain.ErrCorrupt.
func Unmarshal(data []byte) (*domain.Automaton, error) {
	if len(data) < len(Magic)+1 || string(data[:len(Magic)]) != Magic {
		return nil, fmt.Errorf("%w: bad magic", domain.ErrCorrupt)
	}
	if v := data[len(Magic)]; v != Version {
		return nil, fmt.Errorf("%w: unsupported version %d", domain.ErrCorrupt, v)
	}
	payload, err := snappy.Decode(nil, data[len(Magic)+1:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorrupt, err)
	}

	r := &reader{r: bytes.NewReader(payload)}
	rawStart := r.uvarint()
	n := r.uvarint()
	// Every state takes at least two bytes, which bounds honest counts.
	if r.err == nil && n > uint64(len(payload)) {
		return nil, fmt.Errorf("%w: state count %d exceeds payload", domain.ErrCorrupt, n)
	}

	states := make([]domain.State, 0, int(n))
	for i := uint64(0); i < n && r.err == nil; i++ {
		var st domain.State
		flags := r.byte()
		if flags&flagFinal != 0 {
			st.Final = true
			st.FinalWeight = domain.Weight(math.Float32frombits(uint32(r.uvarint())))
		}
		arcs := r.uvarint()
		if r.err == nil && arcs > uint64(len(payload)) {
			return nil, fmt.Errorf("%w: arc count %d exceeds payload", domain.ErrCorrupt, arcs)
		}
		if arcs > 0 {
			st.Arcs = make([]domain.Arc, 0, int(arcs))
		}
		for j := uint64(0); j < arcs && r.err == nil; j++ {
			st.Arcs = append(st.Arcs, domain.Arc{
				ILabel:    domain.Label(r.uvarint()),
				OLabel:    domain.Label(r.uvarint()),
				Weight:    domain.Weight(math.Float32frombits(uint32(r.uvarint()))),
				NextState: domain.StateID(r.uvarint()),
			})
		}
		states = append(states, st)
	}
	if r.err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorrupt, r.err)
	}

	start := domain.NoState
	if rawStart > 0 {
		start = domain.StateID(rawStart - 1)
	}
	a, err := domain.Restore(start, states)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorrupt, err)
	}
	return a, nil
}

// Write encodes a to w.
func Write(w io.Writer, a *domain.Automaton) error {
	data, err := Marshal(a)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	if _, err := bw.Write(data); err != nil {
		return err
	}
	return bw.Flush()
}

// Read decodes an automaton from r.
func Read(r io.Reader) (*domain.Automaton, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Unmarshal(data)
}

// reader keeps the first error so decoding loops stay flat.
type reader struct {
	r   *bytes.Reader
	err error
}

func (r *reader) uvarint() uint64 {
	if r.err != nil {
		return 0
	}
	v, err := binary.ReadUvarint(r.r)
	if err != nil {
		r.err = err
	}
	return v
}

func (r *reader) byte() byte {
	if r.err != nil {
		return 0
	}
	b, err := r.r.ReadByte()
	if err != nil {
		r.err = err
	}
	return b
}
