/*
Package morphfst compiles morphology rule files into finite-state transducers
and realizes inflected word forms by walking them.

# Concept

A rule file lists, one lemma per line, the surface forms of that lemma with
their grammatical tags:

	cantar : canto+1S , cantas+2S
	ser : soy+1S , eres+2S

Every form becomes its own linear chain of identity arcs hanging off the
start state, spelling lemma, tags and word in that order. No prefixes are
shared and no determinization or minimization is applied, so the automaton
grows with the number of characters in the file.

A query has the shape WORD+TAG+TAG... and is consumed one character at a
time. At each state the first arc (in insertion order) whose input label
matches the character is followed. The query cantar+1S+canto spells
cantar1Scanto and so retraces the first chain above. If the query is exhausted on a final state,
the consumed characters are returned as the output; otherwise the walk fails
with a no-path or incomplete-match error.

# Architecture

The Engine is a thin facade over hexagonal parts:

  - pkg/rules parses rule lines into entries.
  - pkg/builder appends one chain per entry.
  - pkg/codec encodes automata for storage.
  - pkg/ports defines the AutomatonStore and DistributedLocker boundaries,
    implemented by the file, memory and redis adapters.
  - pkg/realizer walks a query through an automaton.

# Usage

	eng, err := morphfst.New(morphfst.WithStore(memory.NewStore()))
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	if _, err := eng.EnsureBuilt(ctx, "morph.txt", "morph.fst"); err != nil {
		log.Fatal(err)
	}

	out, err := eng.Realize(ctx, "morph.fst", "cantar+1S+canto")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(out)
*/
package morphfst
