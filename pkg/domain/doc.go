/*
Package domain contains the core data model of the morphfst transducer.

It defines the automaton arena (states addressed by index, arcs stored per
state in insertion order), the rule entries it is built from, the error kinds
shared by every layer, and the lifecycle hooks used for observability. This
package is kept pure and free of I/O, following Hexagonal Architecture
principles.

# Key Entities

  - Automaton: a start state, a growable table of states and ordered arc lists.
  - Arc: a labeled transition carrying input and output code points.
  - Entry: one (lemma, tags, word) triple parsed from a rule line.
  - Stats: counts derived from an Automaton for reporting.
*/
package domain
