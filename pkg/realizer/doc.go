/*
Package realizer answers realization queries against a built automaton.

A query has the form word+TAG1+TAG2+...; the '+' separators are dropped and
the remaining characters form the symbol sequence. The walk starts at the
start state and, for each symbol, follows the first outgoing arc (in
insertion order) whose input label matches, collecting output labels. The
walk succeeds only if it ends on a final state.

Because the builder lays down identity arcs, a successful output is always
the consumed symbols themselves.
*/
package realizer
