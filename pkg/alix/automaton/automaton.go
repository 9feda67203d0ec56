// Package automaton compiles multi-word expressions into a deterministic
// automaton over vocabulary ids.
//
// The automaton is built once by a Builder and is then immutable: any number
// of matchers may walk it concurrently.
package automaton

import (
	"sort"

	"github.com/cognicore/alix/pkg/alix/tagset"
)

// State represents a state in the automaton.
type State uint32

// DeadState is the sink state: no transition leaves it and it never accepts.
const DeadState State = 0

const rootState State = 1

// Output is what an accepting state produces: the canonical text of the
// expression, its tag and its lemma.
type Output struct {
	Text    string
	Tag     tagset.Tag
	Lemma   string
	LemmaID int32
}

// Automaton is a compiled trie DFA. Transitions are stored per state as a
// sorted label slice (compressed rows), looked up by binary search.
type Automaton struct {
	offsets []uint32 // state s owns labels[offsets[s]:offsets[s+1]]
	labels  []int32
	targets []State
	accept  []int32 // entry index + 1, 0 when not accepting
	outputs []Output
	maxLen  int
}

// Start returns the initial state.
func (a *Automaton) Start() State {
	return rootState
}

// Step returns the next state for id, DeadState if there is no transition.
func (a *Automaton) Step(s State, id int32) State {
	if s == DeadState || int(s) >= len(a.accept) {
		return DeadState
	}
	lo, hi := a.offsets[s], a.offsets[s+1]
	row := a.labels[lo:hi]
	i := sort.Search(len(row), func(i int) bool { return row[i] >= id })
	if i < len(row) && row[i] == id {
		return a.targets[int(lo)+i]
	}
	return DeadState
}

// Accept returns the entry index of an accepting state.
func (a *Automaton) Accept(s State) (int, bool) {
	if s == DeadState || int(s) >= len(a.accept) {
		return 0, false
	}
	e := a.accept[s]
	if e == 0 {
		return 0, false
	}
	return int(e - 1), true
}

// Entry returns the output of entry i.
func (a *Automaton) Entry(i int) Output {
	return a.outputs[i]
}

// MaxLen returns the length, in tokens, of the longest expression.
func (a *Automaton) MaxLen() int {
	return a.maxLen
}

// Len returns the number of accepting sequences.
func (a *Automaton) Len() int {
	return len(a.outputs)
}

// States returns the number of states, the dead state included.
func (a *Automaton) States() int {
	return len(a.accept)
}

// Transitions returns the number of transitions.
func (a *Automaton) Transitions() int {
	return len(a.labels)
}

// Match walks ids from the start state and returns the length of the
// longest accepting prefix and its entry. n is 0 when no prefix accepts.
func (a *Automaton) Match(ids []int32) (n int, entry int) {
	s := a.Start()
	for i, id := range ids {
		s = a.Step(s, id)
		if s == DeadState {
			break
		}
		if e, ok := a.Accept(s); ok {
			n, entry = i+1, e
		}
	}
	return n, entry
}
