package automaton

import (
	"sort"

	"github.com/Laisky/errors/v2"

	"github.com/cognicore/alix/pkg/alix/internalerr"
)

type node struct {
	next  map[int32]int
	entry int32 // entry index + 1
}

// Builder collects id sequences before compilation. A Builder is not safe
// for concurrent use.
type Builder struct {
	nodes   []node
	outputs []Output
	maxLen  int
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{nodes: []node{{}}}
}

// Add registers a sequence of ids and the output it produces. Ids must be
// positive. A sequence already registered keeps its first output and Add
// returns ErrDuplicate.
func (b *Builder) Add(ids []int32, out Output) error {
	if len(ids) == 0 {
		return errors.Wrap(internalerr.ErrInvalidInput, "empty id sequence")
	}
	cur := 0
	for _, id := range ids {
		if id <= 0 {
			return errors.Wrapf(internalerr.ErrInvalidInput, "invalid id %d in `%s`", id, out.Text)
		}
		if b.nodes[cur].next == nil {
			b.nodes[cur].next = make(map[int32]int)
		}
		nxt, ok := b.nodes[cur].next[id]
		if !ok {
			b.nodes = append(b.nodes, node{})
			nxt = len(b.nodes) - 1
			b.nodes[cur].next[id] = nxt
		}
		cur = nxt
	}
	if b.nodes[cur].entry != 0 {
		return errors.Wrapf(internalerr.ErrDuplicate, "sequence of `%s`", out.Text)
	}
	b.outputs = append(b.outputs, out)
	b.nodes[cur].entry = int32(len(b.outputs))
	if len(ids) > b.maxLen {
		b.maxLen = len(ids)
	}
	return nil
}

// Len returns the number of registered sequences.
func (b *Builder) Len() int {
	return len(b.outputs)
}

// Build compiles the automaton. States are numbered breadth first from the
// root, state 0 being the dead state.
func (b *Builder) Build() *Automaton {
	// builder node -> state
	order := make([]int, 0, len(b.nodes))
	state := make([]State, len(b.nodes))
	order = append(order, 0)
	state[0] = rootState
	for i := 0; i < len(order); i++ {
		n := b.nodes[order[i]]
		for _, label := range sortedLabels(n.next) {
			child := n.next[label]
			order = append(order, child)
			state[child] = State(len(order))
		}
	}

	nstates := len(order) + 1
	a := &Automaton{
		offsets: make([]uint32, nstates+1),
		accept:  make([]int32, nstates),
		outputs: append([]Output(nil), b.outputs...),
		maxLen:  b.maxLen,
	}
	for i, ni := range order {
		s := State(i + 1)
		n := b.nodes[ni]
		a.offsets[s] = uint32(len(a.labels))
		a.accept[s] = n.entry
		for _, label := range sortedLabels(n.next) {
			a.labels = append(a.labels, label)
			a.targets = append(a.targets, state[n.next[label]])
		}
	}
	a.offsets[nstates] = uint32(len(a.labels))
	return a
}

func sortedLabels(m map[int32]int) []int32 {
	labels := make([]int32, 0, len(m))
	for l := range m {
		labels = append(labels, l)
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })
	return labels
}
