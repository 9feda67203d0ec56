package automaton

import (
	"strings"

	"github.com/Laisky/errors/v2"
	"go.uber.org/zap"

	"github.com/cognicore/alix/internal/log"
	"github.com/cognicore/alix/pkg/alix/internalerr"
	"github.com/cognicore/alix/pkg/alix/tagset"
)

// Entry is a textual expression: its canonical form, the lemma sequences
// that spell it and its tag. The canonical form is itself a sequence.
type Entry struct {
	Canonical string
	Variants  []string
	Tag       tagset.Tag
}

// Interner maps a term to its vocabulary id, assigning one if needed.
type Interner interface {
	ID(term string) (int32, error)
}

// Terms splits a sequence into the terms a token stream produces: lowercased
// words, elided prefixes cut after their apostrophe.
func Terms(seq string) []string {
	seq = strings.ToLower(strings.ReplaceAll(seq, "’", "'"))
	var terms []string
	for _, f := range strings.Fields(seq) {
		for {
			i := strings.IndexByte(f, '\'')
			if i < 0 || i == len(f)-1 {
				terms = append(terms, f)
				break
			}
			terms = append(terms, f[:i+1])
			f = f[i+1:]
		}
	}
	return terms
}

// Compile interns every sequence of entries and builds the automaton.
// Sequences registered twice keep their first entry.
func Compile(entries []Entry, in Interner) (*Automaton, error) {
	b := NewBuilder()
	for _, e := range entries {
		canonical := strings.TrimSpace(e.Canonical)
		if canonical == "" {
			continue
		}
		lemmaID, err := in.ID(strings.ToLower(canonical))
		if err != nil {
			return nil, errors.Wrapf(err, "intern `%s`", canonical)
		}
		out := Output{Text: canonical, Tag: e.Tag, Lemma: canonical, LemmaID: lemmaID}

		for _, seq := range append([]string{canonical}, e.Variants...) {
			terms := Terms(seq)
			if len(terms) == 0 {
				continue
			}
			ids := make([]int32, len(terms))
			for i, term := range terms {
				if ids[i], err = in.ID(term); err != nil {
					return nil, errors.Wrapf(err, "intern `%s`", term)
				}
			}
			if err := b.Add(ids, out); err != nil {
				if errors.Is(err, internalerr.ErrDuplicate) {
					log.Logger.Debug("duplicate expression sequence",
						zap.String("canonical", canonical), zap.String("sequence", seq))
					continue
				}
				return nil, err
			}
		}
	}
	a := b.Build()
	log.Logger.Debug("expression automaton compiled",
		zap.Int("entries", a.Len()),
		zap.Int("states", a.States()),
		zap.Int("max_len", a.MaxLen()))
	return a, nil
}
