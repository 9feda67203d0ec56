package ingest

import (
	"strings"

	"github.com/cognicore/alix/pkg/alix/token"
	"github.com/cognicore/alix/pkg/alix/vocab"
)

// Identifier sets the vocabulary id of words and numbers from their lemma,
// or from their lowercased form when they have none. Unknown terms keep id
// 0; the vocabulary is only read.
type Identifier struct {
	in    token.Stream
	vocab *vocab.Vocab
}

// NewIdentifier wraps in.
func NewIdentifier(in token.Stream, v *vocab.Vocab) *Identifier {
	return &Identifier{in: in, vocab: v}
}

// IDTerm returns the vocabulary term of a token.
func IDTerm(tok token.Token) string {
	if tok.Lemma != "" {
		return strings.ToLower(tok.Lemma)
	}
	return strings.ToLower(tok.Term())
}

func (f *Identifier) Next() (token.Token, error) {
	tok, err := f.in.Next()
	if err != nil {
		return tok, err
	}
	if tok.Kind == token.KindWord || tok.Kind == token.KindNumber {
		if id, ok := f.vocab.Lookup(IDTerm(tok)); ok {
			tok.ID = id
		}
	}
	return tok, nil
}
