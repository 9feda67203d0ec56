package ingest

import (
	"io"
	"strings"

	"github.com/Laisky/errors/v2"

	"github.com/cognicore/alix/pkg/alix/lexicon"
	"github.com/cognicore/alix/pkg/alix/token"
	"github.com/cognicore/alix/pkg/alix/window"
)

// LocutionMatcher merges runs of words that spell a dictionary locution
// ("chemin de fer", "tout à fait") into one token. The walk keeps the
// longest complete locution; tokens read ahead but not consumed by the match
// stay buffered and are emitted next.
type LocutionMatcher struct {
	in  token.Stream
	lex *lexicon.Store
	win *window.Window[token.Token]
	eof error
	key strings.Builder
}

// NewLocutionMatcher wraps in.
func NewLocutionMatcher(in token.Stream, lex *lexicon.Store) *LocutionMatcher {
	return &LocutionMatcher{
		in:  in,
		lex: lex,
		win: window.New[token.Token](8, window.Grow, window.WithMaxCapacity(256)),
	}
}

// at returns the i-th buffered token, reading upstream as needed. It
// reports false when the stream ends first.
func (m *LocutionMatcher) at(i int) (*token.Token, bool, error) {
	for m.win.Len() <= i {
		if m.eof != nil {
			return nil, false, nil
		}
		tok, err := m.in.Next()
		if errors.Is(err, io.EOF) {
			m.eof = err
			return nil, false, nil
		}
		if err != nil {
			return nil, false, err
		}
		if err := m.win.PushBack(tok); err != nil {
			return nil, false, errors.Wrap(err, "buffer locution lookahead")
		}
	}
	tok, err := m.win.At(i)
	return tok, err == nil, err
}

func (m *LocutionMatcher) Next() (token.Token, error) {
	head, ok, err := m.at(0)
	if err != nil {
		return token.Token{}, err
	}
	if !ok {
		return token.Token{}, m.eof
	}
	if !locutionPart(head) {
		return m.win.PopFront()
	}

	best, bestKey := 0, ""
	prev := ""
	for i := 0; ; i++ {
		tok, ok, err := m.at(i)
		if err != nil {
			return token.Token{}, err
		}
		if !ok || !locutionPart(tok) {
			break
		}
		term := preferredTerm(tok)
		if term == "" {
			break
		}
		k, flags := m.probe(prev, term)
		if flags == 0 && tok.Term() != term {
			// conjugated forms inside a locution ("tout à fait")
			k, flags = m.probe(prev, tok.Term())
		}
		if flags == 0 {
			break
		}
		if flags&lexicon.Leaf != 0 {
			best, bestKey = i+1, k
		}
		if flags&lexicon.Branch == 0 {
			break
		}
		prev = k
	}

	if best < 2 {
		return m.win.PopFront()
	}
	return m.merge(best, bestKey)
}

// probe appends term to prev and looks the key up in the locution tree,
// rewriting its ending on a miss.
func (m *LocutionMatcher) probe(prev, term string) (string, lexicon.Flags) {
	m.key.Reset()
	m.key.WriteString(prev)
	lexicon.AppendPart(&m.key, term)
	k := m.key.String()
	if f := m.lex.Locution(k); f != 0 {
		return k, f
	}
	if rk, ok := lexicon.RewriteTail(k); ok {
		if f := m.lex.Locution(rk); f != 0 {
			return rk, f
		}
	}
	return k, 0
}

// merge replaces the first n buffered tokens by the locution k. The
// compound takes the dictionary graph, or k when the locution has no entry.
func (m *LocutionMatcher) merge(n int, k string) (token.Token, error) {
	var first, last token.Token
	for i := 0; i < n; i++ {
		tok, err := m.win.PopFront()
		if err != nil {
			return token.Token{}, err
		}
		if i == 0 {
			first = tok
		}
		last = tok
	}

	e, _ := m.lex.LocutionEntry(k)
	out := token.New(e.Graph, first.Start, last.End, token.KindWord)
	out.PosInc = first.PosInc
	out.Orth = e.Graph
	out.Lemma = e.Lemma
	out.Tag = e.Tag
	return out, nil
}

func locutionPart(tok *token.Token) bool {
	return tok.Kind == token.KindWord || tok.Kind == token.KindNumber
}

// preferredTerm is the form a token contributes to a locution key: the lemma
// of verbs, the raw text of numbers and elided forms, the normalized form
// otherwise.
func preferredTerm(tok *token.Token) string {
	switch {
	case tok.Kind == token.KindNumber, strings.HasSuffix(tok.Text, "'"):
		return tok.Text
	case tok.Tag.IsVerb() && tok.Lemma != "":
		return tok.Lemma
	}
	return tok.Term()
}
