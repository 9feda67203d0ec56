package ingest

import (
	"io"

	"github.com/Laisky/errors/v2"

	"github.com/cognicore/alix/pkg/alix/automaton"
	"github.com/cognicore/alix/pkg/alix/token"
	"github.com/cognicore/alix/pkg/alix/window"
)

// ErrTokenGraph is returned when a token stacks on the previous position
// (position increment 0), which the MWE matcher does not support.
var ErrTokenGraph = errors.New("ingest: token graphs are not supported")

// MWEMatcher replaces the longest run of at least two tokens whose ids are
// accepted by the automaton with the canonical token of the expression. The
// compound spans the run (PosLen is its length); the increments of the
// swallowed tokens are carried to the next emitted token.
type MWEMatcher struct {
	in    token.Stream
	auto  *automaton.Automaton
	win   *window.Window[token.Token]
	eof   error
	carry int
}

// NewMWEMatcher wraps in. The lookahead window is sized by the longest
// expression of a.
func NewMWEMatcher(in token.Stream, a *automaton.Automaton) *MWEMatcher {
	return &MWEMatcher{
		in:   in,
		auto: a,
		win:  window.New[token.Token](max(a.MaxLen(), 1), window.Throw),
	}
}

func (m *MWEMatcher) fill() error {
	for !m.win.Full() && m.eof == nil {
		tok, err := m.in.Next()
		if errors.Is(err, io.EOF) {
			m.eof = err
			break
		}
		if err != nil {
			return err
		}
		if tok.PosInc == 0 {
			return errors.Wrapf(ErrTokenGraph, "`%s` at %d", tok.Text, tok.Start)
		}
		if err := m.win.PushBack(tok); err != nil {
			return err
		}
	}
	return nil
}

func (m *MWEMatcher) Next() (token.Token, error) {
	if err := m.fill(); err != nil {
		return token.Token{}, err
	}
	if m.win.Empty() {
		return token.Token{}, m.eof
	}

	best, entry := 0, 0
	s := m.auto.Start()
	for i := 0; i < m.win.Len(); i++ {
		tok, err := m.win.At(i)
		if err != nil {
			return token.Token{}, err
		}
		if tok.ID == 0 {
			break
		}
		if s = m.auto.Step(s, tok.ID); s == automaton.DeadState {
			break
		}
		if e, ok := m.auto.Accept(s); ok {
			best, entry = i+1, e
		}
	}

	if best < 2 {
		tok, err := m.win.PopFront()
		if err != nil {
			return token.Token{}, err
		}
		tok.PosInc += m.carry
		m.carry = 0
		return tok, nil
	}

	var first, last token.Token
	skipped := 0
	for i := 0; i < best; i++ {
		tok, err := m.win.PopFront()
		if err != nil {
			return token.Token{}, err
		}
		if i == 0 {
			first = tok
		} else {
			skipped += tok.PosInc
		}
		last = tok
	}

	out := m.auto.Entry(entry)
	tok := token.New(out.Text, first.Start, last.End, token.KindWord)
	tok.PosInc = first.PosInc + m.carry
	tok.PosLen = best
	tok.Orth = out.Text
	tok.Lemma = out.Lemma
	tok.Tag = out.Tag
	tok.ID = out.LemmaID
	m.carry = skipped
	return tok, nil
}
