package ingest

import (
	"strings"
	"unicode"

	"github.com/Laisky/errors/v2"

	"github.com/cognicore/alix/pkg/alix/lexicon"
	"github.com/cognicore/alix/pkg/alix/token"
	"github.com/cognicore/alix/pkg/alix/window"
)

// maxDecomposition bounds the rewrites applied to one word.
const maxDecomposition = 10

// ErrDecomposition is returned when a word needs more rewrites than
// maxDecomposition, which points at a looping dictionary.
var ErrDecomposition = errors.New("ingest: clitic decomposition does not terminate")

// CliticSplitter splits elided prefixes ("qu'il" → "que", "il") and
// enclitic suffixes ("dit-il" → "dit", "il") using the dictionary tables.
//
// Chained forms such as "qu'en-dira-t-on" or "donne-m'en" are not fully
// decomposed: a remainder queued after a prefix is emitted as is.
type CliticSplitter struct {
	in      token.Stream
	lex     *lexicon.Store
	pending *window.Window[token.Token]
}

// NewCliticSplitter wraps in.
func NewCliticSplitter(in token.Stream, lex *lexicon.Store) *CliticSplitter {
	return &CliticSplitter{
		in:      in,
		lex:     lex,
		pending: window.New[token.Token](4, window.Grow, window.WithMaxCapacity(64)),
	}
}

func (c *CliticSplitter) Next() (token.Token, error) {
	if !c.pending.Empty() {
		return c.pending.PopFront()
	}
	tok, err := c.in.Next()
	if err != nil || tok.Kind != token.KindWord {
		return tok, err
	}
	if _, ok := c.lex.Word(strings.ToLower(tok.Text)); ok {
		return tok, nil
	}

	for i := 0; ; i++ {
		if i == maxDecomposition {
			return tok, errors.Wrapf(ErrDecomposition, "`%s` at %d", tok.Text, tok.Start)
		}
		text := []rune(tok.Text)
		apos := indexRune(text, '\'')
		hyphen := lastIndexRune(text, '-')
		if (apos < 0 && hyphen < 0) || apos == len(text)-1 || hyphen == 0 {
			return tok, nil
		}

		if apos > 0 {
			prefix := string(text[:apos+1])
			if v, ok := c.lex.Elision(prefix); ok {
				rest := token.New(string(text[apos+1:]), tok.Offset(apos+1), tok.End, token.KindWord)
				rest.Offsets = tail(tok.Offsets, apos+1)
				if err := c.pending.PushBack(rest); err != nil {
					return tok, errors.Wrap(err, "queue clitic remainder")
				}
				head := tok
				head.Text = keepCapital(text[0], v)
				head.End = tok.Offset(apos) + 1
				head.Offsets = nil
				return head, nil
			}
		}

		if hyphen > 0 {
			if sfx, ok := c.lex.Suffix(string(text[hyphen:])); ok {
				if !sfx.Silent {
					enclitic := token.New(sfx.Value, tok.Offset(hyphen), tok.End, token.KindWord)
					if err := c.pending.PushFront(enclitic); err != nil {
						return tok, errors.Wrap(err, "queue enclitic")
					}
				}
				tok.Text = string(text[:hyphen])
				tok.End = tok.Offset(hyphen)
				if tok.Offsets != nil {
					tok.Offsets = tok.Offsets[:hyphen]
				}
				continue
			}
		}
		return tok, nil
	}
}

// keepCapital capitalizes v when the form it replaces was capitalized.
func keepCapital(first rune, v string) string {
	if !unicode.IsUpper(first) || v == "" {
		return v
	}
	r := []rune(v)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// tail returns the offsets from rune i on, nil when offs is nil.
func tail(offs []int, i int) []int {
	if offs == nil {
		return nil
	}
	return append([]int(nil), offs[i:]...)
}

func indexRune(s []rune, r rune) int {
	for i, c := range s {
		if c == r {
			return i
		}
	}
	return -1
}

func lastIndexRune(s []rune, r rune) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == r {
			return i
		}
	}
	return -1
}
