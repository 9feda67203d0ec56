// Package token defines the record every analysis stage produces and the
// pull interface stages are chained with.
package token

import (
	"fmt"

	"github.com/cognicore/alix/pkg/alix/tagset"
)

// Kind classifies a token as produced by the tokenizer.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindWord
	KindNumber
	KindPunClause
	KindPunSentence
	KindPunParagraph
	KindPunSection
	KindTag
)

var kindNames = [...]string{
	KindUnknown:      "unknown",
	KindWord:         "word",
	KindNumber:       "number",
	KindPunClause:    "pun-clause",
	KindPunSentence:  "pun-sentence",
	KindPunParagraph: "pun-paragraph",
	KindPunSection:   "pun-section",
	KindTag:          "tag",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// IsPunctuation reports punctuation and structural breaks.
func (k Kind) IsPunctuation() bool {
	return k >= KindPunClause && k <= KindPunSection
}

// IsBreak reports the kinds that end a sentence.
func (k Kind) IsBreak() bool {
	return k == KindPunSentence || k == KindPunParagraph || k == KindPunSection
}

// Token is one unit of the analysed stream.
//
// Start and End are rune offsets in the source text. Orth and Lemma are
// unset when empty. ID is the vocabulary id used by the MWE automaton, 0
// when the token has none. Offsets is set only when Text is not a rune for
// rune copy of the source span; it then holds the source offset of each
// rune of Text.
type Token struct {
	Text   string
	Start  int
	End    int
	PosInc int
	PosLen int
	Kind   Kind
	Orth   string
	Lemma  string
	Tag    tagset.Tag
	ID     int32

	Offsets []int
}

// New returns a token with the default position bookkeeping.
func New(text string, start, end int, kind Kind) Token {
	return Token{
		Text:   text,
		Start:  start,
		End:    end,
		PosInc: 1,
		PosLen: 1,
		Kind:   kind,
	}
}

// Term returns the normalized form when set, the raw text otherwise.
func (t Token) Term() string {
	if t.Orth != "" {
		return t.Orth
	}
	return t.Text
}

// Offset returns the source offset of the i-th rune of Text. i may be the
// rune count of Text, which maps to End.
func (t Token) Offset(i int) int {
	if t.Offsets == nil {
		return t.Start + i
	}
	if i >= len(t.Offsets) {
		return t.End
	}
	return t.Offsets[i]
}

func (t Token) String() string {
	return fmt.Sprintf("%q[%d,%d) %s %s", t.Text, t.Start, t.End, t.Kind, t.Tag)
}
