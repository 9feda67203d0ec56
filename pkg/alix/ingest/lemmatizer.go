package ingest

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cognicore/alix/pkg/alix/lexicon"
	"github.com/cognicore/alix/pkg/alix/tagset"
	"github.com/cognicore/alix/pkg/alix/token"
)

// Lemmatizer sets the normalized form, lemma and tag of words from the
// dictionary. It never drops a token.
type Lemmatizer struct {
	in  token.Stream
	lex *lexicon.Store

	// sentenceStart is set after a break; not used to decide yet.
	sentenceStart bool
}

// NewLemmatizer wraps in.
func NewLemmatizer(in token.Stream, lex *lexicon.Store) *Lemmatizer {
	return &Lemmatizer{in: in, lex: lex, sentenceStart: true}
}

func (l *Lemmatizer) Next() (token.Token, error) {
	tok, err := l.in.Next()
	if err != nil {
		return tok, err
	}
	switch {
	case tok.Kind == token.KindTag, tok.Kind.IsPunctuation():
		l.sentenceStart = tok.Kind.IsBreak()
		return tok, nil
	case tok.Text == "":
		return tok, nil
	}
	first, _ := utf8.DecodeRuneInString(tok.Text)
	if !isTokenChar(first) && !isHyphen(first) {
		return tok, nil
	}
	l.lemmatize(&tok)
	l.sentenceStart = false
	return tok, nil
}

func (l *Lemmatizer) lemmatize(tok *token.Token) {
	if tok.Orth == "" {
		tok.Orth = tok.Text
	}
	tok.Orth = l.lex.Normalize(tok.Orth)

	first, _ := utf8.DecodeRuneInString(tok.Orth)
	if !unicode.IsUpper(first) {
		if e, ok := l.lex.WordTagged(tok.Orth, tok.Tag); ok {
			apply(tok, e)
		}
		return
	}

	numeral := strings.TrimSuffix(tok.Text, ".")
	if utf8.RuneCountInString(numeral) > 1 {
		if n, ok := parseRoman(numeral); ok {
			tok.Kind = token.KindNumber
			tok.Tag = tagset.Num
			tok.Lemma = strconv.Itoa(n)
			return
		}
	}

	if e, ok := l.name(tok.Orth); ok {
		apply(tok, e)
		return
	}
	if i := strings.IndexByte(tok.Orth, '-'); i > 0 {
		if e, ok := l.name(tok.Orth[:i]); ok {
			if e.Tag != tagset.Unknown {
				tok.Tag = e.Tag
			}
			return
		}
	}
	lower := strings.ToLower(tok.Orth)
	if e, ok := l.lex.WordTagged(lower, tok.Tag); ok {
		tok.Orth = l.lex.Normalize(lower)
		apply(tok, e)
		return
	}
	if !tok.Tag.IsName() {
		tok.Tag = tagset.Name
	}
}

// name looks a proper name up as written, then capitalized ("PARIS").
func (l *Lemmatizer) name(form string) (lexicon.Entry, bool) {
	if e, ok := l.lex.Name(form); ok {
		return e, true
	}
	if c := lexicon.Capitalize(form); c != form {
		return l.lex.Name(c)
	}
	return lexicon.Entry{}, false
}

func apply(tok *token.Token, e lexicon.Entry) {
	if e.Tag != tagset.Unknown {
		tok.Tag = e.Tag
	}
	if e.Lemma != "" {
		tok.Lemma = e.Lemma
	}
}
