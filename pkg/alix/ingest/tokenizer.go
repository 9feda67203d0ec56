package ingest

import (
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Laisky/errors/v2"

	"github.com/cognicore/alix/pkg/alix/lexicon"
	"github.com/cognicore/alix/pkg/alix/tagset"
	"github.com/cognicore/alix/pkg/alix/token"
)

const (
	// MaxTokenLen bounds a word, number or punctuation run, in runes.
	MaxTokenLen = 256
	// MaxTagLen bounds a markup token, in runes.
	MaxTagLen = 4096

	// ParagraphMark is the text of paragraph break tokens.
	ParagraphMark = "¶"
	// SectionMark is the text of section break tokens.
	SectionMark = "§"
)

// Tokenizer cuts text into words, numbers, punctuation and markup. Offsets
// are rune offsets in the source. The whole source is held in memory.
type Tokenizer struct {
	lex *lexicon.Store
	src []rune
	pos int

	emitted bool
	last    token.Kind
	buf     strings.Builder
	offs    []int // source offset of each rune in buf
}

// NewTokenizer returns a tokenizer over text. lex provides the abbreviation
// set; nil disables abbreviations.
func NewTokenizer(text string, lex *lexicon.Store) *Tokenizer {
	return &Tokenizer{lex: lex, src: []rune(text)}
}

// NewTokenizerReader reads r to the end and returns a tokenizer over its
// content.
func NewTokenizerReader(r io.Reader, lex *lexicon.Store) (*Tokenizer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read source")
	}
	return NewTokenizer(string(data), lex), nil
}

func (t *Tokenizer) peek(i int) rune {
	if i < len(t.src) {
		return t.src[i]
	}
	return 0
}

// put appends r, read at source offset at, to the pending word.
func (t *Tokenizer) put(r rune, at int) {
	t.buf.WriteRune(r)
	t.offs = append(t.offs, at)
}

func (t *Tokenizer) reset() {
	t.buf.Reset()
	t.offs = t.offs[:0]
}

func (t *Tokenizer) emit(tok token.Token) (token.Token, error) {
	t.emitted = true
	t.last = tok.Kind
	return tok, nil
}

// Next returns the next token, io.EOF at the end of the source.
func (t *Tokenizer) Next() (token.Token, error) {
	for t.pos < len(t.src) {
		r := t.src[t.pos]
		switch {
		case unicode.IsSpace(r):
			if tok, ok := t.space(); ok {
				return t.emit(tok)
			}
		case r == '<':
			return t.emit(t.markup())
		case isClausePunct(r):
			return t.emit(t.single(token.KindPunClause, tagset.PunClause))
		case isSentencePunct(r):
			return t.emit(t.sentence())
		case isHyphen(r):
			next := t.peek(t.pos + 1)
			switch {
			case isDigit(next):
				return t.emit(t.number())
			case unicode.IsLetter(next):
				return t.emit(t.word())
			}
			return t.emit(t.single(token.KindPunClause, tagset.PunClause))
		case isDigit(r):
			return t.emit(t.number())
		case isTokenChar(r) || r == '&':
			return t.emit(t.word())
		case isApostrophe(r):
			// an opening quote
			return t.emit(t.single(token.KindPunClause, tagset.PunClause))
		case r == softHyphen || r == joker:
			t.pos++
		default:
			return t.emit(t.single(token.KindUnknown, tagset.Unknown))
		}
	}
	return token.Token{}, io.EOF
}

// space skips a whitespace run. A blank line between two tokens yields a
// paragraph break.
func (t *Tokenizer) space() (token.Token, bool) {
	newlines := 0
	for t.pos < len(t.src) && unicode.IsSpace(t.src[t.pos]) {
		if t.src[t.pos] == '\n' {
			newlines++
		}
		t.pos++
	}
	if newlines < 2 || !t.emitted || t.pos == len(t.src) || t.last == token.KindPunParagraph || t.last == token.KindPunSection {
		return token.Token{}, false
	}
	tok := token.New(ParagraphMark, t.pos, t.pos, token.KindPunParagraph)
	tok.Tag = tagset.PunPara
	return tok, true
}

func (t *Tokenizer) single(kind token.Kind, tag tagset.Tag) token.Token {
	start := t.pos
	t.pos++
	tok := token.New(string(t.src[start:t.pos]), start, t.pos, kind)
	tok.Tag = tag
	return tok
}

// sentence accumulates a run of terminal punctuation ("...", "?!").
func (t *Tokenizer) sentence() token.Token {
	start := t.pos
	for t.pos < len(t.src) && isSentencePunct(t.src[t.pos]) && t.pos-start < MaxTokenLen {
		t.pos++
	}
	tok := token.New(string(t.src[start:t.pos]), start, t.pos, token.KindPunSentence)
	tok.Tag = tagset.PunSent
	return tok
}

// markup reads a tag up to its closing '>', or a comment up to "-->". A '<'
// that does not open markup is a token of its own.
func (t *Tokenizer) markup() token.Token {
	start := t.pos
	if !startsTag(t.peek(t.pos + 1)) {
		return t.single(token.KindUnknown, tagset.Unknown)
	}
	end := ">"
	if strings.HasPrefix(string(t.src[t.pos:min(t.pos+4, len(t.src))]), "<!--") {
		end = "-->"
	}
	t.pos++
	for t.pos < len(t.src) && t.pos-start < MaxTagLen {
		t.pos++
		if t.src[t.pos-1] == '>' && strings.HasSuffix(string(t.src[max(start, t.pos-len(end)):t.pos]), end) {
			break
		}
	}
	tok := token.New(string(t.src[start:t.pos]), start, t.pos, token.KindTag)
	tok.Tag = tagset.Mark
	return tok
}

// number reads digits with at most one decimal separator. A separator not
// followed by a digit is left to the next token. Letters glued to the digits
// ("3e", "mp3") make the token a word.
func (t *Tokenizer) number() token.Token {
	start := t.pos
	t.reset()
	if isHyphen(t.src[t.pos]) {
		t.put('-', t.pos)
		t.pos++
	}
	sep := false
	for t.pos < len(t.src) && t.pos-start < MaxTokenLen {
		r := t.src[t.pos]
		if isDigit(r) {
			t.put(r, t.pos)
			t.pos++
			continue
		}
		if isDecimalSep(r) && !sep && isDigit(t.peek(t.pos+1)) {
			sep = true
			t.put(r, t.pos)
			t.pos++
			continue
		}
		if unicode.IsLetter(r) && !sep {
			return t.wordFrom(start)
		}
		break
	}
	tok := token.New(t.buf.String(), start, t.pos, token.KindNumber)
	tok.Tag = tagset.Num
	return tok
}

// word reads a word from the cursor.
func (t *Tokenizer) word() token.Token {
	t.reset()
	return t.wordFrom(t.pos)
}

// wordFrom continues the word started at start, whose first runes are
// already in t.buf.
func (t *Tokenizer) wordFrom(start int) token.Token {
	segment := 0 // runes since the last dot
	for t.pos < len(t.src) && t.pos-start < MaxTokenLen {
		r := t.src[t.pos]
		next := t.peek(t.pos + 1)
		switch {
		case isTokenChar(r):
			t.put(r, t.pos)
			segment++
		case r == '&':
			if n, dec := entityAt(t.src[t.pos:]); n > 0 {
				t.put(dec, t.pos)
				t.pos += n
				segment++
				continue
			}
			t.put(r, t.pos)
		case isApostrophe(r) && t.buf.Len() > 0:
			t.put('\'', t.pos)
			if !isTokenChar(next) {
				t.pos++
				return t.finishWord(start)
			}
		case isHyphen(r) && (t.buf.Len() > 0 || t.pos == start) && isTokenChar(next):
			t.put('-', t.pos)
		case r == '.' && t.buf.Len() > 0:
			t.put('.', t.pos)
			t.pos++
			// initials such as "J.-C." or "U.S." continue after the dot
			if segment <= 2 && (unicode.IsLetter(next) || (isHyphen(next) && unicode.IsLetter(t.peek(t.pos+1)))) {
				segment = 0
				continue
			}
			for t.pos < len(t.src) && t.src[t.pos] == '.' && t.pos-start < MaxTokenLen {
				t.put('.', t.pos)
				t.pos++
			}
			return t.finishWord(start)
		case r == softHyphen:
		case r == joker && t.buf.Len() > 0 && isTokenChar(next):
			t.put(r, t.pos)
		default:
			return t.finishWord(start)
		}
		t.pos++
	}
	return t.finishWord(start)
}

// finishWord strips the trailing dots of a word that is not an
// abbreviation and rewinds the cursor so that they are read again.
func (t *Tokenizer) finishWord(start int) token.Token {
	text := t.buf.String()
	if strings.HasSuffix(text, ".") {
		trimmed := strings.TrimRight(text, ".")
		dots := len(text) - len(trimmed)
		switch {
		case t.isAbbreviation(text):
		case dots > 1 && t.isAbbreviation(trimmed+"."):
			text = trimmed + "."
			t.pos -= dots - 1
		case len([]rune(text)) > 2 && trimmed != "":
			text = trimmed
			t.pos -= dots
		}
	}
	tok := token.New(text, start, t.pos, token.KindWord)
	// decoded entities and soft hyphens make the text shorter than its span
	if n := utf8.RuneCountInString(text); n != t.pos-start {
		tok.Offsets = append([]int(nil), t.offs[:n]...)
	}
	return tok
}

func (t *Tokenizer) isAbbreviation(form string) bool {
	return t.lex != nil && t.lex.IsAbbreviation(form)
}

// entityAt returns the length of the entity at the start of src and the
// rune it stands for, 0 when src does not start with a decoded entity.
func entityAt(src []rune) (int, rune) {
	for _, e := range entities {
		n := len(e.name)
		if len(src) >= n && string(src[:n]) == e.name {
			return n, e.r
		}
	}
	return 0, 0
}
