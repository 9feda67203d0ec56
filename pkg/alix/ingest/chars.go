package ingest

import "unicode"

const (
	softHyphen = '\u00AD'
	joker      = '*'
)

// isTokenChar reports the characters words are made of.
func isTokenChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsMark(r) || unicode.IsDigit(r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isApostrophe(r rune) bool {
	return r == '\'' || r == '’' || r == 'ʼ'
}

func isHyphen(r rune) bool {
	return r == '-' || r == '‐' || r == '‑'
}

func isDecimalSep(r rune) bool {
	return r == '.' || r == ','
}

func isClausePunct(r rune) bool {
	switch r {
	case ',', ';', ':', '(', ')', '[', ']', '{', '}', '—', '–', '«', '»', '"', '“', '”', '„', '‘':
		return true
	}
	return false
}

func isSentencePunct(r rune) bool {
	switch r {
	case '.', '…', '?', '!':
		return true
	}
	return false
}

// startsTag reports whether the rune after '<' opens markup.
func startsTag(r rune) bool {
	return unicode.IsLetter(r) || r == '/' || r == '!' || r == '?'
}

// entities decoded by the tokenizer; others are kept literally.
var entities = []struct {
	name string
	r    rune
}{
	{"&gt;", '>'},
	{"&lt;", '<'},
	{"&amp;", '&'},
}
