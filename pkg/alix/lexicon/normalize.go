package lexicon

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

func nfc(s string) string {
	return norm.NFC.String(s)
}

// Normalize returns the modern spelling of form: NFC composition, then the
// normalization table. A capitalized form missing from the table is retried
// lowercased and the result capitalized back ("Estoit" → "Était").
func (s *Store) Normalize(form string) string {
	form = nfc(form)
	if to, ok := s.norms[form]; ok {
		return to
	}
	r, size := utf8.DecodeRuneInString(form)
	if !unicode.IsUpper(r) {
		return form
	}
	lower := string(unicode.ToLower(r)) + form[size:]
	if to, ok := s.norms[lower]; ok {
		tr, tsize := utf8.DecodeRuneInString(to)
		return string(unicode.ToUpper(tr)) + to[tsize:]
	}
	return form
}

// HasNorm reports whether form has a rewrite rule.
func (s *Store) HasNorm(form string) bool {
	_, ok := s.norms[strings.TrimSpace(form)]
	return ok
}
