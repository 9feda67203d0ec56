package lexicon

import (
	"strings"

	"github.com/cognicore/alix/pkg/alix/tagset"
)

// Rewrite replaces the ending From of a locution key by To.
type Rewrite struct {
	From string
	To   string
}

// Rewrites are tried, in order, on the tail of a locution key that has no
// node in the tree. Locution resources are canonicalized with the same
// rules so that "chemin de fer d'intérêt local" is keyed
// "chemin de fer de intérêt local".
var Rewrites = []Rewrite{
	{" d'", " de"},
	{" du", " de"},
	{" au", " à"},
	{" aux", " à"},
	{"qu'", "que"},
}

// AppendPart appends a word to a locution key: a space separates parts,
// except after an apostrophe.
func AppendPart(b *strings.Builder, part string) {
	if b.Len() > 0 && !strings.HasSuffix(b.String(), "'") {
		b.WriteByte(' ')
	}
	b.WriteString(part)
}

// splitParts cuts a locution into the parts a token stream would produce:
// words separated by spaces, elided prefixes cut after their apostrophe.
func splitParts(graph string) []string {
	var parts []string
	for _, field := range strings.Fields(graph) {
		for {
			i := strings.IndexByte(field, '\'')
			if i < 0 || i == len(field)-1 {
				parts = append(parts, field)
				break
			}
			parts = append(parts, field[:i+1])
			field = field[i+1:]
		}
	}
	return parts
}

// RewriteTail applies the first matching rewrite to the end of k.
func RewriteTail(k string) (string, bool) {
	for _, rw := range Rewrites {
		if strings.HasSuffix(k, rw.From) {
			return k[:len(k)-len(rw.From)] + rw.To, true
		}
	}
	return k, false
}

// LocutionKeys returns the canonical prefixes of a locution, the last one
// being the full key.
func LocutionKeys(graph string) []string {
	parts := splitParts(nfc(key(graph)))
	keys := make([]string, 0, len(parts))
	var b strings.Builder
	for _, p := range parts {
		AppendPart(&b, p)
		k, _ := RewriteTail(b.String())
		if k != b.String() {
			b.Reset()
			b.WriteString(k)
		}
		keys = append(keys, k)
	}
	return keys
}

// LocutionKey returns the canonical key of a locution.
func LocutionKey(graph string) string {
	keys := LocutionKeys(graph)
	if len(keys) == 0 {
		return ""
	}
	return keys[len(keys)-1]
}

// AddLocution registers a multi-word form in the prefix tree and its entry
// in the name or word dictionary, under its canonical key.
func (s *Store) AddLocution(e Entry, replace bool) error {
	if s.frozen {
		return ErrFrozen
	}
	e.Graph = nfc(key(e.Graph))
	keys := LocutionKeys(e.Graph)
	if len(keys) == 0 {
		return nil
	}
	for _, k := range keys[:len(keys)-1] {
		s.locutions[k] |= Branch
	}
	full := keys[len(keys)-1]
	s.locutions[full] |= Leaf

	if e.Tag.IsName() {
		put(s.names, full, e, replace)
		return nil
	}
	put(s.words, full, e, replace)
	return nil
}

// Locution returns the flags of a key, 0 when the key is not in the tree.
func (s *Store) Locution(k string) Flags {
	return s.locutions[k]
}

// LocutionEntry returns the entry registered for a complete locution key.
func (s *Store) LocutionEntry(k string) (Entry, bool) {
	if e, ok := s.words[k]; ok {
		return e, true
	}
	if e, ok := s.names[k]; ok {
		return e, true
	}
	return Entry{Graph: k, Tag: tagset.Unknown}, false
}
