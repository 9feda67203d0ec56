package lexicon

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Laisky/errors/v2"
	"go.uber.org/zap"

	"github.com/cognicore/alix/internal/log"
	"github.com/cognicore/alix/pkg/alix/stoplist"
	"github.com/cognicore/alix/pkg/alix/tagset"
)

// Store is the dictionary resource shared by every analysis session:
// - Words: common words keyed by form and by "form_GROUP" for homographs
// - Names: proper names keyed by their capitalized form
// - Norms: spelling rewrites (archaic forms, ligatures)
// - Locutions: prefix tree of multi-word forms
// - Elisions / Suffixes: clitic tables used to split "qu'il" or "dit-il"
// - Abbreviations and stop words
//
// A Store is filled by Load*/Add* calls, then frozen. After Freeze it is
// read-only and safe for concurrent readers.
type Store struct {
	words     map[string]Entry
	names     map[string]Entry
	norms     map[string]string
	locutions map[string]Flags
	elisions  map[string]string
	suffixes  map[string]Suffix
	abbrevs   map[string]struct{}
	stops     *stoplist.Manager
	loaded    map[string]struct{}
	frozen    bool
}

// Entry is a lexical entry.
type Entry struct {
	Graph string
	Tag   tagset.Tag
	Lemma string
}

// Suffix is the replacement of an enclitic suffix such as "-ce". A Silent
// suffix is dropped from the stream.
type Suffix struct {
	Value  string
	Silent bool
}

// Flags marks a node of the locution tree.
type Flags uint8

const (
	// Branch: longer locutions start with this key.
	Branch Flags = 1 << iota
	// Leaf: the key is a complete locution.
	Leaf
)

// KeySep separates a form from the group label in composite keys.
const KeySep = "_"

// ErrFrozen is returned when loading into a frozen store.
var ErrFrozen = errors.New("lexicon: store is frozen")

// New creates an empty store.
func New() *Store {
	return &Store{
		words:     make(map[string]Entry),
		names:     make(map[string]Entry),
		norms:     make(map[string]string),
		locutions: make(map[string]Flags),
		elisions:  make(map[string]string),
		suffixes:  make(map[string]Suffix),
		abbrevs:   make(map[string]struct{}),
		stops:     stoplist.NewManager(nil),
		loaded:    make(map[string]struct{}),
	}
}

// Freeze ends the build phase. Normalization chains (a→b, b→c) are
// collapsed so that normalizing twice gives the same result as once.
func (s *Store) Freeze() {
	if s.frozen {
		return
	}
	s.resolveNorms()
	s.frozen = true
}

// Frozen reports whether the store is read-only.
func (s *Store) Frozen() bool { return s.frozen }

func (s *Store) resolveNorms() {
	for from, to := range s.norms {
		seen := map[string]bool{from: true}
		for {
			next, ok := s.norms[to]
			if !ok || next == to {
				break
			}
			if seen[to] {
				log.Logger.Warn("normalization cycle, rule dropped",
					zap.String("from", from), zap.String("to", to))
				delete(s.norms, from)
				to = ""
				break
			}
			seen[to] = true
			to = next
		}
		if to != "" {
			s.norms[from] = to
		}
	}
}

func key(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "’", "'"))
}

// CompositeKey returns the key of a form disambiguated by the group of tag.
func CompositeKey(form string, tag tagset.Tag) string {
	return form + KeySep + tag.GroupLabel()
}

// AddWord registers a common word. The first definition wins unless replace
// is set.
func (s *Store) AddWord(e Entry, replace bool) error {
	if s.frozen {
		return ErrFrozen
	}
	e.Graph = nfc(key(e.Graph))
	if e.Graph == "" {
		return nil
	}
	put(s.words, e.Graph, e, replace)
	if e.Tag != tagset.Unknown {
		put(s.words, CompositeKey(e.Graph, e.Tag), e, replace)
	}
	return nil
}

// AddName registers a proper name.
func (s *Store) AddName(e Entry, replace bool) error {
	if s.frozen {
		return ErrFrozen
	}
	e.Graph = nfc(key(e.Graph))
	if e.Graph == "" {
		return nil
	}
	if e.Tag == tagset.Unknown {
		e.Tag = tagset.Name
	}
	put(s.names, e.Graph, e, replace)
	return nil
}

func put(m map[string]Entry, k string, e Entry, replace bool) {
	if _, ok := m[k]; ok && !replace {
		return
	}
	m[k] = e
}

// AddNorm registers a spelling rewrite.
func (s *Store) AddNorm(from, to string, replace bool) error {
	if s.frozen {
		return ErrFrozen
	}
	from, to = nfc(key(from)), nfc(key(to))
	if from == "" || to == "" || from == to {
		return nil
	}
	if _, ok := s.norms[from]; ok && !replace {
		return nil
	}
	s.norms[from] = to
	return nil
}

// AddElision registers an elided prefix such as "qu'" → "que".
func (s *Store) AddElision(form, value string, replace bool) error {
	if s.frozen {
		return ErrFrozen
	}
	form = strings.ToLower(key(form))
	value = key(value)
	if form == "" {
		return nil
	}
	if value == "" {
		value = form
	}
	if _, ok := s.elisions[form]; ok && !replace {
		return nil
	}
	s.elisions[form] = value
	return nil
}

// AddSuffix registers an enclitic suffix such as "-ce" → "ce". An empty
// value makes the suffix silent.
func (s *Store) AddSuffix(form, value string, replace bool) error {
	if s.frozen {
		return ErrFrozen
	}
	form = strings.ToLower(key(form))
	if form == "" {
		return nil
	}
	if !strings.HasPrefix(form, "-") {
		form = "-" + form
	}
	if _, ok := s.suffixes[form]; ok && !replace {
		return nil
	}
	value = key(value)
	s.suffixes[form] = Suffix{Value: value, Silent: value == ""}
	return nil
}

// AddAbbreviation registers a form ending with a dot that must keep it.
func (s *Store) AddAbbreviation(form string) error {
	if s.frozen {
		return ErrFrozen
	}
	if form = key(form); form != "" {
		s.abbrevs[form] = struct{}{}
	}
	return nil
}

// AddStopword registers a stop word.
func (s *Store) AddStopword(form string, reason stoplist.Reason) error {
	if s.frozen {
		return ErrFrozen
	}
	s.stops.Add(key(form), reason)
	return nil
}

// Word looks up a common word by its exact form.
func (s *Store) Word(form string) (Entry, bool) {
	e, ok := s.words[form]
	return e, ok
}

// WordTagged looks up form with the composite key first, then the plain
// form.
func (s *Store) WordTagged(form string, tag tagset.Tag) (Entry, bool) {
	if tag != tagset.Unknown {
		if e, ok := s.words[CompositeKey(form, tag)]; ok {
			return e, true
		}
	}
	return s.Word(form)
}

// Name looks up a proper name.
func (s *Store) Name(form string) (Entry, bool) {
	e, ok := s.names[form]
	return e, ok
}

// Elision returns the replacement of an elided prefix, matched exactly then
// lowercased.
func (s *Store) Elision(form string) (string, bool) {
	if v, ok := s.elisions[form]; ok {
		return v, true
	}
	v, ok := s.elisions[strings.ToLower(form)]
	return v, ok
}

// Suffix returns the replacement of an enclitic suffix (with its hyphen).
func (s *Store) Suffix(form string) (Suffix, bool) {
	if v, ok := s.suffixes[form]; ok {
		return v, true
	}
	v, ok := s.suffixes[strings.ToLower(form)]
	return v, ok
}

// IsAbbreviation reports a known abbreviation, matched exactly then
// lowercased.
func (s *Store) IsAbbreviation(form string) bool {
	if _, ok := s.abbrevs[form]; ok {
		return true
	}
	_, ok := s.abbrevs[strings.ToLower(form)]
	return ok
}

// IsStop reports a stop word.
func (s *Store) IsStop(form string) bool {
	return s.stops.IsStop(form)
}

// Stoplist exposes the stop words.
func (s *Store) Stoplist() *stoplist.Manager { return s.stops }

// Stats holds the size of each table.
type Stats struct {
	Words         int
	Names         int
	Norms         int
	Locutions     int
	Elisions      int
	Suffixes      int
	Abbreviations int
	Stopwords     int
}

// Stats returns statistics about the store contents.
func (s *Store) Stats() Stats {
	leaves := 0
	for _, f := range s.locutions {
		if f&Leaf != 0 {
			leaves++
		}
	}
	return Stats{
		Words:         len(s.words),
		Names:         len(s.names),
		Norms:         len(s.norms),
		Locutions:     leaves,
		Elisions:      len(s.elisions),
		Suffixes:      len(s.suffixes),
		Abbreviations: len(s.abbrevs),
		Stopwords:     s.stops.Len(),
	}
}

// Capitalize returns s with its first letter uppercased and the rest
// lowercased.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
