package lexicon

import (
	"embed"
	"sync"

	"github.com/Laisky/errors/v2"
)

//go:embed resources/*.csv
var resources embed.FS

// defaultResources are loaded in precedence order: with first-definition-wins
// an earlier file shadows a later one.
var defaultResources = []struct {
	file string
	kind Kind
}{
	{"elisions.csv", Elisions},
	{"suffixes.csv", Suffixes},
	{"abbreviations.csv", Abbreviations},
	{"stopwords.csv", Stopwords},
	{"norms.csv", Norms},
	{"locutions.csv", Locutions},
	{"words.csv", Words},
	{"names.csv", Names},
}

// LoadDefaults loads the embedded French resources into s.
func (s *Store) LoadDefaults() error {
	for _, res := range defaultResources {
		f, err := resources.Open("resources/" + res.file)
		if err != nil {
			return errors.Wrapf(err, "open embedded dictionary `%s`", res.file)
		}
		err = s.Load(res.file, f, res.kind, false)
		f.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// Default returns a new, unfrozen store holding the embedded resources.
func Default() (*Store, error) {
	s := New()
	if err := s.LoadDefaults(); err != nil {
		return nil, err
	}
	return s, nil
}

var (
	sharedOnce  sync.Once
	sharedStore *Store
)

// Shared returns the process-wide store built from the embedded resources.
// It is built once, on first use, and frozen. Shared panics if the embedded
// resources cannot be read.
func Shared() *Store {
	sharedOnce.Do(func() {
		s, err := Default()
		if err != nil {
			panic(errors.Wrap(err, "build shared dictionary"))
		}
		s.Freeze()
		sharedStore = s
	})
	return sharedStore
}
