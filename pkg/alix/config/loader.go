package config

import (
	"github.com/Laisky/errors/v2"
	"go.uber.org/zap"

	"github.com/cognicore/alix/internal/log"
	"github.com/cognicore/alix/pkg/alix/automaton"
	"github.com/cognicore/alix/pkg/alix/ingest"
	"github.com/cognicore/alix/pkg/alix/lexicon"
	"github.com/cognicore/alix/pkg/alix/stoplist"
	"github.com/cognicore/alix/pkg/alix/tagset"
	"github.com/cognicore/alix/pkg/alix/vocab"
)

// Loader loads all configured resources and constructs components
type Loader struct {
	Config *Config
}

// Components holds the shared resources of an analyzer
type Components struct {
	Lexicon   *lexicon.Store
	Automaton *automaton.Automaton
	Vocab     *vocab.Vocab
	Options   ingest.Options
}

// Pipeline returns a pipeline over the components.
func (c *Components) Pipeline() *ingest.Pipeline {
	return ingest.NewPipeline(c.Lexicon, c.Automaton, c.Vocab, c.Options)
}

// Close releases the vocabulary.
func (c *Components) Close() error {
	if c.Vocab == nil {
		return nil
	}
	return c.Vocab.Close()
}

// Load reads every resource and returns initialized components. The
// dictionary store is frozen.
func (l *Loader) Load() (*Components, error) {
	cfg := l.Config
	if cfg == nil {
		cfg = Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	lex := lexicon.New()
	if cfg.Defaults {
		if err := lex.LoadDefaults(); err != nil {
			return nil, errors.Wrap(err, "load default dictionaries")
		}
	}
	for _, d := range cfg.Dictionaries {
		kind, err := lexicon.ParseKind(d.Kind)
		if err != nil {
			return nil, errors.Wrapf(err, "dictionary `%s`", d.Path)
		}
		if err := lex.LoadFile(d.Path, kind, d.Replace); err != nil {
			return nil, errors.Wrap(err, "load dictionary")
		}
	}

	if cfg.Stoplist != "" {
		sl, err := LoadStoplist(cfg.Stoplist)
		if err != nil {
			return nil, errors.Wrap(err, "load stoplist")
		}
		for _, term := range sl.Terms {
			if err := lex.AddStopword(term, stoplist.Reason{Source: cfg.Stoplist}); err != nil {
				return nil, err
			}
		}
	}
	lex.Freeze()

	comp := &Components{
		Lexicon: lex,
		Options: ingest.Options{
			ExcludedTags:  cfg.Pipeline.ExcludedTags,
			KeepTags:      cfg.Pipeline.KeepTags,
			Locutions:     cfg.Pipeline.Locutions,
			MWE:           cfg.Pipeline.MWE,
			DropStopwords: cfg.Pipeline.DropStopwords,
			MaxSentence:   cfg.Pipeline.MaxSentence,
		},
	}

	if cfg.Vocab != "" {
		v, err := vocab.Open(cfg.Vocab)
		if err != nil {
			return nil, errors.Wrap(err, "open vocabulary")
		}
		comp.Vocab = v
	} else {
		comp.Vocab = vocab.New()
	}

	if cfg.MWE != "" {
		dict, err := LoadDict(cfg.MWE)
		if err != nil {
			comp.Close()
			return nil, errors.Wrap(err, "load expression dictionary")
		}
		auto, err := automaton.Compile(Entries(dict), comp.Vocab)
		if err != nil {
			comp.Close()
			return nil, errors.Wrap(err, "compile expressions")
		}
		comp.Automaton = auto
	}

	st := lex.Stats()
	log.Logger.Info("analyzer loaded",
		zap.Int("words", st.Words),
		zap.Int("names", st.Names),
		zap.Int("locutions", st.Locutions),
		zap.Int("stopwords", st.Stopwords),
		zap.Int("vocabulary", comp.Vocab.Len()))
	return comp, nil
}

// Entries converts dictionary entries to automaton entries. The category
// is a tag label; an unknown label leaves the expression untagged.
func Entries(dict *Dict) []automaton.Entry {
	entries := make([]automaton.Entry, 0, len(dict.Entries))
	for _, e := range dict.Entries {
		tag, ok := tagset.Parse(e.Category)
		if !ok {
			log.Logger.Warn("unknown expression category",
				zap.String("canonical", e.Canonical), zap.String("category", e.Category))
		}
		entries = append(entries, automaton.Entry{
			Canonical: e.Canonical,
			Variants:  e.Variants,
			Tag:       tag,
		})
	}
	return entries
}
