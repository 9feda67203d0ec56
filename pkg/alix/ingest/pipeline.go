package ingest

import (
	"io"

	"github.com/cognicore/alix/pkg/alix/automaton"
	"github.com/cognicore/alix/pkg/alix/lexicon"
	"github.com/cognicore/alix/pkg/alix/token"
	"github.com/cognicore/alix/pkg/alix/vocab"
)

// Options select the stages of a pipeline.
type Options struct {
	// ExcludedTags names elements whose content is dropped; nil means
	// DefaultExcludedTags.
	ExcludedTags  []string
	KeepTags      bool
	Locutions     bool
	MWE           bool
	DropStopwords bool
	// NewTagger returns the part-of-speech classifier of one session; nil
	// disables tagging.
	NewTagger   func() Tagger
	MaxSentence int
}

// DefaultOptions enables locutions and expressions.
func DefaultOptions() Options {
	return Options{Locutions: true, MWE: true}
}

// Pipeline orchestrates the analysis of a text:
// tokenizer → markup → clitics → tagger → lemmatizer → locutions → ids →
// expressions → stop words.
//
// The dictionary, automaton and vocabulary are shared read-only by every
// session; each call to Analyze builds its own chain.
type Pipeline struct {
	lex   *lexicon.Store
	auto  *automaton.Automaton
	vocab *vocab.Vocab
	opts  Options
}

// NewPipeline creates a pipeline. auto and v may be nil, which disables the
// expression matcher.
func NewPipeline(lex *lexicon.Store, auto *automaton.Automaton, v *vocab.Vocab, opts Options) *Pipeline {
	return &Pipeline{lex: lex, auto: auto, vocab: v, opts: opts}
}

// ProcessedDoc represents a document after analysis.
type ProcessedDoc struct {
	Tokens []token.Token
}

// Texts returns the text of each token.
func (d ProcessedDoc) Texts() []string {
	return token.Texts(d.Tokens)
}

// Analyze returns the token stream of text.
func (p *Pipeline) Analyze(text string) token.Stream {
	return p.chain(NewTokenizer(text, p.lex))
}

// AnalyzeReader reads r to the end and returns its token stream.
func (p *Pipeline) AnalyzeReader(r io.Reader) (token.Stream, error) {
	t, err := NewTokenizerReader(r, p.lex)
	if err != nil {
		return nil, err
	}
	return p.chain(t), nil
}

func (p *Pipeline) chain(s token.Stream) token.Stream {
	s = NewTagFilter(s, TagOptions{Excluded: p.opts.ExcludedTags, KeepTags: p.opts.KeepTags})
	s = NewCliticSplitter(s, p.lex)
	if p.opts.NewTagger != nil {
		s = NewTaggerFilter(s, p.opts.NewTagger(), p.opts.MaxSentence)
	}
	s = NewLemmatizer(s, p.lex)
	if p.opts.Locutions {
		s = NewLocutionMatcher(s, p.lex)
	}
	if p.opts.MWE && p.auto != nil && p.vocab != nil {
		s = NewIdentifier(s, p.vocab)
		s = NewMWEMatcher(s, p.auto)
	}
	if p.opts.DropStopwords {
		s = NewStopFilter(s, p.lex.Stoplist())
	}
	return s
}

// Process runs a text through the pipeline and collects its tokens.
func (p *Pipeline) Process(text string) (ProcessedDoc, error) {
	tokens, err := token.Collect(p.Analyze(text))
	if err != nil {
		return ProcessedDoc{}, err
	}
	return ProcessedDoc{Tokens: tokens}, nil
}
