package ingest

import (
	"github.com/Laisky/errors/v2"
	"go.uber.org/zap"

	"github.com/cognicore/alix/internal/log"
	"github.com/cognicore/alix/pkg/alix/tagset"
	"github.com/cognicore/alix/pkg/alix/token"
	"github.com/cognicore/alix/pkg/alix/window"
)

// DefaultMaxSentence bounds the batch sent to a Tagger.
const DefaultMaxSentence = 256

// ErrTaggerMismatch is returned when a Tagger does not return one label per
// word.
var ErrTaggerMismatch = errors.New("ingest: tagger returned a wrong number of labels")

// Tagger is a part-of-speech classifier. It returns one label per word, in
// order. A Tagger is used by one session at a time.
type Tagger interface {
	Tag(words []string) ([]string, error)
}

// TaggerFunc adapts a function to the Tagger interface.
type TaggerFunc func(words []string) ([]string, error)

func (f TaggerFunc) Tag(words []string) ([]string, error) {
	return f(words)
}

// TaggerFilter sends sentences to a Tagger and sets the tag of each word
// from its label. Breaks and markup are sent as "." placeholders and keep
// their own tag; an unknown label keeps the tag set upstream.
type TaggerFilter struct {
	in     token.Stream
	tagger Tagger
	max    int
	ready  *window.Window[token.Token]
	words  []string
	eof    error
}

// NewTaggerFilter wraps in. maxSentence <= 0 means DefaultMaxSentence.
func NewTaggerFilter(in token.Stream, tagger Tagger, maxSentence int) *TaggerFilter {
	if maxSentence <= 0 {
		maxSentence = DefaultMaxSentence
	}
	return &TaggerFilter{
		in:     in,
		tagger: tagger,
		max:    maxSentence,
		ready:  window.New[token.Token](maxSentence, window.Throw),
		words:  make([]string, 0, maxSentence),
	}
}

func (f *TaggerFilter) Next() (token.Token, error) {
	if f.ready.Empty() {
		if f.eof != nil {
			return token.Token{}, f.eof
		}
		if err := f.fill(); err != nil {
			return token.Token{}, err
		}
		if f.ready.Empty() {
			return token.Token{}, f.eof
		}
	}
	return f.ready.PopFront()
}

// fill reads one sentence and tags it.
func (f *TaggerFilter) fill() error {
	for !f.ready.Full() {
		tok, err := f.in.Next()
		if err != nil {
			f.eof = err
			break
		}
		if err := f.ready.PushBack(tok); err != nil {
			return err
		}
		if tok.Kind.IsBreak() {
			break
		}
	}
	if f.ready.Empty() {
		return nil
	}

	f.words = f.words[:0]
	for i := 0; i < f.ready.Len(); i++ {
		tok, _ := f.ready.At(i)
		if tok.Kind.IsBreak() || tok.Kind == token.KindTag {
			f.words = append(f.words, ".")
			continue
		}
		f.words = append(f.words, tok.Text)
	}

	labels, err := f.tagger.Tag(f.words)
	if err != nil {
		return errors.Wrap(err, "tag sentence")
	}
	if len(labels) != len(f.words) {
		return errors.Wrapf(ErrTaggerMismatch, "%d words, %d labels", len(f.words), len(labels))
	}

	for i, label := range labels {
		tok, _ := f.ready.At(i)
		if tok.Kind == token.KindTag || tok.Kind.IsBreak() {
			continue
		}
		tag, ok := tagset.Parse(label)
		if !ok {
			log.Logger.Debug("unknown tagger label", zap.String("label", label), zap.String("word", tok.Text))
			continue
		}
		tok.Tag = tag
	}
	return nil
}
