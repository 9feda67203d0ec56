// Package alix analyzes French documents and stores their token streams.
package alix

import (
	"context"
	"io"

	"github.com/Laisky/errors/v2"
	"go.uber.org/zap"

	"github.com/cognicore/alix/internal/log"
	"github.com/cognicore/alix/pkg/alix/ingest"
	"github.com/cognicore/alix/pkg/alix/store"
	"github.com/cognicore/alix/pkg/alix/token"
)

// checkEvery is the number of tokens read between context checks.
const checkEvery = 256

// Alix is the analyzer facade
type Alix struct {
	store    store.Store
	pipeline *ingest.Pipeline
}

// Options configures an Alix instance
type Options struct {
	// Store receives analyzed documents; nil analyzes without storing.
	Store    store.Store
	Pipeline *ingest.Pipeline
}

// New creates an Alix instance with the given dependencies
func New(opts Options) *Alix {
	return &Alix{
		store:    opts.Store,
		pipeline: opts.Pipeline,
	}
}

// Close cleanly shuts down the Alix instance
func (a *Alix) Close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}

// Tokens analyzes text, checking ctx while the stream is read.
func (a *Alix) Tokens(ctx context.Context, text string) ([]token.Token, error) {
	s := a.pipeline.Analyze(text)
	var out []token.Token
	for {
		if len(out)%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		tok, err := s.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, tok)
	}
}

// Analyze processes a document and stores it when a store is configured.
// A document stored under the same name is replaced.
func (a *Alix) Analyze(ctx context.Context, d ingest.Doc) (store.Doc, error) {
	if err := d.Validate(); err != nil {
		return store.Doc{}, err
	}

	tokens, err := a.Tokens(ctx, d.Text())
	if err != nil {
		return store.Doc{}, errors.Wrapf(err, "analyze `%s`", d.Name)
	}

	doc := store.Doc{
		Name:        d.Name,
		Title:       d.Title,
		Source:      d.Source,
		PublishedAt: d.PublishedAt,
		Tokens:      store.FromTokens(tokens, ingest.IDTerm),
	}
	if a.store == nil {
		return doc, nil
	}

	stored, err := a.store.PutDoc(ctx, doc)
	if err != nil {
		return store.Doc{}, errors.Wrapf(err, "store `%s`", d.Name)
	}
	log.Logger.Debug("document analyzed",
		zap.String("name", stored.Name),
		zap.String("id", stored.ID),
		zap.Int("tokens", len(stored.Tokens)))
	return stored, nil
}

// Search returns the stored documents holding any term of the analyzed
// query.
func (a *Alix) Search(ctx context.Context, query string, limit int) ([]store.Doc, error) {
	if a.store == nil {
		return nil, errors.New("alix: no store configured")
	}
	tokens, err := a.Tokens(ctx, query)
	if err != nil {
		return nil, err
	}
	var terms []string
	for _, tok := range store.FromTokens(tokens, ingest.IDTerm) {
		terms = append(terms, tok.Term)
	}
	return a.store.GetDocsByTerms(ctx, store.UniqueTerms(terms), limit)
}
