package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Laisky/errors/v2"

	"github.com/cognicore/alix/pkg/alix/internalerr"
	"github.com/cognicore/alix/pkg/alix/store"
)

// Store is an in-memory implementation of store.Store for tests.
type Store struct {
	mu        sync.RWMutex
	ids       *store.IDGenerator
	docs      map[string]store.Doc
	nameIndex map[string]string
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		ids:       store.NewIDGenerator(),
		docs:      make(map[string]store.Doc),
		nameIndex: make(map[string]string),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// PutDoc inserts or replaces a document, keyed by name.
func (s *Store) PutDoc(ctx context.Context, d store.Doc) (store.Doc, error) {
	if d.Name == "" {
		return store.Doc{}, errors.Wrap(internalerr.ErrInvalidInput, "document name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if d.AnalyzedAt.IsZero() {
		d.AnalyzedAt = time.Now().UTC()
	}
	if existingID, ok := s.nameIndex[d.Name]; ok {
		d.ID = existingID
	} else {
		if d.ID == "" {
			d.ID = s.ids.New(d.AnalyzedAt)
		}
		s.nameIndex[d.Name] = d.ID
	}

	s.docs[d.ID] = copyDoc(d)
	return copyDoc(d), nil
}

// GetDoc returns a document by ID, without its tokens.
func (s *Store) GetDoc(ctx context.Context, id string) (store.Doc, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[id]
	if !ok {
		return store.Doc{}, errors.Wrapf(internalerr.ErrNotFound, "document `%s`", id)
	}
	doc.Tokens = nil
	return doc, nil
}

// GetDocByName returns a document by name, without its tokens.
func (s *Store) GetDocByName(ctx context.Context, name string) (store.Doc, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if id, ok := s.nameIndex[name]; ok {
		if doc, exists := s.docs[id]; exists {
			doc.Tokens = nil
			return doc, true, nil
		}
	}
	return store.Doc{}, false, nil
}

// GetDocsByTerms returns documents that contain any of the provided terms,
// most recent first.
func (s *Store) GetDocsByTerms(ctx context.Context, terms []string, limit int) ([]store.Doc, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 20
	}

	termSet := make(map[string]struct{}, len(terms))
	for _, term := range store.UniqueTerms(terms) {
		termSet[term] = struct{}{}
	}

	var results []store.Doc
	for _, doc := range s.docs {
		if containsAny(doc.Tokens, termSet) {
			doc.Tokens = nil
			results = append(results, doc)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if !results[i].PublishedAt.Equal(results[j].PublishedAt) {
			return results[i].PublishedAt.After(results[j].PublishedAt)
		}
		return results[i].ID < results[j].ID
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// Tokens returns the tokens of a document in stream order.
func (s *Store) Tokens(ctx context.Context, id string) ([]store.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[id]
	if !ok {
		return nil, errors.Wrapf(internalerr.ErrNotFound, "document `%s`", id)
	}
	return append([]store.Token(nil), doc.Tokens...), nil
}

// TermFreq counts the occurrences of a term.
func (s *Store) TermFreq(ctx context.Context, term string) (store.TermCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tc := store.TermCount{Term: term}
	if term == "" {
		return tc, nil
	}
	for _, doc := range s.docs {
		var n int64
		for _, tok := range doc.Tokens {
			if tok.Term == term {
				n++
			}
		}
		if n > 0 {
			tc.Count += n
			tc.Docs++
		}
	}
	return tc, nil
}

// TopTerms returns the k most frequent terms.
func (s *Store) TopTerms(ctx context.Context, k int) ([]store.TermCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if k <= 0 {
		k = 10
	}

	counts := make(map[string]*store.TermCount)
	for _, doc := range s.docs {
		seen := make(map[string]bool)
		for _, tok := range doc.Tokens {
			if tok.Term == "" {
				continue
			}
			tc, ok := counts[tok.Term]
			if !ok {
				tc = &store.TermCount{Term: tok.Term}
				counts[tok.Term] = tc
			}
			tc.Count++
			if !seen[tok.Term] {
				seen[tok.Term] = true
				tc.Docs++
			}
		}
	}

	out := make([]store.TermCount, 0, len(counts))
	for _, tc := range counts {
		out = append(out, *tc)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Term < out[j].Term
	})
	if len(out) > k {
		out = out[:k]
	}
	return out, nil
}

func containsAny(tokens []store.Token, set map[string]struct{}) bool {
	for _, tok := range tokens {
		if _, ok := set[tok.Term]; ok {
			return true
		}
	}
	return false
}

func copyDoc(d store.Doc) store.Doc {
	d.Tokens = append([]store.Token(nil), d.Tokens...)
	return d
}
