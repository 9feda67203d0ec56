package store

import (
	"context"
	"crypto/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/alix/pkg/alix/token"
)

// Store is the sink of analyzed documents
type Store interface {
	Close() error

	// Docs
	PutDoc(ctx context.Context, d Doc) (Doc, error)
	GetDoc(ctx context.Context, id string) (Doc, error)
	GetDocByName(ctx context.Context, name string) (Doc, bool, error)
	GetDocsByTerms(ctx context.Context, terms []string, limit int) ([]Doc, error)

	// Tokens & Counts
	Tokens(ctx context.Context, id string) ([]Token, error)
	TermFreq(ctx context.Context, term string) (TermCount, error)
	TopTerms(ctx context.Context, k int) ([]TermCount, error)
}

// Doc represents a stored document. Tokens are only filled by PutDoc
// callers and Tokens; GetDoc leaves them empty.
type Doc struct {
	ID          string
	Name        string
	Title       string
	Source      string
	PublishedAt time.Time
	AnalyzedAt  time.Time
	Tokens      []Token
}

// Token is one stored token of a document. Position is the absolute
// position, the sum of the increments up to the token.
type Token struct {
	Position int
	PosLen   int
	Start    int
	End      int
	Kind     string
	Text     string
	Orth     string
	Lemma    string
	Tag      string
	Term     string
	TermID   int32
}

// TermCount counts the occurrences of a term and the documents holding it
type TermCount struct {
	Term  string
	Count int64
	Docs  int64
}

// FromTokens converts an analyzed stream to stored tokens. term returns the
// counted term of a token; tokens without a term are stored but not
// counted.
func FromTokens(tokens []token.Token, term func(token.Token) string) []Token {
	out := make([]Token, 0, len(tokens))
	pos := -1
	for _, tok := range tokens {
		pos += tok.PosInc
		st := Token{
			Position: pos,
			PosLen:   tok.PosLen,
			Start:    tok.Start,
			End:      tok.End,
			Kind:     tok.Kind.String(),
			Text:     tok.Text,
			Orth:     tok.Orth,
			Lemma:    tok.Lemma,
			Tag:      tok.Tag.Label(),
			TermID:   tok.ID,
		}
		if term != nil && (tok.Kind == token.KindWord || tok.Kind == token.KindNumber) {
			st.Term = term(tok)
		}
		out = append(out, st)
	}
	return out
}

// IDGenerator returns monotonic ULIDs.
type IDGenerator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// NewIDGenerator creates a generator seeded from crypto/rand.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{entropy: ulid.Monotonic(rand.Reader, 0)}
}

// New returns an id for time t.
func (g *IDGenerator) New(t time.Time) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), g.entropy).String()
}

// ValidID reports whether id is a well-formed ULID.
func ValidID(id string) bool {
	_, err := ulid.ParseStrict(strings.ToUpper(id))
	return err == nil
}

// UniqueTerms returns the distinct non-empty terms in order of appearance.
func UniqueTerms(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
