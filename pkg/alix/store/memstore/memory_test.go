package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cognicore/alix/pkg/alix/internalerr"
	"github.com/cognicore/alix/pkg/alix/store"
)

func terms(ts ...string) []store.Token {
	out := make([]store.Token, len(ts))
	for i, term := range ts {
		out[i] = store.Token{Position: i, PosLen: 1, Kind: "word", Text: term, Term: term}
	}
	return out
}

func TestPutAndGetDoc(t *testing.T) {
	ctx := context.Background()
	st := New()

	doc, err := st.PutDoc(ctx, store.Doc{
		Name:   "a.txt",
		Title:  "Premier",
		Tokens: terms("chat", "noir", "chat"),
	})
	if err != nil {
		t.Fatalf("PutDoc: %v", err)
	}
	if !store.ValidID(doc.ID) {
		t.Errorf("id = %q, want a ULID", doc.ID)
	}
	if doc.AnalyzedAt.IsZero() {
		t.Error("AnalyzedAt should be set")
	}

	got, err := st.GetDoc(ctx, doc.ID)
	if err != nil {
		t.Fatalf("GetDoc: %v", err)
	}
	if got.Name != "a.txt" || got.Title != "Premier" || got.Tokens != nil {
		t.Errorf("GetDoc = %+v", got)
	}

	byName, ok, err := st.GetDocByName(ctx, "a.txt")
	if err != nil || !ok || byName.ID != doc.ID {
		t.Errorf("GetDocByName = %+v, %v, %v", byName, ok, err)
	}

	tokens, err := st.Tokens(ctx, doc.ID)
	if err != nil || len(tokens) != 3 {
		t.Errorf("Tokens = %v, %v", tokens, err)
	}
}

func TestPutDocReplacesByName(t *testing.T) {
	ctx := context.Background()
	st := New()

	first, _ := st.PutDoc(ctx, store.Doc{Name: "a.txt", Tokens: terms("chat")})
	second, err := st.PutDoc(ctx, store.Doc{Name: "a.txt", Title: "v2", Tokens: terms("chien", "chien")})
	if err != nil {
		t.Fatal(err)
	}
	if second.ID != first.ID {
		t.Errorf("id changed on replace: %q -> %q", first.ID, second.ID)
	}

	tc, _ := st.TermFreq(ctx, "chat")
	if tc.Count != 0 {
		t.Errorf("old tokens should be replaced, chat count = %d", tc.Count)
	}
	tc, _ = st.TermFreq(ctx, "chien")
	if tc.Count != 2 || tc.Docs != 1 {
		t.Errorf("chien = %+v", tc)
	}
}

func TestPutDocRequiresName(t *testing.T) {
	_, err := New().PutDoc(context.Background(), store.Doc{})
	if !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestGetDocNotFound(t *testing.T) {
	st := New()
	ctx := context.Background()
	if _, err := st.GetDoc(ctx, "missing"); !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("GetDoc err = %v", err)
	}
	if _, err := st.Tokens(ctx, "missing"); !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("Tokens err = %v", err)
	}
	if _, ok, err := st.GetDocByName(ctx, "missing"); ok || err != nil {
		t.Errorf("GetDocByName = %v, %v", ok, err)
	}
}

func TestTermCounts(t *testing.T) {
	ctx := context.Background()
	st := New()
	st.PutDoc(ctx, store.Doc{Name: "a", Tokens: terms("chat", "noir", "chat")})
	st.PutDoc(ctx, store.Doc{Name: "b", Tokens: terms("chat", "blanc")})

	tc, err := st.TermFreq(ctx, "chat")
	if err != nil {
		t.Fatal(err)
	}
	if tc.Count != 3 || tc.Docs != 2 {
		t.Errorf("TermFreq = %+v, want 3 in 2 docs", tc)
	}

	top, err := st.TopTerms(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 2 || top[0].Term != "chat" || top[1].Term != "blanc" {
		t.Errorf("TopTerms = %+v", top)
	}
}

func TestGetDocsByTerms(t *testing.T) {
	ctx := context.Background()
	st := New()
	now := time.Now()
	st.PutDoc(ctx, store.Doc{Name: "old", PublishedAt: now.Add(-time.Hour), Tokens: terms("chat")})
	st.PutDoc(ctx, store.Doc{Name: "new", PublishedAt: now, Tokens: terms("chat", "chien")})
	st.PutDoc(ctx, store.Doc{Name: "other", PublishedAt: now, Tokens: terms("oiseau")})

	docs, err := st.GetDocsByTerms(ctx, []string{"chat", "chat", ""}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 2 || docs[0].Name != "new" || docs[1].Name != "old" {
		t.Errorf("GetDocsByTerms = %+v", docs)
	}

	docs, _ = st.GetDocsByTerms(ctx, []string{"chat"}, 1)
	if len(docs) != 1 {
		t.Errorf("limit not applied: %d docs", len(docs))
	}
}
