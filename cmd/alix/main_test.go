package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
)

const fixtures = "../../testdata/fr"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestAnalyzeTSV(t *testing.T) {
	out, err := run(t, "analyze", "-c", filepath.Join(fixtures, "alix.yaml"), filepath.Join(fixtures, "docs.jsonl"))
	if err != nil {
		t.Fatalf("analyze: %v\n%s", err, out)
	}
	if !strings.Contains(out, "# https://example.fr/theatre\n") {
		t.Errorf("missing document header:\n%s", out)
	}
	// the expression spans three positions
	if !strings.Contains(out, "\t3\t") || !strings.Contains(out, "mise en scène") {
		t.Errorf("expression not merged:\n%s", out)
	}
	if strings.Contains(out, "ignoré") {
		t.Errorf("excluded zone was analyzed:\n%s", out)
	}
}

func TestAnalyzeJSON(t *testing.T) {
	out, err := run(t, "analyze", "--format", "json", filepath.Join(fixtures, "docs.jsonl"))
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected one JSON document per line, got %d", len(lines))
	}
	var doc jsonDoc
	if err := json.Unmarshal([]byte(lines[1]), &doc); err != nil {
		t.Fatal(err)
	}
	if doc.Name != "https://example.fr/rail" || doc.Title != "Rail" {
		t.Errorf("doc = %s %s", doc.Name, doc.Title)
	}
	found := false
	for _, tok := range doc.Tokens {
		if tok.Orth == "chemin de fer d'intérêt local" && tok.Tag == "NOUN" {
			found = true
		}
	}
	if !found {
		t.Errorf("locution missing from %+v", doc.Tokens)
	}
}

func TestAnalyzeBadFormat(t *testing.T) {
	if _, err := run(t, "analyze", "--format", "xml", filepath.Join(fixtures, "docs.jsonl")); err == nil {
		t.Error("unknown format should fail")
	}
}

func TestAnalyzeStoreAndSearch(t *testing.T) {
	db := filepath.Join(t.TempDir(), "alix.db")
	cfg := filepath.Join(fixtures, "alix.yaml")

	out, err := run(t, "analyze", "-c", cfg, "--db", db, filepath.Join(fixtures, "docs.jsonl"))
	if err != nil {
		t.Fatalf("analyze: %v\n%s", err, out)
	}
	if n := strings.Count(out, "\n"); n != 2 {
		t.Errorf("expected 2 stored documents, got:\n%s", out)
	}

	out, err = run(t, "search", "-c", cfg, "--db", db, "Paris")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !strings.Contains(out, "https://example.fr/rail") || strings.Contains(out, "theatre") {
		t.Errorf("search output:\n%s", out)
	}

	if _, err := run(t, "search", "Paris"); err == nil {
		t.Error("search without --db should fail")
	}
}

func TestMWE(t *testing.T) {
	out, err := run(t, "mwe", "-c", filepath.Join(fixtures, "alix.yaml"))
	if err != nil {
		t.Fatalf("mwe: %v", err)
	}
	if !strings.Contains(out, "sequences\t5\n") || !strings.Contains(out, "max length\t3\n") {
		t.Errorf("mwe output:\n%s", out)
	}

	if _, err := run(t, "mwe"); err == nil {
		t.Error("mwe without an expression dictionary should fail")
	}
}

func TestBuildEngineMissingConfig(t *testing.T) {
	_, _, err := buildEngine(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"), "")
	if err == nil {
		t.Error("missing config should fail")
	}
}
