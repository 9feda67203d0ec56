package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/cognicore/alix/pkg/alix/internalerr"
)

func TestLoadStoplist(t *testing.T) {
	// Create temp file
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "stoplist.yaml")

	content := `terms:
  - le
  - la
  - et
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	sl, err := LoadStoplist(path)
	if err != nil {
		t.Fatalf("Failed to load stoplist: %v", err)
	}

	if len(sl.Terms) != 3 {
		t.Errorf("Expected 3 terms, got %d", len(sl.Terms))
	}

	expected := map[string]bool{"le": true, "la": true, "et": true}
	for _, term := range sl.Terms {
		if !expected[term] {
			t.Errorf("Unexpected term: %s", term)
		}
	}
}

func TestLoadDict(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "mwe.txt")

	content := `# expressions
pomme de terre|patate|NOUN
mise en scène||NOUN

invalid line
coup de foudre|coup d'foudre|coup de la foudre|NOUN
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	dict, err := LoadDict(path)
	if err != nil {
		t.Fatalf("Failed to load dict: %v", err)
	}

	want := []DictEntry{
		{Canonical: "pomme de terre", Variants: []string{"patate"}, Category: "NOUN"},
		{Canonical: "mise en scène", Variants: []string{}, Category: "NOUN"},
		{Canonical: "coup de foudre", Variants: []string{"coup d'foudre", "coup de la foudre"}, Category: "NOUN"},
	}
	if !reflect.DeepEqual(dict.Entries, want) {
		t.Errorf("entries =\n%v\nwant\n%v", dict.Entries, want)
	}
}

func TestLoadDictMissing(t *testing.T) {
	if _, err := LoadDict("/nonexistent/dict.txt"); err == nil {
		t.Error("Should error on nonexistent dict")
	}
}

func TestLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "alix.yaml")

	content := `defaults: false
dictionaries:
  - path: words.csv
    kind: words
  - path: /abs/names.csv
    kind: names
    replace: true
stoplist: stop.yaml
mwe: mwe.txt
pipeline:
  drop_stopwords: true
  excluded_tags: [nav]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Defaults {
		t.Error("defaults should be disabled")
	}
	if got := cfg.Dictionaries[0].Path; got != filepath.Join(tmpDir, "words.csv") {
		t.Errorf("relative path = %q", got)
	}
	if got := cfg.Dictionaries[1]; got.Path != "/abs/names.csv" || !got.Replace {
		t.Errorf("absolute entry = %+v", got)
	}
	if cfg.Stoplist != filepath.Join(tmpDir, "stop.yaml") || cfg.MWE != filepath.Join(tmpDir, "mwe.txt") {
		t.Errorf("paths = %q %q", cfg.Stoplist, cfg.MWE)
	}
	if cfg.Vocab != "" {
		t.Errorf("vocab = %q, want empty", cfg.Vocab)
	}

	// unset keys keep their defaults
	p := cfg.Pipeline
	if !p.Locutions || !p.MWE || !p.DropStopwords || p.KeepTags {
		t.Errorf("pipeline = %+v", p)
	}
	if !reflect.DeepEqual(p.ExcludedTags, []string{"nav"}) {
		t.Errorf("excluded tags = %v", p.ExcludedTags)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed yaml", "pipeline: [unclosed\n"},
		{"dictionary without kind", "dictionaries:\n  - path: a.csv\n"},
		{"dictionary without path", "dictionaries:\n  - kind: words\n"},
		{"negative sentence", "pipeline:\n  max_sentence: -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "alix.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadConfig(path); !errors.Is(err, internalerr.ErrInvalidConfig) {
				t.Errorf("err = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := Default()
	if !cfg.Defaults || !cfg.Pipeline.Locutions || !cfg.Pipeline.MWE {
		t.Errorf("default = %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}
