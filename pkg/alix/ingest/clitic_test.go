package ingest

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/cognicore/alix/pkg/alix/lexicon"
	"github.com/cognicore/alix/pkg/alix/token"
)

func split(t *testing.T, text string) []token.Token {
	t.Helper()
	lex := lexicon.Shared()
	tokens, err := token.Collect(NewCliticSplitter(NewTokenizer(text, lex), lex))
	if err != nil {
		t.Fatalf("split %q: %v", text, err)
	}
	return tokens
}

func TestCliticScenarios(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"Il s'en va.", []string{"Il", "se", "en", "va", "."}},
		{"Serait-ce vrai ?", []string{"Serait", "ce", "vrai", "?"}},
		{"Qu'il vienne", []string{"Que", "il", "vienne"}},
		{"l'homme", []string{"l'", "homme"}},
		{"dit-il", []string{"dit", "il"}},
		{"va-t-il", []string{"va", "il"}},
		{"celui-ci", []string{"celui"}},
		{"dis-moi", []string{"dis", "moi"}},
		{"aujourd'hui", []string{"aujourd'hui"}},
		{"peut-être", []string{"peut-être"}},
		{"Jean-Pierre", []string{"Jean-Pierre"}},
		{"jusqu'", []string{"jusqu'"}},
		{"-il", []string{"-il"}},
		{"<b>s'il</b>", []string{"<b>", "se", "il", "</b>"}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := token.Texts(split(t, tt.text))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("split(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestCliticRoundTrip(t *testing.T) {
	tests := []struct {
		text       string
		prefix     string
		rest       string
		prefixSpan string
		restSpan   string
	}{
		{"qu'en", "que", "en", "qu'", "en"},
		{"jus\u00adqu'à", "jusque", "à", "jus\u00adqu'", "à"},
		{"qu\u00ad'il", "que", "il", "qu\u00ad'", "il"},
		{"l'a&amp;b", "l'", "a&b", "l'", "a&amp;b"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			tokens := split(t, tt.text)
			if len(tokens) != 2 {
				t.Fatalf("expected 2 tokens, got %v", tokens)
			}
			prefix, rest := tokens[0], tokens[1]
			if prefix.Text != tt.prefix || rest.Text != tt.rest {
				t.Errorf("tokens = %q %q", prefix.Text, rest.Text)
			}
			if prefix.End != rest.Start {
				t.Errorf("prefix end %d != remainder start %d", prefix.End, rest.Start)
			}
			src := []rune(tt.text)
			if got := string(src[prefix.Start:prefix.End]); got != tt.prefixSpan {
				t.Errorf("prefix span = %q, want %q", got, tt.prefixSpan)
			}
			if got := string(src[rest.Start:rest.End]); got != tt.restSpan {
				t.Errorf("remainder span = %q, want %q", got, tt.restSpan)
			}
		})
	}
}

func TestCliticSuffixAfterEntity(t *testing.T) {
	// "&amp;" is five source runes for one rune of text
	tokens := split(t, "A&amp;B-il")
	if len(tokens) != 2 {
		t.Fatalf("expected 2 tokens, got %v", tokens)
	}
	want := [][2]int{{0, 7}, {7, 10}}
	for i, tok := range tokens {
		if tok.Start != want[i][0] || tok.End != want[i][1] {
			t.Errorf("token %q = [%d,%d), want [%d,%d)", tok.Text, tok.Start, tok.End, want[i][0], want[i][1])
		}
	}
}

func TestCliticSuffixOffsets(t *testing.T) {
	tokens := split(t, "Serait-ce")
	want := [][2]int{{0, 6}, {6, 9}}
	for i, tok := range tokens {
		if tok.Start != want[i][0] || tok.End != want[i][1] {
			t.Errorf("token %q = [%d,%d), want [%d,%d)", tok.Text, tok.Start, tok.End, want[i][0], want[i][1])
		}
	}
}

func TestCliticKnownLimitation(t *testing.T) {
	// the remainder queued after a prefix is not decomposed again
	got := token.Texts(split(t, "qu'en-dira-t-on"))
	want := []string{"que", "en-dira-t-on"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("split = %q, want %q", got, want)
	}
}

func TestCliticDecompositionCap(t *testing.T) {
	lex := lexicon.New()
	if err := lex.AddSuffix("-x", "", false); err != nil {
		t.Fatal(err)
	}
	lex.Freeze()

	word := "a" + strings.Repeat("-x", 12)
	_, err := token.Collect(NewCliticSplitter(NewTokenizer(word, lex), lex))
	if !errors.Is(err, ErrDecomposition) {
		t.Errorf("err = %v, want ErrDecomposition", err)
	}

	got, err := token.Collect(NewCliticSplitter(NewTokenizer("a-x-x", lex), lex))
	if err != nil || len(got) != 1 || got[0].Text != "a" {
		t.Errorf("short chain = %v, %v", got, err)
	}
}
