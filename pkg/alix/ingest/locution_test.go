package ingest

import (
	"reflect"
	"testing"

	"github.com/cognicore/alix/pkg/alix/lexicon"
	"github.com/cognicore/alix/pkg/alix/tagset"
	"github.com/cognicore/alix/pkg/alix/token"
)

func locutions(t *testing.T, text string) []token.Token {
	t.Helper()
	lex := lexicon.Shared()
	var s token.Stream = NewTokenizer(text, lex)
	s = NewCliticSplitter(s, lex)
	s = NewLemmatizer(s, lex)
	tokens, err := token.Collect(NewLocutionMatcher(s, lex))
	if err != nil {
		t.Fatalf("locutions %q: %v", text, err)
	}
	return tokens
}

func TestLocutionMatcherLongest(t *testing.T) {
	tokens := locutions(t, "Le chemin de fer d'intérêt local est là.")
	got := token.Texts(tokens)
	want := []string{"Le", "chemin de fer d'intérêt local", "est", "là", "."}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("texts = %q, want %q", got, want)
	}
	loc := tokens[1]
	if loc.Start != 3 || loc.End != 32 {
		t.Errorf("span = [%d,%d), want [3,32)", loc.Start, loc.End)
	}
	if loc.Orth != "chemin de fer d'intérêt local" || loc.Tag != tagset.Noun {
		t.Errorf("locution = orth %q tag %v", loc.Orth, loc.Tag)
	}
	if loc.PosInc != 1 || loc.PosLen != 1 {
		t.Errorf("positions = %d/%d, want 1/1", loc.PosInc, loc.PosLen)
	}
}

func TestLocutionMatcherKeepsLookahead(t *testing.T) {
	// "chemin de fer" is complete and a prefix of a longer locution; the
	// word read past it is not lost.
	got := token.Texts(locutions(t, "Le chemin de fer et la route."))
	want := []string{"Le", "chemin de fer", "et", "la", "route", "."}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("texts = %q, want %q", got, want)
	}
}

func TestLocutionMatcher(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		index int
		want  string
		lemma string
		tag   tagset.Tag
	}{
		{"conjugated part", "C'est tout à fait vrai.", 2, "tout à fait", "", tagset.Adv},
		{"verbal locution", "Il a l'air content.", 1, "avoir l'air", "avoir l'air", tagset.Verb},
		{"name", "Il vit à New York.", 3, "New York", "", tagset.NamePlace},
		{"at the end", "pomme de terre", 0, "pomme de terre", "", tagset.Noun},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := locutions(t, tt.text)
			if len(tokens) <= tt.index {
				t.Fatalf("tokens = %q", token.Texts(tokens))
			}
			got := tokens[tt.index]
			if got.Text != tt.want || got.Lemma != tt.lemma || got.Tag != tt.tag {
				t.Errorf("token %d = %q lemma %q tag %v, want %q %q %v",
					tt.index, got.Text, got.Lemma, got.Tag, tt.want, tt.lemma, tt.tag)
			}
		})
	}
}

func TestLocutionMatcherIncomplete(t *testing.T) {
	got := token.Texts(locutions(t, "un chemin de terre"))
	want := []string{"un", "chemin", "de", "terre"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("texts = %q, want %q", got, want)
	}
}

func TestLocutionMatcherStopsAtPunctuation(t *testing.T) {
	got := token.Texts(locutions(t, "pomme, de terre"))
	want := []string{"pomme", ",", "de", "terre"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("texts = %q, want %q", got, want)
	}
}

func TestLocutionMatcherRewrite(t *testing.T) {
	lex := lexicon.New()
	if err := lex.AddLocution(lexicon.Entry{Graph: "tout au plus", Tag: tagset.Adv}, false); err != nil {
		t.Fatal(err)
	}
	lex.Freeze()

	tokens, err := token.Collect(NewLocutionMatcher(NewTokenizer("tout au plus dix", lex), lex))
	if err != nil {
		t.Fatal(err)
	}
	if got := token.Texts(tokens); !reflect.DeepEqual(got, []string{"tout au plus", "dix"}) {
		t.Fatalf("texts = %q", got)
	}
	if tokens[0].Orth != "tout au plus" || tokens[0].Tag != tagset.Adv {
		t.Errorf("locution = %q %v", tokens[0].Orth, tokens[0].Tag)
	}
}
