package ingest

import (
	"errors"
	"testing"
	"time"

	"github.com/cognicore/alix/pkg/alix/internalerr"
)

func TestDocValidate(t *testing.T) {
	doc := Doc{
		Name:        "hugo.txt",
		Title:       "Les Misérables",
		PublishedAt: time.Now(),
		Body:        "Il s'en va.",
	}

	if err := doc.Validate(); err != nil {
		t.Errorf("Valid doc should pass validation, got %v", err)
	}
}

func TestDocValidateMissingFields(t *testing.T) {
	tests := []struct {
		name string
		doc  Doc
	}{
		{"missing name", Doc{Body: "texte"}},
		{"blank body", Doc{Name: "a.txt", Body: "  \n"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.doc.Validate()
			if !errors.Is(err, internalerr.ErrInvalidInput) {
				t.Errorf("Validate() = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestDocText(t *testing.T) {
	doc := Doc{Name: "a", Title: "Titre", Body: "Corps."}
	if got := doc.Text(); got != "Titre\n\nCorps." {
		t.Errorf("Text() = %q", got)
	}
	doc.Title = ""
	if got := doc.Text(); got != "Corps." {
		t.Errorf("Text() without title = %q", got)
	}
}
