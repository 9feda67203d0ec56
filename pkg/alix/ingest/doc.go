package ingest

import (
	"strings"
	"time"

	"github.com/Laisky/errors/v2"

	"github.com/cognicore/alix/pkg/alix/internalerr"
)

// Doc is a source document before analysis.
type Doc struct {
	Name        string // file name or URL, unique in a corpus
	Title       string
	Source      string
	PublishedAt time.Time
	Body        string
}

// Validate checks if the document has required fields
func (d *Doc) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return errors.Wrap(internalerr.ErrInvalidInput, "doc name is required")
	}

	if strings.TrimSpace(d.Body) == "" {
		return errors.Wrapf(internalerr.ErrInvalidInput, "doc `%s`: body is required", d.Name)
	}

	return nil
}

// Text returns the analysed text: the title, when set, as a first paragraph,
// then the body.
func (d *Doc) Text() string {
	if strings.TrimSpace(d.Title) == "" {
		return d.Body
	}
	return d.Title + "\n\n" + d.Body
}
