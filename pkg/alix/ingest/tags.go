package ingest

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/cognicore/alix/pkg/alix/tagset"
	"github.com/cognicore/alix/pkg/alix/token"
)

// DefaultExcludedTags delimit zones whose content is not analysed.
var DefaultExcludedTags = []string{"aside", "nav", "note"}

var paragraphTags = map[string]bool{
	"p": true, "li": true, "td": true, "tr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"item": true, "label": true, "cell": true,
}

var sectionTags = map[string]bool{
	"article": true,
	"section": true,
}

// TagOptions configure a TagFilter.
type TagOptions struct {
	// Excluded names the elements whose content is dropped. Nil means
	// DefaultExcludedTags.
	Excluded []string
	// KeepTags passes markup tokens that are not breaks downstream.
	KeepTags bool
}

// TagFilter interprets markup tokens: closing block elements become zero
// width paragraph or section breaks, content of excluded elements is
// dropped, remaining markup is dropped unless kept.
type TagFilter struct {
	in       token.Stream
	excluded map[string]bool
	keep     bool
	depth    int
	last     token.Kind
}

// NewTagFilter wraps in.
func NewTagFilter(in token.Stream, opts TagOptions) *TagFilter {
	names := opts.Excluded
	if names == nil {
		names = DefaultExcludedTags
	}
	excluded := make(map[string]bool, len(names))
	for _, n := range names {
		if n = strings.ToLower(strings.TrimSpace(n)); n != "" {
			excluded[n] = true
		}
	}
	return &TagFilter{in: in, excluded: excluded, keep: opts.KeepTags}
}

// parseTag returns the element name and token type of a markup token.
func parseTag(text string) (string, html.TokenType) {
	z := html.NewTokenizer(strings.NewReader(text))
	tt := z.Next()
	switch tt {
	case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
		name, _ := z.TagName()
		return string(name), tt
	}
	return "", tt
}

func (f *TagFilter) Next() (token.Token, error) {
	for {
		tok, err := f.in.Next()
		if err != nil {
			return tok, err
		}
		if tok.Kind != token.KindTag {
			if f.depth > 0 {
				continue
			}
			if f.redundant(tok.Kind) {
				continue
			}
			f.last = tok.Kind
			return tok, nil
		}

		name, tt := parseTag(tok.Text)
		if f.excluded[name] {
			switch tt {
			case html.StartTagToken:
				f.depth++
			case html.EndTagToken:
				if f.depth > 0 {
					f.depth--
				}
			}
			continue
		}
		if f.depth > 0 {
			continue
		}

		if tt == html.EndTagToken {
			var brk token.Token
			switch {
			case sectionTags[name]:
				brk = token.New(SectionMark, tok.Start, tok.Start, token.KindPunSection)
				brk.Tag = tagset.PunSection
			case paragraphTags[name]:
				brk = token.New(ParagraphMark, tok.Start, tok.Start, token.KindPunParagraph)
				brk.Tag = tagset.PunPara
			}
			if brk.Kind != token.KindUnknown {
				if f.redundant(brk.Kind) {
					continue
				}
				f.last = brk.Kind
				return brk, nil
			}
		}

		if f.keep {
			f.last = tok.Kind
			return tok, nil
		}
	}
}

// redundant reports a break that follows a break at least as strong.
func (f *TagFilter) redundant(k token.Kind) bool {
	switch k {
	case token.KindPunParagraph:
		return f.last == token.KindPunParagraph || f.last == token.KindPunSection
	case token.KindPunSection:
		return f.last == token.KindPunSection
	}
	return false
}
