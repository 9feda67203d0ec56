package lexicon

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Laisky/errors/v2"
	"go.uber.org/zap"

	"github.com/cognicore/alix/internal/log"
	"github.com/cognicore/alix/pkg/alix/internalerr"
	"github.com/cognicore/alix/pkg/alix/stoplist"
	"github.com/cognicore/alix/pkg/alix/tagset"
)

// Kind names the table a resource fills.
type Kind int

const (
	Words Kind = iota
	Names
	Locutions
	Norms
	Elisions
	Suffixes
	Abbreviations
	Stopwords
)

var kindNames = map[Kind]string{
	Words:         "words",
	Names:         "names",
	Locutions:     "locutions",
	Norms:         "norms",
	Elisions:      "elisions",
	Suffixes:      "suffixes",
	Abbreviations: "abbreviations",
	Stopwords:     "stopwords",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "kind?"
}

// ParseKind returns the kind for its name.
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, errors.Wrapf(internalerr.ErrInvalidInput, "unknown dictionary kind `%s`", name)
}

// Row is one record of a dictionary resource: columns graph, tag, lemma,
// norm. Two-column resources (norms, elisions, suffixes) use Tag as the
// value column.
type Row struct {
	Line  int
	Graph string
	Tag   string
	Lemma string
	Norm  string
}

func field(rec []string, i int) string {
	if i < len(rec) {
		return strings.TrimSpace(strings.ReplaceAll(rec[i], "’", "'"))
	}
	return ""
}

// LoadFile loads a resource from disk; the file name is the resource name.
func (s *Store) LoadFile(path string, kind Kind, replace bool) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "open dictionary `%s`", path)
	}
	defer f.Close()

	return s.Load(filepath.Base(path), f, kind, replace)
}

// Load reads a comma-separated resource. The first row is a header, rows
// whose key starts with '#' are comments, rows with an empty key are
// skipped. Malformed rows are logged and skipped; loading the same resource
// name twice is a no-op.
func (s *Store) Load(name string, r io.Reader, kind Kind, replace bool) error {
	if s.frozen {
		return ErrFrozen
	}
	if _, ok := s.loaded[name]; ok {
		log.Logger.Info("dictionary already loaded", zap.String("resource", name))
		return nil
	}
	s.loaded[name] = struct{}{}

	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	header := true
	rows, skipped := 0, 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				log.Logger.Warn("malformed dictionary row",
					zap.String("resource", name), zap.Int("line", perr.Line), zap.Error(err))
				skipped++
				continue
			}
			return errors.Wrapf(err, "read dictionary `%s`", name)
		}
		if header {
			header = false
			continue
		}
		line, _ := cr.FieldPos(0)
		row := Row{
			Line:  line,
			Graph: field(rec, 0),
			Tag:   field(rec, 1),
			Lemma: field(rec, 2),
			Norm:  field(rec, 3),
		}
		if row.Graph == "" || strings.HasPrefix(row.Graph, "#") {
			continue
		}
		ok, err := s.addRow(name, kind, row, replace)
		if err != nil {
			return errors.Wrapf(err, "load dictionary `%s` line %d", name, line)
		}
		if ok {
			rows++
		} else {
			skipped++
		}
	}

	log.Logger.Debug("dictionary loaded",
		zap.String("resource", name),
		zap.Stringer("kind", kind),
		zap.Int("rows", rows),
		zap.Int("skipped", skipped))
	return nil
}

func (s *Store) addRow(name string, kind Kind, row Row, replace bool) (bool, error) {
	switch kind {
	case Norms:
		return true, s.AddNorm(row.Graph, row.Tag, replace)
	case Elisions:
		return true, s.AddElision(row.Graph, row.Tag, replace)
	case Suffixes:
		return true, s.AddSuffix(row.Graph, row.Tag, replace)
	case Abbreviations:
		return true, s.AddAbbreviation(row.Graph)
	case Stopwords:
		return true, s.AddStopword(row.Graph, stoplist.Reason{Source: name, Line: row.Line})
	}

	// a norm value makes the row a rewrite rule, not a lexical entry
	if row.Norm != "" {
		return true, s.AddNorm(row.Graph, row.Norm, replace)
	}

	tag := tagset.Unknown
	if row.Tag != "" {
		t, ok := tagset.Parse(row.Tag)
		if !ok {
			log.Logger.Warn("unknown tag in dictionary row",
				zap.String("resource", name),
				zap.Int("line", row.Line),
				zap.String("graph", row.Graph),
				zap.String("tag", row.Tag),
				zap.String("lemma", row.Lemma))
			return false, nil
		}
		tag = t
	}
	e := Entry{Graph: row.Graph, Tag: tag, Lemma: row.Lemma}

	switch kind {
	case Words:
		return true, s.AddWord(e, replace)
	case Names:
		return true, s.AddName(e, replace)
	case Locutions:
		return true, s.AddLocution(e, replace)
	}
	return false, errors.Errorf("unsupported dictionary kind %d", int(kind))
}
