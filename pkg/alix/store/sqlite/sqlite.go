package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Laisky/errors/v2"
	_ "modernc.org/sqlite"

	"github.com/cognicore/alix/pkg/alix/internalerr"
	"github.com/cognicore/alix/pkg/alix/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db  *sql.DB
	ids *store.IDGenerator
}

// OpenSQLite opens a SQLite database with WAL mode enabled.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// one writer; queries must not hold rows open across calls
	db.SetMaxOpenConns(1)

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "init schema")
	}

	return &sqliteStore{db: db, ids: store.NewIDGenerator()}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS docs (
	id TEXT PRIMARY KEY,
	name TEXT UNIQUE NOT NULL,
	title TEXT,
	source TEXT,
	published_at TEXT,
	analyzed_at TEXT
);

CREATE TABLE IF NOT EXISTS doc_tokens (
	doc_id TEXT NOT NULL,
	seq INTEGER NOT NULL,
	position INTEGER NOT NULL,
	pos_len INTEGER NOT NULL,
	start_offset INTEGER NOT NULL,
	end_offset INTEGER NOT NULL,
	kind TEXT NOT NULL,
	text TEXT NOT NULL,
	orth TEXT,
	lemma TEXT,
	tag TEXT,
	term TEXT,
	term_id INTEGER DEFAULT 0,
	PRIMARY KEY(doc_id, seq),
	FOREIGN KEY(doc_id) REFERENCES docs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_doc_tokens_term ON doc_tokens(term);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// timeLayout sorts lexically in chronological order.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// PutDoc inserts or replaces a document, keyed by name.
func (s *sqliteStore) PutDoc(ctx context.Context, d store.Doc) (store.Doc, error) {
	if d.Name == "" {
		return store.Doc{}, errors.Wrap(internalerr.ErrInvalidInput, "document name is required")
	}
	if d.AnalyzedAt.IsZero() {
		d.AnalyzedAt = time.Now().UTC()
	}
	if d.ID == "" {
		d.ID = s.ids.New(d.AnalyzedAt)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return store.Doc{}, err
	}
	defer tx.Rollback()

	const stmt = `
INSERT INTO docs (id, name, title, source, published_at, analyzed_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(name) DO UPDATE SET
	title=excluded.title,
	source=excluded.source,
	published_at=excluded.published_at,
	analyzed_at=excluded.analyzed_at
RETURNING id;
`

	err = tx.QueryRowContext(
		ctx,
		stmt,
		d.ID,
		d.Name,
		d.Title,
		d.Source,
		formatTime(d.PublishedAt),
		formatTime(d.AnalyzedAt),
	).Scan(&d.ID)
	if err != nil {
		return store.Doc{}, err
	}

	if err := replaceDocTokens(ctx, tx, d.ID, d.Tokens); err != nil {
		return store.Doc{}, err
	}

	if err := tx.Commit(); err != nil {
		return store.Doc{}, err
	}
	d.PublishedAt = parseTime(formatTime(d.PublishedAt))
	d.AnalyzedAt = parseTime(formatTime(d.AnalyzedAt))
	return d, nil
}

func replaceDocTokens(ctx context.Context, tx *sql.Tx, docID string, tokens []store.Token) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM doc_tokens WHERE doc_id=?`, docID); err != nil {
		return err
	}
	if len(tokens) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO doc_tokens (doc_id, seq, position, pos_len, start_offset, end_offset, kind, text, orth, lemma, tag, term, term_id)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, tok := range tokens {
		if _, err := stmt.ExecContext(ctx, docID, i,
			tok.Position, tok.PosLen, tok.Start, tok.End, tok.Kind,
			tok.Text, tok.Orth, tok.Lemma, tok.Tag, tok.Term, tok.TermID); err != nil {
			return err
		}
	}
	return nil
}

// GetDoc retrieves a document by ID
func (s *sqliteStore) GetDoc(ctx context.Context, id string) (store.Doc, error) {
	doc, err := s.loadDoc(ctx, `id = ?`, id)
	if err == sql.ErrNoRows {
		return store.Doc{}, errors.Wrapf(internalerr.ErrNotFound, "document `%s`", id)
	}
	return doc, err
}

// GetDocByName retrieves a document by name
func (s *sqliteStore) GetDocByName(ctx context.Context, name string) (store.Doc, bool, error) {
	doc, err := s.loadDoc(ctx, `name = ?`, name)
	if err == sql.ErrNoRows {
		return store.Doc{}, false, nil
	}
	if err != nil {
		return store.Doc{}, false, err
	}
	return doc, true, nil
}

func (s *sqliteStore) loadDoc(ctx context.Context, where string, arg any) (store.Doc, error) {
	var (
		doc                   store.Doc
		title, source         sql.NullString
		published, analyzedAt sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
SELECT id, name, title, source, published_at, analyzed_at
FROM docs WHERE `+where, arg).Scan(&doc.ID, &doc.Name, &title, &source, &published, &analyzedAt)
	if err != nil {
		return store.Doc{}, err
	}
	doc.Title = title.String
	doc.Source = source.String
	doc.PublishedAt = parseTime(published.String)
	doc.AnalyzedAt = parseTime(analyzedAt.String)
	return doc, nil
}

// GetDocsByTerms retrieves documents containing any of the given terms
func (s *sqliteStore) GetDocsByTerms(ctx context.Context, terms []string, limit int) ([]store.Doc, error) {
	unique := store.UniqueTerms(terms)
	if len(unique) == 0 {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}

	placeholders := strings.Repeat("?,", len(unique))
	placeholders = strings.TrimSuffix(placeholders, ",")

	args := make([]interface{}, 0, len(unique)+1)
	for _, term := range unique {
		args = append(args, term)
	}
	args = append(args, limit)

	query := fmt.Sprintf(`
SELECT DISTINCT d.id, d.published_at
FROM docs d
JOIN doc_tokens dt ON d.id = dt.doc_id
WHERE dt.term IN (%s)
ORDER BY d.published_at DESC, d.id
LIMIT ?;
`, placeholders)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	var ids []string
	for rows.Next() {
		var (
			id        string
			published sql.NullString
		)
		if err := rows.Scan(&id, &published); err != nil {
			rows.Close()
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	results := make([]store.Doc, 0, len(ids))
	for _, id := range ids {
		doc, err := s.GetDoc(ctx, id)
		if err != nil {
			return nil, err
		}
		results = append(results, doc)
	}
	return results, nil
}

// Tokens returns the tokens of a document in stream order
func (s *sqliteStore) Tokens(ctx context.Context, id string) ([]store.Token, error) {
	if _, err := s.GetDoc(ctx, id); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT position, pos_len, start_offset, end_offset, kind, text, orth, lemma, tag, term, term_id
FROM doc_tokens WHERE doc_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []store.Token
	for rows.Next() {
		var (
			tok                    store.Token
			orth, lemma, tag, term sql.NullString
		)
		if err := rows.Scan(&tok.Position, &tok.PosLen, &tok.Start, &tok.End, &tok.Kind,
			&tok.Text, &orth, &lemma, &tag, &term, &tok.TermID); err != nil {
			return nil, err
		}
		tok.Orth = orth.String
		tok.Lemma = lemma.String
		tok.Tag = tag.String
		tok.Term = term.String
		tokens = append(tokens, tok)
	}
	return tokens, rows.Err()
}

// TermFreq counts the occurrences of a term
func (s *sqliteStore) TermFreq(ctx context.Context, term string) (store.TermCount, error) {
	tc := store.TermCount{Term: term}
	if term == "" {
		return tc, nil
	}
	err := s.db.QueryRowContext(ctx, `
SELECT COUNT(*), COUNT(DISTINCT doc_id) FROM doc_tokens WHERE term = ?`, term).Scan(&tc.Count, &tc.Docs)
	return tc, err
}

// TopTerms returns the k most frequent terms
func (s *sqliteStore) TopTerms(ctx context.Context, k int) ([]store.TermCount, error) {
	if k <= 0 {
		k = 10
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT term, COUNT(*) AS n, COUNT(DISTINCT doc_id)
FROM doc_tokens
WHERE term IS NOT NULL AND term != ''
GROUP BY term
ORDER BY n DESC, term
LIMIT ?;
`, k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.TermCount
	for rows.Next() {
		var tc store.TermCount
		if err := rows.Scan(&tc.Term, &tc.Count, &tc.Docs); err != nil {
			return nil, err
		}
		out = append(out, tc)
	}
	return out, rows.Err()
}
