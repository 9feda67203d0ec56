// Package corpus reads the documents given to the analyzer: plain text
// files and JSONL exports.
package corpus

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Laisky/errors/v2"
	"go.uber.org/zap"

	"github.com/cognicore/alix/internal/log"
	"github.com/cognicore/alix/pkg/alix/ingest"
)

// Item represents one JSONL record
type Item struct {
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Outlet      string    `json:"outlet"`
	PublishedAt time.Time `json:"published_at"`
	Body        string    `json:"text"`
}

// Doc converts an item to a document named by its URL.
func (it Item) Doc() ingest.Doc {
	return ingest.Doc{
		Name:        it.URL,
		Title:       it.Title,
		Source:      it.Outlet,
		PublishedAt: it.PublishedAt,
		Body:        it.Body,
	}
}

// LoadFromJSONL loads items from a JSONL file, skipping malformed lines
func LoadFromJSONL(path string) ([]Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read file `%s`", path)
	}

	var items []Item
	lines := strings.Split(string(data), "\n")

	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var item Item
		if err := json.Unmarshal([]byte(line), &item); err != nil {
			log.Logger.Warn("skipping malformed JSON line",
				zap.String("file", path), zap.Int("line", i+1), zap.Error(err))
			continue
		}
		items = append(items, item)
	}

	if len(items) == 0 {
		return nil, errors.Errorf("no valid items found in `%s`", path)
	}

	return items, nil
}

// LoadText reads a plain text file as one document named by its path. The
// modification time is the publication date.
func LoadText(path string) (ingest.Doc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ingest.Doc{}, errors.Wrapf(err, "read file `%s`", path)
	}
	doc := ingest.Doc{
		Name:   path,
		Source: filepath.Base(path),
		Body:   string(data),
	}
	if fi, err := os.Stat(path); err == nil {
		doc.PublishedAt = fi.ModTime().UTC()
	}
	return doc, nil
}

// Load reads the documents of a file: JSONL when the extension is .jsonl,
// one plain text document otherwise.
func Load(path string) ([]ingest.Doc, error) {
	if strings.EqualFold(filepath.Ext(path), ".jsonl") {
		items, err := LoadFromJSONL(path)
		if err != nil {
			return nil, err
		}
		docs := make([]ingest.Doc, len(items))
		for i, it := range items {
			docs[i] = it.Doc()
		}
		return docs, nil
	}

	doc, err := LoadText(path)
	if err != nil {
		return nil, err
	}
	return []ingest.Doc{doc}, nil
}
