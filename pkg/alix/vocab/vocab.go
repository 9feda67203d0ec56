// Package vocab maps terms to stable int32 ids. Ids start at 1; 0 is "no
// id". A vocabulary lives in memory and may be persisted in a pogreb store
// so that ids survive across runs.
package vocab

import (
	"encoding/binary"
	"sync"

	"github.com/Laisky/errors/v2"
	"github.com/akrylysov/pogreb"
	"go.uber.org/zap"

	"github.com/cognicore/alix/internal/log"
	"github.com/cognicore/alix/pkg/alix/internalerr"
)

// Vocab is safe for concurrent use.
type Vocab struct {
	mu    sync.RWMutex
	ids   map[string]int32
	terms []string // terms[id-1]
	db    *pogreb.DB
}

// New returns an empty in-memory vocabulary.
func New() *Vocab {
	return &Vocab{ids: make(map[string]int32)}
}

// Open loads the vocabulary persisted in dir, creating it if needed. New
// ids are written through to the store.
func Open(dir string) (*Vocab, error) {
	db, err := pogreb.Open(dir, &pogreb.Options{
		BackgroundSyncInterval:       0,
		BackgroundCompactionInterval: 0,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open vocabulary `%s`", dir)
	}

	v := New()
	v.db = db
	it := db.Items()
	for {
		key, val, err := it.Next()
		if errors.Is(err, pogreb.ErrIterationDone) {
			break
		}
		if err != nil {
			db.Close()
			return nil, errors.Wrapf(err, "read vocabulary `%s`", dir)
		}
		if len(val) != 4 {
			db.Close()
			return nil, errors.Wrapf(internalerr.ErrInvalidInput, "vocabulary `%s`: bad value for `%s`", dir, key)
		}
		v.set(string(key), int32(binary.BigEndian.Uint32(val)))
	}

	log.Logger.Debug("vocabulary opened", zap.String("dir", dir), zap.Int("terms", v.Len()))
	return v, nil
}

func (v *Vocab) set(term string, id int32) {
	v.ids[term] = id
	for int(id) > len(v.terms) {
		v.terms = append(v.terms, "")
	}
	v.terms[id-1] = term
}

// ID returns the id of term, assigning the next one if term is new.
func (v *Vocab) ID(term string) (int32, error) {
	if term == "" {
		return 0, errors.Wrap(internalerr.ErrInvalidInput, "empty term")
	}
	if id, ok := v.Lookup(term); ok {
		return id, nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if id, ok := v.ids[term]; ok {
		return id, nil
	}
	id := int32(len(v.terms) + 1)
	if v.db != nil {
		var buf [4]byte
		binary.BigEndian.PutUint32(buf[:], uint32(id))
		if err := v.db.Put([]byte(term), buf[:]); err != nil {
			return 0, errors.Wrapf(err, "persist term `%s`", term)
		}
	}
	v.set(term, id)
	return id, nil
}

// Lookup returns the id of a known term without assigning one.
func (v *Vocab) Lookup(term string) (int32, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	id, ok := v.ids[term]
	return id, ok
}

// Term returns the term of id.
func (v *Vocab) Term(id int32) (string, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if id < 1 || int(id) > len(v.terms) || v.terms[id-1] == "" {
		return "", false
	}
	return v.terms[id-1], true
}

// Len returns the number of terms.
func (v *Vocab) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.ids)
}

// Close flushes and closes the backing store, if any.
func (v *Vocab) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.db == nil {
		return nil
	}
	if err := v.db.Sync(); err != nil {
		return errors.Wrap(err, "sync vocabulary")
	}
	err := v.db.Close()
	v.db = nil
	return err
}
