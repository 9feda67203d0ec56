package vocab

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cognicore/alix/pkg/alix/internalerr"
)

func TestIDAssignsInOrder(t *testing.T) {
	v := New()

	id, err := v.ID("pomme")
	require.NoError(t, err)
	require.Equal(t, int32(1), id)

	id, err = v.ID("terre")
	require.NoError(t, err)
	require.Equal(t, int32(2), id)

	id, err = v.ID("pomme")
	require.NoError(t, err)
	require.Equal(t, int32(1), id, "known term keeps its id")

	term, ok := v.Term(2)
	require.True(t, ok)
	require.Equal(t, "terre", term)

	_, ok = v.Term(0)
	require.False(t, ok)
	_, ok = v.Term(3)
	require.False(t, ok)

	require.Equal(t, 2, v.Len())
}

func TestIDRejectsEmpty(t *testing.T) {
	_, err := New().ID("")
	require.ErrorIs(t, err, internalerr.ErrInvalidInput)
}

func TestLookupDoesNotAssign(t *testing.T) {
	v := New()
	_, ok := v.Lookup("chemin")
	require.False(t, ok)
	require.Equal(t, 0, v.Len())
}

func TestConcurrentID(t *testing.T) {
	v := New()
	terms := []string{"a", "b", "c", "d", "e"}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, term := range terms {
				if _, err := v.ID(term); err != nil {
					t.Error(err)
				}
			}
		}()
	}
	wg.Wait()

	require.Equal(t, len(terms), v.Len())
	seen := map[int32]bool{}
	for _, term := range terms {
		id, ok := v.Lookup(term)
		require.True(t, ok)
		require.False(t, seen[id], "ids must be unique")
		seen[id] = true
	}
}

func TestOpenPersists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "vocab")

	v, err := Open(dir)
	require.NoError(t, err)
	for _, term := range []string{"chemin", "de", "fer"} {
		_, err := v.ID(term)
		require.NoError(t, err)
	}
	require.NoError(t, v.Close())
	require.NoError(t, v.Close(), "second close is a no-op")

	v, err = Open(dir)
	require.NoError(t, err)
	defer v.Close()

	require.Equal(t, 3, v.Len())
	id, ok := v.Lookup("fer")
	require.True(t, ok)
	require.Equal(t, int32(3), id)

	id, err = v.ID("terre")
	require.NoError(t, err)
	require.Equal(t, int32(4), id, "new ids continue after the persisted ones")
}
