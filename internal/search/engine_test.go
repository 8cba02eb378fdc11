package search

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Search(t *testing.T) {
	for _, cacheSize := range []int{0, 4} {
		e, err := NewEngine(saveFixture(t, "idx.csv"), DefaultOptions(), cacheSize)
		require.NoError(t, err)

		results, err := e.Search(Query{Text: "dog", Limit: 5})

		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "# Dogs", results[0].Section)
	}
}

func TestEngine_Search_MissingIndex(t *testing.T) {
	e, err := NewEngine(filepath.Join(t.TempDir(), "data", "bm25_index.csv"), DefaultOptions(), 0)
	require.NoError(t, err)

	_, err = e.Search(Query{Text: "cat", Limit: 5})

	assert.True(t, errors.Is(err, ErrIndexMissing))
}

func TestEngine_Status(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bm25_index.csv")
		e, err := NewEngine(path, DefaultOptions(), 0)
		require.NoError(t, err)

		st, err := e.Status()

		require.NoError(t, err)
		assert.False(t, st.Exists)
		assert.Equal(t, path, st.Path)
	})

	t.Run("present", func(t *testing.T) {
		e, err := NewEngine(saveFixture(t, "idx.db"), DefaultOptions(), 2)
		require.NoError(t, err)

		st, err := e.Status()

		require.NoError(t, err)
		assert.True(t, st.Exists)
		assert.Equal(t, "sqlite", st.Format)
		assert.Equal(t, 4, st.Chunks)
		assert.Equal(t, 3, st.Files)
		assert.Positive(t, st.Size)
	})
}
