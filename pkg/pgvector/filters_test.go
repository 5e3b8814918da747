package pgvector

import (
	"testing"

	"github.com/Aleph-Alpha/job-openings-rag/pkg/vectordb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhereClause(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		sql, args, err := whereClause(nil)
		require.NoError(t, err)
		assert.Equal(t, "TRUE", sql)
		assert.Empty(t, args)
	})

	t.Run("source hash", func(t *testing.T) {
		sql, args, err := whereClause(vectordb.BySourceHash("abc"))
		require.NoError(t, err)
		assert.Equal(t, "(metadata ->> ? = ?)", sql)
		assert.Equal(t, []any{"source_hash", "abc"}, args)
	})

	t.Run("all clauses", func(t *testing.T) {
		fs := vectordb.NewFilterSet(
			vectordb.Must(vectordb.NewMatch("location", "Remote"), vectordb.NewMatch("chunk_index", 2)),
			vectordb.Should(vectordb.NewMatchAny("type", "Full-time", "Contract")),
			vectordb.MustNot(vectordb.NewMatch("archived", true)),
		)
		sql, args, err := whereClause(fs)
		require.NoError(t, err)
		assert.Equal(t,
			"(metadata ->> ? = ? AND metadata ->> ? = ?) AND (metadata ->> ? IN ?) AND NOT (metadata ->> ? = ?)",
			sql)
		assert.Equal(t, []any{
			"location", "Remote",
			"chunk_index", "2",
			"type", []string{"Full-time", "Contract"},
			"archived", "true",
		}, args)
	})

	t.Run("unsupported value", func(t *testing.T) {
		fs := vectordb.NewFilterSet(vectordb.Must(vectordb.NewMatch("x", []int{1})))
		_, _, err := whereClause(fs)
		assert.ErrorIs(t, err, vectordb.ErrVectorStore)
	})
}

func TestTextValue(t *testing.T) {
	cases := map[string]any{
		"Remote": "Remote",
		"true":   true,
		"3":      3,
		"7":      int64(7),
		"1.5":    1.5,
		"4":      4.0,
	}
	for want, in := range cases {
		got, err := textValue(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}
