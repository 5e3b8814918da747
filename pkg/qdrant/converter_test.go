package qdrant

import (
	"testing"

	"github.com/Aleph-Alpha/job-openings-rag/pkg/vectordb"
	qdrant "github.com/qdrant/go-client/qdrant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertFilterSet(t *testing.T) {
	t.Run("nil and empty yield no filter", func(t *testing.T) {
		assert.Nil(t, convertFilterSet(nil))
		assert.Nil(t, convertFilterSet(vectordb.NewFilterSet()))
	})

	t.Run("source hash filter", func(t *testing.T) {
		f := convertFilterSet(vectordb.BySourceHash("abc"))
		require.NotNil(t, f)
		require.Len(t, f.Must, 1)
		assert.Empty(t, f.Should)
		assert.Empty(t, f.MustNot)

		field := f.Must[0].GetField()
		require.NotNil(t, field)
		assert.Equal(t, vectordb.PayloadSourceHash, field.GetKey())
		assert.Equal(t, "abc", field.GetMatch().GetKeyword())
	})

	t.Run("mixed clauses", func(t *testing.T) {
		fs := vectordb.NewFilterSet(
			vectordb.Must(vectordb.NewMatch("location", "Remote"), vectordb.NewMatch("chunk_index", 0)),
			vectordb.Should(vectordb.NewMatchAny("type", "Full-time", "Contract")),
			vectordb.MustNot(vectordb.NewMatch("archived", true)),
		)
		f := convertFilterSet(fs)
		require.NotNil(t, f)
		assert.Len(t, f.Must, 2)
		assert.Len(t, f.Should, 1)
		assert.Len(t, f.MustNot, 1)

		assert.Equal(t, int64(0), f.Must[1].GetField().GetMatch().GetInteger())
		assert.Equal(t, []string{"Full-time", "Contract"},
			f.Should[0].GetField().GetMatch().GetKeywords().GetStrings())
		assert.True(t, f.MustNot[0].GetField().GetMatch().GetBoolean())
	})

	t.Run("unsupported value types are dropped", func(t *testing.T) {
		fs := vectordb.NewFilterSet(vectordb.Must(vectordb.NewMatch("x", []int{1})))
		assert.Nil(t, convertFilterSet(fs))
	})
}

func TestValueToAny(t *testing.T) {
	payload, err := qdrant.TryValueMap(map[string]any{
		"text":        "Go developer",
		"chunk_index": 3,
		"score":       0.5,
		"remote":      true,
		"skills":      []any{"go", "sql"},
		"nested":      map[string]any{"k": "v"},
	})
	require.NoError(t, err)

	out := payloadToMap(payload)
	assert.Equal(t, "Go developer", out["text"])
	assert.Equal(t, int64(3), out["chunk_index"])
	assert.Equal(t, 0.5, out["score"])
	assert.Equal(t, true, out["remote"])
	assert.Equal(t, []any{"go", "sql"}, out["skills"])
	assert.Equal(t, map[string]any{"k": "v"}, out["nested"])
}

func TestPointID(t *testing.T) {
	id, err := pointID(qdrant.NewIDNum(42))
	require.NoError(t, err)
	assert.Equal(t, "42", id)

	id, err = pointID(qdrant.NewID("6f2b4a8e-3c1d-5e7f-9a0b-1c2d3e4f5a6b"))
	require.NoError(t, err)
	assert.Equal(t, "6f2b4a8e-3c1d-5e7f-9a0b-1c2d3e4f5a6b", id)

	_, err = pointID(&qdrant.PointId{})
	assert.ErrorIs(t, err, vectordb.ErrVectorStore)
}

func TestExtractVectorDetails(t *testing.T) {
	size, dist := extractVectorDetails(nil)
	assert.Zero(t, size)
	assert.Empty(t, dist)

	info := &qdrant.CollectionInfo{
		Config: &qdrant.CollectionConfig{
			Params: &qdrant.CollectionParams{
				VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
					Size:     768,
					Distance: qdrant.Distance_Cosine,
				}),
			},
		},
	}
	size, dist = extractVectorDetails(info)
	assert.Equal(t, 768, size)
	assert.Equal(t, "Cosine", dist)
}
