package qdrant

import (
	"context"
	"fmt"
	"slices"

	"github.com/Aleph-Alpha/job-openings-rag/pkg/vectordb"
	qdrant "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Adapter implements vectordb.Service on top of Qdrant. Indexes map to
// collections; records map to points with a UUID id.
type Adapter struct {
	client *QdrantClient
}

var _ vectordb.Service = (*Adapter)(nil)

// NewAdapter wraps an existing client.
func NewAdapter(client *QdrantClient) *Adapter {
	return &Adapter{client: client}
}

// ListIndexes returns all collection names.
func (a *Adapter) ListIndexes(ctx context.Context) ([]string, error) {
	names, err := a.client.api.ListCollections(ctx)
	if err != nil {
		return nil, wrapError("list collections", err)
	}
	slices.Sort(names)
	return names, nil
}

// ──────────────────────────────────────────────────────────────
// CreateIndex
// ──────────────────────────────────────────────────────────────
//
// CreateIndex creates a cosine collection of the given dimension and a keyword
// payload index on source_hash, which every delete filters on.
func (a *Adapter) CreateIndex(ctx context.Context, name string, dimension int) error {
	if name == "" {
		return fmt.Errorf("%w: collection name cannot be empty", vectordb.ErrVectorStore)
	}
	if dimension <= 0 {
		return fmt.Errorf("%w: dimension must be positive", vectordb.ErrVectorStore)
	}

	err := a.client.api.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: name,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(dimension),
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return wrapError(fmt.Sprintf("create collection '%s'", name), err)
	}

	wait := true
	_, err = a.client.api.CreateFieldIndex(ctx, &qdrant.CreateFieldIndexCollection{
		CollectionName: name,
		FieldName:      vectordb.PayloadSourceHash,
		FieldType:      qdrant.FieldType_FieldTypeKeyword.Enum(),
		Wait:           &wait,
	})
	if err != nil {
		return wrapError(fmt.Sprintf("create payload index on '%s'", name), err)
	}

	a.client.logger.Info("[Qdrant] created collection", nil, map[string]interface{}{
		"collection": name,
		"dimension":  dimension,
	})
	return nil
}

// ──────────────────────────────────────────────────────────────
// Upsert
// ──────────────────────────────────────────────────────────────
//
// Upsert writes points in batches of UpsertBatchSize, waiting for each batch
// to be persisted before sending the next.
func (a *Adapter) Upsert(ctx context.Context, index string, vectors [][]float32, payloads []map[string]any) (*vectordb.UpsertResult, error) {
	if err := vectordb.ValidateUpsert(index, vectors, payloads); err != nil {
		return nil, err
	}

	ids := make([]string, len(vectors))
	points := make([]*qdrant.PointStruct, len(vectors))
	for i, v := range vectors {
		payload, err := qdrant.TryValueMap(payloads[i])
		if err != nil {
			return nil, fmt.Errorf("%w: payload %d: %w", vectordb.ErrVectorStore, i, err)
		}
		ids[i] = vectordb.RecordID(payloads[i], i)
		points[i] = &qdrant.PointStruct{
			Id:      qdrant.NewID(ids[i]),
			Vectors: qdrant.NewVectors(v...),
			Payload: payload,
		}
	}

	batchSize := a.client.cfg.UpsertBatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	for start := 0; start < len(points); start += batchSize {
		end := min(start+batchSize, len(points))

		wait := true
		_, err := a.client.api.Upsert(ctx, &qdrant.UpsertPoints{
			CollectionName: index,
			Points:         points[start:end],
			Wait:           &wait,
		})
		if err != nil {
			return nil, wrapError(fmt.Sprintf("upsert batch [%d:%d] into '%s'", start, end, index), err)
		}
		a.client.logger.Debug("[Qdrant] upserted batch", nil, map[string]interface{}{
			"collection": index,
			"start":      start,
			"end":        end,
		})
	}

	return &vectordb.UpsertResult{Upserted: len(ids), IDs: ids}, nil
}

// Query runs a nearest-neighbour query with payloads.
func (a *Adapter) Query(ctx context.Context, index string, vector []float32, topK int, filters *vectordb.FilterSet) ([]vectordb.SearchResult, error) {
	if err := vectordb.ValidateQuery(index, vector, topK); err != nil {
		return nil, err
	}

	limit := uint64(topK)
	resp, err := a.client.api.Query(ctx, &qdrant.QueryPoints{
		CollectionName: index,
		Query:          qdrant.NewQuery(vector...),
		Limit:          &limit,
		WithPayload:    qdrant.NewWithPayload(true),
		Filter:         convertFilterSet(filters),
	})
	if err != nil {
		return nil, wrapError(fmt.Sprintf("query '%s'", index), err)
	}

	return parseScoredPoints(resp)
}

// Delete counts then removes every point matching filters. Qdrant does not
// report how many points a filtered delete removed, hence the count.
func (a *Adapter) Delete(ctx context.Context, index string, filters *vectordb.FilterSet) (*vectordb.DeleteResult, error) {
	filter := convertFilterSet(filters)
	if filter == nil {
		return nil, fmt.Errorf("%w: refusing to delete without a filter", vectordb.ErrVectorStore)
	}

	exact := true
	count, err := a.client.api.Count(ctx, &qdrant.CountPoints{
		CollectionName: index,
		Filter:         filter,
		Exact:          &exact,
	})
	if err != nil {
		return nil, wrapError(fmt.Sprintf("count points in '%s'", index), err)
	}

	wait := true
	_, err = a.client.api.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: index,
		Points:         qdrant.NewPointsSelectorFilter(filter),
		Wait:           &wait,
	})
	if err != nil {
		return nil, wrapError(fmt.Sprintf("delete points from '%s'", index), err)
	}

	a.client.logger.Info("[Qdrant] deleted points", nil, map[string]interface{}{
		"collection": index,
		"deleted":    count,
	})
	return &vectordb.DeleteResult{Deleted: int(count)}, nil
}

// Info describes a collection.
func (a *Adapter) Info(ctx context.Context, index string) (*vectordb.IndexInfo, error) {
	info, err := a.client.api.GetCollectionInfo(ctx, index)
	if err != nil {
		return nil, wrapError(fmt.Sprintf("get collection '%s'", index), err)
	}
	size, _ := extractVectorDetails(info)
	return &vectordb.IndexInfo{
		Name:      index,
		Dimension: size,
		Count:     int(derefUint64(info.PointsCount)),
	}, nil
}

// Close closes the underlying client.
func (a *Adapter) Close() error {
	return a.client.Close()
}

// wrapError maps gRPC failures onto the vectordb error taxonomy.
func wrapError(op string, err error) error {
	if status.Code(err) == codes.NotFound {
		return fmt.Errorf("%w: [Qdrant] %s: %w", vectordb.ErrIndexNotFound, op, err)
	}
	if status.Code(err) == codes.AlreadyExists {
		return fmt.Errorf("%w: [Qdrant] %s: %w", vectordb.ErrIndexExists, op, err)
	}
	return fmt.Errorf("%w: [Qdrant] %s: %w", vectordb.ErrVectorStore, op, err)
}
