package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/milvus-io/milvus-sdk-go/v2/client"
	"github.com/milvus-io/milvus-sdk-go/v2/entity"

	"github.com/hawker-labs/hawker/internal/summary"
)

// Common errors for Milvus operations
var (
	ErrInvalidDimension = errors.New("invalid vector dimension")
	ErrEmptyRecords     = errors.New("no records provided for insertion")
	ErrInvalidRecord    = errors.New("record missing ASIN")
	ErrEmptyQuery       = errors.New("query cannot be empty")
	ErrConnectionFailed = errors.New("failed to connect to Milvus")
	ErrInsertFailed     = errors.New("failed to insert records")
	ErrSearchFailed     = errors.New("hybrid search failed")
)

// Collection field names. The five text fields mirror the product record;
// vector and keywords carry the dense and sparse representations.
const (
	fieldASIN          = "asin"
	fieldName          = "name"
	fieldDescription   = "description"
	fieldReviewSummary = "review_summary"
	fieldFeatures      = "features"
	fieldVector        = "vector"
	fieldKeywords      = "keywords"
)

// MilvusStore persists product records and serves hybrid search over them.
type MilvusStore struct {
	client   client.Client
	embedder Embedder
	sparse   *SparseEncoder
	config   MilvusConfig
}

// NewMilvusStore connects to Milvus and ensures the product collection
// exists with its dense and sparse indexes.
func NewMilvusStore(ctx context.Context, config MilvusConfig, embedder Embedder) (*MilvusStore, error) {
	if config.Dimension <= 0 {
		return nil, ErrInvalidDimension
	}
	if embedder == nil {
		return nil, fmt.Errorf("embedder cannot be nil")
	}
	if embedder.GetDimension() != config.Dimension {
		return nil, fmt.Errorf("%w: embedder produces %d, collection expects %d",
			ErrInvalidDimension, embedder.GetDimension(), config.Dimension)
	}

	c, err := client.NewClient(ctx, client.Config{
		Address: config.Address,
		APIKey:  config.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}

	store := &MilvusStore{
		client:   c,
		embedder: embedder,
		sparse:   NewSparseEncoder(),
		config:   config,
	}

	// Create collection if it doesn't exist
	if err := store.ensureCollection(ctx); err != nil {
		c.Close()
		return nil, err
	}

	return store, nil
}

// Collection returns the name of the backing collection.
func (m *MilvusStore) Collection() string {
	return m.config.CollectionName
}

// ensureCollection creates the collection with schema if it doesn't exist
func (m *MilvusStore) ensureCollection(ctx context.Context) error {
	has, err := m.client.HasCollection(ctx, m.config.CollectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection existence: %w", err)
	}

	if has {
		return nil // Collection already exists
	}

	schema := &entity.Schema{
		CollectionName: m.config.CollectionName,
		AutoID:         true,
		Fields: []*entity.Field{
			{
				Name:       "id",
				DataType:   entity.FieldTypeInt64,
				PrimaryKey: true,
				AutoID:     true,
			},
			{
				Name:     fieldASIN,
				DataType: entity.FieldTypeVarChar,
				TypeParams: map[string]string{
					"max_length": "64",
				},
			},
			{
				Name:     fieldName,
				DataType: entity.FieldTypeVarChar,
				TypeParams: map[string]string{
					"max_length": "1024",
				},
			},
			{
				Name:     fieldDescription,
				DataType: entity.FieldTypeVarChar,
				TypeParams: map[string]string{
					"max_length": "65535",
				},
			},
			{
				Name:     fieldReviewSummary,
				DataType: entity.FieldTypeVarChar,
				TypeParams: map[string]string{
					"max_length": "65535",
				},
			},
			{
				Name:     fieldFeatures,
				DataType: entity.FieldTypeVarChar,
				TypeParams: map[string]string{
					"max_length": "65535",
				},
			},
			{
				Name:     fieldVector,
				DataType: entity.FieldTypeFloatVector,
				TypeParams: map[string]string{
					"dim": fmt.Sprintf("%d", m.config.Dimension),
				},
			},
			{
				Name:     fieldKeywords,
				DataType: entity.FieldTypeSparseVector,
			},
		},
	}

	if err := m.client.CreateCollection(ctx, schema, entity.DefaultShardNumber); err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	// Dense index for vector similarity
	denseIdx, err := entity.NewIndexHNSW(entity.COSINE, m.config.M, m.config.EfConstruction)
	if err != nil {
		return fmt.Errorf("failed to create index config: %w", err)
	}
	if err := m.client.CreateIndex(ctx, m.config.CollectionName, fieldVector, denseIdx, false); err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}

	// Sparse index for keyword scoring
	sparseIdx, err := entity.NewIndexSparseInverted(entity.IP, m.config.DropRatio)
	if err != nil {
		return fmt.Errorf("failed to create sparse index config: %w", err)
	}
	if err := m.client.CreateIndex(ctx, m.config.CollectionName, fieldKeywords, sparseIdx, false); err != nil {
		return fmt.Errorf("failed to create sparse index: %w", err)
	}

	// Load collection into memory
	if err := m.client.LoadCollection(ctx, m.config.CollectionName, false); err != nil {
		return fmt.Errorf("failed to load collection: %w", err)
	}

	return nil
}

// Insert persists the records in a single insert-many call followed by a
// flush. Records are not deduplicated: re-inserting the same ASIN creates a
// duplicate entry.
func (m *MilvusStore) Insert(ctx context.Context, records []summary.ProductRecord) error {
	if len(records) == 0 {
		return ErrEmptyRecords
	}

	asins := make([]string, len(records))
	names := make([]string, len(records))
	descriptions := make([]string, len(records))
	summaries := make([]string, len(records))
	features := make([]string, len(records))
	texts := make([]string, len(records))

	for i, record := range records {
		if record.ASIN == "" {
			return fmt.Errorf("%w: record %d", ErrInvalidRecord, i)
		}
		asins[i] = record.ASIN
		names[i] = record.Name
		descriptions[i] = record.Description
		summaries[i] = record.ReviewSummary
		features[i] = record.Features
		texts[i] = documentText(record)
	}

	vectors, err := m.embedder.Embed(ctx, texts)
	if err != nil {
		return err
	}

	sparseVectors := make([]entity.SparseEmbedding, len(records))
	for i, text := range texts {
		positions, values := m.sparse.Encode(text)
		embedding, err := entity.NewSliceSparseEmbedding(positions, values)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInsertFailed, err)
		}
		sparseVectors[i] = embedding
	}

	columns := []entity.Column{
		entity.NewColumnVarChar(fieldASIN, asins),
		entity.NewColumnVarChar(fieldName, names),
		entity.NewColumnVarChar(fieldDescription, descriptions),
		entity.NewColumnVarChar(fieldReviewSummary, summaries),
		entity.NewColumnVarChar(fieldFeatures, features),
		entity.NewColumnFloatVector(fieldVector, m.config.Dimension, vectors),
		entity.NewColumnSparseVectors(fieldKeywords, sparseVectors),
	}

	if _, err := m.client.Insert(ctx, m.config.CollectionName, "", columns...); err != nil {
		return fmt.Errorf("%w: %v", ErrInsertFailed, err)
	}

	// Flush to ensure data is persisted
	if err := m.client.Flush(ctx, m.config.CollectionName, false); err != nil {
		return fmt.Errorf("failed to flush data: %w", err)
	}

	return nil
}

// HybridSearch embeds the query both densely and sparsely, runs the two ANN
// sub-requests, and returns up to limit matches ranked by the server's
// reciprocal-rank fusion.
func (m *MilvusStore) HybridSearch(ctx context.Context, query string, limit int) ([]Match, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}

	vectors, err := m.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("%w: no embedding generated for query", ErrSearchFailed)
	}

	positions, values := m.sparse.Encode(query)
	sparseVector, err := entity.NewSliceSparseEmbedding(positions, values)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}

	denseParam, err := entity.NewIndexHNSWSearchParam(m.config.Ef)
	if err != nil {
		return nil, fmt.Errorf("failed to create search params: %w", err)
	}
	sparseParam, err := entity.NewIndexSparseInvertedSearchParam(0)
	if err != nil {
		return nil, fmt.Errorf("failed to create search params: %w", err)
	}

	subRequests := []*client.ANNSearchRequest{
		client.NewANNSearchRequest(fieldVector, entity.COSINE, "",
			[]entity.Vector{entity.FloatVector(vectors[0])}, denseParam, limit),
		client.NewANNSearchRequest(fieldKeywords, entity.IP, "",
			[]entity.Vector{sparseVector}, sparseParam, limit),
	}

	outputFields := []string{fieldASIN, fieldName, fieldDescription, fieldReviewSummary, fieldFeatures}

	results, err := m.client.HybridSearch(
		ctx,
		m.config.CollectionName,
		nil, // partition names
		limit,
		outputFields,
		client.NewRRFReranker(),
		subRequests,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}

	if len(results) == 0 {
		return []Match{}, nil
	}

	matches := make([]Match, 0, results[0].ResultCount)
	for i := 0; i < results[0].ResultCount; i++ {
		match := Match{
			Score: results[0].Scores[i],
		}

		for _, field := range results[0].Fields {
			switch field.Name() {
			case fieldASIN:
				match.ASIN = field.(*entity.ColumnVarChar).Data()[i]
			case fieldName:
				match.Name = field.(*entity.ColumnVarChar).Data()[i]
			case fieldDescription:
				match.Description = field.(*entity.ColumnVarChar).Data()[i]
			case fieldReviewSummary:
				match.ReviewSummary = field.(*entity.ColumnVarChar).Data()[i]
			case fieldFeatures:
				match.Features = field.(*entity.ColumnVarChar).Data()[i]
			}
		}

		matches = append(matches, match)
	}

	return matches, nil
}

// Stats returns the collection statistics reported by Milvus.
func (m *MilvusStore) Stats(ctx context.Context) (map[string]string, error) {
	stats, err := m.client.GetCollectionStatistics(ctx, m.config.CollectionName)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}
	return stats, nil
}

// Recreate drops the collection if present and rebuilds it empty.
func (m *MilvusStore) Recreate(ctx context.Context) error {
	has, err := m.client.HasCollection(ctx, m.config.CollectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection existence: %w", err)
	}
	if has {
		if err := m.client.DropCollection(ctx, m.config.CollectionName); err != nil {
			return fmt.Errorf("failed to drop collection: %w", err)
		}
	}
	return m.ensureCollection(ctx)
}

// Close releases resources and closes the Milvus connection
func (m *MilvusStore) Close() error {
	if m.client != nil {
		return m.client.Close()
	}
	return nil
}

// documentText is the text the store embeds for a record: all five product
// fields, newline-joined.
func documentText(record summary.ProductRecord) string {
	return strings.Join([]string{
		record.ASIN,
		record.Name,
		record.Description,
		record.ReviewSummary,
		record.Features,
	}, "\n")
}
