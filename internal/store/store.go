// Package store persists product records in Milvus and retrieves them by
// hybrid search: dense vector similarity fused with sparse keyword scoring by
// the server's reciprocal-rank reranker. Dense embeddings come from a
// pluggable Embedder; sparse keyword vectors are hashed term frequencies
// computed in-process.
package store

// Match is a single hybrid-search hit with the store's fused relevance score.
type Match struct {
	ASIN          string  `json:"asin"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	ReviewSummary string  `json:"review_summary"`
	Features      string  `json:"features"`
	Score         float32 `json:"score"`
}

// MilvusConfig holds configuration for the Milvus connection and collection.
type MilvusConfig struct {
	Address        string // Milvus server address (e.g., "localhost:19530")
	APIKey         string // API key for hosted deployments (empty for local)
	CollectionName string // Name of the collection
	Dimension      int    // Dense vector dimension

	// HNSW index parameters
	M              int // HNSW M parameter (default: 16)
	EfConstruction int // HNSW efConstruction (default: 256)
	Ef             int // HNSW search width (default: 64)

	// DropRatio is the sparse index build drop ratio (default: 0.2).
	DropRatio float64
}

// DefaultMilvusConfig returns defaults matching text-embedding-3-small.
func DefaultMilvusConfig() MilvusConfig {
	return MilvusConfig{
		Address:        "localhost:19530",
		CollectionName: "hawker_products",
		Dimension:      1536,
		M:              16,
		EfConstruction: 256,
		Ef:             64,
		DropRatio:      0.2,
	}
}
