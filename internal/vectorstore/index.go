package vectorstore

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"github.com/google/uuid"
	"github.com/philippgille/chromem-go"
	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/embeddings"

	"chattube/internal/models"
)

const collectionName = "passages"

// Index is an in-memory vector index over the passages of exactly one
// transcript. It is immutable once built; a new ingestion builds a new Index
// and discards the old one wholesale.
type Index struct {
	collection *chromem.Collection
	passages   map[string]models.Passage // by document ID
	count      int
}

// Build embeds every passage and stores the vectors in a fresh in-memory
// collection. Building is all-or-nothing: any embedding failure returns an
// error and no index.
func Build(ctx context.Context, embedder embeddings.Embedder, passages []models.Passage) (*Index, error) {
	if len(passages) == 0 {
		return nil, fmt.Errorf("no passages to index")
	}

	texts := make([]string, len(passages))
	for i, p := range passages {
		texts[i] = p.Content
	}

	vectors, err := embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("failed to embed passages: %w", err)
	}
	if len(vectors) != len(passages) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d passages", len(vectors), len(passages))
	}

	db := chromem.NewDB()
	collection, err := db.GetOrCreateCollection(collectionName, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create collection: %v", err)
	}

	docs := make([]chromem.Document, len(passages))
	byID := make(map[string]models.Passage, len(passages))
	for i, p := range passages {
		id := uuid.NewString()
		docs[i] = chromem.Document{
			ID:        id,
			Content:   p.Content,
			Embedding: vectors[i],
		}
		byID[id] = p
	}
	if err := collection.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return nil, fmt.Errorf("failed to add documents: %v", err)
	}

	log.Info().Int("passages", len(passages)).Msg("Built vector index")
	return &Index{collection: collection, passages: byID, count: len(passages)}, nil
}

// Len returns the number of indexed passages.
func (idx *Index) Len() int {
	return idx.count
}

// Query returns the k passages nearest to queryVector under cosine
// similarity, nearest first. Equal similarities fall back to insertion
// order, earliest passage first. k is clamped to the index size.
//
// The whole index is scanned and ranked before cutting to k, otherwise the
// store could drop the earliest passage of a tie straddling the k boundary.
func (idx *Index) Query(ctx context.Context, queryVector []float32, k int) ([]models.Passage, error) {
	if k > idx.count {
		k = idx.count
	}
	if k <= 0 {
		return nil, fmt.Errorf("index holds no passages")
	}

	results, err := idx.collection.QueryWithOptions(ctx, chromem.QueryOptions{
		QueryEmbedding: queryVector,
		NResults:       idx.count,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query by similarity: %v", err)
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Similarity != results[j].Similarity {
			return results[i].Similarity > results[j].Similarity
		}
		return idx.passages[results[i].ID].ChunkID < idx.passages[results[j].ID].ChunkID
	})
	if len(results) > k {
		results = results[:k]
	}

	passages := make([]models.Passage, 0, len(results))
	for _, r := range results {
		passages = append(passages, idx.passages[r.ID])
	}
	return passages, nil
}
