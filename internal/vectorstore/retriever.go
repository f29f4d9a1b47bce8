package vectorstore

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/embeddings"

	"chattube/internal/models"
)

// Retriever binds the question embedding model to one Index with a fixed
// top-k policy. It is never re-pointed at another index, which guarantees
// questions and passages share one embedding model.
type Retriever struct {
	index    *Index
	embedder embeddings.Embedder
	k        int
}

func NewRetriever(index *Index, embedder embeddings.Embedder) *Retriever {
	return &Retriever{index: index, embedder: embedder, k: models.TopK}
}

// Retrieve embeds the question and returns the top-k most similar passages.
func (r *Retriever) Retrieve(ctx context.Context, question string) ([]models.Passage, error) {
	vector, err := r.embedder.EmbedQuery(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("failed to embed question: %w", err)
	}
	return r.index.Query(ctx, vector, r.k)
}
