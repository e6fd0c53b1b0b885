package embedding

import "context"

// Provider generates text embeddings for the semantic relevance ordering.
type Provider interface {
	Generate(ctx context.Context, text string) ([]float32, error)
}
