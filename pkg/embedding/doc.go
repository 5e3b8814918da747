// Package embedding converts text into fixed-dimension vectors by calling a remote
// embedding service.
//
// Two providers are available:
//
//   - ollama: POST {endpoint}/api/embed with {"model", "input"} and reads
//     {"embeddings"}; one request for the whole batch
//   - openai: any OpenAI compatible /embeddings endpoint, through openai-go
//
// Client.Embed preserves input order and count and checks every vector against the
// configured dimension (768 by default). Failures wrap ErrEmbeddingService and are
// never retried. Nothing is cached: every call re-embeds.
//
// Example:
//
//	client, err := embedding.NewClient(embedding.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	vectors, err := client.Embed(ctx, []string{"senior go engineer", "remote"})
package embedding
