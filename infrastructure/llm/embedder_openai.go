package llm

import (
	"context"
	"errors"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/nkatyal/resume-relevance/internal/ports"
)

// OpenAIDefaultEmbeddingModel is the default embedding model.
const OpenAIDefaultEmbeddingModel = "text-embedding-3-small"

// openAIEmbeddingDimensions maps known embedding models to their vector
// lengths, used for the advisory Dimensions answer.
var openAIEmbeddingDimensions = map[string]int{
	"text-embedding-3-small": 1536,
	"text-embedding-3-large": 3072,
	"text-embedding-ada-002": 1536,
}

// OpenAIEmbedder implements ports.Embedder over OpenAI's embeddings
// API. It backs the semantic scorer's primary path.
type OpenAIEmbedder struct {
	client     *openai.Client
	model      string
	classifier *ErrorClassifier
}

var _ ports.Embedder = (*OpenAIEmbedder)(nil)

// EmbedderConfig holds the configuration for creating an embedder.
type EmbedderConfig struct {
	// APIKey authenticates requests to the embedding service.
	APIKey string

	// Model selects the embedding model. Empty selects the default.
	Model string

	// BaseURL overrides the default API endpoint.
	BaseURL string

	// Timeout bounds individual HTTP requests.
	Timeout time.Duration
}

// NewOpenAIEmbedder creates an embedding client for OpenAI's API.
func NewOpenAIEmbedder(config EmbedderConfig) (*OpenAIEmbedder, error) {
	if config.APIKey == "" {
		return nil, ErrEmptyAPIKey
	}

	model := config.Model
	if model == "" {
		model = OpenAIDefaultEmbeddingModel
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}
	if config.Timeout > 0 {
		clientConfig.HTTPClient = &http.Client{Timeout: config.Timeout}
	}

	return &OpenAIEmbedder{
		client:     openai.NewClientWithConfig(clientConfig),
		model:      model,
		classifier: &ErrorClassifier{Provider: "openai-embeddings"},
	}, nil
}

// Embed converts text into a fixed-length vector. Failures are
// classified onto the ports sentinels so callers can degrade without
// inspecting provider details.
func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.EmbeddingModel(e.model),
	})
	if err != nil {
		return nil, e.handleError(err)
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, NewProviderError("openai-embeddings", ErrorTypeBadRequest, 0,
			"response contained no embedding", ErrEmptyResponse)
	}

	raw := resp.Data[0].Embedding
	vector := make([]float64, len(raw))
	for i, v := range raw {
		vector[i] = float64(v)
	}
	return vector, nil
}

// Dimensions returns the vector length for the configured model, or
// zero when the model is unknown.
func (e *OpenAIEmbedder) Dimensions() int {
	return openAIEmbeddingDimensions[e.model]
}

func (e *OpenAIEmbedder) handleError(err error) error {
	if isContextError(err) {
		return e.classifier.ClassifyContextError(err)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		message := apiErr.Message
		if message == "" {
			message = "unknown error"
		}
		return e.classifier.ClassifyHTTPError(apiErr.HTTPStatusCode, message, err)
	}

	return NewProviderError("openai-embeddings", ErrorTypeUnknown, 0, "request failed", err)
}
