// Package gemini suggests transaction categories with the Google Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/genai"
)

// ModelName is the Gemini model used for categorization.
const ModelName = "gemini-2.5-flash"

const defaultTimeout = 10 * time.Second

// ErrNotConfigured is returned when the client has no generator.
var ErrNotConfigured = errors.New("gemini client not initialized")

// ContentGenerator is the part of the genai API the client calls.
// Tests substitute a fake.
type ContentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

type modelsAdapter struct {
	models *genai.Models
}

func (m *modelsAdapter) GenerateContent(
	ctx context.Context,
	model string,
	contents []*genai.Content,
	config *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {
	resp, err := m.models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("genai.GenerateContent: %w", err)
	}
	return resp, nil
}

// Client calls Gemini for category suggestions.
type Client struct {
	generator ContentGenerator
	timeout   time.Duration
}

// NewClient creates a Client for the Gemini API backend.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return NewClientWithGenerator(&modelsAdapter{models: client.Models}), nil
}

// NewClientWithGenerator creates a Client around any ContentGenerator.
func NewClientWithGenerator(generator ContentGenerator) *Client {
	return &Client{generator: generator, timeout: defaultTimeout}
}
