package imagegen

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used for image output
const DefaultModel = "gemini-2.5-flash-image"

// Gemini generates images with the Google Gemini API
type Gemini struct {
	apiKey string
	model  string
}

// NewGemini returns a Gemini generator. An empty model selects DefaultModel.
func NewGemini(apiKey, model string) (*Gemini, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrNoAPIKey
	}
	if model == "" {
		model = DefaultModel
	}
	return &Gemini{apiKey: apiKey, model: model}, nil
}

// Model returns the configured model name
func (g *Gemini) Model() string {
	return g.model
}

// Generate sends the prompt and returns the first inline image in the response
func (g *Gemini) Generate(ctx context.Context, req Request) (*Image, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	resp, err := client.Models.GenerateContent(ctx, g.model, genai.Text(strings.TrimSpace(req.Prompt)), generateConfig(req))
	if err != nil {
		return nil, fmt.Errorf("failed to generate image: %w", err)
	}

	return imageFromResponse(resp)
}

// responseModalityImage asks the model for image output only
const responseModalityImage = "IMAGE"

func generateConfig(req Request) *genai.GenerateContentConfig {
	aspect := req.AspectRatio
	if aspect == "" {
		aspect = AspectPortrait
	}
	return &genai.GenerateContentConfig{
		ResponseModalities: []string{responseModalityImage},
		ImageConfig:        &genai.ImageConfig{AspectRatio: aspect},
	}
}

// imageFromResponse extracts the first non-empty inline data part
func imageFromResponse(resp *genai.GenerateContentResponse) (*Image, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, ErrEmptyResult
	}

	candidate := resp.Candidates[0]
	if candidate == nil || candidate.Content == nil {
		return nil, ErrEmptyResult
	}

	for _, part := range candidate.Content.Parts {
		if part == nil || part.InlineData == nil || len(part.InlineData.Data) == 0 {
			continue
		}
		mimeType := part.InlineData.MIMEType
		if mimeType == "" {
			mimeType = DefaultMIMEType
		}
		return &Image{Data: part.InlineData.Data, MIMEType: mimeType}, nil
	}

	return nil, ErrEmptyResult
}
