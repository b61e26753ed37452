package ai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"google.golang.org/genai"
)

// Model names used per use case
const (
	ModelFlash = "gemini-3-flash-preview"
	ModelPro   = "gemini-3-pro-preview"
	ModelImage = "gemini-3-pro-image-preview"
	ModelVideo = "veo-3.1-fast-generate-preview"
)

// Request is one prompt sent to a generative model.
type Request struct {
	Model  string
	Prompt string
	// Schema, when set, asks for a JSON response shaped like it.
	Schema *genai.Schema
	// Search grounds the answer with web search.
	Search bool
}

// Response carries the model text plus any web sources it was grounded on.
type Response struct {
	Text    string
	Sources []string
}

type ImageRequest struct {
	Prompt      string
	AspectRatio string // "1:1", "16:9", ...
	ImageSize   string // "1K", "2K", "4K"
}

// Model is the generative backend the gateway talks to.
type Model interface {
	Generate(ctx context.Context, req Request) (Response, error)
	GenerateImage(ctx context.Context, req ImageRequest) (string, error)
	GenerateVideo(ctx context.Context, prompt, aspectRatio string) (string, error)
}

var ErrNoImage = errors.New("no image generated")

// GenAIModel implements Model on the Gemini API.
type GenAIModel struct {
	client       *genai.Client
	pollInterval time.Duration
}

func NewGenAIModel(ctx context.Context, apiKey string) (*GenAIModel, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	return newGenAIModel(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
}

func newGenAIModel(ctx context.Context, cfg *genai.ClientConfig) (*GenAIModel, error) {
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &GenAIModel{client: client, pollInterval: 10 * time.Second}, nil
}

func (m *GenAIModel) Generate(ctx context.Context, req Request) (Response, error) {
	cfg := &genai.GenerateContentConfig{}
	if req.Schema != nil {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = req.Schema
	}
	if req.Search {
		cfg.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}

	result, err := m.client.Models.GenerateContent(ctx, req.Model, genai.Text(req.Prompt), cfg)
	if err != nil {
		return Response{}, err
	}

	resp := Response{Text: result.Text()}
	if len(result.Candidates) > 0 && result.Candidates[0].GroundingMetadata != nil {
		for _, chunk := range result.Candidates[0].GroundingMetadata.GroundingChunks {
			if chunk != nil && chunk.Web != nil && chunk.Web.URI != "" {
				resp.Sources = append(resp.Sources, chunk.Web.URI)
			}
		}
	}
	return resp, nil
}

// GenerateImage returns the first inline image as a data URI.
func (m *GenAIModel) GenerateImage(ctx context.Context, req ImageRequest) (string, error) {
	cfg := &genai.GenerateContentConfig{
		ImageConfig: &genai.ImageConfig{
			AspectRatio: req.AspectRatio,
			ImageSize:   req.ImageSize,
		},
	}
	result, err := m.client.Models.GenerateContent(ctx, ModelImage, genai.Text(req.Prompt), cfg)
	if err != nil {
		return "", err
	}
	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return "", ErrNoImage
	}
	for _, part := range result.Candidates[0].Content.Parts {
		if part != nil && part.InlineData != nil {
			return "data:image/png;base64," + base64.StdEncoding.EncodeToString(part.InlineData.Data), nil
		}
	}
	return "", ErrNoImage
}

// GenerateVideo starts a video job and polls until it finishes. The returned
// URI is the bare file location; fetching it needs the API key, which never
// leaves the server.
func (m *GenAIModel) GenerateVideo(ctx context.Context, prompt, aspectRatio string) (string, error) {
	op, err := m.client.Models.GenerateVideos(ctx, ModelVideo, prompt, nil, &genai.GenerateVideosConfig{
		NumberOfVideos: 1,
		Resolution:     "720p",
		AspectRatio:    aspectRatio,
	})
	if err != nil {
		return "", err
	}

	for !op.Done {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(m.pollInterval):
		}
		op, err = m.client.Operations.GetVideosOperation(ctx, op, nil)
		if err != nil {
			return "", err
		}
	}

	if op.Response == nil || len(op.Response.GeneratedVideos) == 0 || op.Response.GeneratedVideos[0].Video == nil {
		return "", errors.New("no video generated")
	}
	return op.Response.GeneratedVideos[0].Video.URI, nil
}
