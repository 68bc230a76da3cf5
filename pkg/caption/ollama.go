package caption

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
)

// CaptionPrompt asks a vision model for a one-sentence photo description
// suited to keyword trait parsing.
const CaptionPrompt = `Describe the person in this photo in one short sentence.
Mention apparent age group, expression, hair color and style, eye color if
visible, and accessories like glasses or a beard. Plain text only.`

// OllamaCaptioner produces captions with a local Ollama vision model.
type OllamaCaptioner struct {
	client *api.Client
	model  string
}

// NewOllamaCaptioner creates a captioner backed by the Ollama server at
// ollamaURL. Any path component (like /api/chat) is ignored.
func NewOllamaCaptioner(ollamaURL, model string) (*OllamaCaptioner, error) {
	parsedURL, err := url.Parse(ollamaURL)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama URL: %w", err)
	}

	baseURL := &url.URL{
		Scheme: parsedURL.Scheme,
		Host:   parsedURL.Host,
	}

	return &OllamaCaptioner{
		client: api.NewClient(baseURL, http.DefaultClient),
		model:  model,
	}, nil
}

// Caption sends the photo to the vision model and returns its description.
func (c *OllamaCaptioner) Caption(ctx context.Context, imageB64 string) (string, error) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 300*time.Second)
		defer cancel()
	}

	imgBytes, err := base64.StdEncoding.DecodeString(imageB64)
	if err != nil {
		return "", fmt.Errorf("decode base64 image: %w", err)
	}

	streamFalse := false
	req := &api.ChatRequest{
		Model: c.model,
		Messages: []api.Message{
			{
				Role:    "user",
				Content: CaptionPrompt,
				Images:  []api.ImageData{api.ImageData(imgBytes)},
			},
		},
		Stream: &streamFalse,
	}

	var responseContent string
	err = c.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		responseContent = resp.Message.Content
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama chat error: %w", ErrUnavailable)
	}

	responseContent = strings.TrimSpace(responseContent)
	if responseContent == "" {
		return "", fmt.Errorf("empty response from ollama: %w", ErrUnavailable)
	}

	return responseContent, nil
}
