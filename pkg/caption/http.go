package caption

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTPCaptioner calls a hosted image-captioning endpoint. The endpoint
// receives the photo as base64 (or a data URL) and answers with one or more
// records carrying a generated_text field.
type HTTPCaptioner struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewHTTPCaptioner builds a captioner for the given endpoint. The API key is
// required: without a credential every Caption call fails with ErrUnavailable
// before any network I/O.
func NewHTTPCaptioner(endpoint, apiKey string, timeout time.Duration) *HTTPCaptioner {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &HTTPCaptioner{
		endpoint: strings.TrimRight(endpoint, "/"),
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
	}
}

type captionRequest struct {
	Image string `json:"image"`
}

type captionRecord struct {
	GeneratedText string `json:"generated_text"`
}

// Caption sends the photo to the captioning endpoint and returns its text.
func (c *HTTPCaptioner) Caption(ctx context.Context, imageB64 string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("missing caption api key: %w", ErrUnavailable)
	}

	body, err := json.Marshal(captionRequest{Image: imageB64})
	if err != nil {
		return "", fmt.Errorf("marshal caption request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create caption request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("caption request failed: %w", ErrUnavailable)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read caption response: %w", ErrUnavailable)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("caption endpoint status %d: %w", resp.StatusCode, ErrUnavailable)
	}

	text, ok := extractGeneratedText(respBody)
	if !ok {
		return "", fmt.Errorf("caption response missing generated_text: %w", ErrUnavailable)
	}
	return text, nil
}

// extractGeneratedText accepts both response shapes seen in the wild:
// a top-level array of records or a single record object.
func extractGeneratedText(body []byte) (string, bool) {
	var records []captionRecord
	if err := json.Unmarshal(body, &records); err == nil {
		for _, r := range records {
			if s := strings.TrimSpace(r.GeneratedText); s != "" {
				return s, true
			}
		}
		return "", false
	}

	var record captionRecord
	if err := json.Unmarshal(body, &record); err == nil {
		if s := strings.TrimSpace(record.GeneratedText); s != "" {
			return s, true
		}
	}
	return "", false
}
