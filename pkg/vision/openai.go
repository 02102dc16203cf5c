package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Analyzer calls an OpenAI-compatible chat completions API with an image URL
// and returns the model's skin/pigment assessment text.
type Analyzer struct {
	BaseURL string
	APIKey  string
	Model   string
	client  *http.Client
}

func NewAnalyzer(baseURL, apiKey, model string) *Analyzer {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &Analyzer{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   model,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

const analysisPrompt = "You are assisting a permanent-makeup artist. Assess the skin in this photo: " +
	"Fitzpatrick type, undertone (cool/neutral/warm), and visible conditions relevant to pigment retention. " +
	"Recommend pigment families and note any contraindications. Keep it under 200 words."

type chatMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// AnalyzeSkin submits the photo URL and returns the assessment text.
func (a *Analyzer) AnalyzeSkin(ctx context.Context, photoURL string) (string, error) {
	if a.APIKey == "" {
		return "", fmt.Errorf("vision: API key not configured")
	}
	body, _ := json.Marshal(chatRequest{
		Model: a.Model,
		Messages: []chatMessage{{
			Role: "user",
			Content: []contentPart{
				{Type: "text", Text: analysisPrompt},
				{Type: "image_url", ImageURL: &imageURL{URL: photoURL}},
			},
		}},
		MaxTokens: 400,
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.APIKey)
	resp, err := a.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	var out chatResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("vision: bad response: %w", err)
	}
	if out.Error != nil {
		return "", fmt.Errorf("vision: %s", out.Error.Message)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("vision: empty response (status %d)", resp.StatusCode)
	}
	return out.Choices[0].Message.Content, nil
}
