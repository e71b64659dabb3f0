package classifier

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

const (
	DefaultEndpoint = "https://api-inference.huggingface.co"

	SentimentModel = "cardiffnlp/twitter-roberta-base-sentiment-latest"
	TopicModel     = "facebook/bart-large-mnli"

	defaultTimeout = 20 * time.Second
)

// Client talks to a hosted inference API exposing pretrained sentiment and
// zero-shot classification models. The models themselves are black boxes;
// this client only shapes requests and normalizes responses.
type Client struct {
	endpoint string
	token    string
	http     *http.Client
}

var _ SentimentClassifier = (*Client)(nil)
var _ TopicClassifier = (*Client)(nil)

// NewClient creates a reusable inference client. endpoint may be empty, in
// which case the public inference API is used.
func NewClient(endpoint, token string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		token:    token,
		http:     &http.Client{Timeout: defaultTimeout},
	}
}

// ClassifySentiment returns the top polarity label for text, with the label
// lowercased to the pipeline's canonical positive/neutral/negative set.
func (c *Client) ClassifySentiment(ctx context.Context, text string) (SentimentResult, error) {
	payload := map[string]any{"inputs": text}

	// The API returns one ranked label list per input.
	var resp [][]struct {
		Label string  `json:"label"`
		Score float64 `json:"score"`
	}
	if err := c.post(ctx, SentimentModel, payload, &resp); err != nil {
		return SentimentResult{}, err
	}

	if len(resp) == 0 || len(resp[0]) == 0 {
		return SentimentResult{}, fmt.Errorf("empty sentiment response")
	}

	top := resp[0][0]
	for _, candidate := range resp[0][1:] {
		if candidate.Score > top.Score {
			top = candidate
		}
	}

	return SentimentResult{Label: strings.ToLower(top.Label), Score: top.Score}, nil
}

// ClassifyTopic runs zero-shot classification of text against the candidate
// labels and returns the full ranking, best first.
func (c *Client) ClassifyTopic(ctx context.Context, text string, labels []string, hypothesisTemplate string) ([]TopicScore, error) {
	if len(labels) == 0 {
		return nil, fmt.Errorf("no candidate labels provided")
	}

	payload := map[string]any{
		"inputs": text,
		"parameters": map[string]any{
			"candidate_labels":    labels,
			"hypothesis_template": hypothesisTemplate,
		},
	}

	var resp struct {
		Labels []string  `json:"labels"`
		Scores []float64 `json:"scores"`
	}
	if err := c.post(ctx, TopicModel, payload, &resp); err != nil {
		return nil, err
	}

	if len(resp.Labels) != len(labels) || len(resp.Scores) != len(resp.Labels) {
		return nil, fmt.Errorf("ranking does not cover candidate labels: got %d labels, %d scores",
			len(resp.Labels), len(resp.Scores))
	}

	ranked := make([]TopicScore, len(resp.Labels))
	for i := range resp.Labels {
		ranked[i] = TopicScore{Label: resp.Labels[i], Score: resp.Scores[i]}
	}
	return ranked, nil
}

func (c *Client) post(ctx context.Context, model string, payload any, v any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s", c.endpoint, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("inference API returned %s: %s", resp.Status, strings.TrimSpace(string(snippet)))
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
