package predict

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
)

// suggestRequest is the wire format the model service expects
type suggestRequest struct {
	Text string `json:"text"`
}

// suggestResponse is the wire format the model service returns
type suggestResponse struct {
	Suggestions []string `json:"suggestions"`
}

// Client talks to the prediction service over HTTP.
// One POST per Suggest call, no retries: a superseded request is replaced
// by the next debounced trigger rather than retried.
type Client struct {
	url    string
	client *http.Client
	log    *log.Logger
}

// NewClient creates a prediction service client for the given endpoint URL
func NewClient(url string, timeout time.Duration, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.Default()
	}
	return &Client{
		url:    url,
		client: &http.Client{Timeout: timeout},
		log:    logger,
	}
}

// Suggest sends the current text snapshot and returns ranked candidates.
// A non-2xx status degrades to an empty list with no error: missing
// suggestions are a safe state and the caller keeps running. Transport
// failures are returned so the session can flash its error status.
func (c *Client) Suggest(ctx context.Context, text string, limit int) ([]Suggestion, error) {
	body, err := json.Marshal(suggestRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("encoding suggest request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building suggest request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("prediction service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Debugf("Service returned %d for %q, treating as no suggestions", resp.StatusCode, text)
		io.Copy(io.Discard, resp.Body)
		return nil, nil
	}

	var decoded suggestResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		c.log.Debugf("Undecodable service response: %v, treating as no suggestions", err)
		return nil, nil
	}

	c.log.Debugf("Took [ %v ] for %d candidates", time.Since(start), len(decoded.Suggestions))

	if limit > 0 && len(decoded.Suggestions) > limit {
		decoded.Suggestions = decoded.Suggestions[:limit]
	}

	suggestions := make([]Suggestion, 0, len(decoded.Suggestions))
	for _, word := range decoded.Suggestions {
		if word == "" {
			continue
		}
		suggestions = append(suggestions, Suggestion{Word: word, Rank: len(suggestions) + 1})
	}
	return suggestions, nil
}
