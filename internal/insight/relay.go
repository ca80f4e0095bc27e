package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// RelayPath is where a relay server accepts prompts.
const RelayPath = "/api/gemini"

// RelayRequest is the body accepted by the relay endpoint.
type RelayRequest struct {
	Prompt string `json:"prompt"`
}

// RelayResponse is the success body of the relay endpoint.
type RelayResponse struct {
	Text string `json:"text"`
}

type relayError struct {
	Error string `json:"error"`
}

// RelayClient forwards prompts to another instance's /api/gemini endpoint,
// so only that instance needs the API key.
type RelayClient struct {
	url    string
	client *http.Client
}

// NewRelayClient targets baseURL + RelayPath.
func NewRelayClient(baseURL string, httpClient *http.Client) *RelayClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &RelayClient{
		url:    strings.TrimRight(baseURL, "/") + RelayPath,
		client: httpClient,
	}
}

// Generate posts {prompt} and returns the trimmed text.
func (c *RelayClient) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(RelayRequest{Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("relay request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var re relayError
		if json.Unmarshal(respBody, &re) == nil && re.Error != "" {
			return "", fmt.Errorf("relay error (%d): %s", resp.StatusCode, re.Error)
		}
		return "", fmt.Errorf("relay error (%d)", resp.StatusCode)
	}

	var out RelayResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	return strings.TrimSpace(out.Text), nil
}
