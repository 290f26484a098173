// Package labeler is the client for the token-classification model service.
// The model itself (a biomedical NER transformer) runs behind an HTTP
// endpoint; this package only moves text in and spans out.
package labeler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/clinscribe-ai/platform/pkg/common/config"
	"github.com/clinscribe-ai/platform/pkg/common/httpclient"
	"github.com/clinscribe-ai/platform/pkg/common/models"
)

type Client struct {
	baseURL  string
	httpc    *http.Client
	attempts int
}

// NewClient builds a labeler client from service configuration. When OAuth2
// client credentials are configured the underlying transport injects bearer
// tokens for hosted model APIs; otherwise a plain tuned client is used.
func NewClient(cfg *config.Config) *Client {
	httpc := newModelClient(cfg)
	attempts := cfg.ModelRetryAttempts
	if attempts <= 0 {
		attempts = 1
	}
	return &Client{
		baseURL:  cfg.LabelerBaseURL,
		httpc:    httpc,
		attempts: attempts,
	}
}

type labelRequest struct {
	Text string `json:"text"`
}

type labelResponse struct {
	Spans []models.LabeledSpan `json:"spans"`
}

// Label sends the transcript to the model service and returns the recognized
// spans. Offsets in the response index the exact text that was sent.
func (c *Client) Label(ctx context.Context, text string) ([]models.LabeledSpan, error) {
	body, err := json.Marshal(labelRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("marshaling label request: %w", err)
	}

	var spans []models.LabeledSpan
	err = httpclient.Retry(ctx, c.attempts, 500*time.Millisecond, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost,
			c.baseURL+"/v1/token-classification", bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpc.Do(req)
		if err != nil {
			return httpclient.Retriable(err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			err := fmt.Errorf("labeler service returned %d: %s", resp.StatusCode, payload)
			if resp.StatusCode >= http.StatusInternalServerError {
				return httpclient.Retriable(err)
			}
			return err
		}

		var decoded labelResponse
		if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
			return fmt.Errorf("decoding label response: %w", err)
		}
		spans = decoded.Spans
		return nil
	})
	if err != nil {
		return nil, err
	}

	if spans == nil {
		spans = []models.LabeledSpan{}
	}
	return spans, nil
}

func newModelClient(cfg *config.Config) *http.Client {
	if cfg.ModelAPIClientID == "" || cfg.ModelAPITokenURL == "" {
		return httpclient.New(cfg.ModelRequestTimeout)
	}
	return httpclient.NewWithClientCredentials(
		cfg.ModelRequestTimeout,
		cfg.ModelAPITokenURL,
		cfg.ModelAPIClientID,
		cfg.ModelAPIClientSecret,
	)
}
