// Package narrative is the client for the narrative-generator model service,
// which turns a transcript into a structured clinical summary. Generation is
// a black box here; the client only carries the text and scrubs the decoding
// artifacts the generator is known to leak.
package narrative

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/clinscribe-ai/platform/pkg/common/config"
	"github.com/clinscribe-ai/platform/pkg/common/httpclient"
)

type Client struct {
	baseURL  string
	model    string
	httpc    *http.Client
	attempts int
}

func NewClient(cfg *config.Config) *Client {
	var httpc *http.Client
	if cfg.ModelAPIClientID != "" && cfg.ModelAPITokenURL != "" {
		httpc = httpclient.NewWithClientCredentials(
			cfg.ModelRequestTimeout,
			cfg.ModelAPITokenURL,
			cfg.ModelAPIClientID,
			cfg.ModelAPIClientSecret,
		)
	} else {
		httpc = httpclient.New(cfg.ModelRequestTimeout)
	}

	attempts := cfg.ModelRetryAttempts
	if attempts <= 0 {
		attempts = 1
	}

	return &Client{
		baseURL:  cfg.NarrativeBaseURL,
		model:    cfg.NarrativeModelName,
		httpc:    httpc,
		attempts: attempts,
	}
}

type generateRequest struct {
	Model      string `json:"model"`
	Transcript string `json:"transcript"`
}

type generateResponse struct {
	Narrative string `json:"narrative"`
}

// Generate produces one structured narrative for the transcript, cleaned of
// generation artifacts. The heading convention of the result is best-effort;
// callers parse it with pkg/summary.
func (c *Client) Generate(ctx context.Context, transcript string) (string, error) {
	body, err := json.Marshal(generateRequest{Model: c.model, Transcript: transcript})
	if err != nil {
		return "", fmt.Errorf("marshaling generate request: %w", err)
	}

	var narrative string
	err = httpclient.Retry(ctx, c.attempts, time.Second, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost,
			c.baseURL+"/v1/generate", bytes.NewReader(body))
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
			err := fmt.Errorf("narrative service returned %d: %s", resp.StatusCode, payload)
			if resp.StatusCode >= http.StatusInternalServerError {
				return httpclient.Retriable(err)
			}
			return err
		}

		var decoded generateResponse
		if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
			return fmt.Errorf("decoding generate response: %w", err)
		}
		narrative = decoded.Narrative
		return nil
	})
	if err != nil {
		return "", err
	}

	return Sanitize(narrative), nil
}

var (
	nonASCII     = regexp.MustCompile(`[^\x00-\x7F]+`)
	unusedTokens = regexp.MustCompile(`<unused\d+>`)
	thinkBlocks  = regexp.MustCompile(`(?s)<think>.*?</think>`)
	markupTags   = regexp.MustCompile(`<[^>]+>`)
	chiefHeading = regexp.MustCompile(`\*\*CHI?EF`)
)

// Sanitize strips multilingual token bleed and special-token residue from
// generated text, then repairs the opening heading: the generator sometimes
// emits the whole summary twice or misspells CHIEF COMPLAINT.
func Sanitize(text string) string {
	text = nonASCII.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "<end_of_turn>", "")
	text = strings.ReplaceAll(text, "<start_of_turn>", "")
	text = unusedTokens.ReplaceAllString(text, "")
	text = thinkBlocks.ReplaceAllString(text, "")
	text = markupTags.ReplaceAllString(text, "")

	// Keep only the first copy when the heading repeats.
	if strings.Count(text, "**CHIEF") > 1 {
		if parts := chiefHeading.Split(text, -1); len(parts) > 1 {
			text = "**CHIEF" + parts[1]
		}
	}
	text = strings.ReplaceAll(text, "**CHIEFT COMPLAINTS", "**CHIEF COMPLAINT")
	text = strings.ReplaceAll(text, "**CHEF COMPLAINS", "**CHIEF COMPLAINT")

	return strings.TrimSpace(text)
}
