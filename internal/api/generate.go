package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	http "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"

	apierrors "github.com/diogo/geminichat/internal/errors"
	"github.com/diogo/geminichat/internal/models"
)

// error bodies are only read for diagnostics
const maxErrorBody = 4096

type requestPart struct {
	Text string `json:"text"`
}

type requestContent struct {
	Role  string        `json:"role"`
	Parts []requestPart `json:"parts"`
}

type generateRequest struct {
	Contents []requestContent `json:"contents"`
}

// GenerateContent sends a prompt to Gemini and returns the answer text
func (c *RESTClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	output, err := c.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	return output.Text(), nil
}

// Generate sends a prompt to Gemini and returns the parsed response
func (c *RESTClient) Generate(ctx context.Context, prompt string) (*models.ModelOutput, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, apierrors.ErrEmptyPrompt
	}

	if c.IsClosed() {
		return nil, apierrors.NewProviderError("rest", apierrors.ErrClientClosed)
	}

	payload, err := buildPayload(prompt)
	if err != nil {
		return nil, apierrors.NewProviderError("rest", fmt.Errorf("build payload: %w", err))
	}

	endpoint := c.Endpoint()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, apierrors.NewProviderError("rest", fmt.Errorf("create request: %w", err))
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	start := time.Now()
	c.logger.Debug("generate_request",
		"backend", "rest",
		"model", c.ModelName(),
		"prompt_chars", len(prompt),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apierrors.NewNetworkError("generate content", endpoint, err)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	if resp.StatusCode != http.StatusOK {
		errorBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, parseErrorResponse(resp.StatusCode, endpoint, errorBody)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierrors.NewNetworkError("read response", endpoint, err)
	}

	output, err := parseResponse(body)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("generate_response",
		"backend", "rest",
		"model_version", output.ModelVersion,
		"total_tokens", output.TotalTokens,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return output, nil
}

// buildPayload creates the JSON body of a single-turn generate request
func buildPayload(prompt string) ([]byte, error) {
	return json.Marshal(generateRequest{
		Contents: []requestContent{
			{Role: "user", Parts: []requestPart{{Text: prompt}}},
		},
	})
}

// parseErrorResponse converts a non-200 answer into an APIError
func parseErrorResponse(statusCode int, endpoint string, body []byte) error {
	message := http.StatusText(statusCode)
	status := ""
	if gjson.ValidBytes(body) {
		parsed := gjson.ParseBytes(body)
		if m := parsed.Get(PathErrorMessage).String(); m != "" {
			message = m
		}
		status = parsed.Get(PathErrorStatus).String()
	} else if trimmed := strings.TrimSpace(string(body)); trimmed != "" {
		message = trimmed
	}
	return apierrors.NewAPIError(statusCode, endpoint, message, status)
}

// parseResponse parses a generateContent response body
func parseResponse(body []byte) (*models.ModelOutput, error) {
	if !gjson.ValidBytes(body) {
		return nil, apierrors.NewParseError("response is not valid JSON", "")
	}

	parsed := gjson.ParseBytes(body)

	// Some proxies answer 200 with an error envelope
	if errMsg := parsed.Get(PathErrorMessage); errMsg.Exists() {
		return nil, apierrors.NewAPIError(
			int(parsed.Get(PathErrorCode).Int()), "", errMsg.String(), parsed.Get(PathErrorStatus).String(),
		)
	}

	candidateList := parsed.Get(PathCandidates)
	if !candidateList.IsArray() || len(candidateList.Array()) == 0 {
		if reason := parsed.Get(PathBlockReason).String(); reason != "" {
			return nil, apierrors.NewBlockedError(reason)
		}
		return nil, apierrors.NewNoContentError(PathCandidates)
	}

	var candidates []models.Candidate
	blockedReason := ""
	var empty *models.Candidate // first finished candidate without text
	candidateList.ForEach(func(_, candValue gjson.Result) bool {
		finish := candValue.Get(PathCandFinish).String()

		var text strings.Builder
		candValue.Get(PathCandParts).ForEach(func(_, part gjson.Result) bool {
			if part.Get(PathPartThought).Bool() {
				return true
			}
			text.WriteString(part.Get(PathPartText).String())
			return true
		})

		if text.Len() == 0 {
			switch {
			case blockingFinishReasons[finish]:
				if blockedReason == "" {
					blockedReason = finish
				}
			case empty == nil:
				empty = &models.Candidate{FinishReason: finish}
			}
			return true
		}

		candidates = append(candidates, models.Candidate{
			Text:         text.String(),
			FinishReason: finish,
		})
		return true
	})

	if len(candidates) == 0 {
		switch {
		case blockedReason != "":
			return nil, apierrors.NewBlockedError(blockedReason)
		case empty != nil:
			// a finished answer with no text is an empty answer
			candidates = append(candidates, *empty)
		default:
			return nil, apierrors.NewNoContentError(PathCandParts)
		}
	}

	return &models.ModelOutput{
		Candidates:   candidates,
		Chosen:       0,
		ModelVersion: parsed.Get(PathModelVersion).String(),
		TotalTokens:  parsed.Get(PathTotalTokens).Int(),
	}, nil
}
