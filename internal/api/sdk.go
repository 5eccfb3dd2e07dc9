package api

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"google.golang.org/genai"

	apierrors "github.com/diogo/geminichat/internal/errors"
	"github.com/diogo/geminichat/internal/models"
)

// modelsClient is the part of genai.Models the SDK backend calls
type modelsClient interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

var newGenAIClient = func(ctx context.Context, cfg *genai.ClientConfig) (*genai.Client, error) {
	return genai.NewClient(ctx, cfg)
}

// withModelsClient replaces the genai models service
func withModelsClient(m modelsClient) ClientOption {
	return func(o *clientOptions) {
		o.models = m
	}
}

// SDKClient generates through the official Google Gen AI SDK
type SDKClient struct {
	models  modelsClient
	model   models.Model
	timeout time.Duration
	logger  *slog.Logger
	mu      sync.RWMutex
	closed  bool
}

// NewSDKClient creates a new SDKClient
func NewSDKClient(ctx context.Context, apiKey string, opts ...ClientOption) (*SDKClient, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, apierrors.ErrMissingAPIKey
	}

	o := buildOptions(opts)

	svc := o.models
	if svc == nil {
		client, err := newGenAIClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, apierrors.NewProviderError("sdk", fmt.Errorf("create genai client: %w", err))
		}
		svc = client.Models
	}

	o.logger.Debug("sdk_client_ready", "model", o.model.Name, "timeout", o.timeout)
	return &SDKClient{
		models:  svc,
		model:   o.model,
		timeout: o.timeout,
		logger:  o.logger,
	}, nil
}

// ModelName returns the model the client generates with
func (c *SDKClient) ModelName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.model.Name
}

// Close marks the client closed; the SDK holds no connections of its own
func (c *SDKClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

// IsClosed returns whether the client is closed
func (c *SDKClient) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// GenerateContent sends a prompt to Gemini and returns the answer text
func (c *SDKClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	output, err := c.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	return output.Text(), nil
}

// Generate sends a prompt to Gemini and returns the parsed response
func (c *SDKClient) Generate(ctx context.Context, prompt string) (*models.ModelOutput, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, apierrors.ErrEmptyPrompt
	}
	if c.IsClosed() {
		return nil, apierrors.NewProviderError("sdk", apierrors.ErrClientClosed)
	}

	callCtx, cancel := c.withTimeout(ctx)
	defer cancel()

	model := c.ModelName()
	start := time.Now()
	c.logger.Debug("generate_request", "backend", "sdk", "model", model, "prompt_chars", len(prompt))

	resp, err := c.models.GenerateContent(callCtx, model, genai.Text(prompt), nil)
	if err != nil {
		return nil, apierrors.NewProviderError("sdk", err)
	}

	output, err := convertResponse(resp)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("generate_response",
		"backend", "sdk",
		"model_version", output.ModelVersion,
		"total_tokens", output.TotalTokens,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return output, nil
}

func (c *SDKClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.timeout)
}

// convertResponse maps an SDK response onto ModelOutput, with the same
// blocked and empty rules as the REST parser
func convertResponse(resp *genai.GenerateContentResponse) (*models.ModelOutput, error) {
	if resp == nil {
		return nil, apierrors.NewNoContentError(PathCandidates)
	}

	var candidates []models.Candidate
	blockedReason := ""
	var empty *models.Candidate
	for _, cand := range resp.Candidates {
		if cand == nil {
			continue
		}
		finish := string(cand.FinishReason)
		text := visibleText(cand.Content)
		if text == "" {
			switch {
			case blockingFinishReasons[finish]:
				if blockedReason == "" {
					blockedReason = finish
				}
			case empty == nil:
				empty = &models.Candidate{FinishReason: finish}
			}
			continue
		}
		candidates = append(candidates, models.Candidate{Text: text, FinishReason: finish})
	}

	if len(candidates) == 0 {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return nil, apierrors.NewBlockedError(string(resp.PromptFeedback.BlockReason))
		}
		switch {
		case blockedReason != "":
			return nil, apierrors.NewBlockedError(blockedReason)
		case empty != nil:
			candidates = append(candidates, *empty)
		default:
			return nil, apierrors.NewNoContentError(PathCandParts)
		}
	}

	output := &models.ModelOutput{
		Candidates:   candidates,
		ModelVersion: resp.ModelVersion,
	}
	if resp.UsageMetadata != nil {
		output.TotalTokens = int64(resp.UsageMetadata.TotalTokenCount)
	}
	return output, nil
}

func visibleText(content *genai.Content) string {
	if content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range content.Parts {
		if part == nil || part.Thought || part.Text == "" {
			continue
		}
		sb.WriteString(part.Text)
	}
	return sb.String()
}
