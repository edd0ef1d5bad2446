// Package classifier provides the external model client that turns a
// (hash, expected) pair into raw classification text. It owns prompt
// construction and transport concerns only; interpreting the returned
// text belongs to the verdicts domain.
package classifier

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/veracity-io/veracity/pkg/lifecycle"
)

// System defines the public contract for classification requests.
type System interface {
	// Start registers a shutdown hook that closes the model client.
	Start(lc *lifecycle.Coordinator) error
	// Generate sends the classification prompt for (hash, expected) and
	// returns the model's raw text. An unreachable model, a timeout, and
	// an empty response are all errors; unparseable-but-present text is not.
	Generate(ctx context.Context, hash, expected string) (string, error)
}

type gemini struct {
	client  *genai.Client
	model   *genai.GenerativeModel
	timeout time.Duration
	logger  *slog.Logger
}

// New creates a Gemini-backed classifier from the given configuration.
func New(ctx context.Context, cfg *Config, logger *slog.Logger) (System, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("create classifier client: %w", err)
	}

	model := client.GenerativeModel(cfg.Model)
	temp := float32(cfg.Temperature)
	topP := float32(cfg.TopP)
	maxTokens := int32(cfg.MaxOutputTokens)
	model.Temperature = &temp
	model.TopP = &topP
	model.MaxOutputTokens = &maxTokens
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}

	return &gemini{
		client:  client,
		model:   model,
		timeout: cfg.RequestTimeoutDuration(),
		logger:  logger.With("system", "classifier"),
	}, nil
}

func (g *gemini) Start(lc *lifecycle.Coordinator) error {
	lc.OnShutdown(func() {
		<-lc.Context().Done()

		if err := g.client.Close(); err != nil {
			g.logger.Error("classifier close failed", "error", err)
			return
		}

		g.logger.Info("classifier client closed")
	})

	return nil
}

func (g *gemini) Generate(ctx context.Context, hash, expected string) (string, error) {
	reqCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.model.GenerateContent(reqCtx, genai.Text(buildPrompt(hash, expected)))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	text := extractText(resp)
	if text == "" {
		return "", ErrEmptyResponse
	}

	g.logger.Debug("classification generated", "hash", hash, "chars", len(text))
	return text, nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	return strings.TrimSpace(sb.String())
}
