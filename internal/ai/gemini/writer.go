package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/velora-app/matchengine/internal/ai"
	"github.com/velora-app/matchengine/internal/logger"
	"github.com/velora-app/matchengine/internal/profile"
	"github.com/velora-app/matchengine/internal/scoring"
	"github.com/velora-app/matchengine/internal/utils"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Writer turns a scored pair into a polished introduction message using
// Gemini. The engine result is input only; the writer never changes scores.
type Writer struct {
	generator  contentGenerator
	maxRetries int
	maxLogLen  int
	backoff    time.Duration
	logger     *zap.Logger
}

//go:embed prompt.md
var promptTemplate string

const (
	defaultMaxLogLength = 200
	retryBackoff        = 2 * time.Second
)

func NewWriter(generator contentGenerator, maxRetries, maxLogLength int, log *zap.Logger) *Writer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if maxRetries < 0 {
		maxRetries = 0
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Writer{
		generator:  generator,
		maxRetries: maxRetries,
		maxLogLen:  maxLogLength,
		backoff:    retryBackoff,
		logger:     log,
	}
}

// Compose asks the model for an introduction message for the pair.
func (w *Writer) Compose(ctx context.Context, result *scoring.Result, a, b *profile.UserMatchProfile) (*ai.Intro, error) {
	if result == nil {
		return nil, fmt.Errorf("scoring result is required")
	}
	if a == nil || b == nil {
		return nil, fmt.Errorf("both profiles are required")
	}

	prompt, err := buildPrompt(result, a, b)
	if err != nil {
		return nil, err
	}

	w.logger.Debug("gemini intro request",
		zap.String("user_a", a.ID),
		zap.String("user_b", b.ID),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, w.maxLogLen)),
	)

	raw, err := w.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	w.logger.Debug("gemini intro response",
		zap.String("user_a", a.ID),
		zap.String("user_b", b.ID),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, w.maxLogLen)),
	)

	message, err := parseResponse(raw)
	if err != nil {
		return nil, err
	}

	return &ai.Intro{Message: message, Raw: raw}, nil
}

func (w *Writer) generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= w.maxRetries; attempt++ {
		if attempt > 0 {
			w.logger.Debug("retrying gemini request", zap.Int("attempt", attempt), zap.Error(lastErr))
			if err := utils.WaitFor(ctx, w.backoff); err != nil {
				return "", err
			}
		}

		raw, err := w.generator.GenerateContent(ctx, prompt)
		if err == nil {
			return raw, nil
		}
		lastErr = err
	}
	return "", lastErr
}

func buildPrompt(result *scoring.Result, a, b *profile.UserMatchProfile) (string, error) {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Match result:\n{{RESULT_JSON}}\n\nProfiles:\n{{PROFILE_A_JSON}}\n{{PROFILE_B_JSON}}\n\nJSON Response:"
	}

	resultJSON, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal result payload: %w", err)
	}
	aJSON, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal profile payload: %w", err)
	}
	bJSON, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal profile payload: %w", err)
	}

	prompt := strings.ReplaceAll(template, "{{RESULT_JSON}}", string(resultJSON))
	prompt = strings.ReplaceAll(prompt, "{{PROFILE_A_JSON}}", string(aJSON))
	prompt = strings.ReplaceAll(prompt, "{{PROFILE_B_JSON}}", string(bJSON))
	return prompt, nil
}

func parseResponse(raw string) (string, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return "", fmt.Errorf("parse gemini response: %w", err)
	}

	message, _ := data["message"].(string)
	message = strings.TrimSpace(message)
	if message == "" {
		return "", fmt.Errorf("gemini response has no message field")
	}
	return message, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
