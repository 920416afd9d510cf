package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"mcq-generator/internal/config"
	"mcq-generator/internal/domain"
	"mcq-generator/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

const (
	ProviderGoogleAI = "googleai"
	ProviderOllama   = "ollama"
	ProviderOpenAI   = "openai"

	DefaultTemperature = 0.7
	DefaultTimeout     = 60 * time.Second
)

// Generator sends a prompt to a langchaingo model and returns the raw completion.
type Generator struct {
	model       llms.Model
	modelName   string
	temperature float64
	timeout     time.Duration
}

// NewGenerator wraps an already constructed model.
func NewGenerator(model llms.Model, modelName string, temperature float64, timeout time.Duration) *Generator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Generator{
		model:       model,
		modelName:   modelName,
		temperature: temperature,
		timeout:     timeout,
	}
}

// NewFromConfig builds the model client selected by cfg.Provider.
func NewFromConfig(ctx context.Context, cfg config.LLMConfig) (*Generator, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("llm model name cannot be empty")
	}

	var (
		model llms.Model
		err   error
	)
	switch cfg.Provider {
	case ProviderGoogleAI, "":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("googleai API key cannot be empty")
		}
		model, err = googleai.New(ctx,
			googleai.WithAPIKey(cfg.APIKey),
			googleai.WithDefaultModel(cfg.Model),
		)
	case ProviderOllama:
		if cfg.ServerURL == "" {
			return nil, fmt.Errorf("ollama server URL cannot be empty")
		}
		model, err = ollama.New(
			ollama.WithServerURL(cfg.ServerURL),
			ollama.WithModel(cfg.Model),
			ollama.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		)
	case ProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("openai API key cannot be empty")
		}
		model, err = openai.New(
			openai.WithToken(cfg.APIKey),
			openai.WithModel(cfg.Model),
		)
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", cfg.Provider, err)
	}

	logger.Get().Info("Generation backend initialized",
		zap.String("provider", cfg.Provider),
		zap.String("model", cfg.Model))

	return NewGenerator(model, cfg.Model, cfg.Temperature, cfg.Timeout), nil
}

func (g *Generator) ModelName() string {
	return g.modelName
}

// Generate performs a single request. It does not retry.
func (g *Generator) Generate(ctx context.Context, p domain.Prompt) (string, error) {
	l := logger.Get()

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, p.System),
		llms.TextParts(llms.ChatMessageTypeHuman, p.User),
	}

	start := time.Now()
	resp, err := g.model.GenerateContent(ctx, messages, llms.WithTemperature(g.temperature))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			l.Error("Generation request timed out", zap.String("model", g.modelName), zap.Duration("timeout", g.timeout))
			return "", domain.NewGenerationError("generation backend timed out", err).
				WithContext("timeout", g.timeout.String())
		}
		l.Error("Generation request failed", zap.String("model", g.modelName), zap.Error(err))
		return "", domain.NewGenerationError("generation backend request failed", err)
	}

	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0] == nil {
		return "", domain.NewGenerationError("generation backend returned no choices", nil)
	}

	content := resp.Choices[0].Content
	if strings.TrimSpace(content) == "" {
		return "", domain.NewGenerationError("generation backend returned an empty response", nil)
	}

	l.Debug("Generation completed",
		zap.String("model", g.modelName),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("response_chars", len(content)))

	return content, nil
}

var _ domain.Generator = (*Generator)(nil)
