package app

import (
	"context"
	"testing"

	"mcq-generator/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WithoutOptionalBackends(t *testing.T) {
	cfg := &config.Config{
		LLM: config.LLMConfig{
			Provider:  "ollama",
			Model:     "llama3",
			ServerURL: "http://localhost:11434",
		},
		Export: config.ExportConfig{Dir: t.TempDir()},
	}

	c, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer c.Close()

	assert.Nil(t, c.Cache)
	assert.Nil(t, c.Repository)
	assert.NotNil(t, c.Generation)
	assert.NotNil(t, c.Export)
	assert.Equal(t, "llama3", c.Generator.ModelName())
}

func TestNew_InvalidProvider(t *testing.T) {
	cfg := &config.Config{LLM: config.LLMConfig{Provider: "bard", Model: "x"}}

	_, err := New(context.Background(), cfg)
	assert.Error(t, err)
}
