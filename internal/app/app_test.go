package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/finassist/internal/app"
	"github.com/MrJamesThe3rd/finassist/internal/config"
	"github.com/MrJamesThe3rd/finassist/internal/llm/remote"
)

func TestNewLLMClient(t *testing.T) {
	var cfg config.Config

	cfg.LLM.Backend = "Remote"
	cfg.LLM.RemoteURL = "http://localhost:9000/api/v1/assistant"

	client, err := app.NewLLMClient(context.Background(), &cfg)
	require.NoError(t, err)
	assert.IsType(t, &remote.Client{}, client)

	cfg.LLM.Backend = "openai"
	_, err = app.NewLLMClient(context.Background(), &cfg)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}
