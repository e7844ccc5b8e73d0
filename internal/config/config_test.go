package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/QYW-woker/AI-Management-sub000/internal/logger"
	"github.com/QYW-woker/AI-Management-sub000/internal/models"
)

// clearEnv 清掉相关环境变量，避免外部环境干扰
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SERVER_PORT", "DB_PATH", "LOG_LEVEL",
		"AI_PROVIDER", "AI_API_KEY", "AI_BASE_URL", "AI_MODEL", "AI_TEMPERATURE", "AI_MAX_TOKENS",
		"DUPLICATE_WINDOW_MINUTES", "CONTEXT_WINDOW_SIZE",
	} {
		t.Setenv(key, "")
	}
}

// TestLoadDefaults 测试默认配置
func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.NotEmpty(t, cfg.DBPath)
	assert.Equal(t, models.AIProviderOpenAI, cfg.AI.Provider)
	assert.Empty(t, cfg.AI.APIKey)
	assert.Equal(t, float32(0.7), cfg.AI.Temperature)
	assert.Equal(t, 2048, cfg.AI.MaxTokens)
	assert.Equal(t, logger.INFO, cfg.LogLevel)
	assert.Equal(t, 5*time.Minute, cfg.DuplicateWindow)
	assert.Equal(t, 10, cfg.ContextWindow)
}

// TestLoadOverrides 测试环境变量覆盖
func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("AI_PROVIDER", "gemini")
	t.Setenv("AI_API_KEY", "g-test")
	t.Setenv("AI_MODEL", "gemini-2.5-pro")
	t.Setenv("AI_TEMPERATURE", "0.3")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DUPLICATE_WINDOW_MINUTES", "10")
	t.Setenv("CONTEXT_WINDOW_SIZE", "20")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, models.AIProviderGemini, cfg.AI.Provider)
	assert.Equal(t, "g-test", cfg.AI.APIKey)
	assert.Equal(t, "gemini-2.5-pro", cfg.AI.ModelName)
	assert.Equal(t, float32(0.3), cfg.AI.Temperature)
	assert.Equal(t, logger.DEBUG, cfg.LogLevel)
	assert.Equal(t, 10*time.Minute, cfg.DuplicateWindow)
	assert.Equal(t, 20, cfg.ContextWindow)
}

// TestLoadInvalidNumbers 测试数值解析失败时回落默认值
func TestLoadInvalidNumbers(t *testing.T) {
	clearEnv(t)
	t.Setenv("AI_MAX_TOKENS", "很多")
	t.Setenv("AI_TEMPERATURE", "热")
	t.Setenv("CONTEXT_WINDOW_SIZE", "3.5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 2048, cfg.AI.MaxTokens)
	assert.Equal(t, float32(0.7), cfg.AI.Temperature)
	assert.Equal(t, 10, cfg.ContextWindow)
}
