package llm

import (
	"errors"
	"fmt"

	"github.com/QYW-woker/AI-Management-sub000/internal/models"
)

// ErrNoAPIKey 未配置 API Key
var ErrNoAPIKey = errors.New("未配置 AI API Key")

// 默认模型名称
const (
	DefaultOpenAIModel = "gpt-4o-mini"
	DefaultGeminiModel = "gemini-2.0-flash"
)

// NewClient 根据配置创建模型客户端，并套上重试包装
func NewClient(cfg *models.AIConfig) (Client, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, ErrNoAPIKey
	}

	switch cfg.Provider {
	case models.AIProviderGemini:
		modelName := cfg.ModelName
		if modelName == "" {
			modelName = DefaultGeminiModel
		}
		return WithRetry(NewGeminiClient(cfg.APIKey, modelName), MaxRetries), nil
	case models.AIProviderOpenAI, "":
		modelName := cfg.ModelName
		if modelName == "" {
			modelName = DefaultOpenAIModel
		}
		return WithRetry(NewOpenAIClient(cfg.APIKey, cfg.BaseURL, modelName), MaxRetries), nil
	default:
		return nil, fmt.Errorf("不支持的 AI 提供商: %s", cfg.Provider)
	}
}
