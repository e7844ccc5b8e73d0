package models

// AIProvider AI 服务提供商
type AIProvider string

const (
	AIProviderOpenAI AIProvider = "openai"
	AIProviderGemini AIProvider = "gemini"
)

// AIConfig AI 服务配置
type AIConfig struct {
	Provider    AIProvider `json:"provider"`
	APIKey      string     `json:"apiKey"`
	BaseURL     string     `json:"baseUrl,omitempty"`
	ModelName   string     `json:"modelName"`
	Temperature float32    `json:"temperature"`
	MaxTokens   int        `json:"maxTokens"`
}
