package llm

import "context"

// 对话角色
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message 发给模型的一条对话消息
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// GenerateOptions 单次生成的采样参数
type GenerateOptions struct {
	Temperature float32
	MaxTokens   int
}

// Client 大模型客户端的统一接口
type Client interface {
	// Name 返回当前使用的模型名称
	Name() string
	// Generate 发送消息列表并返回模型的文本回复
	Generate(ctx context.Context, messages []Message, opts GenerateOptions) (string, error)
}
