package llm

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// ErrEmptyResponse 模型返回了空内容
var ErrEmptyResponse = errors.New("模型返回内容为空")

// OpenAIClient 基于 OpenAI 兼容接口的模型客户端
// 通过 BaseURL 可以接入任何兼容 ChatCompletion 协议的服务
type OpenAIClient struct {
	client    *openai.Client
	modelName string
}

// NewOpenAIClient 创建 OpenAI 客户端
func NewOpenAIClient(apiKey, baseURL, modelName string) *OpenAIClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIClient{
		client:    openai.NewClientWithConfig(cfg),
		modelName: modelName,
	}
}

// Name 返回模型名称
func (c *OpenAIClient) Name() string {
	return c.modelName
}

// Generate 调用 ChatCompletion 接口生成回复
func (c *OpenAIClient) Generate(ctx context.Context, messages []Message, opts GenerateOptions) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.modelName,
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}
