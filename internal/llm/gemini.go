package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiClient 基于 Google Gemini 的模型客户端
type GeminiClient struct {
	apiKey    string
	modelName string
	client    *genai.Client
}

// NewGeminiClient 创建 Gemini 客户端，连接在首次调用时建立
func NewGeminiClient(apiKey, modelName string) *GeminiClient {
	return &GeminiClient{
		apiKey:    apiKey,
		modelName: modelName,
	}
}

// Name 返回模型名称
func (c *GeminiClient) Name() string {
	return c.modelName
}

// ensureClient 延迟初始化底层客户端
func (c *GeminiClient) ensureClient(ctx context.Context) error {
	if c.client != nil {
		return nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: c.apiKey})
	if err != nil {
		return fmt.Errorf("create gemini client error: %w", err)
	}
	c.client = client
	return nil
}

// Generate 调用 GenerateContent 接口生成回复
// system 消息转为 SystemInstruction，assistant 消息映射为 model 角色
func (c *GeminiClient) Generate(ctx context.Context, messages []Message, opts GenerateOptions) (string, error) {
	if err := c.ensureClient(ctx); err != nil {
		return "", err
	}

	config := &genai.GenerateContentConfig{}
	if opts.Temperature > 0 {
		t := opts.Temperature
		config.Temperature = &t
	}
	if opts.MaxTokens > 0 {
		config.MaxOutputTokens = int32(opts.MaxTokens)
	}

	var contents []*genai.Content
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			config.SystemInstruction = genai.NewContentFromText(m.Content, genai.RoleUser)
		case RoleAssistant:
			contents = append(contents, &genai.Content{
				Role:  "model",
				Parts: []*genai.Part{{Text: m.Content}},
			})
		default:
			contents = append(contents, &genai.Content{
				Role:  "user",
				Parts: []*genai.Part{{Text: m.Content}},
			})
		}
	}
	if len(contents) == 0 {
		contents = append(contents, &genai.Content{
			Role:  "user",
			Parts: []*genai.Part{{Text: ""}},
		})
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.modelName, contents, config)
	if err != nil {
		return "", fmt.Errorf("generate content error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Thought {
			continue
		}
		sb.WriteString(part.Text)
	}
	return sb.String(), nil
}
