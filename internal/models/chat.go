package models

import (
	"time"

	"github.com/google/uuid"
)

// ChatRole 消息角色
type ChatRole string

const (
	RoleSystem    ChatRole = "system"
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// QuickReply 快捷回复建议，仅供展示，本身不产生任何动作
type QuickReply struct {
	Text string `json:"text"`
}

// ChatMessage 聊天消息，创建后不再修改
// Intent 仅在 assistant 消息解析出已识别指令时携带，user 消息永远不带
type ChatMessage struct {
	ID          string        `json:"id"`
	Role        ChatRole      `json:"role"`
	Content     string        `json:"content"`
	Intent      CommandIntent `json:"intent,omitempty"`
	Suggestions []QuickReply  `json:"suggestions,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// NewChatMessage 创建聊天消息
func NewChatMessage(role ChatRole, content string) ChatMessage {
	return ChatMessage{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	}
}

// NewAssistantMessage 创建助手回复消息
func NewAssistantMessage(content string, intent CommandIntent, suggestions []QuickReply) ChatMessage {
	msg := NewChatMessage(RoleAssistant, content)
	msg.Intent = intent
	msg.Suggestions = suggestions
	return msg
}
