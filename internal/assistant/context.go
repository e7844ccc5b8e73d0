package assistant

import (
	"sync"

	"github.com/QYW-woker/AI-Management-sub000/internal/models"
)

// DefaultContextWindow 默认带入提示词的历史轮数
const DefaultContextWindow = 10

// Conversation 会话内的消息历史
// 历史完整保留不截断，只有组装提示词时才按窗口取最近几轮
type Conversation struct {
	mu       sync.RWMutex
	messages []models.ChatMessage
}

// NewConversation 创建空会话
func NewConversation() *Conversation {
	return &Conversation{}
}

// Append 追加一条消息并返回追加后的完整快照
// 写入采用复制替换，已返回的快照不会被后续写入改动
func (c *Conversation) Append(msg models.ChatMessage) []models.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := make([]models.ChatMessage, len(c.messages)+1)
	copy(next, c.messages)
	next[len(c.messages)] = msg
	c.messages = next
	return next
}

// Messages 返回当前完整历史的快照
func (c *Conversation) Messages() []models.ChatMessage {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.messages
}

// RecentWindow 返回最近 max 条非 system 消息，保持原始顺序
// system 提示每轮重新生成，不算在窗口内
func (c *Conversation) RecentWindow(max int) []models.ChatMessage {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if max <= 0 {
		return nil
	}
	picked := make([]models.ChatMessage, 0, max)
	for i := len(c.messages) - 1; i >= 0 && len(picked) < max; i-- {
		if c.messages[i].Role == models.RoleSystem {
			continue
		}
		picked = append(picked, c.messages[i])
	}
	// 反向收集后翻转回时间顺序
	for i, j := 0, len(picked)-1; i < j; i, j = i+1, j-1 {
		picked[i], picked[j] = picked[j], picked[i]
	}
	return picked
}

// Len 返回历史消息条数
func (c *Conversation) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.messages)
}

// Clear 清空历史
func (c *Conversation) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = nil
}
