package assistant

import (
	"encoding/json"
	"strings"

	"github.com/QYW-woker/AI-Management-sub000/internal/models"
)

// ParsedReply 解析后的模型回复
// Intent 为 nil 表示纯聊天，Suggestions 始终非 nil
type ParsedReply struct {
	Text        string
	Intent      models.CommandIntent
	Suggestions []models.QuickReply
}

// ParseResponse 宽容解析模型回复，任何输入都不报错
// 解析失败时整段原文作为纯文本回复，指令置空
//
// 截取只取首个 { 和最后一个 }，不做括号配对；字符串值里出现 } 时
// 可能切错，解码失败时按纯文本处理。
func ParseResponse(raw string) ParsedReply {
	degraded := ParsedReply{
		Text:        raw,
		Suggestions: []models.QuickReply{},
	}

	candidate := raw
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start != -1 && end != -1 && start < end {
		candidate = raw[start : end+1]
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(candidate), &payload); err != nil {
		return degraded
	}

	reply := ParsedReply{
		Text:        raw,
		Suggestions: []models.QuickReply{},
	}
	if text, ok := payload["text"].(string); ok && text != "" {
		reply.Text = text
	}
	if intentMap, ok := payload["intent"].(map[string]any); ok {
		intentType, _ := intentMap["type"].(string)
		data, _ := intentMap["data"].(map[string]any)
		reply.Intent = models.NewCommandIntent(intentType, data)
	}
	if items, ok := payload["suggestions"].([]any); ok {
		for _, item := range items {
			if text, ok := item.(string); ok && text != "" {
				reply.Suggestions = append(reply.Suggestions, models.QuickReply{Text: text})
			}
		}
	}
	return reply
}

// truncateString 截断字符串用于日志输出
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
