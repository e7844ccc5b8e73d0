package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/QYW-woker/AI-Management-sub000/internal/llm"
	"github.com/QYW-woker/AI-Management-sub000/internal/models"
)

// QueryExecutor 自然语言数据查询的执行器
// 把扩展数据快照交给模型，由模型按固定结构输出分析结果
type QueryExecutor struct {
	client    llm.Client
	snapshots *SnapshotBuilder
	opts      llm.GenerateOptions
}

// NewQueryExecutor 创建查询执行器
func NewQueryExecutor(client llm.Client, snapshots *SnapshotBuilder, opts llm.GenerateOptions) *QueryExecutor {
	return &QueryExecutor{client: client, snapshots: snapshots, opts: opts}
}

// Execute 执行一次数据查询
// 快照或模型失败返回错误；模型回复解析失败不是错误，结果里带诊断信息
func (q *QueryExecutor) Execute(ctx context.Context, text string) (*models.DataQueryResult, error) {
	snap, err := q.snapshots.BuildAnalysis(ctx, time.Now())
	if err != nil {
		return nil, fmt.Errorf("build analysis snapshot error: %w", err)
	}

	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: buildQueryPrompt(snap)},
		{Role: llm.RoleUser, Content: text},
	}
	raw, err := q.client.Generate(ctx, messages, q.opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelCall, err)
	}

	result := parseQueryResponse(raw)
	return &result, nil
}

// buildQueryPrompt 生成数据查询的系统提示词
func buildQueryPrompt(snap *AnalysisSnapshot) string {
	var sb strings.Builder

	sb.WriteString("你是数据分析助手，根据用户数据回答关于收支、习惯、目标的统计问题。\n\n")
	fmt.Fprintf(&sb, "当前日期: %s\n\n", snap.Date.Format("2006-01-02"))

	sb.WriteString("## 用户数据\n")
	sb.WriteString(snap.Render())
	sb.WriteString("\n")

	sb.WriteString("## 输出格式（仅输出JSON）\n")
	sb.WriteString(`{"success":true,"queryType":"查询类型","summary":"一句话结论","details":[{"label":"指标名","value":"展示值","change":环比百分比数字,"trend":"up|down|stable"}],"suggestions":["后续问题"]}` + "\n\n")

	sb.WriteString("## 规则\n")
	sb.WriteString("- summary 不超过 50 字\n")
	sb.WriteString("- details 不超过 5 行\n")
	sb.WriteString("- 无环比数据时省略 change 和 trend\n")
	sb.WriteString("- 只输出一个 JSON 对象，不要附加其他文字\n")

	return sb.String()
}

// parseQueryResponse 宽容解析查询回复，任何输入都不报错
// 解析失败时返回 success=false 和提示语，结构保持完整
func parseQueryResponse(raw string) models.DataQueryResult {
	failed := models.DataQueryResult{
		Success:     false,
		Summary:     "查询结果解析失败，请换个问法试试",
		Details:     []models.QueryDetail{},
		Suggestions: []string{},
	}

	candidate := raw
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start != -1 && end != -1 && start < end {
		candidate = raw[start : end+1]
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(candidate), &payload); err != nil {
		log.Warn("query response not JSON: %s", truncateString(raw, 120))
		return failed
	}

	result := models.DataQueryResult{
		Details:     []models.QueryDetail{},
		Suggestions: []string{},
	}
	result.Success, _ = payload["success"].(bool)
	result.QueryType, _ = payload["queryType"].(string)
	result.Summary, _ = payload["summary"].(string)
	if result.Summary == "" {
		return failed
	}

	if items, ok := payload["details"].([]any); ok {
		for _, item := range items {
			detail, ok := item.(map[string]any)
			if !ok {
				continue
			}
			qd := models.QueryDetail{}
			qd.Label, _ = detail["label"].(string)
			qd.Value, _ = detail["value"].(string)
			if change, ok := detail["change"].(float64); ok {
				qd.Change = &change
			}
			if trend, ok := detail["trend"].(string); ok {
				qd.Trend = models.ParseTrend(trend)
			}
			result.Details = append(result.Details, qd)
		}
	}
	if items, ok := payload["suggestions"].([]any); ok {
		for _, item := range items {
			if text, ok := item.(string); ok && text != "" {
				result.Suggestions = append(result.Suggestions, text)
			}
		}
	}
	return result
}
