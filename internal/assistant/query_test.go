package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/QYW-woker/AI-Management-sub000/internal/llm"
	"github.com/QYW-woker/AI-Management-sub000/internal/models"
)

// TestParseQueryResponse 测试查询回复的解析
func TestParseQueryResponse(t *testing.T) {
	t.Run("规范回复", func(t *testing.T) {
		raw := `{"success":true,"queryType":"month_expense","summary":"本月共支出 2500 元","details":[{"label":"本月支出","value":"¥2,500.00","change":12.5,"trend":"up"},{"label":"上月支出","value":"¥2,222.00"}],"suggestions":["想看分类明细吗"]}`
		result := parseQueryResponse(raw)

		if !result.Success {
			t.Error("success 应为 true")
		}
		if result.QueryType != "month_expense" {
			t.Errorf("queryType 不对: %s", result.QueryType)
		}
		if result.Summary != "本月共支出 2500 元" {
			t.Errorf("summary 不对: %s", result.Summary)
		}
		if len(result.Details) != 2 {
			t.Fatalf("期望 2 行明细，实际 %d 行", len(result.Details))
		}
		first := result.Details[0]
		if first.Change == nil || *first.Change != 12.5 {
			t.Error("change 不对")
		}
		if first.Trend != models.TrendUp {
			t.Errorf("trend 不对: %s", first.Trend)
		}
		second := result.Details[1]
		if second.Change != nil || second.Trend != "" {
			t.Error("无环比数据的行 change 和 trend 应为空")
		}
		if len(result.Suggestions) != 1 {
			t.Errorf("期望 1 条建议，实际 %d 条", len(result.Suggestions))
		}
	})

	t.Run("纯文本退化为失败结果", func(t *testing.T) {
		result := parseQueryResponse("抱歉，我算不出来")
		if result.Success {
			t.Error("解析失败时 success 应为 false")
		}
		if result.Summary == "" {
			t.Error("失败结果应带提示语")
		}
		if result.Details == nil || result.Suggestions == nil {
			t.Error("失败结果的列表字段应为空列表而不是 nil")
		}
	})

	t.Run("缺少明细时列表为空", func(t *testing.T) {
		result := parseQueryResponse(`{"success":true,"queryType":"today_expense","summary":"今天没花钱"}`)
		if !result.Success {
			t.Error("success 应为 true")
		}
		if result.Details == nil || len(result.Details) != 0 {
			t.Error("details 应为空列表")
		}
		if result.Suggestions == nil || len(result.Suggestions) != 0 {
			t.Error("suggestions 应为空列表")
		}
	})

	t.Run("缺summary按失败处理", func(t *testing.T) {
		result := parseQueryResponse(`{"success":true,"queryType":"today_expense"}`)
		if result.Success {
			t.Error("没有结论的回复应按失败处理")
		}
	})
}

// TestQueryExecutorExecute 测试查询执行
func TestQueryExecutorExecute(t *testing.T) {
	t.Run("正常查询", func(t *testing.T) {
		db := newTestStore(t)
		client := &fakeClient{
			reply: `{"success":true,"queryType":"month_expense","summary":"本月共支出 0 元","details":[],"suggestions":[]}`,
		}
		snapshots := NewSnapshotBuilder(db, db, db, db, db)
		executor := NewQueryExecutor(client, snapshots, llm.GenerateOptions{})

		result, err := executor.Execute(context.Background(), "这个月花了多少")
		if err != nil {
			t.Fatalf("查询失败: %v", err)
		}
		if !result.Success {
			t.Errorf("查询应成功: %+v", result)
		}

		// 系统提示带数据快照，用户问题在末尾
		if len(client.gotMessages) != 2 {
			t.Fatalf("期望 2 条消息，实际 %d 条", len(client.gotMessages))
		}
		if client.gotMessages[0].Role != llm.RoleSystem {
			t.Error("首条应为系统提示")
		}
		if !strings.Contains(client.gotMessages[0].Content, "用户数据") {
			t.Error("系统提示缺少数据段落")
		}
		if client.gotMessages[1].Content != "这个月花了多少" {
			t.Error("用户问题不对")
		}
	})

	t.Run("模型失败返回错误", func(t *testing.T) {
		db := newTestStore(t)
		client := &fakeClient{err: errors.New("网络断了")}
		snapshots := NewSnapshotBuilder(db, db, db, db, db)
		executor := NewQueryExecutor(client, snapshots, llm.GenerateOptions{})

		_, err := executor.Execute(context.Background(), "这个月花了多少")
		if !errors.Is(err, ErrModelCall) {
			t.Errorf("期望模型调用错误，实际 %v", err)
		}
	})
}
