package assistant

import (
	"testing"

	"github.com/QYW-woker/AI-Management-sub000/internal/models"
)

// TestParseResponseStandard 测试规范 JSON 回复的解析
func TestParseResponseStandard(t *testing.T) {
	t.Run("记账指令", func(t *testing.T) {
		raw := `{"text":"记好了，午饭 25 元","intent":{"type":"transaction","data":{"transactionType":"expense","amount":25,"category":"餐饮"}},"suggestions":["再记一笔","查看今日支出"]}`
		reply := ParseResponse(raw)

		if reply.Text != "记好了，午饭 25 元" {
			t.Errorf("text 不对: %s", reply.Text)
		}
		intent, ok := reply.Intent.(*models.TransactionIntent)
		if !ok {
			t.Fatalf("期望记账指令，实际 %T", reply.Intent)
		}
		if intent.Type != models.TransactionExpense {
			t.Errorf("类型不对: %s", intent.Type)
		}
		if intent.Amount == nil || *intent.Amount != 25 {
			t.Error("金额不对")
		}
		if len(reply.Suggestions) != 2 {
			t.Errorf("期望 2 条快捷回复，实际 %d 条", len(reply.Suggestions))
		}
	})

	t.Run("查询指令", func(t *testing.T) {
		raw := `{"text":"你今天花了50元","intent":{"type":"query","data":{"queryType":"today_expense"}},"suggestions":["查看明细"]}`
		reply := ParseResponse(raw)

		if reply.Text != "你今天花了50元" {
			t.Errorf("text 不对: %s", reply.Text)
		}
		intent, ok := reply.Intent.(*models.QueryIntent)
		if !ok {
			t.Fatalf("期望查询指令，实际 %T", reply.Intent)
		}
		if intent.Type != models.QueryTodayExpense {
			t.Errorf("查询类型不对: %s", intent.Type)
		}
		if len(reply.Suggestions) != 1 || reply.Suggestions[0].Text != "查看明细" {
			t.Error("快捷回复不对")
		}
	})

	t.Run("纯聊天intent为null", func(t *testing.T) {
		raw := `{"text":"好的，记住了","intent":null,"suggestions":null}`
		reply := ParseResponse(raw)

		if reply.Text != "好的，记住了" {
			t.Errorf("text 不对: %s", reply.Text)
		}
		if reply.Intent != nil {
			t.Error("intent 应为空")
		}
		if reply.Suggestions == nil || len(reply.Suggestions) != 0 {
			t.Error("suggestions 应为空列表而不是 nil")
		}
	})
}

// TestParseResponseWrapped 测试裹着多余文字的 JSON
func TestParseResponseWrapped(t *testing.T) {
	t.Run("前后有说明文字", func(t *testing.T) {
		raw := "好的，以下是结果：\n" + `{"text":"已记录","intent":null,"suggestions":[]}` + "\n希望有帮助！"
		reply := ParseResponse(raw)
		if reply.Text != "已记录" {
			t.Errorf("应取出 JSON 里的 text，实际 %s", reply.Text)
		}
	})

	t.Run("markdown代码块", func(t *testing.T) {
		raw := "```json\n" + `{"text":"已记录","intent":null,"suggestions":[]}` + "\n```"
		reply := ParseResponse(raw)
		if reply.Text != "已记录" {
			t.Errorf("应取出代码块里的 text，实际 %s", reply.Text)
		}
	})
}

// TestParseResponseDegraded 测试解析失败时的纯文本退化
func TestParseResponseDegraded(t *testing.T) {
	t.Run("纯文本回复", func(t *testing.T) {
		raw := "好的，我明白了"
		reply := ParseResponse(raw)

		if reply.Text != raw {
			t.Errorf("text 应为原文，实际 %s", reply.Text)
		}
		if reply.Intent != nil {
			t.Error("intent 应为空")
		}
		if reply.Suggestions == nil || len(reply.Suggestions) != 0 {
			t.Error("suggestions 应为空列表")
		}
	})

	t.Run("JSON未闭合", func(t *testing.T) {
		raw := `{"text": "你好"`
		reply := ParseResponse(raw)
		if reply.Text != raw {
			t.Errorf("未闭合时应整段原文返回，实际 %s", reply.Text)
		}
		if reply.Intent != nil {
			t.Error("intent 应为空")
		}
	})

	t.Run("JSON后有多余右括号", func(t *testing.T) {
		// 截取不做括号配对，尾部多余的 } 会把候选段切坏，整体按纯文本处理
		raw := `{"text":"记好了"} 另外 } 这是多余的`
		reply := ParseResponse(raw)
		if reply.Text != raw {
			t.Errorf("切坏时应整段原文返回，实际 %s", reply.Text)
		}
		if reply.Intent != nil {
			t.Error("intent 应为空")
		}
	})

	t.Run("空字符串", func(t *testing.T) {
		reply := ParseResponse("")
		if reply.Text != "" {
			t.Error("text 应为空串")
		}
		if reply.Intent != nil || len(reply.Suggestions) != 0 {
			t.Error("其余字段应为空")
		}
	})
}

// TestParseResponseTolerance 测试字段级的宽容处理
func TestParseResponseTolerance(t *testing.T) {
	t.Run("未知指令类型置空", func(t *testing.T) {
		raw := `{"text":"嗯","intent":{"type":"weather","data":{}},"suggestions":[]}`
		reply := ParseResponse(raw)
		if reply.Intent != nil {
			t.Error("未知类型的 intent 应为空")
		}
		if reply.Text != "嗯" {
			t.Errorf("text 不应受影响: %s", reply.Text)
		}
	})

	t.Run("intent缺data不崩溃", func(t *testing.T) {
		raw := `{"text":"嗯","intent":{"type":"transaction"},"suggestions":[]}`
		reply := ParseResponse(raw)
		intent, ok := reply.Intent.(*models.TransactionIntent)
		if !ok {
			t.Fatalf("期望记账指令，实际 %T", reply.Intent)
		}
		if intent.Amount != nil {
			t.Error("缺 data 时金额应为空")
		}
	})

	t.Run("非字符串的快捷回复被跳过", func(t *testing.T) {
		raw := `{"text":"嗯","intent":null,"suggestions":["好的",123,null,"继续"]}`
		reply := ParseResponse(raw)
		if len(reply.Suggestions) != 2 {
			t.Fatalf("期望 2 条快捷回复，实际 %d 条", len(reply.Suggestions))
		}
		if reply.Suggestions[0].Text != "好的" || reply.Suggestions[1].Text != "继续" {
			t.Error("快捷回复内容不对")
		}
	})

	t.Run("text缺失时用原文", func(t *testing.T) {
		raw := `{"intent":null,"suggestions":[]}`
		reply := ParseResponse(raw)
		if reply.Text != raw {
			t.Errorf("text 缺失时应回退原文，实际 %s", reply.Text)
		}
	})
}
