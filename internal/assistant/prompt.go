package assistant

import (
	"fmt"
	"strings"
	"time"

	"github.com/QYW-woker/AI-Management-sub000/internal/llm"
	"github.com/QYW-woker/AI-Management-sub000/internal/models"
)

// weekdayNames 星期的中文名
var weekdayNames = map[time.Weekday]string{
	time.Sunday:    "周日",
	time.Monday:    "周一",
	time.Tuesday:   "周二",
	time.Wednesday: "周三",
	time.Thursday:  "周四",
	time.Friday:    "周五",
	time.Saturday:  "周六",
}

// PromptBuilder 组装发给模型的消息序列
type PromptBuilder struct {
	window            int
	expenseCategories []string
	incomeCategories  []string
}

// NewPromptBuilder 创建提示词构建器
func NewPromptBuilder(window int) *PromptBuilder {
	if window <= 0 {
		window = DefaultContextWindow
	}
	return &PromptBuilder{window: window}
}

// Window 返回带入提示词的历史轮数
func (p *PromptBuilder) Window() int {
	return p.window
}

// SetCategories 设置提示词里展示的可用分类
func (p *PromptBuilder) SetCategories(expense, income []string) {
	p.expenseCategories = expense
	p.incomeCategories = income
}

// Build 组装完整消息序列：系统提示在前，近期历史居中，当前用户消息最后
// 相同输入产出相同序列，系统提示每轮按当天数据重新生成
func (p *PromptBuilder) Build(recent []models.ChatMessage, snap *DailySnapshot, userText string) []llm.Message {
	messages := make([]llm.Message, 0, len(recent)+2)
	messages = append(messages, llm.Message{
		Role:    llm.RoleSystem,
		Content: p.buildSystemPrompt(snap),
	})
	for _, m := range recent {
		messages = append(messages, llm.Message{
			Role:    string(m.Role),
			Content: m.Content,
		})
	}
	messages = append(messages, llm.Message{
		Role:    llm.RoleUser,
		Content: userText,
	})
	return messages
}

// buildSystemPrompt 生成系统提示词
func (p *PromptBuilder) buildSystemPrompt(snap *DailySnapshot) string {
	var sb strings.Builder

	sb.WriteString("你是「小管家」，用户的个人生活管理助手，帮用户记账、管理待办、打卡习惯、跟进目标。\n")
	sb.WriteString("语气自然友好，回复简短。\n\n")

	now := snap.Date
	fmt.Fprintf(&sb, "当前日期: %s %s（纪元日 %d）\n\n",
		now.Format("2006-01-02"), weekdayNames[now.Weekday()], models.EpochDay(now))

	sb.WriteString("## 用户数据概览\n")
	sb.WriteString(snap.Render())
	sb.WriteString("\n")

	sb.WriteString("## 你的能力\n")
	sb.WriteString("识别用户消息中的指令并放入 intent 字段：\n")
	sb.WriteString("1. transaction：记一笔收入或支出\n")
	sb.WriteString("2. todo：创建待办事项\n")
	sb.WriteString("3. habit：习惯打卡\n")
	sb.WriteString("4. goal：查看目标进度\n")
	sb.WriteString("5. query：查询统计数据\n")
	sb.WriteString("普通聊天不含指令时 intent 置 null。\n\n")

	if len(p.expenseCategories) > 0 || len(p.incomeCategories) > 0 {
		sb.WriteString("## 可用分类\n")
		if len(p.expenseCategories) > 0 {
			fmt.Fprintf(&sb, "支出：%s\n", strings.Join(p.expenseCategories, "、"))
		}
		if len(p.incomeCategories) > 0 {
			fmt.Fprintf(&sb, "收入：%s\n", strings.Join(p.incomeCategories, "、"))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## 输出格式（仅输出JSON）\n")
	sb.WriteString(`{"text":"回复内容","intent":{"type":"指令类型","data":{}} 或 null,"suggestions":["快捷回复"] 或 null}` + "\n\n")
	sb.WriteString("intent.type 取值与 data 字段：\n")
	sb.WriteString("- transaction：transactionType（income/expense）、amount（数字）、category、date（纪元日）、note\n")
	sb.WriteString("- todo：title、description、dueDate（纪元日）、startTime、endTime、priority、quadrant\n")
	sb.WriteString("- habit：habitName、value（数字）\n")
	sb.WriteString("- goal：goalName\n")
	sb.WriteString("- query：queryType，取值 today_expense/month_expense/month_income/category_expense/habit_streak/goal_progress/savings_progress\n\n")

	sb.WriteString("## 规则\n")
	sb.WriteString("- 信息不足时在 text 中追问，intent 置 null\n")
	sb.WriteString("- amount 必须是数字，不要加引号\n")
	fmt.Fprintf(&sb, "- 日期一律用纪元日整数，今天是 %d\n", models.EpochDay(now))
	sb.WriteString("- suggestions 最多 3 条，每条不超过 8 个字\n")
	sb.WriteString("- 只输出一个 JSON 对象，不要附加其他文字\n")

	return sb.String()
}
