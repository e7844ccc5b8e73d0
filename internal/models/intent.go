package models

import "strings"

// IntentKind 指令类型标识
type IntentKind string

const (
	IntentTransaction  IntentKind = "transaction"
	IntentTodo         IntentKind = "todo"
	IntentHabitCheckin IntentKind = "habit"
	IntentGoal         IntentKind = "goal"
	IntentQuery        IntentKind = "query"
)

// CommandIntent 从助手回复中解析出的类型化指令
// nil 表示纯聊天回复，不触发任何动作
type CommandIntent interface {
	Kind() IntentKind
}

// NewCommandIntent 按 type 字段分发到对应的指令构造器
// 未知或缺失的类型返回 nil
func NewCommandIntent(intentType string, data map[string]any) CommandIntent {
	switch intentType {
	case "transaction":
		return NewTransactionIntent(data)
	case "todo":
		return NewTodoIntent(data)
	case "habit":
		return NewHabitCheckinIntent(data)
	case "goal":
		return NewGoalIntent(data)
	case "query":
		return NewQueryIntent(data)
	default:
		return nil
	}
}

// TransactionIntent 记账指令
type TransactionIntent struct {
	Type     TransactionType `json:"transactionType"`
	Amount   *float64        `json:"amount"`
	Category string          `json:"category,omitempty"`
	Date     *int64          `json:"date,omitempty"` // 纪元日
	Note     string          `json:"note,omitempty"`
}

// Kind 返回指令类型
func (*TransactionIntent) Kind() IntentKind { return IntentTransaction }

// NewTransactionIntent 从未类型化的 data 构造记账指令
// 字段逐个宽容转换，缺失或类型不符时退化为 nil/零值，不会 panic
func NewTransactionIntent(data map[string]any) *TransactionIntent {
	return &TransactionIntent{
		Type:     ParseTransactionType(stringField(data, "transactionType")),
		Amount:   numberField(data, "amount"),
		Category: stringField(data, "category"),
		Date:     dayField(data, "date"),
		Note:     stringField(data, "note"),
	}
}

// TodoIntent 创建待办指令
type TodoIntent struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	DueDate     *int64 `json:"dueDate,omitempty"` // 纪元日
	StartTime   string `json:"startTime,omitempty"`
	EndTime     string `json:"endTime,omitempty"`
	Priority    *int   `json:"priority,omitempty"`
	Quadrant    *int   `json:"quadrant,omitempty"` // 四象限 1-4
}

// Kind 返回指令类型
func (*TodoIntent) Kind() IntentKind { return IntentTodo }

// NewTodoIntent 从未类型化的 data 构造待办指令
func NewTodoIntent(data map[string]any) *TodoIntent {
	return &TodoIntent{
		Title:       stringField(data, "title"),
		Description: stringField(data, "description"),
		DueDate:     dayField(data, "dueDate"),
		StartTime:   stringField(data, "startTime"),
		EndTime:     stringField(data, "endTime"),
		Priority:    intField(data, "priority"),
		Quadrant:    intField(data, "quadrant"),
	}
}

// HabitCheckinIntent 习惯打卡指令
type HabitCheckinIntent struct {
	HabitName string   `json:"habitName"`
	Value     *float64 `json:"value,omitempty"`
}

// Kind 返回指令类型
func (*HabitCheckinIntent) Kind() IntentKind { return IntentHabitCheckin }

// NewHabitCheckinIntent 从未类型化的 data 构造打卡指令
func NewHabitCheckinIntent(data map[string]any) *HabitCheckinIntent {
	return &HabitCheckinIntent{
		HabitName: stringField(data, "habitName"),
		Value:     numberField(data, "value"),
	}
}

// GoalAction 目标指令动作
type GoalAction string

// GoalActionCheckStatus 查看目标进度
// 自然语言暂不区分目标子操作，统一按查看进度处理
const GoalActionCheckStatus GoalAction = "check_status"

// GoalIntent 目标指令
type GoalIntent struct {
	GoalName string     `json:"goalName,omitempty"`
	Action   GoalAction `json:"action"`
}

// Kind 返回指令类型
func (*GoalIntent) Kind() IntentKind { return IntentGoal }

// NewGoalIntent 从未类型化的 data 构造目标指令
func NewGoalIntent(data map[string]any) *GoalIntent {
	return &GoalIntent{
		GoalName: stringField(data, "goalName"),
		Action:   GoalActionCheckStatus,
	}
}

// QueryType 数据查询类型
type QueryType string

const (
	QueryTodayExpense    QueryType = "today_expense"
	QueryMonthExpense    QueryType = "month_expense"
	QueryMonthIncome     QueryType = "month_income"
	QueryCategoryExpense QueryType = "category_expense"
	QueryHabitStreak     QueryType = "habit_streak"
	QueryGoalProgress    QueryType = "goal_progress"
	QuerySavingsProgress QueryType = "savings_progress"
)

// ParseQueryType 宽容解析查询类型（不区分大小写），未识别时回退为今日支出
func ParseQueryType(s string) QueryType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "month_expense":
		return QueryMonthExpense
	case "month_income":
		return QueryMonthIncome
	case "category_expense":
		return QueryCategoryExpense
	case "habit_streak":
		return QueryHabitStreak
	case "goal_progress":
		return QueryGoalProgress
	case "savings_progress":
		return QuerySavingsProgress
	default:
		return QueryTodayExpense
	}
}

// QueryIntent 数据查询指令
type QueryIntent struct {
	Type QueryType `json:"queryType"`
}

// Kind 返回指令类型
func (*QueryIntent) Kind() IntentKind { return IntentQuery }

// NewQueryIntent 从未类型化的 data 构造查询指令
func NewQueryIntent(data map[string]any) *QueryIntent {
	return &QueryIntent{Type: ParseQueryType(stringField(data, "queryType"))}
}

// stringField 读取字符串字段，缺失或类型不符返回空串
func stringField(data map[string]any, key string) string {
	if v, ok := data[key].(string); ok {
		return v
	}
	return ""
}

// numberField 读取数值字段，缺失或类型不符返回 nil
// JSON 解码出的数字是 float64，Go 侧构造的 int 也一并接受
func numberField(data map[string]any, key string) *float64 {
	switch v := data[key].(type) {
	case float64:
		return &v
	case int:
		f := float64(v)
		return &f
	case int64:
		f := float64(v)
		return &f
	}
	return nil
}

// intField 读取整数字段，缺失或类型不符返回 nil
func intField(data map[string]any, key string) *int {
	if f := numberField(data, key); f != nil {
		n := int(*f)
		return &n
	}
	return nil
}

// dayField 读取纪元日字段，缺失或类型不符返回 nil
func dayField(data map[string]any, key string) *int64 {
	if f := numberField(data, key); f != nil {
		d := int64(*f)
		return &d
	}
	return nil
}
