package models

import (
	"strings"
	"time"
)

// TransactionType 交易类型
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// ParseTransactionType 宽容解析交易类型（不区分大小写），非收入一律按支出处理
func ParseTransactionType(s string) TransactionType {
	if strings.EqualFold(strings.TrimSpace(s), "income") {
		return TransactionIncome
	}
	return TransactionExpense
}

// Transaction 一笔交易记录
type Transaction struct {
	ID        string          `json:"id"`
	Type      TransactionType `json:"type"`
	Amount    float64         `json:"amount"`
	Category  string          `json:"category"`
	Date      int64           `json:"date"` // 纪元日
	Note      string          `json:"note,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// DuplicateType 重复检测结果类型
type DuplicateType string

const (
	DuplicateNone    DuplicateType = "none"
	DuplicateRecent  DuplicateType = "recent"
	DuplicateSameDay DuplicateType = "same_day"
)

// AddTransactionResult 记账结果
// 疑似重复不是错误，作为数据返回给调用方确认
type AddTransactionResult struct {
	Success             bool          `json:"success"`
	TransactionID       string        `json:"transactionId,omitempty"`
	DuplicateType       DuplicateType `json:"duplicateType"`
	PotentialDuplicates []Transaction `json:"potentialDuplicates,omitempty"`
}

// Category 收支分类
type Category struct {
	ID   string          `json:"id"`
	Name string          `json:"name"`
	Type TransactionType `json:"type"`
}

// Budget 分类月度预算
type Budget struct {
	ID       string  `json:"id"`
	Category string  `json:"category"`
	Limit    float64 `json:"limit"`
}

// BudgetUsage 预算使用情况
type BudgetUsage struct {
	Category string  `json:"category"`
	Limit    float64 `json:"limit"`
	Spent    float64 `json:"spent"`
	Percent  float64 `json:"percent"`
}

// CategoryAmount 按分类汇总的金额
type CategoryAmount struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// EpochDay 取本地日历日对应的纪元日（1970-01-01 起的天数）
func EpochDay(t time.Time) int64 {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
}

// DayToTime 纪元日转回 UTC 零点时间
func DayToTime(day int64) time.Time {
	return time.Unix(day*86400, 0).UTC()
}
