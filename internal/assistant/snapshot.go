package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/QYW-woker/AI-Management-sub000/internal/models"
	"github.com/QYW-woker/AI-Management-sub000/internal/store"
)

// 快照配置常量
const (
	TopCategoryCount         = 3 // 日常快照带的支出分类数
	AnalysisTopCategoryCount = 5 // 分析快照带的支出分类数
)

// amountPrinter 金额格式化，按中文习惯加千分位
var amountPrinter = message.NewPrinter(language.SimplifiedChinese)

// formatAmount 格式化金额为带千分位的人民币字符串
func formatAmount(v float64) string {
	return amountPrinter.Sprintf("¥%.2f", v)
}

// DailySnapshot 注入日常对话提示词的数据快照
type DailySnapshot struct {
	Date          time.Time
	MonthExpense  float64
	MonthIncome   float64
	PendingTodos  int
	HabitsDone    int
	HabitsTotal   int
	ActiveGoals   int
	BudgetUsage   []models.BudgetUsage
	TopCategories []string
}

// AnalysisSnapshot 注入数据查询提示词的扩展快照
type AnalysisSnapshot struct {
	Date             time.Time
	TodayExpense     float64
	MonthExpense     float64
	MonthIncome      float64
	LastMonthExpense float64
	TopCategories    []models.CategoryAmount
	BudgetUsage      []models.BudgetUsage
	HabitWeekly      []models.HabitWeekly
	GoalProgress     []models.GoalProgress
}

// SnapshotBuilder 从各数据存储聚合快照
type SnapshotBuilder struct {
	transactions store.TransactionStore
	todos        store.TodoStore
	habits       store.HabitStore
	goals        store.GoalStore
	budgets      store.BudgetStore
}

// NewSnapshotBuilder 创建快照构建器
func NewSnapshotBuilder(transactions store.TransactionStore, todos store.TodoStore, habits store.HabitStore, goals store.GoalStore, budgets store.BudgetStore) *SnapshotBuilder {
	return &SnapshotBuilder{
		transactions: transactions,
		todos:        todos,
		habits:       habits,
		goals:        goals,
		budgets:      budgets,
	}
}

// monthRange 返回 t 所在月份的纪元日区间
func monthRange(t time.Time) (int64, int64) {
	y, m, _ := t.Date()
	first := time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1)
	return models.EpochDay(first), models.EpochDay(last)
}

// lastMonthRange 返回 t 上个月的纪元日区间
func lastMonthRange(t time.Time) (int64, int64) {
	y, m, _ := t.Date()
	first := time.Date(y, m, 1, 0, 0, 0, 0, t.Location()).AddDate(0, -1, 0)
	last := first.AddDate(0, 1, -1)
	return models.EpochDay(first), models.EpochDay(last)
}

// BuildDaily 构建日常对话用的数据快照
func (b *SnapshotBuilder) BuildDaily(ctx context.Context, asOf time.Time) (*DailySnapshot, error) {
	today := models.EpochDay(asOf)
	monthFrom, monthTo := monthRange(asOf)

	snap := &DailySnapshot{Date: asOf}

	var err error
	if snap.MonthExpense, err = b.transactions.SumTransactions(ctx, monthFrom, monthTo, models.TransactionExpense); err != nil {
		return nil, fmt.Errorf("build snapshot: %w", err)
	}
	if snap.MonthIncome, err = b.transactions.SumTransactions(ctx, monthFrom, monthTo, models.TransactionIncome); err != nil {
		return nil, fmt.Errorf("build snapshot: %w", err)
	}
	if snap.PendingTodos, err = b.todos.CountPendingTodos(ctx, today); err != nil {
		return nil, fmt.Errorf("build snapshot: %w", err)
	}
	if snap.HabitsDone, snap.HabitsTotal, err = b.habits.HabitCheckinRatio(ctx, today); err != nil {
		return nil, fmt.Errorf("build snapshot: %w", err)
	}
	if snap.ActiveGoals, err = b.goals.CountActiveGoals(ctx); err != nil {
		return nil, fmt.Errorf("build snapshot: %w", err)
	}
	if snap.BudgetUsage, err = b.budgets.ListBudgetUsage(ctx, monthFrom, monthTo); err != nil {
		return nil, fmt.Errorf("build snapshot: %w", err)
	}

	top, err := b.transactions.TopCategories(ctx, monthFrom, monthTo, models.TransactionExpense, TopCategoryCount)
	if err != nil {
		return nil, fmt.Errorf("build snapshot: %w", err)
	}
	for _, ca := range top {
		snap.TopCategories = append(snap.TopCategories, ca.Category)
	}
	return snap, nil
}

// BuildAnalysis 构建数据查询用的扩展快照
func (b *SnapshotBuilder) BuildAnalysis(ctx context.Context, asOf time.Time) (*AnalysisSnapshot, error) {
	today := models.EpochDay(asOf)
	monthFrom, monthTo := monthRange(asOf)
	lastFrom, lastTo := lastMonthRange(asOf)

	snap := &AnalysisSnapshot{Date: asOf}

	var err error
	if snap.TodayExpense, err = b.transactions.SumTransactions(ctx, today, today, models.TransactionExpense); err != nil {
		return nil, fmt.Errorf("build analysis snapshot: %w", err)
	}
	if snap.MonthExpense, err = b.transactions.SumTransactions(ctx, monthFrom, monthTo, models.TransactionExpense); err != nil {
		return nil, fmt.Errorf("build analysis snapshot: %w", err)
	}
	if snap.MonthIncome, err = b.transactions.SumTransactions(ctx, monthFrom, monthTo, models.TransactionIncome); err != nil {
		return nil, fmt.Errorf("build analysis snapshot: %w", err)
	}
	if snap.LastMonthExpense, err = b.transactions.SumTransactions(ctx, lastFrom, lastTo, models.TransactionExpense); err != nil {
		return nil, fmt.Errorf("build analysis snapshot: %w", err)
	}
	if snap.TopCategories, err = b.transactions.TopCategories(ctx, monthFrom, monthTo, models.TransactionExpense, AnalysisTopCategoryCount); err != nil {
		return nil, fmt.Errorf("build analysis snapshot: %w", err)
	}
	if snap.BudgetUsage, err = b.budgets.ListBudgetUsage(ctx, monthFrom, monthTo); err != nil {
		return nil, fmt.Errorf("build analysis snapshot: %w", err)
	}
	// 近一周打卡，含今天共 7 天
	if snap.HabitWeekly, err = b.habits.HabitWeeklyCounts(ctx, today-6, today); err != nil {
		return nil, fmt.Errorf("build analysis snapshot: %w", err)
	}
	if snap.GoalProgress, err = b.goals.ListGoalProgress(ctx); err != nil {
		return nil, fmt.Errorf("build analysis snapshot: %w", err)
	}
	return snap, nil
}

// Render 渲染成提示词里的数据概览条目
func (s *DailySnapshot) Render() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "- 本月支出 %s，收入 %s\n", formatAmount(s.MonthExpense), formatAmount(s.MonthIncome))
	fmt.Fprintf(&sb, "- 今日待办 %d 件未完成\n", s.PendingTodos)
	if s.HabitsTotal > 0 {
		fmt.Fprintf(&sb, "- 今日习惯打卡 %d/%d\n", s.HabitsDone, s.HabitsTotal)
	}
	if s.ActiveGoals > 0 {
		fmt.Fprintf(&sb, "- 进行中的目标 %d 个\n", s.ActiveGoals)
	}
	for _, bu := range s.BudgetUsage {
		fmt.Fprintf(&sb, "- %s预算已用 %.0f%%（%s/%s）\n", bu.Category, bu.Percent, formatAmount(bu.Spent), formatAmount(bu.Limit))
	}
	if len(s.TopCategories) > 0 {
		fmt.Fprintf(&sb, "- 本月支出最多：%s\n", strings.Join(s.TopCategories, "、"))
	}
	return sb.String()
}

// StatusLine 渲染成欢迎语里的一句话状态
func (s *DailySnapshot) StatusLine() string {
	return fmt.Sprintf("本月已支出 %s，今日还有 %d 件待办。", formatAmount(s.MonthExpense), s.PendingTodos)
}

// Render 渲染成查询提示词里的数据条目
func (s *AnalysisSnapshot) Render() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "- 今日支出 %s\n", formatAmount(s.TodayExpense))
	fmt.Fprintf(&sb, "- 本月支出 %s，收入 %s\n", formatAmount(s.MonthExpense), formatAmount(s.MonthIncome))
	fmt.Fprintf(&sb, "- 上月支出 %s\n", formatAmount(s.LastMonthExpense))
	for _, ca := range s.TopCategories {
		fmt.Fprintf(&sb, "- 本月「%s」支出 %s\n", ca.Category, formatAmount(ca.Amount))
	}
	for _, bu := range s.BudgetUsage {
		fmt.Fprintf(&sb, "- %s预算已用 %.0f%%（%s/%s）\n", bu.Category, bu.Percent, formatAmount(bu.Spent), formatAmount(bu.Limit))
	}
	for _, hw := range s.HabitWeekly {
		fmt.Fprintf(&sb, "- 习惯「%s」近 7 天打卡 %d 次\n", hw.Name, hw.Count)
	}
	for _, gp := range s.GoalProgress {
		fmt.Fprintf(&sb, "- 目标「%s」完成 %.1f%%（%.0f/%.0f）\n", gp.Name, gp.Percent, gp.Current, gp.Target)
	}
	return sb.String()
}
