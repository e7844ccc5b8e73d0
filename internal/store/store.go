package store

import (
	"context"
	"errors"
	"time"

	"github.com/QYW-woker/AI-Management-sub000/internal/models"
)

// ErrNotFound 记录不存在
var ErrNotFound = errors.New("记录不存在")

// TransactionStore 交易数据访问接口
type TransactionStore interface {
	// InsertTransaction 写入一笔交易，ID 和创建时间缺失时自动填充
	InsertTransaction(ctx context.Context, tx *models.Transaction) error
	// ListRecentDuplicates 查询同日期同类型同金额、且创建时间不早于 since 的交易
	ListRecentDuplicates(ctx context.Context, day int64, txType models.TransactionType, amount float64, since time.Time) ([]models.Transaction, error)
	// ListSameDayDuplicates 查询同日期同类型同金额的交易，category 非空时额外要求分类一致
	ListSameDayDuplicates(ctx context.Context, day int64, txType models.TransactionType, amount float64, category string) ([]models.Transaction, error)
	// ListTransactionsByDay 列出某天的全部交易，新的在前
	ListTransactionsByDay(ctx context.Context, day int64) ([]models.Transaction, error)
	// SumTransactions 统计日期区间内某类型交易的总金额
	SumTransactions(ctx context.Context, fromDay, toDay int64, txType models.TransactionType) (float64, error)
	// TopCategories 统计日期区间内按分类汇总的金额，按金额降序取前 limit 个
	TopCategories(ctx context.Context, fromDay, toDay int64, txType models.TransactionType, limit int) ([]models.CategoryAmount, error)
}

// TodoStore 待办数据访问接口
type TodoStore interface {
	// InsertTodo 写入一条待办，ID 和创建时间缺失时自动填充
	InsertTodo(ctx context.Context, todo *models.Todo) error
	// CountPendingTodos 统计某天未完成的待办数量，未安排日期的待办也计入
	CountPendingTodos(ctx context.Context, day int64) (int, error)
}

// HabitStore 习惯数据访问接口
type HabitStore interface {
	// CheckinHabit 按名称给习惯打卡，同一天重复打卡覆盖数值
	CheckinHabit(ctx context.Context, habitName string, day int64, value float64) error
	// HabitCheckinRatio 统计某天已打卡和启用中的习惯数量
	HabitCheckinRatio(ctx context.Context, day int64) (done, total int, err error)
	// HabitWeeklyCounts 统计日期区间内每个习惯的打卡天数
	HabitWeeklyCounts(ctx context.Context, fromDay, toDay int64) ([]models.HabitWeekly, error)
}

// GoalStore 目标数据访问接口
type GoalStore interface {
	// CountActiveGoals 统计进行中的目标数量
	CountActiveGoals(ctx context.Context) (int, error)
	// ListGoalProgress 列出进行中目标的完成进度
	ListGoalProgress(ctx context.Context) ([]models.GoalProgress, error)
}

// BudgetStore 预算数据访问接口
type BudgetStore interface {
	// ListBudgetUsage 统计日期区间内各分类预算的使用情况
	ListBudgetUsage(ctx context.Context, fromDay, toDay int64) ([]models.BudgetUsage, error)
}

// CategoryStore 分类数据访问接口
type CategoryStore interface {
	// CategoryNames 列出某类型下的全部分类名称
	CategoryNames(ctx context.Context, txType models.TransactionType) ([]string, error)
}
