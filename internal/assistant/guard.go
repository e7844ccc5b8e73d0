package assistant

import (
	"context"
	"fmt"
	"time"

	"github.com/QYW-woker/AI-Management-sub000/internal/models"
	"github.com/QYW-woker/AI-Management-sub000/internal/store"
)

// DefaultDuplicateWindow 近期重复的默认判定窗口
const DefaultDuplicateWindow = 5 * time.Minute

// DuplicateGuard 交易写入前的两级重复检测
// 第一级查窗口内的同指纹交易（日期+类型+金额），第二级查同一天的，
// 新交易带分类时第二级额外要求分类一致。
// 查询与写入之间不加锁，并发提交同一指纹可能同时入账。
type DuplicateGuard struct {
	transactions store.TransactionStore
	window       time.Duration
}

// NewDuplicateGuard 创建重复检测器
func NewDuplicateGuard(transactions store.TransactionStore, window time.Duration) *DuplicateGuard {
	if window <= 0 {
		window = DefaultDuplicateWindow
	}
	return &DuplicateGuard{transactions: transactions, window: window}
}

// Add 检测重复并写入交易
// 命中重复时不入账，把疑似重复作为数据返回；force 为 true 时跳过检测直接入账
func (g *DuplicateGuard) Add(ctx context.Context, tx *models.Transaction, force bool) (*models.AddTransactionResult, error) {
	if force {
		if err := g.transactions.InsertTransaction(ctx, tx); err != nil {
			return nil, fmt.Errorf("insert transaction error: %w", err)
		}
		log.Info("transaction forced: %s %.2f", tx.Type, tx.Amount)
		return &models.AddTransactionResult{
			Success:       true,
			TransactionID: tx.ID,
			DuplicateType: models.DuplicateNone,
		}, nil
	}

	since := time.Now().Add(-g.window)
	recent, err := g.transactions.ListRecentDuplicates(ctx, tx.Date, tx.Type, tx.Amount, since)
	if err != nil {
		return nil, fmt.Errorf("check recent duplicates error: %w", err)
	}
	if len(recent) > 0 {
		return &models.AddTransactionResult{
			DuplicateType:       models.DuplicateRecent,
			PotentialDuplicates: recent,
		}, nil
	}

	sameDay, err := g.transactions.ListSameDayDuplicates(ctx, tx.Date, tx.Type, tx.Amount, tx.Category)
	if err != nil {
		return nil, fmt.Errorf("check same day duplicates error: %w", err)
	}
	if len(sameDay) > 0 {
		return &models.AddTransactionResult{
			DuplicateType:       models.DuplicateSameDay,
			PotentialDuplicates: sameDay,
		}, nil
	}

	if err := g.transactions.InsertTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("insert transaction error: %w", err)
	}
	return &models.AddTransactionResult{
		Success:       true,
		TransactionID: tx.ID,
		DuplicateType: models.DuplicateNone,
	}, nil
}
