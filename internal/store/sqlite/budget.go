package sqlite

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/QYW-woker/AI-Management-sub000/internal/models"
)

// CreateBudget 创建或更新某分类的月度预算
func (s *Store) CreateBudget(ctx context.Context, budget *models.Budget) error {
	if budget.ID == "" {
		budget.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO budgets (id, category, month_limit) VALUES (?, ?, ?)
		 ON CONFLICT(category) DO UPDATE SET month_limit = excluded.month_limit`,
		budget.ID, budget.Category, budget.Limit,
	)
	if err != nil {
		return fmt.Errorf("insert budget error: %w", err)
	}
	return nil
}

// ListBudgetUsage 统计日期区间内各分类预算的使用情况
func (s *Store) ListBudgetUsage(ctx context.Context, fromDay, toDay int64) ([]models.BudgetUsage, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT b.category, b.month_limit,
		        COALESCE((SELECT SUM(t.amount) FROM transactions t
		                  WHERE t.category = b.category AND t.type = ? AND t.date BETWEEN ? AND ?), 0) AS spent
		 FROM budgets b ORDER BY b.category`,
		string(models.TransactionExpense), fromDay, toDay,
	)
	if err != nil {
		return nil, fmt.Errorf("query budget usage error: %w", err)
	}
	defer rows.Close()

	var result []models.BudgetUsage
	for rows.Next() {
		var bu models.BudgetUsage
		if err := rows.Scan(&bu.Category, &bu.Limit, &bu.Spent); err != nil {
			return nil, fmt.Errorf("scan budget usage error: %w", err)
		}
		if bu.Limit > 0 {
			bu.Percent = bu.Spent / bu.Limit * 100
		}
		result = append(result, bu)
	}
	return result, rows.Err()
}
