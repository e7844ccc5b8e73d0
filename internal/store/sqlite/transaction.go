package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/QYW-woker/AI-Management-sub000/internal/models"
)

// InsertTransaction 写入一笔交易
func (s *Store) InsertTransaction(ctx context.Context, tx *models.Transaction) error {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO transactions (id, type, amount, category, date, note, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		tx.ID, string(tx.Type), tx.Amount, tx.Category, tx.Date, tx.Note, tx.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("insert transaction error: %w", err)
	}
	return nil
}

// ListRecentDuplicates 查询同指纹且创建时间不早于 since 的交易
func (s *Store) ListRecentDuplicates(ctx context.Context, day int64, txType models.TransactionType, amount float64, since time.Time) ([]models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, type, amount, category, date, note, created_at FROM transactions
		 WHERE date = ? AND type = ? AND amount = ? AND created_at >= ?
		 ORDER BY created_at DESC`,
		day, string(txType), amount, since.UnixMilli(),
	)
	if err != nil {
		return nil, fmt.Errorf("query recent duplicates error: %w", err)
	}
	return scanTransactions(rows)
}

// ListSameDayDuplicates 查询同指纹的交易，category 非空时额外按分类过滤
func (s *Store) ListSameDayDuplicates(ctx context.Context, day int64, txType models.TransactionType, amount float64, category string) ([]models.Transaction, error) {
	query := `SELECT id, type, amount, category, date, note, created_at FROM transactions
		 WHERE date = ? AND type = ? AND amount = ?`
	args := []any{day, string(txType), amount}
	if category != "" {
		query += " AND category = ?"
		args = append(args, category)
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query same day duplicates error: %w", err)
	}
	return scanTransactions(rows)
}

// ListTransactionsByDay 列出某天的全部交易，新的在前
func (s *Store) ListTransactionsByDay(ctx context.Context, day int64) ([]models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, type, amount, category, date, note, created_at FROM transactions
		 WHERE date = ? ORDER BY created_at DESC`,
		day,
	)
	if err != nil {
		return nil, fmt.Errorf("query transactions by day error: %w", err)
	}
	return scanTransactions(rows)
}

// SumTransactions 统计日期区间内某类型交易的总金额
func (s *Store) SumTransactions(ctx context.Context, fromDay, toDay int64, txType models.TransactionType) (float64, error) {
	var total sql.NullFloat64
	err := s.db.QueryRowContext(ctx,
		"SELECT SUM(amount) FROM transactions WHERE date BETWEEN ? AND ? AND type = ?",
		fromDay, toDay, string(txType),
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum transactions error: %w", err)
	}
	return total.Float64, nil
}

// TopCategories 统计日期区间内按分类汇总的金额，降序取前 limit 个
func (s *Store) TopCategories(ctx context.Context, fromDay, toDay int64, txType models.TransactionType, limit int) ([]models.CategoryAmount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT category, SUM(amount) AS total FROM transactions
		 WHERE date BETWEEN ? AND ? AND type = ? AND category != ''
		 GROUP BY category ORDER BY total DESC LIMIT ?`,
		fromDay, toDay, string(txType), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query top categories error: %w", err)
	}
	defer rows.Close()

	var result []models.CategoryAmount
	for rows.Next() {
		var ca models.CategoryAmount
		if err := rows.Scan(&ca.Category, &ca.Amount); err != nil {
			return nil, fmt.Errorf("scan top categories error: %w", err)
		}
		result = append(result, ca)
	}
	return result, rows.Err()
}

// scanTransactions 把查询结果读成交易列表
func scanTransactions(rows *sql.Rows) ([]models.Transaction, error) {
	defer rows.Close()

	var result []models.Transaction
	for rows.Next() {
		var tx models.Transaction
		var createdAt int64
		if err := rows.Scan(&tx.ID, &tx.Type, &tx.Amount, &tx.Category, &tx.Date, &tx.Note, &createdAt); err != nil {
			return nil, fmt.Errorf("scan transaction error: %w", err)
		}
		tx.CreatedAt = time.UnixMilli(createdAt)
		result = append(result, tx)
	}
	return result, rows.Err()
}
