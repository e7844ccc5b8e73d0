package sqlite

import (
	"context"
	"fmt"

	"github.com/QYW-woker/AI-Management-sub000/internal/models"
)

// CategoryNames 列出某类型下的全部分类名称，按创建顺序返回
func (s *Store) CategoryNames(ctx context.Context, txType models.TransactionType) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name FROM categories WHERE type = ? ORDER BY rowid",
		string(txType),
	)
	if err != nil {
		return nil, fmt.Errorf("query categories error: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan category error: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
