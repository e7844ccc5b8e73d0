package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/QYW-woker/AI-Management-sub000/internal/models"
)

// InsertTodo 写入一条待办
func (s *Store) InsertTodo(ctx context.Context, todo *models.Todo) error {
	if todo.ID == "" {
		todo.ID = uuid.NewString()
	}
	if todo.CreatedAt.IsZero() {
		todo.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO todos (id, title, description, due_date, start_time, end_time, priority, quadrant, done, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		todo.ID, todo.Title, todo.Description, todo.DueDate, todo.StartTime, todo.EndTime,
		todo.Priority, todo.Quadrant, boolToInt(todo.Done), todo.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("insert todo error: %w", err)
	}
	return nil
}

// CountPendingTodos 统计某天未完成的待办数量
// 未安排日期的待办视为当天待处理，一并计入
func (s *Store) CountPendingTodos(ctx context.Context, day int64) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM todos WHERE done = 0 AND (due_date = ? OR due_date IS NULL)",
		day,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count pending todos error: %w", err)
	}
	return count, nil
}
