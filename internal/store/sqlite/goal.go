package sqlite

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/QYW-woker/AI-Management-sub000/internal/models"
)

// CreateGoal 创建一个目标
func (s *Store) CreateGoal(ctx context.Context, goal *models.Goal) error {
	if goal.ID == "" {
		goal.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO goals (id, name, type, target, current, deadline, active) VALUES (?, ?, ?, ?, ?, ?, ?)",
		goal.ID, goal.Name, goal.Type, goal.Target, goal.Current, goal.Deadline, boolToInt(goal.Active),
	)
	if err != nil {
		return fmt.Errorf("insert goal error: %w", err)
	}
	return nil
}

// CountActiveGoals 统计进行中的目标数量
func (s *Store) CountActiveGoals(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM goals WHERE active = 1",
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count goals error: %w", err)
	}
	return count, nil
}

// ListGoalProgress 列出进行中目标的完成进度
func (s *Store) ListGoalProgress(ctx context.Context) ([]models.GoalProgress, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name, type, target, current FROM goals WHERE active = 1 ORDER BY name",
	)
	if err != nil {
		return nil, fmt.Errorf("query goal progress error: %w", err)
	}
	defer rows.Close()

	var result []models.GoalProgress
	for rows.Next() {
		var gp models.GoalProgress
		if err := rows.Scan(&gp.Name, &gp.Type, &gp.Target, &gp.Current); err != nil {
			return nil, fmt.Errorf("scan goal progress error: %w", err)
		}
		if gp.Target > 0 {
			gp.Percent = gp.Current / gp.Target * 100
		}
		result = append(result, gp)
	}
	return result, rows.Err()
}
