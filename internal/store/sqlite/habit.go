package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/QYW-woker/AI-Management-sub000/internal/models"
	"github.com/QYW-woker/AI-Management-sub000/internal/store"
)

// CreateHabit 创建一个习惯
func (s *Store) CreateHabit(ctx context.Context, habit *models.Habit) error {
	if habit.ID == "" {
		habit.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO habits (id, name, target, active) VALUES (?, ?, ?, ?)",
		habit.ID, habit.Name, habit.Target, boolToInt(habit.Active),
	)
	if err != nil {
		return fmt.Errorf("insert habit error: %w", err)
	}
	return nil
}

// CheckinHabit 按名称给习惯打卡，同一天重复打卡覆盖数值
func (s *Store) CheckinHabit(ctx context.Context, habitName string, day int64, value float64) error {
	var habitID string
	err := s.db.QueryRowContext(ctx,
		"SELECT id FROM habits WHERE name = ? AND active = 1", habitName,
	).Scan(&habitID)
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("query habit error: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO habit_records (id, habit_id, day, value) VALUES (?, ?, ?, ?)
		 ON CONFLICT(habit_id, day) DO UPDATE SET value = excluded.value`,
		uuid.NewString(), habitID, day, value,
	)
	if err != nil {
		return fmt.Errorf("insert habit record error: %w", err)
	}
	return nil
}

// HabitCheckinRatio 统计某天已打卡和启用中的习惯数量
func (s *Store) HabitCheckinRatio(ctx context.Context, day int64) (done, total int, err error) {
	if err = s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM habits WHERE active = 1",
	).Scan(&total); err != nil {
		return 0, 0, fmt.Errorf("count habits error: %w", err)
	}

	if err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT r.habit_id) FROM habit_records r
		 JOIN habits h ON h.id = r.habit_id
		 WHERE r.day = ? AND h.active = 1`,
		day,
	).Scan(&done); err != nil {
		return 0, 0, fmt.Errorf("count checkins error: %w", err)
	}
	return done, total, nil
}

// HabitWeeklyCounts 统计日期区间内每个习惯的打卡天数
func (s *Store) HabitWeeklyCounts(ctx context.Context, fromDay, toDay int64) ([]models.HabitWeekly, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT h.name, COUNT(r.id) FROM habits h
		 LEFT JOIN habit_records r ON r.habit_id = h.id AND r.day BETWEEN ? AND ?
		 WHERE h.active = 1
		 GROUP BY h.id ORDER BY h.name`,
		fromDay, toDay,
	)
	if err != nil {
		return nil, fmt.Errorf("query habit weekly counts error: %w", err)
	}
	defer rows.Close()

	var result []models.HabitWeekly
	for rows.Next() {
		var hw models.HabitWeekly
		if err := rows.Scan(&hw.Name, &hw.Count); err != nil {
			return nil, fmt.Errorf("scan habit weekly error: %w", err)
		}
		result = append(result, hw)
	}
	return result, rows.Err()
}
