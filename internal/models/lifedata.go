package models

import "time"

// Todo 待办事项
type Todo struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	DueDate     *int64    `json:"dueDate,omitempty"` // 纪元日，nil 表示未安排日期
	StartTime   string    `json:"startTime,omitempty"`
	EndTime     string    `json:"endTime,omitempty"`
	Priority    int       `json:"priority"`
	Quadrant    int       `json:"quadrant"`
	Done        bool      `json:"done"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Habit 习惯定义
type Habit struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Target float64 `json:"target"`
	Active bool    `json:"active"`
}

// HabitRecord 某天的习惯打卡记录
type HabitRecord struct {
	ID      string  `json:"id"`
	HabitID string  `json:"habitId"`
	Day     int64   `json:"day"` // 纪元日
	Value   float64 `json:"value"`
}

// HabitWeekly 习惯近一周打卡天数
type HabitWeekly struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Goal 长期目标
type Goal struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Target   float64 `json:"target"`
	Current  float64 `json:"current"`
	Deadline *int64  `json:"deadline,omitempty"` // 纪元日
	Active   bool    `json:"active"`
}

// GoalProgress 目标完成进度
type GoalProgress struct {
	Name    string  `json:"name"`
	Type    string  `json:"type"`
	Percent float64 `json:"percent"`
	Current float64 `json:"current"`
	Target  float64 `json:"target"`
}
