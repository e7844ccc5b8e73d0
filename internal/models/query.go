package models

import "strings"

// TrendDirection 环比趋势方向
type TrendDirection string

const (
	TrendUp     TrendDirection = "up"
	TrendDown   TrendDirection = "down"
	TrendStable TrendDirection = "stable"
)

// ParseTrend 宽容解析趋势方向，未识别返回空
func ParseTrend(s string) TrendDirection {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return TrendUp
	case "down":
		return TrendDown
	case "stable":
		return TrendStable
	default:
		return ""
	}
}

// QueryDetail 查询结果中的一行指标
type QueryDetail struct {
	Label  string         `json:"label"`
	Value  string         `json:"value"`
	Change *float64       `json:"change,omitempty"` // 环比百分比
	Trend  TrendDirection `json:"trend,omitempty"`
}

// DataQueryResult 数据查询结果
// 解析失败时 Success 为 false，Summary 给出提示，结构始终完整
type DataQueryResult struct {
	Success     bool          `json:"success"`
	QueryType   string        `json:"queryType"`
	Summary     string        `json:"summary"`
	Details     []QueryDetail `json:"details"`
	Suggestions []string      `json:"suggestions"`
}
