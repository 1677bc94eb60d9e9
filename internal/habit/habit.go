package habit

import (
	"time"
)

// DateLayout 是所有日历日期字段的持久化格式。
const DateLayout = "2006-01-02"

// Frequency 表示习惯的重复频率。
type Frequency string

const (
	FrequencyDaily    Frequency = "daily"
	FrequencyWeekdays Frequency = "weekdays"
	FrequencyWeekends Frequency = "weekends"
	FrequencyCustom   Frequency = "custom"
)

// CompletionRecord 记录一次打卡：date 必须等于 time 的日历日期部分。
type CompletionRecord struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// CompletionNote 是打卡备注，按日期追加，从不修改。
type CompletionNote struct {
	Date string `json:"date"`
	Note string `json:"note"`
}

// Habit 定义了习惯模型
// Days 由 Frequency 在创建时推导，活跃习惯的 Days 永远非空
// Completed 为生命周期累计值，单调不减；Streak 可重置
// LastCompletedDate 是"今天是否已完成"的唯一事实来源，空串表示从未完成
type Habit struct {
	ID                string             `json:"id"`
	Name              string             `json:"name"`
	Frequency         Frequency          `json:"frequency"`
	Days              []string           `json:"days"`
	Category          string             `json:"category"`
	Completed         int                `json:"completed"`
	Streak            int                `json:"streak"`
	WeeklyCompleted   int                `json:"weeklyCompleted"`
	LastCompletedDate string             `json:"lastCompletedDate,omitempty"`
	CompletionHistory []CompletionRecord `json:"completionHistory"`
	CompletionNotes   []CompletionNote   `json:"completionNotes,omitempty"`
	Time              string             `json:"time,omitempty"`
	Color             string             `json:"color,omitempty"`
	Reminder          bool               `json:"reminder"`
	CreatedAt         string             `json:"createdAt"`
}

var allWeekdays = []string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// DaysForFrequency 根据频率展开周几集合；custom 频率使用调用方给定的集合。
func DaysForFrequency(freq Frequency, custom []string) []string {
	switch freq {
	case FrequencyDaily:
		return append([]string(nil), allWeekdays...)
	case FrequencyWeekdays:
		return []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}
	case FrequencyWeekends:
		return []string{"Saturday", "Sunday"}
	case FrequencyCustom:
		return normalizeDays(custom)
	default:
		return append([]string(nil), allWeekdays...)
	}
}

func normalizeDays(days []string) []string {
	out := make([]string, 0, len(days))
	for _, d := range days {
		if isWeekdayName(d) && !containsDay(out, d) {
			out = append(out, d)
		}
	}
	return out
}

func isWeekdayName(name string) bool {
	return containsDay(allWeekdays, name)
}

func containsDay(days []string, name string) bool {
	for _, d := range days {
		if d == name {
			return true
		}
	}
	return false
}

// ScheduledOn 判断习惯在给定的周几名称上是否排期。
func (h Habit) ScheduledOn(weekday string) bool {
	return containsDay(h.Days, weekday)
}

// CompletedOn 判断习惯的最近完成日期是否就是给定日期。
func (h Habit) CompletedOn(date string) bool {
	return h.LastCompletedDate != "" && h.LastCompletedDate == date
}

// Clone 返回深拷贝，保证读取方拿到的快照与仓库内部状态彻底隔离。
func (h Habit) Clone() Habit {
	out := h
	out.Days = append([]string(nil), h.Days...)
	out.CompletionHistory = append([]CompletionRecord(nil), h.CompletionHistory...)
	out.CompletionNotes = append([]CompletionNote(nil), h.CompletionNotes...)
	return out
}

// FormatDate 将时间截断为持久化用的日历日期串。
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// WeekdayName 返回给定时间的周几名称（Sunday..Saturday）。
func WeekdayName(t time.Time) string {
	return t.Weekday().String()
}

// defaultCategoryColors 是类别到展示色的固定映射，未知类别落到默认灰。
var defaultCategoryColors = map[string]string{
	"Health":       "#4CAF50",
	"Fitness":      "#FF5722",
	"Productivity": "#2196F3",
	"Learning":     "#9C27B0",
	"Mindfulness":  "#00BCD4",
	"Creative":     "#FF9800",
	"Social":       "#E91E63",
	"Finance":      "#795548",
}

const defaultColor = "#9E9E9E"

// CategoryColor 返回类别对应的展示色；未知类别返回默认色。
func CategoryColor(category string) string {
	if color, ok := defaultCategoryColors[category]; ok {
		return color
	}
	return defaultColor
}

// DefaultCategories 返回仓库初始化时的类别集合，顺序固定。
func DefaultCategories() []string {
	return []string{
		"Health", "Fitness", "Productivity", "Learning",
		"Mindfulness", "Creative", "Social", "Finance",
	}
}
