package analytics

import (
	"math"
	"time"

	"github.com/bharatvansh/habit-tracker-sub000/internal/habit"
)

// Timeframe 选择完成率的统计口径。
type Timeframe string

const (
	TimeframeToday Timeframe = "today"
	TimeframeWeek  Timeframe = "week"
	TimeframeMonth Timeframe = "month"
)

// StreakSummary 描述最长连胜及其归属习惯。
type StreakSummary struct {
	Days int    `json:"days"`
	Name string `json:"name"`
}

// Progress 描述今日进度：completed / total。
type Progress struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// CompletionRate 按口径计算完成率百分比，始终落在 [0,100]。
// 空集合对任何口径都返回 0；除零分支显式短路，绝不产生 NaN。
func CompletionRate(habits []habit.Habit, tf Timeframe, now time.Time) int {
	if len(habits) == 0 {
		return 0
	}

	switch tf {
	case TimeframeToday:
		return todayRate(habits, now)
	case TimeframeWeek:
		return weekRate(habits)
	case TimeframeMonth:
		return monthRate(habits, now)
	default:
		return 0
	}
}

func todayRate(habits []habit.Habit, now time.Time) int {
	scheduled := scheduledToday(habits, now)
	if len(scheduled) == 0 {
		return 0
	}

	date := habit.FormatDate(now)
	completed := 0
	for _, h := range habits {
		if h.CompletedOn(date) {
			completed++
		}
	}

	return roundPercent(completed, len(scheduled))
}

func weekRate(habits []habit.Habit) int {
	done, expected := 0, 0
	for _, h := range habits {
		done += h.WeeklyCompleted
		expected += len(h.Days)
	}
	if expected == 0 {
		return 0
	}
	return roundPercent(done, expected)
}

// monthRate 用生命周期完成数对上月度期望次数，是刻意保留的近似口径：
// 分子不按月份裁剪，只把结果钳制到 100。
func monthRate(habits []habit.Habit, now time.Time) int {
	done, expected := 0, 0
	days := daysInMonth(now)
	for _, h := range habits {
		done += h.Completed
		expected += int(math.Round(float64(len(h.Days)) / 7 * float64(days)))
	}
	if expected == 0 {
		return 0
	}

	rate := roundPercent(done, expected)
	if rate > 100 {
		return 100
	}
	return rate
}

// LongestStreak 返回当前连胜最高的习惯；并列时保留先遇到的那个。
func LongestStreak(habits []habit.Habit) StreakSummary {
	best := StreakSummary{Days: 0, Name: "None"}
	for _, h := range habits {
		if h.Streak > best.Days {
			best = StreakSummary{Days: h.Streak, Name: h.Name}
		}
	}
	return best
}

// TodayProgress 统计今日进度。total 取今日排期数（无排期时回退为全部），
// completed 统计所有习惯中今天已完成的，不限于排期子集。
func TodayProgress(habits []habit.Habit, now time.Time) Progress {
	total := len(scheduledToday(habits, now))
	date := habit.FormatDate(now)

	completed := 0
	for _, h := range habits {
		if h.CompletedOn(date) {
			completed++
		}
	}

	return Progress{Completed: completed, Total: total}
}

// CountByCategory 对每个请求的类别返回习惯数，未命中的类别计 0。
func CountByCategory(habits []habit.Habit, categories []string) map[string]int {
	counts := make(map[string]int, len(categories))
	for _, c := range categories {
		counts[c] = 0
	}
	for _, h := range habits {
		if _, ok := counts[h.Category]; ok {
			counts[h.Category]++
		}
	}
	return counts
}

// WeeklyActivity 返回周日..周六 7 个百分比。
// 每个周几取其排期习惯中生命周期完成数大于零的占比，
// category 非空时先按类别过滤；该周几无排期则为 0。
func WeeklyActivity(habits []habit.Habit, category string) []int {
	out := make([]int, 7)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		name := wd.String()
		scheduled, active := 0, 0
		for _, h := range habits {
			if category != "" && h.Category != category {
				continue
			}
			if !h.ScheduledOn(name) {
				continue
			}
			scheduled++
			if h.Completed > 0 {
				active++
			}
		}
		if scheduled > 0 {
			out[wd] = roundPercent(active, scheduled)
		}
	}
	return out
}

// scheduledToday 取今日排期的习惯，无任何排期时回退为全部习惯。
func scheduledToday(habits []habit.Habit, now time.Time) []habit.Habit {
	weekday := habit.WeekdayName(now)
	scheduled := make([]habit.Habit, 0, len(habits))
	for _, h := range habits {
		if h.ScheduledOn(weekday) {
			scheduled = append(scheduled, h)
		}
	}
	if len(scheduled) == 0 {
		return habits
	}
	return scheduled
}

func roundPercent(num, den int) int {
	if den == 0 {
		return 0
	}
	return int(math.Round(100 * float64(num) / float64(den)))
}

func daysInMonth(now time.Time) int {
	return time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, now.Location()).Day()
}
