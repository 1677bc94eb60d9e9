package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/bharatvansh/habit-tracker-sub000/internal/habit"
)

// NotEnoughData 是推断类计算在样本不足时的哨兵返回值。
const NotEnoughData = "not enough data"

// Trend 表示短期相对长期的完成趋势。
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// Insight 是一条面向用户的类别洞察。
type Insight struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// OptimalTime 从打卡历史推断最高频的打卡小时，按 12 小时制输出。
// 少于 3 条历史时返回 NotEnoughData。并列的小时保留先出现的那个。
func OptimalTime(h habit.Habit) string {
	if len(h.CompletionHistory) < 3 {
		return NotEnoughData
	}

	counts := make(map[int]int)
	order := make([]int, 0, 24)
	for _, rec := range h.CompletionHistory {
		t, err := time.Parse(time.RFC3339, rec.Time)
		if err != nil {
			continue
		}
		hour := t.Hour()
		if _, seen := counts[hour]; !seen {
			order = append(order, hour)
		}
		counts[hour]++
	}
	if len(order) == 0 {
		return NotEnoughData
	}

	best := order[0]
	for _, hour := range order[1:] {
		if counts[hour] > counts[best] {
			best = hour
		}
	}

	return formatHour(best)
}

func formatHour(hour int) string {
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:00 %s", display, suffix)
}

// CompletionTrend 比较最近 7 个日历日与再前 7 个日历日的打卡次数。
// 判断基于日期串归属而非绝对时间差；历史少于 7 条时视为 stable。
func CompletionTrend(h habit.Habit, now time.Time) Trend {
	if len(h.CompletionHistory) < 7 {
		return TrendStable
	}

	recent := dateWindow(now, 0, 7)
	previous := dateWindow(now, 7, 7)

	last7, prior7 := 0, 0
	for _, rec := range h.CompletionHistory {
		if recent[rec.Date] {
			last7++
		} else if previous[rec.Date] {
			prior7++
		}
	}

	switch {
	case float64(last7) > 1.1*float64(prior7):
		return TrendUp
	case float64(last7) < 0.9*float64(prior7):
		return TrendDown
	default:
		return TrendStable
	}
}

// dateWindow 生成从 now 往前偏移 offset 天起、连续 length 天的日期集合。
func dateWindow(now time.Time, offset, length int) map[string]bool {
	out := make(map[string]bool, length)
	for i := 0; i < length; i++ {
		out[habit.FormatDate(now.AddDate(0, 0, -(offset+i)))] = true
	}
	return out
}

type categoryRate struct {
	name   string
	rate   int
	habits int
}

// CategoryInsights 按类别估算完成率并产出固定顺序的洞察：
// 最佳类别、（差距超过 10 个百分点时的）最佳对最差比较、
// 以及习惯最多的类别（仅当其数量大于 1）。空输入产出空列表。
func CategoryInsights(habits []habit.Habit, categories []string, now time.Time) []Insight {
	if len(habits) == 0 || len(categories) == 0 {
		return []Insight{}
	}

	rates := make([]categoryRate, 0, len(categories))
	for _, c := range categories {
		possible, actual, count := 0, 0, 0
		for _, h := range habits {
			if h.Category != c {
				continue
			}
			count++
			actual += h.Completed
			possible += expectedCompletions(h, now)
		}
		if count == 0 {
			continue
		}
		rates = append(rates, categoryRate{
			name:   c,
			rate:   roundPercent(actual, possible),
			habits: count,
		})
	}
	if len(rates) == 0 {
		return []Insight{}
	}

	sort.SliceStable(rates, func(i, j int) bool {
		return rates[i].rate > rates[j].rate
	})

	insights := []Insight{{
		Type:    "top-category",
		Message: fmt.Sprintf("Your strongest category is %s with a %d%% completion rate", rates[0].name, rates[0].rate),
	}}

	if len(rates) > 1 {
		best, worst := rates[0], rates[len(rates)-1]
		if best.rate-worst.rate > 10 {
			insights = append(insights, Insight{
				Type:    "comparison",
				Message: fmt.Sprintf("%s outperforms %s by %d percentage points", best.name, worst.name, best.rate-worst.rate),
			})
		}
	}

	most := rates[0]
	for _, r := range rates[1:] {
		if r.habits > most.habits {
			most = r
		}
	}
	if most.habits > 1 {
		insights = append(insights, Insight{
			Type:    "most-habits",
			Message: fmt.Sprintf("Most of your habits are in %s (%d habits)", most.name, most.habits),
		})
	}

	return insights
}

// expectedCompletions 估算自创建以来的期望打卡次数：
// ceil(已存在天数 / 7 × 每周排期天数)。
func expectedCompletions(h habit.Habit, now time.Time) int {
	created, err := time.Parse(habit.DateLayout, h.CreatedAt)
	if err != nil {
		return 0
	}

	days := now.Sub(created).Hours() / 24
	if days < 0 {
		return 0
	}

	return int(math.Ceil(days / 7 * float64(len(h.Days))))
}
