// Package dna 把习惯集合映射为确定性的"习惯 DNA"展示模型：
// 每个习惯一个片段、0-100 的复杂度评分、主导色与已解锁的变异徽章。
// 除排期过滤用到"今天"之外不依赖任何隐含时钟或随机源，
// 对同一份未变化的集合重复生成结果逐字节一致。
package dna

import (
	"math"

	"github.com/bharatvansh/habit-tracker-sub000/internal/habit"
)

// Segment 是 DNA 的一个视觉单元，与习惯一一对应。
type Segment struct {
	ID       string  `json:"id"`
	Color    string  `json:"color"`
	Size     float64 `json:"size"`
	Shape    string  `json:"shape"`
	Category string  `json:"category"`
	Streak   int     `json:"streak"`
}

// DNA 是完整的派生快照，随时可从习惯集合重新计算。
type DNA struct {
	Segments       []Segment  `json:"segments"`
	Complexity     int        `json:"complexity"`
	DominantColors []string   `json:"dominantColors"`
	Mutations      []Mutation `json:"mutations"`
}

const (
	minSegmentSize = 5
	maxSegmentSize = 20
)

var frequencyShapes = map[habit.Frequency]string{
	habit.FrequencyDaily:    "circle",
	habit.FrequencyWeekdays: "square",
	habit.FrequencyWeekends: "triangle",
	habit.FrequencyCustom:   "hexagon",
}

const defaultShape = "circle"

func buildSegments(habits []habit.Habit) []Segment {
	segments := make([]Segment, 0, len(habits))
	for _, h := range habits {
		segments = append(segments, Segment{
			ID:       h.ID,
			Color:    habit.CategoryColor(h.Category),
			Size:     segmentSize(h.Streak),
			Shape:    frequencyShape(h.Frequency),
			Category: h.Category,
			Streak:   h.Streak,
		})
	}
	return segments
}

func segmentSize(streak int) float64 {
	size := float64(streak) / 2
	if size < minSegmentSize {
		return minSegmentSize
	}
	if size > maxSegmentSize {
		return maxSegmentSize
	}
	return size
}

func frequencyShape(freq habit.Frequency) string {
	if shape, ok := frequencyShapes[freq]; ok {
		return shape
	}
	return defaultShape
}

// complexity 评分：min(100, round(5×习惯数 + 2×平均连胜 + 10×类别数 + 0.5×总完成数))。
func complexity(habits []habit.Habit) int {
	if len(habits) == 0 {
		return 0
	}

	totalStreak, totalCompleted := 0, 0
	categories := make(map[string]bool)
	for _, h := range habits {
		totalStreak += h.Streak
		totalCompleted += h.Completed
		categories[h.Category] = true
	}

	avgStreak := float64(totalStreak) / float64(len(habits))
	score := 5*float64(len(habits)) + 2*avgStreak + 10*float64(len(categories)) + 0.5*float64(totalCompleted)

	rounded := int(math.Round(score))
	if rounded > 100 {
		return 100
	}
	return rounded
}

// dominantColors 取出现频次最高的至多 3 种片段色，并列按首次出现顺序。
func dominantColors(segments []Segment) []string {
	counts := make(map[string]int)
	order := make([]string, 0, len(segments))
	for _, s := range segments {
		if _, seen := counts[s.Color]; !seen {
			order = append(order, s.Color)
		}
		counts[s.Color]++
	}

	out := make([]string, 0, 3)
	used := make(map[string]bool)
	for len(out) < 3 && len(out) < len(order) {
		var best string
		for _, color := range order {
			if used[color] {
				continue
			}
			if best == "" || counts[color] > counts[best] {
				best = color
			}
		}
		used[best] = true
		out = append(out, best)
	}
	return out
}
