package dna

import (
	"sync"
	"time"

	"github.com/bharatvansh/habit-tracker-sub000/internal/habit"
)

// Mutation 是一枚已解锁的变异徽章。UnlockedAt 记录首次观测到
// 条件成立的时刻，之后的重算不会改写它。
type Mutation struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	UnlockedAt  time.Time `json:"unlockedAt"`
}

// collectionStats 汇总解锁条件用到的聚合统计。
type collectionStats struct {
	maxStreak       int
	totalCompleted  int
	maxSameCategory int
	habitCount      int
}

type mutationDef struct {
	id          string
	name        string
	description string
	icon        string
	condition   func(collectionStats) bool
}

// catalog 是固定的变异目录，顺序即输出顺序。
var catalog = []mutationDef{
	{
		id:          "week-warrior",
		name:        "Week Warrior",
		description: "Keep a 7-day streak on any habit",
		icon:        "flame",
		condition:   func(s collectionStats) bool { return s.maxStreak >= 7 },
	},
	{
		id:          "month-master",
		name:        "Month Master",
		description: "Keep a 30-day streak on any habit",
		icon:        "calendar",
		condition:   func(s collectionStats) bool { return s.maxStreak >= 30 },
	},
	{
		id:          "category-specialist",
		name:        "Category Specialist",
		description: "Grow 5 habits in a single category",
		icon:        "target",
		condition:   func(s collectionStats) bool { return s.maxSameCategory >= 5 },
	},
	{
		id:          "century-club",
		name:        "Century Club",
		description: "Record 100 lifetime completions",
		icon:        "medal",
		condition:   func(s collectionStats) bool { return s.totalCompleted >= 100 },
	},
	{
		id:          "consistent-champion",
		name:        "Consistent Champion",
		description: "Track 10 habits at once",
		icon:        "trophy",
		condition:   func(s collectionStats) bool { return s.habitCount >= 10 },
	},
	{
		id:          "year-legend",
		name:        "Year Legend",
		description: "Keep a 365-day streak on any habit",
		icon:        "star",
		condition:   func(s collectionStats) bool { return s.maxStreak >= 365 },
	},
}

// Generator 负责 DNA 重算并持有粘性解锁表：
// 变异一旦解锁，即使触发它的习惯被删除也不会回收。
type Generator struct {
	mu       sync.Mutex
	unlocked map[string]time.Time
}

// NewGenerator 构造生成器，解锁表从空开始。
func NewGenerator() *Generator {
	return &Generator{unlocked: make(map[string]time.Time)}
}

// Generate 依据当前习惯集合重算完整 DNA。
// segments/complexity/dominantColors 完全由输入决定；
// mutations 按目录顺序输出所有已解锁条目，新解锁的打上 now。
func (g *Generator) Generate(habits []habit.Habit, now time.Time) DNA {
	segments := buildSegments(habits)
	stats := aggregate(habits)

	g.mu.Lock()
	for _, def := range catalog {
		if _, already := g.unlocked[def.id]; already {
			continue
		}
		if def.condition(stats) {
			g.unlocked[def.id] = now
		}
	}

	mutations := make([]Mutation, 0, len(g.unlocked))
	for _, def := range catalog {
		at, ok := g.unlocked[def.id]
		if !ok {
			continue
		}
		mutations = append(mutations, Mutation{
			ID:          def.id,
			Name:        def.name,
			Description: def.description,
			Icon:        def.icon,
			UnlockedAt:  at,
		})
	}
	g.mu.Unlock()

	return DNA{
		Segments:       segments,
		Complexity:     complexity(habits),
		DominantColors: dominantColors(segments),
		Mutations:      mutations,
	}
}

func aggregate(habits []habit.Habit) collectionStats {
	stats := collectionStats{habitCount: len(habits)}
	perCategory := make(map[string]int)
	for _, h := range habits {
		if h.Streak > stats.maxStreak {
			stats.maxStreak = h.Streak
		}
		stats.totalCompleted += h.Completed
		perCategory[h.Category]++
		if perCategory[h.Category] > stats.maxSameCategory {
			stats.maxSameCategory = perCategory[h.Category]
		}
	}
	return stats
}
