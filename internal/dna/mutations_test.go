package dna

import (
	"testing"
	"time"

	"github.com/bharatvansh/habit-tracker-sub000/internal/habit"
)

func mutationIDs(dna DNA) []string {
	out := make([]string, 0, len(dna.Mutations))
	for _, m := range dna.Mutations {
		out = append(out, m.ID)
	}
	return out
}

func hasMutation(dna DNA, id string) bool {
	for _, m := range dna.Mutations {
		if m.ID == id {
			return true
		}
	}
	return false
}

func TestMutationThresholds(t *testing.T) {
	// 10 个习惯分布在 2 个类别，其中一个连胜 40。
	habits := make([]habit.Habit, 0, 10)
	for i := 0; i < 9; i++ {
		habits = append(habits, sampleHabit(string(rune('a'+i)), "Health", habit.FrequencyDaily, 0, 0))
	}
	habits = append(habits, sampleHabit("j", "Learning", habit.FrequencyDaily, 40, 40))

	got := NewGenerator().Generate(habits, now)

	for _, want := range []string{"week-warrior", "month-master", "category-specialist", "consistent-champion"} {
		if !hasMutation(got, want) {
			t.Fatalf("expected %s unlocked, got %v", want, mutationIDs(got))
		}
	}
	for _, blocked := range []string{"century-club", "year-legend"} {
		if hasMutation(got, blocked) {
			t.Fatalf("expected %s locked, got %v", blocked, mutationIDs(got))
		}
	}
}

func TestMutationUnlockIsSticky(t *testing.T) {
	trigger := sampleHabit("a", "Health", habit.FrequencyDaily, 7, 7)

	g := NewGenerator()
	unlockTime := now
	first := g.Generate([]habit.Habit{trigger}, unlockTime)
	if !hasMutation(first, "week-warrior") {
		t.Fatalf("expected week-warrior unlocked, got %v", mutationIDs(first))
	}

	// 删除触发习惯后重算：解锁仍在，且保留最初的解锁时间。
	later := g.Generate(nil, now.Add(48*time.Hour))
	if !hasMutation(later, "week-warrior") {
		t.Fatalf("unlock must survive habit deletion, got %v", mutationIDs(later))
	}
	for _, m := range later.Mutations {
		if m.ID == "week-warrior" && !m.UnlockedAt.Equal(unlockTime) {
			t.Fatalf("unlockedAt regressed: %v", m.UnlockedAt)
		}
	}
}

func TestMutationUnlockedAtDoesNotRegress(t *testing.T) {
	trigger := sampleHabit("a", "Health", habit.FrequencyDaily, 30, 30)

	g := NewGenerator()
	first := g.Generate([]habit.Habit{trigger}, now)
	second := g.Generate([]habit.Habit{trigger}, now.Add(time.Hour))

	for i, m := range second.Mutations {
		if !m.UnlockedAt.Equal(first.Mutations[i].UnlockedAt) {
			t.Fatalf("mutation %s unlockedAt changed on recomputation", m.ID)
		}
	}
}
