package habit

import (
	"errors"
	"testing"
	"time"
)

// memStore 是测试用的内存键值存储。
type memStore struct {
	data map[string]string
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string]string)}
}

func (s *memStore) Get(key string) (string, bool) {
	v, ok := s.data[key]
	return v, ok
}

func (s *memStore) Set(key, value string) {
	s.data[key] = value
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestRepositoryAddAppliesDefaults(t *testing.T) {
	repo := NewRepository(newMemStore(), "test:habits", WithClock(fixedClock(friday)))

	h, err := repo.Add(Input{Name: "冥想", Frequency: FrequencyWeekdays, Category: "Mindfulness"})
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	if h.ID == "" {
		t.Fatal("expected habit to have ID")
	}
	if len(h.Days) != 5 {
		t.Fatalf("expected weekday schedule, got %v", h.Days)
	}
	if h.Color != CategoryColor("Mindfulness") {
		t.Fatalf("expected category default color, got %s", h.Color)
	}
	if h.CreatedAt != "2025-01-10" {
		t.Fatalf("unexpected createdAt: %s", h.CreatedAt)
	}
}

func TestRepositoryAddRejectsUnknownCategory(t *testing.T) {
	repo := NewRepository(newMemStore(), "test:habits")

	if _, err := repo.Add(Input{Name: "阅读", Frequency: FrequencyDaily, Category: "NoSuch"}); !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}

	if _, err := repo.Add(Input{Name: "阅读", Frequency: "yearly", Category: "Health"}); !errors.Is(err, ErrInvalidFrequency) {
		t.Fatalf("expected ErrInvalidFrequency, got %v", err)
	}

	if _, err := repo.Add(Input{Name: "阅读", Frequency: FrequencyCustom, Category: "Health"}); !errors.Is(err, ErrInvalidFrequency) {
		t.Fatalf("expected ErrInvalidFrequency for empty custom days, got %v", err)
	}
}

func TestRepositoryMarkCompleteIdempotent(t *testing.T) {
	repo := NewRepository(newMemStore(), "test:habits", WithClock(fixedClock(friday)))

	h, err := repo.Add(Input{Name: "晨跑", Frequency: FrequencyDaily, Category: "Health"})
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	first, ok := repo.MarkComplete(h.ID)
	if !ok {
		t.Fatal("expected habit to be found")
	}
	second, ok := repo.MarkComplete(h.ID)
	if !ok {
		t.Fatal("expected habit to be found")
	}

	if first.Completed != 1 || second.Completed != 1 {
		t.Fatalf("double completion incremented counters: %d, %d", first.Completed, second.Completed)
	}
	if second.Streak != 1 {
		t.Fatalf("expected streak 1, got %d", second.Streak)
	}
}

func TestRepositoryDeleteMissingIsNoop(t *testing.T) {
	repo := NewRepository(newMemStore(), "test:habits")

	repo.Delete("missing")

	if _, ok := repo.MarkComplete("missing"); ok {
		t.Fatal("expected MarkComplete on missing id to report not found")
	}
}

func TestRepositorySnapshotRoundTrip(t *testing.T) {
	store := newMemStore()
	repo := NewRepository(store, "test:habits", WithClock(fixedClock(friday)))

	h, err := repo.Add(Input{Name: "写日记", Frequency: FrequencyDaily, Category: "Creative"})
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if _, ok := repo.MarkComplete(h.ID); !ok {
		t.Fatal("MarkComplete failed")
	}
	if !repo.AddNote(h.ID, "完成 500 字") {
		t.Fatal("AddNote failed")
	}
	repo.AddCategory("Chores")

	// 从同一存储重建仓库，状态必须无损恢复。
	reloaded := NewRepository(store, "test:habits")

	got, ok := reloaded.Get(h.ID)
	if !ok {
		t.Fatal("expected habit to survive reload")
	}
	if got.Completed != 1 || got.Streak != 1 || got.LastCompletedDate != "2025-01-10" {
		t.Fatalf("progress fields lost in round trip: %+v", got)
	}
	if len(got.CompletionHistory) != 1 || len(got.CompletionNotes) != 1 {
		t.Fatalf("history lost in round trip: %d records, %d notes", len(got.CompletionHistory), len(got.CompletionNotes))
	}

	categories := reloaded.Categories()
	if categories[len(categories)-1] != "Chores" {
		t.Fatalf("custom category lost in round trip: %v", categories)
	}
}

func TestRepositoryDeleteCategoryInUse(t *testing.T) {
	repo := NewRepository(newMemStore(), "test:habits")

	if _, err := repo.Add(Input{Name: "跑步", Frequency: FrequencyDaily, Category: "Health"}); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	if err := repo.DeleteCategory("Health"); !errors.Is(err, ErrCategoryInUse) {
		t.Fatalf("expected ErrCategoryInUse, got %v", err)
	}

	found := false
	for _, c := range repo.Categories() {
		if c == "Health" {
			found = true
		}
	}
	if !found {
		t.Fatal("rejected deletion must leave category list unchanged")
	}

	// 未被引用的类别可以删除。
	if err := repo.DeleteCategory("Finance"); err != nil {
		t.Fatalf("DeleteCategory returned error: %v", err)
	}
	for _, c := range repo.Categories() {
		if c == "Finance" {
			t.Fatal("expected Finance to be removed")
		}
	}
}

func TestRepositoryUpdatePreservesProgress(t *testing.T) {
	repo := NewRepository(newMemStore(), "test:habits", WithClock(fixedClock(friday)))

	h, err := repo.Add(Input{Name: "背单词", Frequency: FrequencyDaily, Category: "Learning"})
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if _, ok := repo.MarkComplete(h.ID); !ok {
		t.Fatal("MarkComplete failed")
	}

	updated, found, err := repo.Update(h.ID, Input{
		Name:      "背单词 50 个",
		Frequency: FrequencyWeekdays,
		Category:  "Learning",
	})
	if err != nil || !found {
		t.Fatalf("Update failed: found=%v err=%v", found, err)
	}

	if updated.Name != "背单词 50 个" {
		t.Fatalf("expected name to update, got %s", updated.Name)
	}
	if updated.Completed != 1 || updated.Streak != 1 {
		t.Fatalf("field edit must not touch progress: %+v", updated)
	}

	if _, found, _ := repo.Update("missing", Input{Name: "x", Frequency: FrequencyDaily, Category: "Health"}); found {
		t.Fatal("expected update on missing id to report not found")
	}
}
