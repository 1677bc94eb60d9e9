// Package reminder 提供与习惯仓库平级的提醒事项存储：
// 纯 CRUD 加到期日比较，没有派生统计逻辑。
package reminder

import (
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bharatvansh/habit-tracker-sub000/internal/habit"
	"github.com/google/uuid"
)

// Reminder 是一条带到期日的提醒。
type Reminder struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	DueDate     string `json:"dueDate"`
	Time        string `json:"time,omitempty"`
	Completed   bool   `json:"completed"`
	CreatedAt   string `json:"createdAt"`
}

// Input 定义创建/编辑提醒的可配置字段。
type Input struct {
	Title       string
	Description string
	DueDate     string
	Time        string
}

// Repository 持有提醒列表，变更串行化并写回快照存储。
type Repository struct {
	mu    sync.Mutex
	store habit.Store
	key   string
	clock func() time.Time
	items []Reminder
}

// NewRepository 构造仓库并加载既有快照。
func NewRepository(store habit.Store, key string, clock func() time.Time) *Repository {
	if clock == nil {
		clock = time.Now
	}
	r := &Repository{store: store, key: key, clock: clock}
	r.load()
	return r
}

func (r *Repository) load() {
	raw, ok := r.store.Get(r.key)
	if !ok || strings.TrimSpace(raw) == "" {
		return
	}
	if err := json.Unmarshal([]byte(raw), &r.items); err != nil {
		log.Printf("reminder: failed to decode snapshot, starting fresh: %v", err)
		r.items = nil
	}
}

func (r *Repository) persist() {
	raw, err := json.Marshal(r.items)
	if err != nil {
		log.Printf("reminder: failed to encode snapshot: %v", err)
		return
	}
	r.store.Set(r.key, string(raw))
}

// List 返回全部提醒的拷贝。
func (r *Repository) List() []Reminder {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Reminder(nil), r.items...)
}

// Add 新建提醒；到期日必须是合法日历日期。
func (r *Repository) Add(input Input) (Reminder, error) {
	if err := validate(input); err != nil {
		return Reminder{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	item := Reminder{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		DueDate:     input.DueDate,
		Time:        strings.TrimSpace(input.Time),
		CreatedAt:   habit.FormatDate(r.clock()),
	}
	r.items = append(r.items, item)
	r.persist()
	return item, nil
}

// Update 编辑提醒字段；ID 不存在时静默忽略并返回 false。
func (r *Repository) Update(id string, input Input) (Reminder, bool, error) {
	if err := validate(input); err != nil {
		return Reminder{}, false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return Reminder{}, false, nil
	}

	item := &r.items[i]
	item.Title = strings.TrimSpace(input.Title)
	item.Description = strings.TrimSpace(input.Description)
	item.DueDate = input.DueDate
	item.Time = strings.TrimSpace(input.Time)

	r.persist()
	return *item, true, nil
}

// Delete 删除提醒；ID 不存在时静默无操作。
func (r *Repository) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return
	}
	r.items = append(r.items[:i], r.items[i+1:]...)
	r.persist()
}

// ToggleComplete 翻转完成状态，返回更新后的提醒。
func (r *Repository) ToggleComplete(id string) (Reminder, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return Reminder{}, false
	}
	r.items[i].Completed = !r.items[i].Completed
	r.persist()
	return r.items[i], true
}

// Upcoming 返回从 now 起 days 天内到期且未完成的提醒，按到期日升序。
func (r *Repository) Upcoming(now time.Time, days int) []Reminder {
	r.mu.Lock()
	defer r.mu.Unlock()

	from := habit.FormatDate(now)
	until := habit.FormatDate(now.AddDate(0, 0, days))

	out := make([]Reminder, 0, len(r.items))
	for _, item := range r.items {
		if item.Completed {
			continue
		}
		if item.DueDate >= from && item.DueDate <= until {
			out = append(out, item)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DueDate < out[j].DueDate
	})
	return out
}

func (r *Repository) indexOf(id string) int {
	for i := range r.items {
		if r.items[i].ID == id {
			return i
		}
	}
	return -1
}

func validate(input Input) error {
	if strings.TrimSpace(input.Title) == "" {
		return fmt.Errorf("reminder title is required")
	}
	if _, err := time.Parse(habit.DateLayout, input.DueDate); err != nil {
		return fmt.Errorf("invalid due date %q", input.DueDate)
	}
	return nil
}
