package habit

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrInvalidFrequency 当频率配置异常时返回
	ErrInvalidFrequency = errors.New("invalid habit frequency configuration")
	// ErrUnknownCategory 当类别不在仓库类别集合中时返回
	ErrUnknownCategory = errors.New("unknown habit category")
	// ErrCategoryInUse 当类别仍被至少一个习惯引用时返回，删除被拒绝
	ErrCategoryInUse = errors.New("category still referenced by habits")
)

// Store 抽象持久化键值存储：写入尽力而为，失败由实现方吞掉。
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

// Notifier 向外层上报用户可见的提示信息（拒绝操作、持久化失败等）。
type Notifier interface {
	Notify(message string)
}

type logNotifier struct{}

func (logNotifier) Notify(message string) {
	log.Printf("habit: %s", message)
}

// Input 定义创建/更新习惯时可配置字段
type Input struct {
	Name      string
	Frequency Frequency
	Days      []string
	Category  string
	Time      string
	Color     string
	Reminder  bool
}

// snapshot 是落盘的 JSON 形状，保证无损往返。
type snapshot struct {
	Habits     []Habit  `json:"habits"`
	Categories []string `json:"categories"`
}

// Repository 持有习惯与类别的权威状态。
// 所有变更经由单一互斥锁串行化，读取返回深拷贝快照；
// 每次变更后把快照写回键值存储，写失败不会中断会话（见 Store 契约）。
type Repository struct {
	mu         sync.Mutex
	store      Store
	key        string
	clock      func() time.Time
	notifier   Notifier
	habits     []Habit
	categories []string
}

// Option 调整仓库的可注入依赖。
type Option func(*Repository)

// WithClock 覆盖时钟，测试用。
func WithClock(clock func() time.Time) Option {
	return func(r *Repository) { r.clock = clock }
}

// WithNotifier 覆盖提示通道。
func WithNotifier(n Notifier) Option {
	return func(r *Repository) { r.notifier = n }
}

// NewRepository 构造仓库并从存储加载既有快照。
// key 是命名空间化的存储键；快照缺失或损坏时以默认类别空仓库起步。
func NewRepository(store Store, key string, opts ...Option) *Repository {
	r := &Repository{
		store:      store,
		key:        key,
		clock:      time.Now,
		notifier:   logNotifier{},
		categories: DefaultCategories(),
	}

	for _, opt := range opts {
		opt(r)
	}

	r.load()
	return r
}

func (r *Repository) load() {
	raw, ok := r.store.Get(r.key)
	if !ok || strings.TrimSpace(raw) == "" {
		return
	}

	var snap snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		r.notifier.Notify(fmt.Sprintf("failed to decode habit snapshot, starting fresh: %v", err))
		return
	}

	r.habits = snap.Habits
	if len(snap.Categories) > 0 {
		r.categories = snap.Categories
	}
}

// persist 把当前状态序列化写回存储；调用方必须已持有锁。
func (r *Repository) persist() {
	raw, err := json.Marshal(snapshot{Habits: r.habits, Categories: r.categories})
	if err != nil {
		r.notifier.Notify(fmt.Sprintf("failed to encode habit snapshot: %v", err))
		return
	}
	r.store.Set(r.key, string(raw))
}

// Habits 返回全部习惯的深拷贝快照。
func (r *Repository) Habits() []Habit {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Habit, 0, len(r.habits))
	for _, h := range r.habits {
		out = append(out, h.Clone())
	}
	return out
}

// Get 按 ID 查找习惯。
func (r *Repository) Get(id string) (Habit, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i := r.indexOf(id); i >= 0 {
		return r.habits[i].Clone(), true
	}
	return Habit{}, false
}

// Add 新建习惯，分配 ID 与创建日期，按频率展开排期日。
func (r *Repository) Add(input Input) (Habit, error) {
	if err := r.validate(input); err != nil {
		return Habit{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock()
	h := Habit{
		ID:                uuid.NewString(),
		Name:              strings.TrimSpace(input.Name),
		Frequency:         input.Frequency,
		Days:              DaysForFrequency(input.Frequency, input.Days),
		Category:          input.Category,
		Time:              strings.TrimSpace(input.Time),
		Color:             input.Color,
		Reminder:          input.Reminder,
		CompletionHistory: []CompletionRecord{},
		CreatedAt:         FormatDate(now),
	}
	if h.Color == "" {
		h.Color = CategoryColor(h.Category)
	}

	r.habits = append(r.habits, h)
	r.persist()
	return h.Clone(), nil
}

// Update 编辑习惯的可配置字段，进度计数不受影响。
// ID 不存在时静默忽略并返回 false。
func (r *Repository) Update(id string, input Input) (Habit, bool, error) {
	if err := r.validate(input); err != nil {
		return Habit{}, false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return Habit{}, false, nil
	}

	h := &r.habits[i]
	h.Name = strings.TrimSpace(input.Name)
	h.Frequency = input.Frequency
	h.Days = DaysForFrequency(input.Frequency, input.Days)
	h.Category = input.Category
	h.Time = strings.TrimSpace(input.Time)
	h.Reminder = input.Reminder
	if input.Color != "" {
		h.Color = input.Color
	}

	r.persist()
	return h.Clone(), true, nil
}

// Delete 硬删除习惯；ID 不存在时静默无操作。
func (r *Repository) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return
	}

	r.habits = append(r.habits[:i], r.habits[i+1:]...)
	r.persist()
}

// MarkComplete 对习惯执行打卡。同一天的重复调用在锁内被
// 幂等规则挡下，两个并发请求不可能都通过"今日已完成"检查。
// ID 不存在时返回 false。
func (r *Repository) MarkComplete(id string) (Habit, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return Habit{}, false
	}

	now := r.clock()
	updated := Complete(r.habits[i], now, now)
	r.habits[i] = updated
	r.persist()
	return updated.Clone(), true
}

// AddNote 追加打卡备注，备注只增不改。
func (r *Repository) AddNote(id, note string) bool {
	note = strings.TrimSpace(note)
	if note == "" {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return false
	}

	r.habits[i].CompletionNotes = append(r.habits[i].CompletionNotes, CompletionNote{
		Date: FormatDate(r.clock()),
		Note: note,
	})
	r.persist()
	return true
}

// Categories 返回类别集合的拷贝，顺序稳定。
func (r *Repository) Categories() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.categories...)
}

// AddCategory 追加新类别；重复添加是无操作。
func (r *Repository) AddCategory(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.categories {
		if c == name {
			return
		}
	}

	r.categories = append(r.categories, name)
	r.persist()
}

// DeleteCategory 删除类别。仍被习惯引用时拒绝并保持类别表不变，
// 属于用户可见的警告而非异常路径。
func (r *Repository) DeleteCategory(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, h := range r.habits {
		if h.Category == name {
			r.notifier.Notify(fmt.Sprintf("category %q is still in use and was not deleted", name))
			return ErrCategoryInUse
		}
	}

	for i, c := range r.categories {
		if c == name {
			r.categories = append(r.categories[:i], r.categories[i+1:]...)
			r.persist()
			return nil
		}
	}
	return nil
}

// indexOf 返回习惯下标；调用方必须已持有锁。
func (r *Repository) indexOf(id string) int {
	for i := range r.habits {
		if r.habits[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *Repository) validate(input Input) error {
	if strings.TrimSpace(input.Name) == "" {
		return fmt.Errorf("habit name is required")
	}

	switch input.Frequency {
	case FrequencyDaily, FrequencyWeekdays, FrequencyWeekends:
	case FrequencyCustom:
		if len(normalizeDays(input.Days)) == 0 {
			return fmt.Errorf("%w: custom frequency requires at least one weekday", ErrInvalidFrequency)
		}
	default:
		return fmt.Errorf("%w: unsupported frequency %s", ErrInvalidFrequency, input.Frequency)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.categories {
		if c == input.Category {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownCategory, input.Category)
}
