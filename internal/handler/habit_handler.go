package handler

import (
	"errors"
	"net/http"

	"github.com/bharatvansh/habit-tracker-sub000/internal/habit"
	"github.com/gin-gonic/gin"
)

type habitPayload struct {
	Name      string   `json:"name"`
	Frequency string   `json:"frequency"`
	Days      []string `json:"days"`
	Category  string   `json:"category"`
	Time      string   `json:"time"`
	Color     string   `json:"color"`
	Reminder  bool     `json:"reminder"`
}

func (p habitPayload) toInput() habit.Input {
	return habit.Input{
		Name:      p.Name,
		Frequency: habit.Frequency(p.Frequency),
		Days:      p.Days,
		Category:  p.Category,
		Time:      p.Time,
		Color:     p.Color,
		Reminder:  p.Reminder,
	}
}

// ListHabits 返回习惯列表 JSON
func (a *API) ListHabits(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"habits": a.habits.Habits()})
}

// GetHabit 返回单个习惯
func (a *API) GetHabit(c *gin.Context) {
	h, ok := a.habits.Get(c.Param("id"))
	if !ok {
		respondError(c, http.StatusNotFound, "习惯不存在")
		return
	}
	c.JSON(http.StatusOK, gin.H{"habit": h})
}

// CreateHabit 新建习惯
func (a *API) CreateHabit(c *gin.Context) {
	var payload habitPayload
	if !bindJSON(c, &payload, "无效的请求数据") {
		return
	}

	h, err := a.habits.Add(payload.toInput())
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"habit": h})
}

// UpdateHabit 编辑习惯的可配置字段
func (a *API) UpdateHabit(c *gin.Context) {
	var payload habitPayload
	if !bindJSON(c, &payload, "无效的请求数据") {
		return
	}

	h, found, err := a.habits.Update(c.Param("id"), payload.toInput())
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if !found {
		respondError(c, http.StatusNotFound, "习惯不存在")
		return
	}
	c.JSON(http.StatusOK, gin.H{"habit": h})
}

// DeleteHabit 删除习惯。仓库对缺失 ID 静默无操作，因此总是 204。
func (a *API) DeleteHabit(c *gin.Context) {
	a.habits.Delete(c.Param("id"))
	c.Status(http.StatusNoContent)
}

// CompleteHabit 打卡。当天重复调用是幂等的，返回的习惯不会二次累加。
func (a *API) CompleteHabit(c *gin.Context) {
	h, ok := a.habits.MarkComplete(c.Param("id"))
	if !ok {
		respondError(c, http.StatusNotFound, "习惯不存在")
		return
	}
	c.JSON(http.StatusOK, gin.H{"habit": h})
}

type notePayload struct {
	Note string `json:"note"`
}

// AddHabitNote 追加打卡备注
func (a *API) AddHabitNote(c *gin.Context) {
	var payload notePayload
	if !bindJSON(c, &payload, "无效的请求数据") {
		return
	}

	if !a.habits.AddNote(c.Param("id"), payload.Note) {
		respondError(c, http.StatusNotFound, "习惯不存在或备注为空")
		return
	}
	c.Status(http.StatusNoContent)
}

// ListCategories 返回类别集合
func (a *API) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": a.habits.Categories()})
}

type categoryPayload struct {
	Name string `json:"name"`
}

// CreateCategory 追加类别，重复添加是无操作
func (a *API) CreateCategory(c *gin.Context) {
	var payload categoryPayload
	if !bindJSON(c, &payload, "无效的请求数据") {
		return
	}

	a.habits.AddCategory(payload.Name)
	c.JSON(http.StatusOK, gin.H{"categories": a.habits.Categories()})
}

// DeleteCategory 删除类别。仍被引用时拒绝，作为警告而非服务错误返回。
func (a *API) DeleteCategory(c *gin.Context) {
	if err := a.habits.DeleteCategory(c.Param("name")); err != nil {
		if errors.Is(err, habit.ErrCategoryInUse) {
			c.JSON(http.StatusConflict, gin.H{"warning": "类别仍被习惯引用，未删除"})
			return
		}
		respondError(c, http.StatusInternalServerError, "删除类别失败")
		return
	}
	c.Status(http.StatusNoContent)
}
