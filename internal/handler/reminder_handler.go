package handler

import (
	"net/http"
	"strconv"

	"github.com/bharatvansh/habit-tracker-sub000/internal/reminder"
	"github.com/gin-gonic/gin"
)

type reminderPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
	Time        string `json:"time"`
}

func (p reminderPayload) toInput() reminder.Input {
	return reminder.Input{
		Title:       p.Title,
		Description: p.Description,
		DueDate:     p.DueDate,
		Time:        p.Time,
	}
}

// ListReminders 返回全部提醒
func (a *API) ListReminders(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"reminders": a.reminders.List()})
}

// CreateReminder 新建提醒
func (a *API) CreateReminder(c *gin.Context) {
	var payload reminderPayload
	if !bindJSON(c, &payload, "无效的请求数据") {
		return
	}

	item, err := a.reminders.Add(payload.toInput())
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"reminder": item})
}

// UpdateReminder 编辑提醒
func (a *API) UpdateReminder(c *gin.Context) {
	var payload reminderPayload
	if !bindJSON(c, &payload, "无效的请求数据") {
		return
	}

	item, found, err := a.reminders.Update(c.Param("id"), payload.toInput())
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if !found {
		respondError(c, http.StatusNotFound, "提醒不存在")
		return
	}
	c.JSON(http.StatusOK, gin.H{"reminder": item})
}

// DeleteReminder 删除提醒，缺失 ID 静默无操作
func (a *API) DeleteReminder(c *gin.Context) {
	a.reminders.Delete(c.Param("id"))
	c.Status(http.StatusNoContent)
}

// ToggleReminder 翻转提醒完成状态
func (a *API) ToggleReminder(c *gin.Context) {
	item, ok := a.reminders.ToggleComplete(c.Param("id"))
	if !ok {
		respondError(c, http.StatusNotFound, "提醒不存在")
		return
	}
	c.JSON(http.StatusOK, gin.H{"reminder": item})
}

// UpcomingReminders 返回未来 N 天内到期的未完成提醒，默认 7 天。
func (a *API) UpcomingReminders(c *gin.Context) {
	days := 7
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			respondError(c, http.StatusBadRequest, "无效的天数参数")
			return
		}
		days = parsed
	}

	c.JSON(http.StatusOK, gin.H{"reminders": a.reminders.Upcoming(a.clock(), days)})
}
