package handler

import (
	"net/http"

	"github.com/bharatvansh/habit-tracker-sub000/internal/analytics"
	"github.com/gin-gonic/gin"
)

// AnalyticsSummary 汇总首页需要的全部派生指标。
func (a *API) AnalyticsSummary(c *gin.Context) {
	habits := a.habits.Habits()
	categories := a.habits.Categories()
	now := a.clock()

	c.JSON(http.StatusOK, gin.H{
		"completionRates": gin.H{
			"today": analytics.CompletionRate(habits, analytics.TimeframeToday, now),
			"week":  analytics.CompletionRate(habits, analytics.TimeframeWeek, now),
			"month": analytics.CompletionRate(habits, analytics.TimeframeMonth, now),
		},
		"longestStreak":  analytics.LongestStreak(habits),
		"todayProgress":  analytics.TodayProgress(habits, now),
		"categoryCounts": analytics.CountByCategory(habits, categories),
		"insights":       analytics.CategoryInsights(habits, categories, now),
	})
}

// WeeklyActivity 返回周日..周六的活跃度百分比，可按类别过滤。
func (a *API) WeeklyActivity(c *gin.Context) {
	habits := a.habits.Habits()
	c.JSON(http.StatusOK, gin.H{
		"activity": analytics.WeeklyActivity(habits, c.Query("category")),
	})
}

// HabitInsights 返回单个习惯的最佳打卡时段与趋势。
func (a *API) HabitInsights(c *gin.Context) {
	h, ok := a.habits.Get(c.Param("id"))
	if !ok {
		respondError(c, http.StatusNotFound, "习惯不存在")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"optimalTime": analytics.OptimalTime(h),
		"trend":       analytics.CompletionTrend(h, a.clock()),
	})
}
