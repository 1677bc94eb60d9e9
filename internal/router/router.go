package router

import (
	"github.com/bharatvansh/habit-tracker-sub000/internal/handler"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// Setup 配置 Gin 引擎和路由
func Setup(api *handler.API, sessionSecret string) *gin.Engine {
	r := gin.Default()

	// 配置会话中间件
	store := cookie.NewStore([]byte(sessionSecret))
	r.Use(sessions.Sessions("habittracker_session", store))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	r.POST("/api/login", handler.Login)
	r.POST("/api/logout", handler.Logout)

	// 需要认证的 API 路由
	auth := r.Group("/api")
	auth.Use(handler.AuthRequired())
	{
		auth.GET("/habits", api.ListHabits)
		auth.POST("/habits", api.CreateHabit)
		auth.GET("/habits/:id", api.GetHabit)
		auth.PUT("/habits/:id", api.UpdateHabit)
		auth.DELETE("/habits/:id", api.DeleteHabit)
		auth.POST("/habits/:id/complete", api.CompleteHabit)
		auth.POST("/habits/:id/notes", api.AddHabitNote)
		auth.GET("/habits/:id/notes/html", api.HabitNotesHTML)
		auth.GET("/habits/:id/insights", api.HabitInsights)

		auth.GET("/categories", api.ListCategories)
		auth.POST("/categories", api.CreateCategory)
		auth.DELETE("/categories/:name", api.DeleteCategory)

		auth.GET("/analytics/summary", api.AnalyticsSummary)
		auth.GET("/analytics/weekly", api.WeeklyActivity)

		auth.GET("/dna", api.GetDNA)

		auth.GET("/reminders", api.ListReminders)
		auth.POST("/reminders", api.CreateReminder)
		auth.GET("/reminders/upcoming", api.UpcomingReminders)
		auth.PUT("/reminders/:id", api.UpdateReminder)
		auth.DELETE("/reminders/:id", api.DeleteReminder)
		auth.POST("/reminders/:id/toggle", api.ToggleReminder)
	}

	return r
}
