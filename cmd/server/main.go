package main

import (
	"log"

	"github.com/bharatvansh/habit-tracker-sub000/internal/config"
	"github.com/bharatvansh/habit-tracker-sub000/internal/db"
	"github.com/bharatvansh/habit-tracker-sub000/internal/dna"
	"github.com/bharatvansh/habit-tracker-sub000/internal/habit"
	"github.com/bharatvansh/habit-tracker-sub000/internal/handler"
	"github.com/bharatvansh/habit-tracker-sub000/internal/reminder"
	"github.com/bharatvansh/habit-tracker-sub000/internal/router"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// 按需创建管理员账号
	if err := db.EnsureUser(cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatalf("failed to ensure admin user: %v", err)
	}

	store := db.NewStore(db.DB)
	habits := habit.NewRepository(store, cfg.SnapshotNamespace+":habits")
	reminders := reminder.NewRepository(store, cfg.SnapshotNamespace+":reminders", nil)

	api := handler.NewAPI(habits, reminders, dna.NewGenerator(), nil)

	// 设置并运行 Gin 服务器
	r := router.Setup(api, cfg.SessionSecret)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
