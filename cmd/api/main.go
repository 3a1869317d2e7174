package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/Nevenjbx/kompagni-api/internal/cache"
	"github.com/Nevenjbx/kompagni-api/internal/config"
	croncfg "github.com/Nevenjbx/kompagni-api/internal/cron"
	dbpkg "github.com/Nevenjbx/kompagni-api/internal/db"
	"github.com/Nevenjbx/kompagni-api/internal/middleware"
	"github.com/Nevenjbx/kompagni-api/internal/notify"
	"github.com/Nevenjbx/kompagni-api/internal/routes"
)

func main() {

	_ = godotenv.Load()

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	var searchCache *cache.Cache
	if cfg.RedisAddr != "" {
		c, err := cache.New(cfg.RedisAddr, 60*time.Second)
		if err != nil {
			log.Printf("redis unavailable, search cache disabled: %v", err)
		} else {
			searchCache = c
		}
	}

	dispatcher := notify.NewDispatcher(notify.LogSender{})
	croncfg.StartReminders(db, dispatcher)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware(cfg.FrontendURL))

	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err != nil || sqlDB.Ping() != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "db_down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, searchCache, dispatcher)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
