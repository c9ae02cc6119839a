package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/Styner-JEON/korea-event/internal/apiclient"
	"github.com/Styner-JEON/korea-event/internal/cache"
	"github.com/Styner-JEON/korea-event/internal/config"
	"github.com/Styner-JEON/korea-event/internal/handler"
	"github.com/Styner-JEON/korea-event/internal/middleware"
	"github.com/Styner-JEON/korea-event/pkg/logger"
)

func main() {
	cfg := config.LoadWebConfig()
	log := logger.New(cfg.LogLevel)

	var pages *cache.PageCache
	var revalidator cache.Revalidator = cache.Noop{}
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		pages = cache.NewPageCache(rdb, log)
		revalidator = pages
	} else {
		log.Warn().Msg("REDIS_ADDR not set, page cache disabled")
	}

	api := apiclient.New(cfg, log, revalidator)
	authH := handler.NewAuthHandler(cfg, api, log)
	eventH := handler.NewEventHandler(cfg, api, pages, log)
	commentH := handler.NewCommentHandler(cfg, api, log)

	r := gin.Default()
	r.Use(middleware.RequestLogger(log))
	r.Use(cors.Default())
	r.LoadHTMLGlob("templates/html/*.html")
	r.Static("/static", "static")

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/", func(c *gin.Context) {
		c.Redirect(302, "/events")
	})

	r.GET("/login", authH.Login)
	r.POST("/login", authH.LoginPost)
	r.GET("/signup", authH.Signup)
	r.POST("/signup", authH.SignupPost)
	r.GET("/logout", authH.Logout)
	r.GET("/api/refresh", authH.Refresh)

	r.GET("/events", eventH.List)
	r.GET("/events/favorites", eventH.Favorites)
	r.GET("/events/:contentId", eventH.Detail)
	r.POST("/events/:contentId/favorite", eventH.ToggleFavorite)

	r.GET("/events/:contentId/comments", commentH.Feed)
	r.POST("/events/:contentId/comments", commentH.Insert)
	r.PUT("/events/:contentId/comments/:commentId", commentH.Update)
	r.DELETE("/events/:contentId/comments/:commentId", commentH.Delete)

	log.Info().Str("port", cfg.ServerPort).Msg("start web server")
	if err := r.Run("0.0.0.0:" + cfg.ServerPort); err != nil {
		log.Fatal().Err(err).Msg("failed to run server")
	}
}
