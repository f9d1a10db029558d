package router

import (
	"net/http"
	"time"

	"yieldx/internal/auth"
	"yieldx/internal/disease"
	"yieldx/internal/i18n"
	"yieldx/internal/middleware"
	"yieldx/internal/recommend"
	"yieldx/internal/soil"
	"yieldx/internal/voice"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Auth      *auth.Handler
	Languages *i18n.Handler
	Soil      *soil.Handler
	Recommend *recommend.Handler
	Disease   *disease.Handler
	Voice     *voice.Handler
}

type Options struct {
	CORSOrigins []string
	// UploadDir is served under /static/uploads when set.
	UploadDir string
}

var defaultOrigins = []string{"http://localhost:3000", "http://localhost:5173"}

func NewRouter(h Handlers, opts Options) *gin.Engine {
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = defaultOrigins
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     opts.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", i18n.HeaderName},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(i18n.Middleware())

	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if opts.UploadDir != "" {
		r.Static("/static/uploads", opts.UploadDir)
	}

	// ───────────────────────── LANGUAGE ─────────────────────────
	r.GET("/languages", h.Languages.ListLanguages)
	r.POST("/language", h.Languages.SetLanguage)

	// ───────────────────────── AUTH ─────────────────────────
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
	}

	me := r.Group("/me")
	me.Use(middleware.AuthMiddleware())
	{
		me.GET("", h.Auth.Me)
		me.GET("/recommendations", h.Recommend.ListMyHistory)
	}

	// ───────────────────────── SOIL + RECOMMEND ─────────────────────────
	r.GET("/regions", h.Soil.ListRegions)
	r.GET("/regions/:region/districts", h.Soil.ListDistricts)

	recommendGroup := r.Group("/recommend")
	recommendGroup.Use(middleware.OptionalAuth())
	{
		recommendGroup.GET("", h.Recommend.Recommend)
		recommendGroup.POST("", h.Recommend.Recommend)
	}

	// ───────────────────────── DISEASE + VOICE ─────────────────────────
	r.POST("/upload", h.Disease.Upload)
	r.POST("/chat", h.Voice.Chat)
	r.POST("/voice", h.Voice.Voice)

	return r
}
