package server

import (
	"habit-tracker/auth"
	"habit-tracker/confs"
	"habit-tracker/db"
	httpHandler "habit-tracker/handlers/http"
	"habit-tracker/insight"
	"habit-tracker/repositories"
	"habit-tracker/usecases"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

type Server struct {
	app       *gin.Engine
	cfg       *confs.Config
	db        db.Database
	tokens    *auth.TokenService
	generator insight.Generator
}

func NewServer(cfg *confs.Config, database db.Database, tokens *auth.TokenService, generator insight.Generator) *Server {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	app := gin.New()
	app.Use(gin.Recovery(), httpHandler.RequestLogger())

	s := &Server{
		app:       app,
		cfg:       cfg,
		db:        database,
		tokens:    tokens,
		generator: generator,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	// Setup CORS middleware
	config := cors.DefaultConfig()
	if len(s.cfg.CORSOrigins) == 0 || (len(s.cfg.CORSOrigins) == 1 && s.cfg.CORSOrigins[0] == "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = s.cfg.CORSOrigins
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	s.app.Use(cors.New(config))

	// Setup healthcheck route
	s.app.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "OK",
		})
	})
	s.app.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Initialize repositories
	userRepo := repositories.NewUserPgRepository(s.db)
	habitRepo := repositories.NewHabitPgRepository(s.db)
	habitLogRepo := repositories.NewHabitLogPgRepository(s.db)
	moodLogRepo := repositories.NewMoodLogPgRepository(s.db)
	settingsRepo := repositories.NewSettingsPgRepository(s.db)

	// Initialize use cases
	authUseCase := usecases.NewAuthUseCase(userRepo, settingsRepo, s.tokens)
	habitUseCase := usecases.NewHabitUseCase(habitRepo)
	logUseCase := usecases.NewLogUseCase(habitRepo, habitLogRepo, moodLogRepo)
	settingsUseCase := usecases.NewSettingsUseCase(settingsRepo)
	analyticsUseCase := usecases.NewAnalyticsUseCase(habitRepo, habitLogRepo, moodLogRepo, s.generator, s.cfg.InsightTimeout)

	// Initialize handlers
	authHandler := httpHandler.NewAuthHandler(authUseCase)
	habitHandler := httpHandler.NewHabitHandler(habitUseCase)
	logHandler := httpHandler.NewLogHandler(logUseCase)
	analyticsHandler := httpHandler.NewAnalyticsHandler(analyticsUseCase)
	settingsHandler := httpHandler.NewSettingsHandler(settingsUseCase)

	api := s.app.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
		}

		protected := api.Group("")
		protected.Use(httpHandler.RequireAuth(authUseCase))

		habits := protected.Group("/habits")
		{
			habits.GET("", habitHandler.GetHabits)
			habits.POST("", habitHandler.CreateHabit)
			habits.PUT("/:id", habitHandler.UpdateHabit)
			habits.DELETE("/:id", habitHandler.DeleteHabit) // also removes the habit's logs
		}

		habitLogs := protected.Group("/habit-logs")
		{
			habitLogs.GET("", logHandler.GetHabitLogs)
			habitLogs.POST("", logHandler.LogHabit) // upsert by (habit, date)
			habitLogs.DELETE("/:habit_id/:date", logHandler.DeleteHabitLog)
		}

		moodLogs := protected.Group("/mood-logs")
		{
			moodLogs.GET("", logHandler.GetMoodLogs)
			moodLogs.POST("", logHandler.LogMood) // upsert by date
			moodLogs.DELETE("/:date", logHandler.DeleteMoodLog)
		}

		analytics := protected.Group("/analytics")
		{
			analytics.GET("/summary", analyticsHandler.GetSummary)
			analytics.GET("/ai-insights", analyticsHandler.GetInsights)
		}

		protected.GET("/settings", settingsHandler.GetSettings)
		protected.PUT("/settings", settingsHandler.UpdateSettings)
	}
}

// Handler exposes the router for tests.
func (s *Server) Handler() *gin.Engine {
	return s.app
}

func (s *Server) Start() error {
	addr := "0.0.0.0:" + s.cfg.Port
	log.Info().Str("addr", addr).Msg("starting HTTP server")
	return s.app.Run(addr)
}
