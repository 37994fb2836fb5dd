package handlers

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/job-corner/internal/auth"
)

type RouterConfig struct {
	AllowedOrigins []string
	Cookie         CookieConfig
}

type Router struct {
	Auth         *AuthHandler
	Jobs         *JobHandler
	Applications *ApplicationHandler
	Sessions     *auth.SessionStore
	Logger       *slog.Logger
}

// NewEngine wires middleware and routes onto a fresh gin engine.
func NewEngine(r Router, cfg RouterConfig) *gin.Engine {
	if r.Logger == nil {
		r.Logger = slog.Default()
	}
	RegisterValidatorTagNames()

	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.AllowedOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsConfig.MaxAge = 12 * time.Hour
	if len(cfg.AllowedOrigins) > 0 {
		engine.Use(cors.New(corsConfig))
	}

	engine.Use(SessionMiddleware(r.Sessions, cfg.Cookie.Name, r.Logger))

	engine.GET("/health", HealthCheck)

	engine.POST("/register", r.Auth.Register)
	engine.POST("/login", r.Auth.Login)
	engine.POST("/logout", r.Auth.Logout)
	engine.GET("/profile", r.Auth.Profile)

	engine.GET("/jobs", r.Jobs.ListJobs)
	engine.GET("/job/:id", r.Jobs.GetJob)

	company := engine.Group("/company")
	{
		company.POST("/post-job", r.Jobs.CreateJob)
		company.PUT("/update-job/:id", r.Jobs.UpdateJob)
		company.PATCH("/update-job/:id", r.Jobs.UpdateJob)
		company.DELETE("/delete-job/:id", r.Jobs.DeleteJob)
	}

	engine.POST("/apply", r.Applications.Apply)
	engine.POST("/apply/:jobId", r.Applications.Apply)
	engine.GET("/applied-jobs", r.Applications.AppliedJobs)
	engine.GET("/job-applicants/:id", r.Applications.JobApplicants)

	return engine
}
