// Package server wires the quote wizard HTTP API.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"quotewizard/internal/config"
	"quotewizard/internal/domain/admin"
	"quotewizard/internal/domain/lead"
	"quotewizard/internal/domain/notification"
	"quotewizard/internal/domain/quote"
	"quotewizard/internal/domain/wizard"
	"quotewizard/internal/middleware"
	jwtsvc "quotewizard/internal/pkg/jwt"
	"quotewizard/internal/pkg/response"
)

// App holds the router and the long-lived pieces main needs to manage
type App struct {
	Router   *gin.Engine
	Hub      *notification.Hub
	Sessions *admin.MemorySessionStore
	Leads    *lead.Service
}

// New builds the application on an open, migrated database
func New(cfg *config.Config, db *gorm.DB, mailer notification.Mailer) *App {
	leadRepo := lead.NewRepository(db)
	adminRepo := admin.NewRepository(db)

	hub := notification.NewHub()
	renderer := notification.NewRenderer()
	notifier := notification.NewEmailNotifier(leadRepo, renderer, mailer, cfg.MailFrom, cfg.NotifyRecipients)
	leadService := lead.NewService(leadRepo, notifier, hub)

	sessions := admin.NewMemorySessionStore()
	adminService := admin.NewService(adminRepo, jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL), sessions)
	adminAuth := admin.AdminJWTAuth(adminService)

	origins := middleware.AllowedOrigins(cfg.CORSAllowedOrigins, cfg.IsProd())
	notificationHandler := notification.NewHandler(leadRepo, renderer, hub, middleware.CheckOrigin(origins))

	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger(), middleware.ErrorLogger(), middleware.CORS(cfg.CORSAllowedOrigins, cfg.IsProd()))

	r.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		wizard.RegisterPublicRoutes(v1, wizard.NewHandler(quote.DefaultRegistry()))
		leadHandler := lead.NewHandler(leadService)
		lead.RegisterPublicRoutes(v1, leadHandler)

		adminGroup := v1.Group("/admin")
		admin.RegisterAuthRoutes(adminGroup, admin.NewAuthHandler(adminService), adminAuth)

		protected := adminGroup.Group("")
		protected.Use(adminAuth)
		{
			lead.RegisterAdminRoutes(protected, leadHandler)
			notification.RegisterAdminRoutes(protected, notificationHandler)
		}
	}

	return &App{
		Router:   r,
		Hub:      hub,
		Sessions: sessions,
		Leads:    leadService,
	}
}
