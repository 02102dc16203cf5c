package router

import (
	"time"

	"pmupro/config"
	"pmupro/internal/handler"
	"pmupro/internal/middleware"
	"pmupro/internal/repository"
	"pmupro/internal/service"
	"pmupro/internal/ws"
	"pmupro/pkg/cloudinary"
	"pmupro/pkg/vision"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Deps struct {
	Cfg        *config.Config
	DB         *gorm.DB
	Cloud      cloudinary.Client
	DepositSvc *service.DepositService
}

func Setup(d Deps) *gin.Engine {
	cfg := d.Cfg
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second)))

	// Repositories
	userRepo := repository.NewUserRepository(d.DB)
	clientRepo := repository.NewClientRepository(d.DB)
	serviceRepo := repository.NewServiceRepository(d.DB)
	apptRepo := repository.NewAppointmentRepository(d.DB)
	depositRepo := repository.NewDepositRepository(d.DB)
	docRepo := repository.NewDocumentRepository(d.DB)
	messageRepo := repository.NewMessageRepository(d.DB)
	notificationRepo := repository.NewNotificationRepository(d.DB)
	auditRepo := repository.NewAuditLogRepository(d.DB)
	timeEntryRepo := repository.NewTimeEntryRepository(d.DB)
	calendarRepo := repository.NewCalendarRepository(d.DB)

	staffHub := ws.NewHub()

	// Services
	authSvc := service.NewAuthService(cfg, userRepo)
	notifSvc := service.NewNotificationService(notificationRepo)
	clockSvc := service.NewClockService(timeEntryRepo, cfg.Studio)
	analyzer := vision.NewAnalyzer(cfg.Vision.BaseURL, cfg.Vision.APIKey, cfg.Vision.Model)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc, auditRepo)
	clientHandler := handler.NewClientHandler(clientRepo)
	serviceHandler := handler.NewServiceHandler(serviceRepo)
	apptHandler := handler.NewAppointmentHandler(apptRepo, clientRepo, serviceRepo, notifSvc)
	depositHandler := handler.NewDepositHandler(d.DepositSvc, clientRepo)
	depositWebhookHandler := handler.NewDepositWebhookHandler(d.DepositSvc, clientRepo, auditRepo, notifSvc, cfg)
	docHandler := handler.NewDocumentHandler(docRepo, clientRepo, notifSvc)
	notificationHandler := handler.NewNotificationHandler(notificationRepo)
	adminHandler := handler.NewAdminHandler(userRepo, depositRepo, auditRepo)
	clockHandler := handler.NewClockHandler(clockSvc)
	uploadHandler := handler.NewUploadHandler(d.Cloud, clientRepo)
	analysisHandler := handler.NewAnalysisHandler(analyzer, clientRepo)
	calendarHandler := handler.NewCalendarOAuthHandler(cfg, calendarRepo)
	messageHandler := handler.NewMessageHandler(messageRepo)

	authMw := middleware.AuthRequired(&cfg.JWT)

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.PATCH("/change-password", authMw, authHandler.ChangePassword)
		}

		clients := api.Group("/clients")
		clients.Use(authMw)
		{
			clients.POST("", clientHandler.Create)
			clients.GET("", clientHandler.List)
			clients.GET("/:id", clientHandler.Get)
			clients.PUT("/:id", clientHandler.Update)
			clients.GET("/:id/deposits", depositHandler.ListForClient)
			clients.GET("/:id/documents", docHandler.ListForClient)
			clients.POST("/:id/photo", uploadHandler.UploadClientPhoto)
			clients.POST("/:id/analyze", analysisHandler.AnalyzeClient)
		}

		api.GET("/services", authMw, serviceHandler.List)

		appointments := api.Group("/appointments")
		appointments.Use(authMw)
		{
			appointments.POST("", apptHandler.Create)
			appointments.GET("", apptHandler.List)
			appointments.PATCH("/:id/status", apptHandler.UpdateStatus)
		}

		deposits := api.Group("/deposits")
		deposits.Use(authMw)
		{
			deposits.POST("", depositHandler.Create)
			deposits.GET("/mine", depositHandler.ListMine)
			deposits.GET("/stats", depositHandler.Stats)
			deposits.POST("/:id/cancel", depositHandler.Cancel)
			deposits.POST("/:id/refund", depositHandler.Refund)
			deposits.POST("/:id/resend", depositHandler.Resend)
		}

		documents := api.Group("/documents")
		documents.Use(authMw)
		{
			documents.POST("", docHandler.Create)
			documents.POST("/:id/send", docHandler.Send)
		}

		me := api.Group("/me")
		me.Use(authMw)
		{
			me.GET("/notifications", notificationHandler.List)
			me.PUT("/notifications/:id/read", notificationHandler.MarkRead)
			me.POST("/clock-in", clockHandler.ClockIn)
			me.POST("/clock-out", clockHandler.ClockOut)
			me.GET("/time-entries", clockHandler.History)
			me.GET("/calendar", calendarHandler.Status)
			me.POST("/calendar/connect", calendarHandler.Connect)
			me.DELETE("/calendar", calendarHandler.Disconnect)
			me.GET("/messages", messageHandler.History)
		}

		admin := api.Group("/admin")
		admin.Use(authMw, middleware.AdminRequired())
		{
			admin.GET("/users", adminHandler.ListUsers)
			admin.PATCH("/users/:id/active", adminHandler.SetUserActive)
			admin.GET("/deposits", adminHandler.ListDeposits)
			admin.GET("/audit-logs", adminHandler.ListAuditLogs)
			admin.POST("/services", serviceHandler.Create)
			admin.PUT("/services/:id", serviceHandler.Update)
			admin.DELETE("/services/:id", serviceHandler.Deactivate)
		}

		// public: payment page lookup, signature capture, webhooks
		api.GET("/pay/:link", depositHandler.PublicLookup)
		api.POST("/documents/:id/sign", docHandler.Sign)
		api.GET("/calendar/callback", calendarHandler.Callback)
		api.POST("/webhooks/deposit", depositWebhookHandler.Handle)
	}

	r.GET("/ws/staff", handler.UpgradeStaffWS(&cfg.JWT, staffHub, messageRepo, userRepo))

	return r
}
