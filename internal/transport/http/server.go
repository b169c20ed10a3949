package http

import (
	"time"

	"github.com/gin-gonic/gin"

	appsvc "claimgate/internal/app"
	"claimgate/internal/bootstrap"
	"claimgate/internal/cache"
	"claimgate/internal/platform/rabbitmq"
	"claimgate/internal/repository"
	"claimgate/internal/transport/http/handler"
	"claimgate/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	userRepo := repository.NewUserRepository(app.MySQL)
	companyRepo := repository.NewCompanyRepository(app.MySQL)
	claimRepo := repository.NewClaimRepository(app.MySQL)
	tokenRepo := repository.NewUploadTokenRepository(app.MySQL)
	documentRepo := repository.NewDocumentRepository(app.MySQL)
	eventRepo := repository.NewUploadEventRepository(app.MySQL)

	scopeCache := cache.NewScopeCache(app.Redis, time.Duration(app.Config.Redis.ScopeTTLSeconds)*time.Second)
	eventPublisher := rabbitmq.NewUploadEventPublisher(app.MQConn, app.Config.RabbitMQ.UploadEventQueue)

	authService := appsvc.NewAuthService(
		userRepo,
		companyRepo,
		app.Config.Auth.JWTSecret,
		time.Duration(app.Config.Auth.JWTExpireMinute)*time.Minute,
	)
	claimService := appsvc.NewClaimService(claimRepo, documentRepo)
	tokenService := appsvc.NewTokenService(tokenRepo, claimRepo, scopeCache, app.Config.App.PublicBaseURL)
	ingestService := appsvc.NewIngestService(documentRepo, app.ObjectStore, eventPublisher)
	auditService := appsvc.NewAuditService(eventRepo)

	authHandler := handler.NewAuthHandler(authService)
	claimHandler := handler.NewClaimHandler(claimService, authService)
	tokenHandler := handler.NewTokenHandler(tokenService, claimService, authService)
	uploadHandler := handler.NewUploadHandler(ingestService, tokenService, claimService, authService)
	auditHandler := handler.NewAuditHandler(auditService, authService)

	v1 := router.Group("/api/v1")
	authGroup := v1.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.GET("/me", middleware.AuthJWT(app.Config.Auth.JWTSecret), authHandler.Me)

	claimGroup := v1.Group("/claims")
	claimGroup.Use(middleware.AuthJWT(app.Config.Auth.JWTSecret))
	claimGroup.POST("", claimHandler.CreateClaim)
	claimGroup.GET("", claimHandler.ListClaims)
	claimGroup.POST("/:id/upload-tokens", tokenHandler.IssueUploadToken)
	claimGroup.GET("/:id/upload-tokens", tokenHandler.ListUploadTokens)
	claimGroup.GET("/:id/documents", claimHandler.ListDocuments)
	claimGroup.POST("/:id/documents", uploadHandler.UploadDocument)

	staffGroup := v1.Group("")
	staffGroup.Use(middleware.AuthJWT(app.Config.Auth.JWTSecret))
	staffGroup.GET("/documents", claimHandler.ListCompanyDocuments)
	staffGroup.GET("/uploads/failures", auditHandler.ListFailedUploads)

	ipLimiter := cache.NewRateLimiter(app.Redis, app.Config.RateLimit.IPPerMinute, time.Minute)
	tokenLimiter := cache.NewRateLimiter(app.Redis, app.Config.RateLimit.TokenPerMinute, time.Minute)

	publicGroup := v1.Group("/public")
	publicGroup.Use(middleware.PublicRateLimit(ipLimiter, tokenLimiter))
	publicGroup.GET("/upload-tokens/:token", tokenHandler.ValidatePublicToken)
	publicGroup.POST("/uploads", uploadHandler.PublicBatchUpload)

	return router
}
