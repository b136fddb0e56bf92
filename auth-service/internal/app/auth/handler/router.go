package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"wanderlog/auth-service/internal/app/auth/entity"
	"wanderlog/pkg/logger"
	"wanderlog/pkg/metrics"
)

// SetupRoutes настраивает все маршруты приложения с использованием Gin
func SetupRoutes(authHandler *AuthHandler, authMiddleware *AuthMiddleware) *gin.Engine {
	router := gin.New()

	// Recovery middleware для обработки panic
	router.Use(gin.Recovery())

	// JSON logging middleware для HTTP-запросов
	router.Use(logger.GinLoggerMiddleware())

	// Prometheus metrics middleware
	router.Use(metrics.GinPrometheusMiddleware("auth-service"))

	// CORS настройки
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposeHeaders:    []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "auth-service",
		})
	})

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			// Публичные эндпоинты (без аутентификации)
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)

			// Защищенные эндпоинты (требуют аутентификации)
			protected := auth.Group("")
			protected.Use(authMiddleware.Authenticate())
			{
				protected.GET("/me", authHandler.GetMe)
			}
		}

		// Управление пользователями - только для администраторов
		users := v1.Group("/users")
		users.Use(authMiddleware.Authenticate())
		users.Use(authMiddleware.RequireRole(entity.RoleAdmin))
		{
			users.GET("", authHandler.GetUsers)
			users.GET("/:user_id", authHandler.GetUser)
			users.DELETE("/:user_id", authHandler.DeleteUser)
		}
	}

	return router
}
