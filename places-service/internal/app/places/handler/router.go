package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"wanderlog/pkg/logger"
	"wanderlog/pkg/metrics"
)

// SetupRoutes настраивает все маршруты приложения с использованием Gin
func SetupRoutes(placeHandler *PlaceHandler, commentHandler *CommentHandler, authMiddleware *AuthMiddleware) *gin.Engine {
	router := gin.New()

	// Recovery middleware для обработки panic
	router.Use(gin.Recovery())

	// JSON logging middleware для HTTP-запросов
	router.Use(logger.GinLoggerMiddleware())

	// Prometheus metrics middleware
	router.Use(metrics.GinPrometheusMiddleware("places-service"))

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
			"service": "places-service",
		})
	})

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		places := v1.Group("/places")
		{
			// Чтение открыто всем
			places.GET("", placeHandler.GetAllPlaces)
			places.GET("/tag", placeHandler.GetPlacesByTag)
			places.GET("/search", placeHandler.SearchPlaces)
			places.GET("/:place_id", placeHandler.GetPlaceByID)
			places.GET("/user/:user_id", placeHandler.GetPlacesByUser)

			// Пересчет рейтинга доступен без токена: его дергает и фронт,
			// и фоновый воркер
			places.POST("/:place_id/scoreAndUpdate", placeHandler.ScoreAndUpdate)

			// Создание места только для авторизованных
			places.POST("", authMiddleware.Authenticate(), placeHandler.CreatePlace)
		}

		comments := v1.Group("/comments")
		{
			// Комментарии оставляют и гости, токен не требуется
			comments.POST("", commentHandler.CreateComment)
			comments.GET("/place/:place_id", commentHandler.GetCommentsByPlace)
			comments.GET("/user/:user_id", commentHandler.GetCommentsByUser)
		}
	}

	return router
}
