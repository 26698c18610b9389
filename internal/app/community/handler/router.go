package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"septemberplums/pkg/logger"
	"septemberplums/pkg/metrics"
)

// SetupRoutes настраивает все маршруты приложения с использованием Gin
func SetupRoutes(
	commentHandler *CommentHandler,
	reviewHandler *ReviewHandler,
	moderationHandler *ModerationHandler,
	catalogHandler *CatalogHandler,
	authHandler *AuthHandler,
	authMiddleware *AuthMiddleware,
) *gin.Engine {
	router := gin.New()

	// Recovery middleware для обработки panic
	router.Use(gin.Recovery())

	// JSON logging middleware для HTTP-запросов (ELK Stack)
	router.Use(logger.GinLoggerMiddleware())

	// Prometheus metrics middleware
	router.Use(metrics.GinPrometheusMiddleware("community-service"))

	// CORS настройки
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposeHeaders:    []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "community-service",
		})
	})

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.GET("/auth/status", authMiddleware.OptionalAuthenticate(), authHandler.AuthStatus)

		// Каталог и чтение - публичные
		products := api.Group("/products")
		{
			products.GET("", catalogHandler.GetProducts)
			products.GET("/search", catalogHandler.SearchProducts)
			products.GET("/:product_id", catalogHandler.GetProduct)
		}

		comments := api.Group("/comments")
		{
			comments.GET("", commentHandler.GetComments)
			comments.GET("/:comment_id/votes", commentHandler.GetCommentVotes)

			// Эндпоинты для авторизованных пользователей
			authed := comments.Group("")
			authed.Use(authMiddleware.Authenticate())
			{
				authed.POST("", commentHandler.CreateComment)
				authed.POST("/:comment_id/vote", commentHandler.VoteOnComment)
				authed.GET("/:comment_id/user-vote", commentHandler.GetCommentUserVote)
				authed.POST("/:comment_id/flag", commentHandler.FlagComment)
			}

			// Эндпоинты модератора
			moderated := comments.Group("")
			moderated.Use(authMiddleware.Authenticate())
			moderated.Use(authMiddleware.RequireModerator())
			{
				moderated.DELETE("/:comment_id", commentHandler.DeleteComment)
				moderated.PATCH("/:comment_id/redact", commentHandler.RedactComment)
			}
		}

		reviews := api.Group("/reviews")
		{
			reviews.GET("/:review_id/votes", reviewHandler.GetReviewVotes)

			authed := reviews.Group("")
			authed.Use(authMiddleware.Authenticate())
			{
				authed.POST("/:review_id/vote", reviewHandler.VoteOnReview)
				authed.GET("/:review_id/user-vote", reviewHandler.GetReviewUserVote)
				authed.POST("/:review_id/flag", reviewHandler.FlagReview)
			}
		}

		// Модерация - только для модераторов
		moderation := api.Group("/moderation")
		moderation.Use(authMiddleware.Authenticate())
		moderation.Use(authMiddleware.RequireModerator())
		{
			moderation.GET("/flags", moderationHandler.ListFlags)
			moderation.PATCH("/flags/:flag_id/resolve", moderationHandler.ResolveFlag)
			moderation.GET("/content/:content_type/:content_id", moderationHandler.GetFlaggedContent)
		}
	}

	return router
}
