package handlers

import (
	"strings"
	"time"

	"courseledger/internal/infrastructure/security"
	"courseledger/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(
	courseHandler *CourseHandler,
	cartHandler *CartHandler,
	purchaseHandler *PurchaseHandler,
	progressHandler *ProgressHandler,
	certificateHandler *CertificateHandler,
	favoriteHandler *FavoriteHandler,
	limiter *middleware.RateLimiter,
	tm *security.TokenManager,
	allowedOrigins string,
) *gin.Engine {
	r := gin.Default()

	config := cors.DefaultConfig()
	if allowedOrigins != "" {
		config.AllowOrigins = strings.Split(allowedOrigins, ",")
	} else {
		config.AllowAllOrigins = true
	}
	config.AllowCredentials = !config.AllowAllOrigins
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"}
	r.Use(cors.New(config))

	api := r.Group("/api/v1")
	{
		course := api.Group("/courses")
		{
			course.GET("", courseHandler.List)
			course.GET("/:id", middleware.OptionalAuth(tm), courseHandler.GetOne)
			course.POST("", middleware.AuthMiddleware(tm), courseHandler.Create)
			course.DELETE("/:id", middleware.AuthMiddleware(tm), courseHandler.Delete)
		}

		cart := api.Group("/cart")
		cart.Use(middleware.AuthMiddleware(tm))
		{
			cart.GET("", cartHandler.List)
			cart.POST("/:courseId", cartHandler.Add)
			cart.DELETE("/:courseId", cartHandler.Remove)
		}

		purchases := api.Group("/purchases")
		purchases.Use(middleware.AuthMiddleware(tm))
		{
			purchases.GET("", purchaseHandler.List)
			purchases.POST("/checkout", limiter.Limit("checkout", 10, 1*time.Minute), purchaseHandler.Checkout)
			purchases.POST("/:courseId", limiter.Limit("buy", 10, 1*time.Minute), purchaseHandler.Buy)
			purchases.DELETE("/:courseId", purchaseHandler.Withdraw)
		}

		progress := api.Group("/progress")
		progress.Use(middleware.AuthMiddleware(tm))
		{
			progress.POST("/:courseId/videos/:videoId", progressHandler.MarkVideoComplete)
		}

		certificates := api.Group("/certificates")
		certificates.Use(middleware.AuthMiddleware(tm))
		{
			certificates.GET("", certificateHandler.List)
			certificates.POST("/:courseId", certificateHandler.Issue)
		}

		favorites := api.Group("/favorites")
		favorites.Use(middleware.AuthMiddleware(tm))
		{
			favorites.GET("", favoriteHandler.List)
			favorites.POST("/:courseId", favoriteHandler.Add)
			favorites.DELETE("/:courseId", favoriteHandler.Remove)
		}
	}

	return r
}
