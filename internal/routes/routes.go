package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dwincahya/hausjogja-backend/internal/handlers"
	"github.com/dwincahya/hausjogja-backend/internal/middleware"
)

// CORSMiddleware allows any origin to talk to the API, the storefront
// is served from a different host.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, PATCH, OPTIONS")

		// Browsers send an empty preflight OPTIONS request first.
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func SetupRouter(h *handlers.Handlers) *gin.Engine {
	router := gin.Default()

	router.Use(CORSMiddleware())

	// Product and profile images are public.
	router.Static("/uploads", "./public/uploads")

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to HausJogja API"})
	})

	api := router.Group("/api")
	{
		authRequired := middleware.AuthMiddleware(h.DB)
		adminOnly := middleware.AdminMiddleware()

		// --- Auth Routes ---
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", h.Register)
			authGroup.POST("/login", h.Login)
			authGroup.GET("/profile", authRequired, h.GetProfile)
			authGroup.PUT("/profile", authRequired, h.UpdateProfile)

			authGroup.GET("/users", authRequired, adminOnly, h.GetUsers)
			authGroup.DELETE("/users/:id", authRequired, adminOnly, h.DeleteUser)
		}

		// --- Category Routes ---
		categories := api.Group("/categories")
		{
			categories.GET("", h.GetCategories)
			categories.GET("/:id", h.GetCategoryByID)
			categories.POST("", authRequired, adminOnly, h.CreateCategory)
			categories.PUT("/:id", authRequired, adminOnly, h.UpdateCategory)
			categories.DELETE("/:id", authRequired, adminOnly, h.DeleteCategory)
		}

		// --- Product Routes ---
		products := api.Group("/products")
		{
			products.GET("", h.GetProducts)
			products.GET("/category/:slug", h.GetProductsByCategory)
			products.GET("/:slug", h.GetProductBySlug)
			products.POST("", authRequired, adminOnly, h.CreateProduct)
			products.PUT("/:id", authRequired, adminOnly, h.UpdateProduct)
			products.DELETE("/:id", authRequired, adminOnly, h.DeleteProduct)
		}

		// --- Order Routes ---
		orders := api.Group("/orders")
		orders.Use(authRequired)
		{
			orders.POST("", h.CreateOrder)
			orders.GET("", adminOnly, h.GetOrders)
			orders.GET("/myorders", h.GetMyOrders)
			orders.GET("/:id", h.GetOrderByID)
			orders.PUT("/:id/status", adminOnly, h.UpdateOrderStatus)
		}
	}

	return router
}
