package api

import (
	"errors"
	"net/http"
	"time"

	"marketplace-service/internal/auth"
	"marketplace-service/internal/service"
	"marketplace-service/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains HTTP handlers
type Handler struct {
	orders   *service.OrderService
	catalog  *service.CatalogService
	stats    *service.StatsService
	resolver *auth.Resolver
}

// NewHandler creates a new HTTP handler
func NewHandler(
	orders *service.OrderService,
	catalog *service.CatalogService,
	stats *service.StatsService,
	resolver *auth.Resolver,
) *Handler {
	return &Handler{
		orders:   orders,
		catalog:  catalog,
		stats:    stats,
		resolver: resolver,
	}
}

// SetupRoutes sets up HTTP routes. The route guard runs before any handler,
// so admin/dashboard handlers can rely on the caller's role.
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())
	router.Use(IdentityMiddleware(h.resolver))
	router.Use(RouteGuard())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/products", h.listProducts)
	router.GET("/products/top", h.topProducts)
	router.GET("/products/:id", h.getProduct)
	router.GET("/stores", h.listStores)
	router.GET("/stores/:id", h.getStore)
	router.GET("/categories", h.listCategories)
	router.POST("/orders", h.placeOrder)

	authGroup := router.Group("/auth")
	{
		authGroup.GET("/signin", h.signInPage)
	}

	admin := router.Group("/admin")
	{
		admin.GET("", h.adminHome)
		admin.GET("/stats", h.adminStats)
		admin.GET("/orders", h.adminOrders)
		admin.PUT("/orders/:id/status", h.setOrderStatus)
		admin.POST("/store", h.createStore)
		admin.GET("/products", h.adminProducts)
		admin.POST("/products", h.createProduct)
		admin.PUT("/products/:id", h.updateProduct)
		admin.DELETE("/products/:id", h.deleteProduct)
	}

	dashboard := router.Group("/dashboard")
	{
		dashboard.GET("", h.dashboardHome)
		dashboard.GET("/stats", h.userStats)
		dashboard.GET("/orders", h.userOrders)
		dashboard.GET("/orders/:id", h.userOrder)
		dashboard.PUT("/profile", h.updateProfile)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// signInPage is where the guard sends unauthenticated callers. The sign-in
// flow itself belongs to the external auth provider.
func (h *Handler) signInPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "sign in with your session provider",
	})
}

// respondError maps the error taxonomy to status codes. Stock conflicts get
// 409 so callers can tell a race from a malformed request.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrProductNotFound),
		errors.Is(err, store.ErrOrderNotFound),
		errors.Is(err, store.ErrStoreNotFound),
		errors.Is(err, store.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, store.ErrInsufficientStock):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	case errors.Is(err, store.ErrStoreExists),
		errors.Is(err, service.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
