package api

import (
	"net/http"
	"strconv"

	"marketplace-service/internal/service"

	"github.com/gin-gonic/gin"
)

// dashboardHome is the customer landing endpoint the guard redirects to
func (h *Handler) dashboardHome(c *gin.Context) {
	id := identityFrom(c)
	c.JSON(http.StatusOK, gin.H{"user_id": id.UserID})
}

// userStats returns the customer's dashboard aggregates
func (h *Handler) userStats(c *gin.Context) {
	id := identityFrom(c)

	stats, err := h.stats.UserStats(c.Request.Context(), id.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// userOrders lists the customer's orders
func (h *Handler) userOrders(c *gin.Context) {
	id := identityFrom(c)

	orders, err := h.orders.ListUserOrders(c.Request.Context(), id.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// userOrder returns one of the customer's own orders with its items
func (h *Handler) userOrder(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	id := identityFrom(c)
	order, items, err := h.orders.GetUserOrder(c.Request.Context(), orderID, id.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order": order,
		"items": items,
	})
}

// updateProfile updates the customer's name and phone
func (h *Handler) updateProfile(c *gin.Context) {
	var req service.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	id := identityFrom(c)
	user, err := h.catalog.UpdateProfile(c.Request.Context(), id.UserID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
