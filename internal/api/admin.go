package api

import (
	"net/http"
	"strconv"

	"marketplace-service/internal/service"

	"github.com/gin-gonic/gin"
)

// adminHome is the admin landing endpoint the guard redirects to
func (h *Handler) adminHome(c *gin.Context) {
	id := identityFrom(c)

	st, err := h.catalog.GetOwnStore(c.Request.Context(), id.UserID)
	if err != nil {
		// admin without a store still lands here; onboarding happens via POST /admin/store
		c.JSON(http.StatusOK, gin.H{"store": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"store": st})
}

// adminStats returns the store dashboard aggregates
func (h *Handler) adminStats(c *gin.Context) {
	id := identityFrom(c)

	stats, err := h.stats.AdminStats(c.Request.Context(), id.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// adminOrders lists orders containing the admin's store products
func (h *Handler) adminOrders(c *gin.Context) {
	id := identityFrom(c)

	st, err := h.catalog.GetOwnStore(c.Request.Context(), id.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	orders, err := h.orders.ListStoreOrders(c.Request.Context(), st.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

type setStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// setOrderStatus assigns an order status
func (h *Handler) setOrderStatus(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	if err := h.orders.SetOrderStatus(c.Request.Context(), orderID, req.Status); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"order_id": orderID, "status": req.Status})
}

// createStore creates the admin's store
func (h *Handler) createStore(c *gin.Context) {
	var req service.CreateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	id := identityFrom(c)
	st, err := h.catalog.CreateStore(c.Request.Context(), id.UserID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, st)
}

// adminProducts lists the admin's own products
func (h *Handler) adminProducts(c *gin.Context) {
	id := identityFrom(c)

	st, err := h.catalog.GetOwnStore(c.Request.Context(), id.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	products, err := h.catalog.ListProducts(c.Request.Context(), st.ID, 0)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

// createProduct adds a product to the admin's store
func (h *Handler) createProduct(c *gin.Context) {
	var req service.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	id := identityFrom(c)
	product, err := h.catalog.CreateProduct(c.Request.Context(), id.UserID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, product)
}

// updateProduct edits a product owned by the admin's store
func (h *Handler) updateProduct(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var req service.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	id := identityFrom(c)
	product, err := h.catalog.UpdateProduct(c.Request.Context(), id.UserID, productID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// deleteProduct removes a product owned by the admin's store
func (h *Handler) deleteProduct(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	id := identityFrom(c)
	if err := h.catalog.DeleteProduct(c.Request.Context(), id.UserID, productID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}
