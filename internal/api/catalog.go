package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// listProducts lists products, optionally filtered by store_id or category_id
func (h *Handler) listProducts(c *gin.Context) {
	storeID, _ := strconv.ParseInt(c.Query("store_id"), 10, 64)
	categoryID, _ := strconv.ParseInt(c.Query("category_id"), 10, 64)

	products, err := h.catalog.ListProducts(c.Request.Context(), storeID, categoryID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

// getProduct returns a product and records the view
func (h *Handler) getProduct(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	product, err := h.catalog.GetProduct(c.Request.Context(), productID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// topProducts returns the current best-selling products in rank order
func (h *Handler) topProducts(c *gin.Context) {
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "10"), 10, 64)
	if err != nil || limit < 1 || limit > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
		return
	}

	products, err := h.catalog.TopSellingProducts(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

// listStores lists all seller stores
func (h *Handler) listStores(c *gin.Context) {
	stores, err := h.catalog.ListStores(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stores": stores})
}

// getStore returns a store and its products
func (h *Handler) getStore(c *gin.Context) {
	storeID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid store ID"})
		return
	}

	st, err := h.catalog.GetStore(c.Request.Context(), storeID)
	if err != nil {
		respondError(c, err)
		return
	}

	products, err := h.catalog.ListProducts(c.Request.Context(), storeID, 0)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"store":    st,
		"products": products,
	})
}

// listCategories lists all categories
func (h *Handler) listCategories(c *gin.Context) {
	categories, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}
