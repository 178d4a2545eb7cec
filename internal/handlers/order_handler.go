package handlers

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"order_manager/internal/services"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orderService services.OrderService
	uploadRoot   string
}

func NewOrderHandler(orderService services.OrderService, uploadRoot string) *OrderHandler {
	return &OrderHandler{orderService: orderService, uploadRoot: uploadRoot}
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.orderService.ListOrders()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var form services.OrderForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	var image *services.ImageUpload
	if file, header, err := c.Request.FormFile("image"); err == nil {
		defer file.Close()
		image = &services.ImageUpload{Filename: header.Filename, Reader: file}
	}

	orderID, err := h.orderService.SubmitOrder(form, image)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "order_id": orderID})
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.orderService.GetOrder(c.Param("order_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read orders"})
		return
	}
	if order == nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "order": order})
}

func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	var req struct {
		OrderID string `json:"order_id"`
		Code    string `json:"code"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	found, err := h.orderService.DeleteOrder(req.OrderID, req.Code)
	if errors.Is(err, services.ErrInvalidDeleteCode) {
		c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": "Invalid code"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": found})
}

// ServeImage returns an uploaded product image by its relative path.
func (h *OrderHandler) ServeImage(c *gin.Context) {
	rel := strings.TrimPrefix(c.Param("filepath"), "/")
	if rel == "" || strings.Contains(rel, "..") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid path"})
		return
	}

	c.File(filepath.Join(h.uploadRoot, filepath.FromSlash(rel)))
}
