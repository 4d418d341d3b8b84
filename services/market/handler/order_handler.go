package handler

import (
	"context"
	"net/http"
	"time"

	"marketplace/internal/models"
	"marketplace/services/market/helpers"
	"marketplace/utils"

	"github.com/gin-gonic/gin"
)

//go:generate mockgen -source=order_handler.go -destination=mock_order_service.go -package=handler

type OrderServiceInterface interface {
	CreateOrder(ctx context.Context, buyerID string, cartItemIDs []string, paymentMethod, shippingMethod string) (models.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID, sellerID string, newStatus models.OrderStatus) (models.Order, error)
	OrdersForBuyer(ctx context.Context, buyerID string) ([]models.Order, error)
}

type OrderHandler struct {
	service OrderServiceInterface
}

func NewOrderHandler(service OrderServiceInterface) *OrderHandler {
	return &OrderHandler{service: service}
}

func orderResponse(o models.Order) helpers.OrderResponse {
	return helpers.OrderResponse{
		OrderID:        o.OrderID,
		BuyerID:        o.BuyerID,
		Status:         string(o.Status),
		FinalAmount:    o.FinalAmount,
		PaymentMethod:  o.PaymentMethod,
		ShippingMethod: o.ShippingMethod,
		CreatedAt:      o.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// CreateOrderHandler handles POST /orders
func (h *OrderHandler) CreateOrderHandler(c *gin.Context) {
	userID, _ := helpers.CurrentUser(c)

	var req helpers.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateOrderHandler", err)
		return
	}

	order, err := h.service.CreateOrder(c.Request.Context(), userID, req.CartItemIDs, req.PaymentMethod, req.ShippingMethod)
	if err != nil {
		helpers.HandleServiceError(c, "CreateOrderHandler", err, map[string]any{
			"user_id":    userID,
			"item_count": len(req.CartItemIDs),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, orderResponse(order), "order created successfully")
	helpers.LogSuccess("CreateOrderHandler", "order created successfully", map[string]any{
		"order_id":     order.OrderID,
		"user_id":      userID,
		"final_amount": order.FinalAmount,
	})
}

// UpdateOrderStatusHandler handles PATCH /orders/:order_id/status
func (h *OrderHandler) UpdateOrderStatusHandler(c *gin.Context) {
	userID, _ := helpers.CurrentUser(c)
	orderID := c.Param("order_id")

	var req helpers.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "UpdateOrderStatusHandler", err)
		return
	}

	order, err := h.service.UpdateOrderStatus(c.Request.Context(), orderID, userID, models.OrderStatus(req.Status))
	if err != nil {
		helpers.HandleServiceError(c, "UpdateOrderStatusHandler", err, map[string]any{
			"order_id": orderID,
			"user_id":  userID,
			"status":   req.Status,
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, orderResponse(order), "order status updated")
	helpers.LogSuccess("UpdateOrderStatusHandler", "order status updated", map[string]any{
		"order_id": orderID,
		"status":   req.Status,
	})
}

// GetMyOrdersHandler handles GET /orders
func (h *OrderHandler) GetMyOrdersHandler(c *gin.Context) {
	userID, _ := helpers.CurrentUser(c)

	orders, err := h.service.OrdersForBuyer(c.Request.Context(), userID)
	if err != nil {
		helpers.HandleServiceError(c, "GetMyOrdersHandler", err, map[string]any{"user_id": userID})
		return
	}

	resp := make([]helpers.OrderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, orderResponse(o))
	}
	utils.JSONResponse(c, http.StatusOK, resp, "orders retrieved successfully")
}
