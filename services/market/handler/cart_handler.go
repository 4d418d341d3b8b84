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

//go:generate mockgen -source=cart_handler.go -destination=mock_cart_service.go -package=handler

type CartServiceInterface interface {
	AddFixedPrice(ctx context.Context, listingID, buyerID string) (models.CartItem, error)
	Release(ctx context.Context, cartItemID, requesterID string) error
	Items(ctx context.Context, buyerID string) ([]models.CartItem, error)
}

type CartHandler struct {
	service CartServiceInterface
}

func NewCartHandler(service CartServiceInterface) *CartHandler {
	return &CartHandler{service: service}
}

func cartItemResponse(item models.CartItem) helpers.CartItemResponse {
	return helpers.CartItemResponse{
		CartItemID:  item.CartItemID,
		ListingID:   item.ListingID,
		AgreedPrice: item.AgreedPrice,
		Quantity:    item.Quantity,
		CreatedAt:   item.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// AddCartItemHandler handles POST /cart/items
func (h *CartHandler) AddCartItemHandler(c *gin.Context) {
	userID, _ := helpers.CurrentUser(c)

	var req helpers.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "AddCartItemHandler", err)
		return
	}

	item, err := h.service.AddFixedPrice(c.Request.Context(), req.ListingID, userID)
	if err != nil {
		helpers.HandleServiceError(c, "AddCartItemHandler", err, map[string]any{
			"listing_id": req.ListingID,
			"user_id":    userID,
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, cartItemResponse(item), "item added to cart")
	helpers.LogSuccess("AddCartItemHandler", "item added to cart", map[string]any{
		"cart_item_id": item.CartItemID,
		"listing_id":   req.ListingID,
		"user_id":      userID,
	})
}

// GetCartItemsHandler handles GET /cart/items
func (h *CartHandler) GetCartItemsHandler(c *gin.Context) {
	userID, _ := helpers.CurrentUser(c)

	items, err := h.service.Items(c.Request.Context(), userID)
	if err != nil {
		helpers.HandleServiceError(c, "GetCartItemsHandler", err, map[string]any{"user_id": userID})
		return
	}

	resp := make([]helpers.CartItemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, cartItemResponse(item))
	}
	utils.JSONResponse(c, http.StatusOK, resp, "cart items retrieved successfully")
}

// ReleaseCartItemHandler handles DELETE /cart/items/:cart_item_id
func (h *CartHandler) ReleaseCartItemHandler(c *gin.Context) {
	userID, _ := helpers.CurrentUser(c)
	cartItemID := c.Param("cart_item_id")

	if err := h.service.Release(c.Request.Context(), cartItemID, userID); err != nil {
		helpers.HandleServiceError(c, "ReleaseCartItemHandler", err, map[string]any{
			"cart_item_id": cartItemID,
			"user_id":      userID,
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, nil, "cart item released")
	helpers.LogSuccess("ReleaseCartItemHandler", "cart item released", map[string]any{
		"cart_item_id": cartItemID,
		"user_id":      userID,
	})
}
