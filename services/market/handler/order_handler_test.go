package handler

import (
	"net/http"
	"testing"
	"time"

	"marketplace/internal/markerrors"
	model "marketplace/internal/models"
	"marketplace/services/market/helpers"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// Test CreateOrderHandler
func TestCreateOrderHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockOrderServiceInterface(ctrl)
	h := NewOrderHandler(mockService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/orders", identityFor("buyer1"), h.CreateOrderHandler)

	now := time.Now().UTC()

	tests := []struct {
		name           string
		requestBody    any
		mockSetup      func()
		expectedStatus int
		validateData   func(t *testing.T, data map[string]any)
	}{
		{
			name: "success",
			requestBody: helpers.CreateOrderRequest{
				CartItemIDs:    []string{"ci1", "ci2"},
				PaymentMethod:  "card",
				ShippingMethod: "post",
			},
			mockSetup: func() {
				mockService.EXPECT().
					CreateOrder(gomock.Any(), "buyer1", []string{"ci1", "ci2"}, "card", "post").
					Return(model.Order{
						OrderID:        uuid.NewString(),
						BuyerID:        "buyer1",
						Status:         model.OrderPaymentPending,
						FinalAmount:    430,
						PaymentMethod:  "card",
						ShippingMethod: "post",
						CreatedAt:      now,
						UpdatedAt:      now,
					}, nil)
			},
			expectedStatus: http.StatusCreated,
			validateData: func(t *testing.T, data map[string]any) {
				require.Equal(t, "payment_pending", data["status"])
				require.Equal(t, 430.0, data["final_amount"])
			},
		},
		{
			name:           "empty_cart_items_fails_binding",
			requestBody:    map[string]any{"cart_item_ids": []string{}, "payment_method": "card", "shipping_method": "post"},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "stale_cart",
			requestBody: helpers.CreateOrderRequest{
				CartItemIDs:    []string{"ci1"},
				PaymentMethod:  "card",
				ShippingMethod: "post",
			},
			mockSetup: func() {
				mockService.EXPECT().
					CreateOrder(gomock.Any(), "buyer1", []string{"ci1"}, "card", "post").
					Return(model.Order{}, markerrors.ErrStaleCart)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "listing_no_longer_available",
			requestBody: helpers.CreateOrderRequest{
				CartItemIDs:    []string{"ci1"},
				PaymentMethod:  "card",
				ShippingMethod: "post",
			},
			mockSetup: func() {
				mockService.EXPECT().
					CreateOrder(gomock.Any(), "buyer1", []string{"ci1"}, "card", "post").
					Return(model.Order{}, markerrors.ErrListingUnavailable)
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			w := performJSON(t, router, http.MethodPost, "/orders", tt.requestBody)
			require.Equal(t, tt.expectedStatus, w.Code)

			if tt.validateData != nil {
				envelope := decodeEnvelope(t, w)
				data, ok := envelope["data"].(map[string]any)
				require.True(t, ok)
				tt.validateData(t, data)
			}
		})
	}
}

// Test UpdateOrderStatusHandler
func TestUpdateOrderStatusHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockOrderServiceInterface(ctrl)
	h := NewOrderHandler(mockService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.PATCH("/orders/:order_id/status", identityFor("seller1"), h.UpdateOrderStatusHandler)

	tests := []struct {
		name           string
		requestBody    any
		mockSetup      func()
		expectedStatus int
	}{
		{
			name:        "success",
			requestBody: helpers.UpdateOrderStatusRequest{Status: "paid"},
			mockSetup: func() {
				mockService.EXPECT().
					UpdateOrderStatus(gomock.Any(), "ord1", "seller1", model.OrderPaid).
					Return(model.Order{OrderID: "ord1", Status: model.OrderPaid}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:        "illegal_transition",
			requestBody: helpers.UpdateOrderStatusRequest{Status: "completed"},
			mockSetup: func() {
				mockService.EXPECT().
					UpdateOrderStatus(gomock.Any(), "ord1", "seller1", model.OrderCompleted).
					Return(model.Order{}, markerrors.ErrOrderTransition)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:        "not_a_seller_in_the_order",
			requestBody: helpers.UpdateOrderStatusRequest{Status: "paid"},
			mockSetup: func() {
				mockService.EXPECT().
					UpdateOrderStatus(gomock.Any(), "ord1", "seller1", model.OrderPaid).
					Return(model.Order{}, markerrors.ErrNotSeller)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "missing_status",
			requestBody:    map[string]any{},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			w := performJSON(t, router, http.MethodPatch, "/orders/ord1/status", tt.requestBody)
			require.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

// Test GetMyOrdersHandler
func TestGetMyOrdersHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockOrderServiceInterface(ctrl)
	h := NewOrderHandler(mockService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/orders", identityFor("buyer1"), h.GetMyOrdersHandler)

	mockService.EXPECT().
		OrdersForBuyer(gomock.Any(), "buyer1").
		Return([]model.Order{{OrderID: "ord1"}, {OrderID: "ord2"}}, nil)

	w := performJSON(t, router, http.MethodGet, "/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)

	envelope := decodeEnvelope(t, w)
	data := envelope["data"].([]any)
	require.Len(t, data, 2)
}
