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

// Test AddCartItemHandler
func TestAddCartItemHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockCartServiceInterface(ctrl)
	h := NewCartHandler(mockService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/cart/items", identityFor("buyer1"), h.AddCartItemHandler)

	now := time.Now().UTC()

	tests := []struct {
		name           string
		requestBody    any
		mockSetup      func()
		expectedStatus int
		validateData   func(t *testing.T, data map[string]any)
	}{
		{
			name:        "success",
			requestBody: helpers.AddCartItemRequest{ListingID: "listing1"},
			mockSetup: func() {
				mockService.EXPECT().
					AddFixedPrice(gomock.Any(), "listing1", "buyer1").
					Return(model.CartItem{
						CartItemID:  uuid.NewString(),
						ListingID:   "listing1",
						BuyerID:     "buyer1",
						AgreedPrice: 250,
						Quantity:    1,
						CreatedAt:   now,
					}, nil)
			},
			expectedStatus: http.StatusCreated,
			validateData: func(t *testing.T, data map[string]any) {
				require.Equal(t, "listing1", data["listing_id"])
				require.Equal(t, 250.0, data["agreed_price"])
				require.Equal(t, 1.0, data["quantity"])
			},
		},
		{
			name:           "missing_listing_id",
			requestBody:    map[string]any{},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "auction_listing_rejected",
			requestBody: helpers.AddCartItemRequest{ListingID: "listing1"},
			mockSetup: func() {
				mockService.EXPECT().
					AddFixedPrice(gomock.Any(), "listing1", "buyer1").
					Return(model.CartItem{}, markerrors.ErrNotFixed)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "listing_reserved",
			requestBody: helpers.AddCartItemRequest{ListingID: "listing1"},
			mockSetup: func() {
				mockService.EXPECT().
					AddFixedPrice(gomock.Any(), "listing1", "buyer1").
					Return(model.CartItem{}, markerrors.ErrListingUnavailable)
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			w := performJSON(t, router, http.MethodPost, "/cart/items", tt.requestBody)
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

// Test GetCartItemsHandler
func TestGetCartItemsHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockCartServiceInterface(ctrl)
	h := NewCartHandler(mockService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/cart/items", identityFor("buyer1"), h.GetCartItemsHandler)

	mockService.EXPECT().
		Items(gomock.Any(), "buyer1").
		Return([]model.CartItem{
			{CartItemID: "ci1", ListingID: "l1", AgreedPrice: 100, Quantity: 1},
			{CartItemID: "ci2", ListingID: "l2", AgreedPrice: 200, Quantity: 1},
		}, nil)

	w := performJSON(t, router, http.MethodGet, "/cart/items", nil)
	require.Equal(t, http.StatusOK, w.Code)

	envelope := decodeEnvelope(t, w)
	data := envelope["data"].([]any)
	require.Len(t, data, 2)
}

// Test ReleaseCartItemHandler
func TestReleaseCartItemHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockCartServiceInterface(ctrl)
	h := NewCartHandler(mockService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.DELETE("/cart/items/:cart_item_id", identityFor("buyer1"), h.ReleaseCartItemHandler)

	tests := []struct {
		name           string
		mockSetup      func()
		expectedStatus int
	}{
		{
			name: "success",
			mockSetup: func() {
				mockService.EXPECT().Release(gomock.Any(), "ci1", "buyer1").Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "not_the_owner",
			mockSetup: func() {
				mockService.EXPECT().Release(gomock.Any(), "ci1", "buyer1").Return(markerrors.ErrNotBuyer)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name: "item_not_found",
			mockSetup: func() {
				mockService.EXPECT().Release(gomock.Any(), "ci1", "buyer1").Return(markerrors.ErrCartItemNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			w := performJSON(t, router, http.MethodDelete, "/cart/items/ci1", nil)
			require.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}
