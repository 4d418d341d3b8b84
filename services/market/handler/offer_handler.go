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

//go:generate mockgen -source=offer_handler.go -destination=mock_offer_service.go -package=handler

type OfferServiceInterface interface {
	CreateOffer(ctx context.Context, listingID, buyerID string, offerPrice float64) (models.Offer, error)
	SellerRespond(ctx context.Context, offerID, sellerID, action string, counterPrice float64) (models.Offer, error)
	BuyerRespond(ctx context.Context, offerID, buyerID, action string) (models.Offer, error)
	OffersForListing(ctx context.Context, listingID, requesterID string) ([]models.Offer, error)
	OffersForBuyer(ctx context.Context, buyerID string) ([]models.Offer, error)
}

type OfferHandler struct {
	service OfferServiceInterface
}

func NewOfferHandler(service OfferServiceInterface) *OfferHandler {
	return &OfferHandler{service: service}
}

func offerResponse(o models.Offer) helpers.OfferResponse {
	return helpers.OfferResponse{
		OfferID:    o.OfferID,
		ListingID:  o.ListingID,
		BuyerID:    o.BuyerID,
		OfferPrice: o.OfferPrice,
		Status:     string(o.Status),
		UpdatedAt:  o.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// CreateOfferHandler handles POST /listings/:listing_id/offers
func (h *OfferHandler) CreateOfferHandler(c *gin.Context) {
	userID, _ := helpers.CurrentUser(c)
	listingID := c.Param("listing_id")

	var req helpers.CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateOfferHandler", err)
		return
	}

	offer, err := h.service.CreateOffer(c.Request.Context(), listingID, userID, req.OfferPrice)
	if err != nil {
		helpers.HandleServiceError(c, "CreateOfferHandler", err, map[string]any{
			"listing_id": listingID,
			"user_id":    userID,
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, offerResponse(offer), "offer created successfully")
	helpers.LogSuccess("CreateOfferHandler", "offer created successfully", map[string]any{
		"offer_id":   offer.OfferID,
		"listing_id": listingID,
		"user_id":    userID,
	})
}

// SellerRespondHandler handles POST /offers/:offer_id/seller-response
func (h *OfferHandler) SellerRespondHandler(c *gin.Context) {
	userID, _ := helpers.CurrentUser(c)
	offerID := c.Param("offer_id")

	var req helpers.SellerRespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "SellerRespondHandler", err)
		return
	}

	offer, err := h.service.SellerRespond(c.Request.Context(), offerID, userID, req.Action, req.CounterPrice)
	if err != nil {
		helpers.HandleServiceError(c, "SellerRespondHandler", err, map[string]any{
			"offer_id": offerID,
			"user_id":  userID,
			"action":   req.Action,
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, offerResponse(offer), "offer response recorded")
	helpers.LogSuccess("SellerRespondHandler", "offer response recorded", map[string]any{
		"offer_id": offerID,
		"action":   req.Action,
		"status":   string(offer.Status),
	})
}

// BuyerRespondHandler handles POST /offers/:offer_id/buyer-response
func (h *OfferHandler) BuyerRespondHandler(c *gin.Context) {
	userID, _ := helpers.CurrentUser(c)
	offerID := c.Param("offer_id")

	var req helpers.BuyerRespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "BuyerRespondHandler", err)
		return
	}

	offer, err := h.service.BuyerRespond(c.Request.Context(), offerID, userID, req.Action)
	if err != nil {
		helpers.HandleServiceError(c, "BuyerRespondHandler", err, map[string]any{
			"offer_id": offerID,
			"user_id":  userID,
			"action":   req.Action,
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, offerResponse(offer), "offer response recorded")
	helpers.LogSuccess("BuyerRespondHandler", "offer response recorded", map[string]any{
		"offer_id": offerID,
		"action":   req.Action,
		"status":   string(offer.Status),
	})
}

// GetListingOffersHandler handles GET /listings/:listing_id/offers
func (h *OfferHandler) GetListingOffersHandler(c *gin.Context) {
	userID, _ := helpers.CurrentUser(c)
	listingID := c.Param("listing_id")

	offers, err := h.service.OffersForListing(c.Request.Context(), listingID, userID)
	if err != nil {
		helpers.HandleServiceError(c, "GetListingOffersHandler", err, map[string]any{
			"listing_id": listingID,
			"user_id":    userID,
		})
		return
	}

	resp := make([]helpers.OfferResponse, 0, len(offers))
	for _, o := range offers {
		resp = append(resp, offerResponse(o))
	}
	utils.JSONResponse(c, http.StatusOK, resp, "offers retrieved successfully")
}

// GetMyOffersHandler handles GET /offers
func (h *OfferHandler) GetMyOffersHandler(c *gin.Context) {
	userID, _ := helpers.CurrentUser(c)

	offers, err := h.service.OffersForBuyer(c.Request.Context(), userID)
	if err != nil {
		helpers.HandleServiceError(c, "GetMyOffersHandler", err, map[string]any{"user_id": userID})
		return
	}

	resp := make([]helpers.OfferResponse, 0, len(offers))
	for _, o := range offers {
		resp = append(resp, offerResponse(o))
	}
	utils.JSONResponse(c, http.StatusOK, resp, "offers retrieved successfully")
}
