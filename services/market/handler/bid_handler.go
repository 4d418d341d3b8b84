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

//go:generate mockgen -source=bid_handler.go -destination=mock_bid_service.go -package=handler

type BidServiceInterface interface {
	PlaceBid(ctx context.Context, listingID, bidderID string, amount float64) (models.Bid, error)
	MinimumBid(ctx context.Context, listingID string) (float64, error)
	BidsForListing(ctx context.Context, listingID string) ([]models.Bid, error)
	WinningBid(ctx context.Context, listingID string) (models.Bid, error)
	FinalizeAuction(ctx context.Context, listingID, sellerID string) (models.Bid, error)
	ReAuction(ctx context.Context, listingID, sellerID string, startingPrice, bidIncrement float64, duration time.Duration) (models.Listing, error)
}

type BidHandler struct {
	service BidServiceInterface
}

func NewBidHandler(service BidServiceInterface) *BidHandler {
	return &BidHandler{service: service}
}

func bidResponse(bid models.Bid) helpers.BidResponse {
	return helpers.BidResponse{
		BidID:     bid.BidID,
		ListingID: bid.ListingID,
		BidderID:  bid.BidderID,
		Amount:    bid.Amount,
		CreatedAt: bid.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// PlaceBidHandler handles POST /listings/:listing_id/bids
func (h *BidHandler) PlaceBidHandler(c *gin.Context) {
	userID, _ := helpers.CurrentUser(c)
	listingID := c.Param("listing_id")

	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	bid, err := h.service.PlaceBid(c.Request.Context(), listingID, userID, req.Amount)
	if err != nil {
		helpers.HandleServiceError(c, "PlaceBidHandler", err, map[string]any{
			"listing_id": listingID,
			"user_id":    userID,
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, bidResponse(bid), "bid recorded successfully")
	helpers.LogSuccess("PlaceBidHandler", "bid recorded successfully", map[string]any{
		"bid_id":     bid.BidID,
		"listing_id": listingID,
		"user_id":    userID,
		"amount":     bid.Amount,
	})
}

// GetBidsHandler handles GET /listings/:listing_id/bids
func (h *BidHandler) GetBidsHandler(c *gin.Context) {
	listingID := c.Param("listing_id")
	bids, err := h.service.BidsForListing(c.Request.Context(), listingID)
	if err != nil {
		helpers.HandleServiceError(c, "GetBidsHandler", err, map[string]any{"listing_id": listingID})
		return
	}

	resp := make([]helpers.BidResponse, 0, len(bids))
	for _, b := range bids {
		resp = append(resp, bidResponse(b))
	}
	utils.JSONResponse(c, http.StatusOK, resp, "bids retrieved successfully")
}

// GetMinimumBidHandler handles GET /listings/:listing_id/bids/minimum
func (h *BidHandler) GetMinimumBidHandler(c *gin.Context) {
	listingID := c.Param("listing_id")
	min, err := h.service.MinimumBid(c.Request.Context(), listingID)
	if err != nil {
		helpers.HandleServiceError(c, "GetMinimumBidHandler", err, map[string]any{"listing_id": listingID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.MinimumBidResponse{
		ListingID:  listingID,
		MinimumBid: min,
	}, "minimum bid retrieved successfully")
}

// GetWinningBidHandler handles GET /listings/:listing_id/bids/winning
func (h *BidHandler) GetWinningBidHandler(c *gin.Context) {
	listingID := c.Param("listing_id")
	bid, err := h.service.WinningBid(c.Request.Context(), listingID)
	if err != nil {
		helpers.HandleServiceError(c, "GetWinningBidHandler", err, map[string]any{"listing_id": listingID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, bidResponse(bid), "winning bid retrieved successfully")
}

// FinalizeAuctionHandler handles POST /listings/:listing_id/finalize
func (h *BidHandler) FinalizeAuctionHandler(c *gin.Context) {
	userID, _ := helpers.CurrentUser(c)
	listingID := c.Param("listing_id")

	bid, err := h.service.FinalizeAuction(c.Request.Context(), listingID, userID)
	if err != nil {
		helpers.HandleServiceError(c, "FinalizeAuctionHandler", err, map[string]any{
			"listing_id": listingID,
			"user_id":    userID,
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, bidResponse(bid), "auction finalized successfully")
	helpers.LogSuccess("FinalizeAuctionHandler", "auction finalized successfully", map[string]any{
		"listing_id": listingID,
		"winner_id":  bid.BidderID,
		"amount":     bid.Amount,
	})
}

// ReAuctionHandler handles POST /listings/:listing_id/reauction
func (h *BidHandler) ReAuctionHandler(c *gin.Context) {
	userID, _ := helpers.CurrentUser(c)
	listingID := c.Param("listing_id")

	var req helpers.ReAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "ReAuctionHandler", err)
		return
	}

	listing, err := h.service.ReAuction(c.Request.Context(), listingID, userID,
		req.StartingPrice, req.BidIncrement, time.Duration(req.DurationMinutes)*time.Minute)
	if err != nil {
		helpers.HandleServiceError(c, "ReAuctionHandler", err, map[string]any{
			"listing_id": listingID,
			"user_id":    userID,
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, listing, "listing re-auctioned successfully")
	helpers.LogSuccess("ReAuctionHandler", "listing re-auctioned successfully", map[string]any{
		"listing_id":     listingID,
		"starting_price": req.StartingPrice,
	})
}
