package repository

import (
	"context"
	"time"

	"marketplace/internal/models"

	"github.com/google/uuid"
)

// newID mints identifiers for rows the store creates itself (lazy carts).
func newID() string { return uuid.New().String() }

// ListingPatch is the allow-listed set of listing fields an engine may
// change. Unset pointers leave the column untouched.
type ListingPatch struct {
	Status         *models.ListingStatus
	AuctionStatus  *models.AuctionStatus
	WinnerID       *string
	ReservedAt     *time.Time
	StartingPrice  *float64
	BidIncrement   *float64
	AuctionEndTime *time.Time
	// ClearReservation empties winner_id and reserved_at together.
	ClearReservation bool
}

// OfferPatch is the allow-listed update set for an offer.
type OfferPatch struct {
	Status     *models.OfferStatus
	OfferPrice *float64
	UpdatedAt  time.Time
}

// MarketStore is the persistence port for the transaction engine. Conditional
// updates take an expected-state guard and fail with a conflict error when the
// row no longer matches, so every precondition is re-validated at write time.
type MarketStore interface {
	// InTx runs fn against a store bound to one transaction. All writes fn
	// performs commit together or not at all. Calling InTx on a store that is
	// already transactional reuses the surrounding transaction.
	InTx(ctx context.Context, fn func(tx MarketStore) error) error

	// Listings
	CreateListing(ctx context.Context, l models.Listing) error
	GetListing(ctx context.Context, listingID string) (models.Listing, error)
	// GetListingForUpdate locks the listing row for the duration of the
	// surrounding transaction.
	GetListingForUpdate(ctx context.Context, listingID string) (models.Listing, error)
	// UpdateListing applies patch iff the listing's status is one of expect.
	// A nil expect applies unconditionally.
	UpdateListing(ctx context.Context, listingID string, expect []models.ListingStatus, patch ListingPatch) error

	// Bids
	CreateBid(ctx context.Context, b models.Bid) error
	// BidsByListing returns bids ordered by amount descending, ties broken by
	// earliest creation time.
	BidsByListing(ctx context.Context, listingID string) ([]models.Bid, error)
	HighestBid(ctx context.Context, listingID string) (models.Bid, error)
	DeleteBidsByListing(ctx context.Context, listingID string) error

	// Offers
	CreateOffer(ctx context.Context, o models.Offer) error
	GetOffer(ctx context.Context, offerID string) (models.Offer, error)
	// ActiveOffer returns the pending or countered offer for (listing, buyer).
	ActiveOffer(ctx context.Context, listingID, buyerID string) (models.Offer, error)
	AcceptedOffer(ctx context.Context, listingID string) (models.Offer, error)
	OffersByListing(ctx context.Context, listingID string) ([]models.Offer, error)
	OffersByBuyer(ctx context.Context, buyerID string) ([]models.Offer, error)
	UpdateOffer(ctx context.Context, offerID string, expect []models.OfferStatus, patch OfferPatch) error
	// DeclineOffersByListing declines every pending, countered or accepted
	// offer on the listing except those belonging to exceptBuyerID, and
	// returns how many were declined.
	DeclineOffersByListing(ctx context.Context, listingID, exceptBuyerID string) (int, error)
	DeleteAcceptedOffer(ctx context.Context, listingID, buyerID string) error

	// Carts
	GetOrCreateCart(ctx context.Context, buyerID string) (models.Cart, error)
	GetCartItem(ctx context.Context, cartItemID string) (models.CartItem, error)
	CartItemsByBuyer(ctx context.Context, buyerID string) ([]models.CartItem, error)
	// CartItemsByIDs returns only items that exist and belong to buyerID.
	CartItemsByIDs(ctx context.Context, buyerID string, cartItemIDs []string) ([]models.CartItem, error)
	// ReplaceCartItem deletes any existing item for (cart, listing) and
	// inserts item in its place.
	ReplaceCartItem(ctx context.Context, item models.CartItem) error
	DeleteCartItem(ctx context.Context, cartItemID string) error
	DeleteCartItemByListing(ctx context.Context, buyerID, listingID string) error

	// Orders
	CreateOrder(ctx context.Context, o models.Order, items []models.OrderItem) error
	GetOrder(ctx context.Context, orderID string) (models.Order, error)
	OrderItemsByOrder(ctx context.Context, orderID string) ([]models.OrderItem, error)
	OrdersByBuyer(ctx context.Context, buyerID string) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, expect []models.OrderStatus, status models.OrderStatus, updatedAt time.Time) error

	// ExpiredAuctionReservations lists auction listings reserved before cutoff.
	ExpiredAuctionReservations(ctx context.Context, cutoff time.Time) ([]models.Listing, error)
}
