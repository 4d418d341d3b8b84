package cart

import (
	"context"
	"fmt"

	"marketplace/internal/clock"
	"marketplace/internal/markerrors"
	"marketplace/internal/models"
	"marketplace/internal/repository"
	"marketplace/utils"
)

// Service is the cart reservation manager. It converts winning bids and
// accepted offers into cart lines, handles plain fixed-price carting, and
// rolls a reservation back when the buyer abandons it.
type Service struct {
	store repository.MarketStore
	clk   clock.Clock
}

// NewService creates a new cart Service instance.
func NewService(store repository.MarketStore, clk clock.Clock) *Service {
	return &Service{store: store, clk: clk}
}

// ReserveInTx reserves the listing for buyerID at agreedPrice inside the
// caller's transaction: get-or-create the buyer's cart, replace any existing
// cart line for this listing, and move the listing to reserved. Re-reserving
// a listing already reserved through this flow is a no-op on the status.
func (s *Service) ReserveInTx(ctx context.Context, tx repository.MarketStore, listingID, buyerID string, agreedPrice float64) (models.CartItem, error) {
	l, err := tx.GetListingForUpdate(ctx, listingID)
	if err != nil {
		return models.CartItem{}, err
	}
	if l.Status != models.ListingAvailable && l.Status != models.ListingReserved {
		return models.CartItem{}, fmt.Errorf("reserve listing %s: status is %s: %w", listingID, l.Status, markerrors.ErrListingUnavailable)
	}

	item, err := s.materialize(ctx, tx, listingID, buyerID, agreedPrice)
	if err != nil {
		return models.CartItem{}, err
	}

	if l.Status == models.ListingAvailable {
		status := models.ListingReserved
		now := s.clk.Now()
		err = tx.UpdateListing(ctx, listingID, []models.ListingStatus{models.ListingAvailable}, repository.ListingPatch{
			Status:     &status,
			ReservedAt: &now,
		})
		if err != nil {
			return models.CartItem{}, err
		}
	}
	return item, nil
}

// Reserve is ReserveInTx in its own transaction.
func (s *Service) Reserve(ctx context.Context, listingID, buyerID string, agreedPrice float64) (models.CartItem, error) {
	if listingID == "" || buyerID == "" {
		return models.CartItem{}, fmt.Errorf("reserve: missing listing or buyer: %w", markerrors.ErrInvalidInput)
	}
	if agreedPrice <= 0 {
		return models.CartItem{}, fmt.Errorf("reserve: non-positive agreed price: %w", markerrors.ErrInvalidInput)
	}
	var item models.CartItem
	err := s.store.InTx(ctx, func(tx repository.MarketStore) error {
		var err error
		item, err = s.ReserveInTx(ctx, tx, listingID, buyerID, agreedPrice)
		return err
	})
	if err != nil {
		return models.CartItem{}, err
	}
	return item, nil
}

// AddFixedPrice puts an available fixed-price listing into the buyer's cart
// at the list price. The listing stays available: plain carting does not
// reserve, only bids and offers do.
func (s *Service) AddFixedPrice(ctx context.Context, listingID, buyerID string) (models.CartItem, error) {
	if listingID == "" || buyerID == "" {
		return models.CartItem{}, fmt.Errorf("add to cart: missing listing or buyer: %w", markerrors.ErrInvalidInput)
	}
	var item models.CartItem
	err := s.store.InTx(ctx, func(tx repository.MarketStore) error {
		l, err := tx.GetListingForUpdate(ctx, listingID)
		if err != nil {
			return err
		}
		if l.SaleType != models.SaleTypeFixedPrice {
			return fmt.Errorf("add to cart: listing %s: %w", listingID, markerrors.ErrNotFixed)
		}
		if l.SellerID == buyerID {
			return fmt.Errorf("add to cart: listing %s: %w", listingID, markerrors.ErrOwnListing)
		}
		if l.Status != models.ListingAvailable {
			return fmt.Errorf("add to cart: listing %s: status is %s: %w", listingID, l.Status, markerrors.ErrListingUnavailable)
		}
		item, err = s.materialize(ctx, tx, listingID, buyerID, l.Price)
		return err
	})
	if err != nil {
		return models.CartItem{}, err
	}
	return item, nil
}

// materialize creates the buyer's cart on demand and replaces the cart line
// for this listing so a buyer never holds two entries for the same item.
func (s *Service) materialize(ctx context.Context, tx repository.MarketStore, listingID, buyerID string, agreedPrice float64) (models.CartItem, error) {
	c, err := tx.GetOrCreateCart(ctx, buyerID)
	if err != nil {
		return models.CartItem{}, err
	}
	item := models.CartItem{
		CartItemID:  utils.GenerateID(),
		CartID:      c.CartID,
		BuyerID:     buyerID,
		ListingID:   listingID,
		AgreedPrice: agreedPrice,
		Quantity:    1,
		CreatedAt:   s.clk.Now(),
	}
	if err := tx.ReplaceCartItem(ctx, item); err != nil {
		return models.CartItem{}, err
	}
	return item, nil
}

// Release removes a cart item and rolls back the reservation it may hold.
// A reserved auction listing reverts to cancelled_by_buyer (it needs an
// explicit re-auction); a reserved fixed-price listing loses its accepted
// offer and reverts to available. The cart item is deleted last, inside the
// same transaction.
func (s *Service) Release(ctx context.Context, cartItemID, requesterID string) error {
	if cartItemID == "" || requesterID == "" {
		return fmt.Errorf("release: missing cart item or requester: %w", markerrors.ErrInvalidInput)
	}
	return s.store.InTx(ctx, func(tx repository.MarketStore) error {
		item, err := tx.GetCartItem(ctx, cartItemID)
		if err != nil {
			return err
		}
		if item.BuyerID != requesterID {
			return fmt.Errorf("release cart item %s: %w", cartItemID, markerrors.ErrNotBuyer)
		}

		l, err := tx.GetListingForUpdate(ctx, item.ListingID)
		if err != nil {
			return err
		}
		if l.Status == models.ListingReserved {
			if l.SaleType == models.SaleTypeAuction {
				status := models.ListingCancelledByBuyer
				ended := models.AuctionEnded
				err = tx.UpdateListing(ctx, l.ListingID, []models.ListingStatus{models.ListingReserved}, repository.ListingPatch{
					Status:        &status,
					AuctionStatus: &ended,
				})
			} else {
				if err := tx.DeleteAcceptedOffer(ctx, l.ListingID, item.BuyerID); err != nil {
					return err
				}
				status := models.ListingAvailable
				err = tx.UpdateListing(ctx, l.ListingID, []models.ListingStatus{models.ListingReserved}, repository.ListingPatch{
					Status:           &status,
					ClearReservation: true,
				})
			}
			if err != nil {
				return err
			}
		}

		return tx.DeleteCartItem(ctx, cartItemID)
	})
}

// Items returns the buyer's current cart contents.
func (s *Service) Items(ctx context.Context, buyerID string) ([]models.CartItem, error) {
	if buyerID == "" {
		return nil, fmt.Errorf("cart items: empty buyer ID: %w", markerrors.ErrInvalidInput)
	}
	return s.store.CartItemsByBuyer(ctx, buyerID)
}
