package bidding

import (
	"context"
	"errors"
	"fmt"
	"time"

	"marketplace/internal/cart"
	"marketplace/internal/clock"
	"marketplace/internal/markerrors"
	"marketplace/internal/models"
	"marketplace/internal/notify"
	"marketplace/internal/repository"
	"marketplace/utils"
)

// Service is the bid engine: it validates and records bids, finalizes an
// auction into a reservation, and re-auctions a reclaimed listing.
type Service struct {
	store repository.MarketStore
	carts *cart.Service
	clk   clock.Clock
	sink  notify.Sink
}

// NewService creates a new bidding Service instance.
func NewService(store repository.MarketStore, carts *cart.Service, clk clock.Clock, sink notify.Sink) *Service {
	return &Service{store: store, carts: carts, clk: clk, sink: sink}
}

// PlaceBid validates and records a bid. The minimum check and the insert run
// in one transaction over a locked listing row, so two bidders racing on the
// same minimum cannot both succeed.
func (s *Service) PlaceBid(ctx context.Context, listingID, bidderID string, amount float64) (models.Bid, error) {
	if listingID == "" || bidderID == "" {
		return models.Bid{}, fmt.Errorf("place bid: missing listing or bidder: %w", markerrors.ErrInvalidInput)
	}
	if amount <= 0 {
		return models.Bid{}, fmt.Errorf("place bid: non-positive amount: %w", markerrors.ErrInvalidInput)
	}

	bid := models.Bid{
		BidID:     utils.GenerateID(),
		ListingID: listingID,
		BidderID:  bidderID,
		Amount:    amount,
		CreatedAt: s.clk.Now(),
	}
	err := s.store.InTx(ctx, func(tx repository.MarketStore) error {
		l, err := tx.GetListingForUpdate(ctx, listingID)
		if err != nil {
			return err
		}
		if err := s.biddable(l, bidderID); err != nil {
			return err
		}
		min, err := minimumBid(ctx, tx, l)
		if err != nil {
			return err
		}
		if amount < min {
			return fmt.Errorf("place bid: minimum acceptable is %.2f: %w", min, markerrors.ErrBidTooLow)
		}
		return tx.CreateBid(ctx, bid)
	})
	if err != nil {
		return models.Bid{}, err
	}
	return bid, nil
}

// biddable checks the static preconditions for bidding on l.
func (s *Service) biddable(l models.Listing, bidderID string) error {
	if l.SaleType != models.SaleTypeAuction {
		return fmt.Errorf("place bid: listing %s: %w", l.ListingID, markerrors.ErrNotAuction)
	}
	if l.SellerID == bidderID {
		return fmt.Errorf("place bid: listing %s: %w", l.ListingID, markerrors.ErrOwnListing)
	}
	switch l.Status {
	case models.ListingReserved, models.ListingSold, models.ListingCancelledByBuyer:
		return fmt.Errorf("place bid: listing %s: status is %s: %w", l.ListingID, l.Status, markerrors.ErrListingUnavailable)
	}
	if l.AuctionStatus != models.AuctionRunning {
		return fmt.Errorf("place bid: listing %s: %w", l.ListingID, markerrors.ErrAuctionNotRunning)
	}
	if clock.AuctionExpired(s.clk, l.AuctionEndTime) {
		return fmt.Errorf("place bid: listing %s: %w", l.ListingID, markerrors.ErrAuctionEnded)
	}
	return nil
}

// minimumBid computes the lowest acceptable bid: highest existing bid plus
// the increment, or the starting price when no bids exist.
func minimumBid(ctx context.Context, store repository.MarketStore, l models.Listing) (float64, error) {
	highest, err := store.HighestBid(ctx, l.ListingID)
	if err != nil {
		if errors.Is(err, markerrors.ErrNoBids) {
			return l.StartingPrice, nil
		}
		return 0, err
	}
	return highest.Amount + l.BidIncrement, nil
}

// MinimumBid returns the current minimum acceptable bid for an auction listing.
func (s *Service) MinimumBid(ctx context.Context, listingID string) (float64, error) {
	if listingID == "" {
		return 0, fmt.Errorf("minimum bid: empty listing ID: %w", markerrors.ErrInvalidInput)
	}
	l, err := s.store.GetListing(ctx, listingID)
	if err != nil {
		return 0, err
	}
	if l.SaleType != models.SaleTypeAuction {
		return 0, fmt.Errorf("minimum bid: listing %s: %w", listingID, markerrors.ErrNotAuction)
	}
	return minimumBid(ctx, s.store, l)
}

// BidsForListing returns all bids for a listing, highest first.
func (s *Service) BidsForListing(ctx context.Context, listingID string) ([]models.Bid, error) {
	if listingID == "" {
		return nil, fmt.Errorf("bids for listing: empty listing ID: %w", markerrors.ErrInvalidInput)
	}
	return s.store.BidsByListing(ctx, listingID)
}

// WinningBid returns the current highest bid, ties broken by earliest
// creation time.
func (s *Service) WinningBid(ctx context.Context, listingID string) (models.Bid, error) {
	if listingID == "" {
		return models.Bid{}, fmt.Errorf("winning bid: empty listing ID: %w", markerrors.ErrInvalidInput)
	}
	return s.store.HighestBid(ctx, listingID)
}

// FinalizeAuction closes the auction into a reservation for the highest
// bidder: the listing becomes reserved with the winner recorded and a cart
// item materializes at the winning amount, all in one transaction. A seller
// may finalize after the auction's end time as long as the reaper has not
// reclaimed the listing.
func (s *Service) FinalizeAuction(ctx context.Context, listingID, sellerID string) (models.Bid, error) {
	if listingID == "" || sellerID == "" {
		return models.Bid{}, fmt.Errorf("finalize auction: missing listing or seller: %w", markerrors.ErrInvalidInput)
	}

	var winning models.Bid
	err := s.store.InTx(ctx, func(tx repository.MarketStore) error {
		l, err := tx.GetListingForUpdate(ctx, listingID)
		if err != nil {
			return err
		}
		if l.SellerID != sellerID {
			return fmt.Errorf("finalize auction: listing %s: %w", listingID, markerrors.ErrNotSeller)
		}
		if l.SaleType != models.SaleTypeAuction {
			return fmt.Errorf("finalize auction: listing %s: %w", listingID, markerrors.ErrNotAuction)
		}
		switch l.Status {
		case models.ListingSold, models.ListingCancelledByBuyer:
			return fmt.Errorf("finalize auction: listing %s: status is %s: %w", listingID, l.Status, markerrors.ErrListingUnavailable)
		}

		winning, err = tx.HighestBid(ctx, listingID)
		if err != nil {
			if errors.Is(err, markerrors.ErrNoBids) {
				// Zero bids cannot finalize; the seller re-auctions instead.
				return fmt.Errorf("finalize auction: listing %s: %w", listingID, markerrors.ErrConflict)
			}
			return err
		}

		if _, err := s.carts.ReserveInTx(ctx, tx, listingID, winning.BidderID, winning.Amount); err != nil {
			return err
		}

		ended := models.AuctionEnded
		return tx.UpdateListing(ctx, listingID, []models.ListingStatus{models.ListingReserved}, repository.ListingPatch{
			AuctionStatus: &ended,
			WinnerID:      &winning.BidderID,
		})
	})
	if err != nil {
		return models.Bid{}, err
	}

	s.sink.Notify(ctx, notify.Event{
		UserID:  winning.BidderID,
		Kind:    notify.KindAuctionWon,
		Message: fmt.Sprintf("You won the auction at %.2f. The item is reserved in your cart.", winning.Amount),
		Link:    "/listings/" + listingID,
	})
	return winning, nil
}

// ReAuction resets a reclaimed or expired auction: all prior bids are purged,
// new parameters applied, and the listing returns to available with a fresh
// end time. This is the only operation that deletes bid history.
func (s *Service) ReAuction(ctx context.Context, listingID, sellerID string, startingPrice, bidIncrement float64, duration time.Duration) (models.Listing, error) {
	if listingID == "" || sellerID == "" {
		return models.Listing{}, fmt.Errorf("re-auction: missing listing or seller: %w", markerrors.ErrInvalidInput)
	}
	if startingPrice <= 0 || bidIncrement <= 0 || duration <= 0 {
		return models.Listing{}, fmt.Errorf("re-auction: parameters must be positive: %w", markerrors.ErrInvalidInput)
	}

	var out models.Listing
	err := s.store.InTx(ctx, func(tx repository.MarketStore) error {
		l, err := tx.GetListingForUpdate(ctx, listingID)
		if err != nil {
			return err
		}
		if l.SellerID != sellerID {
			return fmt.Errorf("re-auction: listing %s: %w", listingID, markerrors.ErrNotSeller)
		}
		if l.SaleType != models.SaleTypeAuction {
			return fmt.Errorf("re-auction: listing %s: %w", listingID, markerrors.ErrNotAuction)
		}
		if l.Status != models.ListingCancelledByBuyer && !clock.AuctionExpired(s.clk, l.AuctionEndTime) {
			return fmt.Errorf("re-auction: listing %s: status is %s and auction has not expired: %w", listingID, l.Status, markerrors.ErrNotReAuctionable)
		}
		if l.Status == models.ListingSold {
			return fmt.Errorf("re-auction: listing %s: already sold: %w", listingID, markerrors.ErrListingUnavailable)
		}

		if err := tx.DeleteBidsByListing(ctx, listingID); err != nil {
			return err
		}

		status := models.ListingAvailable
		running := models.AuctionRunning
		end := s.clk.Now().Add(duration)
		err = tx.UpdateListing(ctx, listingID, nil, repository.ListingPatch{
			Status:           &status,
			AuctionStatus:    &running,
			StartingPrice:    &startingPrice,
			BidIncrement:     &bidIncrement,
			AuctionEndTime:   &end,
			ClearReservation: true,
		})
		if err != nil {
			return err
		}
		out, err = tx.GetListing(ctx, listingID)
		return err
	})
	if err != nil {
		return models.Listing{}, err
	}
	return out, nil
}
