package offers

import (
	"context"
	"errors"
	"fmt"

	"marketplace/internal/cart"
	"marketplace/internal/clock"
	"marketplace/internal/markerrors"
	"marketplace/internal/models"
	"marketplace/internal/notify"
	"marketplace/internal/repository"
	"marketplace/utils"
)

// Seller and buyer response actions.
const (
	ActionAccept  = "accept"
	ActionDecline = "decline"
	ActionCounter = "counter"
)

// Service runs the offer negotiation protocol between one buyer and the
// seller of a fixed-price listing: pending -> {accepted, declined, countered},
// countered -> {accepted, declined} on the buyer's turn.
type Service struct {
	store repository.MarketStore
	carts *cart.Service
	clk   clock.Clock
	sink  notify.Sink
}

// NewService creates a new offer Service instance.
func NewService(store repository.MarketStore, carts *cart.Service, clk clock.Clock, sink notify.Sink) *Service {
	return &Service{store: store, carts: carts, clk: clk, sink: sink}
}

// CreateOffer opens a negotiation. A buyer may hold at most one active
// (pending or countered) offer per listing.
func (s *Service) CreateOffer(ctx context.Context, listingID, buyerID string, offerPrice float64) (models.Offer, error) {
	if listingID == "" || buyerID == "" {
		return models.Offer{}, fmt.Errorf("create offer: missing listing or buyer: %w", markerrors.ErrInvalidInput)
	}
	if offerPrice <= 0 {
		return models.Offer{}, fmt.Errorf("create offer: non-positive price: %w", markerrors.ErrInvalidInput)
	}

	now := s.clk.Now()
	offer := models.Offer{
		OfferID:    utils.GenerateID(),
		ListingID:  listingID,
		BuyerID:    buyerID,
		OfferPrice: offerPrice,
		Status:     models.OfferPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	var sellerID string
	err := s.store.InTx(ctx, func(tx repository.MarketStore) error {
		l, err := tx.GetListingForUpdate(ctx, listingID)
		if err != nil {
			return err
		}
		if l.SaleType != models.SaleTypeFixedPrice {
			return fmt.Errorf("create offer: listing %s: %w", listingID, markerrors.ErrNotFixed)
		}
		if l.SellerID == buyerID {
			return fmt.Errorf("create offer: listing %s: %w", listingID, markerrors.ErrOwnListing)
		}
		if l.Status != models.ListingAvailable {
			return fmt.Errorf("create offer: listing %s: status is %s: %w", listingID, l.Status, markerrors.ErrListingUnavailable)
		}
		if _, err := tx.ActiveOffer(ctx, listingID, buyerID); err == nil {
			return fmt.Errorf("create offer: listing %s: %w", listingID, markerrors.ErrOfferExists)
		} else if !errors.Is(err, markerrors.ErrOfferNotFound) {
			return err
		}
		sellerID = l.SellerID
		return tx.CreateOffer(ctx, offer)
	})
	if err != nil {
		return models.Offer{}, err
	}

	s.sink.Notify(ctx, notify.Event{
		UserID:  sellerID,
		Kind:    notify.KindOfferReceived,
		Message: fmt.Sprintf("You received an offer of %.2f.", offerPrice),
		Link:    "/listings/" + listingID,
	})
	return offer, nil
}

// SellerRespond handles the seller's turn on a pending offer: accept closes
// the negotiation into a reservation, decline ends it, counter returns the
// offer to the buyer at a new price.
func (s *Service) SellerRespond(ctx context.Context, offerID, sellerID, action string, counterPrice float64) (models.Offer, error) {
	if offerID == "" || sellerID == "" {
		return models.Offer{}, fmt.Errorf("seller respond: missing offer or seller: %w", markerrors.ErrInvalidInput)
	}
	if action != ActionAccept && action != ActionDecline && action != ActionCounter {
		return models.Offer{}, fmt.Errorf("seller respond: unknown action %q: %w", action, markerrors.ErrInvalidInput)
	}
	if action == ActionCounter && counterPrice <= 0 {
		return models.Offer{}, fmt.Errorf("seller respond: counter requires a positive price: %w", markerrors.ErrInvalidInput)
	}

	var out models.Offer
	err := s.store.InTx(ctx, func(tx repository.MarketStore) error {
		o, err := tx.GetOffer(ctx, offerID)
		if err != nil {
			return err
		}
		l, err := tx.GetListingForUpdate(ctx, o.ListingID)
		if err != nil {
			return err
		}
		if l.SellerID != sellerID {
			return fmt.Errorf("seller respond: offer %s: %w", offerID, markerrors.ErrNotSeller)
		}
		if o.Status != models.OfferPending {
			return fmt.Errorf("seller respond: offer %s: status is %s: %w", offerID, o.Status, markerrors.ErrOfferNotActionable)
		}

		switch action {
		case ActionAccept:
			out, err = s.accept(ctx, tx, o, l)
		case ActionDecline:
			out, err = s.transition(ctx, tx, o, models.OfferPending, models.OfferDeclined, nil)
		case ActionCounter:
			out, err = s.transition(ctx, tx, o, models.OfferPending, models.OfferCountered, &counterPrice)
		}
		return err
	})
	if err != nil {
		return models.Offer{}, err
	}

	s.notifyBuyer(ctx, out, action)
	return out, nil
}

// BuyerRespond handles the buyer's turn on a countered offer.
func (s *Service) BuyerRespond(ctx context.Context, offerID, buyerID, action string) (models.Offer, error) {
	if offerID == "" || buyerID == "" {
		return models.Offer{}, fmt.Errorf("buyer respond: missing offer or buyer: %w", markerrors.ErrInvalidInput)
	}
	if action != ActionAccept && action != ActionDecline {
		return models.Offer{}, fmt.Errorf("buyer respond: unknown action %q: %w", action, markerrors.ErrInvalidInput)
	}

	var out models.Offer
	err := s.store.InTx(ctx, func(tx repository.MarketStore) error {
		o, err := tx.GetOffer(ctx, offerID)
		if err != nil {
			return err
		}
		if o.BuyerID != buyerID {
			return fmt.Errorf("buyer respond: offer %s: %w", offerID, markerrors.ErrNotBuyer)
		}
		if o.Status != models.OfferCountered {
			return fmt.Errorf("buyer respond: offer %s: status is %s: %w", offerID, o.Status, markerrors.ErrOfferNotActionable)
		}
		l, err := tx.GetListingForUpdate(ctx, o.ListingID)
		if err != nil {
			return err
		}

		switch action {
		case ActionAccept:
			out, err = s.accept(ctx, tx, o, l)
		case ActionDecline:
			out, err = s.transition(ctx, tx, o, models.OfferCountered, models.OfferDeclined, nil)
		}
		return err
	})
	if err != nil {
		return models.Offer{}, err
	}
	return out, nil
}

// accept moves the offer to accepted and reserves the listing for the buyer
// at the agreed price. Reservation replaces any cart line the buyer already
// holds for the listing, so a discounted and a full-price entry can never
// coexist.
func (s *Service) accept(ctx context.Context, tx repository.MarketStore, o models.Offer, l models.Listing) (models.Offer, error) {
	if l.Status != models.ListingAvailable {
		return models.Offer{}, fmt.Errorf("accept offer %s: listing status is %s: %w", o.OfferID, l.Status, markerrors.ErrListingUnavailable)
	}
	out, err := s.transition(ctx, tx, o, o.Status, models.OfferAccepted, nil)
	if err != nil {
		return models.Offer{}, err
	}
	if _, err := s.carts.ReserveInTx(ctx, tx, o.ListingID, o.BuyerID, o.OfferPrice); err != nil {
		return models.Offer{}, err
	}
	return out, nil
}

func (s *Service) transition(ctx context.Context, tx repository.MarketStore, o models.Offer, from, to models.OfferStatus, price *float64) (models.Offer, error) {
	patch := repository.OfferPatch{
		Status:     &to,
		OfferPrice: price,
		UpdatedAt:  s.clk.Now(),
	}
	if err := tx.UpdateOffer(ctx, o.OfferID, []models.OfferStatus{from}, patch); err != nil {
		return models.Offer{}, err
	}
	return tx.GetOffer(ctx, o.OfferID)
}

func (s *Service) notifyBuyer(ctx context.Context, o models.Offer, action string) {
	kind := notify.KindOfferDeclined
	message := "Your offer was declined."
	switch action {
	case ActionAccept:
		kind = notify.KindOfferAccepted
		message = fmt.Sprintf("Your offer of %.2f was accepted. The item is reserved in your cart.", o.OfferPrice)
	case ActionCounter:
		kind = notify.KindOfferCountered
		message = fmt.Sprintf("The seller countered at %.2f.", o.OfferPrice)
	}
	s.sink.Notify(ctx, notify.Event{
		UserID:  o.BuyerID,
		Kind:    kind,
		Message: message,
		Link:    "/listings/" + o.ListingID,
	})
}

// OffersForListing returns every offer on a listing; only the seller may view.
func (s *Service) OffersForListing(ctx context.Context, listingID, requesterID string) ([]models.Offer, error) {
	if listingID == "" || requesterID == "" {
		return nil, fmt.Errorf("offers for listing: missing listing or requester: %w", markerrors.ErrInvalidInput)
	}
	l, err := s.store.GetListing(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if l.SellerID != requesterID {
		return nil, fmt.Errorf("offers for listing %s: %w", listingID, markerrors.ErrNotSeller)
	}
	return s.store.OffersByListing(ctx, listingID)
}

// OffersForBuyer returns the buyer's offers across listings.
func (s *Service) OffersForBuyer(ctx context.Context, buyerID string) ([]models.Offer, error) {
	if buyerID == "" {
		return nil, fmt.Errorf("offers for buyer: empty buyer ID: %w", markerrors.ErrInvalidInput)
	}
	return s.store.OffersByBuyer(ctx, buyerID)
}
