package offers

import (
	"context"
	"sync"
	"testing"
	"time"

	"marketplace/internal/cart"
	"marketplace/internal/clock"
	"marketplace/internal/markerrors"
	"marketplace/internal/models"
	"marketplace/internal/notify"
	"marketplace/internal/repository"

	"github.com/stretchr/testify/require"
)

type recordSink struct {
	mu     sync.Mutex
	events []notify.Event
}

func (r *recordSink) Notify(ctx context.Context, event notify.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordSink) all() []notify.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notify.Event(nil), r.events...)
}

func newFixture(t *testing.T) (*Service, *repository.MemoryStore, *recordSink) {
	t.Helper()
	store := repository.NewMemoryStore()
	clk := &clock.Fixed{Instant: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	sink := &recordSink{}
	carts := cart.NewService(store, clk)
	return NewService(store, carts, clk, sink), store, sink
}

func seedFixed(t *testing.T, store *repository.MemoryStore, id, sellerID string, price float64) {
	t.Helper()
	require.NoError(t, store.CreateListing(context.Background(), models.Listing{
		ListingID: id,
		SellerID:  sellerID,
		Title:     "fixed listing",
		SaleType:  models.SaleTypeFixedPrice,
		Status:    models.ListingAvailable,
		Price:     price,
	}))
}

// Tests CreateOffer
func TestOfferService_CreateOffer(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name          string
		prepare       func(t *testing.T, svc *Service, store *repository.MemoryStore)
		listingID     string
		buyerID       string
		price         float64
		expectedError error
	}{
		{
			name:      "success",
			prepare:   func(t *testing.T, svc *Service, store *repository.MemoryStore) {},
			listingID: "l1",
			buyerID:   "buyer1",
			price:     200,
		},
		{
			name:          "non_positive_price",
			prepare:       func(t *testing.T, svc *Service, store *repository.MemoryStore) {},
			listingID:     "l1",
			buyerID:       "buyer1",
			price:         0,
			expectedError: markerrors.ErrInvalidInput,
		},
		{
			name: "auction_listing_rejected",
			prepare: func(t *testing.T, svc *Service, store *repository.MemoryStore) {
				require.NoError(t, store.CreateListing(ctx, models.Listing{
					ListingID: "a1", SellerID: "seller1", SaleType: models.SaleTypeAuction,
					Status: models.ListingAvailable, StartingPrice: 100, BidIncrement: 5,
				}))
			},
			listingID:     "a1",
			buyerID:       "buyer1",
			price:         200,
			expectedError: markerrors.ErrNotFixed,
		},
		{
			name:          "own_listing_rejected",
			prepare:       func(t *testing.T, svc *Service, store *repository.MemoryStore) {},
			listingID:     "l1",
			buyerID:       "seller1",
			price:         200,
			expectedError: markerrors.ErrOwnListing,
		},
		{
			name: "second_active_offer_rejected",
			prepare: func(t *testing.T, svc *Service, store *repository.MemoryStore) {
				_, err := svc.CreateOffer(ctx, "l1", "buyer1", 180)
				require.NoError(t, err)
			},
			listingID:     "l1",
			buyerID:       "buyer1",
			price:         200,
			expectedError: markerrors.ErrOfferExists,
		},
		{
			name: "reserved_listing_rejected",
			prepare: func(t *testing.T, svc *Service, store *repository.MemoryStore) {
				status := models.ListingReserved
				require.NoError(t, store.UpdateListing(ctx, "l1", nil, repository.ListingPatch{Status: &status}))
			},
			listingID:     "l1",
			buyerID:       "buyer1",
			price:         200,
			expectedError: markerrors.ErrListingUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, sink := newFixture(t)
			seedFixed(t, store, "l1", "seller1", 250)
			tt.prepare(t, svc, store)

			offer, err := svc.CreateOffer(ctx, tt.listingID, tt.buyerID, tt.price)
			if tt.expectedError != nil {
				require.ErrorIs(t, err, tt.expectedError)
				return
			}
			require.NoError(t, err)
			require.Equal(t, models.OfferPending, offer.Status)
			require.Equal(t, tt.price, offer.OfferPrice)

			events := sink.all()
			require.Len(t, events, 1)
			require.Equal(t, "seller1", events[0].UserID)
			require.Equal(t, notify.KindOfferReceived, events[0].Kind)
		})
	}
}

// A buyer whose offer was declined may open a fresh negotiation.
func TestOfferService_CreateOffer_AfterDecline(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newFixture(t)
	seedFixed(t, store, "l1", "seller1", 250)

	first, err := svc.CreateOffer(ctx, "l1", "buyer1", 180)
	require.NoError(t, err)
	_, err = svc.SellerRespond(ctx, first.OfferID, "seller1", ActionDecline, 0)
	require.NoError(t, err)

	_, err = svc.CreateOffer(ctx, "l1", "buyer1", 190)
	require.NoError(t, err)
}

// Tests SellerRespond
func TestOfferService_SellerRespond(t *testing.T) {
	ctx := context.Background()

	t.Run("accept_reserves_at_offer_price", func(t *testing.T) {
		svc, store, sink := newFixture(t)
		seedFixed(t, store, "l1", "seller1", 250)
		offer, err := svc.CreateOffer(ctx, "l1", "buyer1", 200)
		require.NoError(t, err)

		out, err := svc.SellerRespond(ctx, offer.OfferID, "seller1", ActionAccept, 0)
		require.NoError(t, err)
		require.Equal(t, models.OfferAccepted, out.Status)

		l, err := store.GetListing(ctx, "l1")
		require.NoError(t, err)
		require.Equal(t, models.ListingReserved, l.Status)

		items, err := store.CartItemsByBuyer(ctx, "buyer1")
		require.NoError(t, err)
		require.Len(t, items, 1)
		require.Equal(t, 200.0, items[0].AgreedPrice, "cart carries the negotiated price, not the list price")

		events := sink.all()
		require.Len(t, events, 2)
		require.Equal(t, notify.KindOfferAccepted, events[1].Kind)
		require.Equal(t, "buyer1", events[1].UserID)
	})

	t.Run("accept_replaces_full_price_cart_line", func(t *testing.T) {
		svc, store, _ := newFixture(t)
		seedFixed(t, store, "l1", "seller1", 250)

		clk := &clock.Fixed{Instant: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
		carts := cart.NewService(store, clk)
		_, err := carts.AddFixedPrice(ctx, "l1", "buyer1")
		require.NoError(t, err)

		offer, err := svc.CreateOffer(ctx, "l1", "buyer1", 200)
		require.NoError(t, err)
		_, err = svc.SellerRespond(ctx, offer.OfferID, "seller1", ActionAccept, 0)
		require.NoError(t, err)

		items, err := store.CartItemsByBuyer(ctx, "buyer1")
		require.NoError(t, err)
		require.Len(t, items, 1, "the discounted line replaces the full-price one")
		require.Equal(t, 200.0, items[0].AgreedPrice)
	})

	t.Run("decline_ends_negotiation", func(t *testing.T) {
		svc, store, _ := newFixture(t)
		seedFixed(t, store, "l1", "seller1", 250)
		offer, err := svc.CreateOffer(ctx, "l1", "buyer1", 200)
		require.NoError(t, err)

		out, err := svc.SellerRespond(ctx, offer.OfferID, "seller1", ActionDecline, 0)
		require.NoError(t, err)
		require.Equal(t, models.OfferDeclined, out.Status)

		l, err := store.GetListing(ctx, "l1")
		require.NoError(t, err)
		require.Equal(t, models.ListingAvailable, l.Status, "decline leaves the listing untouched")
	})

	t.Run("counter_updates_price", func(t *testing.T) {
		svc, store, sink := newFixture(t)
		seedFixed(t, store, "l1", "seller1", 250)
		offer, err := svc.CreateOffer(ctx, "l1", "buyer1", 200)
		require.NoError(t, err)

		out, err := svc.SellerRespond(ctx, offer.OfferID, "seller1", ActionCounter, 230)
		require.NoError(t, err)
		require.Equal(t, models.OfferCountered, out.Status)
		require.Equal(t, 230.0, out.OfferPrice)

		events := sink.all()
		require.Len(t, events, 2)
		require.Equal(t, notify.KindOfferCountered, events[1].Kind)
	})

	t.Run("counter_without_price_rejected", func(t *testing.T) {
		svc, store, _ := newFixture(t)
		seedFixed(t, store, "l1", "seller1", 250)
		offer, err := svc.CreateOffer(ctx, "l1", "buyer1", 200)
		require.NoError(t, err)

		_, err = svc.SellerRespond(ctx, offer.OfferID, "seller1", ActionCounter, 0)
		require.ErrorIs(t, err, markerrors.ErrInvalidInput)
	})

	t.Run("non_seller_rejected", func(t *testing.T) {
		svc, store, _ := newFixture(t)
		seedFixed(t, store, "l1", "seller1", 250)
		offer, err := svc.CreateOffer(ctx, "l1", "buyer1", 200)
		require.NoError(t, err)

		_, err = svc.SellerRespond(ctx, offer.OfferID, "buyer1", ActionAccept, 0)
		require.ErrorIs(t, err, markerrors.ErrNotSeller)
	})

	t.Run("responding_twice_rejected", func(t *testing.T) {
		svc, store, _ := newFixture(t)
		seedFixed(t, store, "l1", "seller1", 250)
		offer, err := svc.CreateOffer(ctx, "l1", "buyer1", 200)
		require.NoError(t, err)
		_, err = svc.SellerRespond(ctx, offer.OfferID, "seller1", ActionDecline, 0)
		require.NoError(t, err)

		_, err = svc.SellerRespond(ctx, offer.OfferID, "seller1", ActionAccept, 0)
		require.ErrorIs(t, err, markerrors.ErrOfferNotActionable)
	})
}

// Tests BuyerRespond
func TestOfferService_BuyerRespond(t *testing.T) {
	ctx := context.Background()

	counter := func(t *testing.T, svc *Service, price float64) models.Offer {
		t.Helper()
		offer, err := svc.CreateOffer(ctx, "l1", "buyer1", 200)
		require.NoError(t, err)
		out, err := svc.SellerRespond(ctx, offer.OfferID, "seller1", ActionCounter, price)
		require.NoError(t, err)
		return out
	}

	t.Run("accept_counter_reserves_at_countered_price", func(t *testing.T) {
		svc, store, _ := newFixture(t)
		seedFixed(t, store, "l1", "seller1", 250)
		offer := counter(t, svc, 230)

		out, err := svc.BuyerRespond(ctx, offer.OfferID, "buyer1", ActionAccept)
		require.NoError(t, err)
		require.Equal(t, models.OfferAccepted, out.Status)

		items, err := store.CartItemsByBuyer(ctx, "buyer1")
		require.NoError(t, err)
		require.Len(t, items, 1)
		require.Equal(t, 230.0, items[0].AgreedPrice)
	})

	t.Run("decline_counter", func(t *testing.T) {
		svc, store, _ := newFixture(t)
		seedFixed(t, store, "l1", "seller1", 250)
		offer := counter(t, svc, 230)

		out, err := svc.BuyerRespond(ctx, offer.OfferID, "buyer1", ActionDecline)
		require.NoError(t, err)
		require.Equal(t, models.OfferDeclined, out.Status)
	})

	t.Run("buyer_cannot_counter", func(t *testing.T) {
		svc, store, _ := newFixture(t)
		seedFixed(t, store, "l1", "seller1", 250)
		offer := counter(t, svc, 230)

		_, err := svc.BuyerRespond(ctx, offer.OfferID, "buyer1", ActionCounter)
		require.ErrorIs(t, err, markerrors.ErrInvalidInput)
	})

	t.Run("pending_offer_not_actionable_by_buyer", func(t *testing.T) {
		svc, store, _ := newFixture(t)
		seedFixed(t, store, "l1", "seller1", 250)
		offer, err := svc.CreateOffer(ctx, "l1", "buyer1", 200)
		require.NoError(t, err)

		_, err = svc.BuyerRespond(ctx, offer.OfferID, "buyer1", ActionAccept)
		require.ErrorIs(t, err, markerrors.ErrOfferNotActionable)
	})

	t.Run("wrong_buyer_rejected", func(t *testing.T) {
		svc, store, _ := newFixture(t)
		seedFixed(t, store, "l1", "seller1", 250)
		offer := counter(t, svc, 230)

		_, err := svc.BuyerRespond(ctx, offer.OfferID, "buyer2", ActionAccept)
		require.ErrorIs(t, err, markerrors.ErrNotBuyer)
	})
}

// Tests read paths
func TestOfferService_Reads(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newFixture(t)
	seedFixed(t, store, "l1", "seller1", 250)

	_, err := svc.CreateOffer(ctx, "l1", "buyer1", 180)
	require.NoError(t, err)

	t.Run("seller_sees_listing_offers", func(t *testing.T) {
		offers, err := svc.OffersForListing(ctx, "l1", "seller1")
		require.NoError(t, err)
		require.Len(t, offers, 1)
	})

	t.Run("non_seller_cannot_view_listing_offers", func(t *testing.T) {
		_, err := svc.OffersForListing(ctx, "l1", "buyer1")
		require.ErrorIs(t, err, markerrors.ErrNotSeller)
	})

	t.Run("buyer_sees_own_offers", func(t *testing.T) {
		offers, err := svc.OffersForBuyer(ctx, "buyer1")
		require.NoError(t, err)
		require.Len(t, offers, 1)
	})
}
