package cart

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/clock"
	"marketplace/internal/markerrors"
	"marketplace/internal/models"
	"marketplace/internal/repository"

	"github.com/stretchr/testify/require"
)

func newFixture(t *testing.T) (*Service, *repository.MemoryStore, *clock.Fixed) {
	t.Helper()
	store := repository.NewMemoryStore()
	clk := &clock.Fixed{Instant: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	return NewService(store, clk), store, clk
}

func seedListing(t *testing.T, store *repository.MemoryStore, l models.Listing) {
	t.Helper()
	require.NoError(t, store.CreateListing(context.Background(), l))
}

func fixedListing(id, sellerID string, price float64) models.Listing {
	return models.Listing{
		ListingID: id,
		SellerID:  sellerID,
		Title:     "fixed listing",
		SaleType:  models.SaleTypeFixedPrice,
		Status:    models.ListingAvailable,
		Price:     price,
	}
}

func auctionListing(id, sellerID string) models.Listing {
	return models.Listing{
		ListingID:     id,
		SellerID:      sellerID,
		Title:         "auction listing",
		SaleType:      models.SaleTypeAuction,
		Status:        models.ListingAvailable,
		StartingPrice: 100,
		BidIncrement:  5,
		AuctionStatus: models.AuctionRunning,
	}
}

// Tests AddFixedPrice
func TestCartService_AddFixedPrice(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name          string
		listing       models.Listing
		listingID     string
		buyerID       string
		expectedError error
	}{
		{
			name:      "success",
			listing:   fixedListing("l1", "seller1", 250),
			listingID: "l1",
			buyerID:   "buyer1",
		},
		{
			name:          "empty_buyer",
			listing:       fixedListing("l1", "seller1", 250),
			listingID:     "l1",
			buyerID:       "",
			expectedError: markerrors.ErrInvalidInput,
		},
		{
			name:          "listing_not_found",
			listing:       fixedListing("l1", "seller1", 250),
			listingID:     "nope",
			buyerID:       "buyer1",
			expectedError: markerrors.ErrListingNotFound,
		},
		{
			name:          "auction_listing_rejected",
			listing:       auctionListing("l1", "seller1"),
			listingID:     "l1",
			buyerID:       "buyer1",
			expectedError: markerrors.ErrNotFixed,
		},
		{
			name:          "own_listing_rejected",
			listing:       fixedListing("l1", "seller1", 250),
			listingID:     "l1",
			buyerID:       "seller1",
			expectedError: markerrors.ErrOwnListing,
		},
		{
			name: "reserved_listing_rejected",
			listing: func() models.Listing {
				l := fixedListing("l1", "seller1", 250)
				l.Status = models.ListingReserved
				return l
			}(),
			listingID:     "l1",
			buyerID:       "buyer1",
			expectedError: markerrors.ErrListingUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, _ := newFixture(t)
			seedListing(t, store, tt.listing)

			item, err := svc.AddFixedPrice(ctx, tt.listingID, tt.buyerID)
			if tt.expectedError != nil {
				require.ErrorIs(t, err, tt.expectedError)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.listingID, item.ListingID)
			require.Equal(t, 250.0, item.AgreedPrice, "carted at the list price")
			require.Equal(t, 1, item.Quantity)

			// Plain carting never reserves.
			l, err := store.GetListing(ctx, tt.listingID)
			require.NoError(t, err)
			require.Equal(t, models.ListingAvailable, l.Status)
		})
	}
}

func TestCartService_AddFixedPrice_ReplacesExistingLine(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newFixture(t)
	seedListing(t, store, fixedListing("l1", "seller1", 250))

	first, err := svc.AddFixedPrice(ctx, "l1", "buyer1")
	require.NoError(t, err)
	second, err := svc.AddFixedPrice(ctx, "l1", "buyer1")
	require.NoError(t, err)
	require.NotEqual(t, first.CartItemID, second.CartItemID)

	items, err := svc.Items(ctx, "buyer1")
	require.NoError(t, err)
	require.Len(t, items, 1, "one line per listing per buyer")
}

// Tests Reserve
func TestCartService_Reserve(t *testing.T) {
	ctx := context.Background()

	t.Run("reserves_available_listing", func(t *testing.T) {
		svc, store, clk := newFixture(t)
		seedListing(t, store, auctionListing("l1", "seller1"))

		item, err := svc.Reserve(ctx, "l1", "buyer1", 130)
		require.NoError(t, err)
		require.Equal(t, 130.0, item.AgreedPrice)

		l, err := store.GetListing(ctx, "l1")
		require.NoError(t, err)
		require.Equal(t, models.ListingReserved, l.Status)
		require.NotNil(t, l.ReservedAt)
		require.Equal(t, clk.Now(), *l.ReservedAt)
	})

	t.Run("sold_listing_rejected", func(t *testing.T) {
		svc, store, _ := newFixture(t)
		l := auctionListing("l1", "seller1")
		l.Status = models.ListingSold
		seedListing(t, store, l)

		_, err := svc.Reserve(ctx, "l1", "buyer1", 130)
		require.ErrorIs(t, err, markerrors.ErrListingUnavailable)
	})

	t.Run("non_positive_price_rejected", func(t *testing.T) {
		svc, store, _ := newFixture(t)
		seedListing(t, store, auctionListing("l1", "seller1"))

		_, err := svc.Reserve(ctx, "l1", "buyer1", 0)
		require.ErrorIs(t, err, markerrors.ErrInvalidInput)
	})

	t.Run("re_reserving_keeps_reserved_status", func(t *testing.T) {
		svc, store, _ := newFixture(t)
		seedListing(t, store, auctionListing("l1", "seller1"))

		_, err := svc.Reserve(ctx, "l1", "buyer1", 130)
		require.NoError(t, err)
		_, err = svc.Reserve(ctx, "l1", "buyer1", 140)
		require.NoError(t, err)

		items, err := svc.Items(ctx, "buyer1")
		require.NoError(t, err)
		require.Len(t, items, 1)
		require.Equal(t, 140.0, items[0].AgreedPrice, "latest agreed price wins")
	})
}

// Tests Release
func TestCartService_Release(t *testing.T) {
	ctx := context.Background()

	t.Run("owner_check", func(t *testing.T) {
		svc, store, _ := newFixture(t)
		seedListing(t, store, fixedListing("l1", "seller1", 250))
		item, err := svc.AddFixedPrice(ctx, "l1", "buyer1")
		require.NoError(t, err)

		err = svc.Release(ctx, item.CartItemID, "intruder")
		require.ErrorIs(t, err, markerrors.ErrNotBuyer)
	})

	t.Run("missing_item", func(t *testing.T) {
		svc, _, _ := newFixture(t)
		err := svc.Release(ctx, "missing", "buyer1")
		require.ErrorIs(t, err, markerrors.ErrCartItemNotFound)
	})

	t.Run("unreserved_line_just_deletes", func(t *testing.T) {
		svc, store, _ := newFixture(t)
		seedListing(t, store, fixedListing("l1", "seller1", 250))
		item, err := svc.AddFixedPrice(ctx, "l1", "buyer1")
		require.NoError(t, err)

		require.NoError(t, svc.Release(ctx, item.CartItemID, "buyer1"))

		items, err := svc.Items(ctx, "buyer1")
		require.NoError(t, err)
		require.Empty(t, items)

		l, err := store.GetListing(ctx, "l1")
		require.NoError(t, err)
		require.Equal(t, models.ListingAvailable, l.Status)
	})

	t.Run("reserved_auction_reverts_to_cancelled_by_buyer", func(t *testing.T) {
		svc, store, _ := newFixture(t)
		seedListing(t, store, auctionListing("l1", "seller1"))
		item, err := svc.Reserve(ctx, "l1", "buyer1", 130)
		require.NoError(t, err)

		require.NoError(t, svc.Release(ctx, item.CartItemID, "buyer1"))

		l, err := store.GetListing(ctx, "l1")
		require.NoError(t, err)
		require.Equal(t, models.ListingCancelledByBuyer, l.Status)
		require.Equal(t, models.AuctionEnded, l.AuctionStatus)

		items, err := svc.Items(ctx, "buyer1")
		require.NoError(t, err)
		require.Empty(t, items)
	})

	t.Run("reserved_fixed_price_reverts_to_available_and_drops_offer", func(t *testing.T) {
		svc, store, _ := newFixture(t)
		seedListing(t, store, fixedListing("l1", "seller1", 250))

		now := time.Now().UTC()
		require.NoError(t, store.CreateOffer(ctx, models.Offer{
			OfferID: "o1", ListingID: "l1", BuyerID: "buyer1",
			OfferPrice: 200, Status: models.OfferAccepted, CreatedAt: now, UpdatedAt: now,
		}))
		item, err := svc.Reserve(ctx, "l1", "buyer1", 200)
		require.NoError(t, err)

		require.NoError(t, svc.Release(ctx, item.CartItemID, "buyer1"))

		l, err := store.GetListing(ctx, "l1")
		require.NoError(t, err)
		require.Equal(t, models.ListingAvailable, l.Status)
		require.Empty(t, l.WinnerID)
		require.Nil(t, l.ReservedAt)

		_, err = store.GetOffer(ctx, "o1")
		require.ErrorIs(t, err, markerrors.ErrOfferNotFound, "accepted offer is deleted with the release")
	})
}
