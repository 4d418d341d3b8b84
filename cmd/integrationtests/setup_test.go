package integrationtests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"marketplace/internal/bidding"
	"marketplace/internal/cart"
	"marketplace/internal/clock"
	model "marketplace/internal/models"
	"marketplace/internal/notify"
	"marketplace/internal/offers"
	"marketplace/internal/orders"
	"marketplace/internal/reaper"
	"marketplace/internal/repository"
	"marketplace/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// TestEnv bundles everything an API test needs: the router, the store for
// seeding, and the fixed clock for time travel.
type TestEnv struct {
	Router *gin.Engine
	Store  *repository.MemoryStore
	Clock  *clock.Fixed
}

// SetupTestEnv wires the full service stack onto an in-memory store with a
// fixed clock, mirroring main() without the network or broker.
func SetupTestEnv() TestEnv {
	gin.SetMode(gin.TestMode)

	store := repository.NewMemoryStore()
	clk := &clock.Fixed{Instant: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	sink := notify.NewLogSink()

	cartSvc := cart.NewService(store, clk)
	bidSvc := bidding.NewService(store, cartSvc, clk, sink)
	offerSvc := offers.NewService(store, cartSvc, clk, sink)
	orderSvc := orders.NewService(store, clk, sink)
	sweeper := reaper.New(store, clk, sink, 720*time.Minute)

	router := server.SetupRouter(server.Services{
		Bids:    bidSvc,
		Offers:  offerSvc,
		Carts:   cartSvc,
		Orders:  orderSvc,
		Sweeper: sweeper,
	})
	return TestEnv{Router: router, Store: store, Clock: clk}
}

// SetupTestEnvWithListings seeds the given listings into a fresh environment.
func SetupTestEnvWithListings(t *testing.T, listings ...model.Listing) TestEnv {
	t.Helper()
	env := SetupTestEnv()
	for _, l := range listings {
		require.NoError(t, env.Store.CreateListing(context.Background(), l))
	}
	return env
}

// ExecuteRequest executes an HTTP request as the given user and returns the
// response recorder.
func ExecuteRequest(t *testing.T, router *gin.Engine, method, url, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reqBody []byte
	switch v := body.(type) {
	case nil:
	case string:
		reqBody = []byte(v)
	default:
		var err error
		reqBody, err = json.Marshal(v)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// ExecuteRequestAndParse executes a request and parses the data field of the
// JSON envelope into a generic map.
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, method, url, userID string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()
	w := ExecuteRequest(t, router, method, url, userID, body)

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))

	data, _ := envelope["data"].(map[string]any)
	return data, w
}

// ExecuteRequestAndParseList is ExecuteRequestAndParse for list responses.
func ExecuteRequestAndParseList(t *testing.T, router *gin.Engine, method, url, userID string, body any) ([]any, *httptest.ResponseRecorder) {
	t.Helper()
	w := ExecuteRequest(t, router, method, url, userID, body)

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))

	data, _ := envelope["data"].([]any)
	return data, w
}

func fixedListing(id, sellerID string, price float64) model.Listing {
	return model.Listing{
		ListingID: id,
		SellerID:  sellerID,
		Title:     "fixed listing " + id,
		SaleType:  model.SaleTypeFixedPrice,
		Status:    model.ListingAvailable,
		Price:     price,
	}
}

func auctionListing(id, sellerID string, startingPrice, increment float64, end time.Time) model.Listing {
	return model.Listing{
		ListingID:      id,
		SellerID:       sellerID,
		Title:          "auction listing " + id,
		SaleType:       model.SaleTypeAuction,
		Status:         model.ListingAvailable,
		StartingPrice:  startingPrice,
		BidIncrement:   increment,
		AuctionEndTime: &end,
		AuctionStatus:  model.AuctionRunning,
	}
}
