package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"marketplace/internal/bidding"
	"marketplace/internal/cart"
	"marketplace/internal/clock"
	"marketplace/internal/config"
	model "marketplace/internal/models"
	"marketplace/internal/notify"
	"marketplace/internal/offers"
	"marketplace/internal/orders"
	"marketplace/internal/reaper"
	"marketplace/internal/repository"
	"marketplace/internal/server"
	"marketplace/utils"
)

func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	var store repository.MarketStore
	if cfg.MySQL.DSN != "" {
		gormStore, err := repository.OpenMySQL(cfg.MySQL.DSN)
		if err != nil {
			utils.Fatal("failed to connect to mysql", map[string]any{"error": err.Error()})
		}
		store = gormStore
	} else {
		memStore := repository.NewMemoryStore()
		prepopulateListings(memStore)
		store = memStore
		utils.Warn("MYSQL_DSN not set, running on the in-memory store", nil)
	}

	var sink notify.Sink = notify.NewLogSink()
	if cfg.Kafka.Broker != "" {
		kafkaSink := notify.NewKafkaSink(cfg.Kafka.Broker, cfg.Kafka.Topic)
		defer kafkaSink.Close()
		sink = kafkaSink
	}

	clk := clock.System()
	cartSvc := cart.NewService(store, clk)
	bidSvc := bidding.NewService(store, cartSvc, clk, sink)
	offerSvc := offers.NewService(store, cartSvc, clk, sink)
	orderSvc := orders.NewService(store, clk, sink)
	sweeper := reaper.New(store, clk, sink, time.Duration(cfg.Reaper.GraceMinutes)*time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sweeper.Run(ctx, time.Duration(cfg.Reaper.SweepInterval)*time.Minute)

	router := server.SetupRouter(server.Services{
		Bids:    bidSvc,
		Offers:  offerSvc,
		Carts:   cartSvc,
		Orders:  orderSvc,
		Sweeper: sweeper,
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	fmt.Printf("Starting marketplace server on %s...\n", addr)
	if err := router.Run(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}
}

// prepopulateListings adds sample listings to the in-memory store
func prepopulateListings(store *repository.MemoryStore) {
	now := time.Now().UTC()
	end := now.Add(48 * time.Hour)
	listings := []model.Listing{
		{
			ListingID: "listing1", SellerID: "seller1", Title: "Road bike",
			SaleType: model.SaleTypeFixedPrice, Status: model.ListingAvailable,
			Price: 250, CreatedAt: now,
		},
		{
			ListingID: "listing2", SellerID: "seller1", Title: "Film camera",
			SaleType: model.SaleTypeAuction, Status: model.ListingAvailable,
			StartingPrice: 100, BidIncrement: 5, AuctionEndTime: &end,
			AuctionStatus: model.AuctionRunning, CreatedAt: now,
		},
		{
			ListingID: "listing3", SellerID: "seller2", Title: "Turntable",
			SaleType: model.SaleTypeFixedPrice, Status: model.ListingAvailable,
			Price: 180, CreatedAt: now,
		},
	}

	for _, l := range listings {
		if err := store.CreateListing(context.Background(), l); err != nil {
			utils.Warn("failed to seed listing", map[string]any{"listing_id": l.ListingID, "error": err.Error()})
		}
	}
}
