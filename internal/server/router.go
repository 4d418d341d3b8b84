package server

import (
	"net/http"

	handler "marketplace/services/market/handler"

	"github.com/gin-gonic/gin"
)

// Services bundles the engine implementations the router exposes.
type Services struct {
	Bids    handler.BidServiceInterface
	Offers  handler.OfferServiceInterface
	Carts   handler.CartServiceInterface
	Orders  handler.OrderServiceInterface
	Sweeper handler.SweeperInterface
}

// SetupRouter configures all Gin routes for the application
func SetupRouter(svcs Services) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	bidHandler := handler.NewBidHandler(svcs.Bids)
	offerHandler := handler.NewOfferHandler(svcs.Offers)
	cartHandler := handler.NewCartHandler(svcs.Carts)
	orderHandler := handler.NewOrderHandler(svcs.Orders)
	adminHandler := handler.NewAdminHandler(svcs.Sweeper)

	listings := router.Group("/listings", IdentityMiddleware)
	{
		listings.POST("/:listing_id/bids", bidHandler.PlaceBidHandler)
		listings.GET("/:listing_id/bids", bidHandler.GetBidsHandler)
		listings.GET("/:listing_id/bids/minimum", bidHandler.GetMinimumBidHandler)
		listings.GET("/:listing_id/bids/winning", bidHandler.GetWinningBidHandler)
		listings.POST("/:listing_id/finalize", bidHandler.FinalizeAuctionHandler)
		listings.POST("/:listing_id/reauction", bidHandler.ReAuctionHandler)
		listings.POST("/:listing_id/offers", offerHandler.CreateOfferHandler)
		listings.GET("/:listing_id/offers", offerHandler.GetListingOffersHandler)
	}

	offers := router.Group("/offers", IdentityMiddleware)
	{
		offers.GET("", offerHandler.GetMyOffersHandler)
		offers.POST("/:offer_id/seller-response", offerHandler.SellerRespondHandler)
		offers.POST("/:offer_id/buyer-response", offerHandler.BuyerRespondHandler)
	}

	cart := router.Group("/cart", IdentityMiddleware)
	{
		cart.POST("/items", cartHandler.AddCartItemHandler)
		cart.GET("/items", cartHandler.GetCartItemsHandler)
		cart.DELETE("/items/:cart_item_id", cartHandler.ReleaseCartItemHandler)
	}

	orders := router.Group("/orders", IdentityMiddleware)
	{
		orders.POST("", orderHandler.CreateOrderHandler)
		orders.GET("", orderHandler.GetMyOrdersHandler)
		orders.PATCH("/:order_id/status", orderHandler.UpdateOrderStatusHandler)
	}

	admin := router.Group("/admin")
	{
		admin.POST("/reaper/sweep", adminHandler.SweepHandler)
	}

	return router
}
