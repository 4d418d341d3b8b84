package helpers

// Request/Response DTOs
type PlaceBidRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

type BidResponse struct {
	BidID     string  `json:"bid_id"`
	ListingID string  `json:"listing_id"`
	BidderID  string  `json:"bidder_id"`
	Amount    float64 `json:"amount"`
	CreatedAt string  `json:"created_at"`
}

type MinimumBidResponse struct {
	ListingID  string  `json:"listing_id"`
	MinimumBid float64 `json:"minimum_bid"`
}

type ReAuctionRequest struct {
	StartingPrice   float64 `json:"starting_price" binding:"required,gt=0"`
	BidIncrement    float64 `json:"bid_increment" binding:"required,gt=0"`
	DurationMinutes int     `json:"duration_minutes" binding:"required,gt=0"`
}

type CreateOfferRequest struct {
	OfferPrice float64 `json:"offer_price" binding:"required,gt=0"`
}

type SellerRespondRequest struct {
	Action       string  `json:"action" binding:"required,oneof=accept decline counter"`
	CounterPrice float64 `json:"counter_price"`
}

type BuyerRespondRequest struct {
	Action string `json:"action" binding:"required,oneof=accept decline"`
}

type OfferResponse struct {
	OfferID    string  `json:"offer_id"`
	ListingID  string  `json:"listing_id"`
	BuyerID    string  `json:"buyer_id"`
	OfferPrice float64 `json:"offer_price"`
	Status     string  `json:"status"`
	UpdatedAt  string  `json:"updated_at"`
}

type AddCartItemRequest struct {
	ListingID string `json:"listing_id" binding:"required"`
}

type CartItemResponse struct {
	CartItemID  string  `json:"cart_item_id"`
	ListingID   string  `json:"listing_id"`
	AgreedPrice float64 `json:"agreed_price"`
	Quantity    int     `json:"quantity"`
	CreatedAt   string  `json:"created_at"`
}

type CreateOrderRequest struct {
	CartItemIDs    []string `json:"cart_item_ids" binding:"required,min=1"`
	PaymentMethod  string   `json:"payment_method" binding:"required"`
	ShippingMethod string   `json:"shipping_method" binding:"required"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type OrderResponse struct {
	OrderID        string  `json:"order_id"`
	BuyerID        string  `json:"buyer_id"`
	Status         string  `json:"status"`
	FinalAmount    float64 `json:"final_amount"`
	PaymentMethod  string  `json:"payment_method"`
	ShippingMethod string  `json:"shipping_method"`
	CreatedAt      string  `json:"created_at"`
}

type SweepRequest struct {
	GraceMinutes int `json:"grace_minutes"`
}
