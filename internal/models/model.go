package models

import "time"

// SaleType distinguishes the two acquisition paths a listing supports.
type SaleType string

const (
	SaleTypeFixedPrice SaleType = "fixed_price"
	SaleTypeAuction    SaleType = "auction"
)

// ListingStatus is the lifecycle state of a listing. Stock is fixed at one,
// so at most one outstanding reservation or sale exists per listing.
type ListingStatus string

const (
	ListingAvailable        ListingStatus = "available"
	ListingReserved         ListingStatus = "reserved"
	ListingSold             ListingStatus = "sold"
	ListingCancelledByBuyer ListingStatus = "cancelled_by_buyer"
	ListingUnavailable      ListingStatus = "unavailable"
)

// AuctionStatus applies to auction listings only.
type AuctionStatus string

const (
	AuctionRunning AuctionStatus = "running"
	AuctionEnded   AuctionStatus = "ended"
)

// OfferStatus tracks the buyer/seller negotiation state machine.
type OfferStatus string

const (
	OfferPending   OfferStatus = "pending"
	OfferCountered OfferStatus = "countered"
	OfferAccepted  OfferStatus = "accepted"
	OfferDeclined  OfferStatus = "declined"
)

// OrderStatus moves forward only; completed and cancelled are terminal.
type OrderStatus string

const (
	OrderPaymentPending OrderStatus = "payment_pending"
	OrderPaid           OrderStatus = "paid"
	OrderShipped        OrderStatus = "shipped"
	OrderCompleted      OrderStatus = "completed"
	OrderCancelled      OrderStatus = "cancelled"
)

// Listing represents a single sellable unit of inventory.
type Listing struct {
	ListingID      string        `json:"listing_id" gorm:"column:listing_id;primaryKey"`
	SellerID       string        `json:"seller_id" gorm:"column:seller_id;index"`
	Title          string        `json:"title" gorm:"column:title"`
	SaleType       SaleType      `json:"sale_type" gorm:"column:sale_type"`
	Status         ListingStatus `json:"status" gorm:"column:status;index"`
	Price          float64       `json:"price" gorm:"column:price"`
	StartingPrice  float64       `json:"starting_price" gorm:"column:starting_price"`
	BidIncrement   float64       `json:"bid_increment" gorm:"column:bid_increment"`
	AuctionEndTime *time.Time    `json:"auction_end_time,omitempty" gorm:"column:auction_end_time"`
	AuctionStatus  AuctionStatus `json:"auction_status,omitempty" gorm:"column:auction_status"`
	WinnerID       string        `json:"winner_id,omitempty" gorm:"column:winner_id"`
	ReservedAt     *time.Time    `json:"reserved_at,omitempty" gorm:"column:reserved_at"`
	CreatedAt      time.Time     `json:"created_at" gorm:"column:created_at"`
}

func (Listing) TableName() string { return "listings" }

// Bid represents a user's bid on an auction listing. Bids are append-only;
// only a re-auction purges them.
type Bid struct {
	BidID     string    `json:"bid_id" gorm:"column:bid_id;primaryKey"`
	ListingID string    `json:"listing_id" gorm:"column:listing_id;index"`
	BidderID  string    `json:"bidder_id" gorm:"column:bidder_id"`
	Amount    float64   `json:"amount" gorm:"column:amount"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
}

func (Bid) TableName() string { return "bids" }

// Offer represents one buyer's price negotiation on a fixed-price listing.
// At most one offer per (listing, buyer) pair may be pending or countered.
type Offer struct {
	OfferID    string      `json:"offer_id" gorm:"column:offer_id;primaryKey"`
	ListingID  string      `json:"listing_id" gorm:"column:listing_id;index"`
	BuyerID    string      `json:"buyer_id" gorm:"column:buyer_id;index"`
	OfferPrice float64     `json:"offer_price" gorm:"column:offer_price"`
	Status     OfferStatus `json:"status" gorm:"column:status"`
	CreatedAt  time.Time   `json:"created_at" gorm:"column:created_at"`
	UpdatedAt  time.Time   `json:"updated_at" gorm:"column:updated_at"`
}

func (Offer) TableName() string { return "offers" }

// Cart is one buyer's cart; created lazily on first use.
type Cart struct {
	CartID    string    `json:"cart_id" gorm:"column:cart_id;primaryKey"`
	BuyerID   string    `json:"buyer_id" gorm:"column:buyer_id;uniqueIndex"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
}

func (Cart) TableName() string { return "carts" }

// CartItem binds a listing into a cart at an agreed price. The agreed price
// may differ from the list price when it came from a winning bid or an
// accepted offer. Quantity is always 1.
type CartItem struct {
	CartItemID  string    `json:"cart_item_id" gorm:"column:cart_item_id;primaryKey"`
	CartID      string    `json:"cart_id" gorm:"column:cart_id;index"`
	BuyerID     string    `json:"buyer_id" gorm:"column:buyer_id;index"`
	ListingID   string    `json:"listing_id" gorm:"column:listing_id;index"`
	AgreedPrice float64   `json:"agreed_price" gorm:"column:agreed_price"`
	Quantity    int       `json:"quantity" gorm:"column:quantity"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at"`
}

func (CartItem) TableName() string { return "cart_items" }

// Order is created atomically from a set of cart items at checkout.
type Order struct {
	OrderID        string      `json:"order_id" gorm:"column:order_id;primaryKey"`
	BuyerID        string      `json:"buyer_id" gorm:"column:buyer_id;index"`
	Status         OrderStatus `json:"status" gorm:"column:status"`
	FinalAmount    float64     `json:"final_amount" gorm:"column:final_amount"`
	PaymentMethod  string      `json:"payment_method" gorm:"column:payment_method"`
	ShippingMethod string      `json:"shipping_method" gorm:"column:shipping_method"`
	CreatedAt      time.Time   `json:"created_at" gorm:"column:created_at"`
	UpdatedAt      time.Time   `json:"updated_at" gorm:"column:updated_at"`
}

func (Order) TableName() string { return "orders" }

// OrderItem is one purchased listing within an order.
type OrderItem struct {
	OrderItemID string  `json:"order_item_id" gorm:"column:order_item_id;primaryKey"`
	OrderID     string  `json:"order_id" gorm:"column:order_id;index"`
	ListingID   string  `json:"listing_id" gorm:"column:listing_id"`
	SellerID    string  `json:"seller_id" gorm:"column:seller_id;index"`
	AgreedPrice float64 `json:"agreed_price" gorm:"column:agreed_price"`
	Quantity    int     `json:"quantity" gorm:"column:quantity"`
}

func (OrderItem) TableName() string { return "order_items" }
