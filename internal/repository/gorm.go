package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"marketplace/internal/markerrors"
	"marketplace/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// GormStore is the MySQL implementation of MarketStore. Conditional updates
// are expressed as guarded UPDATE statements whose affected-row count is the
// compare-and-swap check; multi-step operations run inside db.Transaction.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps an existing gorm handle.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// OpenMySQL connects to MySQL and migrates the marketplace tables.
func OpenMySQL(dsn string) (*GormStore, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	if err := db.AutoMigrate(
		&models.Listing{}, &models.Bid{}, &models.Offer{},
		&models.Cart{}, &models.CartItem{},
		&models.Order{}, &models.OrderItem{},
	); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return NewGormStore(db), nil
}

func (s *GormStore) InTx(ctx context.Context, fn func(tx MarketStore) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

// ---- Listings ----

func (s *GormStore) CreateListing(ctx context.Context, l models.Listing) error {
	if err := s.db.WithContext(ctx).Create(&l).Error; err != nil {
		return fmt.Errorf("create listing %s: %w", l.ListingID, err)
	}
	return nil
}

func (s *GormStore) GetListing(ctx context.Context, listingID string) (models.Listing, error) {
	var l models.Listing
	err := s.db.WithContext(ctx).Where("listing_id = ?", listingID).First(&l).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Listing{}, fmt.Errorf("get listing %s: %w", listingID, markerrors.ErrListingNotFound)
		}
		return models.Listing{}, fmt.Errorf("get listing %s: %w", listingID, err)
	}
	return l, nil
}

func (s *GormStore) GetListingForUpdate(ctx context.Context, listingID string) (models.Listing, error) {
	var l models.Listing
	err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("listing_id = ?", listingID).First(&l).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Listing{}, fmt.Errorf("lock listing %s: %w", listingID, markerrors.ErrListingNotFound)
		}
		return models.Listing{}, fmt.Errorf("lock listing %s: %w", listingID, err)
	}
	return l, nil
}

func (s *GormStore) UpdateListing(ctx context.Context, listingID string, expect []models.ListingStatus, patch ListingPatch) error {
	updates := map[string]interface{}{}
	if patch.Status != nil {
		updates["status"] = *patch.Status
	}
	if patch.AuctionStatus != nil {
		updates["auction_status"] = *patch.AuctionStatus
	}
	if patch.WinnerID != nil {
		updates["winner_id"] = *patch.WinnerID
	}
	if patch.ReservedAt != nil {
		updates["reserved_at"] = *patch.ReservedAt
	}
	if patch.StartingPrice != nil {
		updates["starting_price"] = *patch.StartingPrice
	}
	if patch.BidIncrement != nil {
		updates["bid_increment"] = *patch.BidIncrement
	}
	if patch.AuctionEndTime != nil {
		updates["auction_end_time"] = *patch.AuctionEndTime
	}
	if patch.ClearReservation {
		updates["winner_id"] = ""
		updates["reserved_at"] = nil
	}
	if len(updates) == 0 {
		return nil
	}

	q := s.db.WithContext(ctx).Model(&models.Listing{}).Where("listing_id = ?", listingID)
	if len(expect) > 0 {
		q = q.Where("status IN ?", expect)
	}
	res := q.Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("update listing %s: %w", listingID, res.Error)
	}
	if res.RowsAffected == 0 {
		// MySQL also reports zero rows when the values were already in
		// place, so re-read before declaring a conflict.
		l, err := s.GetListing(ctx, listingID)
		if err != nil {
			return err
		}
		if len(expect) > 0 && !statusIn(l.Status, expect) {
			return fmt.Errorf("update listing %s: status is %s: %w", listingID, l.Status, markerrors.ErrListingUnavailable)
		}
	}
	return nil
}

// ---- Bids ----

func (s *GormStore) CreateBid(ctx context.Context, b models.Bid) error {
	if err := s.db.WithContext(ctx).Create(&b).Error; err != nil {
		return fmt.Errorf("create bid for listing %s: %w", b.ListingID, err)
	}
	return nil
}

func (s *GormStore) BidsByListing(ctx context.Context, listingID string) ([]models.Bid, error) {
	var bids []models.Bid
	err := s.db.WithContext(ctx).
		Where("listing_id = ?", listingID).
		Order("amount DESC, created_at ASC").
		Find(&bids).Error
	if err != nil {
		return nil, fmt.Errorf("bids for listing %s: %w", listingID, err)
	}
	return bids, nil
}

func (s *GormStore) HighestBid(ctx context.Context, listingID string) (models.Bid, error) {
	var b models.Bid
	err := s.db.WithContext(ctx).
		Where("listing_id = ?", listingID).
		Order("amount DESC, created_at ASC").
		First(&b).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Bid{}, fmt.Errorf("highest bid for listing %s: %w", listingID, markerrors.ErrNoBids)
		}
		return models.Bid{}, fmt.Errorf("highest bid for listing %s: %w", listingID, err)
	}
	return b, nil
}

func (s *GormStore) DeleteBidsByListing(ctx context.Context, listingID string) error {
	err := s.db.WithContext(ctx).Where("listing_id = ?", listingID).Delete(&models.Bid{}).Error
	if err != nil {
		return fmt.Errorf("delete bids for listing %s: %w", listingID, err)
	}
	return nil
}

// ---- Offers ----

func (s *GormStore) CreateOffer(ctx context.Context, o models.Offer) error {
	if err := s.db.WithContext(ctx).Create(&o).Error; err != nil {
		return fmt.Errorf("create offer for listing %s: %w", o.ListingID, err)
	}
	return nil
}

func (s *GormStore) GetOffer(ctx context.Context, offerID string) (models.Offer, error) {
	var o models.Offer
	err := s.db.WithContext(ctx).Where("offer_id = ?", offerID).First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Offer{}, fmt.Errorf("get offer %s: %w", offerID, markerrors.ErrOfferNotFound)
		}
		return models.Offer{}, fmt.Errorf("get offer %s: %w", offerID, err)
	}
	return o, nil
}

func (s *GormStore) ActiveOffer(ctx context.Context, listingID, buyerID string) (models.Offer, error) {
	var o models.Offer
	err := s.db.WithContext(ctx).
		Where("listing_id = ? AND buyer_id = ? AND status IN ?",
			listingID, buyerID, []models.OfferStatus{models.OfferPending, models.OfferCountered}).
		First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Offer{}, fmt.Errorf("active offer for listing %s by buyer %s: %w", listingID, buyerID, markerrors.ErrOfferNotFound)
		}
		return models.Offer{}, fmt.Errorf("active offer for listing %s: %w", listingID, err)
	}
	return o, nil
}

func (s *GormStore) AcceptedOffer(ctx context.Context, listingID string) (models.Offer, error) {
	var o models.Offer
	err := s.db.WithContext(ctx).
		Where("listing_id = ? AND status = ?", listingID, models.OfferAccepted).
		First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Offer{}, fmt.Errorf("accepted offer for listing %s: %w", listingID, markerrors.ErrOfferNotFound)
		}
		return models.Offer{}, fmt.Errorf("accepted offer for listing %s: %w", listingID, err)
	}
	return o, nil
}

func (s *GormStore) OffersByListing(ctx context.Context, listingID string) ([]models.Offer, error) {
	var offers []models.Offer
	err := s.db.WithContext(ctx).Where("listing_id = ?", listingID).Order("created_at ASC").Find(&offers).Error
	if err != nil {
		return nil, fmt.Errorf("offers for listing %s: %w", listingID, err)
	}
	return offers, nil
}

func (s *GormStore) OffersByBuyer(ctx context.Context, buyerID string) ([]models.Offer, error) {
	var offers []models.Offer
	err := s.db.WithContext(ctx).Where("buyer_id = ?", buyerID).Order("created_at ASC").Find(&offers).Error
	if err != nil {
		return nil, fmt.Errorf("offers for buyer %s: %w", buyerID, err)
	}
	return offers, nil
}

func (s *GormStore) UpdateOffer(ctx context.Context, offerID string, expect []models.OfferStatus, patch OfferPatch) error {
	updates := map[string]interface{}{}
	if patch.Status != nil {
		updates["status"] = *patch.Status
	}
	if patch.OfferPrice != nil {
		updates["offer_price"] = *patch.OfferPrice
	}
	if !patch.UpdatedAt.IsZero() {
		updates["updated_at"] = patch.UpdatedAt
	}
	if len(updates) == 0 {
		return nil
	}

	q := s.db.WithContext(ctx).Model(&models.Offer{}).Where("offer_id = ?", offerID)
	if len(expect) > 0 {
		q = q.Where("status IN ?", expect)
	}
	res := q.Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("update offer %s: %w", offerID, res.Error)
	}
	if res.RowsAffected == 0 {
		o, err := s.GetOffer(ctx, offerID)
		if err != nil {
			return err
		}
		if len(expect) > 0 && !offerStatusIn(o.Status, expect) {
			return fmt.Errorf("update offer %s: status is %s: %w", offerID, o.Status, markerrors.ErrOfferNotActionable)
		}
	}
	return nil
}

func (s *GormStore) DeclineOffersByListing(ctx context.Context, listingID, exceptBuyerID string) (int, error) {
	res := s.db.WithContext(ctx).Model(&models.Offer{}).
		Where("listing_id = ? AND buyer_id <> ? AND status IN ?",
			listingID, exceptBuyerID,
			[]models.OfferStatus{models.OfferPending, models.OfferCountered, models.OfferAccepted}).
		Updates(map[string]interface{}{"status": models.OfferDeclined})
	if res.Error != nil {
		return 0, fmt.Errorf("decline offers for listing %s: %w", listingID, res.Error)
	}
	return int(res.RowsAffected), nil
}

func (s *GormStore) DeleteAcceptedOffer(ctx context.Context, listingID, buyerID string) error {
	err := s.db.WithContext(ctx).
		Where("listing_id = ? AND buyer_id = ? AND status = ?", listingID, buyerID, models.OfferAccepted).
		Delete(&models.Offer{}).Error
	if err != nil {
		return fmt.Errorf("delete accepted offer for listing %s: %w", listingID, err)
	}
	return nil
}

// ---- Carts ----

func (s *GormStore) GetOrCreateCart(ctx context.Context, buyerID string) (models.Cart, error) {
	var c models.Cart
	err := s.db.WithContext(ctx).Where("buyer_id = ?", buyerID).First(&c).Error
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Cart{}, fmt.Errorf("get cart for buyer %s: %w", buyerID, err)
	}
	c = models.Cart{
		CartID:    newID(),
		BuyerID:   buyerID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&c).Error; err != nil {
		return models.Cart{}, fmt.Errorf("create cart for buyer %s: %w", buyerID, err)
	}
	return c, nil
}

func (s *GormStore) GetCartItem(ctx context.Context, cartItemID string) (models.CartItem, error) {
	var item models.CartItem
	err := s.db.WithContext(ctx).Where("cart_item_id = ?", cartItemID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.CartItem{}, fmt.Errorf("get cart item %s: %w", cartItemID, markerrors.ErrCartItemNotFound)
		}
		return models.CartItem{}, fmt.Errorf("get cart item %s: %w", cartItemID, err)
	}
	return item, nil
}

func (s *GormStore) CartItemsByBuyer(ctx context.Context, buyerID string) ([]models.CartItem, error) {
	var items []models.CartItem
	err := s.db.WithContext(ctx).Where("buyer_id = ?", buyerID).Order("created_at ASC").Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("cart items for buyer %s: %w", buyerID, err)
	}
	return items, nil
}

func (s *GormStore) CartItemsByIDs(ctx context.Context, buyerID string, cartItemIDs []string) ([]models.CartItem, error) {
	if len(cartItemIDs) == 0 {
		return nil, nil
	}
	var items []models.CartItem
	err := s.db.WithContext(ctx).
		Where("buyer_id = ? AND cart_item_id IN ?", buyerID, cartItemIDs).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("cart items by ids for buyer %s: %w", buyerID, err)
	}
	return items, nil
}

func (s *GormStore) ReplaceCartItem(ctx context.Context, item models.CartItem) error {
	err := s.db.WithContext(ctx).
		Where("cart_id = ? AND listing_id = ?", item.CartID, item.ListingID).
		Delete(&models.CartItem{}).Error
	if err != nil {
		return fmt.Errorf("replace cart item for listing %s: %w", item.ListingID, err)
	}
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return fmt.Errorf("replace cart item for listing %s: %w", item.ListingID, err)
	}
	return nil
}

func (s *GormStore) DeleteCartItem(ctx context.Context, cartItemID string) error {
	err := s.db.WithContext(ctx).Where("cart_item_id = ?", cartItemID).Delete(&models.CartItem{}).Error
	if err != nil {
		return fmt.Errorf("delete cart item %s: %w", cartItemID, err)
	}
	return nil
}

func (s *GormStore) DeleteCartItemByListing(ctx context.Context, buyerID, listingID string) error {
	err := s.db.WithContext(ctx).
		Where("buyer_id = ? AND listing_id = ?", buyerID, listingID).
		Delete(&models.CartItem{}).Error
	if err != nil {
		return fmt.Errorf("delete cart item for listing %s: %w", listingID, err)
	}
	return nil
}

// ---- Orders ----

func (s *GormStore) CreateOrder(ctx context.Context, o models.Order, items []models.OrderItem) error {
	if err := s.db.WithContext(ctx).Create(&o).Error; err != nil {
		return fmt.Errorf("create order %s: %w", o.OrderID, err)
	}
	if len(items) > 0 {
		if err := s.db.WithContext(ctx).Create(&items).Error; err != nil {
			return fmt.Errorf("create order items for order %s: %w", o.OrderID, err)
		}
	}
	return nil
}

func (s *GormStore) GetOrder(ctx context.Context, orderID string) (models.Order, error) {
	var o models.Order
	err := s.db.WithContext(ctx).Where("order_id = ?", orderID).First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, fmt.Errorf("get order %s: %w", orderID, markerrors.ErrOrderNotFound)
		}
		return models.Order{}, fmt.Errorf("get order %s: %w", orderID, err)
	}
	return o, nil
}

func (s *GormStore) OrderItemsByOrder(ctx context.Context, orderID string) ([]models.OrderItem, error) {
	var items []models.OrderItem
	err := s.db.WithContext(ctx).Where("order_id = ?", orderID).Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("order items for order %s: %w", orderID, err)
	}
	return items, nil
}

func (s *GormStore) OrdersByBuyer(ctx context.Context, buyerID string) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).Where("buyer_id = ?", buyerID).Order("created_at ASC").Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("orders for buyer %s: %w", buyerID, err)
	}
	return orders, nil
}

func (s *GormStore) UpdateOrderStatus(ctx context.Context, orderID string, expect []models.OrderStatus, status models.OrderStatus, updatedAt time.Time) error {
	q := s.db.WithContext(ctx).Model(&models.Order{}).Where("order_id = ?", orderID)
	if len(expect) > 0 {
		q = q.Where("status IN ?", expect)
	}
	res := q.Updates(map[string]interface{}{"status": status, "updated_at": updatedAt})
	if res.Error != nil {
		return fmt.Errorf("update order %s: %w", orderID, res.Error)
	}
	if res.RowsAffected == 0 {
		o, err := s.GetOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if o.Status != status {
			return fmt.Errorf("update order %s: status is %s: %w", orderID, o.Status, markerrors.ErrOrderTransition)
		}
	}
	return nil
}

// ---- Reaper ----

func (s *GormStore) ExpiredAuctionReservations(ctx context.Context, cutoff time.Time) ([]models.Listing, error) {
	var listings []models.Listing
	err := s.db.WithContext(ctx).
		Where("sale_type = ? AND status = ? AND reserved_at IS NOT NULL AND reserved_at < ?",
			models.SaleTypeAuction, models.ListingReserved, cutoff).
		Order("listing_id ASC").
		Find(&listings).Error
	if err != nil {
		return nil, fmt.Errorf("expired auction reservations: %w", err)
	}
	return listings, nil
}
