package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"marketplace/internal/markerrors"
	"marketplace/internal/models"
)

// MemoryStore is a concurrency-safe in-memory implementation of MarketStore.
// A transaction takes the whole-store write lock and snapshots every table,
// restoring the snapshot if the transaction function fails, which gives the
// same all-or-nothing and serializable semantics the SQL store provides.
type MemoryStore struct {
	mu         sync.RWMutex
	listings   map[string]models.Listing
	bids       map[string][]models.Bid // key: listingID
	offers     map[string]models.Offer
	carts      map[string]models.Cart     // key: buyerID
	cartItems  map[string]models.CartItem // key: cartItemID
	orders     map[string]models.Order
	orderItems map[string][]models.OrderItem // key: orderID
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		listings:   make(map[string]models.Listing),
		bids:       make(map[string][]models.Bid),
		offers:     make(map[string]models.Offer),
		carts:      make(map[string]models.Cart),
		cartItems:  make(map[string]models.CartItem),
		orders:     make(map[string]models.Order),
		orderItems: make(map[string][]models.OrderItem),
	}
}

// memoryTx is the view of a MemoryStore inside InTx: the lock is already
// held, so it dispatches straight to the unlocked methods.
type memoryTx struct {
	s *MemoryStore
}

func (s *MemoryStore) InTx(ctx context.Context, fn func(tx MarketStore) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	if err := fn(memoryTx{s: s}); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// Already inside a transaction: reuse it.
func (t memoryTx) InTx(ctx context.Context, fn func(tx MarketStore) error) error {
	return fn(t)
}

type memorySnapshot struct {
	listings   map[string]models.Listing
	bids       map[string][]models.Bid
	offers     map[string]models.Offer
	carts      map[string]models.Cart
	cartItems  map[string]models.CartItem
	orders     map[string]models.Order
	orderItems map[string][]models.OrderItem
}

func (s *MemoryStore) snapshot() memorySnapshot {
	snap := memorySnapshot{
		listings:   make(map[string]models.Listing, len(s.listings)),
		bids:       make(map[string][]models.Bid, len(s.bids)),
		offers:     make(map[string]models.Offer, len(s.offers)),
		carts:      make(map[string]models.Cart, len(s.carts)),
		cartItems:  make(map[string]models.CartItem, len(s.cartItems)),
		orders:     make(map[string]models.Order, len(s.orders)),
		orderItems: make(map[string][]models.OrderItem, len(s.orderItems)),
	}
	for k, v := range s.listings {
		snap.listings[k] = v
	}
	for k, v := range s.bids {
		snap.bids[k] = append([]models.Bid(nil), v...)
	}
	for k, v := range s.offers {
		snap.offers[k] = v
	}
	for k, v := range s.carts {
		snap.carts[k] = v
	}
	for k, v := range s.cartItems {
		snap.cartItems[k] = v
	}
	for k, v := range s.orders {
		snap.orders[k] = v
	}
	for k, v := range s.orderItems {
		snap.orderItems[k] = append([]models.OrderItem(nil), v...)
	}
	return snap
}

func (s *MemoryStore) restore(snap memorySnapshot) {
	s.listings = snap.listings
	s.bids = snap.bids
	s.offers = snap.offers
	s.carts = snap.carts
	s.cartItems = snap.cartItems
	s.orders = snap.orders
	s.orderItems = snap.orderItems
}

// ---- Listings ----

func (s *MemoryStore) CreateListing(ctx context.Context, l models.Listing) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createListing(l)
}
func (t memoryTx) CreateListing(ctx context.Context, l models.Listing) error {
	return t.s.createListing(l)
}

func (s *MemoryStore) createListing(l models.Listing) error {
	if _, ok := s.listings[l.ListingID]; ok {
		return fmt.Errorf("create listing %s: %w", l.ListingID, markerrors.ErrConflict)
	}
	s.listings[l.ListingID] = l
	return nil
}

func (s *MemoryStore) GetListing(ctx context.Context, listingID string) (models.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getListing(listingID)
}
func (t memoryTx) GetListing(ctx context.Context, listingID string) (models.Listing, error) {
	return t.s.getListing(listingID)
}

func (s *MemoryStore) GetListingForUpdate(ctx context.Context, listingID string) (models.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getListing(listingID)
}
func (t memoryTx) GetListingForUpdate(ctx context.Context, listingID string) (models.Listing, error) {
	// The whole-store lock already serializes the transaction.
	return t.s.getListing(listingID)
}

func (s *MemoryStore) getListing(listingID string) (models.Listing, error) {
	l, ok := s.listings[listingID]
	if !ok {
		return models.Listing{}, fmt.Errorf("get listing %s: %w", listingID, markerrors.ErrListingNotFound)
	}
	return l, nil
}

func (s *MemoryStore) UpdateListing(ctx context.Context, listingID string, expect []models.ListingStatus, patch ListingPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateListing(listingID, expect, patch)
}
func (t memoryTx) UpdateListing(ctx context.Context, listingID string, expect []models.ListingStatus, patch ListingPatch) error {
	return t.s.updateListing(listingID, expect, patch)
}

func (s *MemoryStore) updateListing(listingID string, expect []models.ListingStatus, patch ListingPatch) error {
	l, ok := s.listings[listingID]
	if !ok {
		return fmt.Errorf("update listing %s: %w", listingID, markerrors.ErrListingNotFound)
	}
	if len(expect) > 0 && !statusIn(l.Status, expect) {
		return fmt.Errorf("update listing %s: status is %s: %w", listingID, l.Status, markerrors.ErrListingUnavailable)
	}
	if patch.Status != nil {
		l.Status = *patch.Status
	}
	if patch.AuctionStatus != nil {
		l.AuctionStatus = *patch.AuctionStatus
	}
	if patch.WinnerID != nil {
		l.WinnerID = *patch.WinnerID
	}
	if patch.ReservedAt != nil {
		at := *patch.ReservedAt
		l.ReservedAt = &at
	}
	if patch.StartingPrice != nil {
		l.StartingPrice = *patch.StartingPrice
	}
	if patch.BidIncrement != nil {
		l.BidIncrement = *patch.BidIncrement
	}
	if patch.AuctionEndTime != nil {
		end := *patch.AuctionEndTime
		l.AuctionEndTime = &end
	}
	if patch.ClearReservation {
		l.WinnerID = ""
		l.ReservedAt = nil
	}
	s.listings[listingID] = l
	return nil
}

func statusIn(status models.ListingStatus, set []models.ListingStatus) bool {
	for _, s := range set {
		if s == status {
			return true
		}
	}
	return false
}

// ---- Bids ----

func (s *MemoryStore) CreateBid(ctx context.Context, b models.Bid) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createBid(b)
}
func (t memoryTx) CreateBid(ctx context.Context, b models.Bid) error {
	return t.s.createBid(b)
}

func (s *MemoryStore) createBid(b models.Bid) error {
	if _, ok := s.listings[b.ListingID]; !ok {
		return fmt.Errorf("create bid for listing %s: %w", b.ListingID, markerrors.ErrListingNotFound)
	}
	s.bids[b.ListingID] = append(s.bids[b.ListingID], b)
	return nil
}

func (s *MemoryStore) BidsByListing(ctx context.Context, listingID string) ([]models.Bid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bidsByListing(listingID)
}
func (t memoryTx) BidsByListing(ctx context.Context, listingID string) ([]models.Bid, error) {
	return t.s.bidsByListing(listingID)
}

func (s *MemoryStore) bidsByListing(listingID string) ([]models.Bid, error) {
	bids := append([]models.Bid(nil), s.bids[listingID]...)
	sort.SliceStable(bids, func(i, j int) bool {
		if bids[i].Amount != bids[j].Amount {
			return bids[i].Amount > bids[j].Amount
		}
		return bids[i].CreatedAt.Before(bids[j].CreatedAt)
	})
	return bids, nil
}

func (s *MemoryStore) HighestBid(ctx context.Context, listingID string) (models.Bid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.highestBid(listingID)
}
func (t memoryTx) HighestBid(ctx context.Context, listingID string) (models.Bid, error) {
	return t.s.highestBid(listingID)
}

func (s *MemoryStore) highestBid(listingID string) (models.Bid, error) {
	bids := s.bids[listingID]
	if len(bids) == 0 {
		return models.Bid{}, fmt.Errorf("highest bid for listing %s: %w", listingID, markerrors.ErrNoBids)
	}
	winning := bids[0]
	for _, b := range bids[1:] {
		if b.Amount > winning.Amount || (b.Amount == winning.Amount && b.CreatedAt.Before(winning.CreatedAt)) {
			winning = b
		}
	}
	return winning, nil
}

func (s *MemoryStore) DeleteBidsByListing(ctx context.Context, listingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.bids, listingID)
	return nil
}
func (t memoryTx) DeleteBidsByListing(ctx context.Context, listingID string) error {
	delete(t.s.bids, listingID)
	return nil
}

// ---- Offers ----

func (s *MemoryStore) CreateOffer(ctx context.Context, o models.Offer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createOffer(o)
}
func (t memoryTx) CreateOffer(ctx context.Context, o models.Offer) error {
	return t.s.createOffer(o)
}

func (s *MemoryStore) createOffer(o models.Offer) error {
	if _, ok := s.offers[o.OfferID]; ok {
		return fmt.Errorf("create offer %s: %w", o.OfferID, markerrors.ErrConflict)
	}
	s.offers[o.OfferID] = o
	return nil
}

func (s *MemoryStore) GetOffer(ctx context.Context, offerID string) (models.Offer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getOffer(offerID)
}
func (t memoryTx) GetOffer(ctx context.Context, offerID string) (models.Offer, error) {
	return t.s.getOffer(offerID)
}

func (s *MemoryStore) getOffer(offerID string) (models.Offer, error) {
	o, ok := s.offers[offerID]
	if !ok {
		return models.Offer{}, fmt.Errorf("get offer %s: %w", offerID, markerrors.ErrOfferNotFound)
	}
	return o, nil
}

func (s *MemoryStore) ActiveOffer(ctx context.Context, listingID, buyerID string) (models.Offer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeOffer(listingID, buyerID)
}
func (t memoryTx) ActiveOffer(ctx context.Context, listingID, buyerID string) (models.Offer, error) {
	return t.s.activeOffer(listingID, buyerID)
}

func (s *MemoryStore) activeOffer(listingID, buyerID string) (models.Offer, error) {
	for _, o := range s.offers {
		if o.ListingID == listingID && o.BuyerID == buyerID &&
			(o.Status == models.OfferPending || o.Status == models.OfferCountered) {
			return o, nil
		}
	}
	return models.Offer{}, fmt.Errorf("active offer for listing %s by buyer %s: %w", listingID, buyerID, markerrors.ErrOfferNotFound)
}

func (s *MemoryStore) AcceptedOffer(ctx context.Context, listingID string) (models.Offer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.acceptedOffer(listingID)
}
func (t memoryTx) AcceptedOffer(ctx context.Context, listingID string) (models.Offer, error) {
	return t.s.acceptedOffer(listingID)
}

func (s *MemoryStore) acceptedOffer(listingID string) (models.Offer, error) {
	for _, o := range s.offers {
		if o.ListingID == listingID && o.Status == models.OfferAccepted {
			return o, nil
		}
	}
	return models.Offer{}, fmt.Errorf("accepted offer for listing %s: %w", listingID, markerrors.ErrOfferNotFound)
}

func (s *MemoryStore) OffersByListing(ctx context.Context, listingID string) ([]models.Offer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.offersWhere(func(o models.Offer) bool { return o.ListingID == listingID })
}
func (t memoryTx) OffersByListing(ctx context.Context, listingID string) ([]models.Offer, error) {
	return t.s.offersWhere(func(o models.Offer) bool { return o.ListingID == listingID })
}

func (s *MemoryStore) OffersByBuyer(ctx context.Context, buyerID string) ([]models.Offer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.offersWhere(func(o models.Offer) bool { return o.BuyerID == buyerID })
}
func (t memoryTx) OffersByBuyer(ctx context.Context, buyerID string) ([]models.Offer, error) {
	return t.s.offersWhere(func(o models.Offer) bool { return o.BuyerID == buyerID })
}

func (s *MemoryStore) offersWhere(match func(models.Offer) bool) ([]models.Offer, error) {
	var out []models.Offer
	for _, o := range s.offers {
		if match(o) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *MemoryStore) UpdateOffer(ctx context.Context, offerID string, expect []models.OfferStatus, patch OfferPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateOffer(offerID, expect, patch)
}
func (t memoryTx) UpdateOffer(ctx context.Context, offerID string, expect []models.OfferStatus, patch OfferPatch) error {
	return t.s.updateOffer(offerID, expect, patch)
}

func (s *MemoryStore) updateOffer(offerID string, expect []models.OfferStatus, patch OfferPatch) error {
	o, ok := s.offers[offerID]
	if !ok {
		return fmt.Errorf("update offer %s: %w", offerID, markerrors.ErrOfferNotFound)
	}
	if len(expect) > 0 && !offerStatusIn(o.Status, expect) {
		return fmt.Errorf("update offer %s: status is %s: %w", offerID, o.Status, markerrors.ErrOfferNotActionable)
	}
	if patch.Status != nil {
		o.Status = *patch.Status
	}
	if patch.OfferPrice != nil {
		o.OfferPrice = *patch.OfferPrice
	}
	if !patch.UpdatedAt.IsZero() {
		o.UpdatedAt = patch.UpdatedAt
	}
	s.offers[offerID] = o
	return nil
}

func offerStatusIn(status models.OfferStatus, set []models.OfferStatus) bool {
	for _, s := range set {
		if s == status {
			return true
		}
	}
	return false
}

func (s *MemoryStore) DeclineOffersByListing(ctx context.Context, listingID, exceptBuyerID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.declineOffersByListing(listingID, exceptBuyerID)
}
func (t memoryTx) DeclineOffersByListing(ctx context.Context, listingID, exceptBuyerID string) (int, error) {
	return t.s.declineOffersByListing(listingID, exceptBuyerID)
}

func (s *MemoryStore) declineOffersByListing(listingID, exceptBuyerID string) (int, error) {
	declined := 0
	for id, o := range s.offers {
		if o.ListingID != listingID || o.BuyerID == exceptBuyerID {
			continue
		}
		switch o.Status {
		case models.OfferPending, models.OfferCountered, models.OfferAccepted:
			o.Status = models.OfferDeclined
			s.offers[id] = o
			declined++
		}
	}
	return declined, nil
}

func (s *MemoryStore) DeleteAcceptedOffer(ctx context.Context, listingID, buyerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteAcceptedOffer(listingID, buyerID)
}
func (t memoryTx) DeleteAcceptedOffer(ctx context.Context, listingID, buyerID string) error {
	return t.s.deleteAcceptedOffer(listingID, buyerID)
}

func (s *MemoryStore) deleteAcceptedOffer(listingID, buyerID string) error {
	for id, o := range s.offers {
		if o.ListingID == listingID && o.BuyerID == buyerID && o.Status == models.OfferAccepted {
			delete(s.offers, id)
		}
	}
	return nil
}

// ---- Carts ----

func (s *MemoryStore) GetOrCreateCart(ctx context.Context, buyerID string) (models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getOrCreateCart(buyerID)
}
func (t memoryTx) GetOrCreateCart(ctx context.Context, buyerID string) (models.Cart, error) {
	return t.s.getOrCreateCart(buyerID)
}

func (s *MemoryStore) getOrCreateCart(buyerID string) (models.Cart, error) {
	if c, ok := s.carts[buyerID]; ok {
		return c, nil
	}
	c := models.Cart{
		CartID:    newID(),
		BuyerID:   buyerID,
		CreatedAt: time.Now().UTC(),
	}
	s.carts[buyerID] = c
	return c, nil
}

func (s *MemoryStore) GetCartItem(ctx context.Context, cartItemID string) (models.CartItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getCartItem(cartItemID)
}
func (t memoryTx) GetCartItem(ctx context.Context, cartItemID string) (models.CartItem, error) {
	return t.s.getCartItem(cartItemID)
}

func (s *MemoryStore) getCartItem(cartItemID string) (models.CartItem, error) {
	item, ok := s.cartItems[cartItemID]
	if !ok {
		return models.CartItem{}, fmt.Errorf("get cart item %s: %w", cartItemID, markerrors.ErrCartItemNotFound)
	}
	return item, nil
}

func (s *MemoryStore) CartItemsByBuyer(ctx context.Context, buyerID string) ([]models.CartItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cartItemsByBuyer(buyerID)
}
func (t memoryTx) CartItemsByBuyer(ctx context.Context, buyerID string) ([]models.CartItem, error) {
	return t.s.cartItemsByBuyer(buyerID)
}

func (s *MemoryStore) cartItemsByBuyer(buyerID string) ([]models.CartItem, error) {
	var out []models.CartItem
	for _, item := range s.cartItems {
		if item.BuyerID == buyerID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *MemoryStore) CartItemsByIDs(ctx context.Context, buyerID string, cartItemIDs []string) ([]models.CartItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cartItemsByIDs(buyerID, cartItemIDs)
}
func (t memoryTx) CartItemsByIDs(ctx context.Context, buyerID string, cartItemIDs []string) ([]models.CartItem, error) {
	return t.s.cartItemsByIDs(buyerID, cartItemIDs)
}

func (s *MemoryStore) cartItemsByIDs(buyerID string, cartItemIDs []string) ([]models.CartItem, error) {
	out := make([]models.CartItem, 0, len(cartItemIDs))
	for _, id := range cartItemIDs {
		if item, ok := s.cartItems[id]; ok && item.BuyerID == buyerID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *MemoryStore) ReplaceCartItem(ctx context.Context, item models.CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.replaceCartItem(item)
}
func (t memoryTx) ReplaceCartItem(ctx context.Context, item models.CartItem) error {
	return t.s.replaceCartItem(item)
}

func (s *MemoryStore) replaceCartItem(item models.CartItem) error {
	for id, existing := range s.cartItems {
		if existing.CartID == item.CartID && existing.ListingID == item.ListingID {
			delete(s.cartItems, id)
		}
	}
	s.cartItems[item.CartItemID] = item
	return nil
}

func (s *MemoryStore) DeleteCartItem(ctx context.Context, cartItemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cartItems, cartItemID)
	return nil
}
func (t memoryTx) DeleteCartItem(ctx context.Context, cartItemID string) error {
	delete(t.s.cartItems, cartItemID)
	return nil
}

func (s *MemoryStore) DeleteCartItemByListing(ctx context.Context, buyerID, listingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteCartItemByListing(buyerID, listingID)
}
func (t memoryTx) DeleteCartItemByListing(ctx context.Context, buyerID, listingID string) error {
	return t.s.deleteCartItemByListing(buyerID, listingID)
}

func (s *MemoryStore) deleteCartItemByListing(buyerID, listingID string) error {
	for id, item := range s.cartItems {
		if item.BuyerID == buyerID && item.ListingID == listingID {
			delete(s.cartItems, id)
		}
	}
	return nil
}

// ---- Orders ----

func (s *MemoryStore) CreateOrder(ctx context.Context, o models.Order, items []models.OrderItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createOrder(o, items)
}
func (t memoryTx) CreateOrder(ctx context.Context, o models.Order, items []models.OrderItem) error {
	return t.s.createOrder(o, items)
}

func (s *MemoryStore) createOrder(o models.Order, items []models.OrderItem) error {
	if _, ok := s.orders[o.OrderID]; ok {
		return fmt.Errorf("create order %s: %w", o.OrderID, markerrors.ErrConflict)
	}
	s.orders[o.OrderID] = o
	s.orderItems[o.OrderID] = append([]models.OrderItem(nil), items...)
	return nil
}

func (s *MemoryStore) GetOrder(ctx context.Context, orderID string) (models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getOrder(orderID)
}
func (t memoryTx) GetOrder(ctx context.Context, orderID string) (models.Order, error) {
	return t.s.getOrder(orderID)
}

func (s *MemoryStore) getOrder(orderID string) (models.Order, error) {
	o, ok := s.orders[orderID]
	if !ok {
		return models.Order{}, fmt.Errorf("get order %s: %w", orderID, markerrors.ErrOrderNotFound)
	}
	return o, nil
}

func (s *MemoryStore) OrderItemsByOrder(ctx context.Context, orderID string) ([]models.OrderItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.OrderItem(nil), s.orderItems[orderID]...), nil
}
func (t memoryTx) OrderItemsByOrder(ctx context.Context, orderID string) ([]models.OrderItem, error) {
	return append([]models.OrderItem(nil), t.s.orderItems[orderID]...), nil
}

func (s *MemoryStore) OrdersByBuyer(ctx context.Context, buyerID string) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ordersByBuyer(buyerID)
}
func (t memoryTx) OrdersByBuyer(ctx context.Context, buyerID string) ([]models.Order, error) {
	return t.s.ordersByBuyer(buyerID)
}

func (s *MemoryStore) ordersByBuyer(buyerID string) ([]models.Order, error) {
	var out []models.Order
	for _, o := range s.orders {
		if o.BuyerID == buyerID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *MemoryStore) UpdateOrderStatus(ctx context.Context, orderID string, expect []models.OrderStatus, status models.OrderStatus, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateOrderStatus(orderID, expect, status, updatedAt)
}
func (t memoryTx) UpdateOrderStatus(ctx context.Context, orderID string, expect []models.OrderStatus, status models.OrderStatus, updatedAt time.Time) error {
	return t.s.updateOrderStatus(orderID, expect, status, updatedAt)
}

func (s *MemoryStore) updateOrderStatus(orderID string, expect []models.OrderStatus, status models.OrderStatus, updatedAt time.Time) error {
	o, ok := s.orders[orderID]
	if !ok {
		return fmt.Errorf("update order %s: %w", orderID, markerrors.ErrOrderNotFound)
	}
	if len(expect) > 0 {
		matched := false
		for _, e := range expect {
			if o.Status == e {
				matched = true
				break
			}
		}
		if !matched {
			return fmt.Errorf("update order %s: status is %s: %w", orderID, o.Status, markerrors.ErrOrderTransition)
		}
	}
	o.Status = status
	o.UpdatedAt = updatedAt
	s.orders[orderID] = o
	return nil
}

// ---- Reaper ----

func (s *MemoryStore) ExpiredAuctionReservations(ctx context.Context, cutoff time.Time) ([]models.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiredAuctionReservations(cutoff)
}
func (t memoryTx) ExpiredAuctionReservations(ctx context.Context, cutoff time.Time) ([]models.Listing, error) {
	return t.s.expiredAuctionReservations(cutoff)
}

func (s *MemoryStore) expiredAuctionReservations(cutoff time.Time) ([]models.Listing, error) {
	var out []models.Listing
	for _, l := range s.listings {
		if l.SaleType == models.SaleTypeAuction && l.Status == models.ListingReserved &&
			l.ReservedAt != nil && l.ReservedAt.Before(cutoff) {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ListingID < out[j].ListingID })
	return out, nil
}
