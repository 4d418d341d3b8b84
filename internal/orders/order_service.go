package orders

import (
	"context"
	"errors"
	"fmt"

	"marketplace/internal/clock"
	"marketplace/internal/markerrors"
	"marketplace/internal/models"
	"marketplace/internal/notify"
	"marketplace/internal/repository"
	"marketplace/utils"
)

// forward holds the allowed next step of each non-terminal order status.
var forward = map[models.OrderStatus]models.OrderStatus{
	models.OrderPaymentPending: models.OrderPaid,
	models.OrderPaid:           models.OrderShipped,
	models.OrderShipped:        models.OrderCompleted,
}

// Service is the order checkout transaction: it converts cart lines into an
// order, finalizes sale status and invalidates competing offers atomically.
type Service struct {
	store repository.MarketStore
	clk   clock.Clock
	sink  notify.Sink
}

// NewService creates a new order Service instance.
func NewService(store repository.MarketStore, clk clock.Clock, sink notify.Sink) *Service {
	return &Service{store: store, clk: clk, sink: sink}
}

// CreateOrder checks out the requested cart items. Every referenced listing
// must still be claimable by this buyer; otherwise the whole operation aborts
// with no partial effects. On success the listings are sold, competing offers
// declined, and the consumed cart items deleted, all in one transaction.
func (s *Service) CreateOrder(ctx context.Context, buyerID string, cartItemIDs []string, paymentMethod, shippingMethod string) (models.Order, error) {
	if buyerID == "" || len(cartItemIDs) == 0 {
		return models.Order{}, fmt.Errorf("create order: missing buyer or cart items: %w", markerrors.ErrInvalidInput)
	}
	if paymentMethod == "" || shippingMethod == "" {
		return models.Order{}, fmt.Errorf("create order: missing payment or shipping method: %w", markerrors.ErrInvalidInput)
	}

	now := s.clk.Now()
	order := models.Order{
		OrderID:        utils.GenerateID(),
		BuyerID:        buyerID,
		Status:         models.OrderPaymentPending,
		PaymentMethod:  paymentMethod,
		ShippingMethod: shippingMethod,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	var sellers []string
	err := s.store.InTx(ctx, func(tx repository.MarketStore) error {
		items, err := tx.CartItemsByIDs(ctx, buyerID, cartItemIDs)
		if err != nil {
			return err
		}
		if len(items) != len(cartItemIDs) {
			return fmt.Errorf("create order: requested %d cart items, found %d: %w", len(cartItemIDs), len(items), markerrors.ErrStaleCart)
		}

		orderItems := make([]models.OrderItem, 0, len(items))
		for _, item := range items {
			l, err := tx.GetListingForUpdate(ctx, item.ListingID)
			if err != nil {
				return err
			}
			if err := claimable(ctx, tx, l, buyerID); err != nil {
				return err
			}
			order.FinalAmount += item.AgreedPrice * float64(item.Quantity)
			orderItems = append(orderItems, models.OrderItem{
				OrderItemID: utils.GenerateID(),
				OrderID:     order.OrderID,
				ListingID:   item.ListingID,
				SellerID:    l.SellerID,
				AgreedPrice: item.AgreedPrice,
				Quantity:    item.Quantity,
			})
			sellers = append(sellers, l.SellerID)
		}

		if err := tx.CreateOrder(ctx, order, orderItems); err != nil {
			return err
		}

		sold := models.ListingSold
		for _, item := range items {
			patch := repository.ListingPatch{Status: &sold}
			err := tx.UpdateListing(ctx, item.ListingID,
				[]models.ListingStatus{models.ListingAvailable, models.ListingReserved}, patch)
			if err != nil {
				return err
			}
			if _, err := tx.DeclineOffersByListing(ctx, item.ListingID, buyerID); err != nil {
				return err
			}
			if err := tx.DeleteCartItem(ctx, item.CartItemID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return models.Order{}, err
	}

	for _, sellerID := range sellers {
		s.sink.Notify(ctx, notify.Event{
			UserID:  sellerID,
			Kind:    notify.KindListingSold,
			Message: "One of your listings has been sold.",
			Link:    "/orders/" + order.OrderID,
		})
	}
	return order, nil
}

// claimable reports whether the buyer may still check the listing out. An
// available fixed-price listing is always claimable; a reserved one only when
// this buyer holds the reservation (auction winner or accepted offer).
func claimable(ctx context.Context, tx repository.MarketStore, l models.Listing, buyerID string) error {
	switch l.Status {
	case models.ListingAvailable:
		return nil
	case models.ListingReserved:
		if l.SaleType == models.SaleTypeAuction {
			if l.WinnerID != buyerID {
				return fmt.Errorf("create order: listing %s reserved for another buyer: %w", l.ListingID, markerrors.ErrListingUnavailable)
			}
			return nil
		}
		o, err := tx.AcceptedOffer(ctx, l.ListingID)
		if err != nil {
			if errors.Is(err, markerrors.ErrOfferNotFound) {
				return fmt.Errorf("create order: listing %s reservation holder unknown: %w", l.ListingID, markerrors.ErrListingUnavailable)
			}
			return err
		}
		if o.BuyerID != buyerID {
			return fmt.Errorf("create order: listing %s reserved for another buyer: %w", l.ListingID, markerrors.ErrListingUnavailable)
		}
		return nil
	default:
		return fmt.Errorf("create order: listing %s: status is %s: %w", l.ListingID, l.Status, markerrors.ErrListingUnavailable)
	}
}

// UpdateOrderStatus advances an order one step forward, or cancels it from
// any non-terminal state. Only a seller owning at least one item in the order
// may act. Completion defensively re-asserts the listings as sold.
func (s *Service) UpdateOrderStatus(ctx context.Context, orderID, sellerID string, newStatus models.OrderStatus) (models.Order, error) {
	if orderID == "" || sellerID == "" {
		return models.Order{}, fmt.Errorf("update order status: missing order or seller: %w", markerrors.ErrInvalidInput)
	}
	switch newStatus {
	case models.OrderPaid, models.OrderShipped, models.OrderCompleted, models.OrderCancelled:
	default:
		return models.Order{}, fmt.Errorf("update order status: unknown status %q: %w", newStatus, markerrors.ErrInvalidInput)
	}

	var out models.Order
	err := s.store.InTx(ctx, func(tx repository.MarketStore) error {
		o, err := tx.GetOrder(ctx, orderID)
		if err != nil {
			return err
		}
		items, err := tx.OrderItemsByOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if !sellsIn(items, sellerID) {
			return fmt.Errorf("update order status: order %s: %w", orderID, markerrors.ErrNotSeller)
		}
		if o.Status == models.OrderCompleted || o.Status == models.OrderCancelled {
			return fmt.Errorf("update order status: order %s is %s: %w", orderID, o.Status, markerrors.ErrOrderTransition)
		}
		if newStatus != models.OrderCancelled && forward[o.Status] != newStatus {
			return fmt.Errorf("update order status: order %s: %s -> %s: %w", orderID, o.Status, newStatus, markerrors.ErrOrderTransition)
		}

		err = tx.UpdateOrderStatus(ctx, orderID, []models.OrderStatus{o.Status}, newStatus, s.clk.Now())
		if err != nil {
			return err
		}

		if newStatus == models.OrderCompleted {
			sold := models.ListingSold
			for _, item := range items {
				err := tx.UpdateListing(ctx, item.ListingID, nil, repository.ListingPatch{Status: &sold})
				if err != nil {
					return err
				}
			}
		}

		out, err = tx.GetOrder(ctx, orderID)
		return err
	})
	if err != nil {
		return models.Order{}, err
	}
	return out, nil
}

func sellsIn(items []models.OrderItem, sellerID string) bool {
	for _, item := range items {
		if item.SellerID == sellerID {
			return true
		}
	}
	return false
}

// OrdersForBuyer returns the buyer's orders with their items.
func (s *Service) OrdersForBuyer(ctx context.Context, buyerID string) ([]models.Order, error) {
	if buyerID == "" {
		return nil, fmt.Errorf("orders for buyer: empty buyer ID: %w", markerrors.ErrInvalidInput)
	}
	return s.store.OrdersByBuyer(ctx, buyerID)
}

// OrderItems returns the items of one order for its buyer or a seller in it.
func (s *Service) OrderItems(ctx context.Context, orderID, requesterID string) ([]models.OrderItem, error) {
	if orderID == "" || requesterID == "" {
		return nil, fmt.Errorf("order items: missing order or requester: %w", markerrors.ErrInvalidInput)
	}
	o, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	items, err := s.store.OrderItemsByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.BuyerID != requesterID && !sellsIn(items, requesterID) {
		return nil, fmt.Errorf("order items: order %s: %w", orderID, markerrors.ErrNotBuyer)
	}
	return items, nil
}
