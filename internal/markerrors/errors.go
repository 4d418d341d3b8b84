package markerrors

import (
	"errors"
	"fmt"
)

// Error kinds. Every domain error wraps exactly one of these so callers can
// branch with errors.Is instead of matching strings.
var (
	ErrValidation   = errors.New("validation error")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrInternal     = errors.New("internal error")
)

// Not-found errors
var (
	ErrListingNotFound  = kind(ErrNotFound, "listing not found")
	ErrOfferNotFound    = kind(ErrNotFound, "offer not found")
	ErrCartItemNotFound = kind(ErrNotFound, "cart item not found")
	ErrOrderNotFound    = kind(ErrNotFound, "order not found")
	ErrNoBids           = kind(ErrNotFound, "no bids found for listing")
)

// Validation errors
var (
	ErrInvalidInput = kind(ErrValidation, "invalid input")
	ErrOwnListing   = kind(ErrValidation, "seller cannot act as buyer on own listing")
	ErrNotAuction   = kind(ErrValidation, "listing is not an auction")
	ErrNotFixed     = kind(ErrValidation, "listing is not fixed price")
)

// Conflict errors: a precondition no longer holds; the caller should refresh
// state before retrying.
var (
	ErrBidTooLow          = kind(ErrConflict, "bid amount too low")
	ErrAuctionNotRunning  = kind(ErrConflict, "auction is not running")
	ErrAuctionEnded       = kind(ErrConflict, "auction end time has passed")
	ErrListingUnavailable = kind(ErrConflict, "listing is not available")
	ErrOfferExists        = kind(ErrConflict, "an active offer for this listing already exists")
	ErrOfferNotActionable = kind(ErrConflict, "offer is not in an actionable state")
	ErrStaleCart          = kind(ErrConflict, "cart items no longer match the request")
	ErrOrderTransition    = kind(ErrConflict, "order status transition not allowed")
	ErrNotReAuctionable   = kind(ErrConflict, "listing cannot be re-auctioned")
)

// Authorization errors
var (
	ErrNotSeller = kind(ErrUnauthorized, "actor is not the seller of this listing")
	ErrNotBuyer  = kind(ErrUnauthorized, "actor is not the buyer for this item")
)

func kind(k error, msg string) error {
	return fmt.Errorf("%s: %w", msg, k)
}

// Kind reports which of the five kind sentinels err wraps, or ErrInternal
// when it wraps none of them.
func Kind(err error) error {
	switch {
	case errors.Is(err, ErrValidation):
		return ErrValidation
	case errors.Is(err, ErrConflict):
		return ErrConflict
	case errors.Is(err, ErrUnauthorized):
		return ErrUnauthorized
	case errors.Is(err, ErrNotFound):
		return ErrNotFound
	default:
		return ErrInternal
	}
}
