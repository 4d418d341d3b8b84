package reaper

import (
	"context"
	"fmt"
	"time"

	"marketplace/internal/clock"
	"marketplace/internal/markerrors"
	"marketplace/internal/models"
	"marketplace/internal/notify"
	"marketplace/internal/repository"
	"marketplace/utils"
)

// Outcome records what happened to one listing during a sweep.
type Outcome struct {
	ListingID string `json:"listing_id"`
	Reclaimed bool   `json:"reclaimed"`
	Error     string `json:"error,omitempty"`
}

// SweepResult summarizes one reaper run.
type SweepResult struct {
	Reclaimed int       `json:"reclaimed"`
	Outcomes  []Outcome `json:"outcomes"`
}

// Reaper reclaims auction reservations that outlived the grace window: the
// winner's cart item is deleted and the listing reverts to cancelled_by_buyer
// so the seller can re-auction it.
type Reaper struct {
	store        repository.MarketStore
	clk          clock.Clock
	sink         notify.Sink
	defaultGrace time.Duration
}

// New creates a Reaper with the given default grace window.
func New(store repository.MarketStore, clk clock.Clock, sink notify.Sink, defaultGrace time.Duration) *Reaper {
	return &Reaper{store: store, clk: clk, sink: sink, defaultGrace: defaultGrace}
}

// Sweep reclaims every auction listing whose reservation is older than the
// grace window. graceMinutes <= 0 uses the configured default. Each listing
// is processed in its own transaction, so one failure does not block the
// rest, and re-running after a partial failure only touches listings still
// matching the filter.
func (r *Reaper) Sweep(ctx context.Context, graceMinutes int) (SweepResult, error) {
	grace := r.defaultGrace
	if graceMinutes > 0 {
		grace = time.Duration(graceMinutes) * time.Minute
	}
	cutoff := r.clk.Now().Add(-grace)

	expired, err := r.store.ExpiredAuctionReservations(ctx, cutoff)
	if err != nil {
		return SweepResult{}, err
	}

	result := SweepResult{Outcomes: make([]Outcome, 0, len(expired))}
	for _, l := range expired {
		sellerID, err := r.reclaim(ctx, l.ListingID, grace)
		if err != nil {
			utils.Warn("reaper: reclaim failed", map[string]any{
				"listing_id": l.ListingID,
				"error":      err.Error(),
			})
			result.Outcomes = append(result.Outcomes, Outcome{ListingID: l.ListingID, Error: err.Error()})
			continue
		}
		result.Reclaimed++
		result.Outcomes = append(result.Outcomes, Outcome{ListingID: l.ListingID, Reclaimed: true})
		r.sink.Notify(ctx, notify.Event{
			UserID:  sellerID,
			Kind:    notify.KindAuctionReclaimed,
			Message: "The winning bidder did not complete checkout in time. You can re-auction the item.",
			Link:    "/listings/" + l.ListingID,
		})
	}
	return result, nil
}

// reclaim reverts one listing inside its own transaction, re-checking the
// reservation under the row lock so a buyer checkout racing the sweep wins
// cleanly on one side only.
func (r *Reaper) reclaim(ctx context.Context, listingID string, grace time.Duration) (string, error) {
	var sellerID string
	err := r.store.InTx(ctx, func(tx repository.MarketStore) error {
		l, err := tx.GetListingForUpdate(ctx, listingID)
		if err != nil {
			return err
		}
		if l.Status != models.ListingReserved || clock.WithinGrace(r.clk, l.ReservedAt, grace) {
			return fmt.Errorf("reclaim listing %s: no longer an expired reservation: %w", listingID, markerrors.ErrConflict)
		}
		sellerID = l.SellerID

		if l.WinnerID != "" {
			if err := tx.DeleteCartItemByListing(ctx, l.WinnerID, listingID); err != nil {
				return err
			}
		}

		status := models.ListingCancelledByBuyer
		ended := models.AuctionEnded
		return tx.UpdateListing(ctx, listingID, []models.ListingStatus{models.ListingReserved}, repository.ListingPatch{
			Status:           &status,
			AuctionStatus:    &ended,
			ClearReservation: true,
		})
	})
	return sellerID, err
}

// Run sweeps on a fixed interval until ctx is cancelled. It is the scheduled
// counterpart of the operator-triggered Sweep endpoint.
func (r *Reaper) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			result, err := r.Sweep(ctx, 0)
			if err != nil {
				utils.Error("reaper: sweep failed", map[string]any{"error": err.Error()})
				continue
			}
			if result.Reclaimed > 0 {
				utils.Info("reaper: sweep done", map[string]any{"reclaimed": result.Reclaimed})
			}
		}
	}
}
