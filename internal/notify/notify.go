package notify

import (
	"context"

	"marketplace/utils"
)

// Notification kinds emitted by the engines.
const (
	KindOfferReceived    = "offer_received"
	KindOfferCountered   = "offer_countered"
	KindOfferAccepted    = "offer_accepted"
	KindOfferDeclined    = "offer_declined"
	KindAuctionWon       = "auction_won"
	KindListingSold      = "listing_sold"
	KindAuctionReclaimed = "auction_reclaimed"
)

// Event is the payload delivered to a user.
type Event struct {
	UserID  string `json:"user_id"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Link    string `json:"link,omitempty"`
}

// Sink delivers notifications fire-and-forget. Implementations log delivery
// failures; they never surface an error, so a broken sink cannot abort the
// business transaction that triggered it.
type Sink interface {
	Notify(ctx context.Context, event Event)
}

// LogSink writes notifications to the structured log. It is the default sink
// when no broker is configured.
type LogSink struct{}

func NewLogSink() *LogSink { return &LogSink{} }

func (s *LogSink) Notify(ctx context.Context, event Event) {
	utils.Info("notification", map[string]any{
		"user_id": event.UserID,
		"kind":    event.Kind,
		"message": event.Message,
		"link":    event.Link,
	})
}
