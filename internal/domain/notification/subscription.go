// Package notification models drop-date notification opt-ins.
package notification

import (
	"context"
	"time"
)

// DropSubscription records that a user wants an email when one of a
// producer's strains changes its drop date. At most one subscription exists
// per (user, producer) pair.
type DropSubscription struct {
	ID         uint
	SID        string
	UserID     uint
	ProducerID uint
	CreatedAt  time.Time
}

// SubscriptionRepository persists drop subscriptions.
type SubscriptionRepository interface {
	// Subscribe is idempotent: subscribing twice keeps a single row.
	Subscribe(ctx context.Context, sub *DropSubscription) error
	Unsubscribe(ctx context.Context, userID, producerID uint) error
	IsSubscribed(ctx context.Context, userID, producerID uint) (bool, error)

	// ListSubscriberEmails returns the email addresses of all users opted in
	// for the producer, for the drop-change fan-out.
	ListSubscriberEmails(ctx context.Context, producerID uint) ([]string, error)
}
