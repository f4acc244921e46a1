package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/terplist/terplist/internal/domain/notification"
	"github.com/terplist/terplist/internal/domain/producer"
	"github.com/terplist/terplist/internal/shared/biztime"
	"github.com/terplist/terplist/internal/shared/goroutine"
	"github.com/terplist/terplist/internal/shared/logger"
)

// notifyTimeout bounds one fan-out run including SMTP delivery.
const notifyTimeout = 2 * time.Minute

// EmailSender delivers one message. Implemented by the SMTP sender.
type EmailSender interface {
	Send(to, subject, htmlBody string) error
}

// DropChangedNotifier emails every subscriber of a producer when one of its
// strains changes its drop date. Dispatch is fire-and-forget: the strain
// update request never waits on SMTP.
type DropChangedNotifier struct {
	subscriptionRepo notification.SubscriptionRepository
	producerRepo     producer.Repository
	sender           EmailSender
	logger           logger.Interface
}

func NewDropChangedNotifier(
	subscriptionRepo notification.SubscriptionRepository,
	producerRepo producer.Repository,
	sender EmailSender,
	log logger.Interface,
) *DropChangedNotifier {
	return &DropChangedNotifier{
		subscriptionRepo: subscriptionRepo,
		producerRepo:     producerRepo,
		sender:           sender,
		logger:           log,
	}
}

// NotifyDropChanged dispatches the fan-out asynchronously.
func (n *DropChangedNotifier) NotifyDropChanged(producerID uint, strainName string, dropAt *time.Time) {
	goroutine.SafeGo(n.logger, "drop-changed-notify", func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		n.fanOut(ctx, producerID, strainName, dropAt)
	})
}

func (n *DropChangedNotifier) fanOut(ctx context.Context, producerID uint, strainName string, dropAt *time.Time) {
	owner, err := n.producerRepo.GetByID(ctx, producerID)
	if err != nil || owner == nil {
		n.logger.Warnw("drop notify: producer lookup failed",
			"producer_id", producerID, "error", err)
		return
	}

	emails, err := n.subscriptionRepo.ListSubscriberEmails(ctx, producerID)
	if err != nil {
		n.logger.Errorw("drop notify: failed to list subscribers",
			"producer_id", producerID, "error", err)
		return
	}
	if len(emails) == 0 {
		return
	}

	subject, body := dropChangedMessage(owner.Name(), strainName, dropAt)

	sent := 0
	for _, email := range emails {
		if ctx.Err() != nil {
			break
		}
		if err := n.sender.Send(email, subject, body); err != nil {
			n.logger.Warnw("drop notify: failed to send email",
				"producer_id", producerID, "error", err)
			continue
		}
		sent++
	}

	n.logger.Infow("drop notification fan-out completed",
		"producer_id", producerID, "strain", strainName,
		"subscribers", len(emails), "sent", sent)
}

func dropChangedMessage(producerName, strainName string, dropAt *time.Time) (string, string) {
	if dropAt == nil {
		subject := fmt.Sprintf("%s: %s drop cancelled", producerName, strainName)
		body := fmt.Sprintf(
			"<p>The scheduled drop for <strong>%s</strong> by %s has been cancelled.</p>",
			strainName, producerName,
		)
		return subject, body
	}

	local := dropAt.In(biztime.Location())
	subject := fmt.Sprintf("%s: %s drops %s", producerName, strainName, local.Format("Jan 2"))
	body := fmt.Sprintf(
		"<p><strong>%s</strong> by %s is now scheduled to drop on %s.</p>",
		strainName, producerName, local.Format("Monday, January 2 at 3:04 PM MST"),
	)
	return subject, body
}
