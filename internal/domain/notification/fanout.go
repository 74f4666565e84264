package notification

import (
	"context"
	"time"

	"github.com/craftloop/backend/internal/domain/notification/event"
	"github.com/craftloop/backend/internal/entity"
	"github.com/craftloop/backend/internal/repository"
	"github.com/craftloop/backend/pkg/dateutil"
	"github.com/craftloop/backend/pkg/logger"
	"github.com/craftloop/backend/pkg/pubsub"
	"github.com/craftloop/backend/pkg/xcontext"
)

// inAppOnlyTypes are notification kinds that never go out by email. For
// these, disabling the in-app channel suppresses record creation entirely
// instead of keeping an audit record.
var inAppOnlyTypes = map[entity.NotificationType]bool{
	entity.NotificationAchievementUnlocked: true,
}

// Fanout turns social events into durable notification records and hands
// them to the delivery pipeline. Every method is best-effort from the
// caller's point of view: a fanout failure must never abort the action
// that triggered it.
type Fanout struct {
	userRepo         repository.UserRepository
	followerRepo     repository.FollowerRepository
	notificationRepo repository.NotificationRepository
	preferenceRepo   repository.NotificationPreferenceRepository

	// publisher is optional; without it notifications are persisted but not
	// handed to the delivery worker.
	publisher pubsub.Publisher
}

func NewFanout(
	userRepo repository.UserRepository,
	followerRepo repository.FollowerRepository,
	notificationRepo repository.NotificationRepository,
	preferenceRepo repository.NotificationPreferenceRepository,
	publisher pubsub.Publisher,
) *Fanout {
	return &Fanout{
		userRepo:         userRepo,
		followerRepo:     followerRepo,
		notificationRepo: notificationRepo,
		preferenceRepo:   preferenceRepo,
		publisher:        publisher,
	}
}

// NotifyFollowers creates one notification per follower of the actor.
func (f *Fanout) NotifyFollowers(ctx context.Context, actorID string, ev event.Event) error {
	actor, err := f.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return err
	}

	followers, err := f.followerRepo.GetFollowers(ctx, actorID)
	if err != nil {
		return err
	}

	notifications := []*entity.Notification{}
	for _, follower := range followers {
		notification, err := f.build(ctx, follower.FollowerID, actor.Name, ev)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot build notification for %s: %v", follower.FollowerID, err)
			continue
		}

		if notification != nil {
			notifications = append(notifications, notification)
		}
	}

	if err := f.notificationRepo.BulkCreate(ctx, notifications); err != nil {
		return err
	}

	f.deliver(ctx, notifications)
	return nil
}

// NotifyUser creates a notification for a single recipient. An actor
// targeting themselves is silently ignored.
func (f *Fanout) NotifyUser(ctx context.Context, recipientID, actorID string, ev event.Event) error {
	if recipientID == actorID {
		return nil
	}

	actorName := ""
	if actorID != "" {
		actor, err := f.userRepo.GetByID(ctx, actorID)
		if err != nil {
			return err
		}

		actorName = actor.Name
	}

	notification, err := f.build(ctx, recipientID, actorName, ev)
	if err != nil {
		return err
	}

	if notification == nil {
		return nil
	}

	if err := f.notificationRepo.Create(ctx, notification); err != nil {
		return err
	}

	f.deliver(ctx, []*entity.Notification{notification})
	return nil
}

// build constructs the durable record for one recipient, or returns nil
// when the recipient's preferences suppress it.
func (f *Fanout) build(
	ctx context.Context, recipientID, actorName string, ev event.Event,
) (*entity.Notification, error) {
	preferences, err := f.preferenceRepo.Get(ctx, recipientID)
	if err != nil {
		return nil, err
	}

	typ := ev.Op()
	inAppOn := preferences.InAppEnabled(typ)
	emailRequested := !inAppOnlyTypes[typ]
	emailOn := emailRequested && preferences.EmailEnabled(typ)

	if !inAppOn && !emailRequested {
		return nil, nil
	}

	skipDelivery := !inAppOn && !emailOn
	if !skipDelivery && preferences.QuietHours {
		inQuiet, err := dateutil.InClockWindow(time.Now(), preferences.QuietStart, preferences.QuietEnd)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Invalid quiet hours of user %s: %v", recipientID, err)
		} else if inQuiet {
			skipDelivery = true
		}
	}

	return &entity.Notification{
		SnowFlakeBase: entity.SnowFlakeBase{ID: xcontext.SnowFlake(ctx).Generate().Int64()},
		UserID:        recipientID,
		Type:          typ,
		Title:         ev.Title(actorName),
		Message:       ev.Message(),
		Metadata:      ev.Metadata(),
		SkipDelivery:  skipDelivery,
	}, nil
}

// deliver hands records to the delivery pipeline without blocking the
// caller. Failures are logged and dropped; the durable record is already
// committed and the client can still pull it.
func (f *Fanout) deliver(ctx context.Context, notifications []*entity.Notification) {
	if f.publisher == nil {
		return
	}

	topic := xcontext.Configs(ctx).Kafka.NotificationTopic
	log := xcontext.Logger(ctx)

	requests := []*event.EventRequest{}
	for _, n := range notifications {
		if n.SkipDelivery {
			continue
		}

		requests = append(requests, &event.EventRequest{
			Op:       n.Type,
			UserID:   n.UserID,
			Title:    n.Title,
			Message:  n.Message,
			Metadata: n.Metadata,
		})
	}

	go f.publish(log, topic, requests)
}

func (f *Fanout) publish(log logger.Logger, topic string, requests []*event.EventRequest) {
	ctx := context.Background()
	for _, req := range requests {
		b, err := req.Marshal()
		if err != nil {
			log.Errorf("Cannot marshal notification event: %v", err)
			continue
		}

		pack := &pubsub.Pack{Key: []byte(req.UserID), Msg: b}
		if err := f.publisher.Publish(ctx, topic, pack); err != nil {
			log.Warnf("Cannot publish notification event: %v", err)
		}
	}
}
