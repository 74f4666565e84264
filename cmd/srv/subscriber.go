package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/craftloop/backend/internal/domain/notification/event"
	"github.com/craftloop/backend/pkg/kafka"
	"github.com/craftloop/backend/pkg/pubsub"
	"github.com/craftloop/backend/pkg/xcontext"

	"github.com/urfave/cli/v2"
)

func (s *srv) startSubscriber(ct *cli.Context) error {
	s.loadConfig()
	s.loadLogger()

	subscriber, err := kafka.NewSubscriber(
		"subscriber",
		[]string{s.configs.Kafka.Addr},
		[]string{s.configs.Kafka.NotificationTopic},
		s.handleNotificationEvent,
	)
	if err != nil {
		return err
	}

	s.subscriber = subscriber
	s.logger.Infof("Starting notification subscriber")
	s.subscriber.Subscribe(s.ctx)

	// Subscribe only waits for the consumer group to become ready; the
	// worker must outlive it until the process is told to stop.
	sig := waitTermSignal()
	s.logger.Infof("Got a signal of %s, stopping subscriber", sig.String())
	return s.subscriber.Stop(s.ctx)
}

func waitTermSignal() os.Signal {
	termSignal := make(chan os.Signal, 1)
	signal.Notify(termSignal, syscall.SIGINT, syscall.SIGTERM)
	return <-termSignal
}

// handleNotificationEvent pushes one durable notification to the
// recipient's live channels. Email and websocket transports hang off this
// point; for now the delivery is recorded in the log.
func (s *srv) handleNotificationEvent(ctx context.Context, pack *pubsub.Pack, t time.Time) {
	var req event.EventRequest
	if err := req.Unmarshal(pack.Msg); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot unmarshal notification event: %v", err)
		return
	}

	xcontext.Logger(ctx).Infof("Deliver %s to %s: %s", req.Op, req.UserID, req.Title)
}
