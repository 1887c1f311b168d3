package scheduler

import (
	"context"

	"membercare_backend/internal/events"
	"membercare_backend/platform/logger"
)

// RefreshSubscriber listens for member mutations and queues a debounced
// saved-search refresh so stored result counts follow the data.
type RefreshSubscriber struct {
	client RefreshScheduler
	log    *logger.Logger
}

func NewRefreshSubscriber(client RefreshScheduler, log *logger.Logger) *RefreshSubscriber {
	return &RefreshSubscriber{client: client, log: log}
}

// RegisterHandlers subscribes to member lifecycle events.
func (s *RefreshSubscriber) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.MemberCreated{}.EventName(), s)
	bus.Subscribe(events.MemberUpdated{}.EventName(), s)
	bus.Subscribe(events.MemberDeleted{}.EventName(), s)
}

// Handle queues a refresh for any member mutation. Failures are logged
// and swallowed; the next mutation or worker run catches up.
func (s *RefreshSubscriber) Handle(ctx context.Context, event events.Event) error {
	if err := s.client.ScheduleSavedSearchRefresh(ctx, event.EventName()); err != nil {
		s.log.Warn("could not queue saved search refresh",
			"event", event.EventName(),
			"error", err,
		)
	}
	return nil
}

var _ events.Handler = (*RefreshSubscriber)(nil)
