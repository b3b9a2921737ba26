// Package service persists and serves zone membership history
package service

import (
	"context"

	"zonewatch/internal/modkit/repokit"
	"zonewatch/internal/platform/bus"
	"zonewatch/internal/platform/logger"
	"zonewatch/internal/services/events/domain"
	"zonewatch/internal/services/events/repo"
	zonedomain "zonewatch/internal/services/zones/domain"
)

// Config carries runtime knobs for the recorder
type Config struct {
	// SubscribeBuffer is the bus channel depth; overflow drops events at the bus
	SubscribeBuffer int
}

func (c Config) withDefaults() Config {
	if c.SubscribeBuffer <= 0 {
		c.SubscribeBuffer = 256
	}
	return c
}

// Svc records membership changes off the bus and answers history queries
type Svc struct {
	log  *logger.Logger
	repo repo.Storage
	bus  *bus.Bus
	cfg  Config
}

// New constructs the events service
func New(db repokit.TxRunner, b *bus.Bus, cfg Config) *Svc {
	if db == nil {
		panic("events.Service requires a non nil TxRunner")
	}
	if b == nil {
		panic("events.Service requires a bus")
	}
	return &Svc{
		log:  logger.Named("events"),
		repo: repokit.MustBind(repo.NewPG(), db),
		bus:  b,
		cfg:  cfg.withDefaults(),
	}
}

// Run subscribes to every membership topic and persists until ctx ends
func (s *Svc) Run(ctx context.Context) error {
	ch, cancel := s.bus.Subscribe(zonedomain.TopicPattern, s.cfg.SubscribeBuffer)
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-ch:
			if !ok {
				return nil
			}
			s.persist(ctx, ev)
		}
	}
}

// persist is best effort; publishers never observe subscriber failures
func (s *Svc) persist(ctx context.Context, ev bus.Event) {
	me, ok := ev.Payload.(zonedomain.MembershipEvent)
	if !ok {
		s.log.Warn().Str("topic", ev.Topic).Msgf("unexpected payload type %T", ev.Payload)
		return
	}
	_, err := s.repo.Insert(ctx, domain.StoredEvent{
		CameraIdentifier: me.CameraIdentifier,
		ZoneName:         me.Zone.Name,
		FrameID:          me.Frame.FrameID,
		CapturedAt:       me.Frame.CapturedAt,
		Objects:          me.Objects,
	})
	if err != nil {
		s.log.Error().Err(err).Str("topic", ev.Topic).Msg("persist membership event")
	}
}

// List implements domain.QueryPort
func (s *Svc) List(ctx context.Context, f domain.Filters, after domain.AfterKey, limit int) ([]domain.StoredEvent, domain.AfterKey, error) {
	return s.repo.List(ctx, f, after, limit)
}
