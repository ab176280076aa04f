package queue

import (
	"context"
	"hash/fnv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/clickerrealm/community-api/internal/core/domain"
	"github.com/clickerrealm/community-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// queueDepth tracks events accepted but not yet written to the trail.
var queueDepth = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "community",
	Name:      "audit_queue_depth",
	Help:      "Audit events queued for persistence.",
})

// AuditDispatcher fans audit events out to a fixed set of workers using
// consistent hashing on the actor id, so each actor's trail is written in
// the order their actions happened.
type AuditDispatcher struct {
	workers []chan domain.AuditEvent
	repo    ports.AuditRepository
	log     zerolog.Logger
}

// NewAuditDispatcher creates a dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewAuditDispatcher(numWorkers int, repo ports.AuditRepository, log zerolog.Logger) *AuditDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &AuditDispatcher{
		workers: make([]chan domain.AuditEvent, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuditEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *AuditDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Record enqueues an audit event on the worker owning its actor.
// Non-blocking up to channelBuffer capacity. Satisfies ports.AuditRecorder.
func (d *AuditDispatcher) Record(event domain.AuditEvent) {
	queueDepth.Inc()
	d.workers[d.shardIndex(event.ActorID)] <- event
}

// shardIndex maps an actor id deterministically to a worker index.
func (d *AuditDispatcher) shardIndex(actorID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(actorID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *AuditDispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuditEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			queueDepth.Dec()
			if err := d.repo.InsertEvent(ctx, &event); err != nil {
				d.log.Error().Err(err).
					Str("action", string(event.Action)).
					Str("actor_id", event.ActorID).
					Int("worker_id", id).
					Msg("audit event write failed")
			}
		}
	}
}

// NopRecorder discards events. Used where no trail is wanted (tests, seed).
type NopRecorder struct{}

func (NopRecorder) Record(domain.AuditEvent) {}
