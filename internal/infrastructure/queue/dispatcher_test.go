package queue

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/clickerrealm/community-api/internal/core/domain"
)

type captureAuditRepo struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

func (r *captureAuditRepo) InsertEvent(_ context.Context, event *domain.AuditEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, *event)
	return nil
}

func (r *captureAuditRepo) ListRecent(context.Context, int) ([]*domain.AuditEvent, error) {
	return nil, nil
}

func (r *captureAuditRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func waitForEvents(t *testing.T, repo *captureAuditRepo, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for repo.count() < want {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %d events, got %d", want, repo.count())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestAuditDispatcher_DeliversEvents(t *testing.T) {
	repo := &captureAuditRepo{}
	d := NewAuditDispatcher(2, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Record(domain.AuditEvent{ID: "e1", ActorID: "u1", Action: domain.AuditLogin})
	d.Record(domain.AuditEvent{ID: "e2", ActorID: "u2", Action: domain.AuditLogin})

	waitForEvents(t, repo, 2)
}

func TestAuditDispatcher_PerActorOrdering(t *testing.T) {
	repo := &captureAuditRepo{}
	d := NewAuditDispatcher(4, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	const n = 50
	for i := 0; i < n; i++ {
		d.Record(domain.AuditEvent{ID: strconv.Itoa(i), ActorID: "u1", Detail: strconv.Itoa(i)})
	}

	waitForEvents(t, repo, n)

	repo.mu.Lock()
	defer repo.mu.Unlock()
	for i, e := range repo.events {
		if e.Detail != strconv.Itoa(i) {
			t.Fatalf("event %d out of order: got %q", i, e.Detail)
		}
	}
}

func TestAuditDispatcher_ShardIsStable(t *testing.T) {
	d := NewAuditDispatcher(4, &captureAuditRepo{}, zerolog.Nop())

	first := d.shardIndex("actor-42")
	for i := 0; i < 10; i++ {
		if d.shardIndex("actor-42") != first {
			t.Fatalf("shard index not deterministic")
		}
	}
}

func TestNopRecorder(t *testing.T) {
	// Must not panic or block.
	NopRecorder{}.Record(domain.AuditEvent{ID: "e1", ActorID: "u1"})
}
