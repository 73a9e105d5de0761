package queue

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/goleak"

	"github.com/only/profile-portal/internal/core/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type stubAttemptRepo struct {
	mu      sync.Mutex
	records []domain.AttemptRecord
	err     error
}

func (r *stubAttemptRepo) InsertAttempt(_ context.Context, rec *domain.AttemptRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.records = append(r.records, *rec)
	return nil
}

func (r *stubAttemptRepo) snapshot() []domain.AttemptRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.AttemptRecord(nil), r.records...)
}

func TestDispatcher_PersistsInOrderPerIdentifier(t *testing.T) {
	repo := &stubAttemptRepo{}
	d := NewDispatcher(3, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	for i := 0; i < 20; i++ {
		d.Record(domain.AttemptRecord{Identifier: "steve.jobs@example.com", Status: i})
		d.Record(domain.AttemptRecord{Identifier: fmt.Sprintf("user%d@example.com", i%4), Status: i})
	}

	cancel()
	d.Wait()

	got := repo.snapshot()
	if len(got) != 40 {
		t.Fatalf("expected 40 records, got %d", len(got))
	}

	last := -1
	for _, rec := range got {
		if rec.Identifier != "steve.jobs@example.com" {
			continue
		}
		if rec.Status <= last {
			t.Fatalf("records for one identifier persisted out of order: %d after %d", rec.Status, last)
		}
		last = rec.Status
	}
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(0, &stubAttemptRepo{}, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}

	a := d.shardIndex("a@example.com")
	for i := 0; i < 10; i++ {
		if d.shardIndex("a@example.com") != a {
			t.Fatalf("shard index must be deterministic")
		}
	}
	if a < 0 || a >= len(d.workers) {
		t.Fatalf("shard index %d out of range", a)
	}
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	repo := &stubAttemptRepo{}
	var buf bytes.Buffer
	d := NewDispatcher(1, repo, zerolog.New(&buf))

	// Workers are not started, so the single queue fills up.
	for i := 0; i < channelBuffer+5; i++ {
		d.Record(domain.AttemptRecord{Identifier: "a@example.com"})
	}
	if !strings.Contains(buf.String(), "attempt record dropped") {
		t.Fatalf("expected drop to be logged")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d.Start(ctx)
	d.Wait()

	if got := len(repo.snapshot()); got != channelBuffer {
		t.Fatalf("expected queued records to be drained on stop, got %d", got)
	}
}

func TestDispatcher_LogsWriteErrors(t *testing.T) {
	repo := &stubAttemptRepo{err: errors.New("mongo down")}
	var buf bytes.Buffer
	d := NewDispatcher(1, repo, zerolog.New(&buf))

	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)
	d.Record(domain.AttemptRecord{Identifier: "a@example.com", At: time.Now()})
	cancel()
	d.Wait()

	if !strings.Contains(buf.String(), "attempt record not persisted") {
		t.Fatalf("expected write failure to be logged, got %q", buf.String())
	}
}
