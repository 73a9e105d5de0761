package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/only/profile-portal/internal/api/metrics"
	"github.com/only/profile-portal/internal/core/domain"
	"github.com/only/profile-portal/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher is the attempt journal. It routes records to a fixed set of
// workers by hashing the identifier, so one user's attempts are persisted in
// order.
type Dispatcher struct {
	workers []chan domain.AttemptRecord
	repo    ports.AttemptRepository
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, repo ports.AttemptRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.AttemptRecord, numWorkers),
		repo:    repo,
		log:     log.With().Str("component", "journal").Logger(),
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AttemptRecord, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers drain what is already queued
// and stop when ctx is cancelled; Wait blocks until they have.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Record queues rec on the worker responsible for its identifier. It never
// blocks: when that worker's queue is full the record is dropped.
func (d *Dispatcher) Record(rec domain.AttemptRecord) {
	idx := d.shardIndex(rec.Identifier)
	select {
	case d.workers[idx] <- rec:
		metrics.JournalQueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
	default:
		metrics.JournalDroppedTotal.Inc()
		d.log.Warn().
			Str("login", rec.Identifier).
			Int("worker_id", idx).
			Msg("journal queue full, attempt record dropped")
	}
}

// shardIndex maps an identifier deterministically to a worker index.
func (d *Dispatcher) shardIndex(identifier string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(identifier))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AttemptRecord) {
	defer d.wg.Done()
	depth := metrics.JournalQueueDepth.WithLabelValues(strconv.Itoa(id))

	for {
		select {
		case <-ctx.Done():
			d.drain(id, ch, depth)
			return
		case rec := <-ch:
			depth.Dec()
			d.persist(ctx, id, rec)
		}
	}
}

// drain persists what is still queued using a context that outlives ctx.
func (d *Dispatcher) drain(id int, ch <-chan domain.AttemptRecord, depth prometheus.Gauge) {
	for {
		select {
		case rec := <-ch:
			depth.Dec()
			d.persist(context.Background(), id, rec)
		default:
			return
		}
	}
}

func (d *Dispatcher) persist(ctx context.Context, id int, rec domain.AttemptRecord) {
	if err := d.repo.InsertAttempt(ctx, &rec); err != nil {
		metrics.JournalWriteErrorsTotal.Inc()
		d.log.Error().Err(err).
			Str("login", rec.Identifier).
			Int("worker_id", id).
			Msg("attempt record not persisted")
	}
}

var _ ports.AttemptJournal = (*Dispatcher)(nil)
