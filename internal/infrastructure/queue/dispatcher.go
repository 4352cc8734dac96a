package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/marketplace/identity-api/internal/api/metrics"
	"github.com/marketplace/identity-api/internal/core/domain"
	"github.com/marketplace/identity-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	writeTimeout   = 5 * time.Second
)

// Dispatcher fans login events out to a fixed set of workers that persist
// them. Events are sharded by identifier fingerprint (or user id) so the
// audit trail of one account is written in order.
type Dispatcher struct {
	workers []chan domain.LoginEvent
	repo    ports.LoginEventRepository
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, repo ports.LoginEventRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.LoginEvent, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.LoginEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers drain their queue and stop
// when ctx is cancelled; Wait blocks until they are done.
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

// Record enqueues an event without blocking. When the worker queue is full
// the event is dropped and counted.
func (d *Dispatcher) Record(event domain.LoginEvent) {
	idx := d.shardIndex(shardKey(event))
	select {
	case d.workers[idx] <- event:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
	default:
		metrics.AuditEventsDroppedTotal.Inc()
		d.log.Warn().
			Str("outcome", string(event.Outcome)).
			Int("worker_id", idx).
			Msg("audit queue full, event dropped")
	}
}

func shardKey(event domain.LoginEvent) string {
	if event.Fingerprint != "" {
		return event.Fingerprint
	}
	return event.UserID
}

// shardIndex maps a key deterministically to a worker index.
func (d *Dispatcher) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.LoginEvent) {
	defer d.wg.Done()
	label := strconv.Itoa(id)

	for {
		select {
		case <-ctx.Done():
			for {
				select {
				case event := <-ch:
					d.write(label, event)
				default:
					return
				}
			}
		case event := <-ch:
			d.write(label, event)
		}
	}
}

func (d *Dispatcher) write(label string, event domain.LoginEvent) {
	metrics.AuditQueueDepth.WithLabelValues(label).Dec()

	// The request context is gone by now; each write gets its own deadline.
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	if err := d.repo.Insert(ctx, &event); err != nil {
		metrics.AuditWriteErrorsTotal.Inc()
		d.log.Error().Err(err).
			Str("outcome", string(event.Outcome)).
			Str("worker_id", label).
			Msg("login event persistence failed")
	}
}
