package store

import (
	"context"
	"log"
	"sync"
	"time"

	"repair-backend/internal/metrics"
	"repair-backend/internal/models"
)

// RecordStore holds the authoritative in-memory working set. All reads go
// through LoadAll (defensive copy) and all writes through ReplaceAll (full
// snapshot swap). There is no row-level write path.
//
// Durable flushes are fire-and-forget: ReplaceAll returns as soon as the
// in-memory swap is done. A single flusher goroutine serializes flushes so
// two clear-then-reinsert cycles can never interleave; the signal channel is
// buffered at one, so intermediate flush requests coalesce — each flush
// carries the latest full snapshot anyway.
type RecordStore struct {
	mu      sync.RWMutex
	snap    models.Snapshot
	durable DurableStore

	flushCh chan struct{}
	done    chan struct{}
	stopped sync.Once
	wg      sync.WaitGroup
}

// New builds a RecordStore backed by durable (nil for memory-only mode).
// The initial snapshot is loaded from the durable store; a failed load is a
// warning and the store starts empty rather than blocking startup.
func New(durable DurableStore) *RecordStore {
	s := &RecordStore{
		durable: durable,
		flushCh: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}

	if durable != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		snap, err := durable.Load(ctx)
		if err != nil {
			log.Printf("[Store] initial load failed, starting with empty snapshot: %v", err)
		} else {
			s.snap = snap
			log.Printf("[Store] loaded %d services, %d laptops, %d vendors",
				len(snap.Services), len(snap.Laptops), len(snap.Vendors))
		}

		s.wg.Add(1)
		go s.flushLoop()
	}

	return s
}

// LoadAll returns a deep copy of the working set.
func (s *RecordStore) LoadAll() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Clone()
}

// Export returns a read-only snapshot for backup. Never mutates state.
func (s *RecordStore) Export() models.Snapshot {
	return s.LoadAll()
}

// ReplaceAll atomically swaps the working set and schedules a durable flush.
// The caller observes the new state immediately; the flush is not awaited.
func (s *RecordStore) ReplaceAll(snap models.Snapshot) {
	s.mu.Lock()
	s.snap = snap.Clone()
	s.mu.Unlock()

	s.requestFlush()
}

// Flush performs a synchronous durable save of the current snapshot.
// Used at shutdown and by the backup path; normal mutations never call it.
func (s *RecordStore) Flush(ctx context.Context) error {
	if s.durable == nil {
		return nil
	}
	return s.durable.Save(ctx, s.LoadAll())
}

// Close stops the flusher after draining any pending flush.
func (s *RecordStore) Close() {
	s.stopped.Do(func() { close(s.done) })
	s.wg.Wait()
}

func (s *RecordStore) requestFlush() {
	if s.durable == nil {
		return
	}
	select {
	case s.flushCh <- struct{}{}:
	default:
		// a flush is already queued; it will pick up the latest snapshot
	}
}

func (s *RecordStore) flushLoop() {
	defer s.wg.Done()
	for {
		select {
		case <-s.done:
			// drain one last pending request so the final mutation lands
			select {
			case <-s.flushCh:
				s.flushOnce()
			default:
			}
			return
		case <-s.flushCh:
			s.flushOnce()
		}
	}
}

func (s *RecordStore) flushOnce() {
	snap := s.LoadAll()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	start := time.Now()
	err := s.durable.Save(ctx, snap)
	metrics.SnapshotFlushDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		// Non-fatal: the in-memory snapshot is already updated and usable.
		// No retry queue; the next mutation's flush carries this state anyway.
		metrics.SnapshotFlushFailures.Inc()
		log.Printf("[Store] durable flush failed, continuing in memory: %v", err)
		return
	}
	metrics.SnapshotFlushesTotal.Inc()
}
