package pesim

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Result struct {
	RunID      string
	Config     Configuration
	Histograms *Histograms
	Retained   []*EventType
	Fits       []GaussFit
	Duration   time.Duration
}

// RetainBuffer keeps the lowest-index events up to a fixed capacity, whatever
// the order in which they arrive.
type RetainBuffer struct {
	capacity int
	events   []*EventType
}

func NewRetainBuffer(capacity int) *RetainBuffer {
	return &RetainBuffer{capacity: capacity, events: make([]*EventType, 0, capacity)}
}

func (b *RetainBuffer) Offer(event *EventType) bool {
	if event.Index >= b.capacity {
		return false
	}
	b.events = append(b.events, event)
	return true
}

func (b *RetainBuffer) Events() []*EventType {
	sort.Slice(b.events, func(i, j int) bool {
		return b.events[i].Index < b.events[j].Index
	})
	return b.events
}

// Run simulates the configured number of events, fills the histograms and
// fits them. With more than one worker each worker owns the events whose
// index is congruent to its id and its own random stream. Events are filled
// in index order, so the histograms, including their floating-point
// moments, only depend on the seed and the number of workers.
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	hists, err := NewHistograms(s.config)
	if err != nil {
		return nil, err
	}
	retained := NewRetainBuffer(min(s.config.RetainEvents, s.config.NEvents))

	if s.config.NumWorkers == 1 {
		rng := NewRandom(s.config.Seed, 0)
		for i := 0; i < s.config.NEvents; i++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			event := s.GenerateEvent(rng, i)
			s.collect(event, hists, retained)
		}
	} else {
		if err := s.runParallel(ctx, hists, retained); err != nil {
			return nil, err
		}
	}

	result := &Result{
		RunID:      uuid.NewString(),
		Config:     s.config,
		Histograms: hists,
		Retained:   retained.Events(),
	}
	result.Fits = s.FitAll(hists)
	result.Duration = time.Since(start)
	if s.config.Verbosity > 0 {
		logger.Info(fmt.Sprintf("Run %s: %d events in %d ms", result.RunID, s.config.NEvents, result.Duration.Milliseconds()), "run")
	}
	return result, nil
}

func (s *Simulator) collect(event *EventType, hists *Histograms, retained *RetainBuffer) {
	hists.Fill(event)
	if !retained.Offer(event) {
		// Only retained events keep their samples
		event.Samples = nil
	}
	if s.config.Verbosity > 1 {
		logger.Info(fmt.Sprintf("Processed event %d: sum %.2f, added %.2f", event.Index, event.Sum, event.Added), "run")
	}
}

func (s *Simulator) runParallel(ctx context.Context, hists *Histograms, retained *RetainBuffer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	nWorkers := s.config.NumWorkers
	results := make([]chan *EventType, nWorkers)
	var wg sync.WaitGroup
	for w := 0; w < nWorkers; w++ {
		results[w] = make(chan *EventType, 100)
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			defer close(results[id])
			s.worker(ctx, id, results[id])
		}(w)
	}

	// Event i comes from worker i mod nWorkers, so reading the channels in
	// turn fills the histograms in index order.
	for i := 0; i < s.config.NEvents; i++ {
		event, ok := <-results[i%nWorkers]
		if !ok {
			break
		}
		s.collect(event, hists, retained)
	}
	err := ctx.Err()
	cancel()
	wg.Wait()
	return err
}

func (s *Simulator) worker(ctx context.Context, id int, results chan<- *EventType) {
	rng := NewRandom(s.config.Seed, uint64(id))
	for i := id; i < s.config.NEvents; i += s.config.NumWorkers {
		if ctx.Err() != nil {
			return
		}
		event := s.GenerateEvent(rng, i)
		select {
		case results <- event:
		case <-ctx.Done():
			return
		}
	}
}
