package workers

import (
	"context"
	"sync"
	"time"
)

// Workers runs a fixed set of workers, each in its own goroutine.
type Workers struct {
	workers []Worker

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New groups workers. Nil entries are skipped.
func New(workers ...Worker) *Workers {
	w := &Workers{}
	for _, worker := range workers {
		if worker != nil {
			w.workers = append(w.workers, worker)
		}
	}
	return w
}

// Start stops a previous run, then launches every worker. The workers exit
// when ctx is cancelled or Stop is called.
func (w *Workers) Start(ctx context.Context) {
	w.Stop()

	w.mu.Lock()
	defer w.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	for _, worker := range w.workers {
		w.wg.Add(1)
		go func(worker Worker) {
			defer w.wg.Done()
			worker.Run(runCtx)
		}(worker)
	}
}

// Stop cancels the running workers and blocks until all of them returned.
// Safe to call when nothing runs.
func (w *Workers) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	w.cancel = nil
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	w.wg.Wait()
}

// Periodic calls fn every interval until the context is done.
type Periodic struct {
	interval time.Duration
	fn       func(ctx context.Context)
}

// NewPeriodic returns a periodic worker. A non-positive interval disables it:
// Run then just waits for cancellation.
func NewPeriodic(interval time.Duration, fn func(ctx context.Context)) *Periodic {
	return &Periodic{interval: interval, fn: fn}
}

// Run implements [Worker].
func (p *Periodic) Run(ctx context.Context) {
	if p.interval <= 0 {
		<-ctx.Done()
		return
	}

	t := time.NewTicker(p.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			p.fn(ctx)
		}
	}
}

// Debouncer calls fn once the triggers have been quiet for delay. Triggers
// arriving while the timer is armed push the deadline back, so a burst of
// triggers results in a single call.
type Debouncer struct {
	delay time.Duration
	fn    func(ctx context.Context)
	kick  chan struct{}
}

// NewDebouncer returns an idle debouncer.
func NewDebouncer(delay time.Duration, fn func(ctx context.Context)) *Debouncer {
	return &Debouncer{delay: delay, fn: fn, kick: make(chan struct{}, 1)}
}

// Trigger (re)arms the timer. It never blocks.
func (d *Debouncer) Trigger() {
	select {
	case d.kick <- struct{}{}:
	default:
	}
}

// Run implements [Worker].
func (d *Debouncer) Run(ctx context.Context) {
	timer := time.NewTimer(d.delay)
	timer.Stop()
	defer timer.Stop()

	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case <-d.kick:
			timer.Reset(d.delay)
			fire = timer.C
		case <-fire:
			fire = nil
			d.fn(ctx)
		}
	}
}

// IdleTimer calls fn after timeout without activity. It fires at most once
// per idle period and re-arms on the next Touch.
type IdleTimer struct {
	timeout time.Duration
	fn      func(ctx context.Context)
	touch   chan struct{}
}

// NewIdleTimer returns an idle timer. A non-positive timeout disables it.
func NewIdleTimer(timeout time.Duration, fn func(ctx context.Context)) *IdleTimer {
	return &IdleTimer{timeout: timeout, fn: fn, touch: make(chan struct{}, 1)}
}

// Touch records user activity. It never blocks.
func (i *IdleTimer) Touch() {
	select {
	case i.touch <- struct{}{}:
	default:
	}
}

// Run implements [Worker]. The timer is armed when Run starts.
func (i *IdleTimer) Run(ctx context.Context) {
	if i.timeout <= 0 {
		<-ctx.Done()
		return
	}

	timer := time.NewTimer(i.timeout)
	defer timer.Stop()

	fire := timer.C
	for {
		select {
		case <-ctx.Done():
			return
		case <-i.touch:
			timer.Reset(i.timeout)
			fire = timer.C
		case <-fire:
			fire = nil
			i.fn(ctx)
		}
	}
}
