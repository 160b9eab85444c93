package app

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// PollScheduler invokes the reconciler on a fixed interval when the service
// is not driven by an external cron. Start is a no-op for a zero interval.
//
// Ticks do not wait for a still-running cycle; overlap is possible and
// accepted, see Reconciler.
type PollScheduler struct {
	Reconciler *Reconciler
	Interval   time.Duration
	Log        *slog.Logger

	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex
}

func NewPollScheduler(r *Reconciler, interval time.Duration, log *slog.Logger) *PollScheduler {
	return &PollScheduler{Reconciler: r, Interval: interval, Log: log}
}

func (p *PollScheduler) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Interval <= 0 || p.ticker != nil {
		return
	}

	p.ticker = time.NewTicker(p.Interval)
	p.stop = make(chan struct{})
	p.wg.Add(1)

	go func() {
		defer p.wg.Done()
		p.Log.Info("poll scheduler started", "interval", p.Interval)
		for {
			select {
			case <-p.ticker.C:
				p.runOnce()
			case <-p.stop:
				return
			}
		}
	}()
}

func (p *PollScheduler) Stop() {
	p.mu.Lock()
	if p.ticker == nil {
		p.mu.Unlock()
		return
	}
	p.ticker.Stop()
	close(p.stop)
	p.ticker = nil
	p.mu.Unlock()
	p.wg.Wait()
}

func (p *PollScheduler) runOnce() {
	if _, err := p.Reconciler.Run(context.Background()); err != nil {
		p.Log.Error("scheduled reconcile failed", "error", err)
	}
}
