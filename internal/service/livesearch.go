package service

import (
	"context"
	"sync"
	"time"

	"github.com/weddingwander/weddingwander/internal/model"
)

// LiveSearch re-evaluates a catalog filter once input has been quiet for a
// fixed delay. Each Update restarts the delay.
type LiveSearch struct {
	catalog  *Catalog
	delay    time.Duration
	onResult func([]model.Event, error)

	mu     sync.Mutex
	timer  *time.Timer
	seq    uint64
	closed bool
}

// NewLiveSearch constructs a LiveSearch delivering results to onResult.
func NewLiveSearch(catalog *Catalog, delay time.Duration, onResult func([]model.Event, error)) *LiveSearch {
	return &LiveSearch{catalog: catalog, delay: delay, onResult: onResult}
}

// Update schedules evaluation of f after the delay, replacing any pending one.
func (l *LiveSearch) Update(f model.Filter) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	if l.timer != nil {
		l.timer.Stop()
	}
	l.seq++
	seq := l.seq
	l.timer = time.AfterFunc(l.delay, func() { l.fire(seq, f) })
}

func (l *LiveSearch) fire(seq uint64, f model.Filter) {
	l.mu.Lock()
	// A newer Update or Close superseded this evaluation.
	stale := l.closed || seq != l.seq
	l.mu.Unlock()
	if stale {
		return
	}
	events, err := l.catalog.Filter(context.Background(), f)
	l.onResult(events, err)
}

// Close cancels any pending evaluation. Later updates are ignored.
func (l *LiveSearch) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	if l.timer != nil {
		l.timer.Stop()
	}
}
