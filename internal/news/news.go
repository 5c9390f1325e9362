// Package news keeps market news in step with a user's investments.
package news

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/MrJamesThe3rd/finassist/internal/llm"
)

const (
	DefaultDelay   = 500 * time.Millisecond
	DefaultTimeout = 15 * time.Second
)

type Item struct {
	ID       string `json:"id"`
	Headline string `json:"headline"`
	Summary  string `json:"summary"`
	Source   string `json:"source"`
}

type Source interface {
	MarketNews(ctx context.Context, req llm.NewsRequest) ([]llm.NewsItem, error)
}

// Debouncer coalesces bursts of Trigger calls into a single fetch made with
// the latest request once the burst has been quiet for the delay. A newer
// trigger cancels any fetch still in flight, and only the newest fetch may
// publish.
type Debouncer struct {
	source  Source
	publish func([]Item)
	delay   time.Duration
	timeout time.Duration
	now     func() time.Time

	mu       sync.Mutex
	gen      uint64
	timer    *time.Timer
	cancel   context.CancelFunc
	fetching bool
	stopped  bool
}

type Option func(*Debouncer)

func WithDelay(d time.Duration) Option {
	return func(db *Debouncer) { db.delay = d }
}

func WithTimeout(d time.Duration) Option {
	return func(db *Debouncer) { db.timeout = d }
}

func WithClock(now func() time.Time) Option {
	return func(db *Debouncer) { db.now = now }
}

// NewDebouncer calls publish with every accepted result. publish runs while
// the debouncer holds its lock, so it must not call back into it.
func NewDebouncer(source Source, publish func([]Item), opts ...Option) *Debouncer {
	d := &Debouncer{
		source:  source,
		publish: publish,
		delay:   DefaultDelay,
		timeout: DefaultTimeout,
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

func (d *Debouncer) Trigger(req llm.NewsRequest) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.gen++
	d.resetLocked()

	if len(req.Investments) == 0 {
		d.publish([]Item{})
		return
	}

	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() { d.fetch(gen, req) })
}

// Fetching reports whether a fetch is in flight.
func (d *Debouncer) Fetching() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.fetching
}

// Stop cancels pending work. Later triggers are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	d.gen++
	d.resetLocked()
}

func (d *Debouncer) resetLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}

	d.fetching = false
}

func (d *Debouncer) fetch(gen uint64, req llm.NewsRequest) {
	d.mu.Lock()
	if gen != d.gen {
		d.mu.Unlock()
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	d.cancel = cancel
	d.fetching = true
	d.mu.Unlock()

	defer cancel()

	items, err := d.source.MarketNews(ctx, req)

	d.mu.Lock()
	defer d.mu.Unlock()

	if gen != d.gen {
		return
	}

	d.fetching = false
	d.cancel = nil

	if err != nil {
		slog.Error("failed to fetch market news", "error", err)

		items = nil
	}

	d.publish(assignIDs(items, d.now()))
}

func assignIDs(items []llm.NewsItem, at time.Time) []Item {
	out := make([]Item, 0, len(items))

	for i, it := range items {
		out = append(out, Item{
			ID:       fmt.Sprintf("news-%d-%d", at.UnixMilli(), i),
			Headline: it.Headline,
			Summary:  it.Summary,
			Source:   it.Source,
		})
	}

	return out
}
