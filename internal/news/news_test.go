package news_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/finassist/internal/i18n"
	"github.com/MrJamesThe3rd/finassist/internal/llm"
	"github.com/MrJamesThe3rd/finassist/internal/news"
)

type fakeSource struct {
	mu       sync.Mutex
	requests []llm.NewsRequest
	wait     chan struct{}
	err      error
}

func (f *fakeSource) MarketNews(ctx context.Context, req llm.NewsRequest) ([]llm.NewsItem, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	wait := f.wait
	f.mu.Unlock()

	if wait != nil {
		select {
		case <-wait:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if f.err != nil {
		return nil, f.err
	}

	out := make([]llm.NewsItem, 0, len(req.Investments))
	for _, inv := range req.Investments {
		out = append(out, llm.NewsItem{Headline: inv.Name + " rallies", Summary: "s", Source: "wire"})
	}

	return out, nil
}

func (f *fakeSource) calls() []llm.NewsRequest {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]llm.NewsRequest(nil), f.requests...)
}

type collector struct {
	ch chan []news.Item
}

func newCollector() *collector {
	return &collector{ch: make(chan []news.Item, 10)}
}

func (c *collector) publish(items []news.Item) {
	c.ch <- items
}

func (c *collector) next(t *testing.T) []news.Item {
	t.Helper()

	select {
	case items := <-c.ch:
		return items
	case <-time.After(3 * time.Second):
		t.Fatal("no news published")
		return nil
	}
}

func invs(names ...string) llm.NewsRequest {
	req := llm.NewsRequest{Language: i18n.EN}
	for _, n := range names {
		req.Investments = append(req.Investments, llm.Investment{Name: n, Type: "Stocks"})
	}

	return req
}

func TestDebouncer_CoalescesBurst(t *testing.T) {
	src := &fakeSource{}
	out := newCollector()

	d := news.NewDebouncer(src, out.publish, news.WithClock(func() time.Time {
		return time.UnixMilli(1760000000000)
	}))
	defer d.Stop()

	d.Trigger(invs("PETR4"))
	time.Sleep(200 * time.Millisecond)
	d.Trigger(invs("PETR4", "VALE3"))

	items := out.next(t)
	require.Len(t, items, 2)
	assert.Equal(t, "news-1760000000000-0", items[0].ID)
	assert.Equal(t, "news-1760000000000-1", items[1].ID)
	assert.Equal(t, "VALE3 rallies", items[1].Headline)

	time.Sleep(news.DefaultDelay + 100*time.Millisecond)

	calls := src.calls()
	require.Len(t, calls, 1)
	assert.Len(t, calls[0].Investments, 2)
}

func TestDebouncer_NewTriggerCancelsInFlightFetch(t *testing.T) {
	src := &fakeSource{wait: make(chan struct{})}
	out := newCollector()

	d := news.NewDebouncer(src, out.publish, news.WithDelay(10*time.Millisecond))
	defer d.Stop()

	d.Trigger(invs("OLD"))

	require.Eventually(t, d.Fetching, time.Second, 5*time.Millisecond)

	src.mu.Lock()
	src.wait = nil
	src.mu.Unlock()

	d.Trigger(invs("NEW"))

	items := out.next(t)
	require.Len(t, items, 1)
	assert.Equal(t, "NEW rallies", items[0].Headline)

	select {
	case stale := <-out.ch:
		t.Fatalf("stale result published: %v", stale)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestDebouncer_EmptyInvestmentsPublishesNothingFetched(t *testing.T) {
	src := &fakeSource{}
	out := newCollector()

	d := news.NewDebouncer(src, out.publish, news.WithDelay(10*time.Millisecond))
	defer d.Stop()

	d.Trigger(invs())

	assert.Empty(t, out.next(t))
	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, src.calls())
}

func TestDebouncer_ErrorPublishesEmpty(t *testing.T) {
	src := &fakeSource{err: errors.New("upstream down")}
	out := newCollector()

	d := news.NewDebouncer(src, out.publish, news.WithDelay(10*time.Millisecond))
	defer d.Stop()

	d.Trigger(invs("BTC"))

	items := out.next(t)
	assert.NotNil(t, items)
	assert.Empty(t, items)
	assert.False(t, d.Fetching())
}

func TestDebouncer_StopDropsPending(t *testing.T) {
	src := &fakeSource{}
	out := newCollector()

	d := news.NewDebouncer(src, out.publish, news.WithDelay(20*time.Millisecond))
	d.Trigger(invs("BTC"))
	d.Stop()
	d.Trigger(invs("ETH"))

	time.Sleep(100 * time.Millisecond)
	assert.Empty(t, src.calls())
	assert.Empty(t, out.ch)
}
