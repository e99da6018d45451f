package videoservice

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type updateRecorder struct {
	mu      sync.Mutex
	updates []Result
}

func (r *updateRecorder) record(result Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, result)
}

func (r *updateRecorder) snapshot() []Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Result(nil), r.updates...)
}

// statusServer answers the first n requests with statuses[i] and every
// later one with the last entry. A zero-length status means HTTP 500.
func statusServer(t *testing.T, hits *int32, statuses ...string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := int(atomic.AddInt32(hits, 1))
		idx := min(n-1, len(statuses)-1)
		status := statuses[idx]
		if status == "" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = fmt.Fprintf(w, `{"video":{"id":"v1","status":%q,"tick":%d}}`, status, n)
	}))
}

func waitDone(t *testing.T, p *Poller, timeout time.Duration) {
	t.Helper()
	select {
	case <-p.Done():
	case <-time.After(timeout):
		t.Fatal("poller did not finish in time")
	}
}

func TestPollStopsOnProcessed(t *testing.T) {
	var hits int32
	server := statusServer(t, &hits, "processing", "processing", "processing", "processed")
	defer server.Close()

	interval := 25 * time.Millisecond
	c := newTestClient(server.URL)
	rec := &updateRecorder{}

	p := c.PollProcessingStatus(context.Background(), "v1", rec.record, PollOptions{Interval: interval})
	waitDone(t, p, 2*time.Second)

	hitsAtDone := atomic.LoadInt32(&hits)
	time.Sleep(5 * interval)

	updates := rec.snapshot()
	if len(updates) != 4 {
		t.Fatalf("updates = %d, want 4", len(updates))
	}
	for i, u := range updates[:3] {
		if u.VideoStatus() != "processing" {
			t.Errorf("update %d status = %q, want processing", i, u.VideoStatus())
		}
	}
	if updates[3].VideoStatus() != StatusProcessed {
		t.Errorf("last status = %q, want processed", updates[3].VideoStatus())
	}
	if got := atomic.LoadInt32(&hits); got != hitsAtDone {
		t.Errorf("requests after done: %d, want %d", got, hitsAtDone)
	}
}

func TestPollStopBetweenTicks(t *testing.T) {
	var hits int32
	server := statusServer(t, &hits, "processing")
	defer server.Close()

	second := make(chan struct{})
	var count int32

	c := newTestClient(server.URL)
	p := c.PollProcessingStatus(context.Background(), "v1", func(Result) {
		if atomic.AddInt32(&count, 1) == 2 {
			close(second)
		}
	}, PollOptions{Interval: 60 * time.Millisecond})

	select {
	case <-second:
	case <-time.After(2 * time.Second):
		t.Fatal("second update never arrived")
	}
	p.Stop()
	waitDone(t, p, time.Second)

	time.Sleep(200 * time.Millisecond)
	if got := atomic.LoadInt32(&count); got != 2 {
		t.Errorf("updates = %d, want 2", got)
	}
}

func TestPollStopIsIdempotent(t *testing.T) {
	var hits int32
	server := statusServer(t, &hits, "processing")
	defer server.Close()

	c := newTestClient(server.URL)
	p := c.PollProcessingStatus(context.Background(), "v1", nil, PollOptions{Interval: time.Hour})

	p.Stop()
	p.Stop()
	waitDone(t, p, time.Second)
	p.Stop()

	if got := atomic.LoadInt32(&hits); got != 0 {
		t.Errorf("requests = %d, want 0", got)
	}
}

func TestPollStopAfterProcessed(t *testing.T) {
	var hits int32
	server := statusServer(t, &hits, "processed")
	defer server.Close()

	c := newTestClient(server.URL)
	rec := &updateRecorder{}
	p := c.PollProcessingStatus(context.Background(), "v1", rec.record, PollOptions{Interval: 20 * time.Millisecond})
	waitDone(t, p, 2*time.Second)

	p.Stop()
	if got := len(rec.snapshot()); got != 1 {
		t.Errorf("updates = %d, want 1", got)
	}
}

func TestPollSwallowsTickErrors(t *testing.T) {
	var hits int32
	server := statusServer(t, &hits, "", "", "processed")
	defer server.Close()

	c := newTestClient(server.URL)
	rec := &updateRecorder{}
	p := c.PollProcessingStatus(context.Background(), "v1", rec.record, PollOptions{Interval: 25 * time.Millisecond})
	waitDone(t, p, 2*time.Second)

	updates := rec.snapshot()
	if len(updates) != 1 {
		t.Fatalf("updates = %d, want 1", len(updates))
	}
	if !updates[0].IsProcessed() {
		t.Errorf("status = %q, want processed", updates[0].VideoStatus())
	}
	if got := atomic.LoadInt32(&hits); got < 3 {
		t.Errorf("requests = %d, want at least 3", got)
	}
}

func TestPollContextCancel(t *testing.T) {
	var hits int32
	server := statusServer(t, &hits, "processing")
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	c := newTestClient(server.URL)
	var count int32
	p := c.PollProcessingStatus(ctx, "v1", func(Result) { atomic.AddInt32(&count, 1) }, PollOptions{Interval: 20 * time.Millisecond})

	time.Sleep(70 * time.Millisecond)
	cancel()
	waitDone(t, p, time.Second)

	after := atomic.LoadInt32(&count)
	time.Sleep(100 * time.Millisecond)
	if got := atomic.LoadInt32(&count); got != after {
		t.Errorf("updates grew after cancel: %d -> %d", after, got)
	}
}

func TestPollStopFromCallback(t *testing.T) {
	var hits int32
	server := statusServer(t, &hits, "processing")
	defer server.Close()

	c := newTestClient(server.URL)
	var count int32
	var p *Poller
	ready := make(chan struct{})
	p = c.PollProcessingStatus(context.Background(), "v1", func(Result) {
		<-ready
		atomic.AddInt32(&count, 1)
		p.Stop()
	}, PollOptions{Interval: 20 * time.Millisecond})
	close(ready)

	waitDone(t, p, 2*time.Second)
	if got := atomic.LoadInt32(&count); got != 1 {
		t.Errorf("updates = %d, want 1", got)
	}
}

func TestPollDefaultInterval(t *testing.T) {
	c := newTestClient("http://127.0.0.1:1")
	p := c.PollProcessingStatus(context.Background(), "v1", nil, PollOptions{})
	defer p.Stop()

	if p.Interval() != DefaultPollInterval {
		t.Errorf("Interval() = %v, want %v", p.Interval(), DefaultPollInterval)
	}
}
