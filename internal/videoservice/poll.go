package videoservice

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

const DefaultPollInterval = 5 * time.Second

type PollOptions struct {
	Interval time.Duration
}

// Poller checks a video's status on a fixed cadence until the backend
// reports it processed or Stop is called.
type Poller struct {
	client   *Client
	videoID  string
	onUpdate func(Result)
	interval time.Duration

	stopped   atomic.Bool
	stopOnce  sync.Once
	stop      chan struct{}
	done      chan struct{}
	ticks     sync.WaitGroup
	deliverMu sync.Mutex
}

// PollProcessingStatus starts polling videoID and returns immediately.
// Each tick runs in its own goroutine, so a slow backend can produce
// overlapping ticks. Updates reach onUpdate one at a time; once Stop has been
// observed no tick starts and no result is delivered, though a delivery
// already under way when Stop is called still completes. A tick error is
// logged and polling continues.
func (c *Client) PollProcessingStatus(ctx context.Context, videoID string, onUpdate func(Result), opts PollOptions) *Poller {
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	p := &Poller{
		client:   c,
		videoID:  videoID,
		onUpdate: onUpdate,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}

	go p.run(ctx)

	return p
}

// Stop prevents further ticks and updates. It does not abort a request that
// is already in flight. Safe to call more than once.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() {
		p.stopped.Store(true)
		close(p.stop)
	})
}

// Done is closed after polling has ended and every started tick has returned.
func (p *Poller) Done() <-chan struct{} {
	return p.done
}

func (p *Poller) Interval() time.Duration {
	return p.interval
}

func (p *Poller) run(ctx context.Context) {
	defer func() {
		p.ticks.Wait()
		close(p.done)
	}()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	// in-flight checks outlive cancellation of the caller's context
	tickCtx := context.WithoutCancel(ctx)

	for {
		select {
		case <-ctx.Done():
			p.Stop()
			return
		case <-p.stop:
			return
		case <-ticker.C:
			if p.stopped.Load() {
				return
			}
			p.ticks.Add(1)
			go p.tick(tickCtx)
		}
	}
}

func (p *Poller) tick(ctx context.Context) {
	defer p.ticks.Done()

	result, err := p.client.CheckVideoStatus(ctx, p.videoID)
	if err != nil {
		p.client.logger.Warn("status poll failed", "video_id", p.videoID, "error", err)
		return
	}

	p.deliver(result)
}

func (p *Poller) deliver(result Result) {
	p.deliverMu.Lock()
	defer p.deliverMu.Unlock()

	if p.stopped.Load() {
		return
	}

	if p.onUpdate != nil {
		p.onUpdate(result)
	}

	if result.IsProcessed() {
		p.client.logger.Debug("video processed, polling stopped", "video_id", p.videoID)
		p.Stop()
	}
}
