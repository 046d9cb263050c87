package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/five82/statekit/internal/logtail"
	"github.com/five82/statekit/internal/model"
	"github.com/five82/statekit/internal/source"
)

const (
	defaultPollInterval = 2 * time.Second
	maxBackoff          = 30 * time.Second
	fetchTimeout        = 5 * time.Second
)

// Poller reads the log tail and the optional remote source on a fixed
// cadence and hands the result to send as a store payload. It never touches
// the store itself.
type Poller struct {
	tailer   *logtail.Tailer
	fetcher  source.Fetcher
	send     func(model.State)
	interval time.Duration
	logger   *slog.Logger
	now      func() time.Time

	// OnFailure runs after every failed poll. Optional.
	OnFailure func()

	failures int
}

// NewPoller returns a Poller. fetcher may be nil. A non-positive interval
// uses the default.
func NewPoller(tailer *logtail.Tailer, fetcher source.Fetcher, send func(model.State), interval time.Duration, logger *slog.Logger) *Poller {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Poller{
		tailer:   tailer,
		fetcher:  fetcher,
		send:     send,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
}

// Start runs the Poller on a new goroutine until ctx is cancelled.
func (p *Poller) Start(ctx context.Context) {
	go p.Run(ctx)
}

// Run polls immediately, then after every interval, backing off while polls
// fail. It returns when ctx is cancelled.
func (p *Poller) Run(ctx context.Context) {
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		p.Poll(ctx)
		timer.Reset(calculateBackoff(p.failures, p.interval))
	}
}

// Poll runs one poll and sends its payload.
func (p *Poller) Poll(ctx context.Context) {
	payload, err := p.collect(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		p.failures++
		p.logger.Warn("poll failed", "error", err, "failures", p.failures)
		if p.OnFailure != nil {
			p.OnFailure()
		}
	} else {
		if p.failures > 0 {
			p.logger.Info("poll recovered", "after_failures", p.failures)
		}
		p.failures = 0
	}
	p.send(payload)
}

func (p *Poller) collect(ctx context.Context) (model.State, error) {
	at := p.now()

	var lines []string
	if p.tailer != nil {
		tail, changed, err := p.tailer.Poll()
		if err != nil {
			return model.PollFailed(at, err), err
		}
		if changed {
			lines = tail
		}
	}

	var remote map[string]any
	if p.fetcher != nil {
		fetchCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
		doc, err := p.fetcher.Fetch(fetchCtx)
		cancel()
		if err != nil {
			err = fmt.Errorf("fetch remote: %w", err)
			payload := model.PollFailed(at, err)
			if lines != nil {
				payload[model.KeyLogs] = lines
			}
			return payload, err
		}
		remote = doc
		if remote == nil {
			remote = map[string]any{}
		}
	}

	return model.PollSucceeded(at, lines, remote), nil
}

// calculateBackoff doubles base for every consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	d := base
	for i := 0; i < failures; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}
