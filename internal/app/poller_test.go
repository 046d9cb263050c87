package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/five82/statekit/internal/logtail"
	"github.com/five82/statekit/internal/model"
)

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 2 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 2 * time.Second},
		{"negative failures", -1, 2 * time.Second},
		{"one failure", 1, 4 * time.Second},
		{"two failures", 2, 8 * time.Second},
		{"three failures", 3, 16 * time.Second},
		{"four failures capped", 4, 30 * time.Second},
		{"many failures capped", 10, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, baseInterval, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	baseInterval := 2 * time.Second
	for failures := 0; failures <= 100; failures++ {
		got := calculateBackoff(failures, baseInterval)
		if got > maxBackoff {
			t.Errorf("calculateBackoff(%d, %v) = %v, exceeds maxBackoff %v", failures, baseInterval, got, maxBackoff)
		}
	}
}

type fakeFetcher struct {
	doc map[string]any
	err error
}

func (f fakeFetcher) Fetch(context.Context) (map[string]any, error) {
	return f.doc, f.err
}

type sink struct {
	payloads []model.State
}

func (s *sink) send(p model.State) {
	s.payloads = append(s.payloads, p)
}

func (s *sink) last(t *testing.T) model.State {
	t.Helper()
	if len(s.payloads) == 0 {
		t.Fatalf("no payload sent")
	}
	return s.payloads[len(s.payloads)-1]
}

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestPoller(t *testing.T, path string, fetcher fakeFetcher, useFetcher bool) (*Poller, *sink) {
	t.Helper()
	out := &sink{}
	var p *Poller
	if useFetcher {
		p = NewPoller(logtail.NewTailer(path, 10), fetcher, out.send, time.Second, nil)
	} else {
		p = NewPoller(logtail.NewTailer(path, 10), nil, out.send, time.Second, nil)
	}
	p.now = func() time.Time { return fixedNow }
	return p, out
}

func TestPoller_SendsTailOnlyWhenChanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	if err := os.WriteFile(path, []byte("one\ntwo\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	p, out := newTestPoller(t, path, fakeFetcher{}, false)

	p.Poll(context.Background())
	first := out.last(t)
	if got := model.Logs(first); len(got) != 2 || got[1] != "two" {
		t.Fatalf("logs = %v, want [one two]", got)
	}
	if got := model.Poll(first); !got.At.Equal(fixedNow) || got.Error != "" {
		t.Fatalf("poll status = %+v", got)
	}

	p.Poll(context.Background())
	second := out.last(t)
	if _, ok := second[model.KeyLogs]; ok {
		t.Fatalf("unchanged file resent logs: %v", second)
	}
	if _, ok := second[model.KeyRemote]; ok {
		t.Fatalf("payload carries remote without a fetcher: %v", second)
	}
}

func TestPoller_MissingFileClearsLogs(t *testing.T) {
	p, out := newTestPoller(t, filepath.Join(t.TempDir(), "missing.log"), fakeFetcher{}, false)

	p.Poll(context.Background())
	logs, ok := out.last(t)[model.KeyLogs].([]string)
	if !ok || len(logs) != 0 {
		t.Fatalf("logs = %#v, want an empty slice", out.last(t)[model.KeyLogs])
	}
}

func TestPoller_IncludesRemoteDocument(t *testing.T) {
	doc := map[string]any{"queue": float64(3)}
	p, out := newTestPoller(t, filepath.Join(t.TempDir(), "x.log"), fakeFetcher{doc: doc}, true)

	p.Poll(context.Background())
	if got := model.Remote(out.last(t)); got["queue"] != float64(3) {
		t.Fatalf("remote = %v", got)
	}
}

func TestPoller_FetchFailureBacksOffAndRecovers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	if err := os.WriteFile(path, []byte("line\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	out := &sink{}
	fetcher := &switchFetcher{err: errors.New("connection refused")}
	p := NewPoller(logtail.NewTailer(path, 10), fetcher, out.send, time.Second, nil)
	failures := 0
	p.OnFailure = func() { failures++ }

	p.Poll(context.Background())
	payload := out.last(t)
	status := model.Poll(payload)
	if !strings.Contains(status.Error, "connection refused") {
		t.Fatalf("poll error = %q", status.Error)
	}
	if got := model.Logs(payload); len(got) != 1 {
		t.Fatalf("logs dropped on fetch failure: %v", payload)
	}
	if p.failures != 1 || failures != 1 {
		t.Fatalf("failures = %d, OnFailure calls = %d", p.failures, failures)
	}

	p.Poll(context.Background())
	if p.failures != 2 {
		t.Fatalf("failures = %d, want 2", p.failures)
	}
	if got := calculateBackoff(p.failures, p.interval); got != 4*time.Second {
		t.Fatalf("backoff = %v, want 4s", got)
	}

	fetcher.err = nil
	fetcher.doc = map[string]any{}
	p.Poll(context.Background())
	if p.failures != 0 {
		t.Fatalf("failures = %d after recovery", p.failures)
	}
	if got := model.Poll(out.last(t)).Error; got != "" {
		t.Fatalf("poll error = %q after recovery", got)
	}
}

type switchFetcher struct {
	doc map[string]any
	err error
}

func (f *switchFetcher) Fetch(context.Context) (map[string]any, error) {
	return f.doc, f.err
}

func TestPoller_RunStopsOnCancel(t *testing.T) {
	out := make(chan model.State, 16)
	p := NewPoller(nil, nil, func(s model.State) { out <- s }, 10*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	select {
	case <-out:
	case <-time.After(2 * time.Second):
		t.Fatalf("no payload from Run")
	}
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not return after cancel")
	}
}

func TestNewPoller_DefaultInterval(t *testing.T) {
	p := NewPoller(nil, nil, func(model.State) {}, 0, nil)
	if p.interval != defaultPollInterval {
		t.Fatalf("interval = %v, want %v", p.interval, defaultPollInterval)
	}
}
