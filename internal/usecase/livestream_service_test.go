package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/riskibarqy/bonk-fanzone/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/bonk-fanzone/internal/platform/logging"
)

func TestLiveStreamService_TickOnlyBumpsLiveStreams(t *testing.T) {
	t.Parallel()

	repo := memory.NewLiveStreamRepository(memory.SeedLiveStreams(testNow))
	service := NewLiveStreamService(repo, clockwork.NewFakeClockAt(testNow), logging.NewNop(), LiveStreamConfig{MaxViewerBump: 10, Seed: 7})

	before, err := service.Get(t.Context(), "stream-unna-luenen")
	if err != nil {
		t.Fatalf("get stream: %v", err)
	}

	updated, err := service.Tick(t.Context())
	if err != nil {
		t.Fatalf("tick: %v", err)
	}
	if len(updated) != 1 || updated[0].ID != "stream-unna-luenen" {
		t.Fatalf("unexpected updated streams: %+v", updated)
	}
	delta := updated[0].Viewers - before.Viewers
	if delta < 0 || delta > 10 {
		t.Fatalf("viewer delta = %d, want within [0,10]", delta)
	}

	replay, err := service.Get(t.Context(), "stream-castrop-replay")
	if err != nil {
		t.Fatalf("get replay: %v", err)
	}
	if replay.Viewers != 312 {
		t.Fatalf("offline stream viewers changed to %d", replay.Viewers)
	}

	if _, err := service.Get(t.Context(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLiveStreamService_RunPublishesOnEveryTick(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClockAt(testNow)
	repo := memory.NewLiveStreamRepository(memory.SeedLiveStreams(testNow))
	service := NewLiveStreamService(repo, clock, logging.NewNop(), LiveStreamConfig{TickInterval: 5 * time.Second, MaxViewerBump: 3, Seed: 1})

	updates, unsubscribe := service.Subscribe("stream-unna-luenen")
	defer unsubscribe()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		service.Run(ctx)
		close(done)
	}()

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer waitCancel()
	if err := clock.BlockUntilContext(waitCtx, 1); err != nil {
		t.Fatalf("ticker never started: %v", err)
	}

	clock.Advance(5 * time.Second)
	select {
	case snapshot := <-updates:
		if snapshot.ID != "stream-unna-luenen" || !snapshot.IsLive {
			t.Fatalf("unexpected snapshot: %+v", snapshot)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no snapshot after first tick")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("run did not stop after cancel")
	}
}

func TestLiveStreamService_UnsubscribeClosesChannel(t *testing.T) {
	t.Parallel()

	service := NewLiveStreamService(memory.NewLiveStreamRepository(nil), clockwork.NewFakeClock(), nil, LiveStreamConfig{})
	updates, unsubscribe := service.Subscribe("s")
	unsubscribe()
	unsubscribe()

	if _, ok := <-updates; ok {
		t.Fatalf("expected closed channel after unsubscribe")
	}
}
