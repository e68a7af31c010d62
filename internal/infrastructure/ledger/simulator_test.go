package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/riskibarqy/bonk-fanzone/internal/domain/wallet"
)

func TestSimulator_SettleWaitsForConfirmDelay(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClockAt(time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC))
	sim := NewSimulator(Config{ConfirmDelay: 2 * time.Second}, clock)

	type result struct {
		receipt wallet.Receipt
		err     error
	}
	done := make(chan result, 1)
	go func() {
		receipt, err := sim.Settle(context.Background(), wallet.TransferRequest{Kind: wallet.KindTransfer, From: "a", To: "b", Amount: 10})
		done <- result{receipt: receipt, err: err}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := clock.BlockUntilContext(ctx, 1); err != nil {
		t.Fatalf("settle never started waiting: %v", err)
	}

	select {
	case <-done:
		t.Fatalf("settle returned before the confirm delay elapsed")
	default:
	}

	clock.Advance(2 * time.Second)

	select {
	case got := <-done:
		if got.err != nil {
			t.Fatalf("unexpected error: %v", got.err)
		}
		if len(got.receipt.Signature) != 64 {
			t.Fatalf("signature length = %d, want 64", len(got.receipt.Signature))
		}
		if got.receipt.Slot != 1 {
			t.Fatalf("slot = %d, want 1", got.receipt.Slot)
		}
		if !got.receipt.ConfirmedAt.Equal(clock.Now().UTC()) {
			t.Fatalf("confirmed at = %s, want %s", got.receipt.ConfirmedAt, clock.Now())
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("settle did not return after advancing the clock")
	}
}

func TestSimulator_SettleHonoursCancel(t *testing.T) {
	t.Parallel()

	sim := NewSimulator(Config{ConfirmDelay: time.Hour}, clockwork.NewFakeClock())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sim.Settle(ctx, wallet.TransferRequest{Kind: wallet.KindTransfer, From: "a", To: "b", Amount: 1})
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
}

func TestSimulator_SettleRejects(t *testing.T) {
	t.Parallel()

	sim := NewSimulator(Config{MaxAmount: 100}, clockwork.NewFakeClock())

	cases := []struct {
		name string
		req  wallet.TransferRequest
	}{
		{name: "missing from", req: wallet.TransferRequest{To: "b", Amount: 1}},
		{name: "missing to", req: wallet.TransferRequest{From: "a", Amount: 1}},
		{name: "negative", req: wallet.TransferRequest{From: "a", To: "b", Amount: -1}},
		{name: "over limit", req: wallet.TransferRequest{From: "a", To: "b", Amount: 101}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := sim.Settle(context.Background(), tc.req); !errors.Is(err, ErrRejected) {
				t.Fatalf("expected ErrRejected, got %v", err)
			}
		})
	}

	if _, err := sim.Settle(context.Background(), wallet.TransferRequest{From: "a", To: "b", Amount: 100}); err != nil {
		t.Fatalf("amount at limit should settle, got %v", err)
	}
}
