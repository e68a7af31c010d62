package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/riskibarqy/bonk-fanzone/internal/domain/wallet"
)

const (
	testFanID      = "fan-demo"
	testFanAddress = "BoNkDemo00000000000000000000000000000000000"
)

var testNow = time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)

type sequenceIDGenerator struct {
	mu     sync.Mutex
	prefix string
	next   int
}

func (g *sequenceIDGenerator) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.next++
	return fmt.Sprintf("%s%03d", g.prefix, g.next), nil
}

type instantLedger struct {
	mu    sync.Mutex
	calls []wallet.TransferRequest
}

func (l *instantLedger) Settle(_ context.Context, req wallet.TransferRequest) (wallet.Receipt, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.calls = append(l.calls, req)
	return wallet.Receipt{
		Signature:   fmt.Sprintf("sig-%03d", len(l.calls)),
		Slot:        uint64(len(l.calls)),
		ConfirmedAt: testNow,
	}, nil
}

func (l *instantLedger) Calls() []wallet.TransferRequest {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]wallet.TransferRequest(nil), l.calls...)
}

// flakyCreditWallets fails Credit for one fan until the allowance runs out.
type flakyCreditWallets struct {
	wallet.Repository

	mu       sync.Mutex
	fanID    string
	failures int
}

func (w *flakyCreditWallets) Credit(ctx context.Context, fanID string, amount int64) (wallet.Wallet, error) {
	w.mu.Lock()
	fail := fanID == w.fanID && w.failures > 0
	if fail {
		w.failures--
	}
	w.mu.Unlock()

	if fail {
		return wallet.Wallet{}, errors.New("wallet store unavailable")
	}
	return w.Repository.Credit(ctx, fanID, amount)
}
