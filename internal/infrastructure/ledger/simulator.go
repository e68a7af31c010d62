package ledger

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/riskibarqy/bonk-fanzone/internal/domain/wallet"
)

var (
	ErrRejected = crerr.New("ledger rejected transfer")
	ErrTimeout  = crerr.New("ledger confirmation timed out")
)

type Config struct {
	ConfirmDelay time.Duration
	// MaxAmount rejects transfers above it; 0 disables the limit.
	MaxAmount int64
}

var _ wallet.Ledger = (*Simulator)(nil)

// Simulator stands in for on-chain settlement. It only waits and signs;
// balances are owned by the wallet repository.
type Simulator struct {
	cfg   Config
	clock clockwork.Clock
	slot  atomic.Uint64
}

func NewSimulator(cfg Config, clock clockwork.Clock) *Simulator {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if cfg.ConfirmDelay < 0 {
		cfg.ConfirmDelay = 0
	}
	return &Simulator{cfg: cfg, clock: clock}
}

func (s *Simulator) Settle(ctx context.Context, req wallet.TransferRequest) (wallet.Receipt, error) {
	if strings.TrimSpace(req.From) == "" || strings.TrimSpace(req.To) == "" {
		return wallet.Receipt{}, crerr.Wrap(ErrRejected, "from and to addresses are required")
	}
	if req.Amount < 0 {
		return wallet.Receipt{}, crerr.Wrapf(ErrRejected, "negative amount %d", req.Amount)
	}
	if s.cfg.MaxAmount > 0 && req.Amount > s.cfg.MaxAmount {
		return wallet.Receipt{}, crerr.Wrapf(ErrRejected, "amount %d exceeds limit %d", req.Amount, s.cfg.MaxAmount)
	}

	if s.cfg.ConfirmDelay > 0 {
		timer := s.clock.NewTimer(s.cfg.ConfirmDelay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return wallet.Receipt{}, crerr.Wrapf(ErrTimeout, "waiting for %s confirmation: %v", req.Kind, ctx.Err())
		case <-timer.Chan():
		}
	} else if err := ctx.Err(); err != nil {
		return wallet.Receipt{}, crerr.Wrapf(ErrTimeout, "%s confirmation: %v", req.Kind, err)
	}

	sig, err := newSignature()
	if err != nil {
		return wallet.Receipt{}, crerr.Wrap(err, "sign transfer")
	}

	return wallet.Receipt{
		Signature:   sig,
		Slot:        s.slot.Add(1),
		ConfirmedAt: s.clock.Now().UTC(),
	}, nil
}

func newSignature() (string, error) {
	a, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	b, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(a.String()+b.String(), "-", ""), nil
}
