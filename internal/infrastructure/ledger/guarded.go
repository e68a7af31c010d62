package ledger

import (
	"context"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/bonk-fanzone/internal/domain/wallet"
	"github.com/riskibarqy/bonk-fanzone/internal/platform/logging"
	"github.com/riskibarqy/bonk-fanzone/internal/platform/resilience"
)

var _ wallet.Ledger = (*Guarded)(nil)

// Guarded puts a circuit breaker in front of a ledger. Rejections count as a
// healthy answer; timeouts and transport errors count as failures.
type Guarded struct {
	next    wallet.Ledger
	breaker *resilience.CircuitBreaker
	logger  *logging.Logger
}

func NewGuarded(next wallet.Ledger, breaker *resilience.CircuitBreaker, logger *logging.Logger) *Guarded {
	if logger == nil {
		logger = logging.Default()
	}
	breaker.OnStateChange(func(from, to resilience.CircuitState) {
		logger.Warn("ledger circuit state changed", "from", string(from), "to", string(to))
	})
	return &Guarded{next: next, breaker: breaker, logger: logger}
}

func (g *Guarded) Settle(ctx context.Context, req wallet.TransferRequest) (wallet.Receipt, error) {
	if err := g.breaker.Allow(); err != nil {
		g.logger.WarnContext(ctx, "ledger circuit open, skipping settlement", "kind", string(req.Kind), "amount", req.Amount)
		return wallet.Receipt{}, crerr.Wrap(err, "settle transfer")
	}

	receipt, err := g.next.Settle(ctx, req)
	switch {
	case err == nil, crerr.Is(err, ErrRejected):
		g.breaker.RecordSuccess()
	default:
		g.breaker.RecordFailure()
		g.logger.WarnContext(ctx, "ledger settlement failed", "error", err, "state", string(g.breaker.State()))
	}
	return receipt, err
}
