package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonboulle/clockwork"

	"github.com/riskibarqy/bonk-fanzone/internal/domain/wallet"
	"github.com/riskibarqy/bonk-fanzone/internal/platform/id"
)

// errCreditApplied marks a receive whose credit landed but whose transaction
// could not be recorded. Callers must not undo or retry the credit.
var errCreditApplied = errors.New("credit applied")

// paymentFlow runs debit -> ledger settle -> record for every flow that
// spends the fan's BONK. A failed settlement is refunded and recorded as failed.
type paymentFlow struct {
	wallets wallet.Repository
	txs     wallet.TransactionRepository
	ledger  wallet.Ledger
	ids     id.Generator
	clock   clockwork.Clock
}

func newPaymentFlow(
	wallets wallet.Repository,
	txs wallet.TransactionRepository,
	ledger wallet.Ledger,
	ids id.Generator,
	clock clockwork.Clock,
) *paymentFlow {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &paymentFlow{wallets: wallets, txs: txs, ledger: ledger, ids: ids, clock: clock}
}

type payment struct {
	FanID        string
	From         string
	To           string
	Kind         wallet.Kind
	Amount       int64
	Counterparty string
	Memo         string
}

func (p *paymentFlow) spend(ctx context.Context, pay payment) (wallet.Transaction, wallet.Wallet, error) {
	if pay.Amount <= 0 {
		return wallet.Transaction{}, wallet.Wallet{}, fmt.Errorf("%w: amount must be greater than 0", ErrInvalidInput)
	}

	debited, err := p.wallets.Debit(ctx, pay.FanID, pay.Amount)
	if err != nil {
		if errors.Is(err, wallet.ErrInsufficientBalance) {
			return wallet.Transaction{}, debited, fmt.Errorf("%w: balance=%d amount=%d", ErrInsufficientBalance, debited.Balance, pay.Amount)
		}
		return wallet.Transaction{}, wallet.Wallet{}, fmt.Errorf("debit wallet: %w", err)
	}

	tx, err := p.newTransaction(pay.FanID, pay.Kind, -pay.Amount, pay.Counterparty, pay.Memo)
	if err != nil {
		return wallet.Transaction{}, wallet.Wallet{}, p.refundAfter(ctx, pay, err)
	}

	receipt, settleErr := p.ledger.Settle(ctx, wallet.TransferRequest{
		Kind:   pay.Kind,
		From:   pay.From,
		To:     pay.To,
		Amount: pay.Amount,
		Memo:   pay.Memo,
	})
	if settleErr != nil {
		refunded, refundErr := p.wallets.Credit(context.WithoutCancel(ctx), pay.FanID, pay.Amount)
		if refundErr != nil {
			return wallet.Transaction{}, wallet.Wallet{}, fmt.Errorf("refund after ledger failure (%v): %w", settleErr, refundErr)
		}
		tx.Status = wallet.StatusFailed
		if err := p.txs.Insert(context.WithoutCancel(ctx), tx); err != nil {
			return wallet.Transaction{}, refunded, fmt.Errorf("record failed transaction: %w", err)
		}
		return tx, refunded, fmt.Errorf("%w: settle %s: %v", ErrDependencyUnavailable, pay.Kind, settleErr)
	}

	tx.Status = wallet.StatusConfirmed
	tx.Signature = receipt.Signature
	if err := p.txs.Insert(ctx, tx); err != nil {
		return wallet.Transaction{}, debited, fmt.Errorf("record transaction: %w", err)
	}

	return tx, debited, nil
}

// receive credits the fan and records a confirmed incoming transaction.
func (p *paymentFlow) receive(ctx context.Context, fanID string, kind wallet.Kind, amount int64, counterparty, memo, signature string) (wallet.Transaction, error) {
	if amount <= 0 {
		return wallet.Transaction{}, nil
	}
	if _, err := p.wallets.Credit(ctx, fanID, amount); err != nil {
		return wallet.Transaction{}, fmt.Errorf("credit wallet: %w", err)
	}

	tx, err := p.newTransaction(fanID, kind, amount, counterparty, memo)
	if err != nil {
		return wallet.Transaction{}, fmt.Errorf("%w: %w", errCreditApplied, err)
	}
	tx.Status = wallet.StatusConfirmed
	tx.Signature = signature
	if err := p.txs.Insert(ctx, tx); err != nil {
		return wallet.Transaction{}, fmt.Errorf("%w: record transaction: %w", errCreditApplied, err)
	}
	return tx, nil
}

// reverse gives back a confirmed spend when a later step of the flow fails.
func (p *paymentFlow) reverse(ctx context.Context, spent wallet.Transaction, reason string) error {
	ctx = context.WithoutCancel(ctx)
	if _, err := p.receive(ctx, spent.FanID, spent.Kind, -spent.Amount, spent.Counterparty, "reversal: "+reason, spent.Signature); err != nil {
		return fmt.Errorf("reverse transaction %s: %w", spent.ID, err)
	}
	return nil
}

// reverseUnlessCredited undoes spent after a failed counterparty credit. A
// credit that already landed is kept and cause is returned as is.
func (p *paymentFlow) reverseUnlessCredited(ctx context.Context, spent wallet.Transaction, reason string, cause error) error {
	if errors.Is(cause, errCreditApplied) {
		return cause
	}
	if err := p.reverse(ctx, spent, reason); err != nil {
		return errors.Join(cause, err)
	}
	return cause
}

func (p *paymentFlow) refundAfter(ctx context.Context, pay payment, cause error) error {
	if _, err := p.wallets.Credit(context.WithoutCancel(ctx), pay.FanID, pay.Amount); err != nil {
		return fmt.Errorf("refund after %v: %w", cause, err)
	}
	return cause
}

func (p *paymentFlow) newTransaction(fanID string, kind wallet.Kind, amount int64, counterparty, memo string) (wallet.Transaction, error) {
	txID, err := p.ids.NewID()
	if err != nil {
		return wallet.Transaction{}, fmt.Errorf("generate transaction id: %w", err)
	}
	return wallet.Transaction{
		ID:           txID,
		FanID:        fanID,
		Kind:         kind,
		Amount:       amount,
		Counterparty: counterparty,
		Status:       wallet.StatusPending,
		Memo:         memo,
		CreatedAt:    p.clock.Now().UTC(),
	}, nil
}
