package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonboulle/clockwork"

	"github.com/riskibarqy/bonk-fanzone/internal/domain/wallet"
	"github.com/riskibarqy/bonk-fanzone/internal/platform/id"
)

const (
	defaultTransactionLimit = 50
	maxTransactionLimit     = 200
	maxMemoRunes            = 140
)

type TransferInput struct {
	FanID     string
	ToAddress string
	Amount    int64
	Memo      string
}

type TransferResult struct {
	Transaction wallet.Transaction
	Wallet      wallet.Wallet
}

type WalletService struct {
	wallets wallet.Repository
	txs     wallet.TransactionRepository
	pay     *paymentFlow
}

func NewWalletService(
	wallets wallet.Repository,
	txs wallet.TransactionRepository,
	ledger wallet.Ledger,
	ids id.Generator,
	clock clockwork.Clock,
) *WalletService {
	return &WalletService{
		wallets: wallets,
		txs:     txs,
		pay:     newPaymentFlow(wallets, txs, ledger, ids, clock),
	}
}

func (s *WalletService) Get(ctx context.Context, fanID string) (wallet.Wallet, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WalletService.Get")
	defer span.End()

	return s.mustWallet(ctx, fanID)
}

func (s *WalletService) ListTransactions(ctx context.Context, fanID string, limit int) ([]wallet.Transaction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WalletService.ListTransactions")
	defer span.End()

	if _, err := s.mustWallet(ctx, fanID); err != nil {
		return nil, err
	}

	limit = clampLimit(limit, defaultTransactionLimit, maxTransactionLimit)
	items, err := s.txs.ListByFan(ctx, strings.TrimSpace(fanID), limit)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return items, nil
}

// Transfer sends BONK to another address. Recipients with a fanzone wallet are
// credited locally; any other address only sees the debit.
func (s *WalletService) Transfer(ctx context.Context, input TransferInput) (TransferResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WalletService.Transfer")
	defer span.End()

	input.ToAddress = strings.TrimSpace(input.ToAddress)
	input.Memo = strings.TrimSpace(input.Memo)
	if input.ToAddress == "" {
		return TransferResult{}, fmt.Errorf("%w: recipient address is required", ErrInvalidInput)
	}
	if strings.ContainsAny(input.ToAddress, " \t\n") {
		return TransferResult{}, fmt.Errorf("%w: recipient address must not contain whitespace", ErrInvalidInput)
	}
	if input.Amount <= 0 {
		return TransferResult{}, fmt.Errorf("%w: amount must be greater than 0", ErrInvalidInput)
	}
	if len([]rune(input.Memo)) > maxMemoRunes {
		return TransferResult{}, fmt.Errorf("%w: memo must be at most %d characters", ErrInvalidInput, maxMemoRunes)
	}

	sender, err := s.mustWallet(ctx, input.FanID)
	if err != nil {
		return TransferResult{}, err
	}
	if strings.EqualFold(sender.Address, input.ToAddress) {
		return TransferResult{}, fmt.Errorf("%w: cannot transfer to your own wallet", ErrInvalidInput)
	}
	if input.Amount > sender.Balance {
		return TransferResult{}, fmt.Errorf("%w: balance=%d amount=%d", ErrInsufficientBalance, sender.Balance, input.Amount)
	}

	recipient, recipientIsFan, err := s.wallets.GetByAddress(ctx, input.ToAddress)
	if err != nil {
		return TransferResult{}, fmt.Errorf("get recipient wallet: %w", err)
	}

	tx, updated, err := s.pay.spend(ctx, payment{
		FanID:        sender.FanID,
		From:         sender.Address,
		To:           input.ToAddress,
		Kind:         wallet.KindTransfer,
		Amount:       input.Amount,
		Counterparty: input.ToAddress,
		Memo:         input.Memo,
	})
	if err != nil {
		return TransferResult{Transaction: tx, Wallet: updated}, fmt.Errorf("transfer: %w", err)
	}

	if recipientIsFan {
		if _, err := s.pay.receive(ctx, recipient.FanID, wallet.KindTransfer, input.Amount, sender.Address, input.Memo, tx.Signature); err != nil {
			return TransferResult{}, s.pay.reverseUnlessCredited(ctx, tx, "recipient credit failed", fmt.Errorf("credit recipient: %w", err))
		}
	}

	return TransferResult{Transaction: tx, Wallet: updated}, nil
}

func (s *WalletService) mustWallet(ctx context.Context, fanID string) (wallet.Wallet, error) {
	return lookupWallet(ctx, s.wallets, fanID)
}

func lookupWallet(ctx context.Context, wallets wallet.Repository, fanID string) (wallet.Wallet, error) {
	fanID = strings.TrimSpace(fanID)
	if fanID == "" {
		return wallet.Wallet{}, fmt.Errorf("%w: fan id is required", ErrInvalidInput)
	}

	w, exists, err := wallets.GetByFan(ctx, fanID)
	if err != nil {
		return wallet.Wallet{}, fmt.Errorf("get wallet: %w", err)
	}
	if !exists {
		return wallet.Wallet{}, fmt.Errorf("%w: wallet for fan=%s", ErrNotFound, fanID)
	}
	return w, nil
}

func clampLimit(limit, fallback, max int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > max {
		return max
	}
	return limit
}
