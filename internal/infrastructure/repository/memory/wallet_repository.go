package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/riskibarqy/bonk-fanzone/internal/domain/wallet"
)

type WalletRepository struct {
	mu        sync.RWMutex
	byFan     map[string]wallet.Wallet
	byAddress map[string]string
}

func NewWalletRepository(wallets []wallet.Wallet) *WalletRepository {
	r := &WalletRepository{
		byFan:     make(map[string]wallet.Wallet, len(wallets)),
		byAddress: make(map[string]string, len(wallets)),
	}
	for _, w := range wallets {
		r.byFan[w.FanID] = w
		r.byAddress[strings.ToLower(w.Address)] = w.FanID
	}
	return r
}

func (r *WalletRepository) GetByFan(_ context.Context, fanID string) (wallet.Wallet, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	w, ok := r.byFan[fanID]
	return w, ok, nil
}

func (r *WalletRepository) GetByAddress(_ context.Context, address string) (wallet.Wallet, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fanID, ok := r.byAddress[strings.ToLower(strings.TrimSpace(address))]
	if !ok {
		return wallet.Wallet{}, false, nil
	}
	return r.byFan[fanID], true, nil
}

func (r *WalletRepository) Debit(_ context.Context, fanID string, amount int64) (wallet.Wallet, error) {
	if amount < 0 {
		return wallet.Wallet{}, fmt.Errorf("debit amount must be >= 0")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.byFan[fanID]
	if !ok {
		return wallet.Wallet{}, fmt.Errorf("wallet for fan %s not found", fanID)
	}
	if amount > w.Balance {
		return w, fmt.Errorf("%w: balance=%d amount=%d", wallet.ErrInsufficientBalance, w.Balance, amount)
	}
	w.Balance -= amount
	r.byFan[fanID] = w
	return w, nil
}

func (r *WalletRepository) Credit(_ context.Context, fanID string, amount int64) (wallet.Wallet, error) {
	if amount < 0 {
		return wallet.Wallet{}, fmt.Errorf("credit amount must be >= 0")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.byFan[fanID]
	if !ok {
		return wallet.Wallet{}, fmt.Errorf("wallet for fan %s not found", fanID)
	}
	w.Balance += amount
	r.byFan[fanID] = w
	return w, nil
}

type TransactionRepository struct {
	mu    sync.RWMutex
	items []wallet.Transaction
}

func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{}
}

// ListByFan returns newest first; limit <= 0 means no limit.
func (r *TransactionRepository) ListByFan(_ context.Context, fanID string, limit int) ([]wallet.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]wallet.Transaction, 0)
	for i := len(r.items) - 1; i >= 0; i-- {
		if r.items[i].FanID != fanID {
			continue
		}
		out = append(out, r.items[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *TransactionRepository) Insert(_ context.Context, tx wallet.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = append(r.items, tx)
	return nil
}
