package wallet

import "context"

// Repository describes wallet persistence needs from use cases.
type Repository interface {
	GetByFan(ctx context.Context, fanID string) (Wallet, bool, error)
	GetByAddress(ctx context.Context, address string) (Wallet, bool, error)
	// Debit checks and subtracts under one lock; it returns ErrInsufficientBalance
	// and leaves the balance untouched when amount exceeds it.
	Debit(ctx context.Context, fanID string, amount int64) (Wallet, error)
	Credit(ctx context.Context, fanID string, amount int64) (Wallet, error)
}

// TransactionRepository stores the simulated transaction history.
type TransactionRepository interface {
	ListByFan(ctx context.Context, fanID string, limit int) ([]Transaction, error)
	Insert(ctx context.Context, tx Transaction) error
}
