package wallet

import (
	"context"
	"time"
)

// TransferRequest is one simulated movement of BONK between two addresses.
type TransferRequest struct {
	Kind   Kind
	From   string
	To     string
	Amount int64
	Memo   string
}

// Receipt is returned once the ledger confirms a transfer.
type Receipt struct {
	Signature   string
	Slot        uint64
	ConfirmedAt time.Time
}

// Ledger settles transfers. Balances stay in Repository; the ledger only confirms.
type Ledger interface {
	Settle(ctx context.Context, req TransferRequest) (Receipt, error)
}
