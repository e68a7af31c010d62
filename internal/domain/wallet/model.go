package wallet

import (
	"errors"
	"time"
)

var ErrInsufficientBalance = errors.New("insufficient balance")

// Wallet is a fan's simulated BONK wallet. Balances are whole BONK units.
type Wallet struct {
	FanID   string
	Address string
	Balance int64
}

type Kind string

const (
	KindTransfer         Kind = "transfer"
	KindStake            Kind = "stake"
	KindUnstake          Kind = "unstake"
	KindNFTPurchase      Kind = "nft_purchase"
	KindNFTSale          Kind = "nft_sale"
	KindNFTMint          Kind = "nft_mint"
	KindPredictionReward Kind = "prediction_reward"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusFailed    Status = "failed"
)

// Transaction is a local record of a simulated transfer.
// Amount is signed from the fan's point of view: debits are negative.
type Transaction struct {
	ID           string
	FanID        string
	Kind         Kind
	Amount       int64
	Counterparty string
	Status       Status
	Signature    string
	Memo         string
	CreatedAt    time.Time
}
