package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jonboulle/clockwork"

	"github.com/riskibarqy/bonk-fanzone/internal/domain/nft"
	"github.com/riskibarqy/bonk-fanzone/internal/domain/wallet"
	"github.com/riskibarqy/bonk-fanzone/internal/platform/id"
)

const (
	defaultNFTPageSize = 24
	maxNFTPageSize     = 100
	maxNFTTitleRunes   = 80
	defaultCollection  = "Fan Mints"
)

type ListNFTsInput struct {
	Rarity     string
	Search     string
	ListedOnly bool
	OwnerID    string
	Sort       string
	Limit      int
	Offset     int
}

type NFTPage struct {
	Items  []nft.NFT
	Total  int
	Limit  int
	Offset int
}

type PurchaseResult struct {
	NFT         nft.NFT
	Transaction wallet.Transaction
	Wallet      wallet.Wallet
}

type MintInput struct {
	FanID      string
	Title      string
	Collection string
	Rarity     string
	Price      int64
	List       bool
}

type NFTServiceConfig struct {
	MintFee         int64
	TreasuryAddress string
}

type NFTService struct {
	repo    nft.Repository
	wallets wallet.Repository
	pay     *paymentFlow
	ids     id.Generator
	clock   clockwork.Clock
	cfg     NFTServiceConfig
}

func NewNFTService(
	repo nft.Repository,
	wallets wallet.Repository,
	txs wallet.TransactionRepository,
	ledger wallet.Ledger,
	ids id.Generator,
	clock clockwork.Clock,
	cfg NFTServiceConfig,
) *NFTService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if strings.TrimSpace(cfg.TreasuryAddress) == "" {
		cfg.TreasuryAddress = "treasury:" + nft.MarketplaceOwner
	}
	return &NFTService{
		repo:    repo,
		wallets: wallets,
		pay:     newPaymentFlow(wallets, txs, ledger, ids, clock),
		ids:     ids,
		clock:   clock,
		cfg:     cfg,
	}
}

func (s *NFTService) List(ctx context.Context, input ListNFTsInput) (NFTPage, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.NFTService.List")
	defer span.End()

	query := nft.Query{
		Search:     strings.TrimSpace(input.Search),
		ListedOnly: input.ListedOnly,
		OwnerID:    strings.TrimSpace(input.OwnerID),
	}

	if raw := strings.TrimSpace(input.Rarity); raw != "" && !strings.EqualFold(raw, "all") {
		rarity, ok := nft.ParseRarity(raw)
		if !ok {
			return NFTPage{}, fmt.Errorf("%w: %v: %s", ErrInvalidInput, nft.ErrUnknownRarity, raw)
		}
		query.Rarity = rarity
	}

	sortOrder, ok := nft.ParseSortOrder(input.Sort)
	if !ok {
		return NFTPage{}, fmt.Errorf("%w: unsupported sort=%s", ErrInvalidInput, input.Sort)
	}
	query.Sort = sortOrder

	if input.Offset < 0 {
		return NFTPage{}, fmt.Errorf("%w: offset must be >= 0", ErrInvalidInput)
	}
	query.Offset = input.Offset
	query.Limit = clampLimit(input.Limit, defaultNFTPageSize, maxNFTPageSize)

	items, total, err := s.repo.Query(ctx, query)
	if err != nil {
		return NFTPage{}, fmt.Errorf("query nfts: %w", err)
	}

	return NFTPage{Items: items, Total: total, Limit: query.Limit, Offset: query.Offset}, nil
}

// Get returns the NFT and counts the view.
func (s *NFTService) Get(ctx context.Context, nftID string) (nft.NFT, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.NFTService.Get")
	defer span.End()

	if _, err := s.mustNFT(ctx, nftID); err != nil {
		return nft.NFT{}, err
	}

	item, err := s.repo.Update(ctx, strings.TrimSpace(nftID), func(n *nft.NFT) error {
		n.Views++
		return nil
	})
	if err != nil {
		return nft.NFT{}, fmt.Errorf("count nft view: %w", err)
	}
	return item, nil
}

func (s *NFTService) Like(ctx context.Context, nftID string) (nft.NFT, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.NFTService.Like")
	defer span.End()

	if _, err := s.mustNFT(ctx, nftID); err != nil {
		return nft.NFT{}, err
	}

	item, err := s.repo.Update(ctx, strings.TrimSpace(nftID), func(n *nft.NFT) error {
		n.Likes++
		return nil
	})
	if err != nil {
		return nft.NFT{}, fmt.Errorf("like nft: %w", err)
	}
	return item, nil
}

func (s *NFTService) Purchase(ctx context.Context, fanID, nftID string) (PurchaseResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.NFTService.Purchase")
	defer span.End()

	buyer, err := lookupWallet(ctx, s.wallets, fanID)
	if err != nil {
		return PurchaseResult{}, err
	}

	item, err := s.mustNFT(ctx, nftID)
	if err != nil {
		return PurchaseResult{}, err
	}
	if err := checkPurchasable(item, buyer.FanID); err != nil {
		return PurchaseResult{}, err
	}
	if item.Price > buyer.Balance {
		return PurchaseResult{}, fmt.Errorf("%w: balance=%d price=%d", ErrInsufficientBalance, buyer.Balance, item.Price)
	}

	seller, sellerIsFan, err := s.sellerWallet(ctx, item.OwnerID)
	if err != nil {
		return PurchaseResult{}, err
	}
	sellerAddress := s.cfg.TreasuryAddress
	if sellerIsFan {
		sellerAddress = seller.Address
	}

	tx, updated, err := s.pay.spend(ctx, payment{
		FanID:        buyer.FanID,
		From:         buyer.Address,
		To:           sellerAddress,
		Kind:         wallet.KindNFTPurchase,
		Amount:       item.Price,
		Counterparty: item.ID,
		Memo:         item.Title,
	})
	if err != nil {
		return PurchaseResult{Transaction: tx, Wallet: updated}, fmt.Errorf("purchase nft: %w", err)
	}

	previousOwner := item.OwnerID
	bought, err := s.repo.Update(ctx, item.ID, func(n *nft.NFT) error {
		if err := checkPurchasable(*n, buyer.FanID); err != nil {
			return err
		}
		if n.OwnerID != previousOwner || n.Price != item.Price {
			return fmt.Errorf("%w: nft changed while purchasing", ErrConflict)
		}
		n.OwnerID = buyer.FanID
		n.Listed = false
		return nil
	})
	if err != nil {
		if reverseErr := s.pay.reverse(ctx, tx, "nft transfer failed"); reverseErr != nil {
			return PurchaseResult{}, errors.Join(err, reverseErr)
		}
		return PurchaseResult{}, fmt.Errorf("transfer nft ownership: %w", err)
	}

	if sellerIsFan {
		if _, err := s.pay.receive(ctx, seller.FanID, wallet.KindNFTSale, item.Price, buyer.Address, item.Title, tx.Signature); err != nil {
			creditErr := fmt.Errorf("credit seller: %w", err)
			if errors.Is(err, errCreditApplied) {
				return PurchaseResult{}, creditErr
			}
			if _, restoreErr := s.repo.Update(context.WithoutCancel(ctx), item.ID, func(n *nft.NFT) error {
				n.OwnerID = previousOwner
				n.Listed = true
				return nil
			}); restoreErr != nil {
				return PurchaseResult{}, errors.Join(creditErr, fmt.Errorf("restore nft owner: %w", restoreErr))
			}
			return PurchaseResult{}, s.pay.reverseUnlessCredited(ctx, tx, "seller credit failed", creditErr)
		}
	}

	return PurchaseResult{NFT: bought, Transaction: tx, Wallet: updated}, nil
}

// Mint charges the flat fee and creates a new NFT owned by the fan.
func (s *NFTService) Mint(ctx context.Context, input MintInput) (PurchaseResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.NFTService.Mint")
	defer span.End()

	input.Title = strings.TrimSpace(input.Title)
	input.Collection = strings.TrimSpace(input.Collection)
	if input.Title == "" {
		return PurchaseResult{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if len([]rune(input.Title)) > maxNFTTitleRunes {
		return PurchaseResult{}, fmt.Errorf("%w: title must be at most %d characters", ErrInvalidInput, maxNFTTitleRunes)
	}
	if input.Collection == "" {
		input.Collection = defaultCollection
	}
	if input.Price < 0 {
		return PurchaseResult{}, fmt.Errorf("%w: price must be >= 0", ErrInvalidInput)
	}
	if input.List && input.Price == 0 {
		return PurchaseResult{}, fmt.Errorf("%w: listed nfts need a price", ErrInvalidInput)
	}

	rarity := nft.RarityCommon
	if raw := strings.TrimSpace(input.Rarity); raw != "" {
		parsed, ok := nft.ParseRarity(raw)
		if !ok {
			return PurchaseResult{}, fmt.Errorf("%w: %v: %s", ErrInvalidInput, nft.ErrUnknownRarity, raw)
		}
		rarity = parsed
	}

	minter, err := lookupWallet(ctx, s.wallets, input.FanID)
	if err != nil {
		return PurchaseResult{}, err
	}
	if s.cfg.MintFee > minter.Balance {
		return PurchaseResult{}, fmt.Errorf("%w: balance=%d mint_fee=%d", ErrInsufficientBalance, minter.Balance, s.cfg.MintFee)
	}

	nftID, err := s.ids.NewID()
	if err != nil {
		return PurchaseResult{}, fmt.Errorf("generate nft id: %w", err)
	}

	var (
		tx      wallet.Transaction
		updated = minter
	)
	if s.cfg.MintFee > 0 {
		tx, updated, err = s.pay.spend(ctx, payment{
			FanID:        minter.FanID,
			From:         minter.Address,
			To:           s.cfg.TreasuryAddress,
			Kind:         wallet.KindNFTMint,
			Amount:       s.cfg.MintFee,
			Counterparty: nftID,
			Memo:         input.Title,
		})
		if err != nil {
			return PurchaseResult{Transaction: tx, Wallet: updated}, fmt.Errorf("mint nft: %w", err)
		}
	}

	item := nft.NFT{
		ID:         nftID,
		Title:      input.Title,
		Collection: input.Collection,
		Rarity:     rarity,
		Price:      input.Price,
		OwnerID:    minter.FanID,
		Listed:     input.List,
		MintedAt:   s.clock.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, item); err != nil {
		if s.cfg.MintFee > 0 {
			if reverseErr := s.pay.reverse(ctx, tx, "mint not stored"); reverseErr != nil {
				return PurchaseResult{}, errors.Join(err, reverseErr)
			}
		}
		return PurchaseResult{}, fmt.Errorf("insert minted nft: %w", err)
	}

	return PurchaseResult{NFT: item, Transaction: tx, Wallet: updated}, nil
}

func (s *NFTService) mustNFT(ctx context.Context, nftID string) (nft.NFT, error) {
	nftID = strings.TrimSpace(nftID)
	if nftID == "" {
		return nft.NFT{}, fmt.Errorf("%w: nft id is required", ErrInvalidInput)
	}

	item, exists, err := s.repo.GetByID(ctx, nftID)
	if err != nil {
		return nft.NFT{}, fmt.Errorf("get nft: %w", err)
	}
	if !exists {
		return nft.NFT{}, fmt.Errorf("%w: nft=%s", ErrNotFound, nftID)
	}
	return item, nil
}

func (s *NFTService) sellerWallet(ctx context.Context, ownerID string) (wallet.Wallet, bool, error) {
	if ownerID == "" || ownerID == nft.MarketplaceOwner {
		return wallet.Wallet{}, false, nil
	}
	w, exists, err := s.wallets.GetByFan(ctx, ownerID)
	if err != nil {
		return wallet.Wallet{}, false, fmt.Errorf("get seller wallet: %w", err)
	}
	return w, exists, nil
}

func checkPurchasable(item nft.NFT, buyerID string) error {
	if item.OwnerID == buyerID {
		return fmt.Errorf("%w: %v", ErrConflict, nft.ErrAlreadyOwned)
	}
	if !item.Listed {
		return fmt.Errorf("%w: %v", ErrConflict, nft.ErrNotListed)
	}
	return nil
}
