package httpapi

import (
	"time"

	"github.com/riskibarqy/bonk-fanzone/internal/domain/leaguetable"
	"github.com/riskibarqy/bonk-fanzone/internal/domain/livestream"
	"github.com/riskibarqy/bonk-fanzone/internal/domain/match"
	"github.com/riskibarqy/bonk-fanzone/internal/domain/nft"
	"github.com/riskibarqy/bonk-fanzone/internal/domain/profile"
	"github.com/riskibarqy/bonk-fanzone/internal/domain/social"
	"github.com/riskibarqy/bonk-fanzone/internal/domain/staking"
	"github.com/riskibarqy/bonk-fanzone/internal/domain/tier"
	"github.com/riskibarqy/bonk-fanzone/internal/domain/wallet"
	"github.com/riskibarqy/bonk-fanzone/internal/usecase"
)

type transferRequest struct {
	ToAddress string `json:"toAddress" validate:"required,max=64"`
	Amount    int64  `json:"amount" validate:"gt=0"`
	Memo      string `json:"memo" validate:"max=140"`
}

type stakeRequest struct {
	PoolID string `json:"poolId" validate:"required"`
	Amount int64  `json:"amount" validate:"gt=0"`
}

type mintNFTRequest struct {
	Title      string `json:"title" validate:"required,max=80"`
	Collection string `json:"collection" validate:"omitempty,max=80"`
	Rarity     string `json:"rarity" validate:"omitempty,max=20"`
	Price      int64  `json:"price" validate:"gte=0"`
	List       bool   `json:"list"`
}

type predictRequest struct {
	HomeScore *int `json:"homeScore" validate:"required,gte=0,lte=30"`
	AwayScore *int `json:"awayScore" validate:"required,gte=0,lte=30"`
}

type matchResultRequest struct {
	HomeScore *int `json:"homeScore" validate:"required,gte=0"`
	AwayScore *int `json:"awayScore" validate:"required,gte=0"`
	Final     bool `json:"final"`
}

type createPostRequest struct {
	Content string `json:"content" validate:"required"`
}

type walletDTO struct {
	FanID   string `json:"fanId"`
	Address string `json:"address"`
	Balance int64  `json:"balance"`
}

type transactionDTO struct {
	ID           string `json:"id"`
	Kind         string `json:"kind"`
	Amount       int64  `json:"amount"`
	Counterparty string `json:"counterparty,omitempty"`
	Status       string `json:"status"`
	Signature    string `json:"signature,omitempty"`
	Memo         string `json:"memo,omitempty"`
	CreatedAt    string `json:"createdAt"`
}

type transferDTO struct {
	Transaction transactionDTO `json:"transaction"`
	Wallet      walletDTO      `json:"wallet"`
}

type poolDTO struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	APY         float64 `json:"apy"`
	LockDays    int     `json:"lockDays"`
	MinStake    int64   `json:"minStake"`
	TotalStaked int64   `json:"totalStaked"`
}

type poolEstimateDTO struct {
	PoolID string  `json:"poolId"`
	Amount int64   `json:"amount"`
	Days   int     `json:"days"`
	APY    float64 `json:"apy"`
	Reward int64   `json:"reward"`
}

type positionDTO struct {
	ID        string  `json:"id"`
	PoolID    string  `json:"poolId"`
	Amount    int64   `json:"amount"`
	APY       float64 `json:"apy"`
	LockDays  int     `json:"lockDays"`
	StartedAt string  `json:"startedAt"`
	UnlocksAt string  `json:"unlocksAt"`
	ClosedAt  string  `json:"closedAt,omitempty"`
	Accrued   int64   `json:"accrued"`
	Unlocked  bool    `json:"unlocked"`
	Payout    int64   `json:"payout"`
}

type stakeDTO struct {
	Position    positionDTO    `json:"position"`
	Transaction transactionDTO `json:"transaction"`
	Wallet      walletDTO      `json:"wallet"`
}

type unstakeDTO struct {
	Position    positionDTO    `json:"position"`
	Transaction transactionDTO `json:"transaction"`
	Payout      int64          `json:"payout"`
}

type accrualSnapshotDTO struct {
	At           string           `json:"at"`
	Positions    int              `json:"positions"`
	TotalStaked  int64            `json:"totalStaked"`
	TotalAccrued int64            `json:"totalAccrued"`
	ByPool       map[string]int64 `json:"byPool"`
}

type nftDTO struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Collection string `json:"collection"`
	Rarity     string `json:"rarity"`
	Price      int64  `json:"price"`
	Likes      int64  `json:"likes"`
	Views      int64  `json:"views"`
	OwnerID    string `json:"ownerId"`
	Listed     bool   `json:"listed"`
	MintedAt   string `json:"mintedAt"`
}

type nftPageDTO struct {
	Items  []nftDTO `json:"items"`
	Total  int      `json:"total"`
	Limit  int      `json:"limit"`
	Offset int      `json:"offset"`
}

type nftPurchaseDTO struct {
	NFT         nftDTO          `json:"nft"`
	Transaction *transactionDTO `json:"transaction,omitempty"`
	Wallet      walletDTO       `json:"wallet"`
}

type matchDTO struct {
	ID           string `json:"id"`
	League       string `json:"league"`
	HomeTeam     string `json:"homeTeam"`
	AwayTeam     string `json:"awayTeam"`
	HomeScore    *int   `json:"homeScore,omitempty"`
	AwayScore    *int   `json:"awayScore,omitempty"`
	KickoffAt    string `json:"kickoffAt"`
	Venue        string `json:"venue"`
	Status       string `json:"status"`
	RewardPool   int64  `json:"rewardPool"`
	WinnerReward int64  `json:"winnerReward"`
}

type predictionDTO struct {
	MatchID   string `json:"matchId"`
	HomeScore int    `json:"homeScore"`
	AwayScore int    `json:"awayScore"`
	Settled   bool   `json:"settled"`
	Correct   bool   `json:"correct"`
	Payout    int64  `json:"payout"`
	CreatedAt string `json:"createdAt"`
}

type settlementDTO struct {
	MatchID     string `json:"matchId"`
	Predictions int    `json:"predictions"`
	Winners     int    `json:"winners"`
	PayoutEach  int64  `json:"payoutEach"`
	PointsEach  int64  `json:"pointsEach"`
	Settled     int    `json:"settled"`
}

type standingDTO struct {
	Position       int    `json:"position"`
	TeamID         string `json:"teamId"`
	Name           string `json:"name"`
	League         string `json:"league"`
	Division       string `json:"division"`
	City           string `json:"city"`
	Played         int    `json:"played"`
	Won            int    `json:"won"`
	Drawn          int    `json:"drawn"`
	Lost           int    `json:"lost"`
	GoalsFor       int    `json:"goalsFor"`
	GoalsAgainst   int    `json:"goalsAgainst"`
	GoalDifference int    `json:"goalDifference"`
	Points         int    `json:"points"`
}

type rankingDTO struct {
	Standings []standingDTO `json:"standings"`
	Total     int           `json:"total"`
	Leagues   []string      `json:"leagues"`
	Cities    []string      `json:"cities"`
}

type rewardEstimateDTO struct {
	Principal float64 `json:"principal"`
	APY       float64 `json:"apy"`
	DailyRate float64 `json:"dailyRate"`
	Days      int     `json:"days"`
	Reward    int64   `json:"reward"`
}

type tierDTO struct {
	Name      string `json:"name"`
	Threshold int64  `json:"threshold"`
}

type tierProgressDTO struct {
	Points        int64    `json:"points"`
	Current       tierDTO  `json:"current"`
	Next          *tierDTO `json:"next,omitempty"`
	Percent       float64  `json:"percent"`
	PointsToNext  int64    `json:"pointsToNext"`
	IsHighestTier bool     `json:"isHighestTier"`
}

type postDTO struct {
	ID         string `json:"id"`
	AuthorID   string `json:"authorId"`
	AuthorName string `json:"authorName"`
	Content    string `json:"content"`
	Likes      int64  `json:"likes"`
	CreatedAt  string `json:"createdAt"`
}

type achievementDTO struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Points      int64  `json:"points"`
	Unlocked    bool   `json:"unlocked"`
	UnlockedAt  string `json:"unlockedAt,omitempty"`
}

type profileDTO struct {
	FanID         string           `json:"fanId"`
	DisplayName   string           `json:"displayName"`
	FavoriteTeam  string           `json:"favoriteTeam"`
	Points        int64            `json:"points"`
	JoinedAt      string           `json:"joinedAt"`
	Tier          tierProgressDTO  `json:"tier"`
	Achievements  []achievementDTO `json:"achievements"`
	UnlockedCount int              `json:"unlockedCount"`
	WalletAddress string           `json:"walletAddress"`
	Balance       int64            `json:"balance"`
	TotalStaked   int64            `json:"totalStaked"`
	OpenStakes    int              `json:"openStakes"`
}

type streamDTO struct {
	ID        string `json:"id"`
	MatchID   string `json:"matchId"`
	Title     string `json:"title"`
	Viewers   int64  `json:"viewers"`
	IsLive    bool   `json:"isLive"`
	StartedAt string `json:"startedAt"`
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func walletToDTO(w wallet.Wallet) walletDTO {
	return walletDTO{FanID: w.FanID, Address: w.Address, Balance: w.Balance}
}

func transactionToDTO(tx wallet.Transaction) transactionDTO {
	return transactionDTO{
		ID:           tx.ID,
		Kind:         string(tx.Kind),
		Amount:       tx.Amount,
		Counterparty: tx.Counterparty,
		Status:       string(tx.Status),
		Signature:    tx.Signature,
		Memo:         tx.Memo,
		CreatedAt:    formatTime(tx.CreatedAt),
	}
}

func poolToDTO(p staking.Pool) poolDTO {
	return poolDTO{
		ID:          p.ID,
		Name:        p.Name,
		APY:         p.APY,
		LockDays:    p.LockDays,
		MinStake:    p.MinStake,
		TotalStaked: p.TotalStaked,
	}
}

func positionToDTO(p staking.Position) positionDTO {
	out := positionDTO{
		ID:        p.ID,
		PoolID:    p.PoolID,
		Amount:    p.Amount,
		APY:       p.APY,
		LockDays:  p.LockDays,
		StartedAt: formatTime(p.StartedAt),
		UnlocksAt: formatTime(p.UnlocksAt),
	}
	if p.ClosedAt != nil {
		out.ClosedAt = formatTime(*p.ClosedAt)
	}
	return out
}

func positionViewToDTO(v usecase.PositionView) positionDTO {
	out := positionToDTO(v.Position)
	out.Accrued = v.Accrued
	out.Unlocked = v.Unlocked
	out.Payout = v.Payout
	return out
}

func nftToDTO(n nft.NFT) nftDTO {
	return nftDTO{
		ID:         n.ID,
		Title:      n.Title,
		Collection: n.Collection,
		Rarity:     string(n.Rarity),
		Price:      n.Price,
		Likes:      n.Likes,
		Views:      n.Views,
		OwnerID:    n.OwnerID,
		Listed:     n.Listed,
		MintedAt:   formatTime(n.MintedAt),
	}
}

func nftPurchaseToDTO(res usecase.PurchaseResult) nftPurchaseDTO {
	out := nftPurchaseDTO{NFT: nftToDTO(res.NFT), Wallet: walletToDTO(res.Wallet)}
	if res.Transaction.ID != "" {
		tx := transactionToDTO(res.Transaction)
		out.Transaction = &tx
	}
	return out
}

func matchToDTO(m match.Match) matchDTO {
	return matchDTO{
		ID:           m.ID,
		League:       m.League,
		HomeTeam:     m.HomeTeam,
		AwayTeam:     m.AwayTeam,
		HomeScore:    m.HomeScore,
		AwayScore:    m.AwayScore,
		KickoffAt:    formatTime(m.KickoffAt),
		Venue:        m.Venue,
		Status:       string(m.Status),
		RewardPool:   m.RewardPool,
		WinnerReward: m.WinnerReward,
	}
}

func predictionToDTO(p match.Prediction) predictionDTO {
	return predictionDTO{
		MatchID:   p.MatchID,
		HomeScore: p.HomeScore,
		AwayScore: p.AwayScore,
		Settled:   p.Settled,
		Correct:   p.Correct,
		Payout:    p.Payout,
		CreatedAt: formatTime(p.CreatedAt),
	}
}

func standingToDTO(s leaguetable.Standing) standingDTO {
	t := s.Team
	return standingDTO{
		Position:       s.Position,
		TeamID:         t.ID,
		Name:           t.Name,
		League:         t.League,
		Division:       t.Division,
		City:           t.City,
		Played:         t.Played(),
		Won:            t.Won,
		Drawn:          t.Drawn,
		Lost:           t.Lost,
		GoalsFor:       t.GoalsFor,
		GoalsAgainst:   t.GoalsAgainst,
		GoalDifference: t.GoalDifference(),
		Points:         t.Points(),
	}
}

func tierToDTO(t tier.Tier) tierDTO {
	return tierDTO{Name: t.Name, Threshold: t.Threshold}
}

func tierProgressToDTO(p tier.Progress) tierProgressDTO {
	out := tierProgressDTO{
		Points:        p.Points,
		Current:       tierToDTO(p.Current),
		Percent:       p.Percent,
		PointsToNext:  p.PointsToNext,
		IsHighestTier: p.IsHighestTier,
	}
	if p.Next != nil {
		next := tierToDTO(*p.Next)
		out.Next = &next
	}
	return out
}

func postToDTO(p social.Post) postDTO {
	return postDTO{
		ID:         p.ID,
		AuthorID:   p.AuthorID,
		AuthorName: p.AuthorName,
		Content:    p.Content,
		Likes:      p.Likes,
		CreatedAt:  formatTime(p.CreatedAt),
	}
}

func achievementToDTO(a profile.Achievement) achievementDTO {
	out := achievementDTO{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		Points:      a.Points,
		Unlocked:    a.Unlocked(),
	}
	if a.UnlockedAt != nil {
		out.UnlockedAt = formatTime(*a.UnlockedAt)
	}
	return out
}

func fanProfileToDTO(fp usecase.FanProfile) profileDTO {
	achievements := make([]achievementDTO, 0, len(fp.Achievements))
	for _, a := range fp.Achievements {
		achievements = append(achievements, achievementToDTO(a))
	}
	return profileDTO{
		FanID:         fp.Profile.FanID,
		DisplayName:   fp.Profile.DisplayName,
		FavoriteTeam:  fp.Profile.FavoriteTeam,
		Points:        fp.Profile.Points,
		JoinedAt:      formatTime(fp.Profile.JoinedAt),
		Tier:          tierProgressToDTO(fp.Tier),
		Achievements:  achievements,
		UnlockedCount: fp.UnlockedCount,
		WalletAddress: fp.WalletAddress,
		Balance:       fp.Balance,
		TotalStaked:   fp.TotalStaked,
		OpenStakes:    fp.OpenStakes,
	}
}

func streamToDTO(s livestream.Stream) streamDTO {
	return streamDTO{
		ID:        s.ID,
		MatchID:   s.MatchID,
		Title:     s.Title,
		Viewers:   s.Viewers,
		IsLive:    s.IsLive,
		StartedAt: formatTime(s.StartedAt),
	}
}
