package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/bonk-fanzone/internal/domain/nft"
	"github.com/riskibarqy/bonk-fanzone/internal/domain/tier"
	"github.com/riskibarqy/bonk-fanzone/internal/infrastructure/ledger"
	"github.com/riskibarqy/bonk-fanzone/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/bonk-fanzone/internal/platform/id"
	"github.com/riskibarqy/bonk-fanzone/internal/platform/logging"
	"github.com/riskibarqy/bonk-fanzone/internal/usecase"
)

const (
	testFanID      = "fan-demo"
	testFanAddress = "BoNkDemo00000000000000000000000000000000000"
	testBalance    = 100_000
)

var testNow = time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)

type testAPI struct {
	router   http.Handler
	streams  *usecase.LiveStreamService
	clock    *clockwork.FakeClock
	handlers *Handler
}

func newTestAPI(t *testing.T) testAPI {
	t.Helper()

	clock := clockwork.NewFakeClockAt(testNow)
	logger := logging.NewNop()

	wallets := memory.NewWalletRepository(memory.SeedWallets(testFanID, testFanAddress, testBalance))
	txs := memory.NewTransactionRepository()
	profiles := memory.NewProfileRepository(memory.SeedProfiles(testFanID, testNow), memory.SeedAchievements(testFanID, testNow))
	positions := memory.NewStakePositionRepository()
	sim := ledger.NewSimulator(ledger.Config{}, clock)

	calculator, err := usecase.NewCalculatorService(tier.DefaultTiers())
	require.NoError(t, err)

	streams := usecase.NewLiveStreamService(memory.NewLiveStreamRepository(memory.SeedLiveStreams(testNow)), clock, logger, usecase.LiveStreamConfig{Seed: 7})

	handler := NewHandler(HandlerDeps{
		Wallets: usecase.NewWalletService(wallets, txs, sim, id.NewUUIDGenerator("tx_"), clock),
		Staking: usecase.NewStakingService(
			memory.NewStakingPoolRepository(memory.SeedStakingPools()),
			positions, wallets, txs, sim, id.NewUUIDGenerator("stk_"), clock, 2,
		),
		NFTs: usecase.NewNFTService(
			memory.NewNFTRepository(nft.Generate(12, 42, testNow)),
			wallets, txs, sim, id.NewUUIDGenerator("nft_"), clock,
			usecase.NFTServiceConfig{MintFee: 500},
		),
		Matches: usecase.NewMatchService(
			memory.NewMatchRepository(memory.SeedMatches(testNow)),
			memory.NewPredictionRepository(),
			wallets, txs, profiles, sim, id.NewUUIDGenerator("tx_"), clock,
		),
		Rankings:    usecase.NewRankingService(memory.NewTeamRepository(memory.SeedTeams())),
		Calculator:  calculator,
		Social:      usecase.NewSocialService(memory.NewPostRepository(memory.SeedPosts(testNow)), profiles, id.NewUUIDGenerator("post_"), clock),
		Profiles:    usecase.NewProfileService(profiles, wallets, positions, tier.DefaultTiers()),
		LiveStreams: streams,
	}, logger)

	return testAPI{
		router:   NewRouter(handler, logger, RouterConfig{DemoFanID: testFanID}),
		streams:  streams,
		clock:    clock,
		handlers: handler,
	}
}

func (a testAPI) do(t *testing.T, method, path, body string, headers ...string) (*httptest.ResponseRecorder, googleResponseEnvelope) {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	var envelope googleResponseEnvelope
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &envelope), rec.Body.String())
	return rec, envelope
}

func dataAs[T any](t *testing.T, envelope googleResponseEnvelope) T {
	t.Helper()

	raw, err := sonic.Marshal(envelope.Data)
	require.NoError(t, err)

	var out T
	require.NoError(t, sonic.Unmarshal(raw, &out))
	return out
}

func TestHandler_Healthz(t *testing.T) {
	api := newTestAPI(t)

	rec, envelope := api.do(t, http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", dataAs[map[string]string](t, envelope)["status"])
}

func TestHandler_GetWalletUsesDemoFanAndHeader(t *testing.T) {
	api := newTestAPI(t)

	rec, envelope := api.do(t, http.MethodGet, "/v1/wallet", "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := dataAs[walletDTO](t, envelope)
	assert.Equal(t, testFanID, got.FanID)
	assert.EqualValues(t, testBalance, got.Balance)

	rec, envelope = api.do(t, http.MethodGet, "/v1/wallet", "", FanIDHeader, memory.FanIDRivalUltra)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, memory.AddressRival, dataAs[walletDTO](t, envelope).Address)

	rec, envelope = api.do(t, http.MethodGet, "/v1/wallet", "", FanIDHeader, "fan-nobody")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "NOT_FOUND", envelope.Error.Status)
}

func TestHandler_TransferDebitsAndCreditsFanRecipient(t *testing.T) {
	api := newTestAPI(t)

	rec, envelope := api.do(t, http.MethodPost, "/v1/wallet/transfers",
		`{"toAddress":"`+memory.AddressRival+`","amount":1500,"memo":"derby bet"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	got := dataAs[transferDTO](t, envelope)
	assert.EqualValues(t, testBalance-1500, got.Wallet.Balance)
	assert.EqualValues(t, -1500, got.Transaction.Amount)
	assert.Equal(t, "confirmed", got.Transaction.Status)
	assert.NotEmpty(t, got.Transaction.Signature)

	_, envelope = api.do(t, http.MethodGet, "/v1/wallet", "", FanIDHeader, memory.FanIDRivalUltra)
	assert.EqualValues(t, 250_000+1500, dataAs[walletDTO](t, envelope).Balance)

	_, envelope = api.do(t, http.MethodGet, "/v1/wallet/transactions", "")
	txs := dataAs[[]transactionDTO](t, envelope)
	require.Len(t, txs, 1)
	assert.Equal(t, "transfer", txs[0].Kind)
}

func TestHandler_TransferErrors(t *testing.T) {
	api := newTestAPI(t)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{name: "over balance", body: `{"toAddress":"` + memory.AddressRival + `","amount":100001}`, status: http.StatusUnprocessableEntity},
		{name: "zero amount", body: `{"toAddress":"` + memory.AddressRival + `","amount":0}`, status: http.StatusBadRequest},
		{name: "unknown field", body: `{"toAddress":"` + memory.AddressRival + `","amount":5,"fee":1}`, status: http.StatusBadRequest},
		{name: "malformed json", body: `{"toAddress":`, status: http.StatusBadRequest},
		{name: "own wallet", body: `{"toAddress":"` + testFanAddress + `","amount":5}`, status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, envelope := api.do(t, http.MethodPost, "/v1/wallet/transfers", tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.NotNil(t, envelope.Error)
		})
	}

	_, envelope := api.do(t, http.MethodGet, "/v1/wallet", "")
	assert.EqualValues(t, testBalance, dataAs[walletDTO](t, envelope).Balance)
}

func TestHandler_PredictOnceThenConflict(t *testing.T) {
	api := newTestAPI(t)

	rec, envelope := api.do(t, http.MethodPost, "/v1/matches/m-ruhr-derby/predictions", `{"homeScore":2,"awayScore":1}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, 2, dataAs[predictionDTO](t, envelope).HomeScore)

	rec, _ = api.do(t, http.MethodPost, "/v1/matches/m-ruhr-derby/predictions", `{"homeScore":0,"awayScore":0}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, _ = api.do(t, http.MethodPost, "/v1/matches/m-castrop-hagen/predictions", `{"homeScore":3,"awayScore":1}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, _ = api.do(t, http.MethodPost, "/v1/matches/m-ruhr-derby/predictions", `{"homeScore":2}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, envelope = api.do(t, http.MethodGet, "/v1/matches/m-ruhr-derby/prediction", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "m-ruhr-derby", dataAs[predictionDTO](t, envelope).MatchID)
}

func TestHandler_RecordResultAndSettlePaysWinner(t *testing.T) {
	api := newTestAPI(t)

	rec, _ := api.do(t, http.MethodPost, "/v1/matches/m-ruhr-derby/predictions", `{"homeScore":2,"awayScore":1}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, _ = api.do(t, http.MethodPost, "/v1/matches/m-ruhr-derby/settle", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, envelope := api.do(t, http.MethodPost, "/v1/matches/m-ruhr-derby/result", `{"homeScore":2,"awayScore":1,"final":true}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "finished", dataAs[matchDTO](t, envelope).Status)

	rec, envelope = api.do(t, http.MethodPost, "/v1/matches/m-ruhr-derby/settle", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	settled := dataAs[settlementDTO](t, envelope)
	assert.Equal(t, 1, settled.Winners)
	assert.EqualValues(t, 50_000, settled.PayoutEach)

	_, envelope = api.do(t, http.MethodGet, "/v1/wallet", "")
	assert.EqualValues(t, testBalance+50_000, dataAs[walletDTO](t, envelope).Balance)

	rec, envelope = api.do(t, http.MethodPost, "/v1/matches/m-ruhr-derby/settle", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, dataAs[settlementDTO](t, envelope).Settled)
}

func TestHandler_ListMatchesRejectsUnknownStatus(t *testing.T) {
	api := newTestAPI(t)

	rec, envelope := api.do(t, http.MethodGet, "/v1/matches?status=live", "")
	require.Equal(t, http.StatusOK, rec.Code)
	matches := dataAs[[]matchDTO](t, envelope)
	require.Len(t, matches, 1)
	assert.Equal(t, "m-unna-luenen", matches[0].ID)

	rec, _ = api.do(t, http.MethodGet, "/v1/matches?status=abandoned", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_RankingsKeepPositionWhenFiltered(t *testing.T) {
	api := newTestAPI(t)

	rec, envelope := api.do(t, http.MethodGet, "/v1/rankings?league=Bezirksliga", "")
	require.Equal(t, http.StatusOK, rec.Code)

	got := dataAs[rankingDTO](t, envelope)
	require.Len(t, got.Standings, 3)
	assert.Equal(t, "sg-castrop", got.Standings[0].TeamID)
	assert.Equal(t, 1, got.Standings[0].Position)
	assert.Equal(t, 37, got.Standings[0].Points)
	assert.Greater(t, got.Standings[2].Position, 3)

	rec, _ = api.do(t, http.MethodGet, "/v1/rankings/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_CalculatorsClampInputs(t *testing.T) {
	api := newTestAPI(t)

	rec, envelope := api.do(t, http.MethodGet, "/v1/rewards/estimate?principal=36500&apy=0.1&days=10", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 100, dataAs[rewardEstimateDTO](t, envelope).Reward)

	rec, envelope = api.do(t, http.MethodGet, "/v1/rewards/estimate?principal=-5&apy=0.1&days=10", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 0, dataAs[rewardEstimateDTO](t, envelope).Reward)

	rec, _ = api.do(t, http.MethodGet, "/v1/rewards/estimate?days=ten", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, envelope = api.do(t, http.MethodGet, "/v1/tiers/progress?points=3000", "")
	require.Equal(t, http.StatusOK, rec.Code)
	progress := dataAs[tierProgressDTO](t, envelope)
	assert.Equal(t, "Silver", progress.Current.Name)
	require.NotNil(t, progress.Next)
	assert.Equal(t, "Gold", progress.Next.Name)
	assert.EqualValues(t, 2000, progress.PointsToNext)
}

func TestHandler_StakeAndUnstakeFlexible(t *testing.T) {
	api := newTestAPI(t)

	rec, envelope := api.do(t, http.MethodPost, "/v1/staking/stakes", `{"poolId":"flex","amount":36500}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	staked := dataAs[stakeDTO](t, envelope)
	assert.EqualValues(t, testBalance-36500, staked.Wallet.Balance)

	api.clock.Advance(10 * 24 * time.Hour)

	rec, envelope = api.do(t, http.MethodGet, "/v1/staking/stakes", "")
	require.Equal(t, http.StatusOK, rec.Code)
	views := dataAs[[]positionDTO](t, envelope)
	require.Len(t, views, 1)
	assert.True(t, views[0].Unlocked)
	assert.EqualValues(t, 50, views[0].Accrued)

	rec, envelope = api.do(t, http.MethodPost, "/v1/staking/stakes/"+staked.Position.ID+"/unstake", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.EqualValues(t, 36550, dataAs[unstakeDTO](t, envelope).Payout)

	rec, _ = api.do(t, http.MethodPost, "/v1/staking/stakes/"+staked.Position.ID+"/unstake", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, _ = api.do(t, http.MethodPost, "/v1/staking/stakes", `{"poolId":"ultra-365","amount":100}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_MintAndPurchaseNFT(t *testing.T) {
	api := newTestAPI(t)

	rec, envelope := api.do(t, http.MethodPost, "/v1/nfts/mint", `{"title":"Nordkurve Banner","rarity":"rare","price":2000,"list":true}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	minted := dataAs[nftPurchaseDTO](t, envelope)
	assert.Equal(t, testFanID, minted.NFT.OwnerID)
	assert.EqualValues(t, testBalance-500, minted.Wallet.Balance)

	rec, _ = api.do(t, http.MethodPost, "/v1/nfts/"+minted.NFT.ID+"/purchase", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, envelope = api.do(t, http.MethodPost, "/v1/nfts/"+minted.NFT.ID+"/purchase", "", FanIDHeader, memory.FanIDRivalUltra)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	bought := dataAs[nftPurchaseDTO](t, envelope)
	assert.Equal(t, memory.FanIDRivalUltra, bought.NFT.OwnerID)
	assert.False(t, bought.NFT.Listed)

	_, envelope = api.do(t, http.MethodGet, "/v1/wallet", "")
	assert.EqualValues(t, testBalance-500+2000, dataAs[walletDTO](t, envelope).Balance)

	rec, envelope = api.do(t, http.MethodGet, "/v1/nfts?mine=true", "", FanIDHeader, memory.FanIDRivalUltra)
	require.Equal(t, http.StatusOK, rec.Code)
	page := dataAs[nftPageDTO](t, envelope)
	assert.Equal(t, 1, page.Total)

	rec, _ = api.do(t, http.MethodGet, "/v1/nfts?rarity=mythic", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_FeedPostAndLike(t *testing.T) {
	api := newTestAPI(t)

	rec, envelope := api.do(t, http.MethodPost, "/v1/feed/posts", `{"content":"Derby day! Who is coming?"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	post := dataAs[postDTO](t, envelope)
	assert.Equal(t, "Nordkurve Niko", post.AuthorName)

	rec, envelope = api.do(t, http.MethodPost, "/v1/feed/posts/"+post.ID+"/like", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, dataAs[postDTO](t, envelope).Likes)

	rec, envelope = api.do(t, http.MethodGet, "/v1/feed?limit=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	feed := dataAs[[]postDTO](t, envelope)
	require.Len(t, feed, 2)
	assert.Equal(t, post.ID, feed[0].ID)
}

func TestHandler_ProfileCombinesWalletAndTier(t *testing.T) {
	api := newTestAPI(t)

	rec, envelope := api.do(t, http.MethodGet, "/v1/profile", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	got := dataAs[profileDTO](t, envelope)
	assert.Equal(t, "Nordkurve Niko", got.DisplayName)
	assert.Equal(t, "Silver", got.Tier.Current.Name)
	assert.Equal(t, 2, got.UnlockedCount)
	assert.Equal(t, testFanAddress, got.WalletAddress)
}

func TestHandler_RecoversPanics(t *testing.T) {
	api := newTestAPI(t)
	api.handlers.social = nil

	rec, envelope := api.do(t, http.MethodGet, "/v1/feed", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "internal server error", envelope.Error.Message)
}

func TestHandler_WatchLiveStreamPushesViewerTicks(t *testing.T) {
	api := newTestAPI(t)
	srv := httptest.NewServer(api.router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/streams/stream-unna-luenen/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var first streamEvent
	require.NoError(t, conn.ReadJSON(&first))
	assert.Equal(t, "snapshot", first.Type)
	assert.EqualValues(t, 1_240, first.Stream.Viewers)

	// The subscription is registered before the snapshot is written.
	_, err = api.streams.Tick(context.Background())
	require.NoError(t, err)

	var next streamEvent
	require.NoError(t, conn.ReadJSON(&next))
	assert.Equal(t, "viewers", next.Type)
	assert.GreaterOrEqual(t, next.Stream.Viewers, first.Stream.Viewers)
}

func TestHandler_WatchUnknownStreamIsNotUpgraded(t *testing.T) {
	api := newTestAPI(t)
	srv := httptest.NewServer(api.router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/streams/nope/ws"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
