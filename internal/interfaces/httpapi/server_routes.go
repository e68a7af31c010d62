package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerLeagueRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/rankings", handler.ListRankings)
	mux.HandleFunc("GET /v1/rankings/{teamID}", handler.GetTeamRanking)
}

func registerCalculatorRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/rewards/estimate", handler.EstimateReward)
	mux.HandleFunc("GET /v1/tiers", handler.ListTiers)
	mux.HandleFunc("GET /v1/tiers/progress", handler.GetTierProgress)
}

func registerMatchRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/matches", handler.ListMatches)
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
	mux.HandleFunc("GET /v1/matches/{matchID}/prediction", handler.GetMyPrediction)
	mux.HandleFunc("POST /v1/matches/{matchID}/predictions", handler.PredictMatch)
	mux.HandleFunc("POST /v1/matches/{matchID}/result", handler.RecordMatchResult)
	mux.HandleFunc("POST /v1/matches/{matchID}/settle", handler.SettleMatch)
}

func registerNFTRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/nfts", handler.ListNFTs)
	mux.HandleFunc("POST /v1/nfts/mint", handler.MintNFT)
	mux.HandleFunc("GET /v1/nfts/{nftID}", handler.GetNFT)
	mux.HandleFunc("POST /v1/nfts/{nftID}/like", handler.LikeNFT)
	mux.HandleFunc("POST /v1/nfts/{nftID}/purchase", handler.PurchaseNFT)
}

func registerStakingRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/staking/pools", handler.ListStakingPools)
	mux.HandleFunc("GET /v1/staking/pools/{poolID}/estimate", handler.EstimateStake)
	mux.HandleFunc("GET /v1/staking/stakes", handler.ListMyStakes)
	mux.HandleFunc("POST /v1/staking/stakes", handler.Stake)
	mux.HandleFunc("POST /v1/staking/stakes/{positionID}/unstake", handler.Unstake)
	mux.HandleFunc("GET /v1/staking/accruals", handler.GetAccrualSnapshot)
}

func registerWalletRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/wallet", handler.GetWallet)
	mux.HandleFunc("GET /v1/wallet/transactions", handler.ListTransactions)
	mux.HandleFunc("POST /v1/wallet/transfers", handler.Transfer)
	mux.HandleFunc("GET /v1/profile", handler.GetProfile)
}

func registerSocialRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/feed", handler.ListFeed)
	mux.HandleFunc("POST /v1/feed/posts", handler.CreatePost)
	mux.HandleFunc("POST /v1/feed/posts/{postID}/like", handler.LikePost)
}

func registerLiveStreamRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/streams", handler.ListLiveStreams)
	mux.HandleFunc("GET /v1/streams/{streamID}", handler.GetLiveStream)
	mux.HandleFunc("GET /v1/streams/{streamID}/ws", handler.WatchLiveStream)
}
