package memory

import (
	"time"

	"github.com/riskibarqy/bonk-fanzone/internal/domain/leaguetable"
	"github.com/riskibarqy/bonk-fanzone/internal/domain/livestream"
	"github.com/riskibarqy/bonk-fanzone/internal/domain/match"
	"github.com/riskibarqy/bonk-fanzone/internal/domain/profile"
	"github.com/riskibarqy/bonk-fanzone/internal/domain/social"
	"github.com/riskibarqy/bonk-fanzone/internal/domain/staking"
	"github.com/riskibarqy/bonk-fanzone/internal/domain/wallet"
)

const (
	LeagueKreisligaA = "Kreisliga A"
	LeagueKreisligaB = "Kreisliga B"
	LeagueBezirk     = "Bezirksliga"

	// Counterparty wallets the demo fan can send BONK to.
	FanIDRivalUltra  = "fan-ultra-ruhr"
	FanIDStadiumDJ   = "fan-stadium-dj"
	AddressRival     = "BoNkRuhr1111111111111111111111111111111111"
	AddressStadiumDJ = "BoNkDJ222222222222222222222222222222222222"
)

func SeedTeams() []leaguetable.Team {
	return []leaguetable.Team{
		{ID: "sv-dortmund-nord", Name: "SV Dortmund Nord", League: LeagueKreisligaA, Division: "Staffel 1", City: "Dortmund", Won: 11, Drawn: 3, Lost: 2, GoalsFor: 38, GoalsAgainst: 15},
		{ID: "tus-eving", Name: "TuS Eving-Lindenhorst", League: LeagueKreisligaA, Division: "Staffel 1", City: "Dortmund", Won: 10, Drawn: 4, Lost: 2, GoalsFor: 33, GoalsAgainst: 14},
		{ID: "vfb-bochum-west", Name: "VfB Bochum West", League: LeagueKreisligaA, Division: "Staffel 2", City: "Bochum", Won: 10, Drawn: 4, Lost: 2, GoalsFor: 35, GoalsAgainst: 16},
		{ID: "fc-herne-sued", Name: "FC Herne Süd", League: LeagueKreisligaA, Division: "Staffel 2", City: "Herne", Won: 7, Drawn: 5, Lost: 4, GoalsFor: 27, GoalsAgainst: 22},
		{ID: "sc-unna", Name: "SC Unna 08", League: LeagueKreisligaB, Division: "Staffel 3", City: "Unna", Won: 9, Drawn: 2, Lost: 5, GoalsFor: 29, GoalsAgainst: 21},
		{ID: "bv-luenen", Name: "BV Lünen 05", League: LeagueKreisligaB, Division: "Staffel 3", City: "Lünen", Won: 6, Drawn: 6, Lost: 4, GoalsFor: 24, GoalsAgainst: 24},
		{ID: "dsc-wanne", Name: "DSC Wanne-Eickel Reserve", League: LeagueKreisligaB, Division: "Staffel 4", City: "Herne", Won: 6, Drawn: 6, Lost: 4, GoalsFor: 24, GoalsAgainst: 24},
		{ID: "sg-castrop", Name: "SG Castrop-Rauxel", League: LeagueBezirk, Division: "Gruppe 7", City: "Castrop-Rauxel", Won: 12, Drawn: 1, Lost: 3, GoalsFor: 41, GoalsAgainst: 18},
		{ID: "rw-hagen", Name: "Rot-Weiß Hagen", League: LeagueBezirk, Division: "Gruppe 7", City: "Hagen", Won: 8, Drawn: 3, Lost: 5, GoalsFor: 30, GoalsAgainst: 25},
		{ID: "ssv-witten", Name: "SSV Witten 07", League: LeagueBezirk, Division: "Gruppe 8", City: "Witten", Won: 3, Drawn: 4, Lost: 9, GoalsFor: 17, GoalsAgainst: 33},
	}
}

func SeedMatches(now time.Time) []match.Match {
	intPtr := func(v int) *int { return &v }
	day := 24 * time.Hour

	return []match.Match{
		{ID: "m-ruhr-derby", League: LeagueKreisligaA, HomeTeam: "SV Dortmund Nord", AwayTeam: "VfB Bochum West", KickoffAt: now.Add(2 * day), Venue: "Sportplatz Nordmarkt", Status: match.StatusScheduled, RewardPool: 50_000, WinnerReward: 2_500},
		{ID: "m-eving-herne", League: LeagueKreisligaA, HomeTeam: "TuS Eving-Lindenhorst", AwayTeam: "FC Herne Süd", KickoffAt: now.Add(3 * day), Venue: "Bezirkssportanlage Eving", Status: match.StatusScheduled, RewardPool: 25_000, WinnerReward: 1_000},
		{ID: "m-unna-luenen", League: LeagueKreisligaB, HomeTeam: "SC Unna 08", AwayTeam: "BV Lünen 05", HomeScore: intPtr(1), AwayScore: intPtr(1), KickoffAt: now.Add(-45 * time.Minute), Venue: "Stadion Bergenkamp", Status: match.StatusLive, RewardPool: 20_000, WinnerReward: 1_000},
		{ID: "m-castrop-hagen", League: LeagueBezirk, HomeTeam: "SG Castrop-Rauxel", AwayTeam: "Rot-Weiß Hagen", HomeScore: intPtr(3), AwayScore: intPtr(1), KickoffAt: now.Add(-3 * day), Venue: "Stadion Schwerin", Status: match.StatusFinished, RewardPool: 40_000, WinnerReward: 2_000},
		{ID: "m-witten-wanne", League: LeagueBezirk, HomeTeam: "SSV Witten 07", AwayTeam: "DSC Wanne-Eickel Reserve", KickoffAt: now.Add(-1 * day), Venue: "Wullenstadion", Status: match.StatusPostponed, RewardPool: 15_000, WinnerReward: 500},
	}
}

func SeedStakingPools() []staking.Pool {
	return []staking.Pool{
		{ID: "flex", Name: "Flexible Kickoff", APY: 0.05, LockDays: 0, MinStake: 100},
		{ID: "season-30", Name: "Matchday 30", APY: 0.12, LockDays: 30, MinStake: 1_000, TotalStaked: 4_200_000},
		{ID: "season-90", Name: "Half Season 90", APY: 0.18, LockDays: 90, MinStake: 5_000, TotalStaked: 12_750_000},
		{ID: "ultra-365", Name: "Ultras Full Season", APY: 0.25, LockDays: 365, MinStake: 25_000, TotalStaked: 31_000_000},
	}
}

func SeedWallets(demoFanID, demoAddress string, demoBalance int64) []wallet.Wallet {
	return []wallet.Wallet{
		{FanID: demoFanID, Address: demoAddress, Balance: demoBalance},
		{FanID: FanIDRivalUltra, Address: AddressRival, Balance: 250_000},
		{FanID: FanIDStadiumDJ, Address: AddressStadiumDJ, Balance: 80_000},
	}
}

func SeedProfiles(demoFanID string, now time.Time) []profile.Profile {
	return []profile.Profile{
		{FanID: demoFanID, DisplayName: "Nordkurve Niko", FavoriteTeam: "SV Dortmund Nord", Points: 3_250, JoinedAt: now.AddDate(-1, -2, 0)},
		{FanID: FanIDRivalUltra, DisplayName: "Ruhrpott Rita", FavoriteTeam: "VfB Bochum West", Points: 18_400, JoinedAt: now.AddDate(-2, 0, 0)},
		{FanID: FanIDStadiumDJ, DisplayName: "DJ Anstoss", FavoriteTeam: "SG Castrop-Rauxel", Points: 600, JoinedAt: now.AddDate(0, -3, 0)},
	}
}

func SeedAchievements(demoFanID string, now time.Time) map[string][]profile.Achievement {
	unlocked := func(d time.Duration) *time.Time {
		v := now.Add(-d)
		return &v
	}

	return map[string][]profile.Achievement{
		demoFanID: {
			{ID: "first-prediction", Title: "Crystal Ball", Description: "Submit your first match prediction", Points: 100, UnlockedAt: unlocked(300 * time.Hour)},
			{ID: "first-stake", Title: "Diamond Paws", Description: "Stake BONK in any pool", Points: 250, UnlockedAt: unlocked(120 * time.Hour)},
			{ID: "derby-day", Title: "Derby Day", Description: "Watch a Ruhr derby live stream", Points: 500},
			{ID: "collector", Title: "Collector", Description: "Own five fan NFTs", Points: 1_000},
		},
	}
}

func SeedPosts(now time.Time) []social.Post {
	return []social.Post{
		{ID: "post-1", AuthorID: FanIDRivalUltra, AuthorName: "Ruhrpott Rita", Content: "Bochum West travelling with 300 fans on Sunday. Bring the BONK!", Likes: 142, CreatedAt: now.Add(-6 * time.Hour)},
		{ID: "post-2", AuthorID: FanIDStadiumDJ, AuthorName: "DJ Anstoss", Content: "Castrop 3-1 Hagen. Who predicted that scoreline?", Likes: 87, CreatedAt: now.Add(-70 * time.Hour)},
		{ID: "post-3", AuthorID: FanIDRivalUltra, AuthorName: "Ruhrpott Rita", Content: "Just moved my stack into the Ultras Full Season pool.", Likes: 35, CreatedAt: now.Add(-2 * time.Hour)},
	}
}

func SeedLiveStreams(now time.Time) []livestream.Stream {
	return []livestream.Stream{
		{ID: "stream-unna-luenen", MatchID: "m-unna-luenen", Title: "LIVE: SC Unna 08 vs BV Lünen 05", Viewers: 1_240, IsLive: true, StartedAt: now.Add(-50 * time.Minute)},
		{ID: "stream-derby-preview", MatchID: "m-ruhr-derby", Title: "Ruhr Derby Preview Show", Viewers: 0, IsLive: false},
		{ID: "stream-castrop-replay", MatchID: "m-castrop-hagen", Title: "Replay: Castrop 3-1 Hagen", Viewers: 312, IsLive: false, StartedAt: now.Add(-72 * time.Hour)},
	}
}
