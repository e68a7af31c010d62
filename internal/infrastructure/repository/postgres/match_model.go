package postgres

import (
	"database/sql"
	"time"
)

type matchTableModel struct {
	ID           int64         `db:"id"`
	PublicID     string        `db:"public_id"`
	League       string        `db:"league"`
	HomeTeam     string        `db:"home_team"`
	AwayTeam     string        `db:"away_team"`
	HomeScore    sql.NullInt64 `db:"home_score"`
	AwayScore    sql.NullInt64 `db:"away_score"`
	KickoffAt    time.Time     `db:"kickoff_at"`
	Venue        string        `db:"venue"`
	Status       string        `db:"status"`
	RewardPool   int64         `db:"reward_pool"`
	WinnerReward int64         `db:"winner_reward"`
	CreatedAt    time.Time     `db:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at"`
	DeletedAt    *time.Time    `db:"deleted_at"`
}

type matchInsertModel struct {
	PublicID     string    `db:"public_id"`
	League       string    `db:"league"`
	HomeTeam     string    `db:"home_team"`
	AwayTeam     string    `db:"away_team"`
	HomeScore    *int64    `db:"home_score"`
	AwayScore    *int64    `db:"away_score"`
	KickoffAt    time.Time `db:"kickoff_at"`
	Venue        string    `db:"venue"`
	Status       string    `db:"status"`
	RewardPool   int64     `db:"reward_pool"`
	WinnerReward int64     `db:"winner_reward"`
}
