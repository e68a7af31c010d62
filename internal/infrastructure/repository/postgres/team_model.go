package postgres

import "time"

type teamTableModel struct {
	ID           int64      `db:"id"`
	PublicID     string     `db:"public_id"`
	Name         string     `db:"name"`
	League       string     `db:"league"`
	Division     string     `db:"division"`
	City         string     `db:"city"`
	Won          int        `db:"won"`
	Drawn        int        `db:"drawn"`
	Lost         int        `db:"lost"`
	GoalsFor     int        `db:"goals_for"`
	GoalsAgainst int        `db:"goals_against"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
	DeletedAt    *time.Time `db:"deleted_at"`
}

type teamInsertModel struct {
	PublicID     string `db:"public_id"`
	Name         string `db:"name"`
	League       string `db:"league"`
	Division     string `db:"division"`
	City         string `db:"city"`
	Won          int    `db:"won"`
	Drawn        int    `db:"drawn"`
	Lost         int    `db:"lost"`
	GoalsFor     int    `db:"goals_for"`
	GoalsAgainst int    `db:"goals_against"`
}
