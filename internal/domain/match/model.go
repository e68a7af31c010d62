package match

import (
	"errors"
	"strings"
	"time"
)

var ErrPredictionExists = errors.New("prediction already submitted")

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusLive      Status = "live"
	StatusFinished  Status = "finished"
	StatusPostponed Status = "postponed"
)

var AllStatuses = map[Status]struct{}{
	StatusScheduled: {},
	StatusLive:      {},
	StatusFinished:  {},
	StatusPostponed: {},
}

func ParseStatus(value string) (Status, bool) {
	status := Status(strings.ToLower(strings.TrimSpace(value)))
	_, ok := AllStatuses[status]
	return status, ok
}

// Match is a fixture fans can watch, predict and earn BONK on.
// Status is a label set by the catalog; nothing here transitions it.
type Match struct {
	ID           string
	League       string
	HomeTeam     string
	AwayTeam     string
	HomeScore    *int
	AwayScore    *int
	KickoffAt    time.Time
	Venue        string
	Status       Status
	RewardPool   int64
	WinnerReward int64
}

// Clone copies the match without sharing the score pointers.
func (m Match) Clone() Match {
	if m.HomeScore != nil {
		v := *m.HomeScore
		m.HomeScore = &v
	}
	if m.AwayScore != nil {
		v := *m.AwayScore
		m.AwayScore = &v
	}
	return m
}

func (m Match) HasFinalScore() bool {
	return m.Status == StatusFinished && m.HomeScore != nil && m.AwayScore != nil
}

// Prediction is a fan's score guess for one match.
type Prediction struct {
	FanID     string
	MatchID   string
	HomeScore int
	AwayScore int
	Settled   bool
	Correct   bool
	Payout    int64
	CreatedAt time.Time
}

func (p Prediction) Matches(m Match) bool {
	if !m.HasFinalScore() {
		return false
	}
	return p.HomeScore == *m.HomeScore && p.AwayScore == *m.AwayScore
}
