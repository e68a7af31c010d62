package postgres

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/riskibarqy/bonk-fanzone/internal/domain/match"
)

func TestIsNotFound(t *testing.T) {
	t.Run("matches wrapped no rows", func(t *testing.T) {
		if !isNotFound(fmt.Errorf("get match: %w", sql.ErrNoRows)) {
			t.Fatalf("expected true for wrapped sql.ErrNoRows")
		}
	})

	t.Run("ignores unrelated error", func(t *testing.T) {
		if isNotFound(fakeErr("pq: relation matches does not exist")) {
			t.Fatalf("expected false for unrelated error")
		}
	})
}

func TestNullInt64ToIntPtr(t *testing.T) {
	t.Run("returns value for valid", func(t *testing.T) {
		got := nullInt64ToIntPtr(sql.NullInt64{Int64: 3, Valid: true})
		if got == nil || *got != 3 {
			t.Fatalf("expected 3, got %v", got)
		}
	})

	t.Run("returns nil for null", func(t *testing.T) {
		if got := nullInt64ToIntPtr(sql.NullInt64{}); got != nil {
			t.Fatalf("expected nil, got %d", *got)
		}
	})
}

func TestMatchFromRow_UnknownStatusFallsBackToScheduled(t *testing.T) {
	got := matchFromRow(matchTableModel{
		PublicID:  "m-1",
		Status:    "abandoned",
		HomeScore: sql.NullInt64{Int64: 2, Valid: true},
	})
	if got.Status != match.StatusScheduled {
		t.Fatalf("expected scheduled, got %s", got.Status)
	}
	if got.HomeScore == nil || *got.HomeScore != 2 {
		t.Fatalf("expected home score 2, got %v", got.HomeScore)
	}
	if got.AwayScore != nil {
		t.Fatalf("expected nil away score, got %d", *got.AwayScore)
	}
}

func TestMatchFromRow_ParsesStatusCaseInsensitive(t *testing.T) {
	got := matchFromRow(matchTableModel{PublicID: "m-2", Status: "FINISHED"})
	if got.Status != match.StatusFinished {
		t.Fatalf("expected finished, got %s", got.Status)
	}
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
