package match

import "context"

// Repository describes match catalog persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Match, error)
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	SetResult(ctx context.Context, matchID string, homeScore, awayScore int, status Status) (Match, error)
}

// PredictionRepository stores fan predictions.
type PredictionRepository interface {
	ListByMatch(ctx context.Context, matchID string) ([]Prediction, error)
	Get(ctx context.Context, fanID, matchID string) (Prediction, bool, error)
	// Insert fails with ErrPredictionExists when the fan already predicted the match.
	Insert(ctx context.Context, p Prediction) error
	Update(ctx context.Context, p Prediction) error
	// ClaimUnsettled marks every unsettled prediction of the match as settled
	// and returns only the rows this call flipped.
	ClaimUnsettled(ctx context.Context, matchID string) ([]Prediction, error)
}
