package social

import (
	"context"
	"time"
)

const MaxPostRunes = 280

// Post is one entry in the fan social feed.
type Post struct {
	ID         string
	AuthorID   string
	AuthorName string
	Content    string
	Likes      int64
	CreatedAt  time.Time
}

// Repository describes feed persistence needs from use cases.
type Repository interface {
	ListRecent(ctx context.Context, limit int) ([]Post, error)
	Insert(ctx context.Context, p Post) error
	Like(ctx context.Context, postID string) (Post, bool, error)
}
