package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/bonk-fanzone/internal/domain/social"
)

type PostRepository struct {
	mu    sync.RWMutex
	posts []social.Post
}

func NewPostRepository(posts []social.Post) *PostRepository {
	return &PostRepository{posts: append([]social.Post(nil), posts...)}
}

// ListRecent returns newest first, ties broken by insertion order (newer insert wins).
func (r *PostRepository) ListRecent(_ context.Context, limit int) ([]social.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]social.Post, 0, len(r.posts))
	for i := len(r.posts) - 1; i >= 0; i-- {
		out = append(out, r.posts[i])
	}
	sortPostsNewestFirst(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *PostRepository) Insert(_ context.Context, p social.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.posts {
		if existing.ID == p.ID {
			return fmt.Errorf("post %s already exists", p.ID)
		}
	}
	r.posts = append(r.posts, p)
	return nil
}

func (r *PostRepository) Like(_ context.Context, postID string) (social.Post, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.posts {
		if r.posts[i].ID == postID {
			r.posts[i].Likes++
			return r.posts[i], true, nil
		}
	}
	return social.Post{}, false, nil
}

func sortPostsNewestFirst(posts []social.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
}
