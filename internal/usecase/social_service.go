package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonboulle/clockwork"

	"github.com/riskibarqy/bonk-fanzone/internal/domain/profile"
	"github.com/riskibarqy/bonk-fanzone/internal/domain/social"
	"github.com/riskibarqy/bonk-fanzone/internal/platform/id"
)

const (
	defaultFeedLimit = 20
	maxFeedLimit     = 100
)

type CreatePostInput struct {
	FanID   string
	Content string
}

type SocialService struct {
	posts    social.Repository
	profiles profile.Repository
	ids      id.Generator
	clock    clockwork.Clock
}

func NewSocialService(posts social.Repository, profiles profile.Repository, ids id.Generator, clock clockwork.Clock) *SocialService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &SocialService{posts: posts, profiles: profiles, ids: ids, clock: clock}
}

func (s *SocialService) Feed(ctx context.Context, limit int) ([]social.Post, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SocialService.Feed")
	defer span.End()

	items, err := s.posts.ListRecent(ctx, clampLimit(limit, defaultFeedLimit, maxFeedLimit))
	if err != nil {
		return nil, fmt.Errorf("list feed: %w", err)
	}
	return items, nil
}

func (s *SocialService) CreatePost(ctx context.Context, input CreatePostInput) (social.Post, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SocialService.CreatePost")
	defer span.End()

	input.FanID = strings.TrimSpace(input.FanID)
	input.Content = strings.TrimSpace(input.Content)
	if input.FanID == "" {
		return social.Post{}, fmt.Errorf("%w: fan id is required", ErrInvalidInput)
	}
	if input.Content == "" {
		return social.Post{}, fmt.Errorf("%w: content is required", ErrInvalidInput)
	}
	if n := len([]rune(input.Content)); n > social.MaxPostRunes {
		return social.Post{}, fmt.Errorf("%w: content has %d characters, max %d", ErrInvalidInput, n, social.MaxPostRunes)
	}

	author, exists, err := s.profiles.GetByFan(ctx, input.FanID)
	if err != nil {
		return social.Post{}, fmt.Errorf("get author profile: %w", err)
	}
	if !exists {
		return social.Post{}, fmt.Errorf("%w: profile for fan=%s", ErrNotFound, input.FanID)
	}

	postID, err := s.ids.NewID()
	if err != nil {
		return social.Post{}, fmt.Errorf("generate post id: %w", err)
	}

	post := social.Post{
		ID:         postID,
		AuthorID:   author.FanID,
		AuthorName: author.DisplayName,
		Content:    input.Content,
		CreatedAt:  s.clock.Now().UTC(),
	}
	if err := s.posts.Insert(ctx, post); err != nil {
		return social.Post{}, fmt.Errorf("insert post: %w", err)
	}
	return post, nil
}

func (s *SocialService) Like(ctx context.Context, postID string) (social.Post, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SocialService.Like")
	defer span.End()

	postID = strings.TrimSpace(postID)
	if postID == "" {
		return social.Post{}, fmt.Errorf("%w: post id is required", ErrInvalidInput)
	}

	post, exists, err := s.posts.Like(ctx, postID)
	if err != nil {
		return social.Post{}, fmt.Errorf("like post: %w", err)
	}
	if !exists {
		return social.Post{}, fmt.Errorf("%w: post=%s", ErrNotFound, postID)
	}
	return post, nil
}
