package usecase

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/riskibarqy/bonk-fanzone/internal/domain/social"
	"github.com/riskibarqy/bonk-fanzone/internal/infrastructure/repository/memory"
)

func TestSocialService_CreatePostAndFeed(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClockAt(testNow)
	service := NewSocialService(
		memory.NewPostRepository(memory.SeedPosts(testNow)),
		memory.NewProfileRepository(memory.SeedProfiles(testFanID, testNow), nil),
		&sequenceIDGenerator{prefix: "post-new-"},
		clock,
	)

	created, err := service.CreatePost(t.Context(), CreatePostInput{FanID: testFanID, Content: "  Nordkurve is ready!  "})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	if created.Content != "Nordkurve is ready!" || created.AuthorName != "Nordkurve Niko" {
		t.Fatalf("unexpected post: %+v", created)
	}

	feed, err := service.Feed(t.Context(), 2)
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if len(feed) != 2 {
		t.Fatalf("feed length = %d, want 2", len(feed))
	}
	if feed[0].ID != created.ID {
		t.Fatalf("newest post = %s, want %s", feed[0].ID, created.ID)
	}
	if !feed[1].CreatedAt.Equal(testNow.Add(-2 * time.Hour)) {
		t.Fatalf("second post created at %s, want 2h ago", feed[1].CreatedAt)
	}

	liked, err := service.Like(t.Context(), created.ID)
	if err != nil {
		t.Fatalf("like: %v", err)
	}
	if liked.Likes != 1 {
		t.Fatalf("likes = %d, want 1", liked.Likes)
	}
}

func TestSocialService_CreatePostValidation(t *testing.T) {
	t.Parallel()

	service := NewSocialService(
		memory.NewPostRepository(nil),
		memory.NewProfileRepository(memory.SeedProfiles(testFanID, testNow), nil),
		&sequenceIDGenerator{prefix: "p-"},
		clockwork.NewFakeClockAt(testNow),
	)

	cases := []struct {
		name  string
		input CreatePostInput
		want  error
	}{
		{name: "empty content", input: CreatePostInput{FanID: testFanID, Content: "   "}, want: ErrInvalidInput},
		{name: "too long", input: CreatePostInput{FanID: testFanID, Content: strings.Repeat("ö", social.MaxPostRunes+1)}, want: ErrInvalidInput},
		{name: "unknown author", input: CreatePostInput{FanID: "ghost", Content: "hi"}, want: ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := service.CreatePost(t.Context(), tc.input); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	if _, err := service.CreatePost(t.Context(), CreatePostInput{FanID: testFanID, Content: strings.Repeat("ö", social.MaxPostRunes)}); err != nil {
		t.Fatalf("280 multi-byte characters should be accepted: %v", err)
	}
	if _, err := service.Like(t.Context(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
