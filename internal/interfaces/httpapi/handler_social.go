package httpapi

import (
	"net/http"

	"github.com/riskibarqy/bonk-fanzone/internal/usecase"
)

func (h *Handler) ListFeed(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFeed")
	defer span.End()

	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	posts, err := h.social.Feed(ctx, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "list feed failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]postDTO, 0, len(posts))
	for _, p := range posts {
		items = append(items, postToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreatePost")
	defer span.End()

	var req createPostRequest
	if err := h.decodeJSON(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	fanID := currentFanID(ctx)
	post, err := h.social.CreatePost(ctx, usecase.CreatePostInput{FanID: fanID, Content: req.Content})
	if err != nil {
		h.logger.WarnContext(ctx, "create post failed", "fan_id", fanID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, postToDTO(post))
}

func (h *Handler) LikePost(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LikePost")
	defer span.End()

	postID := r.PathValue("postID")
	post, err := h.social.Like(ctx, postID)
	if err != nil {
		h.logger.WarnContext(ctx, "like post failed", "post_id", postID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, postToDTO(post))
}
