package handlers

import (
	"context"
	"net/http"
	"time"

	"frictlistAPI/internal/types/feed"
	"frictlistAPI/middleware"
	"frictlistAPI/services"
)

type FeedHandler struct {
	feedService *services.FeedService
}

func NewFeedHandler(feedService *services.FeedService) *FeedHandler {
	return &FeedHandler{
		feedService: feedService,
	}
}

// GetFrictlist emits the caller's own list as a tab-separated table: the
// "frictlist" flag line, a profile header row, then one row per mate/frict
// pair.
func (h *FeedHandler) GetFrictlist(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	uid, ok := middleware.GetUID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	header, list, err := h.feedService.Frictlist(ctx, uid)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	rows := make([]string, 0, len(list)+1)
	rows = append(rows, header.TabRow())
	for _, row := range list {
		rows = append(rows, row.TabRow())
	}
	respondWithTable(w, feed.FlagFrictlist, rows)
}

// GetNotifications emits the visible request feed as a tab-separated table
// flagged "notifications".
func (h *FeedHandler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	uid, ok := middleware.GetUID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	list, err := h.feedService.BuildFeed(ctx, uid)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	rows := make([]string, 0, len(list))
	for _, row := range list {
		rows = append(rows, row.TabRow())
	}
	respondWithTable(w, feed.FlagNotifications, rows)
}
