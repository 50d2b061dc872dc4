// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"seowriter/internal/wordpress"
)

type publishResponse struct {
	Success    bool     `json:"success"`
	WPPostID   int64    `json:"wpPostId"`
	EditURL    string   `json:"editUrl"`
	PreviewURL string   `json:"previewUrl"`
	Skipped    []string `json:"skipped,omitempty"`
	Warning    string   `json:"warning,omitempty"`
}

// PublishArticle creates a WordPress draft for the article.
func (a *API) PublishArticle(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	res, err := a.publisher.Publish(r.Context(), id)
	var warning string
	if err != nil && res != nil {
		// The remote draft exists; its id is still returned.
		slog.Error("published without local write-back", "error", err, "article_id", id, "wp_post_id", res.PostID)
		warning = msgWPWriteBackFailed
		err = nil
	}
	if err != nil {
		var apiErr *wordpress.APIError
		switch {
		case errors.Is(err, wordpress.ErrNotConfigured):
			writeError(w, http.StatusBadRequest, msgWPNotConfigured)
		case errors.Is(err, wordpress.ErrArticleNotFound):
			writeError(w, http.StatusNotFound, msgArticleNotFound)
		case errors.Is(err, wordpress.ErrAlreadyPublished):
			writeError(w, http.StatusConflict, msgAlreadyPublished)
		case errors.Is(err, wordpress.ErrPublishInProgress):
			writeError(w, http.StatusConflict, msgPublishInProgress)
		case errors.As(err, &apiErr):
			writeError(w, apiErr.Status, msgWPErrorPrefix+apiErr.Message)
		default:
			slog.Error("publish to wordpress failed", "error", err, "article_id", id)
			writeError(w, http.StatusInternalServerError, msgWPUploadFailed)
		}
		return
	}

	a.invalidateStats(r.Context())
	writeJSON(w, http.StatusOK, publishResponse{
		Success:    true,
		WPPostID:   res.PostID,
		EditURL:    res.EditURL,
		PreviewURL: res.PreviewURL,
		Skipped:    res.Skipped,
		Warning:    warning,
	})
}
