package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	apperrors "neptune-workers/internal/common/errors"
	"neptune-workers/internal/common/logger"
	"neptune-workers/internal/common/validation"
	"neptune-workers/internal/models"
)

const maxSearchBody = 64 << 10

const searchRequestSchema = `{
	"type": "object",
	"properties": {
		"query": {"type": "string", "maxLength": 2000}
	},
	"required": ["query"]
}`

// Searcher is the facade the search endpoint calls.
type Searcher interface {
	Search(ctx context.Context, query string) (*models.SearchResponse, error)
}

type SearchRequest struct {
	Query string `json:"query"`
}

// SearchResult is the search envelope plus the display cards.
type SearchResult struct {
	*models.SearchResponse
	Cards []ProviderCard `json:"cards"`
}

type SearchHandler struct {
	Searcher Searcher
	Logger   logger.Logger
}

func (h SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxSearchBody))
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "INVALID_REQUEST", "request body too large or unreadable")
		return
	}

	res, err := validation.ValidateJSON(searchRequestSchema, body)
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "INVALID_REQUEST", "request body must be a JSON object")
		return
	}
	if !res.Valid {
		WriteError(w, r, http.StatusBadRequest, "INVALID_QUERY", res.Error())
		return
	}

	var req SearchRequest
	if err := json.Unmarshal(body, &req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "INVALID_REQUEST", "request body must be a JSON object")
		return
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		WriteError(w, r, http.StatusBadRequest, "INVALID_QUERY", "query must not be empty")
		return
	}

	resp, err := h.Searcher.Search(r.Context(), query)
	if err == nil && resp == nil {
		err = errors.New("search returned no response")
	}
	if err != nil {
		stdErr := apperrors.NewSearchFailedError(err)
		h.Logger.Error("search failed", map[string]interface{}{
			"requestId": RequestIDFrom(r.Context()),
			"error":     stdErr.Details,
		})
		WriteError(w, r, http.StatusInternalServerError, string(stdErr.Code), stdErr.Message)
		return
	}

	WriteJSON(w, http.StatusOK, SearchResult{
		SearchResponse: resp,
		Cards:          Cards(resp.Providers),
	})
}
