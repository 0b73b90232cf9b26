package httpapi

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	apperrors "neptune-workers/internal/common/errors"
	"neptune-workers/internal/common/logger"
)

type Deps struct {
	Searcher Searcher
	Logger   logger.Logger
	Ready    func() bool
}

// NewMux wires every route.
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	sh := SearchHandler{Searcher: d.Searcher, Logger: d.Logger}
	mux.HandleFunc("/api/search", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.Search,
	}))

	lh := LegendHandler{}
	mux.HandleFunc("/api/score-legend", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: lh.Get,
	}))

	hh := HealthHandler{Ready: d.Ready}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))
	mux.HandleFunc("/ready", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Readiness,
	}))

	mux.Handle("/metrics", promhttp.Handler())

	return mux
}

// NewHandler is NewMux behind the request-id, access-log and recover middleware.
// A panic anywhere below surfaces as SEARCH_FAILED.
func NewHandler(d Deps) http.Handler {
	return Chain(NewMux(d),
		RequestID,
		AccessLog(d.Logger),
		Recover(d.Logger, string(apperrors.ErrCodeSearchFailed), apperrors.SearchFailedMessage),
	)
}
