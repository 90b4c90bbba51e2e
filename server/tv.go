package server

import (
	"net/http"

	"github.com/kasuboski/marquee/pkg/logger"
)

// TVDetails returns a tv show with its seasons, cast, trailer and recommendations
func (s Server) TVDetails() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())

		id, ok := pathID(r, "id")
		if !ok {
			writeErrorResponse(w, http.StatusBadRequest, "invalid tv id")
			return
		}

		show, err := s.manager.TVDetails(r.Context(), id)
		if err != nil {
			log.Errorw("failed to get tv show", "tmdb_id", id, "error", err)
			writeErrorResponse(w, http.StatusInternalServerError, "Failed to fetch TV show")
			return
		}

		writeResponse(w, http.StatusOK, show)
	}
}

// Season passes through TMDB's detail for one season of a show
func (s Server) Season() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())

		id, ok := pathID(r, "id")
		if !ok {
			writeErrorResponse(w, http.StatusBadRequest, "invalid tv id")
			return
		}
		season, ok := pathID(r, "season")
		if !ok {
			writeErrorResponse(w, http.StatusBadRequest, "invalid season number")
			return
		}

		result, err := s.manager.Season(r.Context(), id, season)
		if err != nil {
			log.Errorw("failed to get season", "tmdb_id", id, "season", season, "error", err)
			writeErrorResponse(w, http.StatusInternalServerError, "Failed to fetch season details")
			return
		}

		writeResponse(w, http.StatusOK, result)
	}
}
