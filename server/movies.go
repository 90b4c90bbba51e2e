package server

import (
	"net/http"

	"github.com/kasuboski/marquee/pkg/logger"
	"github.com/kasuboski/marquee/pkg/manager"
	"github.com/kasuboski/marquee/pkg/media"
)

type ListResponse struct {
	manager.ListResult
	Error string `json:"error,omitempty"`
}

// Popular lists popular movies or tv shows
func (s Server) Popular(kind media.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())

		result, err := s.manager.Popular(r.Context(), kind, parsePage(r))
		if err != nil {
			log.Errorw("failed to list popular titles", "kind", kind.String(), "error", err)
			writeResponse(w, http.StatusBadGateway, ListResponse{ListResult: result, Error: "Failed to fetch " + kindLabel(kind)})
			return
		}

		writeResponse(w, http.StatusOK, ListResponse{ListResult: result})
	}
}

// MovieDetails returns a movie with its trailer and recommendations
func (s Server) MovieDetails() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())

		id, ok := pathID(r, "id")
		if !ok {
			writeErrorResponse(w, http.StatusBadRequest, "invalid movie id")
			return
		}

		movie, err := s.manager.MovieDetails(r.Context(), id)
		if err != nil {
			log.Errorw("failed to get movie", "tmdb_id", id, "error", err)
			writeErrorResponse(w, http.StatusInternalServerError, "Failed to fetch movie")
			return
		}

		writeResponse(w, http.StatusOK, movie)
	}
}

// MovieVideos passes through TMDB's video list for a movie
func (s Server) MovieVideos() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())

		id, ok := pathID(r, "id")
		if !ok {
			writeErrorResponse(w, http.StatusBadRequest, "invalid movie id")
			return
		}

		videos, err := s.manager.MovieVideos(r.Context(), id)
		if err != nil {
			log.Errorw("failed to get movie videos", "tmdb_id", id, "error", err)
			writeErrorResponse(w, http.StatusInternalServerError, "Failed to fetch videos")
			return
		}

		writeResponse(w, http.StatusOK, videos)
	}
}
