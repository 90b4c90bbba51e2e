package server

import (
	"net/http"

	"github.com/kasuboski/marquee/pkg/logger"
	"github.com/kasuboski/marquee/pkg/media"
)

type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type GenresResponse struct {
	Genres []Genre `json:"genres"`
}

// ListGenres lists the union of movie and tv genres
func (s Server) ListGenres() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summaries := s.manager.Genres(r.Context())

		genres := make([]Genre, 0, len(summaries))
		for _, g := range summaries {
			genres = append(genres, Genre{ID: g.ID, Name: g.Name})
		}

		writeResponse(w, http.StatusOK, GenresResponse{Genres: genres})
	}
}

// GenreTitles passes through TMDB's discover page for a genre
func (s Server) GenreTitles(kind media.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())

		id, ok := pathID(r, "id")
		if !ok {
			writeErrorResponse(w, http.StatusBadRequest, "Genre ID is required")
			return
		}

		result, err := s.manager.GenreTitles(r.Context(), kind, id, parsePage(r))
		if err != nil {
			log.Errorw("failed to fetch genre titles", "kind", kind.String(), "genre", id, "error", err)
			writeErrorResponse(w, http.StatusInternalServerError, "Failed to fetch "+kindLabel(kind)+" by genre")
			return
		}

		writeResponse(w, http.StatusOK, result)
	}
}

func kindLabel(kind media.Kind) string {
	if kind == media.KindTV {
		return "TV shows"
	}
	return "movies"
}
