package server

import (
	"net/http"

	"github.com/kasuboski/marquee/pkg/logger"
	"github.com/kasuboski/marquee/pkg/manager"
	"github.com/kasuboski/marquee/pkg/media"
)

// SearchResponse is a page of search results. Error is only set when TMDB
// could not be reached, in which case the page is empty.
type SearchResponse struct {
	manager.SearchResult
	Error string `json:"error,omitempty"`
}

// Search searches movies or tv shows by title
func (s Server) Search() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())
		qp := r.URL.Query()

		request := manager.SearchRequest{
			Query:  qp.Get("q"),
			Kind:   media.ParseKind(qp.Get("type")),
			Params: ParsePaginationParams(r, s.searchLimit),
		}

		result, err := s.manager.Search(r.Context(), request)
		if err != nil {
			log.Errorw("failed to search", "error", err)
			writeResponse(w, http.StatusBadGateway, SearchResponse{SearchResult: result, Error: "Failed to search"})
			return
		}

		err = writeResponse(w, http.StatusOK, SearchResponse{SearchResult: result})
		if err != nil {
			log.Errorw("failed to write response", "error", err)
		}
	}
}
