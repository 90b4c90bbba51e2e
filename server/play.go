package server

import (
	"errors"
	"net/http"

	"github.com/kasuboski/marquee/pkg/logger"
	"github.com/kasuboski/marquee/pkg/player"
)

type PlayResponse struct {
	URL string `json:"url"`
}

// Play builds the embed link for a movie, episode or anime episode
func (s Server) Play() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())

		link, err := s.manager.Play(r.Context(), player.RequestFromQuery(r.URL.Query()))
		if err != nil {
			var (
				verr   *player.ValidationError
				unsafe *player.UnsafeEmbedError
			)
			switch {
			case errors.As(err, &verr):
				writeErrorResponse(w, http.StatusBadRequest, player.InvalidParametersMessage)
			case errors.As(err, &unsafe):
				log.Errorw("refusing to hand out embed link", "error", err)
				writeErrorResponse(w, http.StatusBadGateway, "unsafe embed url")
			default:
				log.Errorw("failed to build play link", "error", err)
				writeErrorResponse(w, http.StatusInternalServerError, "failed to build play link")
			}
			return
		}

		writeResponse(w, http.StatusOK, PlayResponse{URL: link})
	}
}
