package server

import (
	"context"
	"net/http"
	"strconv"

	"github.com/felixge/httpsnoop"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/kasuboski/marquee/pkg/logger"
	"go.uber.org/zap"
)

const unmatchedRoute = "unmatched"

type routeKey struct{}

// LogMiddleware wraps the whole router so requests no route matched are
// logged and counted as well. Matched routes report their template back
// through recordRoute.
func (s Server) LogMiddleware() mux.MiddlewareFunc {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := uuid.New().String()
			log := s.baseLogger.With(zap.String("request_path", r.URL.Path), zap.String("method", r.Method)).With(zap.String("id", id))
			w.Header().Set("X-Request-Id", id)

			route := unmatchedRoute
			ctx := context.WithValue(logger.WithCtx(r.Context(), log), routeKey{}, &route)
			m := httpsnoop.CaptureMetrics(h, w, r.WithContext(ctx))

			log.Debugw("handled request", "route", route, "status", m.Code, "duration", m.Duration, "bytes", m.Written)
			requestsTotal.WithLabelValues(route, strconv.Itoa(m.Code)).Inc()
			requestDuration.WithLabelValues(route).Observe(m.Duration.Seconds())
		})
	}
}

// recordRoute runs inside the router, where the matched route is known.
func recordRoute(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if route, ok := r.Context().Value(routeKey{}).(*string); ok {
			*route = routeTemplate(r)
		}
		h.ServeHTTP(w, r)
	})
}

// SecurityHeaders sets the response headers that keep browsers from sniffing
// content types or framing the API.
func SecurityHeaders(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		h.ServeHTTP(w, r)
	})
}

func routeTemplate(r *http.Request) string {
	route := mux.CurrentRoute(r)
	if route == nil {
		return unmatchedRoute
	}

	tpl, err := route.GetPathTemplate()
	if err != nil {
		return unmatchedRoute
	}
	return tpl
}
