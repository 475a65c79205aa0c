package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"cashdesk-backend/internal/logger"
	"cashdesk-backend/internal/security"
	"cashdesk-backend/pkg/metrics"
)

type contextKey string

const claimsKey contextKey = "operator_claims"

// authMiddleware validates the Bearer token and stores the operator claims
// on the request context.
func authMiddleware(tokens security.TokenManager) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
				return
			}
			claims, err := tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
				return
			}
			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// operatorID returns the acting operator's id from the request context.
func operatorID(r *http.Request) string {
	if claims, ok := r.Context().Value(claimsKey).(*security.OperatorClaims); ok {
		return claims.UserID
	}
	return ""
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(status int) {
	sr.status = status
	sr.ResponseWriter.WriteHeader(status)
}

// observeMiddleware logs each request and feeds the latency histogram.
func observeMiddleware(collector *metrics.Collector) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			route := r.URL.Path
			if current := mux.CurrentRoute(r); current != nil {
				if tpl, err := current.GetPathTemplate(); err == nil {
					route = tpl
				}
			}
			collector.ObserveRequest(route, strconv.Itoa(rec.status), time.Since(start).Seconds())
			logger.Debug("request handled",
				"method", r.Method, "route", route,
				"status", rec.status, "duration_ms", time.Since(start).Milliseconds())
		})
	}
}
