package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"rental_frontend/authorization"
)

func ExtractTraceInfoMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GuardMiddleware runs the route guard for every matched route the policy
// protects, on every request.
func GuardMiddleware(sessions authorization.SessionView, policy *authorization.RolePolicy, logger *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := mux.CurrentRoute(r)
			if route == nil {
				next.ServeHTTP(w, r)
				return
			}
			template, err := route.GetPathTemplate()
			if err != nil || !policy.Guarded(template) {
				next.ServeHTTP(w, r)
				return
			}

			decision := authorization.Evaluate(sessions, r.URL.RequestURI(), policy.RequiredRoles(template)...)
			switch decision.Outcome {
			case authorization.Suspend:
				w.Header().Set("Retry-After", "1")
				writeJSON(w, http.StatusServiceUnavailable, newView(true, "", nil))
			case authorization.RedirectLogin, authorization.RedirectUnauthorized:
				logger.WithFields(logrus.Fields{
					"route":   template,
					"outcome": decision.Outcome.String(),
				}).Info("navigation redirected")
				http.Redirect(w, r, decision.Location, http.StatusFound)
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

func LoggingMiddleware(logger *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)
			logger.WithFields(logrus.Fields{
				"method":   r.Method,
				"path":     r.URL.Path,
				"status":   recorder.status,
				"duration": time.Since(start).String(),
			}).Info("request")
		})
	}
}
