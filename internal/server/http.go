package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/jedipath/quiz-api/internal/certificate"
	"github.com/jedipath/quiz-api/internal/config"
	"github.com/jedipath/quiz-api/internal/payment"
	"github.com/jedipath/quiz-api/internal/profile"
	httperrors "github.com/jedipath/quiz-api/pkg/http/errors"
)

// NewHTTPServer wires all routes for the API service.
func NewHTTPServer(
	cfg *config.App,
	logger zerolog.Logger,
	profileHandlers *profile.HTTPHandlers,
	paymentHandlers *payment.HTTPHandlers,
	certificateHandler *certificate.HTTPHandler,
) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/v1/questions", profileHandlers.HandleQuestions)
	mux.HandleFunc("/v1/profiles", profileHandlers.HandleGenerate)
	mux.HandleFunc("/v1/profiles/me", profileHandlers.HandleGetProfile)
	mux.HandleFunc("/v1/certificates", certificateHandler.HandleRender)
	mux.HandleFunc("/v1/payments/config", paymentHandlers.HandleConfig)
	mux.HandleFunc("/v1/payments/checkout", paymentHandlers.HandleCheckout)
	mux.HandleFunc("/v1/payments/webhook", paymentHandlers.HandleWebhook)

	handler := corsMiddleware(cfg.CORS, recoveryMiddleware(logger, mux))

	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: handler,
	}
}

// recoveryMiddleware converts handler panics into a generic 500 JSON
// error so no request ever sees a raw stack.
func recoveryMiddleware(logger zerolog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error().Interface("panic", rec).Str("path", r.URL.Path).Msg("handler panicked")
				httperrors.RespondInternalError(w, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func corsMiddleware(cfg config.CORS, next http.Handler) http.Handler {
	allowedOrigins := map[string]bool{}
	for _, origin := range cfg.AllowedOrigins {
		allowedOrigins[origin] = true
	}
	methods := strings.Join(cfg.AllowedMethods, ", ")
	headers := strings.Join(cfg.AllowedHeaders, ", ")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")
			if cfg.AllowCredentials {
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}
			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", methods)
				w.Header().Set("Access-Control-Allow-Headers", headers)
				w.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
