package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/jedipath/quiz-api/internal/certificate"
	"github.com/jedipath/quiz-api/internal/config"
	"github.com/jedipath/quiz-api/internal/entitlement"
	"github.com/jedipath/quiz-api/internal/logging"
	"github.com/jedipath/quiz-api/internal/payment"
	"github.com/jedipath/quiz-api/internal/payment/stripe"
	"github.com/jedipath/quiz-api/internal/profile"
	"github.com/jedipath/quiz-api/internal/profile/openai"
	"github.com/jedipath/quiz-api/internal/server"
)

// Application aggregates shared infrastructure (store, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	redis *redis.Client
	http  *http.Server
}

// New bootstraps config, logger, the profile store and the HTTP server.
// External clients follow their documented disabled modes: no payment
// secret means checkout responds with a configuration error, no AI key
// means every profile comes from the local fallback.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env)
	logger.Info().Msg("starting application bootstrap")

	issuer, err := entitlement.NewIssuer([]byte(cfg.Entitlement.Secret), cfg.Entitlement.TTL, cfg.Name)
	if err != nil {
		return nil, fmt.Errorf("entitlement issuer: %w", err)
	}
	gate := entitlement.NewGate(issuer)

	var redisClient *redis.Client
	var store profile.Store
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		store = profile.NewRedisStore(redisClient, 0)
	} else {
		logger.Warn().Msg("REDIS_ADDR not set; using in-process profile store")
		store = profile.NewMemoryStore()
	}

	var generator profile.TextGenerator
	if cfg.AI.APIKey != "" {
		generator = openai.NewClient(openai.Config{
			APIKey:  cfg.AI.APIKey,
			BaseURL: cfg.AI.BaseURL,
			Model:   cfg.AI.Model,
			Timeout: cfg.AI.HTTPTimeout,
		}, logger)
	} else {
		logger.Warn().Msg("OPENAI_API_KEY not set; profiles use the local fallback generator")
	}

	profileSvc := profile.NewService(generator, logger)
	profileHandlers := profile.NewHTTPHandlers(profileSvc, store, gate, logger)

	var stripeClient *stripe.Client
	if cfg.Payment.SecretKey != "" {
		stripeClient = stripe.NewClient(cfg.Payment.SecretKey, "", logger)
	} else {
		logger.Warn().Msg("STRIPE_SECRET_KEY not set; payment flow disabled")
	}
	paymentHandlers := payment.NewHTTPHandlers(
		stripeClient,
		cfg.Payment.WebhookSecret,
		issuer,
		cfg.SiteURL,
		cfg.Payment.PriceCents,
		cfg.Payment.PublishableKey,
		logger,
	)

	certificateHandler := certificate.NewHTTPHandler(gate, logger)

	apiServer := server.NewHTTPServer(cfg, logger, profileHandlers, paymentHandlers, certificateHandler)

	return &Application{
		cfg:    cfg,
		logger: logger,
		redis:  redisClient,
		http:   apiServer,
	}, nil
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error().Err(err).Msg("redis shutdown error")
		}
	}

	a.logger.Info().Msg("shutdown complete")
	return nil
}
