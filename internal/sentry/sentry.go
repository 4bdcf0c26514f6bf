package sentry

import (
	"context"
	"time"

	"github.com/LCtech96/EmilyBoutique/internal/config"
	"github.com/LCtech96/EmilyBoutique/internal/logger"

	"github.com/getsentry/sentry-go"
)

type Service struct {
	cfg    config.SentryConfig
	logger *logger.Logger
}

func NewSentryService(cfg config.SentryConfig, log *logger.Logger) *Service {
	return &Service{cfg: cfg, logger: log}
}

// Start initialises the SDK when enabled.
func (s *Service) Start() error {
	if !s.cfg.Enabled {
		s.logger.Info("sentry is disabled")
		return nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:         s.cfg.DSN,
		Environment: s.cfg.Environment,
	})
	if err != nil {
		s.logger.Errorw("failed to initialize sentry", "error", err)
		return err
	}
	s.logger.Infow("sentry initialized", "environment", s.cfg.Environment)
	return nil
}

func (s *Service) Flush() {
	if s.cfg.Enabled {
		sentry.Flush(2 * time.Second)
	}
}

func (s *Service) CaptureException(err error) {
	if !s.cfg.Enabled {
		return
	}
	sentry.CaptureException(err)
}

// ReportCartPersistence is the cart FailureReporter: one warn log line and,
// when enabled, one Sentry event per failure.
func (s *Service) ReportCartPersistence(ctx context.Context, key string, err error) {
	s.logger.Warnw("cart persistence failed", "key", key, "error", err)
	if !s.cfg.Enabled {
		return
	}

	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("component", "cart")
		scope.SetExtra("key", key)
		hub.CaptureException(err)
	})
}
