package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/LCtech96/EmilyBoutique/internal/config"
	"github.com/LCtech96/EmilyBoutique/internal/handler"
	"github.com/LCtech96/EmilyBoutique/internal/logger"
	"github.com/LCtech96/EmilyBoutique/internal/validator"

	"github.com/cockroachdb/errors"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// RegisterRoutesで登録するハンドラ一式
type Handlers struct {
	Products      *handler.ProductHandler
	AdminProducts *handler.AdminProductHandler
	Cart          *handler.CartHandler
	Orders        *handler.OrderHandler
	AdminOrders   *handler.AdminOrderHandler
	AdminAudit    *handler.AdminAuditHandler
	AdminAuth     *handler.AdminAuthHandler
	Media         *handler.MediaHandler
	AdminMedia    *handler.AdminMediaHandler
}

type Server struct {
	echo   *echo.Echo
	cfg    config.ServerConfig
	logger *logger.Logger
}

func New(cfg *config.Config, log *logger.Logger, h Handlers) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validator.NewRequestValidator()

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(requestLogger(log))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization, handler.IdempotencyKeyHeader, sessionHeader},
		AllowCredentials: true,
	}))
	// 画像の上限 + multipartのオーバーヘッド
	e.Use(echomw.BodyLimit(fmt.Sprintf("%dK", cfg.Server.MaxUploadBytes>>10+1024)))

	RegisterRoutes(e, cfg, h)

	return &Server{echo: e, cfg: cfg.Server, logger: log}
}

// テスト用にrouterを公開
func (s *Server) Handler() http.Handler {
	return s.echo
}

// ctxがキャンセルされるまで待ち受け、処理中のリクエストを待って停止
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Infow("http server listening", "address", s.cfg.Address)
		if err := s.echo.Start(s.cfg.Address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return errors.Wrap(err, "http server")
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Infow("shutting down http server", "timeout", s.cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "http server shutdown")
	}
	return nil
}

func requestLogger(log *logger.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			fields := []interface{}{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency.Round(time.Microsecond).String(),
				"remote_ip", v.RemoteIP,
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				log.Errorw("request failed", append(fields, "error", v.Error)...)
				return nil
			}
			log.Infow("request", fields...)
			return nil
		},
	})
}
