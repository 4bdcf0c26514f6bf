package server

import (
	"net/http"
	"time"

	"github.com/LCtech96/EmilyBoutique/internal/config"
	"github.com/LCtech96/EmilyBoutique/internal/handler"
	"github.com/LCtech96/EmilyBoutique/internal/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

const sessionHeader = middleware.SessionHeader

func RegisterRoutes(e *echo.Echo, cfg *config.Config, h Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, handler.SuccessResponse{Message: "ok"})
	})

	// 公開（カタログ・メディア）
	h.Products.RegisterRoutes(e)
	h.Media.RegisterRoutes(e)

	// カートとチェックアウトはセッション単位
	session := middleware.CartSession(cfg.Cart.SessionCookie, cfg.Cart.SecureCookie)
	cart := e.Group("/cart", session)
	orders := e.Group("/orders", session)
	h.Cart.RegisterRoutes(cart)
	h.Orders.RegisterRoutes(cart, orders)

	h.AdminAuth.RegisterRoutes(e, loginRateLimiter(cfg.Server.LoginRateLimit))

	admin := e.Group("/admin",
		middleware.AuthJWT(cfg.Auth.JWTSecret),
		middleware.AdminRoleGuard(),
		middleware.AdminAllowlistGuard(cfg.Auth.AdminEmails),
	)
	h.AdminProducts.RegisterRoutes(admin)
	h.AdminOrders.RegisterRoutes(admin)
	h.AdminAudit.RegisterRoutes(admin)
	h.AdminMedia.RegisterRoutes(admin)
}

// クライアントIPごと
func loginRateLimiter(perSecond float64) echo.MiddlewareFunc {
	return echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
		Store: echomw.NewRateLimiterMemoryStoreWithConfig(echomw.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(perSecond),
			Burst:     5,
			ExpiresIn: 10 * time.Minute,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusForbidden, handler.ErrorResponse{Error: "forbidden"})
		},
		DenyHandler: func(c echo.Context, _ string, _ error) error {
			return c.JSON(http.StatusTooManyRequests, handler.ErrorResponse{Error: "too many login attempts"})
		},
	})
}
