package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	CtxSessionIDKey = "session_id" // string

	// Cookieを使えないクライアント用
	SessionHeader = "X-Session-ID"

	sessionCookieMaxAge = 30 * 24 * time.Hour
)

// セッションIDをcontextへ保存。無ければ発行してCookieにセット
func CartSession(cookieName string, secure bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sessionID := strings.TrimSpace(c.Request().Header.Get(SessionHeader))

			if sessionID == "" {
				if ck, err := c.Cookie(cookieName); err == nil {
					sessionID = strings.TrimSpace(ck.Value)
				}
			}

			if parsed, err := uuid.Parse(sessionID); err == nil {
				// 大文字・{}・urn形式も同じカートになるよう正規化
				sessionID = parsed.String()
			} else {
				sessionID = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     cookieName,
					Value:    sessionID,
					Path:     "/",
					MaxAge:   int(sessionCookieMaxAge.Seconds()),
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			c.Set(CtxSessionIDKey, sessionID)
			return next(c)
		}
	}
}
