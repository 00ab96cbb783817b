package middleware

import (
	"context"
	"log/slog"
	"strings"

	"poker-log/internal/service"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

const (
	ContextIdentityKey = "identity"
	// SessionCookie 存放 session token 的 cookie 名稱
	SessionCookie = "session"
)

// Resolver 由 token 解析目前身分
type Resolver interface {
	Resolve(ctx context.Context, token string) service.Identity
}

// extractToken 先讀 cookie，再讀 Authorization: Bearer
func extractToken(c echo.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// LoadSession 解析 session 並放入 context；不會拒絕請求，未登入由各 workflow 回報
func LoadSession(r Resolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity := service.Identity{}
			if token := extractToken(c); token != "" {
				identity = r.Resolve(c.Request().Context(), token)
			}
			c.Set(ContextIdentityKey, identity)
			return next(c)
		}
	}
}

// CurrentIdentity 取出 LoadSession 設定的身分；沒有時回傳未登入
func CurrentIdentity(c echo.Context) service.Identity {
	identity, ok := c.Get(ContextIdentityKey).(service.Identity)
	if !ok {
		return service.Identity{}
	}
	return identity
}

// RequestLogger 以 slog 記錄每個請求
func RequestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			if v.RequestID != "" {
				attrs = append(attrs, slog.String("request_id", v.RequestID))
			}
			if identity := CurrentIdentity(c); identity.Authenticated() {
				attrs = append(attrs, slog.String("user_id", identity.UserID))
			}
			level := slog.LevelInfo
			if v.Error != nil {
				level = slog.LevelError
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			logger.LogAttrs(c.Request().Context(), level, "request", attrs...)
			return nil
		},
	})
}
