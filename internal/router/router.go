package router

import (
	"poker-log/internal/cache"
	"poker-log/internal/database"
	"poker-log/internal/handler"
	"poker-log/internal/handler/auth"
	"poker-log/internal/handler/tournaments"
	"poker-log/internal/metrics"
	"poker-log/internal/middleware"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// SessionProvider 解析 token 並提供登入、登出
type SessionProvider interface {
	middleware.Resolver
	auth.Sessions
}

// Deps 為路由需要注入的相依
type Deps struct {
	DB          database.DB
	Cache       cache.Cache
	Sessions    SessionProvider
	Registrar   auth.Registrar
	Tournaments tournaments.Workflow
	Metrics     *metrics.Metrics
}

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, d Deps) {
	session := middleware.LoadSession(d.Sessions)
	api := e.Group("/api")

	// 健康檢查
	api.GET("/ping", handler.PingHandler(d.DB, d.Cache))

	// 帳號
	api.POST("/auth/register", auth.RegisterHandler(d.Registrar))
	api.POST("/auth/login", auth.LoginHandler(d.Sessions))
	api.POST("/auth/logout", auth.LogoutHandler(d.Sessions), session)
	api.GET("/me", auth.MeHandler(d.Sessions), session)

	// 錦標賽紀錄；是否登入由 workflow 判斷
	apiTournaments := api.Group("/tournaments")
	apiTournaments.GET("", tournaments.ListHandler(d.Tournaments), session)
	apiTournaments.POST("", tournaments.CreateHandler(d.Tournaments), session)
	apiTournaments.GET("/:id", tournaments.GetHandler(d.Tournaments), session)
	apiTournaments.PUT("/:id", tournaments.UpdateHandler(d.Tournaments), session)
	apiTournaments.DELETE("/:id", tournaments.DeleteHandler(d.Tournaments), session)

	if d.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(d.Metrics.Handler()))
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}
