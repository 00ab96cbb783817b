package auth

import (
	"net/http"
	"time"

	"poker-log/internal/api"
	"poker-log/internal/middleware"
	"poker-log/internal/service"

	"github.com/labstack/echo/v4"
)

// LoginHandler 使用 Email/Password 驗證，回傳 JWT 並設定 session cookie
// @Summary     登入使用者
// @Description 使用 Email 與 Password 進行驗證，回傳存取令牌與到期時間
// @Tags        auth
// @Accept      application/x-www-form-urlencoded
// @Accept      json
// @Produce     json
// @Param       email    formData string true "使用者 Email"
// @Param       password formData string true "使用者密碼"
// @Success     200      {object} api.LoginResponse
// @Failure     400      {object} api.ResultResponse
// @Failure     401      {object} api.ResultResponse
// @Failure     500      {object} api.ResultResponse
// @Router      /auth/login [post]
func LoginHandler(s Sessions) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LoginRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.HTTPError{Message: "invalid form data"})
		}

		sess, res := s.Login(c.Request().Context(), req.Input())
		if !res.Success {
			return api.Respond(c, res, http.StatusOK)
		}

		c.SetCookie(&http.Cookie{
			Name:     middleware.SessionCookie,
			Value:    sess.Token,
			Path:     "/",
			Expires:  sess.ExpiresAt,
			HttpOnly: true,
			Secure:   c.Scheme() == "https",
			SameSite: http.SameSiteLaxMode,
		})
		return c.JSON(http.StatusOK, api.LoginResponse{
			AccessToken: sess.Token,
			ExpiresAt:   sess.ExpiresAt,
			Redirect:    service.ListPath,
		})
	}
}

// LogoutHandler 撤銷目前 token 並清除 cookie
// @Summary     登出
// @Tags        auth
// @Produce     json
// @Success     200 {object} api.ResultResponse
// @Failure     401 {object} api.ResultResponse
// @Failure     500 {object} api.ResultResponse
// @Security    ApiKeyAuth
// @Router      /auth/logout [post]
func LogoutHandler(s Sessions) echo.HandlerFunc {
	return func(c echo.Context) error {
		res := s.Logout(c.Request().Context(), middleware.CurrentIdentity(c))
		c.SetCookie(&http.Cookie{
			Name:     middleware.SessionCookie,
			Value:    "",
			Path:     "/",
			Expires:  time.Unix(0, 0),
			MaxAge:   -1,
			HttpOnly: true,
		})
		if res.Success {
			res.Redirect = service.LoginPath
		}
		return api.Respond(c, res, http.StatusOK)
	}
}

// MeHandler 取得目前登入的使用者
// @Summary     Get current user
// @Tags        auth
// @Produce     json
// @Success     200 {object} api.UserResponse
// @Failure     401 {object} api.ResultResponse
// @Failure     500 {object} api.ResultResponse
// @Security    ApiKeyAuth
// @Router      /me [get]
func MeHandler(s Sessions) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, res := s.CurrentUser(c.Request().Context(), middleware.CurrentIdentity(c))
		if !res.Success {
			return api.Respond(c, res, http.StatusOK)
		}
		return c.JSON(http.StatusOK, api.NewUserResponse(user))
	}
}
