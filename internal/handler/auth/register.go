package auth

import (
	"net/http"

	"poker-log/internal/api"

	"github.com/labstack/echo/v4"
)

// RegisterHandler 建立新帳號，不會自動登入
// @Summary     Register a new account
// @Description 驗證 Email 與密碼後建立帳號 (Email 會自動轉小寫)
// @Tags        auth
// @Accept      application/x-www-form-urlencoded
// @Accept      json
// @Produce     json
// @Param       email    formData string true  "使用者 Email"
// @Param       password formData string true  "密碼，至少 6 個字元，最多 72 bytes"
// @Param       name     formData string false "顯示名稱"
// @Success     201      {object} api.ResultResponse
// @Failure     400      {object} api.ResultResponse
// @Failure     409      {object} api.ResultResponse
// @Failure     500      {object} api.ResultResponse
// @Router      /auth/register [post]
func RegisterHandler(r Registrar) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.RegisterRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.HTTPError{Message: "invalid form data"})
		}
		res := r.Register(c.Request().Context(), req.Input())
		return api.Respond(c, res, http.StatusCreated)
	}
}
