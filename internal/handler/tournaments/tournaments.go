// Package tournaments 提供錦標賽紀錄的 HTTP handler
package tournaments

import (
	"context"
	"net/http"

	"poker-log/internal/api"
	"poker-log/internal/middleware"
	"poker-log/internal/model"
	"poker-log/internal/service"

	"github.com/labstack/echo/v4"
)

// Workflow 為 handler 需要的錦標賽操作
type Workflow interface {
	Create(ctx context.Context, actor service.Identity, in service.TournamentInput) service.Result
	Update(ctx context.Context, actor service.Identity, id string, in service.TournamentInput) service.Result
	Delete(ctx context.Context, actor service.Identity, id string) service.Result
	List(ctx context.Context, actor service.Identity) ([]model.Tournament, service.Result)
	Get(ctx context.Context, actor service.Identity, id string) (*model.Tournament, service.Result)
}

// bindForm 綁定表單；未登入時忽略格式錯誤，交由 workflow 先回報未登入
func bindForm(c echo.Context) (service.TournamentInput, bool) {
	var req api.TournamentRequest
	if err := c.Bind(&req); err != nil {
		if !middleware.CurrentIdentity(c).Authenticated() {
			return service.TournamentInput{}, true
		}
		return service.TournamentInput{}, false
	}
	return req.Input(), true
}

func invalidForm(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, api.HTTPError{Message: "invalid form data"})
}

// ListHandler 列出自己的紀錄，日期由新到舊
// @Summary     List my tournaments
// @Tags        tournaments
// @Produce     json
// @Success     200 {array}  api.TournamentResponse
// @Failure     401 {object} api.ResultResponse
// @Failure     500 {object} api.ResultResponse
// @Security    ApiKeyAuth
// @Router      /tournaments [get]
func ListHandler(w Workflow) echo.HandlerFunc {
	return func(c echo.Context) error {
		list, res := w.List(c.Request().Context(), middleware.CurrentIdentity(c))
		if !res.Success {
			return api.Respond(c, res, http.StatusOK)
		}
		return c.JSON(http.StatusOK, api.NewTournamentList(list))
	}
}

// CreateHandler 建立一筆紀錄
// @Summary     Create a tournament
// @Description 名稱 1-100 字、日期需可解析、buy-in 為非負整數
// @Tags        tournaments
// @Accept      application/x-www-form-urlencoded
// @Accept      json
// @Produce     json
// @Param       name  formData string true  "名稱"
// @Param       date  formData string true  "日期時間，例如 2024-01-01T10:00"
// @Param       buyIn formData string false "buy-in，空白視為 0"
// @Success     201 {object} api.ResultResponse
// @Failure     400 {object} api.ResultResponse
// @Failure     401 {object} api.ResultResponse
// @Failure     500 {object} api.ResultResponse
// @Security    ApiKeyAuth
// @Router      /tournaments [post]
func CreateHandler(w Workflow) echo.HandlerFunc {
	return func(c echo.Context) error {
		in, ok := bindForm(c)
		if !ok {
			return invalidForm(c)
		}
		res := w.Create(c.Request().Context(), middleware.CurrentIdentity(c), in)
		return api.Respond(c, res, http.StatusCreated)
	}
}

// GetHandler 讀取單筆紀錄；不存在或不屬於自己時皆回 404
// @Summary     Get a tournament
// @Tags        tournaments
// @Produce     json
// @Param       id  path     string true "Tournament ID"
// @Success     200 {object} api.TournamentResponse
// @Failure     401 {object} api.ResultResponse
// @Failure     404 {object} api.ResultResponse
// @Failure     500 {object} api.ResultResponse
// @Security    ApiKeyAuth
// @Router      /tournaments/{id} [get]
func GetHandler(w Workflow) echo.HandlerFunc {
	return func(c echo.Context) error {
		t, res := w.Get(c.Request().Context(), middleware.CurrentIdentity(c), c.Param("id"))
		if !res.Success {
			return api.Respond(c, res, http.StatusOK)
		}
		return c.JSON(http.StatusOK, api.NewTournamentResponse(t))
	}
}

// UpdateHandler 修改自己的紀錄
// @Summary     Update a tournament
// @Tags        tournaments
// @Accept      application/x-www-form-urlencoded
// @Accept      json
// @Produce     json
// @Param       id    path     string true  "Tournament ID"
// @Param       name  formData string true  "名稱"
// @Param       date  formData string true  "日期時間"
// @Param       buyIn formData string false "buy-in"
// @Success     200 {object} api.ResultResponse
// @Failure     400 {object} api.ResultResponse
// @Failure     401 {object} api.ResultResponse
// @Failure     403 {object} api.ResultResponse
// @Failure     404 {object} api.ResultResponse
// @Failure     500 {object} api.ResultResponse
// @Security    ApiKeyAuth
// @Router      /tournaments/{id} [put]
func UpdateHandler(w Workflow) echo.HandlerFunc {
	return func(c echo.Context) error {
		in, ok := bindForm(c)
		if !ok {
			return invalidForm(c)
		}
		res := w.Update(c.Request().Context(), middleware.CurrentIdentity(c), c.Param("id"), in)
		return api.Respond(c, res, http.StatusOK)
	}
}

// DeleteHandler 刪除自己的紀錄
// @Summary     Delete a tournament
// @Tags        tournaments
// @Produce     json
// @Param       id  path     string true "Tournament ID"
// @Success     200 {object} api.ResultResponse
// @Failure     401 {object} api.ResultResponse
// @Failure     403 {object} api.ResultResponse
// @Failure     404 {object} api.ResultResponse
// @Failure     500 {object} api.ResultResponse
// @Security    ApiKeyAuth
// @Router      /tournaments/{id} [delete]
func DeleteHandler(w Workflow) echo.HandlerFunc {
	return func(c echo.Context) error {
		res := w.Delete(c.Request().Context(), middleware.CurrentIdentity(c), c.Param("id"))
		return api.Respond(c, res, http.StatusOK)
	}
}
