package api

import (
	"net/http"

	"poker-log/internal/service"

	"github.com/labstack/echo/v4"
)

// ResultResponse 是 workflow 結果的 JSON 形式
// swagger:model api.ResultResponse
type ResultResponse struct {
	Success  bool   `json:"success,omitempty" example:"true"`
	ID       string `json:"id,omitempty" example:"01HZX3K5Q8Y6J2V7M9N4P0R1ST"`
	Error    string `json:"error,omitempty" example:"please enter a tournament name"`
	Redirect string `json:"redirect,omitempty" example:"/mypage"`
	Code     string `json:"code" example:"OK"`
}

func NewResultResponse(res service.Result) ResultResponse {
	return ResultResponse{
		Success:  res.Success,
		ID:       res.ID,
		Error:    res.Error,
		Redirect: res.Redirect,
		Code:     res.Code,
	}
}

var statusByCode = map[string]int{
	service.CodeOK:             http.StatusOK,
	service.CodeValidation:     http.StatusBadRequest,
	service.CodeAuthentication: http.StatusUnauthorized,
	service.CodeAuthorization:  http.StatusForbidden,
	service.CodeNotFound:       http.StatusNotFound,
	service.CodeConflict:       http.StatusConflict,
	service.CodePersistence:    http.StatusInternalServerError,
}

// StatusFor 將結果種類對應到 HTTP 狀態碼
func StatusFor(code string) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// Respond 成功時以 okStatus 回應，失敗時依結果種類決定狀態碼
func Respond(c echo.Context, res service.Result, okStatus int) error {
	status := okStatus
	if !res.Success {
		status = StatusFor(res.Code)
	}
	return c.JSON(status, NewResultResponse(res))
}
