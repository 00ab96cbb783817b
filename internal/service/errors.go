package service

import (
	"github.com/samber/oops"
)

// 錯誤種類以 oops error code 表示
const (
	CodeOK             = "OK"
	CodeValidation     = "VALIDATION"
	CodeAuthentication = "AUTHENTICATION"
	CodeAuthorization  = "AUTHORIZATION"
	CodeNotFound       = "NOT_FOUND"
	CodeConflict       = "CONFLICT"
	CodePersistence    = "PERSISTENCE"
)

var knownCodes = []string{
	CodeValidation,
	CodeAuthentication,
	CodeAuthorization,
	CodeNotFound,
	CodeConflict,
	CodePersistence,
}

// CodeOf 回傳錯誤的種類；nil 為 CodeOK，無法辨識的錯誤一律視為 CodePersistence
func CodeOf(err error) string {
	if err == nil {
		return CodeOK
	}
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return CodePersistence
	}
	for _, code := range knownCodes {
		if oopsErr.Code() == code {
			return code
		}
	}
	return CodePersistence
}

func validationError(msg string) error {
	return oops.Code(CodeValidation).Errorf("%s", msg)
}

func unauthenticated() error {
	return oops.Code(CodeAuthentication).Errorf("login required")
}

func invalidCredentials() error {
	return oops.Code(CodeAuthentication).Errorf("invalid email or password")
}

func tournamentNotFound(id string) error {
	return oops.Code(CodeNotFound).
		With("tournament_id", id).
		Errorf("tournament not found")
}

func forbidden(action, id, actorID string) error {
	return oops.Code(CodeAuthorization).
		With("tournament_id", id).
		With("actor_id", actorID).
		Errorf("you do not have permission to %s this tournament", action)
}

func emailTaken(email string) error {
	return oops.Code(CodeConflict).
		With("email", email).
		Errorf("this email address is already in use")
}

// persistence 包裝 store 層錯誤；訊息只寫入 log，不會回給呼叫端
func persistence(domain string) oops.OopsErrorBuilder {
	return oops.Code(CodePersistence).In(domain)
}

// errorContext 取出 oops 附加的欄位，供 log 使用
func errorContext(err error) map[string]any {
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return nil
	}
	return oopsErr.Context()
}
