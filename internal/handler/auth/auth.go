// Package auth 提供註冊、登入、登出與目前使用者的 HTTP handler
package auth

import (
	"context"

	"poker-log/internal/model"
	"poker-log/internal/service"
)

// Registrar 建立帳號
type Registrar interface {
	Register(ctx context.Context, in service.RegisterInput) service.Result
}

// Sessions 簽發與撤銷 session
type Sessions interface {
	Login(ctx context.Context, in service.LoginInput) (*service.Session, service.Result)
	Logout(ctx context.Context, actor service.Identity) service.Result
	CurrentUser(ctx context.Context, actor service.Identity) (*model.User, service.Result)
}
