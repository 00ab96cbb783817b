package service

import (
	"context"
	"io"
	"log/slog"

	"poker-log/internal/metrics"
)

// 前端頁面路徑，作為 Result.Redirect
const (
	LoginPath = "/login"
	ListPath  = "/mypage"
)

// DetailPath 回傳單筆錦標賽頁面路徑
func DetailPath(id string) string {
	return ListPath + "/tournaments/" + id
}

// Operation 標示 workflow 入口，用於 log、metrics 與通用錯誤訊息
type Operation string

const (
	OpRegister         Operation = "register"
	OpLogin            Operation = "login"
	OpLogout           Operation = "logout"
	OpCurrentUser      Operation = "current_user"
	OpCreateTournament Operation = "create_tournament"
	OpUpdateTournament Operation = "update_tournament"
	OpDeleteTournament Operation = "delete_tournament"
	OpListTournaments  Operation = "list_tournaments"
	OpGetTournament    Operation = "get_tournament"
)

var failureMessages = map[Operation]string{
	OpRegister:         "failed to create account",
	OpLogin:            "failed to sign in",
	OpLogout:           "failed to sign out",
	OpCurrentUser:      "failed to load account",
	OpCreateTournament: "failed to create tournament",
	OpUpdateTournament: "failed to update tournament",
	OpDeleteTournament: "failed to delete tournament",
	OpListTournaments:  "failed to load tournaments",
	OpGetTournament:    "failed to load tournament",
}

// Result 是 workflow 回給呈現層的結構化結果
type Result struct {
	Success  bool   `json:"success,omitempty"`
	ID       string `json:"id,omitempty"`
	Error    string `json:"error,omitempty"`
	Redirect string `json:"redirect,omitempty"`
	Code     string `json:"code"`

	err error
}

// Err 回傳造成失敗的原始錯誤，成功時為 nil
func (r Result) Err() error {
	return r.err
}

// Reporter 負責把錯誤轉為 Result，同時寫 log 與 metrics
type Reporter struct {
	Logger  *slog.Logger
	Metrics *metrics.Metrics
}

func (r Reporter) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r.Logger
}

// Resolve 把 op 的執行結果轉成 Result；內部細節只寫入 log
func (r Reporter) Resolve(ctx context.Context, op Operation, err error) Result {
	code := CodeOf(err)
	r.Metrics.Observe(string(op), code)
	if err == nil {
		return Result{Success: true, Code: CodeOK}
	}

	res := Result{Code: code, Error: err.Error(), err: err}
	switch code {
	case CodeAuthentication:
		res.Redirect = LoginPath
	case CodePersistence:
		r.logger().ErrorContext(ctx, "workflow failed",
			slog.String("operation", string(op)),
			slog.String("error", err.Error()),
			slog.Any("context", errorContext(err)),
		)
		res.Error = failureMessages[op]
	}

	// 詳細頁不區分「不存在」與「不屬於你」，兩者都導回列表
	if op == OpGetTournament && (code == CodeNotFound || code == CodeAuthorization) {
		r.logger().DebugContext(ctx, "tournament hidden from actor",
			slog.String("reason", code),
			slog.Any("context", errorContext(err)),
		)
		res.Code = CodeNotFound
		res.Error = "tournament not found"
		res.Redirect = ListPath
	}
	return res
}
