package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"poker-log/internal/database"
	"poker-log/internal/model"
	"poker-log/internal/store"

	"github.com/go-playground/validator/v10"
)

var createUser = store.CreateUser

// Registrar 建立新帳號；不會順便建立 session
type Registrar struct {
	Reporter Reporter

	db       database.DB
	validate *validator.Validate
}

func NewRegistrar(db database.DB, r Reporter) *Registrar {
	return &Registrar{Reporter: r, db: db, validate: newValidator(time.UTC)}
}

// Register 驗證輸入、檢查 email 是否重複，再以 bcrypt 儲存密碼
func (r *Registrar) Register(ctx context.Context, in RegisterInput) Result {
	user, err := r.register(ctx, in)
	res := r.Reporter.Resolve(ctx, OpRegister, err)
	if user != nil {
		res.ID = user.ID
	}
	return res
}

func (r *Registrar) register(ctx context.Context, in RegisterInput) (*model.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := r.validate.Struct(in); err != nil {
		return nil, firstViolation(err)
	}
	email := strings.ToLower(in.Email)

	_, err := getUserByEmail(ctx, r.db, email)
	switch {
	case err == nil:
		return nil, emailTaken(email)
	case !errors.Is(err, store.ErrNotFound):
		return nil, persistence("registration").With("email", email).Wrapf(err, "lookup email")
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, persistence("registration").Wrapf(err, "hash password")
	}

	u := &model.User{
		ID:           newID(),
		Email:        email,
		PasswordHash: hash,
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		u.Name = &name
	}

	created, err := createUser(ctx, r.db, u)
	if errors.Is(err, store.ErrDuplicate) {
		return nil, emailTaken(email)
	}
	if err != nil {
		return nil, persistence("registration").With("email", email).Wrapf(err, "create user")
	}
	return created, nil
}
