package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"poker-log/internal/cache"
	"poker-log/internal/database"
	"poker-log/internal/model"
	"poker-log/internal/store"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

var (
	getUserByEmail  = store.GetUserByEmail
	getUserByID     = store.GetUserByID
	parseWithClaims = jwt.ParseWithClaims
)

// CustomClaims 定義 JWT 負載內容；sub 為使用者 id，jti 用於登出撤銷
type CustomClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Identity 是從 session token 解析出的目前使用者
type Identity struct {
	UserID    string
	Email     string
	TokenID   string
	ExpiresAt time.Time
}

// Authenticated 回報是否有有效的 session
func (i Identity) Authenticated() bool {
	return i.UserID != ""
}

// LoginInput 登入表單欄位
type LoginInput struct {
	Email    string `form:"email" json:"email" validate:"required,email"`
	Password string `form:"password" json:"password" validate:"required"`
}

// Session 為登入成功後簽發的 token
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *model.User
}

// Sessions 簽發、解析與撤銷 session token
type Sessions struct {
	Reporter Reporter

	db       database.DB
	cache    cache.Cache
	secret   []byte
	ttl      time.Duration
	validate *validator.Validate
}

func NewSessions(db database.DB, c cache.Cache, secret string, ttl time.Duration, r Reporter) *Sessions {
	return &Sessions{
		Reporter: r,
		db:       db,
		cache:    c,
		secret:   []byte(secret),
		ttl:      ttl,
		validate: newValidator(time.UTC),
	}
}

// Login 驗證帳號密碼後簽發 token
func (s *Sessions) Login(ctx context.Context, in LoginInput) (*Session, Result) {
	sess, err := s.login(ctx, in)
	return sess, s.Reporter.Resolve(ctx, OpLogin, err)
}

func (s *Sessions) login(ctx context.Context, in LoginInput) (*Session, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := s.validate.Struct(in); err != nil {
		return nil, firstViolation(err)
	}

	user, err := getUserByEmail(ctx, s.db, in.Email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, invalidCredentials()
	}
	if err != nil {
		return nil, persistence("sessions").With("email", in.Email).Wrapf(err, "login")
	}
	if err := ComparePassword(user.PasswordHash, in.Password); err != nil {
		return nil, invalidCredentials()
	}

	token, expiresAt, err := s.issue(user)
	if err != nil {
		return nil, persistence("sessions").With("user_id", user.ID).Wrapf(err, "issue token")
	}
	return &Session{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func (s *Sessions) issue(user *model.User) (string, time.Time, error) {
	if len(s.secret) == 0 {
		return "", time.Time{}, fmt.Errorf("JWT_SECRET not set")
	}
	now := timeNow()
	expiresAt := now.Add(s.ttl)
	claims := CustomClaims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        newID(),
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Resolve 解析 token；無效、過期、已撤銷或快取無法確認時回傳空的 Identity
func (s *Sessions) Resolve(ctx context.Context, tokenString string) Identity {
	if tokenString == "" {
		return Identity{}
	}
	claims, err := s.verify(tokenString)
	if err != nil {
		s.Reporter.logger().DebugContext(ctx, "session rejected", "error", err)
		return Identity{}
	}

	err = s.cache.Get(ctx, cache.RevokedSessionKey(claims.ID)).Err()
	switch {
	case errors.Is(err, redis.Nil):
	case err != nil:
		s.Reporter.logger().WarnContext(ctx, "session revocation check failed", "error", err)
		return Identity{}
	default:
		return Identity{}
	}

	id := Identity{UserID: claims.Subject, Email: claims.Email, TokenID: claims.ID}
	if claims.ExpiresAt != nil {
		id.ExpiresAt = claims.ExpiresAt.Time
	}
	return id
}

func (s *Sessions) verify(tokenString string) (*CustomClaims, error) {
	if len(s.secret) == 0 {
		return nil, fmt.Errorf("JWT_SECRET not set")
	}
	token, err := parseWithClaims(tokenString, &CustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(timeNow))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid || claims.Subject == "" || claims.ID == "" {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// Logout 將目前 token 標記為已撤銷，直到原本的到期時間
func (s *Sessions) Logout(ctx context.Context, actor Identity) Result {
	return s.Reporter.Resolve(ctx, OpLogout, s.logout(ctx, actor))
}

func (s *Sessions) logout(ctx context.Context, actor Identity) error {
	if !actor.Authenticated() {
		return unauthenticated()
	}
	ttl := actor.ExpiresAt.Sub(timeNow())
	if ttl <= 0 {
		return nil
	}
	if err := s.cache.Set(ctx, cache.RevokedSessionKey(actor.TokenID), actor.UserID, ttl).Err(); err != nil {
		return persistence("sessions").With("user_id", actor.UserID).Wrapf(err, "revoke session")
	}
	return nil
}

// CurrentUser 讀取目前使用者資料
func (s *Sessions) CurrentUser(ctx context.Context, actor Identity) (*model.User, Result) {
	user, err := s.currentUser(ctx, actor)
	return user, s.Reporter.Resolve(ctx, OpCurrentUser, err)
}

func (s *Sessions) currentUser(ctx context.Context, actor Identity) (*model.User, error) {
	if !actor.Authenticated() {
		return nil, unauthenticated()
	}
	user, err := getUserByID(ctx, s.db, actor.UserID)
	if errors.Is(err, store.ErrNotFound) {
		// 帳號已不存在，token 視同無效
		return nil, unauthenticated()
	}
	if err != nil {
		return nil, persistence("sessions").With("user_id", actor.UserID).Wrapf(err, "load user")
	}
	return user, nil
}
