package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"poker-log/internal/cache"
	"poker-log/internal/database"
	"poker-log/internal/model"
	"poker-log/internal/store"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
)

var (
	createTournament      = store.CreateTournament
	getTournamentByID     = store.GetTournamentByID
	listTournamentsByUser = store.ListTournamentsByUser
	updateTournament      = store.UpdateTournament
	deleteTournament      = store.DeleteTournament
)

// TournamentService 執行錦標賽紀錄的建立、修改、刪除與讀取。
// 每個入口依序檢查：登入 → 欄位驗證 → 存在 → 擁有者 → 實際寫入。
type TournamentService struct {
	Reporter Reporter

	db       database.DB
	cache    cache.Cache
	cacheTTL time.Duration
	loc      *time.Location
	validate *validator.Validate
}

func NewTournamentService(db database.DB, c cache.Cache, cacheTTL time.Duration, loc *time.Location, r Reporter) *TournamentService {
	if loc == nil {
		loc = time.UTC
	}
	return &TournamentService{
		Reporter: r,
		db:       db,
		cache:    c,
		cacheTTL: cacheTTL,
		loc:      loc,
		validate: newValidator(loc),
	}
}

// Create 建立一筆屬於 actor 的紀錄
func (s *TournamentService) Create(ctx context.Context, actor Identity, in TournamentInput) Result {
	t, err := s.create(ctx, actor, in)
	res := s.Reporter.Resolve(ctx, OpCreateTournament, err)
	if t != nil {
		res.ID = t.ID
	}
	return res
}

func (s *TournamentService) create(ctx context.Context, actor Identity, in TournamentInput) (*model.Tournament, error) {
	if !actor.Authenticated() {
		return nil, unauthenticated()
	}
	fields, err := validateTournament(s.validate, s.loc, in)
	if err != nil {
		return nil, err
	}

	t, err := createTournament(ctx, s.db, &model.Tournament{
		ID:     newID(),
		UserID: actor.UserID,
		Name:   fields.Name,
		Date:   fields.Date,
		BuyIn:  fields.BuyIn,
	})
	if err != nil {
		return nil, persistence("tournaments").With("user_id", actor.UserID).Wrapf(err, "create tournament")
	}
	s.invalidate(ctx, cache.TournamentListKey(actor.UserID))
	return t, nil
}

// Update 修改 actor 自己的紀錄，成功後導向該紀錄頁面
func (s *TournamentService) Update(ctx context.Context, actor Identity, id string, in TournamentInput) Result {
	res := s.Reporter.Resolve(ctx, OpUpdateTournament, s.update(ctx, actor, id, in))
	if res.Success {
		res.ID = id
		res.Redirect = DetailPath(id)
	}
	return res
}

func (s *TournamentService) update(ctx context.Context, actor Identity, id string, in TournamentInput) error {
	if !actor.Authenticated() {
		return unauthenticated()
	}
	fields, err := validateTournament(s.validate, s.loc, in)
	if err != nil {
		return err
	}
	t, err := s.loadOwned(ctx, actor, id, "update")
	if err != nil {
		return err
	}

	t.Name = fields.Name
	t.Date = fields.Date
	t.BuyIn = fields.BuyIn
	if err := updateTournament(ctx, s.db, t); err != nil {
		// 讀取後才被刪除
		if errors.Is(err, store.ErrNotFound) {
			return tournamentNotFound(id)
		}
		return persistence("tournaments").With("tournament_id", id).Wrapf(err, "update tournament")
	}
	s.invalidate(ctx, cache.TournamentListKey(actor.UserID))
	return nil
}

// Delete 刪除 actor 自己的紀錄，成功後導向列表
func (s *TournamentService) Delete(ctx context.Context, actor Identity, id string) Result {
	res := s.Reporter.Resolve(ctx, OpDeleteTournament, s.delete(ctx, actor, id))
	if res.Success {
		res.Redirect = ListPath
	}
	return res
}

func (s *TournamentService) delete(ctx context.Context, actor Identity, id string) error {
	if !actor.Authenticated() {
		return unauthenticated()
	}
	if _, err := s.loadOwned(ctx, actor, id, "delete"); err != nil {
		return err
	}
	if err := deleteTournament(ctx, s.db, id, actor.UserID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return tournamentNotFound(id)
		}
		return persistence("tournaments").With("tournament_id", id).Wrapf(err, "delete tournament")
	}
	s.invalidate(ctx, cache.TournamentListKey(actor.UserID))
	return nil
}

// loadOwned 直接從資料庫讀取，確認存在後才檢查擁有者；單筆紀錄不經過快取
func (s *TournamentService) loadOwned(ctx context.Context, actor Identity, id, action string) (*model.Tournament, error) {
	t, err := getTournamentByID(ctx, s.db, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, tournamentNotFound(id)
	}
	if err != nil {
		return nil, persistence("tournaments").With("tournament_id", id).Wrapf(err, "load tournament")
	}
	if !t.OwnedBy(actor.UserID) {
		return nil, forbidden(action, id, actor.UserID)
	}
	return t, nil
}

// List 列出 actor 的紀錄，依日期由新到舊
func (s *TournamentService) List(ctx context.Context, actor Identity) ([]model.Tournament, Result) {
	list, err := s.list(ctx, actor)
	return list, s.Reporter.Resolve(ctx, OpListTournaments, err)
}

func (s *TournamentService) list(ctx context.Context, actor Identity) ([]model.Tournament, error) {
	if !actor.Authenticated() {
		return nil, unauthenticated()
	}
	key := cache.TournamentListKey(actor.UserID)
	var list []model.Tournament
	if s.cached(ctx, key, &list) {
		return list, nil
	}

	list, err := listTournamentsByUser(ctx, s.db, actor.UserID)
	if err != nil {
		return nil, persistence("tournaments").With("user_id", actor.UserID).Wrapf(err, "list tournaments")
	}
	s.remember(ctx, key, list)
	return list, nil
}

// Get 讀取單筆紀錄供編輯；不存在與不屬於 actor 對呼叫端而言結果相同
func (s *TournamentService) Get(ctx context.Context, actor Identity, id string) (*model.Tournament, Result) {
	t, err := s.get(ctx, actor, id)
	if err != nil {
		t = nil
	}
	return t, s.Reporter.Resolve(ctx, OpGetTournament, err)
}

func (s *TournamentService) get(ctx context.Context, actor Identity, id string) (*model.Tournament, error) {
	if !actor.Authenticated() {
		return nil, unauthenticated()
	}
	return s.loadOwned(ctx, actor, id, "view")
}

// cached 從快取讀取並解碼；未命中或快取失敗時回傳 false，改讀資料庫
func (s *TournamentService) cached(ctx context.Context, key string, dst any) bool {
	raw, err := s.cache.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		s.Reporter.logger().WarnContext(ctx, "cache read failed", slog.String("key", key), slog.Any("error", err))
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		s.Reporter.logger().WarnContext(ctx, "cache entry corrupt", slog.String("key", key), slog.Any("error", err))
		return false
	}
	return true
}

func (s *TournamentService) remember(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.cacheTTL).Err(); err != nil {
		s.Reporter.logger().WarnContext(ctx, "cache write failed", slog.String("key", key), slog.Any("error", err))
	}
}

// invalidate 清除列表快取；失敗只記錄，不影響已完成的寫入
func (s *TournamentService) invalidate(ctx context.Context, keys ...string) {
	if err := s.cache.Del(ctx, keys...).Err(); err != nil {
		s.Reporter.logger().WarnContext(ctx, "cache invalidation failed", slog.Any("keys", keys), slog.Any("error", err))
	}
}
