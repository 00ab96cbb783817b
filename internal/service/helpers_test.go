package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"testing"
	"time"

	"poker-log/internal/cache"
	"poker-log/internal/database"
	"poker-log/internal/model"
	"poker-log/internal/store"

	"github.com/redis/go-redis/v9"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// memStore 以記憶體模擬 store 套件
type memStore struct {
	users       map[string]*model.User
	tournaments map[string]model.Tournament
	writes      int
	reads       int
	fail        error
}

func installMemStore(t *testing.T) *memStore {
	t.Helper()
	ms := &memStore{
		users:       map[string]*model.User{},
		tournaments: map[string]model.Tournament{},
	}

	origGetUserByEmail, origGetUserByID, origCreateUser := getUserByEmail, getUserByID, createUser
	origCreate, origGet, origList, origUpdate, origDelete := createTournament, getTournamentByID, listTournamentsByUser, updateTournament, deleteTournament
	t.Cleanup(func() {
		getUserByEmail, getUserByID, createUser = origGetUserByEmail, origGetUserByID, origCreateUser
		createTournament, getTournamentByID, listTournamentsByUser, updateTournament, deleteTournament = origCreate, origGet, origList, origUpdate, origDelete
	})

	getUserByEmail = func(_ context.Context, _ database.DB, email string) (*model.User, error) {
		if ms.fail != nil {
			return nil, ms.fail
		}
		for _, u := range ms.users {
			if u.Email == email {
				cp := *u
				return &cp, nil
			}
		}
		return nil, fmt.Errorf("GetUserByEmail: %w", store.ErrNotFound)
	}
	getUserByID = func(_ context.Context, _ database.DB, id string) (*model.User, error) {
		if ms.fail != nil {
			return nil, ms.fail
		}
		u, ok := ms.users[id]
		if !ok {
			return nil, fmt.Errorf("GetUserByID: %w", store.ErrNotFound)
		}
		cp := *u
		return &cp, nil
	}
	createUser = func(_ context.Context, _ database.DB, u *model.User) (*model.User, error) {
		if ms.fail != nil {
			return nil, ms.fail
		}
		for _, existing := range ms.users {
			if existing.Email == u.Email {
				return nil, fmt.Errorf("CreateUser: %w", store.ErrDuplicate)
			}
		}
		ms.writes++
		u.CreatedAt = time.Now()
		cp := *u
		ms.users[u.ID] = &cp
		return u, nil
	}

	createTournament = func(_ context.Context, _ database.DB, tm *model.Tournament) (*model.Tournament, error) {
		if ms.fail != nil {
			return nil, ms.fail
		}
		ms.writes++
		tm.CreatedAt = time.Now().UTC()
		tm.UpdatedAt = tm.CreatedAt
		ms.tournaments[tm.ID] = *tm
		return tm, nil
	}
	getTournamentByID = func(_ context.Context, _ database.DB, id string) (*model.Tournament, error) {
		ms.reads++
		if ms.fail != nil {
			return nil, ms.fail
		}
		tm, ok := ms.tournaments[id]
		if !ok {
			return nil, fmt.Errorf("GetTournamentByID: %w", store.ErrNotFound)
		}
		return &tm, nil
	}
	listTournamentsByUser = func(_ context.Context, _ database.DB, userID string) ([]model.Tournament, error) {
		ms.reads++
		if ms.fail != nil {
			return nil, ms.fail
		}
		list := []model.Tournament{}
		for _, tm := range ms.tournaments {
			if tm.UserID == userID {
				list = append(list, tm)
			}
		}
		sort.Slice(list, func(i, j int) bool {
			if list[i].Date.Equal(list[j].Date) {
				return list[i].ID > list[j].ID
			}
			return list[i].Date.After(list[j].Date)
		})
		return list, nil
	}
	updateTournament = func(_ context.Context, _ database.DB, tm *model.Tournament) error {
		if ms.fail != nil {
			return ms.fail
		}
		existing, ok := ms.tournaments[tm.ID]
		if !ok || existing.UserID != tm.UserID {
			return fmt.Errorf("UpdateTournament: %w", store.ErrNotFound)
		}
		ms.writes++
		tm.UpdatedAt = time.Now().UTC()
		ms.tournaments[tm.ID] = *tm
		return nil
	}
	deleteTournament = func(_ context.Context, _ database.DB, id, userID string) error {
		if ms.fail != nil {
			return ms.fail
		}
		existing, ok := ms.tournaments[id]
		if !ok || existing.UserID != userID {
			return fmt.Errorf("DeleteTournament: %w", store.ErrNotFound)
		}
		ms.writes++
		delete(ms.tournaments, id)
		return nil
	}
	return ms
}

func (ms *memStore) addTournament(id, userID, name string, date time.Time, buyIn int64) {
	ms.tournaments[id] = model.Tournament{ID: id, UserID: userID, Name: name, Date: date, BuyIn: buyIn}
}

// memCache 以 map 實作 cache.FakeCache
type memCache struct {
	data    map[string]string
	ttls    map[string]time.Duration
	deleted []string
	getErr  error
	setErr  error
	delErr  error
}

func newMemCache() (*memCache, *cache.FakeCache) {
	mc := &memCache{data: map[string]string{}, ttls: map[string]time.Duration{}}
	fc := &cache.FakeCache{
		GetFn: func(ctx context.Context, key string) *redis.StringCmd {
			if mc.getErr != nil {
				return redis.NewStringResult("", mc.getErr)
			}
			v, ok := mc.data[key]
			if !ok {
				return redis.NewStringResult("", redis.Nil)
			}
			return redis.NewStringResult(v, nil)
		},
		SetFn: func(ctx context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
			if mc.setErr != nil {
				return redis.NewStatusResult("", mc.setErr)
			}
			switch v := value.(type) {
			case []byte:
				mc.data[key] = string(v)
			case string:
				mc.data[key] = v
			default:
				mc.data[key] = fmt.Sprint(v)
			}
			mc.ttls[key] = ttl
			return redis.NewStatusResult("OK", nil)
		},
		DelFn: func(ctx context.Context, keys ...string) *redis.IntCmd {
			mc.deleted = append(mc.deleted, keys...)
			if mc.delErr != nil {
				return redis.NewIntResult(0, mc.delErr)
			}
			var n int64
			for _, k := range keys {
				if _, ok := mc.data[k]; ok {
					delete(mc.data, k)
					n++
				}
			}
			return redis.NewIntResult(n, nil)
		},
	}
	return mc, fc
}

// stubIDs 讓 newID 依序回傳 prefix-1、prefix-2…
func stubIDs(t *testing.T, prefix string) {
	t.Helper()
	orig := newID
	n := 0
	newID = func() string {
		n++
		return prefix + "-" + strconv.Itoa(n)
	}
	t.Cleanup(func() { newID = orig })
}

func bufferedReporter() (Reporter, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return Reporter{Logger: logger}, buf
}

func actor(id string) Identity {
	return Identity{UserID: id, Email: id + "@example.com", TokenID: "tok-" + id, ExpiresAt: time.Now().Add(time.Hour)}
}
