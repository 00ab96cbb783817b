package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound 查無資料
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate 違反唯一鍵
	ErrDuplicate = errors.New("duplicate record")
)

// wrap 將 pgx 的錯誤轉換為 store 的哨兵錯誤，並附上函式名稱
func wrap(fn string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", fn, ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return fmt.Errorf("%s: %w: %s", fn, ErrDuplicate, pgErr.ConstraintName)
	}
	return fmt.Errorf("%s: %w", fn, err)
}
