package database

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"
)

func TestFakeDBUnsetMethodsPanic(t *testing.T) {
	db := &FakeDB{}
	ctx := context.Background()
	require.PanicsWithValue(t, "unexpected Exec", func() { _, _ = db.Exec(ctx, "") })
	require.PanicsWithValue(t, "unexpected Query", func() { _, _ = db.Query(ctx, "") })
	require.PanicsWithValue(t, "unexpected QueryRow", func() { db.QueryRow(ctx, "") })
	require.PanicsWithValue(t, "unexpected Ping", func() { _ = db.Ping(ctx) })
	require.NotPanics(t, db.Close)
}

func TestFakeDBQueryRow(t *testing.T) {
	ctx := context.Background()
	db := &FakeDB{
		QueryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
			require.Equal(t, "SELECT name, buy_in FROM tournaments WHERE id = $1", sql)
			require.Equal(t, []any{"t-1"}, args)
			return RowFunc(func(dest ...any) error {
				*dest[0].(*string) = "Weekend"
				*dest[1].(*int64) = 5000
				return nil
			})
		},
	}

	var name string
	var buyIn int64
	require.NoError(t, db.QueryRow(ctx, "SELECT name, buy_in FROM tournaments WHERE id = $1", "t-1").Scan(&name, &buyIn))
	require.Equal(t, "Weekend", name)
	require.Equal(t, int64(5000), buyIn)

	// 查無資料時由 Scan 回報
	db.QueryRowFn = func(context.Context, string, ...any) pgx.Row {
		return RowFunc(func(...any) error { return pgx.ErrNoRows })
	}
	require.ErrorIs(t, db.QueryRow(ctx, "SELECT 1").Scan(&name), pgx.ErrNoRows)
}

func TestFakeDBExec(t *testing.T) {
	var gotArgs []any
	db := &FakeDB{
		ExecFn: func(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
			gotArgs = args
			return pgconn.NewCommandTag("DELETE 0"), nil
		},
	}
	tag, err := db.Exec(context.Background(), "DELETE FROM tournaments WHERE id = $1 AND user_id = $2", "t-1", "u-1")
	require.NoError(t, err)
	require.Zero(t, tag.RowsAffected())
	require.Equal(t, []any{"t-1", "u-1"}, gotArgs)

	db.ExecFn = func(context.Context, string, ...any) (pgconn.CommandTag, error) {
		return pgconn.CommandTag{}, errors.New("conn reset")
	}
	_, err = db.Exec(context.Background(), "DELETE FROM tournaments")
	require.EqualError(t, err, "conn reset")
}

func TestFakeDBPingAndClose(t *testing.T) {
	closed := false
	db := &FakeDB{
		PingFn:  func(context.Context) error { return errors.New("down") },
		CloseFn: func() { closed = true },
	}
	require.EqualError(t, db.Ping(context.Background()), "down")
	db.Close()
	require.True(t, closed)
}

func TestPgxMockSatisfiesDB(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	var db DB = mock
	mock.ExpectExec(`DELETE FROM tournaments`).
		WithArgs("t-1", "u-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	tag, err := db.Exec(context.Background(), "DELETE FROM tournaments WHERE id = $1 AND user_id = $2", "t-1", "u-1")
	require.NoError(t, err)
	require.Equal(t, int64(1), tag.RowsAffected())
	require.NoError(t, mock.ExpectationsWereMet())
}
