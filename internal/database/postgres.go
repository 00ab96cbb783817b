package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"io/fs"
	"time"

	"github.com/golang-migrate/migrate/v4"
	dbdriver "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	src "github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sethvargo/go-retry"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// migrateInstance 為 *migrate.Migrate 中用到的方法
type migrateInstance interface {
	Up() error
	Down() error
}

// 以下變數為測試替換點
var (
	pgxpoolNew             = pgxpool.New
	pingPool               = func(ctx context.Context, p *pgxpool.Pool) error { return p.Ping(ctx) }
	closePool              = func(p *pgxpool.Pool) { p.Close() }
	sqlOpenDB              = sql.Open
	postgresWithInstanceFn = postgres.WithInstance
	iofsNewFn              = func(f fs.FS, path string) (src.Driver, error) { return iofs.New(f, path) }
	migrateNewWithInstance = func(sourceName string, sourceDriver src.Driver, databaseName string, databaseDriver dbdriver.Driver) (migrateInstance, error) {
		m, err := migrate.NewWithInstance(sourceName, sourceDriver, databaseName, databaseDriver)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
	backoffBase = 500 * time.Millisecond
)

// NewPgxPool 建立連線池並以指數退避 Ping，最多重試 retries 次
func NewPgxPool(ctx context.Context, url string, retries uint64) (DB, error) {
	pool, err := pgxpoolNew(ctx, url)
	if err != nil {
		return nil, err
	}

	b := retry.WithMaxRetries(retries, retry.NewExponential(backoffBase))
	err = retry.Do(ctx, b, func(ctx context.Context) error {
		if err := pingPool(ctx, pool); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		closePool(pool)
		return nil, err
	}
	return pool, nil
}

func newMigrator(dbURL string) (migrateInstance, func(), error) {
	// 建立 *sql.DB 使用 pgx stdlib driver
	sqlDB, err := sqlOpenDB("pgx", dbURL)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() { _ = sqlDB.Close() }

	driver, err := postgresWithInstanceFn(sqlDB, &postgres.Config{})
	if err != nil {
		closeFn()
		return nil, nil, err
	}

	sourceDriver, err := iofsNewFn(migrationsFS, "migrations")
	if err != nil {
		closeFn()
		return nil, nil, err
	}

	m, err := migrateNewWithInstance("iofs", sourceDriver, "postgres", driver)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return m, closeFn, nil
}

// RunMigrations 嵌入並執行 SQL migration (up all)
func RunMigrations(dbURL string) error {
	m, closeFn, err := newMigrator(dbURL)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// RollbackAll 退回所有 migration (down to version 0)
func RollbackAll(dbURL string) error {
	m, closeFn, err := newMigrator(dbURL)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
