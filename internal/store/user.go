package store

import (
	"context"

	"poker-log/internal/database"
	"poker-log/internal/model"
)

const userColumns = `id, email, password_hash, name, created_at`

func scanUser(row interface{ Scan(...any) error }) (*model.User, error) {
	u := &model.User{}
	if err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.Name,
		&u.CreatedAt,
	); err != nil {
		return nil, err
	}
	return u, nil
}

func GetUserByID(ctx context.Context, db database.DB, userID string) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT `+userColumns+`
		 FROM users WHERE id = $1`,
		userID,
	)
	u, err := scanUser(row)
	if err != nil {
		return nil, wrap("GetUserByID", err)
	}
	return u, nil
}

func GetUserByEmail(ctx context.Context, db database.DB, email string) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT `+userColumns+`
		 FROM users WHERE email = $1`,
		email,
	)
	u, err := scanUser(row)
	if err != nil {
		return nil, wrap("GetUserByEmail", err)
	}
	return u, nil
}

// CreateUser 寫入新使用者，ID 由呼叫端產生；email 重複時回傳 ErrDuplicate
func CreateUser(ctx context.Context, db database.DB, u *model.User) (*model.User, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO users (id, email, password_hash, name)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at`,
		u.ID,
		u.Email,
		u.PasswordHash,
		u.Name,
	)
	if err := row.Scan(&u.CreatedAt); err != nil {
		return nil, wrap("CreateUser", err)
	}
	return u, nil
}
