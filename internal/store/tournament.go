package store

import (
	"context"

	"poker-log/internal/database"
	"poker-log/internal/model"
)

const tournamentColumns = `id, user_id, name, date, buy_in, created_at, updated_at`

func scanTournament(row interface{ Scan(...any) error }) (*model.Tournament, error) {
	t := &model.Tournament{}
	if err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.Name,
		&t.Date,
		&t.BuyIn,
		&t.CreatedAt,
		&t.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return t, nil
}

// CreateTournament 寫入新紀錄，ID 與 UserID 由呼叫端指定
func CreateTournament(ctx context.Context, db database.DB, t *model.Tournament) (*model.Tournament, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO tournaments (id, user_id, name, date, buy_in)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at, updated_at`,
		t.ID,
		t.UserID,
		t.Name,
		t.Date,
		t.BuyIn,
	)
	if err := row.Scan(&t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, wrap("CreateTournament", err)
	}
	return t, nil
}

func GetTournamentByID(ctx context.Context, db database.DB, id string) (*model.Tournament, error) {
	row := db.QueryRow(ctx,
		`SELECT `+tournamentColumns+`
		 FROM tournaments WHERE id = $1`,
		id,
	)
	t, err := scanTournament(row)
	if err != nil {
		return nil, wrap("GetTournamentByID", err)
	}
	return t, nil
}

// ListTournamentsByUser 依日期由新到舊列出使用者的紀錄
func ListTournamentsByUser(ctx context.Context, db database.DB, userID string) ([]model.Tournament, error) {
	rows, err := db.Query(ctx,
		`SELECT `+tournamentColumns+`
		 FROM tournaments
		 WHERE user_id = $1
		 ORDER BY date DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, wrap("ListTournamentsByUser", err)
	}
	defer rows.Close()

	list := []model.Tournament{}
	for rows.Next() {
		t, err := scanTournament(rows)
		if err != nil {
			return nil, wrap("ListTournamentsByUser", err)
		}
		list = append(list, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("ListTournamentsByUser", err)
	}
	return list, nil
}

// UpdateTournament 只更新屬於 t.UserID 的紀錄；沒有列被更新時回傳 ErrNotFound
func UpdateTournament(ctx context.Context, db database.DB, t *model.Tournament) error {
	row := db.QueryRow(ctx,
		`UPDATE tournaments
		 SET name = $1, date = $2, buy_in = $3, updated_at = now()
		 WHERE id = $4 AND user_id = $5
		 RETURNING updated_at`,
		t.Name,
		t.Date,
		t.BuyIn,
		t.ID,
		t.UserID,
	)
	if err := row.Scan(&t.UpdatedAt); err != nil {
		return wrap("UpdateTournament", err)
	}
	return nil
}

// DeleteTournament 只刪除屬於 userID 的紀錄；沒有列被刪除時回傳 ErrNotFound
func DeleteTournament(ctx context.Context, db database.DB, id, userID string) error {
	tag, err := db.Exec(ctx,
		`DELETE FROM tournaments WHERE id = $1 AND user_id = $2`,
		id,
		userID,
	)
	if err != nil {
		return wrap("DeleteTournament", err)
	}
	if tag.RowsAffected() == 0 {
		return wrap("DeleteTournament", ErrNotFound)
	}
	return nil
}
