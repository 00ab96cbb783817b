// File: internal/model/tournament.go
package model

import "time"

// Tournament 為使用者的一筆參賽紀錄，UserID 為擁有者
type Tournament struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Name      string    `db:"name" json:"name"`
	Date      time.Time `db:"date" json:"date"`
	BuyIn     int64     `db:"buy_in" json:"buy_in"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// OwnedBy 回傳該紀錄是否屬於指定使用者
func (t *Tournament) OwnedBy(userID string) bool {
	return userID != "" && t.UserID == userID
}
