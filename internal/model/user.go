// File: internal/model/user.go
package model

import "time"

type User struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Name         *string   `db:"name" json:"name,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
