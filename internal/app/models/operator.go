package models

import "time"

// Operator is a staff account allowed to use the API
type Operator struct {
	ID           int64     `json:"operator_id" db:"operator_id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
