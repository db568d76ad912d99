// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is a stored credential record. PasswordHash holds the bcrypt digest,
// never the plaintext.
type User struct {
	ID           int64
	UserName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
