// Package models holds the client-side view of API resources.
package models

import (
	"fmt"
	"time"
)

type Note struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// String renders a one-line summary used by list views.
func (n Note) String() string {
	return fmt.Sprintf("%-6d %-40s %s", n.ID, truncate(n.Title, 40), n.UpdatedAt.Local().Format(time.DateTime))
}

type User struct {
	ID        int64     `json:"id"`
	UserName  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is what a successful register or login returns. Token is kept in
// memory only.
type Session struct {
	UserID   int64  `json:"user_id"`
	UserName string `json:"username"`
	Email    string `json:"email"`
	Token    string `json:"token"`
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
