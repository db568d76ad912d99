package rest

import (
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/server/models"
	"github.com/dmitrijs2005/gophnotes/internal/server/services"
)

type RegisterRequest struct {
	UserName string `json:"username" validate:"min=3,max=100"`
	Email    string `json:"email" validate:"email"`
	Password string `json:"password" validate:"min=6,maxbytes=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"email"`
	Password string `json:"password" validate:"required"`
}

// NoteRequest is the body of both create and update.
type NoteRequest struct {
	Title   string `json:"title" validate:"required,min=1,max=255"`
	Content string `json:"content"`
}

type AuthResponse struct {
	UserID   int64  `json:"user_id"`
	UserName string `json:"username"`
	Email    string `json:"email"`
	Token    string `json:"token"`
}

type UserResponse struct {
	ID        int64     `json:"id"`
	UserName  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type NoteResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func toAuthResponse(r *services.AuthResult) AuthResponse {
	return AuthResponse{
		UserID:   int64(r.UserID),
		UserName: r.UserName,
		Email:    r.Email,
		Token:    r.Token,
	}
}

func toUserResponse(u *models.User) UserResponse {
	return UserResponse{ID: u.ID, UserName: u.UserName, Email: u.Email, CreatedAt: u.CreatedAt}
}

func toNoteResponse(n *models.Note) NoteResponse {
	return NoteResponse{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func toNoteResponses(notes []models.Note) []NoteResponse {
	out := make([]NoteResponse, 0, len(notes))
	for i := range notes {
		out = append(out, toNoteResponse(&notes[i]))
	}
	return out
}
