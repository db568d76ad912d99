// Package services contains server-side business logic. This file implements
// UserService: registration, login and profile lookup.
//
// UserService trusts its caller to have validated input shape (email
// syntax, username length 3..100, password length >= 6); the HTTP layer
// does that before calling in.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/dbx"
	"github.com/dmitrijs2005/gophnotes/internal/server/auth"
	"github.com/dmitrijs2005/gophnotes/internal/server/config"
	"github.com/dmitrijs2005/gophnotes/internal/server/models"
	"github.com/dmitrijs2005/gophnotes/internal/server/repositories/repomanager"
)

// AuthResult is returned by a successful Register or Login.
type AuthResult struct {
	UserID   auth.Principal
	UserName string
	Email    string
	Token    string
}

type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	hasher                      auth.PasswordHasher
	tokens                      auth.TokenIssuer
	accessTokenValidityDuration time.Duration
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher auth.PasswordHasher,
	tokens auth.TokenIssuer, cfg *config.Config) *UserService {
	return &UserService{
		db:                          db,
		repomanager:                 m,
		hasher:                      hasher,
		tokens:                      tokens,
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// Register creates the user and issues a session token. The insert and the
// token issuance share a transaction, so a user is never left behind
// without the caller receiving a token.
//
// Errors: common.ErrDuplicateIdentifier when the email is taken,
// common.ErrInvalidInput when the password is too long for the hasher,
// common.ErrStoreFailure for persistence failures, common.ErrInternal when
// hashing or signing fails.
func (s *UserService) Register(ctx context.Context, email, userName, password string) (*AuthResult, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: %w", common.ErrInvalidInput, err)
		}
		return nil, fmt.Errorf("%w: %w", common.ErrInternal, err)
	}

	var result *AuthResult
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		user, err := s.repomanager.Users(tx).Create(ctx, &models.User{
			UserName:     userName,
			Email:        normalizeEmail(email),
			PasswordHash: hash,
		})
		if err != nil {
			if errors.Is(err, common.ErrAlreadyExists) {
				return common.ErrDuplicateIdentifier
			}
			return fmt.Errorf("%w: create user: %w", common.ErrStoreFailure, err)
		}

		result, err = s.authResult(user)
		return err
	})
	if err != nil {
		return nil, s.classifyTxError(err)
	}
	return result, nil
}

// Login verifies the password for email and issues a session token.
//
// Errors: common.ErrNotFound for an unknown email,
// common.ErrInvalidCredentials for a wrong password,
// common.ErrStoreFailure for persistence failures.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.repomanager.Users(s.db).GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("%w: find user: %w", common.ErrStoreFailure, err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, common.ErrInvalidCredentials
	}
	return s.authResult(user)
}

// GetUser returns the profile of user id, which must be the caller.
// A foreign id is common.ErrForbidden whether or not it exists.
func (s *UserService) GetUser(ctx context.Context, caller auth.Principal, id int64) (*models.User, error) {
	if err := auth.CheckOwner(caller, auth.Principal(id)); err != nil {
		return nil, err
	}

	user, err := s.repomanager.Users(s.db).GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("%w: get user: %w", common.ErrStoreFailure, err)
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *UserService) authResult(user *models.User) (*AuthResult, error) {
	p := auth.Principal(user.ID)
	token, err := s.tokens.Issue(p, s.accessTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInternal, err)
	}
	return &AuthResult{UserID: p, UserName: user.UserName, Email: user.Email, Token: token}, nil
}

// classifyTxError keeps typed outcomes and turns begin/commit failures into
// store failures.
func (s *UserService) classifyTxError(err error) error {
	switch {
	case errors.Is(err, common.ErrDuplicateIdentifier),
		errors.Is(err, common.ErrStoreFailure),
		errors.Is(err, common.ErrInternal):
		return err
	default:
		return fmt.Errorf("%w: %w", common.ErrStoreFailure, err)
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
