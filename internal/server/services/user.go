// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login and token verification.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/investkeeper/internal/common"
	"github.com/dmitrijs2005/investkeeper/internal/server/auth"
	"github.com/dmitrijs2005/investkeeper/internal/server/config"
	"github.com/dmitrijs2005/investkeeper/internal/server/models"
	"github.com/dmitrijs2005/investkeeper/internal/server/repositories/repomanager"
)

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token string          `json:"token"`
	User  models.UserInfo `json:"user"`
}

// UserService provides authentication-related operations:
// - Register: create users with a bcrypt-hashed password
// - Login: verify credentials and issue a token
// - VerifyToken: decode the identity of an incoming token
type UserService struct {
	repomanager repomanager.RepositoryManager
	tokens      *auth.TokenService
	hasher      *auth.PasswordHasher
}

// NewUserService constructs a UserService from the repositories and server
// config. It fails when the config carries no signing secret.
func NewUserService(m repomanager.RepositoryManager, cfg *config.Config) (*UserService, error) {
	tokens, err := auth.NewTokenService(cfg.SecretKey, cfg.TokenValidityDuration)
	if err != nil {
		return nil, err
	}
	return &UserService{
		repomanager: m,
		tokens:      tokens,
		hasher:      auth.NewPasswordHasher(cfg.BcryptCost),
	}, nil
}

// Register creates a user. The password is stored only as a bcrypt hash
// and the returned value carries the public fields only.
func (s *UserService) Register(ctx context.Context, username, password string) (*models.UserInfo, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", common.ErrInvalidInput)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user, err := s.repomanager.Users().Create(ctx, &models.User{UserName: username, PasswordHash: hash})
	if err != nil {
		return nil, err
	}

	info := user.Public()
	return &info, nil
}

// Login checks the credentials and issues a token. Unknown usernames and
// wrong passwords both yield common.ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", common.ErrInvalidInput)
	}

	user, err := s.repomanager.Users().GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, s.hasher.CheckMissing(password)
		}
		return nil, err
	}

	if err := s.hasher.Check(user.PasswordHash, password); err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID, user.UserName)
	if err != nil {
		return nil, err
	}

	return &LoginResult{Token: token, User: user.Public()}, nil
}

// List returns the public fields of every registered user.
func (s *UserService) List(ctx context.Context) ([]models.UserInfo, error) {
	users, err := s.repomanager.Users().List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.UserInfo, 0, len(users))
	for i := range users {
		out = append(out, users[i].Public())
	}
	return out, nil
}

// VerifyToken decodes the identity carried by token.
func (s *UserService) VerifyToken(token string) (auth.Identity, error) {
	return s.tokens.Verify(token)
}
