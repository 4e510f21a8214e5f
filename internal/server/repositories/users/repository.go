package users

import (
	"context"

	"github.com/dmitrijs2005/investkeeper/internal/server/models"
)

type Repository interface {
	// Create stores a new user and fails with common.ErrUsernameTaken when
	// the username is already in use (exact, case-sensitive match).
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
}
