package users

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/investkeeper/internal/common"
	"github.com/dmitrijs2005/investkeeper/internal/server/models"
	"github.com/dmitrijs2005/investkeeper/internal/server/repositories/collection"
	"github.com/dmitrijs2005/investkeeper/internal/server/store"
)

// DocumentRepository keeps users in the "users" collection of the document.
type DocumentRepository struct {
	c *collection.Collection[models.User, *models.User]
}

func NewDocumentRepository(s *store.Store) *DocumentRepository {
	return &DocumentRepository{
		c: collection.New[models.User, *models.User](models.UsersCollection, s,
			func(doc *models.Document) *[]models.User { return &doc.Users }),
	}
}

func (r *DocumentRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	created, err := r.c.Create(ctx, 0, *user, uniqueUserName(user.UserName))
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return &created, nil
}

func (r *DocumentRepository) GetUserByLogin(ctx context.Context, userName string) (*models.User, error) {
	u, err := r.c.Find(ctx, func(u *models.User) bool { return u.UserName == userName })
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *DocumentRepository) List(ctx context.Context) ([]models.User, error) {
	return r.c.List(ctx, nil)
}

func uniqueUserName(userName string) collection.Guard[models.User] {
	return func(existing []models.User) error {
		for _, u := range existing {
			if u.UserName == userName {
				return common.ErrUsernameTaken
			}
		}
		return nil
	}
}
