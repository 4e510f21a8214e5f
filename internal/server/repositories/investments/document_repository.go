package investments

import (
	"context"

	"github.com/dmitrijs2005/investkeeper/internal/common"
	"github.com/dmitrijs2005/investkeeper/internal/server/models"
	"github.com/dmitrijs2005/investkeeper/internal/server/repositories/collection"
	"github.com/dmitrijs2005/investkeeper/internal/server/store"
)

// DocumentRepository keeps investments in the "investments" collection of
// the document.
type DocumentRepository struct {
	c *collection.Collection[models.Investment, *models.Investment]
}

func NewDocumentRepository(s *store.Store) *DocumentRepository {
	return &DocumentRepository{
		c: collection.New[models.Investment, *models.Investment](models.InvestmentsCollection, s,
			func(doc *models.Document) *[]models.Investment { return &doc.Investments }),
	}
}

func (r *DocumentRepository) List(ctx context.Context, ownerID int) ([]models.Investment, error) {
	return r.c.List(ctx, func(inv *models.Investment) bool { return inv.OwnerID == ownerID })
}

func (r *DocumentRepository) Get(ctx context.Context, id int) (*models.Investment, error) {
	inv, err := r.c.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *DocumentRepository) Create(ctx context.Context, ownerID int, inv models.Investment) (*models.Investment, error) {
	created, err := r.c.Create(ctx, ownerID, inv)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *DocumentRepository) Update(ctx context.Context, callerID, id int, inv models.Investment) (*models.Investment, error) {
	updated, err := r.c.Update(ctx, id, inv, ownedBy(callerID))
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *DocumentRepository) Delete(ctx context.Context, callerID, id int) (*models.Investment, error) {
	removed, err := r.c.Delete(ctx, id, ownedBy(callerID))
	if err != nil {
		return nil, err
	}
	return &removed, nil
}

func ownedBy(callerID int) collection.Authorizer[models.Investment] {
	return func(stored *models.Investment) error {
		if stored.OwnerID != callerID {
			return common.ErrForbidden
		}
		return nil
	}
}
