package investments

import (
	"context"

	"github.com/dmitrijs2005/investkeeper/internal/server/models"
)

// Repository stores investments. Update and Delete take the caller's user
// id and fail with common.ErrForbidden when the caller does not own the
// record.
type Repository interface {
	List(ctx context.Context, ownerID int) ([]models.Investment, error)
	Get(ctx context.Context, id int) (*models.Investment, error)
	Create(ctx context.Context, ownerID int, inv models.Investment) (*models.Investment, error)
	Update(ctx context.Context, callerID, id int, inv models.Investment) (*models.Investment, error)
	Delete(ctx context.Context, callerID, id int) (*models.Investment, error)
}
