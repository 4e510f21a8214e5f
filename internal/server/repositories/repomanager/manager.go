// Package repomanager hands out the repositories that share one document
// store.
package repomanager

import (
	"github.com/dmitrijs2005/investkeeper/internal/server/repositories/investments"
	"github.com/dmitrijs2005/investkeeper/internal/server/repositories/users"
	"github.com/dmitrijs2005/investkeeper/internal/server/store"
)

type RepositoryManager interface {
	Users() users.Repository
	Investments() investments.Repository
}

// DocumentRepositoryManager builds every repository on the same Store, so
// that they share its writer lock.
type DocumentRepositoryManager struct {
	users       *users.DocumentRepository
	investments *investments.DocumentRepository
}

func NewDocumentRepositoryManager(s *store.Store) *DocumentRepositoryManager {
	return &DocumentRepositoryManager{
		users:       users.NewDocumentRepository(s),
		investments: investments.NewDocumentRepository(s),
	}
}

func (m *DocumentRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *DocumentRepositoryManager) Investments() investments.Repository {
	return m.investments
}
