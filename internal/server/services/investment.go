package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"

	"github.com/dmitrijs2005/investkeeper/internal/common"
	"github.com/dmitrijs2005/investkeeper/internal/server/models"
	"github.com/dmitrijs2005/investkeeper/internal/server/repositories/repomanager"
)

// InvestmentService manages the investments of the authenticated caller.
// Every method takes the caller's user id from the verified token.
type InvestmentService struct {
	repomanager repomanager.RepositoryManager
}

func NewInvestmentService(m repomanager.RepositoryManager) *InvestmentService {
	return &InvestmentService{repomanager: m}
}

func (s *InvestmentService) List(ctx context.Context, callerID int) ([]models.Investment, error) {
	return s.repomanager.Investments().List(ctx, callerID)
}

// Get returns one investment of the caller. A record owned by someone else
// yields common.ErrForbidden.
func (s *InvestmentService) Get(ctx context.Context, callerID, id int) (*models.Investment, error) {
	inv, err := s.repomanager.Investments().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv.OwnerID != callerID {
		return nil, common.ErrForbidden
	}
	return inv, nil
}

func (s *InvestmentService) Create(ctx context.Context, callerID int, p models.InvestmentPayload) (*models.Investment, error) {
	p, err := validatePayload(p)
	if err != nil {
		return nil, err
	}
	return s.repomanager.Investments().Create(ctx, callerID, p.Investment())
}

// Update replaces the investment with id by p. Fields missing from p are
// not kept from the stored investment.
func (s *InvestmentService) Update(ctx context.Context, callerID, id int, p models.InvestmentPayload) (*models.Investment, error) {
	p, err := validatePayload(p)
	if err != nil {
		return nil, err
	}
	return s.repomanager.Investments().Update(ctx, callerID, id, p.Investment())
}

func (s *InvestmentService) Delete(ctx context.Context, callerID, id int) (*models.Investment, error) {
	return s.repomanager.Investments().Delete(ctx, callerID, id)
}

// validatePayload checks the required fields and normalizes the currency
// code to upper case.
func validatePayload(p models.InvestmentPayload) (models.InvestmentPayload, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.Type = strings.TrimSpace(p.Type)
	p.Currency = strings.ToUpper(strings.TrimSpace(p.Currency))

	switch {
	case p.Name == "":
		return p, fmt.Errorf("%w: name is required", common.ErrInvalidInput)
	case p.Type == "":
		return p, fmt.Errorf("%w: type is required", common.ErrInvalidInput)
	case p.Currency == "":
		return p, fmt.Errorf("%w: currency is required", common.ErrInvalidInput)
	case money.GetCurrency(p.Currency) == nil:
		return p, fmt.Errorf("%w: unknown currency %q", common.ErrInvalidInput, p.Currency)
	}
	return p, nil
}
