package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/investkeeper/internal/common"
	"github.com/dmitrijs2005/investkeeper/internal/server/models"
)

func applePayload() models.InvestmentPayload {
	return models.InvestmentPayload{Name: "Apple", Type: "stock", Amount: models.AmountFromInt(1000), Currency: "USD"}
}

func TestInvestments_Scenario(t *testing.T) {
	m := newManager(t)
	us := newUserService(t, m)
	is := NewInvestmentService(m)
	ctx := context.Background()

	alice, err := us.Register(ctx, "alice", "secret123")
	require.NoError(t, err)
	bob, err := us.Register(ctx, "bob", "hunter2")
	require.NoError(t, err)
	require.Equal(t, 1, alice.ID)
	require.Equal(t, 2, bob.ID)

	login, err := us.Login(ctx, "alice", "secret123")
	require.NoError(t, err)
	caller, err := us.VerifyToken(login.Token)
	require.NoError(t, err)

	inv, err := is.Create(ctx, caller.UserID, applePayload())
	require.NoError(t, err)
	assert.Equal(t, 1, inv.ID)
	assert.Equal(t, 1, inv.OwnerID)
	assert.Equal(t, "Apple", inv.Name)

	bobs, err := is.List(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, bobs)

	alices, err := is.List(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, alices, 1)
	assert.Equal(t, inv.ID, alices[0].ID)
}

func TestInvestments_OwnerFiltering(t *testing.T) {
	is := NewInvestmentService(newManager(t))
	ctx := context.Background()

	a, err := is.Create(ctx, 1, applePayload())
	require.NoError(t, err)
	b := applePayload()
	b.Name = "Bond"
	_, err = is.Create(ctx, 2, b)
	require.NoError(t, err)

	mine, err := is.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, a.ID, mine[0].ID)
}

func TestInvestments_UpdateDeleteOwnership(t *testing.T) {
	is := NewInvestmentService(newManager(t))
	ctx := context.Background()

	inv, err := is.Create(ctx, 1, applePayload())
	require.NoError(t, err)

	_, err = is.Update(ctx, 2, inv.ID, applePayload())
	require.ErrorIs(t, err, common.ErrForbidden)

	_, err = is.Delete(ctx, 2, inv.ID)
	require.ErrorIs(t, err, common.ErrForbidden)

	repl := applePayload()
	repl.Amount = models.AmountFromInt(2500)
	updated, err := is.Update(ctx, 1, inv.ID, repl)
	require.NoError(t, err)
	assert.True(t, updated.Amount.Equal(models.AmountFromInt(2500).Decimal))

	_, err = is.Update(ctx, 1, 99, repl)
	require.ErrorIs(t, err, common.ErrNotFound)

	deleted, err := is.Delete(ctx, 1, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, inv.ID, deleted.ID)

	_, err = is.Delete(ctx, 1, inv.ID)
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestInvestments_Validation(t *testing.T) {
	is := NewInvestmentService(newManager(t))
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(p *models.InvestmentPayload)
	}{
		{"no name", func(p *models.InvestmentPayload) { p.Name = " " }},
		{"no type", func(p *models.InvestmentPayload) { p.Type = "" }},
		{"no currency", func(p *models.InvestmentPayload) { p.Currency = "" }},
		{"unknown currency", func(p *models.InvestmentPayload) { p.Currency = "XYZ1" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := applePayload()
			tt.mutate(&p)
			_, err := is.Create(ctx, 1, p)
			require.ErrorIs(t, err, common.ErrInvalidInput)
		})
	}

	p := applePayload()
	p.Currency = "eur"
	inv, err := is.Create(ctx, 1, p)
	require.NoError(t, err)
	assert.Equal(t, "EUR", inv.Currency)
}

func TestInvestments_GetOwnership(t *testing.T) {
	m := newManager(t)
	is := NewInvestmentService(m)
	ctx := context.Background()

	inv, err := is.Create(ctx, 1, applePayload())
	require.NoError(t, err)

	got, err := is.Get(ctx, 1, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "Apple", got.Name)

	_, err = is.Get(ctx, 2, inv.ID)
	assert.ErrorIs(t, err, common.ErrForbidden)

	_, err = is.Get(ctx, 1, 99)
	assert.ErrorIs(t, err, common.ErrNotFound)
}
