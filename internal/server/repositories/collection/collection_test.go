package collection

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/investkeeper/internal/common"
	"github.com/dmitrijs2005/investkeeper/internal/server/models"
	"github.com/dmitrijs2005/investkeeper/internal/server/store"
)

type investments = Collection[models.Investment, *models.Investment]

func newInvestments(t *testing.T) (*investments, *store.Store) {
	t.Helper()
	s := store.New(store.NewFileBackend(filepath.Join(t.TempDir(), "db.json")))
	c := New[models.Investment, *models.Investment](models.InvestmentsCollection, s,
		func(doc *models.Document) *[]models.Investment { return &doc.Investments })
	return c, s
}

func apple() models.Investment {
	return models.Investment{Name: "Apple", Type: "stock", Amount: models.AmountFromInt(1000), Currency: "USD"}
}

func snapshot(t *testing.T, s *store.Store) []byte {
	t.Helper()
	var out []byte
	require.NoError(t, s.View(context.Background(), func(doc *models.Document) error {
		var err error
		out, err = store.Encode(doc)
		return err
	}))
	return out
}

func TestCreate_AssignsSequentialIDsAndOwner(t *testing.T) {
	c, _ := newInvestments(t)
	ctx := context.Background()

	for want := 1; want <= 5; want++ {
		rec, err := c.Create(ctx, 42, apple())
		require.NoError(t, err)
		assert.Equal(t, want, rec.ID)
		assert.Equal(t, 42, rec.OwnerID)
	}
	assert.Equal(t, models.InvestmentsCollection, c.Name())
}

func TestCreate_IDsNeverReusedAfterDelete(t *testing.T) {
	c, _ := newInvestments(t)
	ctx := context.Background()

	var ids []int
	for i := 0; i < 4; i++ {
		rec, err := c.Create(ctx, 1, apple())
		require.NoError(t, err)
		ids = append(ids, rec.ID)

		// Drop the newest record right away, so the max existing id goes down.
		_, err = c.Delete(ctx, rec.ID, nil)
		require.NoError(t, err)
	}

	assert.Equal(t, []int{1, 2, 3, 4}, ids)
}

func TestCreate_HandWrittenDocumentFallsBackToMax(t *testing.T) {
	c, s := newInvestments(t)
	ctx := context.Background()

	require.NoError(t, s.Update(ctx, func(doc *models.Document) error {
		doc.Investments = append(doc.Investments, models.Investment{ID: 7, OwnerID: 1, Name: "Bond"})
		doc.Sequences = nil
		return nil
	}))

	rec, err := c.Create(ctx, 1, apple())
	require.NoError(t, err)
	assert.Equal(t, 8, rec.ID)
}

func TestCreate_GuardVetoes(t *testing.T) {
	c, s := newInvestments(t)
	ctx := context.Background()
	before := snapshot(t, s)

	errDup := errors.New("duplicate")
	_, err := c.Create(ctx, 1, apple(), func(existing []models.Investment) error { return errDup })
	require.ErrorIs(t, err, errDup)
	assert.Equal(t, before, snapshot(t, s))
}

func TestList_FilterAndOrder(t *testing.T) {
	c, _ := newInvestments(t)
	ctx := context.Background()

	for _, owner := range []int{1, 2, 1} {
		_, err := c.Create(ctx, owner, apple())
		require.NoError(t, err)
	}

	all, err := c.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 3)

	mine, err := c.List(ctx, func(rec *models.Investment) bool { return rec.OwnerID == 1 })
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, 1, mine[0].ID)
	assert.Equal(t, 3, mine[1].ID)

	none, err := c.List(ctx, func(rec *models.Investment) bool { return rec.OwnerID == 9 })
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestGet(t *testing.T) {
	c, _ := newInvestments(t)
	ctx := context.Background()

	created, err := c.Create(ctx, 1, apple())
	require.NoError(t, err)

	got, err := c.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Apple", got.Name)

	_, err = c.Get(ctx, 99)
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestUpdate_ReplacesWholeRecordKeepingIDAndOwner(t *testing.T) {
	c, _ := newInvestments(t)
	ctx := context.Background()

	created, err := c.Create(ctx, 5, apple())
	require.NoError(t, err)

	replacement := models.Investment{ID: 100, OwnerID: 6, Name: "Treasury", Type: "bond"}
	updated, err := c.Update(ctx, created.ID, replacement, nil)
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, 5, updated.OwnerID)
	assert.Equal(t, "Treasury", updated.Name)
	assert.Empty(t, updated.Currency, "omitted fields are not merged from the stored record")

	stored, err := c.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Treasury", stored.Name)
	assert.True(t, stored.Amount.IsZero())
}

func TestUpdateDelete_NotFoundLeavesDocumentUnchanged(t *testing.T) {
	c, s := newInvestments(t)
	ctx := context.Background()

	_, err := c.Create(ctx, 1, apple())
	require.NoError(t, err)
	before := snapshot(t, s)

	_, err = c.Update(ctx, 99, apple(), nil)
	require.ErrorIs(t, err, common.ErrNotFound)

	_, err = c.Delete(ctx, 99, nil)
	require.ErrorIs(t, err, common.ErrNotFound)

	assert.Equal(t, before, snapshot(t, s))
}

func TestUpdateDelete_AuthorizerVetoes(t *testing.T) {
	c, s := newInvestments(t)
	ctx := context.Background()

	created, err := c.Create(ctx, 1, apple())
	require.NoError(t, err)
	before := snapshot(t, s)

	onlyOwner2 := func(stored *models.Investment) error {
		if stored.OwnerID != 2 {
			return common.ErrForbidden
		}
		return nil
	}

	_, err = c.Update(ctx, created.ID, apple(), onlyOwner2)
	require.ErrorIs(t, err, common.ErrForbidden)

	_, err = c.Delete(ctx, created.ID, onlyOwner2)
	require.ErrorIs(t, err, common.ErrForbidden)

	assert.Equal(t, before, snapshot(t, s))
}

func TestDelete_ReturnsRemovedRecord(t *testing.T) {
	c, _ := newInvestments(t)
	ctx := context.Background()

	first, err := c.Create(ctx, 1, apple())
	require.NoError(t, err)
	_, err = c.Create(ctx, 1, apple())
	require.NoError(t, err)

	removed, err := c.Delete(ctx, first.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, first.ID, removed.ID)
	assert.Equal(t, first.Name, removed.Name)
	assert.True(t, first.Amount.Equal(removed.Amount.Decimal))

	left, err := c.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, 2, left[0].ID)
}

func TestUsersCollection_IsNotOwnerScoped(t *testing.T) {
	s := store.New(store.NewFileBackend(filepath.Join(t.TempDir(), "db.json")))
	users := New[models.User, *models.User](models.UsersCollection, s,
		func(doc *models.Document) *[]models.User { return &doc.Users })

	u, err := users.Create(context.Background(), 77, models.User{UserName: "alice", PasswordHash: "h"})
	require.NoError(t, err)
	assert.Equal(t, 1, u.ID)
}
