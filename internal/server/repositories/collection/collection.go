// Package collection implements CRUD over one named collection of the
// persisted Document. Every operation is a fresh load through the store;
// mutations run as one store.Update critical section.
package collection

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/investkeeper/internal/common"
	"github.com/dmitrijs2005/investkeeper/internal/server/models"
	"github.com/dmitrijs2005/investkeeper/internal/server/store"
)

// Record is implemented by pointers to collection elements.
type Record[T any] interface {
	*T
	GetID() int
	SetID(id int)
}

// Owned is implemented by records of owner-scoped collections.
type Owned interface {
	GetOwnerID() int
	SetOwnerID(ownerID int)
}

// Guard inspects the current records before a create and may veto it.
type Guard[T any] func(existing []T) error

// Authorizer inspects the stored record before an update or delete and may
// veto it, typically with common.ErrForbidden.
type Authorizer[T any] func(stored *T) error

// Collection gives typed access to the slice returned by items.
type Collection[T any, P Record[T]] struct {
	name  string
	store *store.Store
	items func(doc *models.Document) *[]T
}

func New[T any, P Record[T]](name string, s *store.Store, items func(doc *models.Document) *[]T) *Collection[T, P] {
	return &Collection[T, P]{name: name, store: s, items: items}
}

// Name returns the collection name used in the document.
func (c *Collection[T, P]) Name() string { return c.name }

// List returns the records for which filter holds, in insertion order.
// A nil filter returns every record.
func (c *Collection[T, P]) List(ctx context.Context, filter func(rec *T) bool) ([]T, error) {
	out := []T{}
	err := c.store.View(ctx, func(doc *models.Document) error {
		for _, rec := range *c.items(doc) {
			if filter == nil || filter(&rec) {
				out = append(out, rec)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Find returns the first record matching match, or common.ErrNotFound.
func (c *Collection[T, P]) Find(ctx context.Context, match func(rec *T) bool) (T, error) {
	var (
		found T
		ok    bool
	)
	err := c.store.View(ctx, func(doc *models.Document) error {
		for _, rec := range *c.items(doc) {
			if match(&rec) {
				found, ok = rec, true
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return found, err
	}
	if !ok {
		return found, common.ErrNotFound
	}
	return found, nil
}

// Get returns the record with the given id, or common.ErrNotFound.
func (c *Collection[T, P]) Get(ctx context.Context, id int) (T, error) {
	rec, err := c.Find(ctx, func(rec *T) bool { return P(rec).GetID() == id })
	if err != nil {
		return rec, fmt.Errorf("%s %d: %w", c.name, id, err)
	}
	return rec, nil
}

// Create appends rec with the next free id. For owner-scoped records the
// owner is set to ownerID. Guards run against the current records inside
// the same critical section, so a uniqueness guard cannot be raced when
// writes are serialized.
func (c *Collection[T, P]) Create(ctx context.Context, ownerID int, rec T, guards ...Guard[T]) (T, error) {
	err := c.store.Update(ctx, func(doc *models.Document) error {
		items := c.items(doc)
		for _, guard := range guards {
			if err := guard(*items); err != nil {
				return err
			}
		}

		id := c.nextID(doc, *items)
		P(&rec).SetID(id)
		if owned, ok := any(P(&rec)).(Owned); ok {
			owned.SetOwnerID(ownerID)
		}

		*items = append(*items, rec)
		doc.SetLastIssued(c.name, id)
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return rec, nil
}

// Update replaces the record with the given id by rec. The replacement is
// whole: every field of rec is taken as is, except id and owner, which are
// kept from the stored record.
func (c *Collection[T, P]) Update(ctx context.Context, id int, rec T, authorize Authorizer[T]) (T, error) {
	err := c.store.Update(ctx, func(doc *models.Document) error {
		items := *c.items(doc)
		i, err := c.indexOf(items, id)
		if err != nil {
			return err
		}
		if authorize != nil {
			if err := authorize(&items[i]); err != nil {
				return err
			}
		}

		P(&rec).SetID(id)
		if owned, ok := any(P(&rec)).(Owned); ok {
			owned.SetOwnerID(any(P(&items[i])).(Owned).GetOwnerID())
		}
		items[i] = rec
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return rec, nil
}

// Delete removes the record with the given id and returns it.
func (c *Collection[T, P]) Delete(ctx context.Context, id int, authorize Authorizer[T]) (T, error) {
	var removed T
	err := c.store.Update(ctx, func(doc *models.Document) error {
		items := c.items(doc)
		i, err := c.indexOf(*items, id)
		if err != nil {
			return err
		}
		if authorize != nil {
			if err := authorize(&(*items)[i]); err != nil {
				return err
			}
		}

		removed = (*items)[i]
		*items = append((*items)[:i], (*items)[i+1:]...)
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return removed, nil
}

func (c *Collection[T, P]) indexOf(items []T, id int) (int, error) {
	for i := range items {
		if P(&items[i]).GetID() == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%s %d: %w", c.name, id, common.ErrNotFound)
}

// nextID is one past the highest id present or ever issued.
func (c *Collection[T, P]) nextID(doc *models.Document, items []T) int {
	highest := doc.LastIssued(c.name)
	for i := range items {
		if id := P(&items[i]).GetID(); id > highest {
			highest = id
		}
	}
	return highest + 1
}
