// Package store is the only place that touches the persisted document.
//
// A Backend is a raw load/replace primitive over some medium (a local file
// or an S3 object). Store layers the locking discipline on top: readers
// load a fresh copy, writers run load → mutate → save as one critical
// section when write serialization is enabled.
package store

import (
	"context"

	"github.com/dmitrijs2005/investkeeper/internal/server/models"
)

// Backend loads and replaces the whole Document.
//
// Load fails with common.ErrStorageUnavailable when the medium cannot be
// read and with common.ErrCorruptDocument when its content does not parse.
// A medium that holds nothing yet yields an empty Document.
//
// Save fails with common.ErrStorageUnavailable when the write fails.
type Backend interface {
	Load(ctx context.Context) (*models.Document, error)
	Save(ctx context.Context, doc *models.Document) error
}
