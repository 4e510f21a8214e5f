package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/dmitrijs2005/investkeeper/internal/common"
	"github.com/dmitrijs2005/investkeeper/internal/filex"
	"github.com/dmitrijs2005/investkeeper/internal/server/models"
)

// FileBackend keeps the Document in a single JSON file.
type FileBackend struct {
	path string
	perm os.FileMode
}

func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path, perm: 0o600}
}

// Path returns the file the backend reads and writes.
func (b *FileBackend) Path() string { return b.path }

func (b *FileBackend) Load(ctx context.Context) (*models.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(b.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return models.NewDocument(), nil
		}
		return nil, fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}

	doc, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.path, err)
	}
	return doc, nil
}

func (b *FileBackend) Save(ctx context.Context, doc *models.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := Encode(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}

	if err := filex.WriteFileAtomic(b.path, data, b.perm); err != nil {
		return fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}
	return nil
}
