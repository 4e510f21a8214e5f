package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/investkeeper/internal/common"
	"github.com/dmitrijs2005/investkeeper/internal/logging"
	"github.com/dmitrijs2005/investkeeper/internal/server/models"
)

// Store runs reads and read-modify-write cycles against a Backend.
//
// With serialized writes (the default) every Update holds one mutex from
// load to save, so concurrent mutations cannot lose each other's changes.
// Without it two Updates may interleave and the later save silently
// overwrites the earlier one.
type Store struct {
	backend   Backend
	serialize bool
	logger    logging.Logger

	mu sync.Mutex
}

type Option func(*Store)

// WithLogger sets the logger used for storage failures.
func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithSerializedWrites turns the writer mutex on or off.
func WithSerializedWrites(on bool) Option {
	return func(s *Store) { s.serialize = on }
}

func New(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend:   backend,
		serialize: true,
		logger:    logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("module", "store")

	if !s.serialize {
		s.logger.Warn(context.Background(), "write serialization disabled; concurrent updates may be lost")
	}
	return s
}

// Serialized reports whether Update runs under the writer mutex.
func (s *Store) Serialized() bool { return s.serialize }

// View loads a fresh Document and passes it to fn. Changes fn makes to the
// document are discarded.
func (s *Store) View(ctx context.Context, fn func(doc *models.Document) error) error {
	doc, err := s.backend.Load(ctx)
	if err != nil {
		s.logger.Error(ctx, "load failed", "error", err)
		return err
	}
	return fn(doc)
}

// Update loads the Document, lets fn mutate it and saves the result. If fn
// returns an error nothing is saved and the error is returned unchanged.
// A failed save is reported as common.ErrPersistenceFailure; the mutation
// is lost and is not retried.
func (s *Store) Update(ctx context.Context, fn func(doc *models.Document) error) error {
	if s.serialize {
		s.mu.Lock()
		defer s.mu.Unlock()
	}

	doc, err := s.backend.Load(ctx)
	if err != nil {
		s.logger.Error(ctx, "load failed", "error", err)
		return err
	}

	if err := fn(doc); err != nil {
		return err
	}

	if err := s.backend.Save(ctx, doc); err != nil {
		s.logger.Error(ctx, "save failed", "error", err)
		return fmt.Errorf("%w: %w", common.ErrPersistenceFailure, err)
	}
	return nil
}
