package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"nil", nil, ""},
		{"plain", errors.New("boom"), KindUnknown},
		{"invalid input", ErrInvalidInput, KindInvalidInput},
		{"wrapped not found", fmt.Errorf("investment 3: %w", ErrNotFound), KindNotFound},
		{"expired", ErrTokenExpired, KindTokenExpired},
		{"persistence wraps storage", fmt.Errorf("%w: %w", ErrPersistenceFailure, ErrStorageUnavailable), KindPersistenceFailure},
		{"corrupt", fmt.Errorf("decode: %w", ErrCorruptDocument), KindCorruptDocument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Kind(tt.err))
		})
	}
}

func TestIsStorage(t *testing.T) {
	assert.True(t, IsStorage(ErrStorageUnavailable))
	assert.True(t, IsStorage(fmt.Errorf("x: %w", ErrCorruptDocument)))
	assert.True(t, IsStorage(ErrPersistenceFailure))
	assert.False(t, IsStorage(ErrNotFound))
	assert.False(t, IsStorage(nil))
}
