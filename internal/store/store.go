// Package store persists extracted profiles and hands back a record ID.
package store

import (
	"context"
	"errors"

	"github.com/ppiankov/brandprint/internal/model"
)

// ErrNotFound is returned by Get for an unknown ID
var ErrNotFound = errors.New("profile not found")

// Store consumes a finished profile and returns the stored record's ID.
// The profile is saved as-is and is not modified.
type Store interface {
	Save(ctx context.Context, profile *model.ExtractedProfile) (string, error)
}

// Reader looks a stored profile up by ID
type Reader interface {
	Get(ctx context.Context, id string) (*model.ExtractedProfile, error)
}
