// Package store persists user records. Implementations are interface-driven
// so the service stays testable and persistence can swap between in-memory,
// PostgreSQL, and the cached wrapper without rewiring business code.
package store

import (
	"context"

	"troywings/internal/registration/models"
)

// UserStore is the persistence contract for the registration pipeline.
type UserStore interface {
	// Create inserts a new record and assigns its ID.
	Create(ctx context.Context, user *models.User) error
	// List returns every record in stable store order.
	List(ctx context.Context) ([]models.User, error)
	// Update rewrites the record keyed by user.ID. A zero DateOfBirth keeps
	// the stored birth date. Returns sentinel.ErrNotFound for unknown ids.
	Update(ctx context.Context, user models.User) error
	// FindByID returns a single record or sentinel.ErrNotFound.
	FindByID(ctx context.Context, id int64) (models.User, error)
}
