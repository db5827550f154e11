package repositories

import (
	"context"

	"staffsync/internal/models"
)

// MemberRepository defines the interface for member data access.
type MemberRepository interface {
	// Create stores a member. A duplicate email is reported as a validation error.
	Create(ctx context.Context, member *models.Member) error
	GetByEmail(ctx context.Context, email string) (*models.Member, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
