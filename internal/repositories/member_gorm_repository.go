package repositories

import (
	"context"
	"errors"
	"fmt"

	"staffsync/internal/apperror"
	"staffsync/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMMemberRepository is a GORM implementation of MemberRepository.
type GORMMemberRepository struct {
	db *gorm.DB
}

// NewGORMMemberRepository creates a new instance of GORMMemberRepository.
func NewGORMMemberRepository(db *gorm.DB) *GORMMemberRepository {
	return &GORMMemberRepository{
		db: db,
	}
}

// Create creates a new member in the database. The unique index on email is the final
// word on duplicates.
func (r *GORMMemberRepository) Create(ctx context.Context, member *models.Member) error {
	if member.ID == "" {
		member.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(member).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperror.Validation("email", "email %s is already registered", member.Email)
		}
		return fmt.Errorf("failed to create member: %w", err)
	}
	return nil
}

// GetByEmail retrieves a member by their email from the database.
func (r *GORMMemberRepository) GetByEmail(ctx context.Context, email string) (*models.Member, error) {
	var member models.Member
	if err := r.db.WithContext(ctx).First(&member, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("member with email %s not found", email)
		}
		return nil, fmt.Errorf("failed to get member by email %s: %w", email, err)
	}
	return &member, nil
}

// ExistsByEmail reports whether a member already uses the email.
func (r *GORMMemberRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Member{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check member email %s: %w", email, err)
	}
	return count > 0, nil
}
