package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/enlivotechnologies/leads-tracker/internal/model"
)

// IdentityRepository is the login account store.
type IdentityRepository interface {
	Create(ctx context.Context, identity *model.Identity) error
	GetByEmail(ctx context.Context, email string) (*model.Identity, error)
	GetByID(ctx context.Context, userID string) (*model.Identity, error)
}

type identityRepo struct {
	db *gorm.DB
}

// NewIdentityRepo creates the GORM-backed IdentityRepository.
func NewIdentityRepo(db *gorm.DB) IdentityRepository {
	return &identityRepo{db: db}
}

func (r *identityRepo) Create(ctx context.Context, identity *model.Identity) error {
	return r.db.WithContext(ctx).Create(identity).Error
}

func (r *identityRepo) GetByEmail(ctx context.Context, email string) (*model.Identity, error) {
	var identity model.Identity
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&identity).Error
	if err != nil {
		return nil, err
	}
	return &identity, nil
}

func (r *identityRepo) GetByID(ctx context.Context, userID string) (*model.Identity, error) {
	var identity model.Identity
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&identity).Error
	if err != nil {
		return nil, err
	}
	return &identity, nil
}
