package admin

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrAdminNotFound = errors.New("admin not found")

type Repository interface {
	Create(ctx context.Context, admin *AdminUser) error
	Update(ctx context.Context, admin *AdminUser) error
	GetByID(ctx context.Context, id uuid.UUID) (*AdminUser, error)
	GetByUsername(ctx context.Context, username string) (*AdminUser, error)
}

type adminRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &adminRepository{db: db}
}

func (r *adminRepository) Create(ctx context.Context, admin *AdminUser) error {
	return r.db.WithContext(ctx).Create(admin).Error
}

func (r *adminRepository) Update(ctx context.Context, admin *AdminUser) error {
	return r.db.WithContext(ctx).Save(admin).Error
}

func (r *adminRepository) GetByID(ctx context.Context, id uuid.UUID) (*AdminUser, error) {
	var admin AdminUser
	if err := r.db.WithContext(ctx).First(&admin, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) GetByUsername(ctx context.Context, username string) (*AdminUser, error) {
	var admin AdminUser
	if err := r.db.WithContext(ctx).First(&admin, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return &admin, nil
}
