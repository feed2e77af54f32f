package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbm "fundhub/internal/models/db_models"
)

type UploadRepository interface {
	Create(ctx context.Context, upload *dbm.Upload) error
	FindByID(ctx context.Context, id uuid.UUID) (*dbm.Upload, error)
	FindByPublicID(ctx context.Context, publicID string) (*dbm.Upload, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type uploadRepository struct {
	db *gorm.DB
}

func NewUploadRepository(db *gorm.DB) UploadRepository {
	return &uploadRepository{db: db}
}

func (r *uploadRepository) Create(ctx context.Context, upload *dbm.Upload) error {
	return r.db.WithContext(ctx).Create(upload).Error
}

func (r *uploadRepository) FindByID(ctx context.Context, id uuid.UUID) (*dbm.Upload, error) {
	var upload dbm.Upload
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&upload).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &upload, nil
}

func (r *uploadRepository) FindByPublicID(ctx context.Context, publicID string) (*dbm.Upload, error) {
	var upload dbm.Upload
	err := r.db.WithContext(ctx).Where("public_id = ?", publicID).First(&upload).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &upload, nil
}

func (r *uploadRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Unscoped().Delete(&dbm.Upload{}, "id = ?", id).Error
}
