package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbm "fundhub/internal/models/db_models"
)

type FundraiserRepository interface {
	// Create returns gorm.ErrDuplicatedKey on a slug collision so the
	// caller can retry with a new suffix.
	Create(ctx context.Context, f *dbm.Fundraiser) error
	FindByID(ctx context.Context, id uuid.UUID) (*dbm.Fundraiser, error)
	FindBySlug(ctx context.Context, slug string) (*dbm.Fundraiser, error)
	Save(ctx context.Context, f *dbm.Fundraiser) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByGroup(ctx context.Context, groupID uuid.UUID) ([]dbm.Fundraiser, error)
	ListPublished(ctx context.Context, category string, page, pageSize int) ([]dbm.Fundraiser, error)

	// CountBlockingDonations counts pending/completed donations, the ones
	// that block unpublish and delete.
	CountBlockingDonations(ctx context.Context, fundraiserID uuid.UUID) (int64, error)

	CreateLink(ctx context.Context, link *dbm.FundraiserLink) error
	FindLinkByAlias(ctx context.Context, alias string) (*dbm.FundraiserLink, error)

	AddGalleryItem(ctx context.Context, item *dbm.GalleryItem) error
	FindGalleryItem(ctx context.Context, itemID uuid.UUID) (*dbm.GalleryItem, error)
	DeleteGalleryItem(ctx context.Context, itemID uuid.UUID) error
	ListGallery(ctx context.Context, fundraiserID uuid.UUID) ([]dbm.GalleryItem, error)
}

type fundraiserRepository struct {
	db *gorm.DB
}

func NewFundraiserRepository(db *gorm.DB) FundraiserRepository {
	return &fundraiserRepository{db: db}
}

func (r *fundraiserRepository) Create(ctx context.Context, f *dbm.Fundraiser) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *fundraiserRepository) FindByID(ctx context.Context, id uuid.UUID) (*dbm.Fundraiser, error) {
	var f dbm.Fundraiser
	err := r.db.WithContext(ctx).Preload("Cover").Where("id = ?", id).First(&f).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &f, nil
}

func (r *fundraiserRepository) FindBySlug(ctx context.Context, slug string) (*dbm.Fundraiser, error) {
	var f dbm.Fundraiser
	err := r.db.WithContext(ctx).Preload("Cover").Where("slug = ?", slug).First(&f).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &f, nil
}

func (r *fundraiserRepository) Save(ctx context.Context, f *dbm.Fundraiser) error {
	return r.db.WithContext(ctx).Save(f).Error
}

func (r *fundraiserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&dbm.Fundraiser{}, "id = ?", id).Error
}

func (r *fundraiserRepository) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]dbm.Fundraiser, error) {
	var list []dbm.Fundraiser
	err := r.db.WithContext(ctx).
		Preload("Cover").
		Where("group_id = ?", groupID).
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *fundraiserRepository) ListPublished(ctx context.Context, category string, page, pageSize int) ([]dbm.Fundraiser, error) {
	query := r.db.WithContext(ctx).
		Preload("Cover").
		Where("status = ? AND is_public = TRUE", dbm.FundraiserStatusPublished)

	if category != "" {
		query = query.Where("category = ?", category)
	}

	var list []dbm.Fundraiser
	err := query.Scopes(func(db *gorm.DB) *gorm.DB {
		offset := (page - 1) * pageSize
		return db.Offset(offset).Limit(pageSize)
	}).Order("created_at DESC").Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *fundraiserRepository) CountBlockingDonations(ctx context.Context, fundraiserID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&dbm.Donation{}).
		Where("fundraiser_id = ? AND status IN ?", fundraiserID,
			[]dbm.DonationStatus{dbm.DonationStatusPending, dbm.DonationStatusCompleted}).
		Count(&count).Error
	return count, err
}

func (r *fundraiserRepository) CreateLink(ctx context.Context, link *dbm.FundraiserLink) error {
	return r.db.WithContext(ctx).Create(link).Error
}

func (r *fundraiserRepository) FindLinkByAlias(ctx context.Context, alias string) (*dbm.FundraiserLink, error) {
	var link dbm.FundraiserLink
	err := r.db.WithContext(ctx).Where("alias = ?", alias).First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &link, nil
}

func (r *fundraiserRepository) AddGalleryItem(ctx context.Context, item *dbm.GalleryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *fundraiserRepository) FindGalleryItem(ctx context.Context, itemID uuid.UUID) (*dbm.GalleryItem, error) {
	var item dbm.GalleryItem
	err := r.db.WithContext(ctx).Where("id = ?", itemID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *fundraiserRepository) DeleteGalleryItem(ctx context.Context, itemID uuid.UUID) error {
	return r.db.WithContext(ctx).Unscoped().Delete(&dbm.GalleryItem{}, "id = ?", itemID).Error
}

func (r *fundraiserRepository) ListGallery(ctx context.Context, fundraiserID uuid.UUID) ([]dbm.GalleryItem, error) {
	var items []dbm.GalleryItem
	err := r.db.WithContext(ctx).
		Preload("Upload").
		Where("fundraiser_id = ?", fundraiserID).
		Order("position ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
