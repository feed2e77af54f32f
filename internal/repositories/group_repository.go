package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbm "fundhub/internal/models/db_models"
)

type GroupRepository interface {
	// CreateWithOwner inserts the group and its owner membership in one
	// transaction. Returns gorm.ErrDuplicatedKey on a slug collision so the
	// caller can retry with a new suffix.
	CreateWithOwner(ctx context.Context, group *dbm.Group, owner *dbm.GroupMember) error
	FindByID(ctx context.Context, id uuid.UUID) (*dbm.Group, error)
	FindBySlug(ctx context.Context, slug string) (*dbm.Group, error)
	Save(ctx context.Context, group *dbm.Group) error
}

type groupRepository struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) CreateWithOwner(ctx context.Context, group *dbm.Group, owner *dbm.GroupMember) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(group).Error; err != nil {
			return err
		}
		owner.GroupID = group.ID
		return tx.Create(owner).Error
	})
}

func (r *groupRepository) FindByID(ctx context.Context, id uuid.UUID) (*dbm.Group, error) {
	var group dbm.Group
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&group).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &group, nil
}

func (r *groupRepository) FindBySlug(ctx context.Context, slug string) (*dbm.Group, error) {
	var group dbm.Group
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&group).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &group, nil
}

func (r *groupRepository) Save(ctx context.Context, group *dbm.Group) error {
	return r.db.WithContext(ctx).Save(group).Error
}
