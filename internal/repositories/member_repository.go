package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbm "fundhub/internal/models/db_models"
)

type MemberRepository interface {
	FindByGroupAndUser(ctx context.Context, groupID, userID uuid.UUID) (*dbm.GroupMember, error)
	FindByID(ctx context.Context, memberID uuid.UUID) (*dbm.GroupMember, error)
	FindInviteByEmail(ctx context.Context, groupID uuid.UUID, email string) (*dbm.GroupMember, error)
	ListByGroup(ctx context.Context, groupID uuid.UUID) ([]dbm.GroupMember, error)
	Create(ctx context.Context, member *dbm.GroupMember) error
	Save(ctx context.Context, member *dbm.GroupMember) error
	Delete(ctx context.Context, memberID uuid.UUID) error
}

type memberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) FindByGroupAndUser(ctx context.Context, groupID, userID uuid.UUID) (*dbm.GroupMember, error) {
	var member dbm.GroupMember
	err := r.db.WithContext(ctx).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

func (r *memberRepository) FindByID(ctx context.Context, memberID uuid.UUID) (*dbm.GroupMember, error) {
	var member dbm.GroupMember
	err := r.db.WithContext(ctx).Where("id = ?", memberID).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

func (r *memberRepository) FindInviteByEmail(ctx context.Context, groupID uuid.UUID, email string) (*dbm.GroupMember, error) {
	var member dbm.GroupMember
	err := r.db.WithContext(ctx).
		Where("group_id = ? AND invite_email = ?", groupID, email).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

func (r *memberRepository) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]dbm.GroupMember, error) {
	var members []dbm.GroupMember
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("group_id = ?", groupID).
		Order("created_at ASC").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (r *memberRepository) Create(ctx context.Context, member *dbm.GroupMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *memberRepository) Save(ctx context.Context, member *dbm.GroupMember) error {
	return r.db.WithContext(ctx).Save(member).Error
}

func (r *memberRepository) Delete(ctx context.Context, memberID uuid.UUID) error {
	return r.db.WithContext(ctx).Unscoped().Delete(&dbm.GroupMember{}, "id = ?", memberID).Error
}
