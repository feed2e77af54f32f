package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbm "fundhub/internal/models/db_models"
)

type MilestoneRepository interface {
	// CreateWithGoal inserts the milestone and, when raised is non-nil,
	// saves the fundraiser's adjusted goal in the same transaction, so the
	// goal can never lag behind the milestone sum.
	CreateWithGoal(ctx context.Context, m *dbm.Milestone, raised *dbm.Fundraiser) error
	// SaveWithGoal is the update-side counterpart of CreateWithGoal.
	SaveWithGoal(ctx context.Context, m *dbm.Milestone, raised *dbm.Fundraiser) error
	FindByID(ctx context.Context, id uuid.UUID) (*dbm.Milestone, error)
	ListByFundraiser(ctx context.Context, fundraiserID uuid.UUID) ([]dbm.Milestone, error)
	SumAmounts(ctx context.Context, fundraiserID uuid.UUID) (float64, error)
	Save(ctx context.Context, m *dbm.Milestone) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type milestoneRepository struct {
	db *gorm.DB
}

func NewMilestoneRepository(db *gorm.DB) MilestoneRepository {
	return &milestoneRepository{db: db}
}

func (r *milestoneRepository) CreateWithGoal(ctx context.Context, m *dbm.Milestone, raised *dbm.Fundraiser) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		if raised != nil {
			return tx.Save(raised).Error
		}
		return nil
	})
}

func (r *milestoneRepository) SaveWithGoal(ctx context.Context, m *dbm.Milestone, raised *dbm.Fundraiser) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(m).Error; err != nil {
			return err
		}
		if raised != nil {
			return tx.Save(raised).Error
		}
		return nil
	})
}

func (r *milestoneRepository) FindByID(ctx context.Context, id uuid.UUID) (*dbm.Milestone, error) {
	var m dbm.Milestone
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *milestoneRepository) ListByFundraiser(ctx context.Context, fundraiserID uuid.UUID) ([]dbm.Milestone, error) {
	var list []dbm.Milestone
	err := r.db.WithContext(ctx).
		Where("fundraiser_id = ?", fundraiserID).
		Order("step_number ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *milestoneRepository) SumAmounts(ctx context.Context, fundraiserID uuid.UUID) (float64, error) {
	var sum float64
	err := r.db.WithContext(ctx).
		Model(&dbm.Milestone{}).
		Where("fundraiser_id = ?", fundraiserID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	return sum, err
}

func (r *milestoneRepository) Save(ctx context.Context, m *dbm.Milestone) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *milestoneRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Unscoped().Delete(&dbm.Milestone{}, "id = ?", id).Error
}
