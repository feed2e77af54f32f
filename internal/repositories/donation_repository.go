package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbm "fundhub/internal/models/db_models"
)

// ProgressRow is the per-fundraiser aggregate over completed donations.
type ProgressRow struct {
	FundraiserID  uuid.UUID
	TotalRaised   float64
	DonationCount int64
}

type DonationRepository interface {
	Create(ctx context.Context, d *dbm.Donation) error
	FindByID(ctx context.Context, id uuid.UUID) (*dbm.Donation, error)
	FindByIntentID(ctx context.Context, intentID string) (*dbm.Donation, error)
	SetIntentID(ctx context.Context, donationID uuid.UUID, intentID string) error
	// SetStatusIfPending is the idempotent webhook update: it only moves a
	// donation out of pending, so redelivered events are no-ops.
	SetStatusIfPending(ctx context.Context, donationID uuid.UUID, status dbm.DonationStatus, receipt []byte) (bool, error)
	SetStatus(ctx context.Context, donationID uuid.UUID, status dbm.DonationStatus) error
	ListByFundraiser(ctx context.Context, fundraiserID uuid.UUID, completedOnly bool) ([]dbm.Donation, error)
	AggregateCompleted(ctx context.Context, fundraiserIDs []uuid.UUID) ([]ProgressRow, error)
}

type donationRepository struct {
	db *gorm.DB
}

func NewDonationRepository(db *gorm.DB) DonationRepository {
	return &donationRepository{db: db}
}

func (r *donationRepository) Create(ctx context.Context, d *dbm.Donation) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *donationRepository) FindByID(ctx context.Context, id uuid.UUID) (*dbm.Donation, error) {
	var d dbm.Donation
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&d).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (r *donationRepository) FindByIntentID(ctx context.Context, intentID string) (*dbm.Donation, error) {
	var d dbm.Donation
	err := r.db.WithContext(ctx).Where("stripe_intent_id = ?", intentID).First(&d).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (r *donationRepository) SetIntentID(ctx context.Context, donationID uuid.UUID, intentID string) error {
	return r.db.WithContext(ctx).
		Model(&dbm.Donation{}).
		Where("id = ?", donationID).
		Update("stripe_intent_id", intentID).Error
}

func (r *donationRepository) SetStatusIfPending(ctx context.Context, donationID uuid.UUID, status dbm.DonationStatus, receipt []byte) (bool, error) {
	updates := map[string]interface{}{"status": status}
	if receipt != nil {
		updates["receipt"] = receipt
	}
	res := r.db.WithContext(ctx).
		Model(&dbm.Donation{}).
		Where("id = ? AND status = ?", donationID, dbm.DonationStatusPending).
		Updates(updates)
	return res.RowsAffected > 0, res.Error
}

func (r *donationRepository) SetStatus(ctx context.Context, donationID uuid.UUID, status dbm.DonationStatus) error {
	return r.db.WithContext(ctx).
		Model(&dbm.Donation{}).
		Where("id = ?", donationID).
		Update("status", status).Error
}

func (r *donationRepository) ListByFundraiser(ctx context.Context, fundraiserID uuid.UUID, completedOnly bool) ([]dbm.Donation, error) {
	query := r.db.WithContext(ctx).Where("fundraiser_id = ?", fundraiserID)
	if completedOnly {
		query = query.Where("status = ?", dbm.DonationStatusCompleted)
	}

	var list []dbm.Donation
	err := query.Order("created_at DESC").Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *donationRepository) AggregateCompleted(ctx context.Context, fundraiserIDs []uuid.UUID) ([]ProgressRow, error) {
	if len(fundraiserIDs) == 0 {
		return nil, nil
	}

	var rows []ProgressRow
	err := r.db.WithContext(ctx).
		Model(&dbm.Donation{}).
		Select("fundraiser_id, COALESCE(SUM(amount), 0) AS total_raised, COUNT(*) AS donation_count").
		Where("fundraiser_id IN ? AND status = ?", fundraiserIDs, dbm.DonationStatusCompleted).
		Group("fundraiser_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
