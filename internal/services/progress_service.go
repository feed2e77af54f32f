package services

import (
	"context"

	"github.com/google/uuid"

	dbm "fundhub/internal/models/db_models"
	"fundhub/internal/models/response_models"
	"fundhub/internal/repositories"
	"fundhub/pkg/utils"
)

// ProgressServiceInterface is the read-side projection over completed
// donations. Figures are recomputed on every call; donation completion is
// asynchronous, so there is nothing safe to cache.
type ProgressServiceInterface interface {
	ProgressFor(ctx context.Context, f *dbm.Fundraiser) (*response_models.ProgressResponse, error)
	ProgressForMany(ctx context.Context, fundraisers []dbm.Fundraiser) (map[uuid.UUID]response_models.ProgressResponse, error)
}

type ProgressService struct {
	donationRepo repositories.DonationRepository
}

func NewProgressService(donationRepo repositories.DonationRepository) ProgressServiceInterface {
	return &ProgressService{donationRepo: donationRepo}
}

func (s *ProgressService) ProgressFor(ctx context.Context, f *dbm.Fundraiser) (*response_models.ProgressResponse, error) {
	many, err := s.ProgressForMany(ctx, []dbm.Fundraiser{*f})
	if err != nil {
		return nil, err
	}
	p := many[f.ID]
	return &p, nil
}

func (s *ProgressService) ProgressForMany(ctx context.Context, fundraisers []dbm.Fundraiser) (map[uuid.UUID]response_models.ProgressResponse, error) {
	ids := make([]uuid.UUID, 0, len(fundraisers))
	goals := make(map[uuid.UUID]float64, len(fundraisers))
	for _, f := range fundraisers {
		ids = append(ids, f.ID)
		goals[f.ID] = f.GoalAmount
	}

	rows, err := s.donationRepo.AggregateCompleted(ctx, ids)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	result := make(map[uuid.UUID]response_models.ProgressResponse, len(fundraisers))
	for _, id := range ids {
		result[id] = response_models.ProgressResponse{}
	}
	for _, row := range rows {
		result[row.FundraiserID] = response_models.ProgressResponse{
			TotalRaised:        row.TotalRaised,
			DonationCount:      row.DonationCount,
			ProgressPercentage: percentage(row.TotalRaised, goals[row.FundraiserID]),
		}
	}
	return result, nil
}

// percentage clamps to [0, 100] and treats a non-positive goal as 0%.
func percentage(raised, goal float64) float64 {
	if goal <= 0 {
		return 0
	}
	pct := raised / goal * 100
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}
