package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	dbm "fundhub/internal/models/db_models"
	"fundhub/internal/models/request_models"
	"fundhub/internal/models/response_models"
	"fundhub/internal/repositories"
	"fundhub/pkg/utils"
)

type MilestoneServiceInterface interface {
	Create(ctx context.Context, fundraiserID, callerID uuid.UUID, req request_models.CreateMilestoneRequest) (*response_models.MilestoneResponse, error)
	Update(ctx context.Context, fundraiserID, milestoneID, callerID uuid.UUID, req request_models.UpdateMilestoneRequest) (*response_models.MilestoneResponse, error)
	Delete(ctx context.Context, fundraiserID, milestoneID, callerID uuid.UUID) error
	Achieve(ctx context.Context, fundraiserID, milestoneID, callerID uuid.UUID) (*response_models.MilestoneResponse, error)
	List(ctx context.Context, fundraiserID uuid.UUID) ([]response_models.MilestoneResponse, error)
}

type MilestoneService struct {
	fundraiserRepo repositories.FundraiserRepository
	milestoneRepo  repositories.MilestoneRepository
	authority      GroupAuthority
	notifications  NotificationServiceInterface
}

func NewMilestoneService(
	fundraiserRepo repositories.FundraiserRepository,
	milestoneRepo repositories.MilestoneRepository,
	authority GroupAuthority,
	notifications NotificationServiceInterface,
) MilestoneServiceInterface {
	return &MilestoneService{
		fundraiserRepo: fundraiserRepo,
		milestoneRepo:  milestoneRepo,
		authority:      authority,
		notifications:  notifications,
	}
}

func (s *MilestoneService) requireEditor(ctx context.Context, fundraiserID, callerID uuid.UUID) (*dbm.Fundraiser, *dbm.Group, error) {
	f, err := s.fundraiserRepo.FindByID(ctx, fundraiserID)
	if err != nil {
		return nil, nil, utils.ErrDatabaseError
	}
	if f == nil {
		return nil, nil, utils.NotFoundf("fundraiser not found")
	}

	group, member, err := s.authority.RequireMember(ctx, f.GroupID, callerID)
	if err != nil {
		return nil, nil, err
	}
	if !member.Role.CanEditFundraisers() {
		return nil, nil, utils.PermissionDeniedf("viewers cannot modify milestones")
	}
	return f, group, nil
}

// resolveMilestone loads the milestone and verifies it belongs to the
// fundraiser named in the path. A mismatch is reported as such rather than
// as absence.
func (s *MilestoneService) resolveMilestone(ctx context.Context, fundraiserID, milestoneID uuid.UUID) (*dbm.Milestone, error) {
	m, err := s.milestoneRepo.FindByID(ctx, milestoneID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if m == nil {
		return nil, utils.NotFoundf("milestone not found")
	}
	if m.FundraiserID != fundraiserID {
		return nil, utils.Conflictf("milestone does not belong to this fundraiser")
	}
	return m, nil
}

func (s *MilestoneService) Create(ctx context.Context, fundraiserID, callerID uuid.UUID, req request_models.CreateMilestoneRequest) (*response_models.MilestoneResponse, error) {
	f, _, err := s.requireEditor(ctx, fundraiserID, callerID)
	if err != nil {
		return nil, err
	}

	currentSum, err := s.milestoneRepo.SumAmounts(ctx, f.ID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	m := &dbm.Milestone{
		FundraiserID: f.ID,
		StepNumber:   req.StepNumber,
		Amount:       req.Amount,
		Title:        req.Title,
		Purpose:      req.Purpose,
	}

	// An addition that pushes the milestone sum above the goal raises the
	// goal to match instead of rejecting. Both rows commit together so the
	// sum can never exceed the stored goal.
	if err := s.milestoneRepo.CreateWithGoal(ctx, m, raisedGoal(f, currentSum+req.Amount)); err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp := toMilestoneResponse(m)
	return &resp, nil
}

func (s *MilestoneService) Update(ctx context.Context, fundraiserID, milestoneID, callerID uuid.UUID, req request_models.UpdateMilestoneRequest) (*response_models.MilestoneResponse, error) {
	f, _, err := s.requireEditor(ctx, fundraiserID, callerID)
	if err != nil {
		return nil, err
	}

	m, err := s.resolveMilestone(ctx, f.ID, milestoneID)
	if err != nil {
		return nil, err
	}
	if m.Achieved {
		return nil, utils.PreconditionFailedf("achieved milestones cannot be updated")
	}

	currentSum, err := s.milestoneRepo.SumAmounts(ctx, f.ID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	newSum := currentSum
	if req.Amount != nil {
		newSum = currentSum - m.Amount + *req.Amount
		m.Amount = *req.Amount
	}
	if req.StepNumber != nil {
		m.StepNumber = *req.StepNumber
	}
	if req.Title != nil {
		m.Title = *req.Title
	}
	if req.Purpose != nil {
		m.Purpose = *req.Purpose
	}

	if err := s.milestoneRepo.SaveWithGoal(ctx, m, raisedGoal(f, newSum)); err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp := toMilestoneResponse(m)
	return &resp, nil
}

func (s *MilestoneService) Delete(ctx context.Context, fundraiserID, milestoneID, callerID uuid.UUID) error {
	f, _, err := s.requireEditor(ctx, fundraiserID, callerID)
	if err != nil {
		return err
	}

	m, err := s.resolveMilestone(ctx, f.ID, milestoneID)
	if err != nil {
		return err
	}
	if m.Achieved {
		return utils.PreconditionFailedf("achieved milestones cannot be deleted")
	}

	if err := s.milestoneRepo.Delete(ctx, m.ID); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *MilestoneService) Achieve(ctx context.Context, fundraiserID, milestoneID, callerID uuid.UUID) (*response_models.MilestoneResponse, error) {
	f, group, err := s.requireEditor(ctx, fundraiserID, callerID)
	if err != nil {
		return nil, err
	}

	m, err := s.resolveMilestone(ctx, f.ID, milestoneID)
	if err != nil {
		return nil, err
	}
	if m.Achieved {
		return nil, utils.PreconditionFailedf("milestone is already achieved")
	}

	now := time.Now().Unix()
	m.Achieved = true
	m.AchievedAt = &now
	if err := s.milestoneRepo.Save(ctx, m); err != nil {
		return nil, utils.ErrDatabaseError
	}

	s.notifications.Notify(ctx, group.OwnerID, dbm.NotificationMilestoneAchieved,
		"Milestone \""+m.Title+"\" achieved on "+f.Title,
		map[string]any{"fundraiser_id": f.ID, "milestone_id": m.ID})

	resp := toMilestoneResponse(m)
	return &resp, nil
}

func (s *MilestoneService) List(ctx context.Context, fundraiserID uuid.UUID) ([]response_models.MilestoneResponse, error) {
	f, err := s.fundraiserRepo.FindByID(ctx, fundraiserID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if f == nil {
		return nil, utils.NotFoundf("fundraiser not found")
	}

	milestones, err := s.milestoneRepo.ListByFundraiser(ctx, fundraiserID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	responses := make([]response_models.MilestoneResponse, 0, len(milestones))
	for i := range milestones {
		responses = append(responses, toMilestoneResponse(&milestones[i]))
	}
	return responses, nil
}

// raisedGoal returns the fundraiser with its goal lifted to the milestone
// sum, or nil when the goal already covers it and no write is needed.
func raisedGoal(f *dbm.Fundraiser, milestoneSum float64) *dbm.Fundraiser {
	if milestoneSum <= f.GoalAmount {
		return nil
	}
	f.GoalAmount = milestoneSum
	return f
}

func toMilestoneResponse(m *dbm.Milestone) response_models.MilestoneResponse {
	resp := response_models.MilestoneResponse{
		ID:         m.ID.String(),
		StepNumber: m.StepNumber,
		Amount:     m.Amount,
		Title:      m.Title,
		Purpose:    m.Purpose,
		Achieved:   m.Achieved,
	}
	if m.AchievedAt != nil {
		resp.AchievedAt = *m.AchievedAt
	}
	return resp
}
