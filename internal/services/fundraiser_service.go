package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbm "fundhub/internal/models/db_models"
	"fundhub/internal/models/request_models"
	"fundhub/internal/models/response_models"
	"fundhub/internal/repositories"
	"fundhub/pkg/utils"
)

type FundraiserServiceInterface interface {
	Create(ctx context.Context, groupID, callerID uuid.UUID, req request_models.CreateFundraiserRequest) (*response_models.FundraiserResponse, error)
	Update(ctx context.Context, fundraiserID, callerID uuid.UUID, req request_models.UpdateFundraiserRequest) (*response_models.FundraiserResponse, error)
	SetPublished(ctx context.Context, fundraiserID, callerID uuid.UUID, published bool) (*response_models.FundraiserResponse, error)
	Delete(ctx context.Context, fundraiserID, callerID uuid.UUID) error

	GetPublicBySlug(ctx context.Context, slug string) (*response_models.FundraiserResponse, error)
	ListPublic(ctx context.Context, category string, page, pageSize int) ([]response_models.FundraiserResponse, error)
	ListByGroup(ctx context.Context, groupID, callerID uuid.UUID) ([]response_models.FundraiserResponse, error)

	CreateLink(ctx context.Context, fundraiserID, callerID uuid.UUID, req request_models.CreateLinkRequest) (*response_models.LinkResponse, error)
	AddGalleryItem(ctx context.Context, fundraiserID, callerID uuid.UUID, req request_models.AddGalleryItemRequest) (*response_models.GalleryItemResponse, error)
	RemoveGalleryItem(ctx context.Context, fundraiserID, itemID, callerID uuid.UUID) error
}

type FundraiserService struct {
	fundraiserRepo repositories.FundraiserRepository
	milestoneRepo  repositories.MilestoneRepository
	authority      GroupAuthority
	uploads        UploadServiceInterface
	progress       ProgressServiceInterface
}

func NewFundraiserService(
	fundraiserRepo repositories.FundraiserRepository,
	milestoneRepo repositories.MilestoneRepository,
	authority GroupAuthority,
	uploads UploadServiceInterface,
	progress ProgressServiceInterface,
) FundraiserServiceInterface {
	return &FundraiserService{
		fundraiserRepo: fundraiserRepo,
		milestoneRepo:  milestoneRepo,
		authority:      authority,
		uploads:        uploads,
		progress:       progress,
	}
}

// requireEditor loads the fundraiser and checks the caller can mutate it.
func (s *FundraiserService) requireEditor(ctx context.Context, fundraiserID, callerID uuid.UUID) (*dbm.Fundraiser, *dbm.Group, error) {
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
		return nil, nil, utils.PermissionDeniedf("viewers cannot modify fundraisers")
	}
	return f, group, nil
}

func (s *FundraiserService) Create(ctx context.Context, groupID, callerID uuid.UUID, req request_models.CreateFundraiserRequest) (*response_models.FundraiserResponse, error) {
	_, member, err := s.authority.RequireMember(ctx, groupID, callerID)
	if err != nil {
		return nil, err
	}
	if !member.Role.CanEditFundraisers() {
		return nil, utils.PermissionDeniedf("viewers cannot create fundraisers")
	}

	category := dbm.FundraiserCategory(req.Category)
	if !category.Valid() {
		return nil, utils.Validationf("invalid category %q", req.Category)
	}

	currency := req.Currency
	if currency == "" {
		currency = "usd"
	}

	f := &dbm.Fundraiser{
		GroupID:     groupID,
		Title:       req.Title,
		Summary:     req.Summary,
		Description: req.Description,
		Category:    category,
		GoalAmount:  req.GoalAmount,
		Currency:    currency,
		Status:      dbm.FundraiserStatusDraft,
		IsPublic:    false,
	}

	if req.EndDate != nil {
		endDate, parseErr := time.Parse(time.RFC3339, *req.EndDate)
		if parseErr != nil {
			return nil, utils.Validationf("end_date must be RFC3339")
		}
		f.EndDate = &endDate
	}

	if req.CoverPublicID != "" {
		upload, upErr := s.uploads.Register(ctx, req.CoverPublicID, callerID)
		if upErr != nil {
			return nil, upErr
		}
		f.CoverID = &upload.ID
	}

	base := utils.Slugify(req.Title)
	slug := base
	for attempt := 0; attempt < slugAttempts; attempt++ {
		f.Slug = slug
		err = s.fundraiserRepo.Create(ctx, f)
		if err == nil {
			resp := s.toResponse(f, nil)
			return &resp, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.ErrDatabaseError
		}
		f.ID = uuid.Nil
		slug = utils.SlugWithSuffix(base)
	}
	return nil, utils.Conflictf("could not allocate a unique slug for %q", req.Title)
}

func (s *FundraiserService) Update(ctx context.Context, fundraiserID, callerID uuid.UUID, req request_models.UpdateFundraiserRequest) (*response_models.FundraiserResponse, error) {
	f, _, err := s.requireEditor(ctx, fundraiserID, callerID)
	if err != nil {
		return nil, err
	}

	if req.GoalAmount != nil {
		milestoneSum, sumErr := s.milestoneRepo.SumAmounts(ctx, f.ID)
		if sumErr != nil {
			return nil, utils.ErrDatabaseError
		}
		if *req.GoalAmount < milestoneSum {
			return nil, utils.Validationf("goal amount cannot be less than total milestone amount")
		}
		f.GoalAmount = *req.GoalAmount
	}

	if req.Title != nil {
		f.Title = *req.Title
	}
	if req.Summary != nil {
		f.Summary = *req.Summary
	}
	if req.Description != nil {
		f.Description = *req.Description
	}
	if req.Category != nil {
		category := dbm.FundraiserCategory(*req.Category)
		if !category.Valid() {
			return nil, utils.Validationf("invalid category %q", *req.Category)
		}
		f.Category = category
	}
	if req.EndDate != nil {
		endDate, parseErr := time.Parse(time.RFC3339, *req.EndDate)
		if parseErr != nil {
			return nil, utils.Validationf("end_date must be RFC3339")
		}
		f.EndDate = &endDate
	}
	if req.IsPublic != nil {
		f.IsPublic = *req.IsPublic
	}

	// Cover replacement is idempotent: re-sending the current cover's
	// public id creates no new upload record.
	if req.CoverPublicID != nil {
		if f.Cover == nil || f.Cover.PublicID != *req.CoverPublicID {
			upload, upErr := s.uploads.Register(ctx, *req.CoverPublicID, callerID)
			if upErr != nil {
				return nil, upErr
			}
			f.CoverID = &upload.ID
			f.Cover = upload
		}
	}

	if err := s.fundraiserRepo.Save(ctx, f); err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp := s.toResponse(f, nil)
	return &resp, nil
}

func (s *FundraiserService) SetPublished(ctx context.Context, fundraiserID, callerID uuid.UUID, published bool) (*response_models.FundraiserResponse, error) {
	f, group, err := s.requireEditor(ctx, fundraiserID, callerID)
	if err != nil {
		return nil, err
	}

	if published {
		// Authorized but not payment-ready is a precondition failure,
		// not a permission error.
		if group.StripeAccountID == nil {
			return nil, utils.PreconditionFailedf("group has no connected payment account")
		}
		f.Status = dbm.FundraiserStatusPublished
	} else {
		blocking, cntErr := s.fundraiserRepo.CountBlockingDonations(ctx, f.ID)
		if cntErr != nil {
			return nil, utils.ErrDatabaseError
		}
		if blocking > 0 {
			return nil, utils.PreconditionFailedf("fundraiser has received donations and cannot be unpublished")
		}
		f.Status = dbm.FundraiserStatusDraft
	}

	if err := s.fundraiserRepo.Save(ctx, f); err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp := s.toResponse(f, nil)
	return &resp, nil
}

func (s *FundraiserService) Delete(ctx context.Context, fundraiserID, callerID uuid.UUID) error {
	f, _, err := s.requireEditor(ctx, fundraiserID, callerID)
	if err != nil {
		return err
	}

	blocking, err := s.fundraiserRepo.CountBlockingDonations(ctx, f.ID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if blocking > 0 {
		return utils.PreconditionFailedf("fundraiser has received donations and cannot be deleted")
	}

	if err := s.fundraiserRepo.Delete(ctx, f.ID); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *FundraiserService) GetPublicBySlug(ctx context.Context, slug string) (*response_models.FundraiserResponse, error) {
	f, err := s.fundraiserRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	// Unpublished campaigns are invisible on the public path.
	if f == nil || f.Status != dbm.FundraiserStatusPublished || !f.IsPublic {
		return nil, utils.NotFoundf("fundraiser not found")
	}

	progress, err := s.progress.ProgressFor(ctx, f)
	if err != nil {
		return nil, err
	}

	resp := s.toResponse(f, progress)
	return &resp, nil
}

func (s *FundraiserService) ListPublic(ctx context.Context, category string, page, pageSize int) ([]response_models.FundraiserResponse, error) {
	list, err := s.fundraiserRepo.ListPublished(ctx, category, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return s.withProgress(ctx, list)
}

func (s *FundraiserService) ListByGroup(ctx context.Context, groupID, callerID uuid.UUID) ([]response_models.FundraiserResponse, error) {
	if _, _, err := s.authority.RequireMember(ctx, groupID, callerID); err != nil {
		return nil, err
	}

	list, err := s.fundraiserRepo.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return s.withProgress(ctx, list)
}

func (s *FundraiserService) CreateLink(ctx context.Context, fundraiserID, callerID uuid.UUID, req request_models.CreateLinkRequest) (*response_models.LinkResponse, error) {
	f, _, err := s.requireEditor(ctx, fundraiserID, callerID)
	if err != nil {
		return nil, err
	}

	link := &dbm.FundraiserLink{
		FundraiserID: f.ID,
		Alias:        req.Alias,
		Label:        req.Label,
		CreatedByID:  callerID,
	}
	if err := s.fundraiserRepo.CreateLink(ctx, link); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.Conflictf("alias %q is already taken", req.Alias)
		}
		return nil, utils.ErrDatabaseError
	}

	return &response_models.LinkResponse{
		ID:    link.ID.String(),
		Alias: link.Alias,
		Label: link.Label,
	}, nil
}

func (s *FundraiserService) AddGalleryItem(ctx context.Context, fundraiserID, callerID uuid.UUID, req request_models.AddGalleryItemRequest) (*response_models.GalleryItemResponse, error) {
	f, _, err := s.requireEditor(ctx, fundraiserID, callerID)
	if err != nil {
		return nil, err
	}

	upload, err := s.uploads.Register(ctx, req.PublicID, callerID)
	if err != nil {
		return nil, err
	}

	item := &dbm.GalleryItem{
		FundraiserID: f.ID,
		UploadID:     upload.ID,
		Position:     req.Position,
	}
	if err := s.fundraiserRepo.AddGalleryItem(ctx, item); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return &response_models.GalleryItemResponse{
		ID:       item.ID.String(),
		URL:      upload.URL,
		Position: item.Position,
	}, nil
}

func (s *FundraiserService) RemoveGalleryItem(ctx context.Context, fundraiserID, itemID, callerID uuid.UUID) error {
	f, _, err := s.requireEditor(ctx, fundraiserID, callerID)
	if err != nil {
		return err
	}

	item, err := s.fundraiserRepo.FindGalleryItem(ctx, itemID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if item == nil {
		return utils.NotFoundf("gallery item not found")
	}
	if item.FundraiserID != f.ID {
		return utils.Conflictf("gallery item does not belong to this fundraiser")
	}

	if err := s.fundraiserRepo.DeleteGalleryItem(ctx, item.ID); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *FundraiserService) withProgress(ctx context.Context, list []dbm.Fundraiser) ([]response_models.FundraiserResponse, error) {
	progressByID, err := s.progress.ProgressForMany(ctx, list)
	if err != nil {
		return nil, err
	}

	responses := make([]response_models.FundraiserResponse, 0, len(list))
	for i := range list {
		p := progressByID[list[i].ID]
		responses = append(responses, s.toResponse(&list[i], &p))
	}
	return responses, nil
}

func (s *FundraiserService) toResponse(f *dbm.Fundraiser, progress *response_models.ProgressResponse) response_models.FundraiserResponse {
	resp := response_models.FundraiserResponse{
		ID:          f.ID.String(),
		GroupID:     f.GroupID.String(),
		Slug:        f.Slug,
		Title:       f.Title,
		Summary:     f.Summary,
		Description: f.Description,
		Category:    string(f.Category),
		GoalAmount:  f.GoalAmount,
		Currency:    f.Currency,
		Status:      string(f.Status),
		IsPublic:    f.IsPublic,
		Progress:    progress,
	}
	if f.EndDate != nil {
		resp.EndDate = f.EndDate.Format(time.RFC3339)
	}
	if f.Cover != nil {
		resp.CoverURL = f.Cover.URL
	}
	return resp
}
