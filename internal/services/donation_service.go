package services

import (
	"context"
	"log"
	"math"

	"github.com/google/uuid"

	dbm "fundhub/internal/models/db_models"
	"fundhub/internal/models/request_models"
	"fundhub/internal/models/response_models"
	"fundhub/internal/repositories"
	"fundhub/pkg/utils"
)

type DonationServiceInterface interface {
	// CreateDonation runs the intent orchestration: resolve fundraiser and
	// connected group, insert the pending row, then call the processor.
	// The donor may be nil for guest donations.
	CreateDonation(ctx context.Context, donor *dbm.User, req request_models.CreateDonationRequest) (*response_models.CreateDonationResponse, error)
	ListForFundraiser(ctx context.Context, fundraiserID uuid.UUID, caller *dbm.User) ([]response_models.DonationResponse, error)
}

type DonationService struct {
	fundraiserRepo repositories.FundraiserRepository
	groupRepo      repositories.GroupRepository
	donationRepo   repositories.DonationRepository
	gateway        PaymentGateway
	authority      GroupAuthority
	feePercent     float64
}

func NewDonationService(
	fundraiserRepo repositories.FundraiserRepository,
	groupRepo repositories.GroupRepository,
	donationRepo repositories.DonationRepository,
	gateway PaymentGateway,
	authority GroupAuthority,
	feePercent float64,
) DonationServiceInterface {
	return &DonationService{
		fundraiserRepo: fundraiserRepo,
		groupRepo:      groupRepo,
		donationRepo:   donationRepo,
		gateway:        gateway,
		authority:      authority,
		feePercent:     feePercent,
	}
}

func (s *DonationService) CreateDonation(ctx context.Context, donor *dbm.User, req request_models.CreateDonationRequest) (*response_models.CreateDonationResponse, error) {
	fundraiserID, err := uuid.Parse(req.FundraiserID)
	if err != nil {
		return nil, utils.Validationf("invalid fundraiser_id")
	}

	f, err := s.fundraiserRepo.FindByID(ctx, fundraiserID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if f == nil || f.Status != dbm.FundraiserStatusPublished {
		return nil, utils.NotFoundf("fundraiser not found")
	}

	group, err := s.groupRepo.FindByID(ctx, f.GroupID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if group == nil {
		return nil, utils.NotFoundf("fundraiser not found")
	}
	if group.StripeAccountID == nil {
		return nil, utils.PreconditionFailedf("this group cannot accept donations yet")
	}

	// A dangling alias is ignored, not an error.
	var linkID *uuid.UUID
	if req.LinkAlias != "" {
		link, linkErr := s.fundraiserRepo.FindLinkByAlias(ctx, req.LinkAlias)
		if linkErr != nil {
			return nil, utils.ErrDatabaseError
		}
		if link != nil && link.FundraiserID == f.ID {
			linkID = &link.ID
		}
	}

	currency := req.Currency
	if currency == "" {
		currency = f.Currency
	}

	donation := &dbm.Donation{
		FundraiserID: f.ID,
		LinkID:       linkID,
		Amount:       req.Amount,
		Currency:     currency,
		Message:      req.Message,
		DisplayName:  req.DisplayName,
		IsAnonymous:  req.IsAnonymous,
		Status:       dbm.DonationStatusPending,
	}
	if donor != nil {
		donation.DonorID = &donor.ID
	}

	if err := s.donationRepo.Create(ctx, donation); err != nil {
		return nil, utils.ErrDatabaseError
	}

	amountMinor := toMinorUnits(req.Amount)
	intent, err := s.gateway.CreatePaymentIntent(ctx, IntentParams{
		AmountMinor:        amountMinor,
		Currency:           currency,
		DestinationAccount: *group.StripeAccountID,
		FeeMinor:           platformFee(amountMinor, s.feePercent),
		DonationID:         donation.ID.String(),
	})
	if err != nil {
		// The pending row stays behind with no intent reference; the
		// reconciliation sweep expires such orphans later.
		log.Printf("payment intent failed for donation %s: %v", donation.ID, err)
		return nil, utils.Upstreamf("payment processor rejected the request")
	}

	if err := s.donationRepo.SetIntentID(ctx, donation.ID, intent.IntentID); err != nil {
		// Same orphan class: intent exists upstream but the local row
		// never learned its reference.
		log.Printf("failed to record intent %s on donation %s: %v", intent.IntentID, donation.ID, err)
		return nil, utils.ErrDatabaseError
	}

	return &response_models.CreateDonationResponse{
		DonationID:   donation.ID.String(),
		ClientSecret: intent.ClientSecret,
		Amount:       req.Amount,
		Currency:     currency,
	}, nil
}

func (s *DonationService) ListForFundraiser(ctx context.Context, fundraiserID uuid.UUID, caller *dbm.User) ([]response_models.DonationResponse, error) {
	f, err := s.fundraiserRepo.FindByID(ctx, fundraiserID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if f == nil {
		return nil, utils.NotFoundf("fundraiser not found")
	}

	// Members see every donation; the public sees completed ones only.
	isMember := false
	if caller != nil {
		if _, _, err := s.authority.RequireMember(ctx, f.GroupID, caller.ID); err == nil {
			isMember = true
		}
	}

	donations, err := s.donationRepo.ListByFundraiser(ctx, fundraiserID, !isMember)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	responses := make([]response_models.DonationResponse, 0, len(donations))
	for _, d := range donations {
		resp := response_models.DonationResponse{
			ID:        d.ID.String(),
			Amount:    d.Amount,
			Currency:  d.Currency,
			Status:    string(d.Status),
			CreatedAt: d.CreatedAt,
		}
		if !d.IsAnonymous {
			resp.DisplayName = d.DisplayName
			resp.Message = d.Message
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

// toMinorUnits scales a major-unit amount to the processor's minor units.
func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// platformFee is a percentage of the minor-unit amount, rounded down.
func platformFee(amountMinor int64, percent float64) int64 {
	return int64(math.Floor(float64(amountMinor) * percent / 100))
}
