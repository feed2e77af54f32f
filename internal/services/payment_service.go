package services

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v81"

	dbm "fundhub/internal/models/db_models"
	"fundhub/internal/models/response_models"
	"fundhub/internal/repositories"
	"fundhub/pkg/utils"
)

type PaymentServiceInterface interface {
	// ConnectAccount creates (or reuses) the group's connected account and
	// returns a fresh onboarding URL.
	ConnectAccount(ctx context.Context, groupID uuid.UUID, caller *dbm.User) (*response_models.ConnectAccountResponse, error)
	HandleWebhook(c *gin.Context)
}

type PaymentService struct {
	groupRepo      repositories.GroupRepository
	donationRepo   repositories.DonationRepository
	fundraiserRepo repositories.FundraiserRepository
	gateway        PaymentGateway
	authority      GroupAuthority
	notifications  NotificationServiceInterface
}

func NewPaymentService(
	groupRepo repositories.GroupRepository,
	donationRepo repositories.DonationRepository,
	fundraiserRepo repositories.FundraiserRepository,
	gateway PaymentGateway,
	authority GroupAuthority,
	notifications NotificationServiceInterface,
) PaymentServiceInterface {
	return &PaymentService{
		groupRepo:      groupRepo,
		donationRepo:   donationRepo,
		fundraiserRepo: fundraiserRepo,
		gateway:        gateway,
		authority:      authority,
		notifications:  notifications,
	}
}

func (s *PaymentService) ConnectAccount(ctx context.Context, groupID uuid.UUID, caller *dbm.User) (*response_models.ConnectAccountResponse, error) {
	group, member, err := s.authority.RequireMember(ctx, groupID, caller.ID)
	if err != nil {
		return nil, err
	}
	if !member.Role.CanManageMembers() {
		return nil, utils.PermissionDeniedf("only owners and admins can manage payments")
	}

	accountID := ""
	if group.StripeAccountID != nil {
		accountID = *group.StripeAccountID
	} else {
		accountID, err = s.gateway.CreateConnectedAccount(ctx, caller.Email)
		if err != nil {
			return nil, utils.Upstreamf("could not create connected account")
		}
		group.StripeAccountID = &accountID
		if err := s.groupRepo.Save(ctx, group); err != nil {
			return nil, utils.ErrDatabaseError
		}
	}

	url, err := s.gateway.OnboardingLink(ctx, accountID)
	if err != nil {
		return nil, utils.Upstreamf("could not create onboarding link")
	}

	return &response_models.ConnectAccountResponse{
		AccountID:     accountID,
		OnboardingURL: url,
	}, nil
}

// HandleWebhook reconciles donation status from processor events. Updates
// are keyed by intent id and only move rows out of pending, so redelivered
// events are no-ops.
func (s *PaymentService) HandleWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		log.Printf("webhook: failed to read body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	event, err := s.gateway.VerifyWebhook(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		log.Printf("webhook: signature verification failed: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
		return
	}

	switch event.Type {
	case stripe.EventTypePaymentIntentSucceeded:
		s.settleIntent(c, event, dbm.DonationStatusCompleted)
	case stripe.EventTypePaymentIntentPaymentFailed:
		s.settleIntent(c, event, dbm.DonationStatusFailed)
	default:
		// Ack everything else so the processor stops retrying.
		c.JSON(http.StatusOK, gin.H{"received": true})
	}
}

func (s *PaymentService) settleIntent(c *gin.Context, event *stripe.Event, status dbm.DonationStatus) {
	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		log.Printf("webhook: failed to parse payment intent: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event payload"})
		return
	}

	ctx := c.Request.Context()
	donation, err := s.donationRepo.FindByIntentID(ctx, pi.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process event"})
		return
	}
	if donation == nil {
		// Ack to avoid a retry storm; logged for investigation.
		log.Printf("webhook: no donation for intent %s", pi.ID)
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	updated, err := s.donationRepo.SetStatusIfPending(ctx, donation.ID, status, event.Data.Raw)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process event"})
		return
	}

	if updated && status == dbm.DonationStatusCompleted {
		s.notifyGroupOwner(ctx, donation)
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

func (s *PaymentService) notifyGroupOwner(ctx context.Context, donation *dbm.Donation) {
	f, err := s.fundraiserRepo.FindByID(ctx, donation.FundraiserID)
	if err != nil || f == nil {
		return
	}
	group, err := s.groupRepo.FindByID(ctx, f.GroupID)
	if err != nil || group == nil {
		return
	}
	s.notifications.Notify(ctx, group.OwnerID, dbm.NotificationDonationCompleted,
		"New donation received on "+f.Title,
		map[string]any{"fundraiser_id": f.ID, "donation_id": donation.ID, "amount": donation.Amount})
}
