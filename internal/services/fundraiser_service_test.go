package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dbm "fundhub/internal/models/db_models"
	"fundhub/internal/models/request_models"
	"fundhub/pkg/utils"
)

func TestCreateFundraiser(t *testing.T) {
	ctx := context.Background()

	t.Run("starts as a private draft", func(t *testing.T) {
		f := newFixture()
		owner := f.seedUser("owner")
		group := f.seedGroup(owner, false)

		resp, err := f.fundraiserSvc.Create(ctx, group.ID, owner.ID, request_models.CreateFundraiserRequest{
			Title: "Winter Shelter", Category: "community", GoalAmount: 5000,
		})
		require.NoError(t, err)
		assert.Equal(t, string(dbm.FundraiserStatusDraft), resp.Status)
		assert.False(t, resp.IsPublic)
		assert.Equal(t, "usd", resp.Currency)
		assert.Equal(t, "winter-shelter", resp.Slug)
	})

	t.Run("viewer cannot create", func(t *testing.T) {
		f := newFixture()
		owner := f.seedUser("owner")
		viewer := f.seedUser("viewer")
		group := f.seedGroup(owner, false)
		f.seedMember(group, viewer, dbm.RoleViewer)

		_, err := f.fundraiserSvc.Create(ctx, group.ID, viewer.ID, request_models.CreateFundraiserRequest{
			Title: "Winter Shelter", Category: "community", GoalAmount: 5000,
		})
		assert.ErrorIs(t, err, utils.ErrPermissionDenied)
	})

	t.Run("invalid category is rejected", func(t *testing.T) {
		f := newFixture()
		owner := f.seedUser("owner")
		group := f.seedGroup(owner, false)

		_, err := f.fundraiserSvc.Create(ctx, group.ID, owner.ID, request_models.CreateFundraiserRequest{
			Title: "Winter Shelter", Category: "crypto", GoalAmount: 5000,
		})
		assert.ErrorIs(t, err, utils.ErrValidation)
	})

	t.Run("slug collision retries with a suffix", func(t *testing.T) {
		f := newFixture()
		owner := f.seedUser("owner")
		group := f.seedGroup(owner, false)

		req := request_models.CreateFundraiserRequest{
			Title: "Winter Shelter", Category: "community", GoalAmount: 5000,
		}
		first, err := f.fundraiserSvc.Create(ctx, group.ID, owner.ID, req)
		require.NoError(t, err)
		second, err := f.fundraiserSvc.Create(ctx, group.ID, owner.ID, req)
		require.NoError(t, err)
		assert.NotEqual(t, first.Slug, second.Slug)
		assert.True(t, strings.HasPrefix(second.Slug, "winter-shelter-"))
	})
}

func TestUpdateFundraiserGoal(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := f.seedUser("owner")
	group := f.seedGroup(owner, false)
	fundraiser := f.seedFundraiser(group, 1000)

	m := &dbm.Milestone{FundraiserID: fundraiser.ID, StepNumber: 1, Amount: 800, Title: "Supplies"}
	require.NoError(t, f.milestones.Create(ctx, m))

	// A goal below the milestone sum is rejected on fundraiser update.
	lowGoal := 500.0
	_, err := f.fundraiserSvc.Update(ctx, fundraiser.ID, owner.ID, request_models.UpdateFundraiserRequest{GoalAmount: &lowGoal})
	assert.ErrorIs(t, err, utils.ErrValidation)

	okGoal := 900.0
	resp, err := f.fundraiserSvc.Update(ctx, fundraiser.ID, owner.ID, request_models.UpdateFundraiserRequest{GoalAmount: &okGoal})
	require.NoError(t, err)
	assert.Equal(t, 900.0, resp.GoalAmount)
}

func TestSetPublished(t *testing.T) {
	ctx := context.Background()

	t.Run("publish requires a connected account", func(t *testing.T) {
		f := newFixture()
		owner := f.seedUser("owner")
		group := f.seedGroup(owner, false)
		fundraiser := f.seedFundraiser(group, 1000)

		_, err := f.fundraiserSvc.SetPublished(ctx, fundraiser.ID, owner.ID, true)
		assert.ErrorIs(t, err, utils.ErrPreconditionFailed)
	})

	t.Run("publish succeeds when connected", func(t *testing.T) {
		f := newFixture()
		owner := f.seedUser("owner")
		group := f.seedGroup(owner, true)
		fundraiser := f.seedFundraiser(group, 1000)

		resp, err := f.fundraiserSvc.SetPublished(ctx, fundraiser.ID, owner.ID, true)
		require.NoError(t, err)
		assert.Equal(t, string(dbm.FundraiserStatusPublished), resp.Status)
	})

	t.Run("unpublish is blocked by donations", func(t *testing.T) {
		f := newFixture()
		owner := f.seedUser("owner")
		group := f.seedGroup(owner, true)
		fundraiser := f.seedFundraiser(group, 1000)
		fundraiser.Status = dbm.FundraiserStatusPublished
		require.NoError(t, f.fundraisers.Save(ctx, fundraiser))

		require.NoError(t, f.donations.Create(ctx, &dbm.Donation{
			FundraiserID: fundraiser.ID, Amount: 25, Currency: "usd", Status: dbm.DonationStatusPending,
		}))

		_, err := f.fundraiserSvc.SetPublished(ctx, fundraiser.ID, owner.ID, false)
		assert.ErrorIs(t, err, utils.ErrPreconditionFailed)
	})

	t.Run("unpublish succeeds with only failed donations", func(t *testing.T) {
		f := newFixture()
		owner := f.seedUser("owner")
		group := f.seedGroup(owner, true)
		fundraiser := f.seedFundraiser(group, 1000)
		fundraiser.Status = dbm.FundraiserStatusPublished
		require.NoError(t, f.fundraisers.Save(ctx, fundraiser))

		require.NoError(t, f.donations.Create(ctx, &dbm.Donation{
			FundraiserID: fundraiser.ID, Amount: 25, Currency: "usd", Status: dbm.DonationStatusFailed,
		}))

		resp, err := f.fundraiserSvc.SetPublished(ctx, fundraiser.ID, owner.ID, false)
		require.NoError(t, err)
		assert.Equal(t, string(dbm.FundraiserStatusDraft), resp.Status)
	})
}

func TestDeleteFundraiser(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := f.seedUser("owner")
	group := f.seedGroup(owner, true)
	fundraiser := f.seedFundraiser(group, 1000)

	require.NoError(t, f.donations.Create(ctx, &dbm.Donation{
		FundraiserID: fundraiser.ID, Amount: 25, Currency: "usd", Status: dbm.DonationStatusCompleted,
	}))

	err := f.fundraiserSvc.Delete(ctx, fundraiser.ID, owner.ID)
	assert.ErrorIs(t, err, utils.ErrPreconditionFailed)
}

func TestGetPublicBySlug(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := f.seedUser("owner")
	group := f.seedGroup(owner, true)
	fundraiser := f.seedFundraiser(group, 200)

	// A draft is invisible on the public path.
	_, err := f.fundraiserSvc.GetPublicBySlug(ctx, fundraiser.Slug)
	assert.ErrorIs(t, err, utils.ErrNotFound)

	fundraiser.Status = dbm.FundraiserStatusPublished
	fundraiser.IsPublic = true
	require.NoError(t, f.fundraisers.Save(ctx, fundraiser))

	require.NoError(t, f.donations.Create(ctx, &dbm.Donation{
		FundraiserID: fundraiser.ID, Amount: 50, Currency: "usd", Status: dbm.DonationStatusCompleted,
	}))

	resp, err := f.fundraiserSvc.GetPublicBySlug(ctx, fundraiser.Slug)
	require.NoError(t, err)
	require.NotNil(t, resp.Progress)
	assert.Equal(t, 50.0, resp.Progress.TotalRaised)
	assert.Equal(t, int64(1), resp.Progress.DonationCount)
	assert.Equal(t, 25.0, resp.Progress.ProgressPercentage)
}

func TestCreateLink(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := f.seedUser("owner")
	group := f.seedGroup(owner, true)
	fundraiser := f.seedFundraiser(group, 1000)

	_, err := f.fundraiserSvc.CreateLink(ctx, fundraiser.ID, owner.ID, request_models.CreateLinkRequest{Alias: "spring-drive"})
	require.NoError(t, err)

	_, err = f.fundraiserSvc.CreateLink(ctx, fundraiser.ID, owner.ID, request_models.CreateLinkRequest{Alias: "spring-drive"})
	assert.ErrorIs(t, err, utils.ErrConflict)
}

func TestGallery(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := f.seedUser("owner")
	group := f.seedGroup(owner, true)
	fundraiser := f.seedFundraiser(group, 1000)
	other := f.seedFundraiser(group, 500)

	item, err := f.fundraiserSvc.AddGalleryItem(ctx, fundraiser.ID, owner.ID, request_models.AddGalleryItemRequest{
		PublicID: "img_1", Position: 0,
	})
	require.NoError(t, err)

	itemID := uuidMustParse(t, item.ID)

	// Removing through the wrong fundraiser is a mismatch, not absence.
	err = f.fundraiserSvc.RemoveGalleryItem(ctx, other.ID, itemID, owner.ID)
	assert.ErrorIs(t, err, utils.ErrConflict)

	err = f.fundraiserSvc.RemoveGalleryItem(ctx, fundraiser.ID, itemID, owner.ID)
	assert.NoError(t, err)
}
