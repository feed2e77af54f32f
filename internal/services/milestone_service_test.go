package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dbm "fundhub/internal/models/db_models"
	"fundhub/internal/models/request_models"
	"fundhub/pkg/utils"
)

func TestMilestoneAutoRaisesGoal(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := f.seedUser("owner")
	group := f.seedGroup(owner, true)
	fundraiser := f.seedFundraiser(group, 1000)

	_, err := f.milestoneSvc.Create(ctx, fundraiser.ID, owner.ID, request_models.CreateMilestoneRequest{
		StepNumber: 1, Amount: 600, Title: "Tents",
	})
	require.NoError(t, err)

	// Goal stays put while the milestone sum fits under it.
	current, err := f.fundraisers.FindByID(ctx, fundraiser.ID)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, current.GoalAmount)

	// The second milestone pushes the sum to 1200, so the goal follows.
	_, err = f.milestoneSvc.Create(ctx, fundraiser.ID, owner.ID, request_models.CreateMilestoneRequest{
		StepNumber: 2, Amount: 600, Title: "Blankets",
	})
	require.NoError(t, err)

	current, err = f.fundraisers.FindByID(ctx, fundraiser.ID)
	require.NoError(t, err)
	assert.Equal(t, 1200.0, current.GoalAmount)
}

func TestMilestoneGoalRaiseIsAtomic(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := f.seedUser("owner")
	group := f.seedGroup(owner, true)
	fundraiser := f.seedFundraiser(group, 1000)

	// A failed combined write must leave neither the milestone nor a
	// half-raised goal behind.
	f.milestones.txErr = assert.AnError
	_, err := f.milestoneSvc.Create(ctx, fundraiser.ID, owner.ID, request_models.CreateMilestoneRequest{
		StepNumber: 1, Amount: 1500, Title: "Tents",
	})
	assert.ErrorIs(t, err, utils.ErrDatabaseError)

	list, err := f.milestones.ListByFundraiser(ctx, fundraiser.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	current, err := f.fundraisers.FindByID(ctx, fundraiser.ID)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, current.GoalAmount)

	// With the store healthy again the same create commits both rows.
	f.milestones.txErr = nil
	_, err = f.milestoneSvc.Create(ctx, fundraiser.ID, owner.ID, request_models.CreateMilestoneRequest{
		StepNumber: 1, Amount: 1500, Title: "Tents",
	})
	require.NoError(t, err)

	current, err = f.fundraisers.FindByID(ctx, fundraiser.ID)
	require.NoError(t, err)
	assert.Equal(t, 1500.0, current.GoalAmount)
}

func TestMilestoneUpdateAutoRaisesGoal(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := f.seedUser("owner")
	group := f.seedGroup(owner, true)
	fundraiser := f.seedFundraiser(group, 1000)

	resp, err := f.milestoneSvc.Create(ctx, fundraiser.ID, owner.ID, request_models.CreateMilestoneRequest{
		StepNumber: 1, Amount: 400, Title: "Tents",
	})
	require.NoError(t, err)

	bigger := 1500.0
	_, err = f.milestoneSvc.Update(ctx, fundraiser.ID, uuidMustParse(t, resp.ID), owner.ID, request_models.UpdateMilestoneRequest{
		Amount: &bigger,
	})
	require.NoError(t, err)

	current, err := f.fundraisers.FindByID(ctx, fundraiser.ID)
	require.NoError(t, err)
	assert.Equal(t, 1500.0, current.GoalAmount)
}

func TestAchievedMilestoneIsImmutable(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := f.seedUser("owner")
	group := f.seedGroup(owner, true)
	fundraiser := f.seedFundraiser(group, 1000)

	created, err := f.milestoneSvc.Create(ctx, fundraiser.ID, owner.ID, request_models.CreateMilestoneRequest{
		StepNumber: 1, Amount: 400, Title: "Tents",
	})
	require.NoError(t, err)
	milestoneID := uuidMustParse(t, created.ID)

	achieved, err := f.milestoneSvc.Achieve(ctx, fundraiser.ID, milestoneID, owner.ID)
	require.NoError(t, err)
	assert.True(t, achieved.Achieved)
	assert.NotZero(t, achieved.AchievedAt)
	assert.Contains(t, f.notified.sent, dbm.NotificationMilestoneAchieved)

	// Achieving twice, updating or deleting all fail the same way.
	_, err = f.milestoneSvc.Achieve(ctx, fundraiser.ID, milestoneID, owner.ID)
	assert.ErrorIs(t, err, utils.ErrPreconditionFailed)

	amount := 500.0
	_, err = f.milestoneSvc.Update(ctx, fundraiser.ID, milestoneID, owner.ID, request_models.UpdateMilestoneRequest{Amount: &amount})
	assert.ErrorIs(t, err, utils.ErrPreconditionFailed)

	err = f.milestoneSvc.Delete(ctx, fundraiser.ID, milestoneID, owner.ID)
	assert.ErrorIs(t, err, utils.ErrPreconditionFailed)
}

func TestMilestoneParentMismatch(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := f.seedUser("owner")
	group := f.seedGroup(owner, true)
	fundraiser := f.seedFundraiser(group, 1000)
	other := f.seedFundraiser(group, 500)

	created, err := f.milestoneSvc.Create(ctx, fundraiser.ID, owner.ID, request_models.CreateMilestoneRequest{
		StepNumber: 1, Amount: 400, Title: "Tents",
	})
	require.NoError(t, err)
	milestoneID := uuidMustParse(t, created.ID)

	amount := 500.0
	_, err = f.milestoneSvc.Update(ctx, other.ID, milestoneID, owner.ID, request_models.UpdateMilestoneRequest{Amount: &amount})
	assert.ErrorIs(t, err, utils.ErrConflict)

	_, err = f.milestoneSvc.Update(ctx, fundraiser.ID, uuid.New(), owner.ID, request_models.UpdateMilestoneRequest{Amount: &amount})
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestMilestoneViewerDenied(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	owner := f.seedUser("owner")
	viewer := f.seedUser("viewer")
	group := f.seedGroup(owner, true)
	f.seedMember(group, viewer, dbm.RoleViewer)
	fundraiser := f.seedFundraiser(group, 1000)

	_, err := f.milestoneSvc.Create(ctx, fundraiser.ID, viewer.ID, request_models.CreateMilestoneRequest{
		StepNumber: 1, Amount: 400, Title: "Tents",
	})
	assert.ErrorIs(t, err, utils.ErrPermissionDenied)
}
