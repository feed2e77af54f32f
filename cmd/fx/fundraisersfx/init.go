package fundraisersfx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"fundhub/internal/api/controllers"
	"fundhub/internal/repositories"
	"fundhub/internal/services"
)

var Module = fx.Provide(
	provideFundraiserRepo,
	provideMilestoneRepo,
	provideFundraiserService,
	provideMilestoneService,
	controllers.NewFundraisersController,
	controllers.NewMilestonesController,
)

func provideFundraiserRepo(db *gorm.DB) repositories.FundraiserRepository {
	return repositories.NewFundraiserRepository(db)
}

func provideMilestoneRepo(db *gorm.DB) repositories.MilestoneRepository {
	return repositories.NewMilestoneRepository(db)
}

func provideFundraiserService(
	fundraiserRepo repositories.FundraiserRepository,
	milestoneRepo repositories.MilestoneRepository,
	authority services.GroupAuthority,
	uploads services.UploadServiceInterface,
	progress services.ProgressServiceInterface,
) services.FundraiserServiceInterface {
	return services.NewFundraiserService(fundraiserRepo, milestoneRepo, authority, uploads, progress)
}

func provideMilestoneService(
	fundraiserRepo repositories.FundraiserRepository,
	milestoneRepo repositories.MilestoneRepository,
	authority services.GroupAuthority,
	notifications services.NotificationServiceInterface,
) services.MilestoneServiceInterface {
	return services.NewMilestoneService(fundraiserRepo, milestoneRepo, authority, notifications)
}
