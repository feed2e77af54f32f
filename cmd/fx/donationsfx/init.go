package donationsfx

import (
	"os"
	"strconv"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"fundhub/internal/api/controllers"
	"fundhub/internal/repositories"
	"fundhub/internal/services"
)

const defaultFeePercent = 5

var Module = fx.Provide(
	provideDonationRepo,
	provideProgressService,
	provideDonationService,
	controllers.NewDonationsController,
)

func provideDonationRepo(db *gorm.DB) repositories.DonationRepository {
	return repositories.NewDonationRepository(db)
}

func provideProgressService(donationRepo repositories.DonationRepository) services.ProgressServiceInterface {
	return services.NewProgressService(donationRepo)
}

func provideDonationService(
	fundraiserRepo repositories.FundraiserRepository,
	groupRepo repositories.GroupRepository,
	donationRepo repositories.DonationRepository,
	gateway services.PaymentGateway,
	authority services.GroupAuthority,
) services.DonationServiceInterface {
	return services.NewDonationService(fundraiserRepo, groupRepo, donationRepo, gateway, authority, feePercent())
}

func feePercent() float64 {
	if raw := os.Getenv("PLATFORM_FEE_PERCENT"); raw != "" {
		if pct, err := strconv.ParseFloat(raw, 64); err == nil && pct >= 0 {
			return pct
		}
	}
	return defaultFeePercent
}
