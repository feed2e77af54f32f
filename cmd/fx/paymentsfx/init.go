package paymentsfx

import (
	"os"

	"go.uber.org/fx"

	"fundhub/internal/api/controllers"
	"fundhub/internal/repositories"
	"fundhub/internal/services"
)

var Module = fx.Provide(
	provideGateway,
	providePaymentService,
	controllers.NewPaymentsController,
)

func provideGateway() services.PaymentGateway {
	return services.NewStripeGateway(services.StripeConfig{
		SecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		WebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		AppBaseURL:    os.Getenv("APP_BASE_URL"),
	})
}

func providePaymentService(
	groupRepo repositories.GroupRepository,
	donationRepo repositories.DonationRepository,
	fundraiserRepo repositories.FundraiserRepository,
	gateway services.PaymentGateway,
	authority services.GroupAuthority,
	notifications services.NotificationServiceInterface,
) services.PaymentServiceInterface {
	return services.NewPaymentService(groupRepo, donationRepo, fundraiserRepo, gateway, authority, notifications)
}
