package notificationsfx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"fundhub/internal/api/controllers"
	"fundhub/internal/repositories"
	"fundhub/internal/services"
)

var Module = fx.Provide(
	provideNotificationRepo,
	provideNotificationService,
	controllers.NewNotificationsController,
)

func provideNotificationRepo(db *gorm.DB) repositories.NotificationRepository {
	return repositories.NewNotificationRepository(db)
}

func provideNotificationService(notificationRepo repositories.NotificationRepository) services.NotificationServiceInterface {
	return services.NewNotificationService(notificationRepo)
}
