package uploadsfx

import (
	"os"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"fundhub/internal/api/controllers"
	"fundhub/internal/repositories"
	"fundhub/internal/services"
)

var Module = fx.Provide(
	provideUploadRepo,
	provideAssetGateway,
	provideUploadService,
	controllers.NewUploadsController,
)

func provideUploadRepo(db *gorm.DB) repositories.UploadRepository {
	return repositories.NewUploadRepository(db)
}

func provideAssetGateway() services.AssetGateway {
	return services.NewCloudinaryGateway(services.CloudinaryConfig{
		CloudName: os.Getenv("ASSET_CLOUD_NAME"),
		APIKey:    os.Getenv("ASSET_API_KEY"),
		APISecret: os.Getenv("ASSET_API_SECRET"),
	})
}

func provideUploadService(
	uploadRepo repositories.UploadRepository,
	assets services.AssetGateway,
) services.UploadServiceInterface {
	return services.NewUploadService(uploadRepo, assets)
}
