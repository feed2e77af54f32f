package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"fundhub/cmd/fx/dbfx"
	"fundhub/cmd/fx/donationsfx"
	"fundhub/cmd/fx/fundraisersfx"
	"fundhub/cmd/fx/groupsfx"
	"fundhub/cmd/fx/notificationsfx"
	"fundhub/cmd/fx/paymentsfx"
	"fundhub/cmd/fx/uploadsfx"
	"fundhub/cmd/fx/usersfx"
	"fundhub/internal/api/controllers"
	"fundhub/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	app := fx.New(
		dbfx.Module,
		usersfx.Module,
		groupsfx.Module,
		fundraisersfx.Module,
		donationsfx.Module,
		paymentsfx.Module,
		uploadsfx.Module,
		notificationsfx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Println("Starting HTTP server at ${PORT}")
				if err := engine.Run(":" + os.Getenv("PORT")); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	usersController *controllers.UsersController,
	groupsController *controllers.GroupsController,
	fundraisersController *controllers.FundraisersController,
	milestonesController *controllers.MilestonesController,
	donationsController *controllers.DonationsController,
	paymentsController *controllers.PaymentsController,
	uploadsController *controllers.UploadsController,
	notificationsController *controllers.NotificationsController,
) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware())

	RegisterRoutes(r,
		usersController,
		groupsController,
		fundraisersController,
		milestonesController,
		donationsController,
		paymentsController,
		uploadsController,
		notificationsController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	usersController *controllers.UsersController,
	groupsController *controllers.GroupsController,
	fundraisersController *controllers.FundraisersController,
	milestonesController *controllers.MilestonesController,
	donationsController *controllers.DonationsController,
	paymentsController *controllers.PaymentsController,
	uploadsController *controllers.UploadsController,
	notificationsController *controllers.NotificationsController) {

	auth := middleware.AuthMiddleware()

	authGroup := r.Group("/auth")
	authGroup.POST("/sync", auth, usersController.SyncHandler)

	users := r.Group("/users", auth)
	users.PUT("/me", usersController.UpdateProfileHandler)
	users.POST("/me/setup-complete", usersController.CompleteSetupHandler)

	groups := r.Group("/groups", auth)
	groups.POST("", groupsController.CreateGroupHandler)
	groups.GET("/by-slug/:slug", groupsController.GetGroupHandler)
	groups.PUT("/:id", groupsController.UpdateGroupHandler)
	groups.GET("/:id/members", groupsController.ListMembersHandler)
	groups.POST("/:id/members", groupsController.InviteMemberHandler)
	groups.POST("/:id/members/accept", groupsController.AcceptInviteHandler)
	groups.PUT("/:id/members/:memberId", groupsController.UpdateMemberRoleHandler)
	groups.DELETE("/:id/members/:memberId", groupsController.RemoveMemberHandler)
	groups.POST("/:id/fundraisers", fundraisersController.CreateFundraiserHandler)
	groups.GET("/:id/fundraisers", fundraisersController.ListGroupFundraisersHandler)

	// Public read paths take no auth; donation creation accepts guests.
	fundraisers := r.Group("/fundraisers")
	fundraisers.GET("", fundraisersController.ListPublicHandler)
	fundraisers.GET("/by-slug/:slug", fundraisersController.GetPublicHandler)
	fundraisers.GET("/:id/milestones", milestonesController.ListMilestonesHandler)
	fundraisers.GET("/:id/donations", donationsController.ListDonationsHandler)

	fundraisers.PUT("/:id", auth, fundraisersController.UpdateFundraiserHandler)
	fundraisers.POST("/:id/publish", auth, fundraisersController.PublishHandler)
	fundraisers.DELETE("/:id", auth, fundraisersController.DeleteFundraiserHandler)
	fundraisers.POST("/:id/links", auth, fundraisersController.CreateLinkHandler)
	fundraisers.POST("/:id/gallery", auth, fundraisersController.AddGalleryItemHandler)
	fundraisers.DELETE("/:id/gallery/:itemId", auth, fundraisersController.RemoveGalleryItemHandler)
	fundraisers.POST("/:id/milestones", auth, milestonesController.CreateMilestoneHandler)
	fundraisers.PUT("/:id/milestones/:milestoneId", auth, milestonesController.UpdateMilestoneHandler)
	fundraisers.DELETE("/:id/milestones/:milestoneId", auth, milestonesController.DeleteMilestoneHandler)
	fundraisers.POST("/:id/milestones/:milestoneId/achieve", auth, milestonesController.AchieveMilestoneHandler)

	donations := r.Group("/donations")
	donations.POST("", donationsController.CreateDonationHandler)

	payments := r.Group("/payments")
	payments.POST("/connect", auth, paymentsController.ConnectAccountHandler)
	payments.POST("/webhook", paymentsController.WebhookHandler)

	uploads := r.Group("/uploads", auth)
	uploads.POST("", uploadsController.RegisterUploadHandler)
	uploads.DELETE("/:id", uploadsController.DeleteUploadHandler)

	notifications := r.Group("/notifications", auth)
	notifications.GET("", notificationsController.ListNotificationsHandler)
	notifications.POST("/:id/read", notificationsController.MarkReadHandler)
}
