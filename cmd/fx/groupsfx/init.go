package groupsfx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"fundhub/internal/api/controllers"
	"fundhub/internal/repositories"
	"fundhub/internal/services"
)

var Module = fx.Provide(
	provideGroupRepo,
	provideMemberRepo,
	provideMemberService,
	provideAuthority,
	provideGroupService,
	controllers.NewGroupsController,
)

func provideGroupRepo(db *gorm.DB) repositories.GroupRepository {
	return repositories.NewGroupRepository(db)
}

func provideMemberRepo(db *gorm.DB) repositories.MemberRepository {
	return repositories.NewMemberRepository(db)
}

func provideMemberService(
	groupRepo repositories.GroupRepository,
	memberRepo repositories.MemberRepository,
	userRepo repositories.UserRepository,
	notifications services.NotificationServiceInterface,
) services.MemberServiceInterface {
	return services.NewMemberService(groupRepo, memberRepo, userRepo, notifications)
}

// The member service doubles as the narrow membership gate everyone else
// depends on.
func provideAuthority(members services.MemberServiceInterface) services.GroupAuthority {
	return members
}

func provideGroupService(
	groupRepo repositories.GroupRepository,
	authority services.GroupAuthority,
) services.GroupServiceInterface {
	return services.NewGroupService(groupRepo, authority)
}
