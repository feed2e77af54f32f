package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	dbm "fundhub/internal/models/db_models"
	"fundhub/internal/models/request_models"
	"fundhub/internal/models/response_models"
	"fundhub/internal/repositories"
	"fundhub/pkg/utils"
)

type UserServiceInterface interface {
	// SyncUser maps a verified principal to the local user record,
	// creating it on first sight.
	SyncUser(ctx context.Context, externalID, email string) (*dbm.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req request_models.UpdateProfileRequest) (*response_models.UserResponse, error)
	CompleteSetup(ctx context.Context, userID uuid.UUID) (*response_models.UserResponse, error)
}

type UserService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserServiceInterface {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) SyncUser(ctx context.Context, externalID, email string) (*dbm.User, error) {
	user, err := s.userRepo.FindByExternalID(ctx, externalID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user != nil {
		return user, nil
	}

	user = &dbm.User{
		ExternalID:  externalID,
		Email:       strings.ToLower(email),
		DisplayName: email,
		AccountType: dbm.AccountTypeIndividual,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req request_models.UpdateProfileRequest) (*response_models.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.NotFoundf("user not found")
	}

	if req.DisplayName != nil {
		user.DisplayName = *req.DisplayName
	}
	if req.AccountType != nil {
		user.AccountType = dbm.AccountType(*req.AccountType)
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp := toUserResponse(user)
	return &resp, nil
}

func (s *UserService) CompleteSetup(ctx context.Context, userID uuid.UUID) (*response_models.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.NotFoundf("user not found")
	}

	user.SetupComplete = true
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp := toUserResponse(user)
	return &resp, nil
}

func toUserResponse(u *dbm.User) response_models.UserResponse {
	return response_models.UserResponse{
		ID:            u.ID.String(),
		Email:         u.Email,
		DisplayName:   u.DisplayName,
		AccountType:   string(u.AccountType),
		SetupComplete: u.SetupComplete,
	}
}
