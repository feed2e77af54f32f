package services

import (
	"context"
	"encoding/json"
	"log"

	"github.com/google/uuid"

	dbm "fundhub/internal/models/db_models"
	"fundhub/internal/repositories"
	"fundhub/pkg/utils"
)

type UploadServiceInterface interface {
	// Register records a local Upload row for an asset already stored at
	// the asset service. Re-registering the same public id returns the
	// existing row.
	Register(ctx context.Context, publicID string, userID uuid.UUID) (*dbm.Upload, error)
	Delete(ctx context.Context, uploadID, callerID uuid.UUID) error
}

type UploadService struct {
	uploadRepo repositories.UploadRepository
	assets     AssetGateway
}

func NewUploadService(uploadRepo repositories.UploadRepository, assets AssetGateway) UploadServiceInterface {
	return &UploadService{
		uploadRepo: uploadRepo,
		assets:     assets,
	}
}

func (s *UploadService) Register(ctx context.Context, publicID string, userID uuid.UUID) (*dbm.Upload, error) {
	existing, err := s.uploadRepo.FindByPublicID(ctx, publicID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if existing != nil {
		return existing, nil
	}

	info, err := s.assets.Resource(ctx, publicID)
	if err != nil {
		log.Printf("asset lookup failed for %s: %v", publicID, err)
		return nil, utils.Upstreamf("could not resolve asset %s", publicID)
	}

	metadata, _ := json.Marshal(info)
	upload := &dbm.Upload{
		PublicID:   info.PublicID,
		URL:        info.URL,
		Format:     info.Format,
		Bytes:      info.Bytes,
		UploadedBy: userID,
		Metadata:   metadata,
	}
	if err := s.uploadRepo.Create(ctx, upload); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return upload, nil
}

func (s *UploadService) Delete(ctx context.Context, uploadID, callerID uuid.UUID) error {
	upload, err := s.uploadRepo.FindByID(ctx, uploadID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if upload == nil {
		return utils.NotFoundf("upload not found")
	}
	if upload.UploadedBy != callerID {
		return utils.PermissionDeniedf("you cannot delete another user's upload")
	}

	if err := s.assets.Destroy(ctx, upload.PublicID); err != nil {
		return utils.Upstreamf("could not delete asset %s", upload.PublicID)
	}
	return s.uploadRepo.Delete(ctx, uploadID)
}
