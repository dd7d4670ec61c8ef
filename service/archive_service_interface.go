package service

import (
	"context"

	"course-promo/models"
)

// ArchiveServiceInterface defines the contract for storing submitted posters
type ArchiveServiceInterface interface {
	// UploadPoster stores a PNG under name and returns the stored file ID
	UploadPoster(ctx context.Context, name string, data []byte) (string, error)
	// ListPosters returns archived posters, newest first
	ListPosters(ctx context.Context) ([]models.ArchivedPoster, error)
}
