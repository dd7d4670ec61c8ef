package repository

import (
	"context"

	"course-promo/models"
)

// CatalogRepositoryInterface defines the contract for reading the course catalog
type CatalogRepositoryInterface interface {
	GetCatalog() models.Catalog
}

// SubmissionRepositoryInterface defines the contract for the lead log
type SubmissionRepositoryInterface interface {
	EnsureSchema(ctx context.Context) error
	Create(ctx context.Context, record *models.SubmissionRecord) (*models.SubmissionRecord, error)
	ListRecent(ctx context.Context, limit int) ([]models.SubmissionRecord, error)
}
