package service

import (
	"context"

	"course-promo/form"
	"course-promo/models"
)

// SubmissionServiceInterface defines the contract for the submission pipeline
type SubmissionServiceInterface interface {
	Submit(ctx context.Context, state form.State) Outcome
	Download(ctx context.Context, state form.State) (DownloadResult, Outcome)
	RecentSubmissions(ctx context.Context, limit int) ([]models.SubmissionRecord, error)
	ArchivedPosters(ctx context.Context) ([]models.ArchivedPoster, error)
}

// Ensure SubmissionService implements SubmissionServiceInterface
var _ SubmissionServiceInterface = (*SubmissionService)(nil)
