package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"course-promo/models"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// DriveArchiveService archives submitted posters into a Google Drive folder
type DriveArchiveService struct {
	client   *drive.Service
	folderID string
}

// Ensure DriveArchiveService implements ArchiveServiceInterface
var _ ArchiveServiceInterface = (*DriveArchiveService)(nil)

// NewDriveArchiveService creates a new DriveArchiveService instance
// credentialsPath should be the path to the Service Account JSON file
func NewDriveArchiveService(ctx context.Context, credentialsPath, folderID string) (*DriveArchiveService, error) {
	driveService, err := drive.NewService(ctx, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &DriveArchiveService{
		client:   driveService,
		folderID: folderID,
	}, nil
}

// UploadPoster uploads a PNG into the archive folder
func (ds *DriveArchiveService) UploadPoster(ctx context.Context, name string, data []byte) (string, error) {
	file := &drive.File{
		Name:     name,
		MimeType: PosterContentType,
		Parents:  []string{ds.folderID},
	}

	created, err := ds.client.Files.Create(file).
		Media(bytes.NewReader(data)).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to upload poster %s: %w", name, err)
	}

	log.Printf("✓ Archived poster %s as Drive file %s", name, created.Id)
	return created.Id, nil
}

// ListPosters lists every PNG in the archive folder
func (ds *DriveArchiveService) ListPosters(ctx context.Context) ([]models.ArchivedPoster, error) {
	query := fmt.Sprintf("'%s' in parents and trashed=false and mimeType='%s'", ds.folderID, PosterContentType)

	var allFiles []*drive.File
	pageToken := ""
	for {
		call := ds.client.Files.List().
			Q(query).
			OrderBy("createdTime desc").
			Fields("nextPageToken, files(id, name, size, createdTime)").
			Context(ctx)

		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		r, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list files: %w", err)
		}

		allFiles = append(allFiles, r.Files...)
		pageToken = r.NextPageToken

		if pageToken == "" {
			break
		}
	}

	posters := make([]models.ArchivedPoster, 0, len(allFiles))
	for _, file := range allFiles {
		createdAt, err := time.Parse(time.RFC3339, file.CreatedTime)
		if err != nil {
			log.Printf("⚠️  Skipping %s: unparseable createdTime %q", file.Name, file.CreatedTime)
			continue
		}
		posters = append(posters, models.ArchivedPoster{
			FileID:    file.Id,
			Name:      file.Name,
			Size:      file.Size,
			CreatedAt: createdAt,
		})
	}

	log.Printf("📥 Listed %d archived posters", len(posters))
	return posters, nil
}

// ArchiveName is the Drive filename for a submission's poster
func ArchiveName(summary models.SubmissionSummary) string {
	return fmt.Sprintf("%s_%s.png", summary.SubmittedAt.UTC().Format("20060102-150405"), summary.ID)
}
