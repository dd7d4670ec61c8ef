package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/goccy/go-json"

	"course-promo/db"
	"course-promo/models"
)

const createSubmissionsTable = `
	CREATE TABLE IF NOT EXISTS course_interest_submissions (
		id              UUID PRIMARY KEY,
		student_name    TEXT NOT NULL,
		student_contact TEXT NOT NULL,
		course_ids      JSONB NOT NULL,
		total_price     INTEGER NOT NULL,
		drive_file_id   TEXT,
		submitted_at    TIMESTAMPTZ NOT NULL,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`

// SubmissionRepository stores submitted leads in Postgres
type SubmissionRepository struct {
	conn *sql.DB
}

// NewSubmissionRepository creates a SubmissionRepository on the shared db.DB connection
func NewSubmissionRepository() *SubmissionRepository {
	return &SubmissionRepository{conn: db.DB}
}

// Ensure SubmissionRepository implements SubmissionRepositoryInterface
var _ SubmissionRepositoryInterface = (*SubmissionRepository)(nil)

// EnsureSchema creates the submissions table when missing
func (r *SubmissionRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.conn.ExecContext(ctx, createSubmissionsTable); err != nil {
		return fmt.Errorf("failed to create submissions table: %w", err)
	}
	return nil
}

// Create inserts a submission and returns it with its creation time
func (r *SubmissionRepository) Create(ctx context.Context, record *models.SubmissionRecord) (*models.SubmissionRecord, error) {
	log.Printf("📝 CreateSubmission: id=%s, courses=%v, total=%d", record.ID, record.CourseIDs, record.TotalPrice)

	courseIDs, err := json.Marshal(record.CourseIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode course ids: %w", err)
	}

	query := `
		INSERT INTO course_interest_submissions (id, student_name, student_contact, course_ids, total_price, drive_file_id, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	saved := *record
	err = r.conn.QueryRowContext(ctx, query,
		record.ID,
		record.StudentName,
		record.StudentContact,
		string(courseIDs),
		record.TotalPrice,
		sql.NullString{String: record.DriveFileID, Valid: record.DriveFileID != ""},
		record.SubmittedAt,
	).Scan(&saved.CreatedAt)
	if err != nil {
		log.Printf("❌ CreateSubmission: Error inserting submission: %v", err)
		return nil, fmt.Errorf("failed to insert submission: %w", err)
	}

	log.Printf("✅ CreateSubmission: Successfully stored submission id=%s", saved.ID)
	return &saved, nil
}

// ListRecent returns the newest submissions first
func (r *SubmissionRepository) ListRecent(ctx context.Context, limit int) ([]models.SubmissionRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}

	query := `
		SELECT id, student_name, student_contact, course_ids, total_price, COALESCE(drive_file_id, ''), submitted_at, created_at
		FROM course_interest_submissions
		ORDER BY submitted_at DESC
		LIMIT $1
	`

	rows, err := r.conn.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer rows.Close()

	records := []models.SubmissionRecord{}
	for rows.Next() {
		var rec models.SubmissionRecord
		var courseIDs []byte
		if err := rows.Scan(
			&rec.ID,
			&rec.StudentName,
			&rec.StudentContact,
			&courseIDs,
			&rec.TotalPrice,
			&rec.DriveFileID,
			&rec.SubmittedAt,
			&rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		if err := json.Unmarshal(courseIDs, &rec.CourseIDs); err != nil {
			return nil, fmt.Errorf("failed to decode course ids of %s: %w", rec.ID, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate submissions: %w", err)
	}

	return records, nil
}
