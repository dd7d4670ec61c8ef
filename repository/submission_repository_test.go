package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"course-promo/db"
	"course-promo/models"
)

// Runs against a real Postgres; set DATABASE_URL to enable
func TestSubmissionRepository_RoundTrip(t *testing.T) {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		t.Skip("DATABASE_URL not set")
	}

	ctx := context.Background()
	require.NoError(t, db.InitDB(ctx, databaseURL))
	t.Cleanup(func() { db.CloseDB() })

	repo := NewSubmissionRepository()
	require.NoError(t, repo.EnsureSchema(ctx))
	// Idempotent
	require.NoError(t, repo.EnsureSchema(ctx))

	submittedAt := time.Now().UTC().Truncate(time.Microsecond)
	record := &models.SubmissionRecord{
		ID:             uuid.NewString(),
		StudentName:    "สมชาย ใจดี",
		StudentContact: "081-234-5678",
		CourseIDs:      []string{"Python", "C", "CSharp"},
		TotalPrice:     2377,
		SubmittedAt:    submittedAt,
	}
	t.Cleanup(func() {
		db.DB.ExecContext(context.Background(), `DELETE FROM course_interest_submissions WHERE id = $1`, record.ID)
	})

	saved, err := repo.Create(ctx, record)
	require.NoError(t, err)
	assert.Equal(t, record.ID, saved.ID)
	assert.False(t, saved.CreatedAt.IsZero())

	records, err := repo.ListRecent(ctx, 200)
	require.NoError(t, err)

	var found *models.SubmissionRecord
	for i := range records {
		if records[i].ID == record.ID {
			found = &records[i]
			break
		}
	}
	require.NotNil(t, found, "created submission not listed")

	assert.Equal(t, []string{"Python", "C", "CSharp"}, found.CourseIDs)
	assert.Equal(t, "สมชาย ใจดี", found.StudentName)
	assert.Equal(t, "081-234-5678", found.StudentContact)
	assert.Equal(t, 2377, found.TotalPrice)
	assert.Empty(t, found.DriveFileID)
	assert.True(t, submittedAt.Equal(found.SubmittedAt))
}
