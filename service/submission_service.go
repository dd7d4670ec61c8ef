package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"course-promo/form"
	"course-promo/models"
	"course-promo/poster"
	"course-promo/repository"
	"course-promo/utils"
)

// DownloadFilename is the attachment name of a downloaded poster
const DownloadFilename = "course-promo.png"

// User-facing messages, shown verbatim in the page error banner
const (
	MsgMissingContact      = "กรุณากรอกชื่อและช่องทางติดต่อให้ครบถ้วน"
	MsgNoCourses           = "กรุณาเลือกคอร์สที่สนใจอย่างน้อย 1 คอร์ส"
	MsgPosterNotFound      = "Could not find poster element to capture."
	MsgWebhookUnconfigured = "Discord webhook URL is not configured."
	MsgSubmitFailed        = "ไม่สามารถส่งข้อมูลไปที่ Discord ได้ กรุณาลองอีกครั้ง"
	MsgCaptureFailed       = "ไม่สามารถสร้างรูปภาพได้ กรุณาลองใหม่อีกครั้ง"
	MsgDownloadNotFound    = "ไม่สามารถหาองค์ประกอบของโปสเตอร์ได้"
)

// Pipeline stage names reported in outcomes
const (
	StageValidate = "validate"
	StageCapture  = "capture"
	StageSubmit   = "submit"
	StageDone     = "done"
)

var (
	// ErrLeadLogDisabled is returned by admin queries when no database is configured
	ErrLeadLogDisabled = errors.New("submission log is not configured")
	// ErrArchiveDisabled is returned by admin queries when no archive is configured
	ErrArchiveDisabled = errors.New("poster archive is not configured")
)

// OutcomeKind classifies how a pipeline run ended
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeValidationError
	OutcomeCaptureError
	OutcomeSubmissionError
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeValidationError:
		return "validation_error"
	case OutcomeCaptureError:
		return "capture_error"
	case OutcomeSubmissionError:
		return "submission_error"
	}
	return "unknown"
}

// Outcome is the typed result of a pipeline run.
// Message is user-facing; Err keeps the underlying cause for logs.
type Outcome struct {
	Kind         OutcomeKind
	Stage        string
	Message      string
	SubmissionID string
	Err          error
}

// OK reports whether the run succeeded
func (o Outcome) OK() bool {
	return o.Kind == OutcomeSuccess
}

func failed(kind OutcomeKind, stage, message string, err error) Outcome {
	return Outcome{Kind: kind, Stage: stage, Message: message, Err: err}
}

// DownloadResult is a captured poster ready to be served as an attachment
type DownloadResult struct {
	Filename string
	Data     []byte
}

// SubmissionService runs the validate -> capture -> submit -> record pipeline.
// archive and submissions are optional and may be nil.
type SubmissionService struct {
	catalogRepo  repository.CatalogRepositoryInterface
	capture      CaptureServiceInterface
	webhook      WebhookServiceInterface
	archive      ArchiveServiceInterface
	submissions  repository.SubmissionRepositoryInterface
	pixelRatio   float64
	maxDimension int
	now          func() time.Time
	newID        func() string
}

// NewSubmissionService creates a new SubmissionService instance
func NewSubmissionService(
	catalogRepo repository.CatalogRepositoryInterface,
	capture CaptureServiceInterface,
	webhook WebhookServiceInterface,
	archive ArchiveServiceInterface,
	submissions repository.SubmissionRepositoryInterface,
	pixelRatio float64,
	maxDimension int,
) *SubmissionService {
	return &SubmissionService{
		catalogRepo:  catalogRepo,
		capture:      capture,
		webhook:      webhook,
		archive:      archive,
		submissions:  submissions,
		pixelRatio:   pixelRatio,
		maxDimension: maxDimension,
		now:          time.Now,
		newID:        uuid.NewString,
	}
}

// Validate checks that the form can be submitted; the empty string means valid
func Validate(state form.State) string {
	if strings.TrimSpace(state.StudentName) == "" || strings.TrimSpace(state.StudentContact) == "" {
		return MsgMissingContact
	}
	if len(state.Selection) == 0 {
		return MsgNoCourses
	}
	return ""
}

// Summarize collects what the webhook announces for state
func (s *SubmissionService) Summarize(state form.State) models.SubmissionSummary {
	catalog := s.catalogRepo.GetCatalog()

	ids := make([]string, 0, len(state.Selection))
	names := make([]string, 0, len(state.Selection))
	for _, id := range state.Selection {
		offering, ok := catalog.Get(id)
		if !ok {
			continue
		}
		ids = append(ids, id)
		names = append(names, offering.Name)
	}

	total := poster.TotalPrice(ids, catalog)
	return models.SubmissionSummary{
		ID:             s.newID(),
		StudentName:    strings.TrimSpace(state.StudentName),
		StudentContact: strings.TrimSpace(state.StudentContact),
		CourseIDs:      ids,
		CourseNames:    names,
		TotalPrice:     total,
		TotalLabel:     utils.FormatBaht(total),
		SubmittedAt:    s.now(),
	}
}

// capturePoster renders and optimizes the poster for state
func (s *SubmissionService) capturePoster(ctx context.Context, state form.State) ([]byte, error) {
	raw, err := s.capture.CapturePoster(ctx, state, s.pixelRatio)
	if err != nil {
		return nil, err
	}
	return OptimizePoster(raw, s.maxDimension)
}

// Submit runs the full pipeline and stops at the first failing stage
func (s *SubmissionService) Submit(ctx context.Context, state form.State) Outcome {
	if msg := Validate(state); msg != "" {
		log.Printf("⚠️  Submission rejected: %s", msg)
		return failed(OutcomeValidationError, StageValidate, msg, nil)
	}

	if !s.webhook.Configured() {
		log.Printf("❌ %s", MsgWebhookUnconfigured)
		return failed(OutcomeSubmissionError, StageSubmit, MsgWebhookUnconfigured, ErrWebhookNotConfigured)
	}

	summary := s.Summarize(state)

	image, err := s.capturePoster(ctx, state)
	if err != nil {
		log.Printf("❌ Capture failed for submission %s: %v", summary.ID, err)
		if errors.Is(err, ErrPosterNotFound) {
			return failed(OutcomeCaptureError, StageCapture, MsgPosterNotFound, err)
		}
		return failed(OutcomeCaptureError, StageCapture, MsgCaptureFailed, err)
	}

	if err := s.webhook.Send(ctx, summary, image); err != nil {
		log.Printf("❌ Failed to send submission %s: %v", summary.ID, err)
		return failed(OutcomeSubmissionError, StageSubmit, MsgSubmitFailed, err)
	}

	// Recording must not be cut short by the caller going away after a successful send
	s.record(context.WithoutCancel(ctx), summary, image)

	log.Printf("✅ Submission %s delivered (%d courses, %s)", summary.ID, len(summary.CourseIDs), summary.TotalLabel)
	return Outcome{Kind: OutcomeSuccess, Stage: StageDone, SubmissionID: summary.ID}
}

// record archives the poster and logs the lead; failures are logged only
func (s *SubmissionService) record(ctx context.Context, summary models.SubmissionSummary, image []byte) {
	var driveFileID string
	if s.archive != nil {
		id, err := s.archive.UploadPoster(ctx, ArchiveName(summary), image)
		if err != nil {
			log.Printf("⚠️  Failed to archive poster for %s: %v", summary.ID, err)
		} else {
			driveFileID = id
		}
	}

	if s.submissions != nil {
		_, err := s.submissions.Create(ctx, &models.SubmissionRecord{
			ID:             summary.ID,
			StudentName:    summary.StudentName,
			StudentContact: summary.StudentContact,
			CourseIDs:      summary.CourseIDs,
			TotalPrice:     summary.TotalPrice,
			DriveFileID:    driveFileID,
			SubmittedAt:    summary.SubmittedAt,
		})
		if err != nil {
			log.Printf("⚠️  Failed to record submission %s: %v", summary.ID, err)
		}
	}
}

// Download captures the poster without validating the form
func (s *SubmissionService) Download(ctx context.Context, state form.State) (DownloadResult, Outcome) {
	image, err := s.capturePoster(ctx, state)
	if err != nil {
		log.Printf("❌ Download capture failed: %v", err)
		if errors.Is(err, ErrPosterNotFound) {
			return DownloadResult{}, failed(OutcomeCaptureError, StageCapture, MsgDownloadNotFound, err)
		}
		return DownloadResult{}, failed(OutcomeCaptureError, StageCapture, MsgCaptureFailed, err)
	}

	log.Printf("📥 Poster ready for download (%d bytes)", len(image))
	return DownloadResult{Filename: DownloadFilename, Data: image}, Outcome{Kind: OutcomeSuccess, Stage: StageDone}
}

// RecentSubmissions lists logged leads, newest first
func (s *SubmissionService) RecentSubmissions(ctx context.Context, limit int) ([]models.SubmissionRecord, error) {
	if s.submissions == nil {
		return nil, ErrLeadLogDisabled
	}
	return s.submissions.ListRecent(ctx, limit)
}

// ArchivedPosters lists posters stored in the archive
func (s *SubmissionService) ArchivedPosters(ctx context.Context) ([]models.ArchivedPoster, error) {
	if s.archive == nil {
		return nil, ErrArchiveDisabled
	}
	return s.archive.ListPosters(ctx)
}
