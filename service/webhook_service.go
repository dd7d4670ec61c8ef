package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"course-promo/models"
	"course-promo/utils"
)

const (
	// PosterAttachmentName is the filename of the poster inside the webhook message
	PosterAttachmentName = "promo-poster.png"

	webhookContent = "✨ New course interest submission!"
	webhookTitle   = "Course Interest Details"
	webhookFooter  = "Lemonadier Courses Interest Submission"
	webhookColor   = 3447003
)

var (
	// ErrWebhookNotConfigured is returned when no webhook URL is set
	ErrWebhookNotConfigured = errors.New("webhook URL is not configured")
	// ErrWebhookStatus is returned when the webhook answers with a non-2xx status
	ErrWebhookStatus = errors.New("webhook returned non-success status")
)

// WebhookServiceInterface defines the contract for announcing submissions
type WebhookServiceInterface interface {
	// Configured reports whether a destination URL is set
	Configured() bool
	// Send posts the summary with the poster image attached
	Send(ctx context.Context, summary models.SubmissionSummary, image []byte) error
}

// WebhookService posts Discord-compatible multipart messages
type WebhookService struct {
	url    string
	client *http.Client
}

// Ensure WebhookService implements WebhookServiceInterface
var _ WebhookServiceInterface = (*WebhookService)(nil)

// NewWebhookService creates a WebhookService; an empty url leaves it unconfigured
func NewWebhookService(url string, timeout time.Duration) *WebhookService {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &WebhookService{
		url:    strings.TrimSpace(url),
		client: &http.Client{Timeout: timeout},
	}
}

// Configured reports whether a webhook URL is set
func (s *WebhookService) Configured() bool {
	return s.url != ""
}

// BuildPayload builds the embed announced for a submission
func BuildPayload(summary models.SubmissionSummary) models.WebhookPayload {
	courses := "None"
	if len(summary.CourseNames) > 0 {
		courses = strings.Join(summary.CourseNames, ", ")
	}

	return models.WebhookPayload{
		Content: webhookContent,
		Embeds: []models.Embed{
			{
				Title: webhookTitle,
				Color: webhookColor,
				Fields: []models.EmbedField{
					{Name: "🧑‍🎓 Student Name", Value: summary.StudentName},
					{Name: "📞 Contact Info", Value: summary.StudentContact},
					{Name: "📚 Selected Courses", Value: courses},
					{Name: "💰 Total Price", Value: utils.FormatBahtBold(summary.TotalPrice)},
				},
				Timestamp: summary.SubmittedAt.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
				Footer:    models.EmbedFooter{Text: webhookFooter},
				Image:     models.EmbedImage{URL: "attachment://" + PosterAttachmentName},
			},
		},
	}
}

// buildMultipart writes payload_json and files[0] into a multipart body
func buildMultipart(payload models.WebhookPayload, image []byte) (*bytes.Buffer, string, error) {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal payload: %w", err)
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if err := writer.WriteField("payload_json", string(payloadJSON)); err != nil {
		return nil, "", fmt.Errorf("failed to write payload field: %w", err)
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files[0]"; filename="%s"`, PosterAttachmentName))
	header.Set("Content-Type", PosterContentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return nil, "", fmt.Errorf("failed to write file part: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart writer: %w", err)
	}
	return body, writer.FormDataContentType(), nil
}

// Send posts the submission once; there is no retry
func (s *WebhookService) Send(ctx context.Context, summary models.SubmissionSummary, image []byte) error {
	if !s.Configured() {
		return ErrWebhookNotConfigured
	}

	body, contentType, err := buildMultipart(BuildPayload(summary), image)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, body)
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	log.Printf("📤 Sending submission %s to webhook (%d bytes image)", summary.ID, len(image))
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: %d %s", ErrWebhookStatus, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	log.Printf("✓ Webhook accepted submission %s (status %d)", summary.ID, resp.StatusCode)
	return nil
}
