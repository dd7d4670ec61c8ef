package controller

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"course-promo/form"
	"course-promo/models"
	"course-promo/poster"
	"course-promo/repository"
	"course-promo/service"
	"course-promo/utils"
)

// maxSubmissionBody bounds POST /api/submissions bodies
const maxSubmissionBody = 64 << 10

// APIController handles the JSON API
type APIController struct {
	catalogRepo       repository.CatalogRepositoryInterface
	submissionService service.SubmissionServiceInterface
}

// NewAPIController creates a new APIController
func NewAPIController(
	catalogRepo repository.CatalogRepositoryInterface,
	submissionService service.SubmissionServiceInterface,
) *APIController {
	return &APIController{
		catalogRepo:       catalogRepo,
		submissionService: submissionService,
	}
}

// catalogResponse is the body of GET /api/catalog
type catalogResponse struct {
	Offerings []models.Offering `json:"offerings"`
}

// posterResponse is the body of GET /api/poster
type posterResponse struct {
	models.ComposedPoster
	TotalLabel    string `json:"totalLabel"`
	BackgroundCSS string `json:"backgroundCss"`
}

// GetCatalog handles GET /api/catalog
func (c *APIController) GetCatalog(w http.ResponseWriter, r *http.Request) {
	catalog := c.catalogRepo.GetCatalog()
	writeJSON(w, http.StatusOK, catalogResponse{Offerings: catalog.Offerings()})
}

// GetPoster handles GET /api/poster?course=C&course=Python.
// Without course values the poster is composed for an empty selection.
func (c *APIController) GetPoster(w http.ResponseWriter, r *http.Request) {
	catalog := c.catalogRepo.GetCatalog()
	state := stateFromQuery(r, catalog)

	composed := poster.Compose(state.Selection, catalog)
	writeJSON(w, http.StatusOK, posterResponse{
		ComposedPoster: composed,
		TotalLabel:     utils.FormatBaht(composed.TotalPrice),
		BackgroundCSS:  poster.GradientCSS(composed.Background),
	})
}

// GetPosterImage handles GET /api/poster/image; the query is read like GetPoster's
func (c *APIController) GetPosterImage(w http.ResponseWriter, r *http.Request) {
	state := stateFromQuery(r, c.catalogRepo.GetCatalog())

	result, outcome := c.submissionService.Download(r.Context(), state)
	if !outcome.OK() {
		writeJSON(w, http.StatusBadGateway, models.SubmissionResponse{
			Status:  outcome.Kind.String(),
			Stage:   outcome.Stage,
			Message: outcome.Message,
		})
		return
	}

	writePNGAttachment(w, result)
}

// CreateSubmission handles POST /api/submissions
func (c *APIController) CreateSubmission(w http.ResponseWriter, r *http.Request) {
	var req models.SubmissionRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSubmissionBody))
	if err := decoder.Decode(&req); err != nil {
		log.Printf("❌ CreateSubmission: Invalid JSON: %v", err)
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	catalog := c.catalogRepo.GetCatalog()
	for _, id := range req.Courses {
		if !catalog.Has(strings.TrimSpace(id)) {
			log.Printf("❌ CreateSubmission: Unknown course %q", id)
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Unknown course: %s", id))
			return
		}
	}

	values := url.Values{}
	values.Set(form.KeyRevision, "0")
	values.Set(form.KeyName, req.StudentName)
	values.Set(form.KeyContact, req.StudentContact)
	values[form.KeyCourse] = req.Courses
	state := form.FromValues(values, catalog)

	outcome := c.submissionService.Submit(r.Context(), state)
	status := outcomeStatus(outcome)
	if outcome.OK() {
		log.Printf("✅ CreateSubmission: %s", outcome.SubmissionID)
	}

	writeJSON(w, status, models.SubmissionResponse{
		Status:       outcome.Kind.String(),
		Stage:        outcome.Stage,
		Message:      outcome.Message,
		SubmissionID: outcome.SubmissionID,
	})
}

// ListSubmissions handles GET /admin/submissions?limit=50
func (c *APIController) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	records, err := c.submissionService.RecentSubmissions(r.Context(), limit)
	if errors.Is(err, service.ErrLeadLogDisabled) {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	if err != nil {
		log.Printf("❌ ListSubmissions: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to list submissions")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"submissions": records,
		"count":       len(records),
	})
}

// ListArchivedPosters handles GET /admin/posters
func (c *APIController) ListArchivedPosters(w http.ResponseWriter, r *http.Request) {
	posters, err := c.submissionService.ArchivedPosters(r.Context())
	if errors.Is(err, service.ErrArchiveDisabled) {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	if err != nil {
		log.Printf("❌ ListArchivedPosters: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to list archived posters")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"posters": posters,
		"count":   len(posters),
	})
}
