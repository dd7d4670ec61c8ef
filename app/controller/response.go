package controller

import (
	"fmt"
	"log"
	"net/http"

	"github.com/goccy/go-json"

	"course-promo/form"
	"course-promo/models"
	"course-promo/service"
)

// writeJSON encodes v with the given status
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("❌ Failed to encode response: %v", err)
	}
}

// writeError writes {"status":"error","message":...}
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, models.SubmissionResponse{Status: "error", Message: message})
}

// writePNGAttachment serves a poster as a file download
func writePNGAttachment(w http.ResponseWriter, result service.DownloadResult) {
	w.Header().Set("Content-Type", service.PosterContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", result.Filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(result.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.Data); err != nil {
		log.Printf("❌ Error writing PNG response: %v", err)
	}
}

// outcomeStatus maps a pipeline outcome to an HTTP status
func outcomeStatus(outcome service.Outcome) int {
	switch outcome.Kind {
	case service.OutcomeSuccess:
		return http.StatusCreated
	case service.OutcomeValidationError:
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}

// stateFromQuery decodes the API's query state. Unlike the page, a query without
// course values selects nothing rather than the whole catalog.
func stateFromQuery(r *http.Request, catalog models.Catalog) form.State {
	q := r.URL.Query()
	if !form.HasState(q) {
		q.Set(form.KeyRevision, "0")
	}
	return form.FromValues(q, catalog)
}
