package controller

import (
	"log"
	"net/http"
	"strings"

	"course-promo/form"
	"course-promo/repository"
	"course-promo/service"
)

// Form actions posted by the page's buttons
const (
	actionSubmit         = "submit"
	actionDownload       = "download"
	actionDismissError   = "dismiss-error"
	actionDismissSuccess = "dismiss-success"
	actionUpdate         = "update"
	actionTogglePrefix   = "toggle:"
)

// PageController serves the server-rendered page and the poster render target
type PageController struct {
	catalogRepo       repository.CatalogRepositoryInterface
	renderService     *service.RenderService
	submissionService service.SubmissionServiceInterface
}

// NewPageController creates a new PageController
func NewPageController(
	catalogRepo repository.CatalogRepositoryInterface,
	renderService *service.RenderService,
	submissionService service.SubmissionServiceInterface,
) *PageController {
	return &PageController{
		catalogRepo:       catalogRepo,
		renderService:     renderService,
		submissionService: submissionService,
	}
}

// Index handles GET /
func (c *PageController) Index(w http.ResponseWriter, r *http.Request) {
	state := form.FromValues(r.URL.Query(), c.catalogRepo.GetCatalog())
	c.renderPage(w, state)
}

// RenderPoster handles GET /poster/render, the page headless Chrome captures
func (c *PageController) RenderPoster(w http.ResponseWriter, r *http.Request) {
	state := form.FromValues(r.URL.Query(), c.catalogRepo.GetCatalog())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.renderService.RenderPoster(w, state); err != nil {
		log.Printf("❌ RenderPoster: %v", err)
		http.Error(w, "Failed to render poster", http.StatusInternalServerError)
	}
}

// HandleForm handles POST /form: applies the posted action and re-renders the page
func (c *PageController) HandleForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		log.Printf("❌ HandleForm: invalid form body: %v", err)
		http.Error(w, "Invalid form body", http.StatusBadRequest)
		return
	}

	catalog := c.catalogRepo.GetCatalog()
	state := form.FromValues(r.PostForm, catalog)
	action := strings.TrimSpace(r.PostForm.Get("action"))

	// The text inputs travel with every action
	if r.PostForm.Has(form.KeyName) {
		state = form.Reduce(state, form.Action{Kind: form.ActionSetName, Value: r.PostForm.Get(form.KeyName)})
	}
	if r.PostForm.Has(form.KeyContact) {
		state = form.Reduce(state, form.Action{Kind: form.ActionSetContact, Value: r.PostForm.Get(form.KeyContact)})
	}

	switch {
	case strings.HasPrefix(action, actionTogglePrefix):
		id := strings.TrimPrefix(action, actionTogglePrefix)
		if !catalog.Has(id) {
			log.Printf("⚠️  HandleForm: unknown course %q", id)
			http.Error(w, "Unknown course", http.StatusBadRequest)
			return
		}
		state = form.Reduce(state, form.Action{Kind: form.ActionToggle, Value: id})

	case action == actionSubmit:
		state = form.Reduce(state, form.Action{Kind: form.ActionBeginSubmit})
		outcome := c.submissionService.Submit(r.Context(), state)
		if outcome.OK() {
			state = form.Reduce(state, form.Action{Kind: form.ActionSubmitSucceeded})
		} else {
			state = form.Reduce(state, form.Action{Kind: form.ActionSubmitFailed, Value: outcome.Message})
		}

	case action == actionDownload:
		state = form.Reduce(state, form.Action{Kind: form.ActionBeginDownload})
		result, outcome := c.submissionService.Download(r.Context(), state)
		if outcome.OK() {
			writePNGAttachment(w, result)
			return
		}
		state = form.Reduce(state, form.Action{Kind: form.ActionDownloadFailed, Value: outcome.Message})

	case action == actionDismissError:
		state = form.Reduce(state, form.Action{Kind: form.ActionDismissError})

	case action == actionDismissSuccess:
		state = form.Reduce(state, form.Action{Kind: form.ActionDismissSuccess})

	case action == actionUpdate, action == "":
		// re-render with the posted fields
	default:
		log.Printf("⚠️  HandleForm: unknown action %q", action)
		http.Error(w, "Unknown action", http.StatusBadRequest)
		return
	}

	c.renderPage(w, state)
}

func (c *PageController) renderPage(w http.ResponseWriter, state form.State) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.renderService.RenderPage(w, state); err != nil {
		log.Printf("❌ RenderPage: %v", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}
