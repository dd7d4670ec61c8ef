package controller

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"course-promo/form"
	"course-promo/models"
	"course-promo/repository"
	"course-promo/service"
)

type fakeSubmissionService struct {
	submitted  []form.State
	downloaded []form.State
	outcome    service.Outcome
	download   service.DownloadResult
	records    []models.SubmissionRecord
	recordsErr error
}

func (f *fakeSubmissionService) Submit(ctx context.Context, state form.State) service.Outcome {
	f.submitted = append(f.submitted, state)
	return f.outcome
}

func (f *fakeSubmissionService) Download(ctx context.Context, state form.State) (service.DownloadResult, service.Outcome) {
	f.downloaded = append(f.downloaded, state)
	if !f.outcome.OK() {
		return service.DownloadResult{}, f.outcome
	}
	return f.download, f.outcome
}

func (f *fakeSubmissionService) RecentSubmissions(ctx context.Context, limit int) ([]models.SubmissionRecord, error) {
	return f.records, f.recordsErr
}

func (f *fakeSubmissionService) ArchivedPosters(ctx context.Context) ([]models.ArchivedPoster, error) {
	return nil, service.ErrArchiveDisabled
}

type fixture struct {
	submissions *fakeSubmissionService
	page        *PageController
	api         *APIController
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	catalogRepo, err := repository.NewCatalogRepository("")
	require.NoError(t, err)
	renderService, err := service.NewRenderService(catalogRepo)
	require.NoError(t, err)

	submissions := &fakeSubmissionService{
		outcome:  service.Outcome{Kind: service.OutcomeSuccess, SubmissionID: "sub-1"},
		download: service.DownloadResult{Filename: service.DownloadFilename, Data: []byte("png-bytes")},
	}
	return &fixture{
		submissions: submissions,
		page:        NewPageController(catalogRepo, renderService, submissions),
		api:         NewAPIController(catalogRepo, submissions),
	}
}

func postForm(t *testing.T, h http.HandlerFunc, values url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/form", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func parseDoc(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	return doc
}

func hiddenCourses(doc *goquery.Document) []string {
	var ids []string
	doc.Find(`#course-form input[name="course"]`).Each(func(_ int, s *goquery.Selection) {
		ids = append(ids, s.AttrOr("value", ""))
	})
	return ids
}

func formValues(name, contact, action string, courses ...string) url.Values {
	v := url.Values{}
	v.Set("rev", "4")
	v.Set("name", name)
	v.Set("contact", contact)
	v.Set("action", action)
	for _, c := range courses {
		v.Add("course", c)
	}
	return v
}

func TestIndex_InitialState(t *testing.T) {
	f := newFixture(t)
	rec := httptest.NewRecorder()
	f.page.Index(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	doc := parseDoc(t, rec)
	assert.Equal(t, []string{"C", "Cpp", "CSharp", "Python"}, hiddenCourses(doc))
	assert.Equal(t, 4, doc.Find("button.course.selected").Length())
	assert.Equal(t, "3,106฿", strings.TrimSpace(doc.Find("#poster .total .amount").Text()))
}

func TestHandleForm_Toggle(t *testing.T) {
	f := newFixture(t)
	rec := postForm(t, f.page.HandleForm, formValues("Somchai", "line", "toggle:Cpp", "C", "Cpp"))

	require.Equal(t, http.StatusOK, rec.Code)
	doc := parseDoc(t, rec)
	assert.Equal(t, []string{"C"}, hiddenCourses(doc))
	assert.Equal(t, "7", doc.Find(`#course-form input[name="rev"]`).AttrOr("value", ""))
	assert.Equal(t, "Somchai", doc.Find(`input[name="name"]`).AttrOr("value", ""))
	assert.Empty(t, f.submissions.submitted)
}

func TestHandleForm_ToggleUnknownCourse(t *testing.T) {
	f := newFixture(t)
	rec := postForm(t, f.page.HandleForm, formValues("", "", "toggle:Rust", "C"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleForm_UnknownAction(t *testing.T) {
	f := newFixture(t)
	rec := postForm(t, f.page.HandleForm, formValues("", "", "explode", "C"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleForm_SubmitSuccess(t *testing.T) {
	f := newFixture(t)
	rec := postForm(t, f.page.HandleForm, formValues("Somchai", "line", "submit", "Python", "C"))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, f.submissions.submitted, 1)
	sent := f.submissions.submitted[0]
	assert.Equal(t, "Somchai", sent.StudentName)
	assert.Equal(t, []string{"Python", "C"}, sent.Selection)
	assert.True(t, sent.Submitting)

	doc := parseDoc(t, rec)
	assert.Equal(t, 1, doc.Find(".modal").Length())
	assert.Empty(t, hiddenCourses(doc))
	assert.Equal(t, "", doc.Find(`input[name="name"]`).AttrOr("value", "x"))
	assert.Equal(t, 0, doc.Find(".error").Length())
}

func TestHandleForm_SubmitFailureKeepsFields(t *testing.T) {
	f := newFixture(t)
	f.submissions.outcome = service.Outcome{
		Kind:    service.OutcomeValidationError,
		Message: service.MsgMissingContact,
	}
	rec := postForm(t, f.page.HandleForm, formValues("", "line", "submit", "C"))

	require.Equal(t, http.StatusOK, rec.Code)
	doc := parseDoc(t, rec)
	assert.Equal(t, service.MsgMissingContact, strings.TrimSpace(doc.Find(".error p").Text()))
	assert.Equal(t, []string{"C"}, hiddenCourses(doc))
	assert.Equal(t, "line", doc.Find(`input[name="contact"]`).AttrOr("value", ""))
	assert.Equal(t, 0, doc.Find(".modal").Length())
}

func TestHandleForm_Download(t *testing.T) {
	t.Run("serves attachment", func(t *testing.T) {
		f := newFixture(t)
		rec := postForm(t, f.page.HandleForm, formValues("", "", "download", "C"))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="course-promo.png"`, rec.Header().Get("Content-Disposition"))
		assert.Equal(t, "png-bytes", rec.Body.String())
	})

	t.Run("failure shows error", func(t *testing.T) {
		f := newFixture(t)
		f.submissions.outcome = service.Outcome{Kind: service.OutcomeCaptureError, Message: service.MsgDownloadNotFound}
		rec := postForm(t, f.page.HandleForm, formValues("", "", "download", "C"))

		require.Equal(t, http.StatusOK, rec.Code)
		doc := parseDoc(t, rec)
		assert.Equal(t, service.MsgDownloadNotFound, strings.TrimSpace(doc.Find(".error p").Text()))
	})
}

func TestRenderPoster_PosterOnly(t *testing.T) {
	f := newFixture(t)
	rec := httptest.NewRecorder()
	f.page.RenderPoster(rec, httptest.NewRequest(http.MethodGet, "/poster/render?rev=1&course=CSharp&name=Somchai", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	doc := parseDoc(t, rec)
	assert.Equal(t, 1, doc.Find("#poster").Length())
	assert.Equal(t, 0, doc.Find("#course-form").Length())
	assert.Equal(t, "1,459฿", strings.TrimSpace(doc.Find("#poster .total .amount").Text()))
}

func TestGetCatalog(t *testing.T) {
	f := newFixture(t)
	rec := httptest.NewRecorder()
	f.api.GetCatalog(rec, httptest.NewRequest(http.MethodGet, "/api/catalog", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Offerings []models.Offering `json:"offerings"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Offerings, 4)
	assert.Equal(t, "C", body.Offerings[0].ID)
	assert.Equal(t, "Python", body.Offerings[3].ID)
}

func TestGetPoster(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantTotal int
		wantLabel string
		wantSel   []string
		wantBg    string
	}{
		{"explicit courses", "?course=Python&course=C", 918, "918฿", []string{"Python", "C"}, "radial-gradient(circle at 20% 20%"},
		{"no courses selects nothing", "", 0, "0฿", []string{}, "radial-gradient(circle at top right"},
		{"name only selects nothing", "?name=Somchai", 0, "0฿", []string{}, "radial-gradient(circle at top right"},
		{"unknown ids dropped", "?course=Rust&course=Cpp", 729, "729฿", []string{"Cpp"}, "radial-gradient(circle at 20% 20%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			rec := httptest.NewRecorder()
			f.api.GetPoster(rec, httptest.NewRequest(http.MethodGet, "/api/poster"+tt.query, nil))

			require.Equal(t, http.StatusOK, rec.Code)
			var body struct {
				Selection     []string `json:"selection"`
				TotalPrice    int      `json:"totalPrice"`
				TotalLabel    string   `json:"totalLabel"`
				BackgroundCSS string   `json:"backgroundCss"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantSel, body.Selection)
			assert.Equal(t, tt.wantTotal, body.TotalPrice)
			assert.Equal(t, tt.wantLabel, body.TotalLabel)
			assert.Contains(t, body.BackgroundCSS, tt.wantBg)
		})
	}
}

func TestGetPosterImage_EmptyQuery(t *testing.T) {
	f := newFixture(t)
	rec := httptest.NewRecorder()
	f.api.GetPosterImage(rec, httptest.NewRequest(http.MethodGet, "/api/poster/image", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, f.submissions.downloaded, 1)
	assert.Empty(t, f.submissions.downloaded[0].Selection)
}

func TestGetPosterImage(t *testing.T) {
	f := newFixture(t)
	rec := httptest.NewRecorder()
	f.api.GetPosterImage(rec, httptest.NewRequest(http.MethodGet, "/api/poster/image?course=C", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "png-bytes", rec.Body.String())
	require.Len(t, f.submissions.downloaded, 1)
	assert.Equal(t, []string{"C"}, f.submissions.downloaded[0].Selection)
}

func TestCreateSubmission(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		outcome    service.Outcome
		wantStatus int
		wantSubmit bool
	}{
		{
			name:       "success",
			body:       `{"studentName":"Somchai","studentContact":"line","courses":["C","Python"]}`,
			outcome:    service.Outcome{Kind: service.OutcomeSuccess, SubmissionID: "sub-1"},
			wantStatus: http.StatusCreated,
			wantSubmit: true,
		},
		{
			name:       "validation error",
			body:       `{"studentName":"","studentContact":"line","courses":["C"]}`,
			outcome:    service.Outcome{Kind: service.OutcomeValidationError, Message: service.MsgMissingContact},
			wantStatus: http.StatusBadRequest,
			wantSubmit: true,
		},
		{
			name:       "webhook failure",
			body:       `{"studentName":"a","studentContact":"b","courses":["C"]}`,
			outcome:    service.Outcome{Kind: service.OutcomeSubmissionError, Message: service.MsgSubmitFailed},
			wantStatus: http.StatusBadGateway,
			wantSubmit: true,
		},
		{
			name:       "unknown course",
			body:       `{"studentName":"a","studentContact":"b","courses":["Rust"]}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed json",
			body:       `{"studentName":`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.submissions.outcome = tt.outcome

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/submissions", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			f.api.CreateSubmission(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantSubmit, len(f.submissions.submitted) == 1)

			var resp models.SubmissionResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			if tt.wantSubmit {
				assert.Equal(t, tt.outcome.Kind.String(), resp.Status)
				assert.Equal(t, tt.outcome.Message, resp.Message)
			}
		})
	}
}

func TestListSubmissions(t *testing.T) {
	t.Run("lists records", func(t *testing.T) {
		f := newFixture(t)
		f.submissions.records = []models.SubmissionRecord{{ID: "a"}, {ID: "b"}}
		rec := httptest.NewRecorder()
		f.api.ListSubmissions(rec, httptest.NewRequest(http.MethodGet, "/admin/submissions?limit=10", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"count":2`)
	})

	t.Run("bad limit", func(t *testing.T) {
		f := newFixture(t)
		rec := httptest.NewRecorder()
		f.api.ListSubmissions(rec, httptest.NewRequest(http.MethodGet, "/admin/submissions?limit=-1", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("lead log disabled", func(t *testing.T) {
		f := newFixture(t)
		f.submissions.recordsErr = service.ErrLeadLogDisabled
		rec := httptest.NewRecorder()
		f.api.ListSubmissions(rec, httptest.NewRequest(http.MethodGet, "/admin/submissions", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestListArchivedPosters_Disabled(t *testing.T) {
	f := newFixture(t)
	rec := httptest.NewRecorder()
	f.api.ListArchivedPosters(rec, httptest.NewRequest(http.MethodGet, "/admin/posters", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
