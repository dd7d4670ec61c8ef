package service

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"course-promo/form"
	"course-promo/models"
	"course-promo/poster"
	"course-promo/repository"
	"course-promo/templates"
	"course-promo/utils"
)

// Channel is a contact link shown on the poster
type Channel struct {
	Name  string
	URL   string
	Color template.CSS
}

var contactChannels = []Channel{
	{Name: "Instagram", URL: "https://www.instagram.com/lxmonadier._/", Color: "#e879f9"},
	{Name: "Facebook", URL: "https://www.facebook.com/LemonadeX20", Color: "#22d3ee"},
	{Name: "Discord", URL: "https://discord.gg/96yzWZkG", Color: "#3b82f6"},
	{Name: "Line", URL: "https://line.me/ti/p/BI6O7ex0-x", Color: "#4ade80"},
}

// PosterView is the data behind the "poster" template
type PosterView struct {
	StudentName    string
	StudentContact string
	Poster         models.ComposedPoster
	TotalLabel     string
	Background     template.CSS
	TwoAcross      bool // more than two offerings are laid out two per row
	Channels       []Channel
}

// CourseOption is one sidebar toggle
type CourseOption struct {
	Offering models.Offering
	Selected bool
}

// PageView is the data behind the "page" template
type PageView struct {
	State   form.State
	Options []CourseOption
	Poster  PosterView
}

// RenderService renders the page and the standalone poster
type RenderService struct {
	catalogRepo repository.CatalogRepositoryInterface
	tmpl        *template.Template
}

// NewRenderService parses the embedded templates
func NewRenderService(catalogRepo repository.CatalogRepositoryInterface) (*RenderService, error) {
	tmpl, err := template.New("promo").Funcs(template.FuncMap{
		"css":        func(s string) template.CSS { return template.CSS(s) },
		"formatBaht": utils.FormatBaht,
	}).ParseFS(templates.FS, "*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &RenderService{
		catalogRepo: catalogRepo,
		tmpl:        tmpl,
	}, nil
}

// BuildPosterView composes the poster for the state's selection
func (s *RenderService) BuildPosterView(state form.State) PosterView {
	composed := poster.Compose(state.Selection, s.catalogRepo.GetCatalog())
	return PosterView{
		StudentName:    state.StudentName,
		StudentContact: state.StudentContact,
		Poster:         composed,
		TotalLabel:     utils.FormatBaht(composed.TotalPrice),
		Background:     template.CSS(poster.GradientCSS(composed.Background)),
		TwoAcross:      len(composed.Offerings) > 2,
		Channels:       contactChannels,
	}
}

// BuildPageView assembles the sidebar options and the poster preview
func (s *RenderService) BuildPageView(state form.State) PageView {
	catalog := s.catalogRepo.GetCatalog()
	options := make([]CourseOption, 0, catalog.Len())
	for _, o := range catalog.Offerings() {
		options = append(options, CourseOption{Offering: o, Selected: state.Selected(o.ID)})
	}
	return PageView{
		State:   state,
		Options: options,
		Poster:  s.BuildPosterView(state),
	}
}

// RenderPage writes the full page for state
func (s *RenderService) RenderPage(w io.Writer, state form.State) error {
	return s.execute(w, "page", s.BuildPageView(state))
}

// RenderPoster writes the poster-only document used for image capture
func (s *RenderService) RenderPoster(w io.Writer, state form.State) error {
	return s.execute(w, "render", s.BuildPosterView(state))
}

// execute renders into a buffer first so a template error never leaves a half-written response
func (s *RenderService) execute(w io.Writer, name string, data interface{}) error {
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}
