package shell

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"

	"github.com/pydata-academy/academy/internal/catalog"
	"github.com/pydata-academy/academy/internal/route"
	"github.com/pydata-academy/academy/internal/uistate"
)

//go:embed templates/*.html
var templateFS embed.FS

// themes lists every theme in a fixed order.
var themes = []uistate.Theme{uistate.ThemeDark, uistate.ThemeLight}

// codeStyles maps each theme to the chroma style used for code in course
// descriptions.
var codeStyles = map[uistate.Theme]string{
	uistate.ThemeDark:  "monokai",
	uistate.ThemeLight: "github",
}

// Frame carries the state every page of the shell reads.
type Frame struct {
	Title        string
	View         route.View
	Theme        uistate.Theme
	ExplorerOpen bool
	IsLesson     bool
	LiveURL      string
}

// CatalogEntry is one selectable course card.
type CatalogEntry struct {
	Position int
	Href     string
	Course   catalog.Course
}

// CatalogPage is the data for the catalog view.
type CatalogPage struct {
	Frame
	Entries []CatalogEntry
}

// LessonPage is the data for a found lesson view.
type LessonPage struct {
	Frame
	Course          catalog.Course
	Layout          uistate.Layout
	MetadataVisible bool
	VideoURL        string
	NotebookURL     string
	Descriptions    []ThemedHTML
}

// ThemedHTML is markup styled for one theme. The page carries one per theme
// and CSS shows the one matching the current theme.
type ThemedHTML struct {
	Theme uistate.Theme
	HTML  template.HTML
}

// NotFoundPage is the data for a lesson id absent from the catalog.
type NotFoundPage struct {
	Frame
	CourseID string
}

// Renderer executes the shell templates.
type Renderer struct {
	catalog  *template.Template
	lesson   *template.Template
	notFound *template.Template
	markdown map[uistate.Theme]goldmark.Markdown
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{markdown: make(map[uistate.Theme]goldmark.Markdown, len(codeStyles))}

	var err error
	if r.catalog, err = parsePage("catalog.html"); err != nil {
		return nil, err
	}
	if r.lesson, err = parsePage("lesson.html"); err != nil {
		return nil, err
	}
	if r.notFound, err = parsePage("notfound.html"); err != nil {
		return nil, err
	}

	for theme, style := range codeStyles {
		r.markdown[theme] = goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				highlighting.NewHighlighting(
					highlighting.WithStyle(style),
				),
			),
		)
	}
	return r, nil
}

func parsePage(name string) (*template.Template, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/base.html", "templates/"+name)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}
	return tmpl, nil
}

// Catalog renders the catalog view.
func (r *Renderer) Catalog(w io.Writer, page CatalogPage) error {
	return r.catalog.ExecuteTemplate(w, "base", page)
}

// Lesson renders a found lesson view.
func (r *Renderer) Lesson(w io.Writer, page LessonPage) error {
	return r.lesson.ExecuteTemplate(w, "base", page)
}

// NotFound renders the lesson not-found state.
func (r *Renderer) NotFound(w io.Writer, page NotFoundPage) error {
	return r.notFound.ExecuteTemplate(w, "base", page)
}

// Markdown converts a course description to HTML, styling code blocks for
// the given theme. Raw HTML in the source is not passed through.
func (r *Renderer) Markdown(theme uistate.Theme, src string) (template.HTML, error) {
	md, ok := r.markdown[theme]
	if !ok {
		md = r.markdown[uistate.ThemeDark]
	}

	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("converting description: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// MarkdownThemes renders src once per theme so a live theme switch restyles
// code blocks without a reload.
func (r *Renderer) MarkdownThemes(src string) ([]ThemedHTML, error) {
	out := make([]ThemedHTML, 0, len(themes))
	for _, theme := range themes {
		html, err := r.Markdown(theme, src)
		if err != nil {
			return nil, err
		}
		out = append(out, ThemedHTML{Theme: theme, HTML: html})
	}
	return out, nil
}
