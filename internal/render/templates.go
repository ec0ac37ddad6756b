package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"sync"
)

//go:embed templates/*.html
var templateFS embed.FS

var (
	templates     *template.Template
	templatesOnce sync.Once
	errTemplates  error
)

// getTemplates returns the parsed templates, loading them once.
func getTemplates() (*template.Template, error) {
	templatesOnce.Do(func() {
		var parseErr error
		templates, parseErr = template.New("").ParseFS(templateFS, "templates/*.html")
		if parseErr != nil {
			errTemplates = fmt.Errorf("parsing templates: %w", parseErr)
		}
	})
	return templates, errTemplates
}

// renderTemplate renders a named template with the given data.
func renderTemplate(name string, data any) (template.HTML, error) {
	tmpl, err := getTemplates()
	if err != nil {
		return "", fmt.Errorf("loading templates: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("executing template %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}

// pageData holds data for page.html.
type pageData struct {
	Title         string
	Root          string // relative prefix back to the site root
	IsHome        bool
	SchemeAttr    string
	DefaultScheme string
	Schemes       []schemeOption
	Nav           []NavLink
	Charts        bool
	EChartsURL    string
	Content       template.HTML
}

type schemeOption struct {
	Value    string
	Label    string
	Selected bool
}

// cardData holds one project card.
type cardData struct {
	Title       string
	Image       string
	Description string
	Year        string
	URL         string
}

type homeData struct {
	Heading string
	Profile *profileData
	Cards   []cardData
}

type profileData struct {
	AvatarURL   string
	Followers   int
	Following   int
	PublicRepos int
	PublicGists int
}

type legendItem struct {
	Label    string
	Value    int
	Color    string
	Selected bool
}

type projectsData struct {
	Count  int
	Query  string
	Pie    template.HTML
	Legend []legendItem
	Cards  []cardData
}

// StatItem is one labelled stat.
type StatItem struct {
	Label string
	Value string
}

type languageItem struct {
	Type    string
	Count   int
	Percent string
}

type metaData struct {
	Stats     []StatItem
	Chart     template.HTML
	Languages []languageItem
}
