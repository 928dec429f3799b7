package handlers

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"sync"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// TemplateCache holds parsed templates, each combined with base.html.
type TemplateCache struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

func NewTemplateCache() *TemplateCache {
	return &TemplateCache{templates: make(map[string]*template.Template)}
}

// GetTemplate returns a cached template or parses it if not cached
func (tc *TemplateCache) GetTemplate(name string) (*template.Template, error) {
	tc.mutex.RLock()
	tmpl, exists := tc.templates[name]
	tc.mutex.RUnlock()
	if exists {
		return tmpl, nil
	}

	tc.mutex.Lock()
	defer tc.mutex.Unlock()

	// Double-check after acquiring write lock
	if tmpl, exists := tc.templates[name]; exists {
		return tmpl, nil
	}

	tmpl, err := template.New("").Funcs(CreateTemplateFuncMap()).
		ParseFS(templateFS, "templates/base.html", "templates/"+name+".html")
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}

	tc.templates[name] = tmpl
	return tmpl, nil
}

// RenderTemplate renders into a buffer first so a failing template never sends a partial page.
func (tc *TemplateCache) RenderTemplate(w http.ResponseWriter, status int, name string, data interface{}) error {
	tmpl, err := tc.GetTemplate(name)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base.html", data); err != nil {
		return fmt.Errorf("executing template %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err = buf.WriteTo(w)
	return err
}

// TemplateData is the common data every page receives.
type TemplateData struct {
	Title           string
	UserEmail       string
	IsAuthenticated bool
	CSRFToken       string
	OAuthEnabled    bool
	PageData        interface{}
}

// AlertBox renders an alert message; message is escaped.
func AlertBox(alertType, message string) template.HTML {
	return template.HTML(fmt.Sprintf(`<div class="alert alert-%s">%s</div>`,
		template.HTMLEscapeString(alertType), template.HTMLEscapeString(message)))
}

// ConditionalClass adds a CSS class conditionally
func ConditionalClass(baseClass, conditionalClass string, condition bool) string {
	if condition {
		return baseClass + " " + conditionalClass
	}
	return baseClass
}

// Truncate shortens text to length runes
func Truncate(text string, length int) string {
	runes := []rune(text)
	if len(runes) <= length {
		return text
	}
	return string(runes[:length]) + "..."
}

// Paragraphs splits text on blank-line-separated or single newlines, dropping empty lines.
func Paragraphs(text string) []string {
	var out []string
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// Stars renders a 1-5 rating as filled and empty stars.
func Stars(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
}

// OverlayStyle is the inline background style for image tiles with a dark overlay.
func OverlayStyle(image string, opacity float64) template.CSS {
	style := fmt.Sprintf("--overlay-opacity: %.2f;", opacity)
	if image != "" && !strings.ContainsAny(image, "'\"()\\ \n\r") {
		style += fmt.Sprintf(" background-image: url('%s');", image)
	}
	return template.CSS(style)
}

// ContactHref trusts tel: and mailto: links built from contact info, which html/template
// would otherwise replace.
func ContactHref(href string) template.URL {
	if strings.HasPrefix(href, "tel:") || strings.HasPrefix(href, "mailto:") {
		if !strings.ContainsAny(href, "\"'<> ") {
			return template.URL(href)
		}
	}
	return template.URL("#")
}

func CreateTemplateFuncMap() template.FuncMap {
	return template.FuncMap{
		"alertBox":         AlertBox,
		"conditionalClass": ConditionalClass,
		"truncate":         Truncate,
		"paragraphs":       Paragraphs,
		"stars":            Stars,
		"overlayStyle":     OverlayStyle,
		"contactHref":      ContactHref,
		"join":             strings.Join,
		"inc":              func(i int) int { return i + 1 },
	}
}

func staticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	files := http.FileServer(http.FS(sub))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Cache-Control", "public, max-age=3600")
		files.ServeHTTP(w, r)
	})
}
