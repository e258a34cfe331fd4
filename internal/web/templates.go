package web

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/yucheng/cardvault-backend/internal/app/model"
	"github.com/yucheng/cardvault-backend/pkg/logger"
	webembed "github.com/yucheng/cardvault-backend/web"
)

// Templates holds parsed HTML templates, one per page, each combined with
// the shared layout.
type Templates struct {
	templates map[string]*template.Template
}

// FuncMap returns the template function map.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"statusName": func(status model.ItemStatus) string {
			switch status {
			case model.StatusInStock:
				return "In Stock"
			case model.StatusShipping:
				return "Shipping"
			case model.StatusGrading:
				return "Grading"
			case model.StatusSold:
				return "Sold"
			default:
				return string(status)
			}
		},
		"cardTypeName": func(cardType model.CardType) string {
			switch cardType {
			case model.CardTypeSport:
				return "Sport"
			case model.CardTypePokemon:
				return "Pokemon"
			default:
				return string(cardType)
			}
		},
		"money": func(amount float64) string {
			return fmt.Sprintf("$%.2f", amount)
		},
	}
}

// LoadTemplates parses all page templates with the layout.
func LoadTemplates() (*Templates, error) {
	tfs := webembed.TemplatesFS()

	layoutBytes, err := fs.ReadFile(tfs, "layout.html")
	if err != nil {
		return nil, fmt.Errorf("reading layout template: %w", err)
	}

	pages := []string{
		"dashboard.html",
		"card_detail.html",
	}

	ts := &Templates{templates: make(map[string]*template.Template)}

	for _, page := range pages {
		pageBytes, err := fs.ReadFile(tfs, page)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", page, err)
		}

		tmpl := template.New(page).Funcs(FuncMap())
		tmpl, err = tmpl.Parse(string(layoutBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing layout for %s: %w", page, err)
		}
		tmpl, err = tmpl.Parse(string(pageBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}

		ts.templates[page] = tmpl
	}

	return ts, nil
}

// Render renders a template with the given data.
func (ts *Templates) Render(w http.ResponseWriter, name string, data any) {
	tmpl, ok := ts.templates[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		logger.Error("Failed to render template", err, map[string]interface{}{
			"template": name,
		})
	}
}

// PageData is the base data passed to all templates.
type PageData struct {
	Title     string
	Flash     string
	FlashType string
}
