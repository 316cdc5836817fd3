package web

import (
	"embed"
	"fmt"
	"html/template"

	"shembeldon-league/internal/rules"

	"github.com/unrolled/render"
)

//go:embed templates/*.html
var templatesFS embed.FS

// NewRenderer builds the JSON and HTML renderer with the embedded templates.
func NewRenderer(development bool) *render.Render {
	return render.New(render.Options{
		Directory:     "templates",
		FileSystem:    &render.EmbedFileSystem{FS: templatesFS},
		Extensions:    []string{".html"},
		Layout:        "layout",
		IndentJSON:    development,
		IsDevelopment: false,
		Funcs: []template.FuncMap{{
			"diff":  rules.FormatDiff,
			"score": rules.ScoreLine,
			"pct":   func(v float64) string { return fmt.Sprintf("%.0f%%", v) },
		}},
	})
}
