package studio

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fullstack-starter/internal/logger"
)

// Handler serves the read-only database inspection UI.
type Handler struct {
	Inspector Inspector
	Logger    *logger.Logger
	RowLimit  int
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Index)
	r.Get("/tables/{name}", h.Table)
}

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	tables, err := h.Inspector.Tables(r.Context())
	if err != nil {
		h.Logger.Error("STUDIO", fmt.Sprintf("Failed to list tables: %v", err))
		http.Error(w, "failed to list tables", http.StatusInternalServerError)
		return
	}

	h.render(w, indexTemplate, map[string]any{"Tables": tables})
}

func (h *Handler) Table(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	ctx := r.Context()

	tables, err := h.Inspector.Tables(ctx)
	if err != nil {
		h.Logger.Error("STUDIO", fmt.Sprintf("Failed to list tables: %v", err))
		http.Error(w, "failed to list tables", http.StatusInternalServerError)
		return
	}
	if !contains(tables, name) {
		http.Error(w, "unknown table: "+name, http.StatusNotFound)
		return
	}

	columns, err := h.Inspector.Columns(ctx, name)
	if err != nil {
		h.Logger.Error("STUDIO", fmt.Sprintf("Failed to inspect %s: %v", name, err))
		http.Error(w, "failed to inspect table", http.StatusInternalServerError)
		return
	}

	limit := h.RowLimit
	if limit <= 0 {
		limit = 50
	}
	rows, err := h.Inspector.Rows(ctx, name, limit)
	if err != nil {
		h.Logger.Error("STUDIO", fmt.Sprintf("Failed to read rows of %s: %v", name, err))
		http.Error(w, "failed to read rows", http.StatusInternalServerError)
		return
	}

	h.render(w, tableTemplate, map[string]any{
		"Name":    name,
		"Columns": columns,
		"Rows":    rows,
		"Limit":   limit,
	})
}

func (h *Handler) render(w http.ResponseWriter, tpl *template.Template, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tpl.Execute(w, data); err != nil {
		h.Logger.Error("STUDIO", fmt.Sprintf("Template render failed: %v", err))
	}
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

const pageStyle = `<style>
body { font-family: sans-serif; margin: 2rem; }
table { border-collapse: collapse; margin-top: 1rem; }
th, td { border: 1px solid #ccc; padding: 0.3rem 0.6rem; text-align: left; }
th { background: #f4f4f4; }
</style>`

var indexTemplate = template.Must(template.New("index").Parse(`<!doctype html>
<html><head><title>Database Studio</title>` + pageStyle + `</head>
<body>
<h1>Database Studio</h1>
<ul>
{{range .Tables}}<li><a href="/tables/{{.}}">{{.}}</a></li>
{{else}}<li>no tables</li>
{{end}}</ul>
</body></html>
`))

var tableTemplate = template.Must(template.New("table").Parse(`<!doctype html>
<html><head><title>{{.Name}}</title>` + pageStyle + `</head>
<body>
<p><a href="/">&larr; tables</a></p>
<h1>{{.Name}}</h1>
<h2>Columns</h2>
<table>
<tr><th>name</th><th>type</th><th>nullable</th><th>default</th></tr>
{{range .Columns}}<tr><td>{{.Name}}</td><td>{{.Type}}</td><td>{{.Nullable}}</td><td>{{.Default}}</td></tr>
{{end}}</table>
<h2>Rows (first {{.Limit}})</h2>
<table>
<tr>{{range .Rows.Columns}}<th>{{.}}</th>{{end}}</tr>
{{range .Rows.Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</table>
</body></html>
`))
