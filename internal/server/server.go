package server

import (
	"net/http"

	"nutrilog/internal/service"
	"nutrilog/internal/tmpl"
)

// Deps holds all handler dependencies.
type Deps struct {
	Days      *service.DayService
	Exports   *service.ExportService
	Templates *tmpl.Templates
	StaticDir string
}

// Router builds the route table.
func (d *Deps) Router() *http.ServeMux {
	mux := http.NewServeMux()

	// Static files
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(d.StaticDir))))

	// Pages (return full HTML)
	mux.HandleFunc("GET /", d.HandleHome)
	mux.HandleFunc("GET /day/{date}", d.HandleDayPage)

	// API endpoints
	mux.HandleFunc("GET /api/days/{date}", d.HandleGetDay)
	mux.HandleFunc("POST /api/days/{date}/entries", d.HandleAddEntry)
	mux.HandleFunc("DELETE /api/days/{date}/entries/{entryId}", d.HandleDeleteEntry)
	mux.HandleFunc("PUT /api/days/{date}/workout", d.HandleSetWorkout)

	// Backup
	mux.HandleFunc("GET /api/export", d.HandleExport)
	mux.HandleFunc("POST /api/import", d.HandleImport)

	return mux
}
