package server

import (
	"net/http"
	"time"

	"nutrilog/internal/model"
	"nutrilog/internal/service"
)

// windowDays is how many dates the strip at the top of the page covers.
const windowDays = 14

// HandleHome redirects to today's page.
func (d *Deps) HandleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	today := time.Now().Format(model.DateLayout)
	http.Redirect(w, r, "/day/"+today, http.StatusFound)
}

// DayTab is one cell of the date strip.
type DayTab struct {
	Date     string
	Label    string
	Selected bool
	IsToday  bool
}

// DayPageData is the template data for the logging page.
type DayPageData struct {
	Date    string
	Display string
	IsToday bool
	Record  *model.DayRecord
	Totals  model.Totals
	Window  []DayTab
}

// HandleDayPage renders the logging page for one date.
func (d *Deps) HandleDayPage(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	today := now.Format(model.DateLayout)

	date, err := model.ParseDate(r.PathValue("date"))
	if err != nil {
		http.Redirect(w, r, "/day/"+today, http.StatusFound)
		return
	}

	record, err := d.Days.Day(r.Context(), date)
	if err != nil {
		http.Error(w, "Failed to load day", http.StatusInternalServerError)
		return
	}

	window := make([]DayTab, 0, windowDays)
	for _, wd := range service.DateWindow(windowDays, now) {
		t, _ := time.Parse(model.DateLayout, wd)
		window = append(window, DayTab{
			Date:     wd,
			Label:    t.Format("Mon 2"),
			Selected: wd == date,
			IsToday:  wd == today,
		})
	}

	display := date
	if t, err := time.Parse(model.DateLayout, date); err == nil {
		display = t.Format("Monday, Jan 2")
	}

	data := DayPageData{
		Date:    date,
		Display: display,
		IsToday: date == today,
		Record:  record,
		Totals:  record.Totals(),
		Window:  window,
	}

	d.render(w, "day.html", data)
}

func (d *Deps) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := d.Templates.ExecuteTemplate(w, name, data); err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
	}
}
