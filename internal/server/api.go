package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"nutrilog/internal/model"
	"nutrilog/internal/service"
)

// HandleGetDay returns one day's record plus its totals as JSON.
func (d *Deps) HandleGetDay(w http.ResponseWriter, r *http.Request) {
	date, ok := pathDate(w, r)
	if !ok {
		return
	}

	record, err := d.Days.Day(r.Context(), date)
	if err != nil {
		jsonError(w, "Failed to load day", http.StatusInternalServerError)
		return
	}

	jsonOK(w, map[string]any{
		"date":   date,
		"record": record,
		"totals": record.Totals(),
	})
}

// AddEntryRequest is the JSON body for POST entries.
type AddEntryRequest struct {
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
}

// HandleAddEntry logs a food item for a date.
func (d *Deps) HandleAddEntry(w http.ResponseWriter, r *http.Request) {
	date, ok := pathDate(w, r)
	if !ok {
		return
	}

	var req AddEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	record, err := d.Days.AddEntry(r.Context(), date, service.EntryInput{
		Name:     req.Name,
		Calories: req.Calories,
		Protein:  req.Protein,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidEntry) {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		jsonError(w, "Failed to save entry", http.StatusInternalServerError)
		return
	}

	jsonOK(w, map[string]any{
		"success": true,
		"record":  record,
		"totals":  record.Totals(),
	})
}

// HandleDeleteEntry removes one entry from a day.
func (d *Deps) HandleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	date, ok := pathDate(w, r)
	if !ok {
		return
	}
	entryID := r.PathValue("entryId")

	record, err := d.Days.RemoveEntry(r.Context(), date, entryID)
	if err != nil {
		if errors.Is(err, service.ErrEntryNotFound) {
			jsonError(w, "Entry not found", http.StatusNotFound)
			return
		}
		jsonError(w, "Failed to delete entry", http.StatusInternalServerError)
		return
	}

	jsonOK(w, map[string]any{
		"success": true,
		"record":  record,
		"totals":  record.Totals(),
	})
}

// SetWorkoutRequest is the JSON body for PUT workout.
type SetWorkoutRequest struct {
	Workout string `json:"workout"`
}

// HandleSetWorkout replaces the workout note for a date.
func (d *Deps) HandleSetWorkout(w http.ResponseWriter, r *http.Request) {
	date, ok := pathDate(w, r)
	if !ok {
		return
	}

	var req SetWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	record, err := d.Days.SetWorkout(r.Context(), date, req.Workout)
	if err != nil {
		jsonError(w, "Failed to save workout", http.StatusInternalServerError)
		return
	}

	jsonOK(w, map[string]any{"success": true, "record": record})
}

// HandleExport offers every stored day as a JSON file download.
func (d *Deps) HandleExport(w http.ResponseWriter, r *http.Request) {
	filename := fmt.Sprintf("nutrilog-%s.json", time.Now().Format(model.DateLayout))
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := d.Exports.Export(r.Context(), w); err != nil {
		// Status line already sent, so just log.
		log.Printf("export: %v", err)
	}
}

// HandleImport restores days from an uploaded backup file.
func (d *Deps) HandleImport(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		jsonError(w, "Failed to parse upload", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "No file uploaded", http.StatusBadRequest)
		return
	}
	defer file.Close()

	imported, err := d.Exports.Import(r.Context(), file)
	if err != nil {
		if errors.Is(err, service.ErrBadImport) {
			jsonError(w, "Import file is not a valid backup", http.StatusBadRequest)
			return
		}
		jsonError(w, "Failed to import", http.StatusInternalServerError)
		return
	}

	jsonOK(w, map[string]any{"success": true, "imported": imported})
}

// pathDate validates the {date} path value, answering 400 on failure.
func pathDate(w http.ResponseWriter, r *http.Request) (string, bool) {
	date, err := model.ParseDate(r.PathValue("date"))
	if err != nil {
		jsonError(w, "Invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
		return "", false
	}
	return date, true
}

// --- JSON helpers ---

func jsonOK(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
