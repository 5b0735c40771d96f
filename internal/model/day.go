package model

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the calendar-date form every record is keyed by.
const DateLayout = "2006-01-02"

// KeyPrefix is the versioned namespace all day records are stored under.
const KeyPrefix = "nutri:v1:day:"

// Entry is one logged food item. Entries are immutable after creation;
// the only mutations on a day are adding and removing whole entries.
type Entry struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
}

// UnmarshalJSON tolerates stored entries whose numeric fields are
// missing, null, or strings; anything that isn't a number reads as zero.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID       string          `json:"id"`
		Name     string          `json:"name"`
		Calories json.RawMessage `json:"calories"`
		Protein  json.RawMessage `json:"protein"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.ID = raw.ID
	e.Name = raw.Name
	e.Calories = asNumber(raw.Calories)
	e.Protein = asNumber(raw.Protein)
	return nil
}

func asNumber(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f
		}
	}
	return 0
}

// DayRecord bundles everything logged on one calendar date: food entries
// (newest first) and an optional free-text workout note.
type DayRecord struct {
	Entries []Entry `json:"entries"`
	Workout string  `json:"workout,omitempty"`
}

// EmptyDay is the default record for dates with nothing stored yet.
func EmptyDay() *DayRecord {
	return &DayRecord{Entries: []Entry{}}
}

// Totals are the per-day sums shown above the entry list.
type Totals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
}

// Totals sums calories and protein across all entries.
func (r *DayRecord) Totals() Totals {
	var t Totals
	for _, e := range r.Entries {
		t.Calories += e.Calories
		t.Protein += e.Protein
	}
	return t
}

// ParseDate validates a YYYY-MM-DD date string and returns its canonical
// form.
func ParseDate(s string) (string, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", err
	}
	return t.Format(DateLayout), nil
}

// DayKey builds the storage key for a date.
func DayKey(date string) string {
	return KeyPrefix + date
}

// DateFromKey extracts the date from a storage key, reporting whether the
// key belongs to the day-record namespace.
func DateFromKey(key string) (string, bool) {
	date, ok := strings.CutPrefix(key, KeyPrefix)
	if !ok {
		return "", false
	}
	if _, err := ParseDate(date); err != nil {
		return "", false
	}
	return date, true
}
