package model

import (
	"encoding/json"
	"testing"
)

func TestTotals(t *testing.T) {
	t.Run("sums calories and protein", func(t *testing.T) {
		record := DayRecord{Entries: []Entry{
			{ID: "a", Name: "oats", Calories: 350, Protein: 12.5},
			{ID: "b", Name: "eggs", Calories: 210, Protein: 18},
		}}
		totals := record.Totals()
		if totals.Calories != 560 {
			t.Errorf("calories = %v, want 560", totals.Calories)
		}
		if totals.Protein != 30.5 {
			t.Errorf("protein = %v, want 30.5", totals.Protein)
		}
	})

	t.Run("empty record totals zero", func(t *testing.T) {
		totals := EmptyDay().Totals()
		if totals.Calories != 0 || totals.Protein != 0 {
			t.Errorf("totals = %+v, want zeros", totals)
		}
	})
}

func TestEntryUnmarshalLenient(t *testing.T) {
	cases := []struct {
		name         string
		json         string
		wantCalories float64
		wantProtein  float64
	}{
		{"plain numbers", `{"id":"x","name":"rice","calories":200,"protein":4}`, 200, 4},
		{"missing fields", `{"id":"x","name":"rice"}`, 0, 0},
		{"null fields", `{"id":"x","name":"rice","calories":null,"protein":null}`, 0, 0},
		{"numeric strings", `{"id":"x","name":"rice","calories":"200","protein":" 4.5 "}`, 200, 4.5},
		{"garbage strings", `{"id":"x","name":"rice","calories":"lots","protein":{}}`, 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var e Entry
			if err := json.Unmarshal([]byte(tc.json), &e); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if e.Calories != tc.wantCalories {
				t.Errorf("calories = %v, want %v", e.Calories, tc.wantCalories)
			}
			if e.Protein != tc.wantProtein {
				t.Errorf("protein = %v, want %v", e.Protein, tc.wantProtein)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	if _, err := ParseDate("2026-08-23"); err != nil {
		t.Errorf("valid date rejected: %v", err)
	}
	for _, bad := range []string{"", "2026-8-23", "23-08-2026", "2026-13-01", "yesterday"} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("ParseDate(%q) accepted, want error", bad)
		}
	}
}

func TestDateFromKey(t *testing.T) {
	date, ok := DateFromKey("nutri:v1:day:2026-08-23")
	if !ok || date != "2026-08-23" {
		t.Errorf("got (%q, %v), want (2026-08-23, true)", date, ok)
	}

	for _, bad := range []string{
		"nutri:v1:day:not-a-date",
		"nutri:v2:day:2026-08-23",
		"other:2026-08-23",
		"",
	} {
		if _, ok := DateFromKey(bad); ok {
			t.Errorf("DateFromKey(%q) matched, want no match", bad)
		}
	}
}
