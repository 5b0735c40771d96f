package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"nutrilog/internal/model"
	"nutrilog/internal/repository"
)

func newTestExportService(t *testing.T) (*ExportService, *DayService) {
	t.Helper()
	db, err := repository.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	dayRepo := repository.NewDayRepository(db)
	return NewExportService(dayRepo), NewDayService(dayRepo)
}

func exportMap(t *testing.T, svc *ExportService) map[string]json.RawMessage {
	t.Helper()
	var buf bytes.Buffer
	if err := svc.Export(context.Background(), &buf); err != nil {
		t.Fatalf("export: %v", err)
	}
	var dump map[string]json.RawMessage
	if err := json.Unmarshal(buf.Bytes(), &dump); err != nil {
		t.Fatalf("decode export: %v", err)
	}
	return dump
}

func TestExportImportRoundTrip(t *testing.T) {
	src, days := newTestExportService(t)
	ctx := context.Background()

	if _, err := days.AddEntry(ctx, "2026-08-22", EntryInput{Name: "oats", Calories: 350, Protein: 12}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := days.AddEntry(ctx, "2026-08-23", EntryInput{Name: "eggs", Calories: 210, Protein: 18}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := days.SetWorkout(ctx, "2026-08-23", "5k run"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	first := exportMap(t, src)
	if len(first) != 2 {
		t.Fatalf("export has %d keys, want 2", len(first))
	}

	var buf bytes.Buffer
	if err := src.Export(ctx, &buf); err != nil {
		t.Fatalf("export: %v", err)
	}

	// Import into a fresh store and export again.
	dst, _ := newTestExportService(t)
	imported, err := dst.Import(ctx, &buf)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if imported != 2 {
		t.Errorf("imported = %d, want 2", imported)
	}

	second := exportMap(t, dst)
	if len(first) != len(second) {
		t.Fatalf("round trip changed key count: %d -> %d", len(first), len(second))
	}
	for key, want := range first {
		var a, b model.DayRecord
		if err := json.Unmarshal(want, &a); err != nil {
			t.Fatalf("decode %s: %v", key, err)
		}
		if err := json.Unmarshal(second[key], &b); err != nil {
			t.Fatalf("decode %s after round trip: %v", key, err)
		}
		if !reflect.DeepEqual(a, b) {
			t.Errorf("%s changed across round trip: %+v vs %+v", key, a, b)
		}
	}
}

func TestImportBadFileChangesNothing(t *testing.T) {
	svc, days := newTestExportService(t)
	ctx := context.Background()

	if _, err := days.AddEntry(ctx, "2026-08-23", EntryInput{Name: "oats", Calories: 350}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	before := exportMap(t, svc)

	for _, bad := range []string{"", "not json", `["a","b"]`, `{"truncated":`} {
		if _, err := svc.Import(ctx, strings.NewReader(bad)); !errors.Is(err, ErrBadImport) {
			t.Errorf("Import(%q) err = %v, want ErrBadImport", bad, err)
		}
	}

	after := exportMap(t, svc)
	if !reflect.DeepEqual(before, after) {
		t.Errorf("store changed after failed imports")
	}
}

func TestImportSkipsForeignKeys(t *testing.T) {
	svc, _ := newTestExportService(t)
	ctx := context.Background()

	payload := `{
		"nutri:v1:day:2026-08-23": {"entries":[{"id":"a","name":"oats","calories":350,"protein":12}]},
		"nutri:v1:day:not-a-date": {"entries":[]},
		"other:key": {"entries":[]},
		"nutri:v1:day:2026-08-24": "not a record"
	}`

	imported, err := svc.Import(ctx, strings.NewReader(payload))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if imported != 1 {
		t.Errorf("imported = %d, want 1", imported)
	}

	dump := exportMap(t, svc)
	if len(dump) != 1 {
		t.Fatalf("store has %d keys, want 1", len(dump))
	}
	if _, ok := dump["nutri:v1:day:2026-08-23"]; !ok {
		t.Errorf("expected key missing, got %v", dump)
	}
}

func TestExportDropsMalformedRows(t *testing.T) {
	db, err := repository.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	dayRepo := repository.NewDayRepository(db)
	svc := NewExportService(dayRepo)
	ctx := context.Background()

	if err := dayRepo.Save(ctx, "2026-08-23", model.EmptyDay()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	broken := []repository.DayRow{{Key: model.DayKey("2026-08-24"), Value: "{broken"}}
	if err := dayRepo.ReplaceRows(ctx, broken); err != nil {
		t.Fatalf("seed broken: %v", err)
	}

	dump := exportMap(t, svc)
	if len(dump) != 1 {
		t.Errorf("export has %d keys, want malformed row dropped", len(dump))
	}
}
