package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"nutrilog/internal/model"
	"nutrilog/internal/repository"
)

// ErrBadImport reports an import file that could not be parsed. Nothing
// is written when it is returned.
var ErrBadImport = errors.New("import file is not a valid backup")

// ExportService moves the whole day-record namespace in and out of a
// single JSON mapping of storage keys to records.
type ExportService struct {
	dayRepo *repository.DayRepository
}

func NewExportService(dayRepo *repository.DayRepository) *ExportService {
	return &ExportService{dayRepo: dayRepo}
}

// Export writes every stored day as one JSON object keyed by the full
// namespaced key. Rows whose stored value no longer parses are dropped,
// matching Load semantics.
func (s *ExportService) Export(ctx context.Context, w io.Writer) error {
	rows, err := s.dayRepo.ListAll(ctx)
	if err != nil {
		return err
	}

	dump := make(map[string]json.RawMessage, len(rows))
	for _, row := range rows {
		if _, ok := model.DateFromKey(row.Key); !ok {
			continue
		}
		var record model.DayRecord
		if err := json.Unmarshal([]byte(row.Value), &record); err != nil {
			continue
		}
		if record.Entries == nil {
			record.Entries = []model.Entry{}
		}
		value, err := json.Marshal(&record)
		if err != nil {
			return fmt.Errorf("encode %s: %w", row.Key, err)
		}
		dump[row.Key] = value
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(dump)
}

// Import parses a JSON mapping and overwrites every matching namespaced
// key in one transaction, returning the number of days applied. Keys
// outside the namespace and values that do not decode as day records are
// skipped. An unparsable file makes no changes.
func (s *ExportService) Import(ctx context.Context, r io.Reader) (int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("read import: %w", err)
	}

	var dump map[string]json.RawMessage
	if err := json.Unmarshal(data, &dump); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBadImport, err)
	}

	var rows []repository.DayRow
	for key, value := range dump {
		if _, ok := model.DateFromKey(key); !ok {
			continue
		}
		var record model.DayRecord
		if err := json.Unmarshal(value, &record); err != nil {
			continue
		}
		if record.Entries == nil {
			record.Entries = []model.Entry{}
		}
		encoded, err := json.Marshal(&record)
		if err != nil {
			return 0, fmt.Errorf("encode %s: %w", key, err)
		}
		rows = append(rows, repository.DayRow{Key: key, Value: string(encoded)})
	}

	if err := s.dayRepo.ReplaceRows(ctx, rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}
