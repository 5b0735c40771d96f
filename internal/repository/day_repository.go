package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"nutrilog/internal/model"
)

// DayRepository persists one JSON-encoded DayRecord per calendar date
// under the versioned key namespace.
type DayRepository struct {
	db *gorm.DB
}

func NewDayRepository(db *gorm.DB) *DayRepository {
	return &DayRepository{db: db}
}

// Load returns the record stored for a date. Absent or unparsable values
// yield the empty default; malformed stored data is discarded without
// surfacing an error.
func (r *DayRepository) Load(ctx context.Context, date string) (*model.DayRecord, error) {
	var row DayRow
	err := r.db.WithContext(ctx).First(&row, "key = ?", model.DayKey(date)).Error
	switch {
	case err == nil:
		var record model.DayRecord
		if jsonErr := json.Unmarshal([]byte(row.Value), &record); jsonErr != nil {
			return model.EmptyDay(), nil
		}
		if record.Entries == nil {
			record.Entries = []model.Entry{}
		}
		return &record, nil
	case err == gorm.ErrRecordNotFound:
		return model.EmptyDay(), nil
	default:
		return nil, fmt.Errorf("load day %s: %w", date, err)
	}
}

// Save replaces whatever was stored for the date with the full record.
// Last write wins; there is no merge.
func (r *DayRepository) Save(ctx context.Context, date string, record *model.DayRecord) error {
	value, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode day %s: %w", date, err)
	}
	row := DayRow{Key: model.DayKey(date), Value: string(value)}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&row).Error; err != nil {
		return fmt.Errorf("save day %s: %w", date, err)
	}
	return nil
}

// ListAll returns every row in the day-record namespace, ordered by key.
func (r *DayRepository) ListAll(ctx context.Context) ([]DayRow, error) {
	var rows []DayRow
	if err := r.db.WithContext(ctx).
		Where("key LIKE ?", model.KeyPrefix+"%").
		Order("key ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list days: %w", err)
	}
	return rows, nil
}

// ReplaceRows overwrites the given rows in a single transaction. Either
// every row is applied or none is.
func (r *DayRepository) ReplaceRows(ctx context.Context, rows []DayRow) error {
	if len(rows) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range rows {
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).
				Create(&rows[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("replace days: %w", err)
	}
	return nil
}
