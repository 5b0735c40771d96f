package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"nutrilog/internal/model"
	"nutrilog/internal/repository"
)

// ErrInvalidEntry rejects submissions with an empty name or with neither
// calories nor protein above zero.
var ErrInvalidEntry = errors.New("entry needs a name and a positive calorie or protein value")

// ErrEntryNotFound reports a delete for an id the day does not contain.
var ErrEntryNotFound = errors.New("entry not found")

// EntryInput represents data required to log a food item.
type EntryInput struct {
	Name     string
	Calories float64
	Protein  float64
}

// DayService wraps day-record business logic: adding and removing
// entries, the workout note, and the date strip shown in the UI.
type DayService struct {
	dayRepo *repository.DayRepository
}

func NewDayService(dayRepo *repository.DayRepository) *DayService {
	return &DayService{dayRepo: dayRepo}
}

// Day returns the record for a date, the empty default if nothing is
// stored.
func (s *DayService) Day(ctx context.Context, date string) (*model.DayRecord, error) {
	return s.dayRepo.Load(ctx, date)
}

// AddEntry validates the input, prepends a new entry (newest first) and
// persists the whole record. Invalid input leaves the record unchanged.
func (s *DayService) AddEntry(ctx context.Context, date string, input EntryInput) (*model.DayRecord, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || input.Calories < 0 || input.Protein < 0 {
		return nil, ErrInvalidEntry
	}
	if input.Calories == 0 && input.Protein == 0 {
		return nil, ErrInvalidEntry
	}

	record, err := s.dayRepo.Load(ctx, date)
	if err != nil {
		return nil, err
	}

	entry := model.Entry{
		ID:       uuid.NewString(),
		Name:     name,
		Calories: input.Calories,
		Protein:  input.Protein,
	}
	record.Entries = append([]model.Entry{entry}, record.Entries...)

	if err := s.dayRepo.Save(ctx, date, record); err != nil {
		return nil, err
	}
	return record, nil
}

// RemoveEntry deletes one entry by id and persists the record.
func (s *DayService) RemoveEntry(ctx context.Context, date, entryID string) (*model.DayRecord, error) {
	record, err := s.dayRepo.Load(ctx, date)
	if err != nil {
		return nil, err
	}

	kept := record.Entries[:0]
	found := false
	for _, e := range record.Entries {
		if e.ID == entryID {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	if !found {
		return nil, ErrEntryNotFound
	}
	record.Entries = kept

	if err := s.dayRepo.Save(ctx, date, record); err != nil {
		return nil, err
	}
	return record, nil
}

// SetWorkout replaces the free-text workout note for a date.
func (s *DayService) SetWorkout(ctx context.Context, date, workout string) (*model.DayRecord, error) {
	record, err := s.dayRepo.Load(ctx, date)
	if err != nil {
		return nil, err
	}

	record.Workout = strings.TrimSpace(workout)

	if err := s.dayRepo.Save(ctx, date, record); err != nil {
		return nil, err
	}
	return record, nil
}

// DateWindow returns n consecutive date keys ending at today, newest
// first.
func DateWindow(n int, today time.Time) []string {
	dates := make([]string, 0, n)
	for i := 0; i < n; i++ {
		dates = append(dates, today.AddDate(0, 0, -i).Format(model.DateLayout))
	}
	return dates
}
