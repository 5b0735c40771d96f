package service

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"nutrilog/internal/model"
	"nutrilog/internal/repository"
)

// SummaryService builds human-readable day summaries for Telegram
// notifications.
type SummaryService struct {
	dayRepo *repository.DayRepository
}

func NewSummaryService(dayRepo *repository.DayRepository) *SummaryService {
	return &SummaryService{dayRepo: dayRepo}
}

// DailySummary renders the totals, entries and workout note for a date
// as Telegram HTML.
func (s *SummaryService) DailySummary(ctx context.Context, date string) (string, error) {
	record, err := s.dayRepo.Load(ctx, date)
	if err != nil {
		return "", err
	}

	totals := record.Totals()

	var builder strings.Builder
	builder.WriteString("🍽 <b>Daily log</b>\n")
	builder.WriteString(fmt.Sprintf("🗓 %s\n\n", date))
	builder.WriteString(fmt.Sprintf("Σ <b>%s kcal</b> · <b>%s g protein</b>\n\n",
		formatAmount(totals.Calories), formatAmount(totals.Protein)))

	if len(record.Entries) == 0 {
		builder.WriteString("— nothing logged yet\n")
	} else {
		for _, entry := range record.Entries {
			builder.WriteString(fmt.Sprintf("• %s — %s kcal, %s g\n",
				html.EscapeString(entry.Name),
				formatAmount(entry.Calories),
				formatAmount(entry.Protein)))
		}
	}

	if record.Workout != "" {
		builder.WriteString(fmt.Sprintf("\n💪 %s\n", html.EscapeString(record.Workout)))
	}

	return strings.TrimSpace(builder.String()), nil
}

// Today is the current date key in the given location.
func Today(now time.Time, loc *time.Location) string {
	return now.In(loc).Format(model.DateLayout)
}

// formatAmount drops trailing zeros so whole numbers print bare.
func formatAmount(v float64) string {
	out := strings.TrimRight(fmt.Sprintf("%.1f", v), "0")
	return strings.TrimSuffix(out, ".")
}
