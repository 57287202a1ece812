package tracking

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/chronotes/backend/internal/domain/shared"
	"github.com/chronotes/backend/internal/domain/tracking"
)

var nanosPerHour = decimal.NewFromInt(int64(time.Hour))

// ReportService aggregates tracked time per category over a window
type ReportService struct {
	entryRepo tracking.TimeEntryRepository
}

// NewReportService creates a new ReportService
func NewReportService(entryRepo tracking.TimeEntryRepository) *ReportService {
	return &ReportService{entryRepo: entryRepo}
}

// Summary aggregates hours per category for entries intersecting [from, to).
// An entry straddling the window boundary contributes only the part inside.
func (s *ReportService) Summary(ctx context.Context, userID uuid.UUID, from, to time.Time) (*ReportResponse, error) {
	if !to.After(from) {
		return nil, shared.NewDomainError("INVALID_RANGE", "End date must be after start date")
	}

	entries, err := s.entryRepo.FindInRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	type bucket struct {
		name  string
		color string
		hours decimal.Decimal
		count int
	}
	buckets := make(map[uuid.UUID]*bucket)
	total := decimal.Zero

	for _, e := range entries {
		start := e.StartTime
		if start.Before(from) {
			start = from
		}
		end := e.EndTime
		if end.After(to) {
			end = to
		}
		if !end.After(start) {
			continue
		}

		hours := decimal.NewFromInt(int64(end.Sub(start))).Div(nanosPerHour)
		total = total.Add(hours)

		b, ok := buckets[e.CategoryID]
		if !ok {
			b = &bucket{}
			if e.Category != nil {
				b.name = e.Category.Name
				b.color = e.Category.Color
			}
			buckets[e.CategoryID] = b
		}
		b.hours = b.hours.Add(hours)
		b.count++
	}

	categories := make([]CategoryReport, 0, len(buckets))
	for id, b := range buckets {
		report := CategoryReport{
			CategoryID: id,
			Name:       b.name,
			Color:      b.color,
			Hours:      b.hours.Round(2),
			EntryCount: b.count,
		}
		if total.IsPositive() {
			report.Percentage = b.hours.Div(total).Mul(decimal.NewFromInt(100)).Round(1)
		}
		categories = append(categories, report)
	}

	// Largest share first, name as tiebreaker for stable output
	sort.Slice(categories, func(i, j int) bool {
		if !categories[i].Hours.Equal(categories[j].Hours) {
			return categories[i].Hours.GreaterThan(categories[j].Hours)
		}
		return categories[i].Name < categories[j].Name
	})

	return &ReportResponse{
		From:       from,
		To:         to,
		TotalHours: total.Round(2),
		EntryCount: len(entries),
		Categories: categories,
	}, nil
}
