package tracking

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/chronotes/backend/internal/domain/tracking"
)

func TestReportServiceSummary(t *testing.T) {
	userID := uuid.New()
	workID := uuid.New()
	restID := uuid.New()

	work, err := tracking.NewCategory(userID, "Work", "#112233")
	require.NoError(t, err)
	rest, err := tracking.NewCategory(userID, "Rest", "#445566")
	require.NoError(t, err)

	entryWith := func(categoryID uuid.UUID, category *tracking.Category, start, end string) *tracking.TimeEntry {
		e := existingEntry(t, userID, categoryID, start, end)
		e.Category = category
		return e
	}

	t.Run("splits hours per category with percentages", func(t *testing.T) {
		entryRepo := new(MockTimeEntryRepository)
		service := NewReportService(entryRepo)

		from := dayTime(t, "00:00")
		to := dayTime(t, "23:00")
		entryRepo.On("FindInRange", mock.Anything, userID, from, to).Return([]*tracking.TimeEntry{
			entryWith(workID, work, "09:00", "12:00"),
			entryWith(workID, work, "13:00", "16:00"),
			entryWith(restID, rest, "12:00", "13:00"),
		}, nil)

		report, err := service.Summary(context.Background(), userID, from, to)

		require.NoError(t, err)
		assert.Equal(t, "7", report.TotalHours.String())
		assert.Equal(t, 3, report.EntryCount)
		require.Len(t, report.Categories, 2)

		assert.Equal(t, "Work", report.Categories[0].Name)
		assert.Equal(t, "6", report.Categories[0].Hours.String())
		assert.Equal(t, "85.7", report.Categories[0].Percentage.String())
		assert.Equal(t, 2, report.Categories[0].EntryCount)

		assert.Equal(t, "Rest", report.Categories[1].Name)
		assert.Equal(t, "14.3", report.Categories[1].Percentage.String())
	})

	t.Run("clamps entries straddling the window", func(t *testing.T) {
		entryRepo := new(MockTimeEntryRepository)
		service := NewReportService(entryRepo)

		from := dayTime(t, "10:00")
		to := dayTime(t, "11:00")
		entryRepo.On("FindInRange", mock.Anything, userID, from, to).Return([]*tracking.TimeEntry{
			entryWith(workID, work, "09:00", "12:00"),
		}, nil)

		report, err := service.Summary(context.Background(), userID, from, to)

		require.NoError(t, err)
		assert.Equal(t, "1", report.TotalHours.String())
		require.Len(t, report.Categories, 1)
		assert.Equal(t, "100", report.Categories[0].Percentage.String())
	})

	t.Run("empty window yields an empty report", func(t *testing.T) {
		entryRepo := new(MockTimeEntryRepository)
		service := NewReportService(entryRepo)

		from := dayTime(t, "10:00")
		to := dayTime(t, "11:00")
		entryRepo.On("FindInRange", mock.Anything, userID, from, to).Return([]*tracking.TimeEntry{}, nil)

		report, err := service.Summary(context.Background(), userID, from, to)

		require.NoError(t, err)
		assert.True(t, report.TotalHours.IsZero())
		assert.Empty(t, report.Categories)
	})

	t.Run("inverted range is rejected", func(t *testing.T) {
		service := NewReportService(new(MockTimeEntryRepository))

		_, err := service.Summary(context.Background(), userID, dayTime(t, "11:00"), dayTime(t, "10:00"))
		assert.Error(t, err)
	})
}
