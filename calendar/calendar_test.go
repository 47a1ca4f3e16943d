package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bdl-cms/models"
)

func TestMonthGridShape(t *testing.T) {
	// March 2025 starts on a Saturday and ends on a Monday.
	grid := MonthGrid(2025, time.March, nil, time.UTC)

	require.Len(t, grid.Weeks, 6)
	for _, w := range grid.Weeks {
		require.Len(t, w, 7)
		assert.Equal(t, time.Monday, w[0].Date.Weekday())
	}
	assert.Equal(t, time.Date(2025, 2, 24, 0, 0, 0, 0, time.UTC), grid.Weeks[0][0].Date)
	assert.False(t, grid.Weeks[0][0].InMonth)
	assert.True(t, grid.Weeks[0][5].InMonth)
	assert.Equal(t, time.Date(2025, 4, 6, 0, 0, 0, 0, time.UTC), grid.Weeks[5][6].Date)
}

func TestMonthGridExactWeeks(t *testing.T) {
	// February 2021 runs Monday 1st to Sunday 28th.
	grid := MonthGrid(2021, time.February, nil, time.UTC)
	require.Len(t, grid.Weeks, 4)
	for _, w := range grid.Weeks {
		for _, d := range w {
			assert.True(t, d.InMonth)
		}
	}
}

func TestMonthGridPlacesEvents(t *testing.T) {
	events := []models.Event{
		{ID: 1, Title: "AG", StartsAt: time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC), EndsAt: time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC)},
		{ID: 2, Title: "Voyage", StartsAt: time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC), EndsAt: time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)},
		{ID: 3, Title: "Sans fin", StartsAt: time.Date(2025, 3, 20, 9, 0, 0, 0, time.UTC)},
	}
	grid := MonthGrid(2025, time.March, events, time.UTC)

	byDate := map[string][]uint{}
	for _, w := range grid.Weeks {
		for _, d := range w {
			for _, e := range d.Events {
				byDate[d.Date.Format("2006-01-02")] = append(byDate[d.Date.Format("2006-01-02")], e.ID)
			}
		}
	}

	assert.Equal(t, []uint{1}, byDate["2025-03-10"])
	assert.Equal(t, []uint{2}, byDate["2025-03-12"])
	assert.Equal(t, []uint{2}, byDate["2025-03-13"])
	assert.Equal(t, []uint{2}, byDate["2025-03-14"])
	assert.Nil(t, byDate["2025-03-15"])
	assert.Equal(t, []uint{3}, byDate["2025-03-20"])
	assert.Nil(t, byDate["2025-03-21"])
}

func TestRange(t *testing.T) {
	from, to := Range(2025, time.March, time.UTC)
	assert.Equal(t, time.Date(2025, 2, 24, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2025, 4, 7, 0, 0, 0, 0, time.UTC), to)
}

func TestICS(t *testing.T) {
	events := []models.Event{
		{ID: 1, Title: "Assemblée générale", Location: "CDI", StartsAt: time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC), EndsAt: time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC)},
		{ID: 2, Title: "Journée portes ouvertes", AllDay: true, StartsAt: time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)},
	}

	out := ICS(events, "https://bdl.example.org", "Agenda du BDL")

	assert.True(t, strings.HasPrefix(out, "BEGIN:VCALENDAR"))
	assert.Equal(t, 2, strings.Count(out, "BEGIN:VEVENT"))
	assert.Contains(t, out, "UID:event-1@bdl.example.org")
	assert.Contains(t, out, "SUMMARY:Assemblée générale")
	assert.Contains(t, out, "LOCATION:CDI")
	assert.Contains(t, out, "DTSTART;VALUE=DATE:20250315")
	assert.Contains(t, out, "DTEND;VALUE=DATE:20250316")
	assert.Contains(t, out, "https://bdl.example.org/evenements/2")
}

func TestICSEmpty(t *testing.T) {
	out := ICS(nil, "", "")
	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.NotContains(t, out, "BEGIN:VEVENT")
}
