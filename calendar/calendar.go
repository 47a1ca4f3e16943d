// Package calendar lays events out on a month grid and exports them as iCalendar.
package calendar

import (
	"time"

	"bdl-cms/models"
)

type Day struct {
	Date    time.Time      `json:"date"`
	InMonth bool           `json:"in_month"`
	Events  []models.Event `json:"events"`
}

type Month struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Weeks [][]Day    `json:"weeks"`
}

// MonthGrid returns the weeks, Monday first, covering the given month. Days of
// the neighbouring months fill the first and last week.
func MonthGrid(year int, month time.Month, events []models.Event, loc *time.Location) Month {
	if loc == nil {
		loc = time.UTC
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	last := first.AddDate(0, 1, -1)
	start := first.AddDate(0, 0, -mondayIndex(first.Weekday()))
	end := last.AddDate(0, 0, 6-mondayIndex(last.Weekday()))

	grid := Month{Year: first.Year(), Month: first.Month()}
	var week []Day
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		next := d.AddDate(0, 0, 1)
		day := Day{Date: d, InMonth: d.Month() == first.Month(), Events: []models.Event{}}
		for _, e := range events {
			if e.StartsAt.Before(next) && e.End().After(d) {
				day.Events = append(day.Events, e)
			}
		}

		week = append(week, day)
		if len(week) == 7 {
			grid.Weeks = append(grid.Weeks, week)
			week = nil
		}
	}
	return grid
}

// Range is the time span covered by the grid of a month.
func Range(year int, month time.Month, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	last := first.AddDate(0, 1, -1)
	return first.AddDate(0, 0, -mondayIndex(first.Weekday())),
		last.AddDate(0, 0, 7-mondayIndex(last.Weekday()))
}

func mondayIndex(w time.Weekday) int {
	return (int(w) + 6) % 7
}
