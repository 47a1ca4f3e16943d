package calendar

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"bdl-cms/models"
)

const productID = "-//Bureau des Lyceens//Agenda//FR"

// ICS exports events as a VCALENDAR document. siteURL is used for the event
// UIDs and links.
func ICS(events []models.Event, siteURL, name string) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)
	if name != "" {
		cal.SetXWRCalName(name)
	}

	host := "localhost"
	if u, err := url.Parse(siteURL); err == nil && u.Hostname() != "" {
		host = u.Hostname()
	}
	base := strings.TrimRight(siteURL, "/")

	for _, e := range events {
		ev := cal.AddEvent(fmt.Sprintf("event-%d@%s", e.ID, host))

		stamp := e.UpdatedAt
		if stamp.IsZero() {
			stamp = time.Now()
		}
		ev.SetDtStampTime(stamp)
		if !e.CreatedAt.IsZero() {
			ev.SetCreatedTime(e.CreatedAt)
		}
		if !e.UpdatedAt.IsZero() {
			ev.SetModifiedAt(e.UpdatedAt)
		}

		if e.AllDay {
			ev.SetAllDayStartAt(e.StartsAt)
			ev.SetAllDayEndAt(allDayEnd(e))
		} else {
			ev.SetStartAt(e.StartsAt)
			ev.SetEndAt(e.End())
		}

		ev.SetSummary(e.Title)
		if e.Location != "" {
			ev.SetLocation(e.Location)
		}
		if e.Description != "" {
			ev.SetDescription(e.Description)
		}
		if base != "" {
			ev.SetURL(fmt.Sprintf("%s/evenements/%d", base, e.ID))
		}
	}

	return cal.Serialize()
}

// allDayEnd is the exclusive end date of an all-day event.
func allDayEnd(e models.Event) time.Time {
	end := e.End()
	y, m, d := end.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, end.Location())
	if end.After(day) {
		day = day.AddDate(0, 0, 1)
	}
	return day
}
