package consolidated

import (
	"html/template"
	"time"

	"bdl-cms/models"
)

const historyDateLayout = "02/01/2006 15:04"

type HistoryItem struct {
	// Index is the 1-based position in the modification list.
	Index     int        `json:"index"`
	Date      string     `json:"date"`
	Fragments []Fragment `json:"fragments"`
}

func (i HistoryItem) HTML() template.HTML {
	return FragmentsHTML(i.Fragments)
}

// History is the modification list of an entry with a single expanded flag.
type History struct {
	Expanded bool          `json:"expanded"`
	Count    int           `json:"count"`
	Items    []HistoryItem `json:"items,omitempty"`
}

// NewHistory returns nil when there is nothing to show. Items are only built
// when the list is expanded; modifications with an empty diff are skipped.
func NewHistory(mods []models.Modification, expanded bool, loc *time.Location) *History {
	if len(mods) == 0 {
		return nil
	}

	h := &History{Expanded: expanded, Count: len(mods)}
	if !expanded {
		return h
	}

	for i, m := range mods {
		if len(m.Diff) == 0 {
			continue
		}
		h.Items = append(h.Items, HistoryItem{
			Index:     i + 1,
			Date:      FormatDate(m, loc),
			Fragments: RenderDiff(m.Diff),
		})
	}
	return h
}

// FormatDate formats the modification date in loc, or returns it verbatim when
// it does not parse.
func FormatDate(m models.Modification, loc *time.Location) string {
	t, ok := m.Time()
	if !ok {
		return m.Date
	}
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(historyDateLayout)
}
