package consolidated

import (
	"net/url"
	"time"

	"bdl-cms/models"
)

// Options selects what a view shows. None of it is persisted.
type Options struct {
	Collapsed   CollapseState
	ShowHistory bool
	Tracked     bool
	Location    *time.Location
}

// Query encodes the options as the query string of the view.
func (o Options) Query() url.Values {
	q := url.Values{}
	if c := o.Collapsed.Encode(); c != "" {
		q.Set("collapsed", c)
	}
	if o.ShowHistory {
		q.Set("history", "1")
	}
	if o.Tracked {
		q.Set("tracked", "1")
	}
	return q
}

type Header struct {
	ID              uint      `json:"id"`
	Title           string    `json:"title"`
	NorNumber       string    `json:"nor_number"`
	PublicationDate time.Time `json:"publication_date"`
	AuthorName      string    `json:"author_name,omitempty"`
	AuthorRole      string    `json:"author_role,omitempty"`
}

// View is the consolidated reading view of a journal entry.
type View struct {
	Entry   Header        `json:"entry"`
	Tracked bool          `json:"tracked"`
	Outline []SectionView `json:"outline"`
	History *History      `json:"history,omitempty"`

	opts Options
}

// Build assembles the view. With Tracked set, modifications are marked inline
// before the outline is built; headings are found the same way either way.
func Build(entry *models.JournalEntry, opts Options) *View {
	if opts.Collapsed == nil {
		opts.Collapsed = CollapseState{}
	}

	body := entry.BodyHTML
	if opts.Tracked {
		body = Track(body, entry.Modifications)
	}

	return &View{
		Entry: Header{
			ID:              entry.ID,
			Title:           entry.Title,
			NorNumber:       entry.NorNumber,
			PublicationDate: entry.PublicationDate,
			AuthorName:      entry.AuthorName,
			AuthorRole:      entry.AuthorRole,
		},
		Tracked: opts.Tracked,
		Outline: RenderOutline(BuildOutline(body), opts.Collapsed),
		History: NewHistory(entry.Modifications, opts.ShowHistory, opts.Location),
		opts:    opts,
	}
}
