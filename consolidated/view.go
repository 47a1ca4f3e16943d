package consolidated

import (
	"html/template"
	"sort"
	"strings"
)

// CollapseState is the set of collapsed section ids of one view. It travels in
// the request and is never stored.
type CollapseState map[string]struct{}

// ParseCollapseState reads a comma separated list of section ids.
func ParseCollapseState(s string) CollapseState {
	state := CollapseState{}
	for _, id := range strings.Split(s, ",") {
		if id = strings.TrimSpace(id); id != "" {
			state[id] = struct{}{}
		}
	}
	return state
}

func (c CollapseState) Collapsed(id string) bool {
	_, ok := c[id]
	return ok
}

// Toggle flips one section.
func (c CollapseState) Toggle(id string) {
	if c.Collapsed(id) {
		delete(c, id)
		return
	}
	c[id] = struct{}{}
}

// Encode is the inverse of ParseCollapseState, with ids sorted.
func (c CollapseState) Encode() string {
	ids := make([]string, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return strings.Join(ids, ",")
}

// Toggled encodes the state that results from toggling id, leaving c as is.
func (c CollapseState) Toggled(id string) string {
	next := make(CollapseState, len(c)+1)
	for k := range c {
		next[k] = struct{}{}
	}
	next.Toggle(id)
	return next.Encode()
}

// SectionView is a section as displayed under a given collapse state.
type SectionView struct {
	ID          string        `json:"id"`
	Title       string        `json:"title,omitempty"`
	Level       int           `json:"level"`
	Collapsible bool          `json:"collapsible"`
	Collapsed   bool          `json:"collapsed"`
	Toggle      string        `json:"toggle"`
	Content     template.HTML `json:"content,omitempty"`
	Children    []SectionView `json:"children,omitempty"`
}

// RenderOutline walks the forest depth first. A collapsed section keeps its
// heading but loses its content and children; untitled sections always show
// their content. Toggle holds the encoded state after clicking the section.
func RenderOutline(sections []*Section, state CollapseState) []SectionView {
	if state == nil {
		state = CollapseState{}
	}

	views := make([]SectionView, 0, len(sections))
	for _, s := range sections {
		v := SectionView{
			ID:          s.ID,
			Title:       s.Title,
			Level:       s.Level,
			Collapsible: s.Collapsible(),
		}

		if !v.Collapsible {
			v.Content = template.HTML(s.Content)
			views = append(views, v)
			continue
		}

		v.Toggle = state.Toggled(s.ID)
		if state.Collapsed(s.ID) {
			v.Collapsed = true
			views = append(views, v)
			continue
		}

		v.Content = template.HTML(s.Content)
		if len(s.Children) > 0 {
			v.Children = RenderOutline(s.Children, state)
		}
		views = append(views, v)
	}
	return views
}
