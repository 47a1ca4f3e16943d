// Package consolidated renders official journal entries as a consolidated text:
// the current body with past modifications marked inline, the list of
// modifications and a collapsible outline built from the headings.
package consolidated

import (
	"html"
	"html/template"
	"strings"

	"bdl-cms/models"
)

// Fragment is one rendered diff part.
type Fragment struct {
	Kind models.DiffKind `json:"kind"`
	Text string          `json:"text"`
}

// RenderDiff maps each part to one fragment, keeping order. Adjacent parts of
// the same kind stay separate.
func RenderDiff(parts []models.DiffPart) []Fragment {
	fragments := make([]Fragment, 0, len(parts))
	for _, p := range parts {
		fragments = append(fragments, Fragment{Kind: p.Kind(), Text: p.Value})
	}
	return fragments
}

// CurrentText is the text a diff leaves behind: every part except removed ones.
func CurrentText(parts []models.DiffPart) string {
	var b strings.Builder
	for _, p := range parts {
		if p.Kind() != models.DiffRemoved {
			b.WriteString(p.Value)
		}
	}
	return b.String()
}

// HTML renders the fragment as inline markup. Markup inside the value is shown
// as its text only.
func (f Fragment) HTML() template.HTML {
	text := template.HTMLEscapeString(plainText(f.Text))
	switch f.Kind {
	case models.DiffRemoved:
		return template.HTML(`<del class="mod-removed">` + text + `</del>`)
	case models.DiffAdded:
		return template.HTML(`<ins class="mod-added">` + text + `</ins>`)
	default:
		return template.HTML(`<span class="mod-unchanged">` + text + `</span>`)
	}
}

// FragmentsHTML renders fragments inside a single container; an empty list
// gives an empty container.
func FragmentsHTML(fragments []Fragment) template.HTML {
	var b strings.Builder
	b.WriteString(`<span class="mod-diff">`)
	for _, f := range fragments {
		b.WriteString(string(f.HTML()))
	}
	b.WriteString(`</span>`)
	return template.HTML(b.String())
}

// plainText drops tag tokens and decodes entities.
func plainText(s string) string {
	var b strings.Builder
	for _, tok := range tokenize(s) {
		if !isTag(tok) {
			b.WriteString(tok)
		}
	}
	return html.UnescapeString(b.String())
}
