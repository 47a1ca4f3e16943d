package consolidated

import (
	"html"
	"html/template"
	"strings"

	"bdl-cms/models"
)

type segment struct {
	text string
	diff []models.DiffPart
}

// Track returns body with every modification whose current text still occurs
// in it replaced by the marked-up diff. Newer modifications claim their segment
// first and a claimed segment is never searched again. Everything else is
// copied verbatim.
func Track(body string, mods []models.Modification) string {
	segments := []segment{{text: body}}
	for i := len(mods) - 1; i >= 0; i-- {
		diff := mods[i].Diff
		if len(diff) == 0 {
			continue
		}
		current := CurrentText(diff)
		if strings.TrimSpace(current) == "" {
			continue
		}
		segments = claim(segments, current, diff)
	}

	var b strings.Builder
	for _, s := range segments {
		if s.diff == nil {
			b.WriteString(s.text)
			continue
		}
		b.WriteString(markDiff(s.diff))
	}
	return b.String()
}

func claim(segments []segment, current string, diff []models.DiffPart) []segment {
	for i, s := range segments {
		if s.diff != nil {
			continue
		}
		idx := indexOutsideTags(s.text, current)
		if idx < 0 {
			continue
		}

		out := make([]segment, 0, len(segments)+2)
		out = append(out, segments[:i]...)
		if idx > 0 {
			out = append(out, segment{text: s.text[:idx]})
		}
		out = append(out, segment{text: current, diff: diff})
		if rest := s.text[idx+len(current):]; rest != "" {
			out = append(out, segment{text: rest})
		}
		return append(out, segments[i+1:]...)
	}
	return segments
}

// indexOutsideTags finds the first occurrence of sub that does not start in
// the middle of a tag.
func indexOutsideTags(s, sub string) int {
	offset := 0
	for {
		idx := strings.Index(s[offset:], sub)
		if idx < 0 {
			return -1
		}
		pos := offset + idx
		before := s[:pos]
		if strings.LastIndex(before, "<") <= strings.LastIndex(before, ">") {
			return pos
		}
		offset = pos + 1
	}
}

// markDiff wraps the text runs of added and removed parts. Tags of kept parts
// are emitted unchanged and tags of removed parts are dropped, so the markup
// has the structure of the current text.
func markDiff(parts []models.DiffPart) string {
	var b strings.Builder
	for _, p := range parts {
		kind := p.Kind()
		var run strings.Builder

		flush := func() {
			if run.Len() == 0 {
				return
			}
			text := run.String()
			run.Reset()

			if strings.TrimSpace(text) == "" {
				if kind != models.DiffRemoved {
					b.WriteString(text)
				}
				return
			}
			switch kind {
			case models.DiffAdded:
				b.WriteString(`<ins class="mod-added">` + text + `</ins>`)
			case models.DiffRemoved:
				b.WriteString(`<del class="mod-removed">` + template.HTMLEscapeString(html.UnescapeString(text)) + `</del>`)
			default:
				b.WriteString(text)
			}
		}

		for _, tok := range tokenize(p.Value) {
			if isTag(tok) {
				flush()
				if kind != models.DiffRemoved {
					b.WriteString(tok)
				}
				continue
			}
			run.WriteString(tok)
		}
		flush()
	}
	return b.String()
}
