package consolidated

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// sectionNamespace seeds the name-based section ids.
var sectionNamespace = uuid.MustParse("6f1c2a4e-8b3d-4c1e-9a57-0d2b8e4f6a13")

// Section is a node of the heading outline. Level 0 is the untitled content
// found before the first heading.
type Section struct {
	ID       string     `json:"id"`
	Title    string     `json:"title,omitempty"`
	Level    int        `json:"level"`
	Content  string     `json:"content"`
	Children []*Section `json:"children,omitempty"`

	path string
}

// Collapsible reports whether the section has a heading to toggle.
func (s *Section) Collapsible() bool {
	return s.Level > 0
}

// BuildOutline groups the top-level nodes of an HTML fragment under h1-h4
// headings. A heading nests under the nearest open heading of a strictly lower
// level and closes every open heading of the same or a deeper level. Other
// elements are kept as serialized markup; blank text is dropped.
func BuildOutline(body string) []*Section {
	nodes, err := html.ParseFragment(strings.NewReader(body), &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil {
		return nil
	}

	var roots []*Section
	var stack []*Section

	for _, n := range nodes {
		switch n.Type {
		case html.ElementNode:
			if level := headingLevel(n); level > 0 {
				for len(stack) > 0 && stack[len(stack)-1].Level >= level {
					stack = stack[:len(stack)-1]
				}

				sec := &Section{Title: headingTitle(n), Level: level}
				if len(stack) == 0 {
					sec.path = strconv.Itoa(len(roots))
					roots = append(roots, sec)
				} else {
					parent := stack[len(stack)-1]
					sec.path = parent.path + "/" + strconv.Itoa(len(parent.Children))
					parent.Children = append(parent.Children, sec)
				}
				sec.ID = sectionID(level, sec.path)
				stack = append(stack, sec)
				continue
			}
		case html.TextNode:
			if strings.TrimSpace(n.Data) == "" {
				continue
			}
		default:
			// comments and doctypes carry nothing to display
			continue
		}

		markup := outerHTML(n)
		if len(stack) > 0 {
			stack[len(stack)-1].Content += markup
			continue
		}

		// Content before the first heading. Consecutive nodes share one intro.
		if last := len(roots) - 1; last >= 0 && roots[last].Level == 0 {
			roots[last].Content += markup
			continue
		}
		intro := &Section{Level: 0, Content: markup, path: strconv.Itoa(len(roots))}
		intro.ID = sectionID(0, intro.path)
		roots = append(roots, intro)
	}

	return roots
}

func headingLevel(n *html.Node) int {
	switch n.DataAtom {
	case atom.H1:
		return 1
	case atom.H2:
		return 2
	case atom.H3:
		return 3
	case atom.H4:
		return 4
	}
	return 0
}

// headingTitle is the visible text of a heading; removed spans are skipped.
func headingTitle(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Del {
			return
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

func outerHTML(n *html.Node) string {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return ""
	}
	return buf.String()
}

// sectionID hashes the level and the position path from the root.
func sectionID(level int, path string) string {
	id := uuid.NewSHA1(sectionNamespace, []byte(fmt.Sprintf("%d:%s", level, path)))
	return strings.ReplaceAll(id.String(), "-", "")[:12]
}
