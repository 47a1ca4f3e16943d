package consolidated

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"bdl-cms/models"
)

// visibleText returns the text of a fragment, skipping struck-out spans.
func visibleText(t *testing.T, markup string) string {
	t.Helper()
	nodes, err := html.ParseFragment(strings.NewReader(markup), &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body})
	require.NoError(t, err)

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
	for _, n := range nodes {
		walk(n)
	}
	return b.String()
}

func sampleDiff() []models.DiffPart {
	return []models.DiffPart{
		{Value: "Le conseil "},
		{Value: "se réunit", Removed: true},
		{Value: "siège", Added: true},
		{Value: " le mardi"},
		{Value: " & le jeudi", Added: true},
		{Value: " à 12h", Added: true},
		{Value: ".", Removed: true},
	}
}

func TestRenderDiffPreservesOrder(t *testing.T) {
	parts := sampleDiff()
	fragments := RenderDiff(parts)

	require.Len(t, fragments, len(parts))
	for i, p := range parts {
		assert.Equal(t, p.Value, fragments[i].Text)
		assert.Equal(t, p.Kind(), fragments[i].Kind)
	}
}

func TestRenderDiffDoesNotMergeSameKind(t *testing.T) {
	fragments := RenderDiff([]models.DiffPart{
		{Value: "a", Added: true},
		{Value: "b", Added: true},
	})
	assert.Len(t, fragments, 2)
}

func TestRenderedTextMatchesCurrentText(t *testing.T) {
	parts := sampleDiff()
	rendered := string(FragmentsHTML(RenderDiff(parts)))

	assert.Equal(t, CurrentText(parts), visibleText(t, rendered))
	assert.Equal(t, "Le conseil siège le mardi & le jeudi à 12h", CurrentText(parts))
}

func TestRenderDiffEmpty(t *testing.T) {
	fragments := RenderDiff(nil)
	assert.NotNil(t, fragments)
	assert.Empty(t, fragments)
	assert.Equal(t, `<span class="mod-diff"></span>`, string(FragmentsHTML(fragments)))
}

func TestFragmentHTMLEscapes(t *testing.T) {
	f := Fragment{Kind: models.DiffAdded, Text: `<p>a <script>x</script> & b</p>`}
	assert.Equal(t, `<ins class="mod-added">a x &amp; b</ins>`, string(f.HTML()))

	f = Fragment{Kind: models.DiffRemoved, Text: "old"}
	assert.Equal(t, `<del class="mod-removed">old</del>`, string(f.HTML()))
}

func TestDiffPartKind(t *testing.T) {
	assert.Equal(t, models.DiffUnchanged, models.DiffPart{Value: "x"}.Kind())
	assert.Equal(t, models.DiffAdded, models.DiffPart{Value: "x", Added: true}.Kind())
	assert.Equal(t, models.DiffRemoved, models.DiffPart{Value: "x", Removed: true}.Kind())
	assert.Equal(t, models.DiffRemoved, models.DiffPart{Value: "x", Added: true, Removed: true}.Kind())
}
