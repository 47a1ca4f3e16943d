package consolidated

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bdl-cms/models"
)

func journalEntry() *models.JournalEntry {
	return &models.JournalEntry{
		ID:              7,
		Title:           "Règlement intérieur",
		NorNumber:       "BDL2501001A",
		BodyHTML:        `<p>Préambule.</p><h1>Titre I</h1><p>Le conseil siège le jeudi.</p><h2>Article 1</h2><p>Quorum de moitié.</p>`,
		PublicationDate: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		AuthorName:      "Camille",
		AuthorRole:      "Présidente",
		Modifications: []models.Modification{{
			Date: "2025-02-01T08:00:00Z",
			Diff: []models.DiffPart{
				{Value: "siège le "},
				{Value: "mardi", Removed: true},
				{Value: "jeudi", Added: true},
				{Value: "."},
			},
		}},
	}
}

func TestBuildDefaultView(t *testing.T) {
	v := Build(journalEntry(), Options{})

	assert.Equal(t, "BDL2501001A", v.Entry.NorNumber)
	assert.False(t, v.Tracked)
	require.Len(t, v.Outline, 2)
	assert.Equal(t, "<p>Préambule.</p>", string(v.Outline[0].Content))
	assert.Equal(t, "<p>Le conseil siège le jeudi.</p>", string(v.Outline[1].Content))

	require.NotNil(t, v.History)
	assert.False(t, v.History.Expanded)
	assert.Equal(t, 1, v.History.Count)
}

func TestBuildTrackedKeepsOutline(t *testing.T) {
	plain := Build(journalEntry(), Options{})
	tracked := Build(journalEntry(), Options{Tracked: true, ShowHistory: true})

	require.Len(t, tracked.Outline, len(plain.Outline))
	assert.Equal(t, plain.Outline[1].ID, tracked.Outline[1].ID)
	assert.Equal(t, plain.Outline[1].Children[0].Title, tracked.Outline[1].Children[0].Title)
	assert.Equal(t,
		`<p>Le conseil siège le <del class="mod-removed">mardi</del><ins class="mod-added">jeudi</ins>.</p>`,
		string(tracked.Outline[1].Content))
	require.Len(t, tracked.History.Items, 1)
}

func TestBuildWithoutModifications(t *testing.T) {
	entry := journalEntry()
	entry.Modifications = nil

	v := Build(entry, Options{ShowHistory: true})
	assert.Nil(t, v.History)

	data, err := json.Marshal(v)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"history"`)
}

func TestViewJSONShape(t *testing.T) {
	data, err := json.Marshal(Build(journalEntry(), Options{ShowHistory: true}))
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	history := decoded["history"].(map[string]interface{})
	items := history["items"].([]interface{})
	fragments := items[0].(map[string]interface{})["fragments"].([]interface{})
	assert.Equal(t, "removed", fragments[1].(map[string]interface{})["kind"])
}

func TestOptionsQuery(t *testing.T) {
	opts := Options{Collapsed: ParseCollapseState("b,a"), ShowHistory: true}
	assert.Equal(t, "collapsed=a%2Cb&history=1", opts.Query().Encode())
	assert.Empty(t, Options{Collapsed: CollapseState{}}.Query().Encode())
}
