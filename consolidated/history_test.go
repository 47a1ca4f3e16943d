package consolidated

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bdl-cms/models"
)

func TestNewHistoryEmpty(t *testing.T) {
	assert.Nil(t, NewHistory(nil, true, time.UTC))
	assert.Nil(t, NewHistory([]models.Modification{}, false, time.UTC))
}

func TestNewHistoryCollapsedByDefault(t *testing.T) {
	mods := []models.Modification{{Date: "2025-03-01T10:00:00Z", Diff: sampleDiff()}}

	h := NewHistory(mods, false, time.UTC)
	require.NotNil(t, h)
	assert.False(t, h.Expanded)
	assert.Equal(t, 1, h.Count)
	assert.Empty(t, h.Items)
}

func TestNewHistoryExpanded(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)

	mods := []models.Modification{
		{Date: "2025-03-01T10:00:00Z", Diff: []models.DiffPart{{Value: "a", Added: true}}},
		{Date: "2025-03-02T10:00:00Z", Diff: nil},
		{Date: "not a date", Diff: []models.DiffPart{{Value: "b", Removed: true}}},
	}

	h := NewHistory(mods, true, paris)
	require.NotNil(t, h)
	assert.Equal(t, 3, h.Count)
	require.Len(t, h.Items, 2)

	assert.Equal(t, 1, h.Items[0].Index)
	assert.Equal(t, "01/03/2025 11:00", h.Items[0].Date)
	assert.Equal(t, `<span class="mod-diff"><ins class="mod-added">a</ins></span>`, string(h.Items[0].HTML()))

	assert.Equal(t, 3, h.Items[1].Index)
	assert.Equal(t, "not a date", h.Items[1].Date)
}
