package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bdl-cms/models"
	"bdl-cms/services"
	"bdl-cms/tally"
)

func TestRootCommandTree(t *testing.T) {
	root := NewRootCmd()

	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "migrate", "tally", "useradd"} {
		assert.True(t, names[want], "missing command %s", want)
	}
}

func TestTallyRequiresOneArgument(t *testing.T) {
	cmd := newTallyCmd()
	assert.Error(t, cmd.Args(cmd, nil))
	assert.Error(t, cmd.Args(cmd, []string{"1", "2"}))
	assert.NoError(t, cmd.Args(cmd, []string{"1"}))
}

func TestPrintResults(t *testing.T) {
	var buf bytes.Buffer
	res := &services.ScrutinResults{
		Scrutin: models.Scrutin{ID: 7, Title: "Budget du foyer"},
		Tally:   tally.Compute(5, 3, 2),
		Badge:   "Adopté",
	}

	printResults(&buf, res)

	out := buf.String()
	assert.Contains(t, out, "Scrutin n°7 : Budget du foyer (clos)")
	assert.Contains(t, out, "Exprimés    8")
	assert.Contains(t, out, "Majorité    5")
	assert.Contains(t, out, "Adopté")
}

func TestUserAddFlags(t *testing.T) {
	cmd := newUserAddCmd()
	for _, name := range []string{"username", "email", "password", "role"} {
		require.NotNil(t, cmd.Flags().Lookup(name), name)
	}
	assert.Equal(t, "eleve", cmd.Flags().Lookup("role").DefValue)
}
