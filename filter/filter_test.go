package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter(t *testing.T) {
	f, err := New([]string{`\.html$`, `^drafts/`})
	require.NoError(t, err)
	require.Len(t, f, 2)

	assert.True(t, f.Matches("index.html", "Including"))
	assert.True(t, f.Matches("drafts/notes.css", "Including"))
	assert.False(t, f.Matches("styles/all.css", "Including"))
	assert.False(t, Filter(nil).Matches("index.html", "Including"))
}

func TestFilterErrors(t *testing.T) {
	f, err := New([]string{`(`, `ok`, `[`})
	require.Error(t, err)
	assert.Nil(t, f)
	assert.Contains(t, err.Error(), "missing closing )")
	assert.Contains(t, err.Error(), "missing closing ]")
}
