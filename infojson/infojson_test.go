package infojson

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	data := []byte(`{
		"id": "dQw4w9WgXcQ",
		"title": "  Never Gonna Give You Up ",
		"comments": [
			{"author": " @alice ", "text": " first! "},
			{"author": "@bob", "txt": "legacy field"},
			{"author": "@carol", "text": "   "},
			{"text": "anonymous"}
		]
	}`)

	info, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, "dQw4w9WgXcQ", info.ID)
	assert.Equal(t, "Never Gonna Give You Up", info.Title)
	assert.Equal(t, []Comment{
		{Author: "@alice", Text: "first!"},
		{Author: "@bob", Text: "legacy field"},
		{Author: UnknownAuthor, Text: "anonymous"},
	}, info.Comments)
}

func TestParseDefaults(t *testing.T) {
	info, err := Parse([]byte(`{}`))
	require.NoError(t, err)

	assert.Equal(t, UnknownTitle, info.Title)
	assert.Empty(t, info.Comments)
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse([]byte(`{"title": `))
	assert.Error(t, err)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vid.info.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"title":"From disk"}`), 0o644))

	info, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, "From disk", info.Title)

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
