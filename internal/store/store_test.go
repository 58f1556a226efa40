package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"event-name-fixer/internal/model"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLoadKeepsNumbers(t *testing.T) {
	path := writeFile(t, "events.json", `{"events": [{"id": 9007199254740993, "score": 1.50}]}`)

	doc, err := Load(path)
	require.NoError(t, err)

	events, ok, err := doc.Events()
	require.NoError(t, err)
	require.True(t, ok)
	event := events[0].(map[string]any)
	require.Equal(t, json.Number("9007199254740993"), event["id"])
	require.Equal(t, json.Number("1.50"), event["score"])
}

func TestLoadParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		line    int
	}{
		{"empty", "", 1},
		{"truncated", "{\n  \"events\": [\n", 3},
		{"garbage", "not json", 1},
		{"trailing", "{}\n{}", 2},
		{"bad utf8", "{\"name\": \"\xff\"}", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "bad.json", tt.content)

			_, err := Load(path)
			require.Error(t, err)

			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			require.Equal(t, path, perr.Path)
			require.Equal(t, tt.line, perr.Line)
			require.Contains(t, err.Error(), path)
		})
	}
}

func TestDecodeAcceptsTrailingWhitespace(t *testing.T) {
	root, err := Decode([]byte("{\"title\": \"Archive\"}\n\n  "))
	require.NoError(t, err)
	require.Equal(t, map[string]any{"title": "Archive"}, root)
}

func TestEncode(t *testing.T) {
	doc := model.Document{Root: map[string]any{
		"events": []any{
			map[string]any{"name": "Gudstjänst <kväll> & fika", "id": json.Number("12")},
		},
		"empty": []any{},
	}}

	data, err := Encode(doc)
	require.NoError(t, err)

	want := `{
  "empty": [],
  "events": [
    {
      "id": 12,
      "name": "Gudstjänst <kväll> & fika"
    }
  ]
}
`
	require.Equal(t, want, string(data))
}

func TestSaveRoundTrip(t *testing.T) {
	path := writeFile(t, "events.json", `{"events":[{"date":"2023-12-25","extra":{"nested":[1,2,null]}}],"title":"Ärkiv"}`)

	doc, err := Load(path)
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, Save(out, doc))

	again, err := Load(out)
	require.NoError(t, err)
	require.Equal(t, doc, again)
}

func TestSaveOverwrites(t *testing.T) {
	path := writeFile(t, "out.json", "old content that is longer than the new document")

	require.NoError(t, Save(path, model.Document{Root: map[string]any{}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "{}\n", string(data))
}

func TestSaveMissingDirectory(t *testing.T) {
	err := Save(filepath.Join(t.TempDir(), "nope", "out.json"), model.Document{Root: map[string]any{}})
	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestPosition(t *testing.T) {
	data := []byte("ab\ncd\nef")
	line, col := position(data, 0)
	require.Equal(t, []int{1, 1}, []int{line, col})
	line, col = position(data, 4)
	require.Equal(t, []int{2, 2}, []int{line, col})
	line, col = position(data, 100)
	require.Equal(t, []int{3, 3}, []int{line, col})
}
