// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package output

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/cachedash/internal/cards"
	"github.com/staranto/cachedash/internal/dashboard"
	"github.com/staranto/cachedash/internal/jsontree"
)

const body = `{
  "session_id": "abc-123",
  "found_in_date": "2024-01-01",
  "cache_data": {
    "refund_message": {
      "value": "Refund issued",
      "cached_at": "2024-01-01T00:00:00Z",
      "expires_at": "2024-01-08T00:00:00Z"
    }
  }
}`

func spit(t *testing.T, opts Options) (string, error) {
	t.Helper()

	resp, err := dashboard.Decode([]byte(body))
	require.NoError(t, err)

	var buf bytes.Buffer
	err = Spit(&buf, []byte(body), resp, opts)
	return buf.String(), err
}

func TestSpit_Text(t *testing.T) {
	f, err := cards.NewFormatter("en-US", "UTC", false)
	require.NoError(t, err)

	got, err := spit(t, Options{Format: "text", Cards: f})
	require.NoError(t, err)
	assert.Contains(t, got, "Session ID: abc-123")
	assert.Contains(t, got, "Refund issued")

	_, err = spit(t, Options{Format: "text", Path: "session_id"})
	assert.Error(t, err)
}

func TestSpit_Raw(t *testing.T) {
	got, err := spit(t, Options{Format: "raw"})
	require.NoError(t, err)
	assert.Equal(t, body, got)

	got, err = spit(t, Options{Format: "raw", Path: "cache_data.refund_message.value"})
	require.NoError(t, err)
	assert.Equal(t, `"Refund issued"`, got)
}

func TestSpit_JSON(t *testing.T) {
	got, err := spit(t, Options{Format: "json", Path: "cache_data.refund_message"})
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"value": "Refund issued",
		"cached_at": "2024-01-01T00:00:00Z",
		"expires_at": "2024-01-08T00:00:00Z"
	}`, got)
	assert.Contains(t, got, "\n  \"value\": \"Refund issued\",\n")
}

func TestSpit_YAML(t *testing.T) {
	got, err := spit(t, Options{Format: "yaml"})
	require.NoError(t, err)
	assert.Contains(t, got, "session_id: abc-123\n")
	assert.Contains(t, got, "found_in_date:")
	assert.Contains(t, got, "    value: Refund issued\n")

	// Member order follows the document.
	assert.Less(t, bytes.Index([]byte(got), []byte("session_id")), bytes.Index([]byte(got), []byte("cache_data")))
}

func TestSpit_Leaves(t *testing.T) {
	got, err := spit(t, Options{Format: "leaves", Path: "cache_data"})
	require.NoError(t, err)
	assert.Regexp(t, `refund_message\.value\s+=\s+"Refund issued"`, got)
	assert.Regexp(t, `refund_message\.expires_at\s+=\s+"2024-01-08T00:00:00Z"`, got)
	assert.NotContains(t, got, "session_id")
}

func TestSpit_Tree(t *testing.T) {
	got, err := spit(t, Options{Format: "tree"})
	require.NoError(t, err)
	assert.Contains(t, got, `▼ "cache_data": {  (1 property)`)
	assert.Contains(t, got, `      "value": "Refund issued"`)

	got, err = spit(t, Options{Format: "tree", Collapse: []string{"cache_data"}})
	require.NoError(t, err)
	assert.Contains(t, got, `▶ "cache_data": {  (1 property)`)
	assert.NotContains(t, got, "Refund issued")

	got, err = spit(t, Options{Format: "tree", CollapseAll: true})
	require.NoError(t, err)
	assert.Contains(t, got, `▶ "cache_data"`)
	assert.Contains(t, got, `"session_id": "abc-123"`)
}

func TestSpit_Errors(t *testing.T) {
	_, err := spit(t, Options{Format: "json", Path: "cache_data.nope"})
	assert.ErrorIs(t, err, ErrPathNotFound)

	_, err = spit(t, Options{Format: "csv"})
	assert.Error(t, err)

	var buf bytes.Buffer
	err = Spit(&buf, []byte("{"), &dashboard.Response{}, Options{Format: "json"})
	assert.ErrorIs(t, err, jsontree.ErrInvalidJSON)
}

func TestToYAML(t *testing.T) {
	v, err := jsontree.Parse([]byte(`{"n": 3, "f": 2.5, "ok": true, "z": null}`))
	require.NoError(t, err)

	got := ToYAML(v)
	assert.Equal(t, "yaml.MapSlice", fmt.Sprintf("%T", got))

	var buf bytes.Buffer
	require.NoError(t, LeavesWriter(&buf, v))
	assert.Regexp(t, `n\s+=\s+3`, buf.String())
	assert.Regexp(t, `f\s+=\s+2\.5`, buf.String())
	assert.Regexp(t, `z\s+=\s+null`, buf.String())
}

func TestToYAML_Numbers(t *testing.T) {
	v, err := jsontree.Parse([]byte(`[3, 2.5]`))
	require.NoError(t, err)

	got, ok := ToYAML(v).([]interface{})
	require.True(t, ok)
	assert.Equal(t, int64(3), got[0])
	assert.Equal(t, 2.5, got[1])
}

func TestTreeTheme(t *testing.T) {
	plain := TreeTheme(false)
	assert.Equal(t, "x", plain.Key.Render("x"))
}

func TestGetColors(t *testing.T) {
	key, str, num := getColors("colors")

	assert.NotEmpty(t, key)
	assert.NotEmpty(t, str)
	assert.NotEmpty(t, num)
}

func TestDumpExamples(t *testing.T) {
	var buf bytes.Buffer
	DumpExamples(&buf, [][2]string{{"cachedash lookup abc", "Show the dashboard for abc"}})
	assert.Contains(t, buf.String(), "Command")
	assert.Contains(t, buf.String(), "cachedash lookup abc")

	buf.Reset()
	DumpExamples(&buf, nil)
	assert.Empty(t, buf.String())
}
