// json_node_test.go - gjson-backed node traversal and #ref resolution.

package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJSONNodeFieldDefaults(t *testing.T) {
	root, err := ParseJSONDocument(`{"name": "left", "gain": 3.5, "mute": true}`)
	require.NoError(t, err)

	s, err := root.StringDefault("name", "")
	require.NoError(t, err)
	require.Equal(t, "left", s)

	f, err := root.FloatDefault("gain", 0)
	require.NoError(t, err)
	require.Equal(t, 3.5, f)

	b, err := root.BoolDefault("mute", false)
	require.NoError(t, err)
	require.True(t, b)

	missing, err := root.StringDefault("absent", "fallback")
	require.NoError(t, err)
	require.Equal(t, "fallback", missing)
}

func TestJSONNodeRefResolution(t *testing.T) {
	doc := `{
		"shared": {"freq": 80, "order": 4},
		"routes": {"lowpass": {"#ref": "shared"}}
	}`
	root, err := ParseJSONDocument(doc)
	require.NoError(t, err)

	routes, err := root.GetObject("routes")
	require.NoError(t, err)

	lp, err := routes.GetObject("lowpass")
	require.NoError(t, err)

	freq, err := lp.FloatDefault("freq", 0)
	require.NoError(t, err)
	require.Equal(t, 80.0, freq)
}

func TestJSONNodeRefRejectsSiblingKeys(t *testing.T) {
	doc := `{"shared": {"freq": 80}, "node": {"#ref": "shared", "extra": 1}}`
	root, err := ParseJSONDocument(doc)
	require.NoError(t, err)

	_, err = root.GetObject("node")
	require.Error(t, err, "expected #ref with sibling keys to be rejected")
}

func TestJSONNodeInvalidDocument(t *testing.T) {
	_, err := ParseJSONDocument("{not json")
	require.Error(t, err, "expected invalid JSON to error")
}

func TestJSONNodeArrayTraversal(t *testing.T) {
	root, err := ParseJSONDocument(`{"values": [1, 2, 3]}`)
	require.NoError(t, err)

	items, err := root.Array("values")
	require.NoError(t, err)
	require.Len(t, items, 3)
}
