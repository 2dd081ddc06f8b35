package network_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hydronet/network"
)

const twoPipeYAML = `
name: two-pipes
resistances: [1, 2]
initial_discharge: [3, 1]
weight:
  - [1, -1]
iterations: 20
`

// TestDecode_YAML parses the documented YAML layout.
func TestDecode_YAML(t *testing.T) {
	n, err := network.Decode(strings.NewReader(twoPipeYAML), network.FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, "two-pipes", n.Name)
	assert.Equal(t, []float64{1, 2}, n.Resistances)
	assert.Equal(t, []float64{3, 1}, n.InitialDischarge)
	assert.Equal(t, [][]float64{{1, -1}}, n.Loops)
	assert.Equal(t, 20, n.Iterations)
}

// TestDecode_JSON uses the same field names as the JSON export input block.
func TestDecode_JSON(t *testing.T) {
	doc := `{"resistances":[1,2],"initialDischarge":[3,1],"weight":[[1,-1]],"iterations":20}`
	n, err := network.Decode(strings.NewReader(doc), network.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, -1}}, n.Loops)
	assert.Equal(t, 20, n.Iterations)
}

// TestDecode_Errors covers malformed documents and unknown formats.
func TestDecode_Errors(t *testing.T) {
	_, err := network.Decode(strings.NewReader(`{"resistances": "x"}`), network.FormatJSON)
	assert.Error(t, err)

	_, err = network.Decode(strings.NewReader(`{"pipes": []}`), network.FormatJSON)
	assert.Error(t, err, "unknown JSON fields are rejected")

	_, err = network.Decode(strings.NewReader("resistances: [1, ["), network.FormatYAML)
	assert.Error(t, err)

	_, err = network.Decode(strings.NewReader(""), network.Format("toml"))
	assert.ErrorIs(t, err, network.ErrUnknownFormat)
}

// TestEncodeDecode_Reference survives a trip through both formats.
func TestEncodeDecode_Reference(t *testing.T) {
	for _, f := range []network.Format{network.FormatYAML, network.FormatJSON} {
		var buf bytes.Buffer
		require.NoError(t, network.Encode(&buf, network.Reference(), f), f)

		got, err := network.Decode(&buf, f)
		require.NoError(t, err, f)
		assert.Equal(t, network.Reference(), got, f)
	}
}

// TestParseFormat accepts extensions and names in any case.
func TestParseFormat(t *testing.T) {
	for in, want := range map[string]network.Format{
		"yaml": network.FormatYAML, ".yml": network.FormatYAML, "YAML": network.FormatYAML,
		"json": network.FormatJSON, ".JSON": network.FormatJSON,
	} {
		got, err := network.ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := network.ParseFormat(".txt")
	assert.ErrorIs(t, err, network.ErrUnknownFormat)
}

// TestSaveLoadFile round-trips through disk and names unnamed networks after the file.
func TestSaveLoadFile(t *testing.T) {
	dir := t.TempDir()

	n := network.Reference()
	n.Name = ""
	path := filepath.Join(dir, "city-grid.yaml")
	require.NoError(t, network.SaveFile(path, n))

	got, err := network.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "city-grid", got.Name)
	assert.Equal(t, n.Loops, got.Loops)

	_, err = network.LoadFile(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	assert.ErrorIs(t, network.SaveFile(filepath.Join(dir, "net.csv"), n), network.ErrUnknownFormat)
}
