package rawvol

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regiongrow3d/pkg/volume"
)

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"uint8", "uint16", "float32", "float64"} {
		f, err := ParseFormat(name)
		require.NoError(t, err)
		assert.Equal(t, Format(name), f)
	}
	_, err := ParseFormat("int32")
	assert.Error(t, err)
}

func TestReadGridUint8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vol.raw")
	require.NoError(t, os.WriteFile(path, []byte{0, 10, 20, 30, 40, 50, 60, 70}, 0644))

	g, err := ReadGrid(path, Uint8, 2, 2, 2, volume.DefaultMetadata())
	require.NoError(t, err)

	v, err := g.ValueAt(volume.Coordinate{I: 1, J: 1, K: 1})
	require.NoError(t, err)
	assert.Equal(t, 70.0, v)
}

func TestReadGridFloat32(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vol.raw")
	raw := make([]byte, 4*2)
	binary.LittleEndian.PutUint32(raw[0:], math.Float32bits(1.5))
	binary.LittleEndian.PutUint32(raw[4:], math.Float32bits(-2.25))
	require.NoError(t, os.WriteFile(path, raw, 0644))

	g, err := ReadGrid(path, Float32, 2, 1, 1, volume.DefaultMetadata())
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, -2.25}, g.Raw())
}

func TestReadVectorGridInterleaved(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vol.raw")
	require.NoError(t, os.WriteFile(path, []byte{1, 2, 3, 4}, 0644))

	g, err := ReadVectorGrid(path, Uint8, 2, 1, 1, 2, volume.DefaultMetadata())
	require.NoError(t, err)

	v, err := g.VectorAt(volume.Coordinate{I: 1})
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 4}, v)
}

func TestReadSizeMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vol.raw")
	require.NoError(t, os.WriteFile(path, []byte{1, 2, 3}, 0644))

	_, err := ReadGrid(path, Uint8, 2, 2, 2, volume.DefaultMetadata())
	assert.Error(t, err)

	_, err = ReadGrid(path, Uint16, 3, 1, 1, volume.DefaultMetadata())
	assert.Error(t, err)
}

func TestWriteMask(t *testing.T) {
	m, err := volume.NewMask(2, 2, 1, volume.DefaultMetadata())
	require.NoError(t, err)
	m.Set(volume.Coordinate{I: 1, J: 0}, true)
	m.Set(volume.Coordinate{I: 0, J: 1}, true)

	path := filepath.Join(t.TempDir(), "mask.raw")
	require.NoError(t, WriteMask(path, m, 255))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 255, 255, 0}, raw)
}
