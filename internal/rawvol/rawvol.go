// Package rawvol reads and writes headerless raw voxel files for the CLI:
// little-endian sample streams in x-fastest order, with dimensions supplied
// by the caller. It is the external-loader collaborator of the segmentation
// core, not an image codec.
package rawvol

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"

	"regiongrow3d/pkg/volume"
)

// Format names a raw sample encoding.
type Format string

const (
	Uint8   Format = "uint8"
	Uint16  Format = "uint16"
	Float32 Format = "float32"
	Float64 Format = "float64"
)

// ParseFormat validates a format name from the command line.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case Uint8, Uint16, Float32, Float64:
		return Format(name), nil
	}
	return "", fmt.Errorf("rawvol: unknown sample format %q", name)
}

func (f Format) bytes() int {
	switch f {
	case Uint8:
		return 1
	case Uint16:
		return 2
	case Float32:
		return 4
	}
	return 8
}

// ReadSamples reads nx*ny*nz*channels samples of the given format and
// converts them to float64. The file size must match exactly.
func ReadSamples(path string, format Format, nx, ny, nz, channels int) ([]float64, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rawvol: %w", err)
	}
	n := nx * ny * nz * channels
	if want := n * format.bytes(); len(raw) != want {
		return nil, fmt.Errorf("rawvol: %s holds %d bytes, want %d for %dx%dx%d x%d %s samples",
			path, len(raw), want, nx, ny, nz, channels, format)
	}
	out := make([]float64, n)
	switch format {
	case Uint8:
		for i, b := range raw {
			out[i] = float64(b)
		}
	case Uint16:
		for i := range out {
			out[i] = float64(binary.LittleEndian.Uint16(raw[2*i:]))
		}
	case Float32:
		for i := range out {
			out[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(raw[4*i:])))
		}
	case Float64:
		for i := range out {
			out[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[8*i:]))
		}
	}
	return out, nil
}

// ReadGrid reads a scalar volume.
func ReadGrid(path string, format Format, nx, ny, nz int, meta volume.Metadata) (*volume.Grid, error) {
	data, err := ReadSamples(path, format, nx, ny, nz, 1)
	if err != nil {
		return nil, err
	}
	return volume.NewGridFromData(data, nx, ny, nz, meta)
}

// ReadVectorGrid reads a multi-channel volume with interleaved channels.
func ReadVectorGrid(path string, format Format, nx, ny, nz, channels int, meta volume.Metadata) (*volume.VectorGrid, error) {
	data, err := ReadSamples(path, format, nx, ny, nz, channels)
	if err != nil {
		return nil, err
	}
	return volume.NewVectorGridFromData(data, nx, ny, nz, channels, meta)
}

// WriteMask writes the mask as a raw uint8 volume: replace for labeled
// voxels, zero elsewhere.
func WriteMask(path string, m *volume.Mask, replace uint8) error {
	out := make([]byte, m.Len())
	for i := range out {
		if m.GetIndex(i) {
			out[i] = replace
		}
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("rawvol: %w", err)
	}
	return nil
}
