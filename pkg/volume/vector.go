package volume

// VectorGrid is a vector-valued 3D voxel grid for multi-channel data
// (e.g. multi-sequence MRI). Every voxel holds the same fixed number of
// channels, stored interleaved: the vector of voxel idx occupies
// data[idx*channels : (idx+1)*channels]. Immutable once constructed.
type VectorGrid struct {
	dims
	channels int
	data     []float64
}

// NewVectorGrid allocates a zero-filled vector grid.
func NewVectorGrid(nx, ny, nz, channels int, meta Metadata) (*VectorGrid, error) {
	d, err := newDims(nx, ny, nz, meta)
	if err != nil {
		return nil, err
	}
	if channels < 1 {
		return nil, ErrBadChannelCount
	}
	return &VectorGrid{dims: d, channels: channels, data: make([]float64, d.Len()*channels)}, nil
}

// NewVectorGridFromData wraps an existing interleaved voxel slice. The slice
// is adopted, not copied.
func NewVectorGridFromData(data []float64, nx, ny, nz, channels int, meta Metadata) (*VectorGrid, error) {
	d, err := newDims(nx, ny, nz, meta)
	if err != nil {
		return nil, err
	}
	if channels < 1 {
		return nil, ErrBadChannelCount
	}
	if len(data) != d.Len()*channels {
		return nil, ErrBadDataLength
	}
	return &VectorGrid{dims: d, channels: channels, data: data}, nil
}

// Channels returns the fixed per-voxel vector length.
func (g *VectorGrid) Channels() int { return g.channels }

// VectorAt returns the voxel vector at c, or ErrOutOfBounds. The returned
// slice aliases the grid storage and must be treated as read-only.
func (g *VectorGrid) VectorAt(c Coordinate) ([]float64, error) {
	if !g.Contains(c) {
		return nil, ErrOutOfBounds
	}
	return g.Vector(g.Index(c)), nil
}

// Vector returns the voxel vector at a flat index, aliasing grid storage.
func (g *VectorGrid) Vector(idx int) []float64 {
	return g.data[idx*g.channels : (idx+1)*g.channels]
}

// SameShape reports whether g and the mask m share dimensions.
func (g *VectorGrid) SameShape(m *Mask) bool { return g.sameShape(&m.dims) }
