package volume

// Mask is a binary label image over the same lattice as its source grid.
// Growers build one incrementally and freeze it on return; the morphology
// operations treat their inputs as read-only and allocate fresh masks.
type Mask struct {
	dims
	bits []bool
}

// NewMask allocates an all-false mask with the given dimensions.
func NewMask(nx, ny, nz int, meta Metadata) (*Mask, error) {
	d, err := newDims(nx, ny, nz, meta)
	if err != nil {
		return nil, err
	}
	return &Mask{dims: d, bits: make([]bool, d.Len())}, nil
}

// MaskLike allocates an all-false mask with the shape and metadata of g.
func MaskLike(g *Grid) *Mask {
	return &Mask{dims: g.dims, bits: make([]bool, g.Len())}
}

// MaskLikeVector allocates an all-false mask with the shape and metadata of g.
func MaskLikeVector(g *VectorGrid) *Mask {
	return &Mask{dims: g.dims, bits: make([]bool, g.Len())}
}

// Get reports whether the voxel at c is labeled. Out-of-bounds coordinates
// read as false.
func (m *Mask) Get(c Coordinate) bool {
	if !m.Contains(c) {
		return false
	}
	return m.bits[m.Index(c)]
}

// GetIndex reports whether the voxel at a flat index is labeled.
func (m *Mask) GetIndex(idx int) bool { return m.bits[idx] }

// Set labels the voxel at c. Out-of-bounds coordinates are ignored.
func (m *Mask) Set(c Coordinate, on bool) {
	if m.Contains(c) {
		m.bits[m.Index(c)] = on
	}
}

// SetIndex labels the voxel at a flat index.
func (m *Mask) SetIndex(idx int, on bool) { m.bits[idx] = on }

// Count returns the number of labeled voxels.
func (m *Mask) Count() int {
	n := 0
	for _, b := range m.bits {
		if b {
			n++
		}
	}
	return n
}

// Clone returns an independent copy of the mask.
func (m *Mask) Clone() *Mask {
	bits := make([]bool, len(m.bits))
	copy(bits, m.bits)
	return &Mask{dims: m.dims, bits: bits}
}

// Equal reports whether two masks share dimensions and label the same voxels.
func (m *Mask) Equal(o *Mask) bool {
	if !m.sameShape(&o.dims) {
		return false
	}
	for i, b := range m.bits {
		if b != o.bits[i] {
			return false
		}
	}
	return true
}

// SameShape reports whether two masks share dimensions.
func (m *Mask) SameShape(o *Mask) bool { return m.sameShape(&o.dims) }

// Render materializes the mask into a label grid: labeled voxels get the
// replace value, the rest stay zero. This is the cosmetic label value the
// growers accept; it has no influence on segmentation itself.
func (m *Mask) Render(replace float64) *Grid {
	data := make([]float64, m.Len())
	for i, b := range m.bits {
		if b {
			data[i] = replace
		}
	}
	return &Grid{dims: m.dims, data: data}
}
