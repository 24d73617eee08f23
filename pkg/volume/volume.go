// Package volume provides the voxel containers the segmentation algorithms
// operate on: scalar and vector-valued 3D grids, binary label masks, and
// integer voxel coordinates with 6-connected neighbor enumeration.
//
// Grids store their voxels in a flat row-major slice indexed
// x + nx*(y + ny*z), the same layout the rest of the pipeline assumes.
// Spatial metadata (spacing, origin, direction cosines) is carried through
// untouched; none of the algorithms interpret it.
package volume

// Coordinate is an integer voxel index (i, j, k). It is valid for a grid iff
// every component lies in [0, dimension).
type Coordinate struct {
	I, J, K int
}

// Metadata holds the physical-space description of a grid. The segmentation
// core never reads it; it exists so that a mask produced from a grid can be
// handed back to the caller with the source geometry intact.
type Metadata struct {
	// Spacing is the physical size of a voxel along each axis, in mm.
	Spacing [3]float64

	// Origin is the physical position of voxel (0,0,0).
	Origin [3]float64

	// Direction holds the row-major 3x3 direction cosine matrix.
	Direction [9]float64
}

// DefaultMetadata returns unit spacing, zero origin, identity direction.
func DefaultMetadata() Metadata {
	return Metadata{
		Spacing:   [3]float64{1, 1, 1},
		Direction: [9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1},
	}
}

// dims is the shared shape/indexing core of Grid, VectorGrid and Mask.
type dims struct {
	nx, ny, nz int
	meta       Metadata
}

func newDims(nx, ny, nz int, meta Metadata) (dims, error) {
	if nx <= 0 || ny <= 0 || nz <= 0 {
		return dims{}, ErrEmptyGrid
	}
	return dims{nx: nx, ny: ny, nz: nz, meta: meta}, nil
}

// Dims returns the grid dimensions (nx, ny, nz).
func (d *dims) Dims() (int, int, int) { return d.nx, d.ny, d.nz }

// Len returns the total number of voxels.
func (d *dims) Len() int { return d.nx * d.ny * d.nz }

// Meta returns the spatial metadata carried by the grid.
func (d *dims) Meta() Metadata { return d.meta }

// Contains reports whether c indexes a voxel of the grid.
func (d *dims) Contains(c Coordinate) bool {
	return c.I >= 0 && c.I < d.nx &&
		c.J >= 0 && c.J < d.ny &&
		c.K >= 0 && c.K < d.nz
}

// Index maps a coordinate to its flat row-major position. The coordinate
// must be in bounds.
func (d *dims) Index(c Coordinate) int {
	return c.I + d.nx*(c.J+d.ny*c.K)
}

// CoordinateAt is the inverse of Index.
func (d *dims) CoordinateAt(idx int) Coordinate {
	i := idx % d.nx
	j := (idx / d.nx) % d.ny
	k := idx / (d.nx * d.ny)
	return Coordinate{I: i, J: j, K: k}
}

// sameShape reports whether two containers share dimensions. Metadata is not
// compared; only the voxel lattice matters to the algorithms.
func (d *dims) sameShape(o *dims) bool {
	return d.nx == o.nx && d.ny == o.ny && d.nz == o.nz
}

// face-connected neighbor offsets, fixed traversal order (-x +x -y +y -z +z)
var neighborOffsets = [6][3]int{
	{-1, 0, 0}, {1, 0, 0},
	{0, -1, 0}, {0, 1, 0},
	{0, 0, -1}, {0, 0, 1},
}

// AppendNeighbors6 appends the face-connected neighbors of c that lie inside
// the grid to buf and returns the extended slice. Boundary voxels yield fewer
// than six neighbors. Passing a reused buffer avoids per-voxel allocation in
// the flood-fill inner loop.
func (d *dims) AppendNeighbors6(buf []Coordinate, c Coordinate) []Coordinate {
	for _, off := range neighborOffsets {
		n := Coordinate{I: c.I + off[0], J: c.J + off[1], K: c.K + off[2]}
		if d.Contains(n) {
			buf = append(buf, n)
		}
	}
	return buf
}

// Grid is a scalar-valued 3D voxel grid. It is immutable once constructed.
type Grid struct {
	dims
	data []float64
}

// NewGrid allocates a zero-filled grid with the given dimensions.
func NewGrid(nx, ny, nz int, meta Metadata) (*Grid, error) {
	d, err := newDims(nx, ny, nz, meta)
	if err != nil {
		return nil, err
	}
	return &Grid{dims: d, data: make([]float64, d.Len())}, nil
}

// NewGridFromData wraps an existing flat row-major voxel slice. The slice is
// adopted, not copied; the caller must not mutate it afterwards.
func NewGridFromData(data []float64, nx, ny, nz int, meta Metadata) (*Grid, error) {
	d, err := newDims(nx, ny, nz, meta)
	if err != nil {
		return nil, err
	}
	if len(data) != d.Len() {
		return nil, ErrBadDataLength
	}
	return &Grid{dims: d, data: data}, nil
}

// ValueAt returns the voxel value at c, or ErrOutOfBounds.
func (g *Grid) ValueAt(c Coordinate) (float64, error) {
	if !g.Contains(c) {
		return 0, ErrOutOfBounds
	}
	return g.data[g.Index(c)], nil
}

// At returns the voxel value at a flat index. Callers are expected to have
// produced idx via Index or CoordinateAt.
func (g *Grid) At(idx int) float64 { return g.data[idx] }

// Raw exposes the backing slice for read-only bulk access.
func (g *Grid) Raw() []float64 { return g.data }

// SameShape reports whether g and the mask m share dimensions.
func (g *Grid) SameShape(m *Mask) bool { return g.sameShape(&m.dims) }
