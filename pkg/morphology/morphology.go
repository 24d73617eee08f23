package morphology

import (
	"runtime"
	"sync"

	"regiongrow3d/pkg/volume"
)

// Dilate returns a mask that is true wherever at least one voxel of m is true
// within the element's offset set centered at that voxel. Offsets falling
// outside the grid are ignored. The input mask is not modified.
func Dilate(m *volume.Mask, se *StructuringElement) (*volume.Mask, error) {
	return apply(m, se, false)
}

// Erode returns a mask that is true wherever every in-bounds offset of the
// element, centered at that voxel, lands on a true voxel of m. Out-of-bounds
// offsets do not block erosion; they count as satisfied, so the mask is only
// eroded within the image bounds. The input mask is not modified.
func Erode(m *volume.Mask, se *StructuringElement) (*volume.Mask, error) {
	return apply(m, se, true)
}

// Opening erodes then dilates with the same element, removing connected
// components smaller than the element. Opening never adds a voxel absent
// from the input.
func Opening(m *volume.Mask, se *StructuringElement) (*volume.Mask, error) {
	eroded, err := Erode(m, se)
	if err != nil {
		return nil, err
	}
	return Dilate(eroded, se)
}

// Closing dilates then erodes with the same element, filling holes smaller
// than the element. When the element contains the zero offset, closing never
// removes a voxel present in the input.
func Closing(m *volume.Mask, se *StructuringElement) (*volume.Mask, error) {
	dilated, err := Dilate(m, se)
	if err != nil {
		return nil, err
	}
	return Erode(dilated, se)
}

// apply runs one dilation or erosion pass. Every output voxel depends only on
// the immutable input mask, so z-slices are distributed over a bounded set of
// workers with no shared mutable state beyond disjoint output rows.
func apply(m *volume.Mask, se *StructuringElement, erode bool) (*volume.Mask, error) {
	if se == nil || len(se.offsets) == 0 {
		return nil, ErrEmptyKernel
	}
	nx, ny, nz := m.Dims()
	out, err := volume.NewMask(nx, ny, nz, m.Meta())
	if err != nil {
		return nil, err
	}

	workers := runtime.NumCPU()
	if workers > nz {
		workers = nz
	}
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for k := w; k < nz; k += workers {
				applySlice(m, se, out, k, erode)
			}
		}(w)
	}
	wg.Wait()
	return out, nil
}

func applySlice(m *volume.Mask, se *StructuringElement, out *volume.Mask, k int, erode bool) {
	nx, ny, _ := m.Dims()
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			c := volume.Coordinate{I: i, J: j, K: k}
			out.Set(c, probe(m, se, c, erode))
		}
	}
}

// probe evaluates one output voxel: existential over the offset set for
// dilation, universal over the in-bounds offsets for erosion.
func probe(m *volume.Mask, se *StructuringElement, c volume.Coordinate, erode bool) bool {
	for _, off := range se.offsets {
		n := volume.Coordinate{I: c.I + off[0], J: c.J + off[1], K: c.K + off[2]}
		if !m.Contains(n) {
			continue
		}
		v := m.Get(n)
		if erode && !v {
			return false
		}
		if !erode && v {
			return true
		}
	}
	return erode
}
