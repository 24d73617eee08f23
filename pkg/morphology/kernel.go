// Package morphology implements binary morphological clean-up of label masks:
// structuring-element generation and erosion, dilation, opening and closing.
// A structuring element is materialized once into an explicit offset set at
// construction time and reused read-only across operations; the operations
// themselves are pure functions that allocate a fresh mask and never mutate
// their input.
package morphology

import (
	"errors"
	"fmt"
)

// Sentinel errors for structuring-element construction.
var (
	// ErrNegativeRadius indicates a structuring element radius below zero.
	ErrNegativeRadius = errors.New("morphology: radius must be non-negative")
	// ErrEmptyKernel indicates a structuring element with no offsets (an
	// annulus of radius zero) or a nil kernel passed to an operation.
	ErrEmptyKernel = errors.New("morphology: structuring element has no offsets")
	// ErrUnknownShape indicates an unrecognized shape name or value.
	ErrUnknownShape = errors.New("morphology: unknown structuring element shape")
)

// Shape selects the structuring element geometry.
type Shape int

const (
	// Ball includes offsets within Euclidean (per-axis ellipsoidal) radius.
	Ball Shape = iota
	// Box includes offsets within Chebyshev radius.
	Box
	// Cross includes axis-aligned unit steps scaled up to the radius.
	Cross
	// Annulus is the ball minus the ball one radius step smaller: a shell of
	// unit thickness.
	Annulus
)

// String returns the lowercase shape name used in configuration files.
func (s Shape) String() string {
	switch s {
	case Ball:
		return "ball"
	case Box:
		return "box"
	case Cross:
		return "cross"
	case Annulus:
		return "annulus"
	}
	return fmt.Sprintf("shape(%d)", int(s))
}

// ParseShape converts a configuration shape name into a Shape.
func ParseShape(name string) (Shape, error) {
	switch name {
	case "ball":
		return Ball, nil
	case "box":
		return Box, nil
	case "cross":
		return Cross, nil
	case "annulus":
		return Annulus, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownShape, name)
}

// StructuringElement is a finite set of integer offset triples probed around
// a center voxel. Immutable once constructed.
type StructuringElement struct {
	shape   Shape
	radii   [3]int
	offsets [][3]int
}

// NewStructuringElement builds a structuring element with the same radius on
// every axis.
func NewStructuringElement(shape Shape, radius int) (*StructuringElement, error) {
	return NewStructuringElementRadii(shape, [3]int{radius, radius, radius})
}

// NewStructuringElementRadii builds a structuring element with a per-axis
// radius vector. Fails with ErrNegativeRadius for a negative component,
// ErrUnknownShape for an unrecognized shape, and ErrEmptyKernel if the shape
// materializes to an empty offset set (the radius-zero annulus).
func NewStructuringElementRadii(shape Shape, radii [3]int) (*StructuringElement, error) {
	for _, r := range radii {
		if r < 0 {
			return nil, fmt.Errorf("%w: %v", ErrNegativeRadius, radii)
		}
	}
	member, err := membership(shape, radii)
	if err != nil {
		return nil, err
	}
	var offsets [][3]int
	for dk := -radii[2]; dk <= radii[2]; dk++ {
		for dj := -radii[1]; dj <= radii[1]; dj++ {
			for di := -radii[0]; di <= radii[0]; di++ {
				if member([3]int{di, dj, dk}) {
					offsets = append(offsets, [3]int{di, dj, dk})
				}
			}
		}
	}
	if len(offsets) == 0 {
		return nil, fmt.Errorf("%w: %s radius %v", ErrEmptyKernel, shape, radii)
	}
	return &StructuringElement{shape: shape, radii: radii, offsets: offsets}, nil
}

func membership(shape Shape, radii [3]int) (func([3]int) bool, error) {
	switch shape {
	case Ball:
		return func(d [3]int) bool { return inBall(d, radii) }, nil
	case Box:
		// the enumeration bounds already are the Chebyshev box
		return func(d [3]int) bool { return true }, nil
	case Cross:
		return func(d [3]int) bool {
			nonzero := 0
			for _, c := range d {
				if c != 0 {
					nonzero++
				}
			}
			return nonzero <= 1
		}, nil
	case Annulus:
		inner := [3]int{max(radii[0]-1, 0), max(radii[1]-1, 0), max(radii[2]-1, 0)}
		return func(d [3]int) bool { return inBall(d, radii) && !inBall(d, inner) }, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownShape, int(shape))
}

// inBall reports whether d lies within the ellipsoid of the per-axis radii.
// A zero radius pins that axis to offset zero.
func inBall(d, radii [3]int) bool {
	sum := 0.0
	for a := 0; a < 3; a++ {
		if radii[a] == 0 {
			if d[a] != 0 {
				return false
			}
			continue
		}
		f := float64(d[a]) / float64(radii[a])
		sum += f * f
	}
	return sum <= 1
}

// Shape returns the element's geometry tag.
func (se *StructuringElement) Shape() Shape { return se.shape }

// Radii returns the per-axis radius vector.
func (se *StructuringElement) Radii() [3]int { return se.radii }

// Size returns the number of offsets in the element.
func (se *StructuringElement) Size() int { return len(se.offsets) }

// ContainsOrigin reports whether the zero offset is part of the element.
// Closing with an origin-carrying element is extensive; an annulus is the
// one shape that excludes the origin.
func (se *StructuringElement) ContainsOrigin() bool {
	for _, o := range se.offsets {
		if o == [3]int{} {
			return true
		}
	}
	return false
}

// Offsets returns the materialized offset set. Callers must treat it as
// read-only.
func (se *StructuringElement) Offsets() [][3]int { return se.offsets }
