package morphology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructuringElementSizes(t *testing.T) {
	cases := []struct {
		shape  Shape
		radius int
		size   int
	}{
		{Box, 0, 1},
		{Box, 1, 27},
		{Box, 2, 125},
		{Cross, 1, 7},   // origin plus one step along each axis direction
		{Cross, 2, 13},  // origin plus two steps along each axis direction
		{Ball, 1, 7},    // unit euclidean ball on the integer lattice is the cross
		{Annulus, 1, 6}, // unit shell: the six face neighbors, no origin
	}
	for _, tc := range cases {
		se, err := NewStructuringElement(tc.shape, tc.radius)
		require.NoError(t, err, "%s radius %d", tc.shape, tc.radius)
		assert.Equal(t, tc.size, se.Size(), "%s radius %d", tc.shape, tc.radius)
		assert.Equal(t, tc.shape, se.Shape())
	}
}

func TestBallRadiusTwo(t *testing.T) {
	se, err := NewStructuringElement(Ball, 2)
	require.NoError(t, err)
	// lattice points with i^2+j^2+k^2 <= 4: 1 origin, 6 at distance 1,
	// 12 at sqrt(2), 6 at distance 2, 8 at sqrt(3)
	assert.Equal(t, 33, se.Size())
}

func TestPerAxisRadii(t *testing.T) {
	se, err := NewStructuringElementRadii(Box, [3]int{1, 0, 2})
	require.NoError(t, err)
	assert.Equal(t, 3*1*5, se.Size())
	assert.Equal(t, [3]int{1, 0, 2}, se.Radii())
	for _, off := range se.Offsets() {
		assert.Zero(t, off[1], "y radius 0 pins the offset plane")
	}
}

func TestContainsOrigin(t *testing.T) {
	for _, shape := range []Shape{Ball, Box, Cross} {
		se, err := NewStructuringElement(shape, 1)
		require.NoError(t, err)
		assert.True(t, se.ContainsOrigin(), "%s", shape)
	}
	se, err := NewStructuringElement(Annulus, 1)
	require.NoError(t, err)
	assert.False(t, se.ContainsOrigin())
}

func TestStructuringElementErrors(t *testing.T) {
	_, err := NewStructuringElement(Ball, -1)
	assert.ErrorIs(t, err, ErrNegativeRadius)

	_, err = NewStructuringElement(Annulus, 0)
	assert.ErrorIs(t, err, ErrEmptyKernel)

	_, err = NewStructuringElement(Shape(99), 1)
	assert.ErrorIs(t, err, ErrUnknownShape)
}

func TestParseShape(t *testing.T) {
	for _, shape := range []Shape{Ball, Box, Cross, Annulus} {
		parsed, err := ParseShape(shape.String())
		require.NoError(t, err)
		assert.Equal(t, shape, parsed)
	}
	_, err := ParseShape("diamond")
	assert.ErrorIs(t, err, ErrUnknownShape)
}
