package growing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regiongrow3d/pkg/regionstats"
	"regiongrow3d/pkg/volume"
)

func vectorLine(t *testing.T, channels int, values ...float64) *volume.VectorGrid {
	t.Helper()
	g, err := volume.NewVectorGridFromData(values, len(values)/channels, 1, 1, channels, volume.DefaultMetadata())
	require.NoError(t, err)
	return g
}

func TestVectorConfidenceConnectedMahalanobisAdmission(t *testing.T) {
	// seed vectors sit at the corners of the unit square in channel space:
	// mean (0.5, 0.5), diagonal covariance with variance 1/3 per channel
	g := vectorLine(t, 2,
		0, 0,
		1, 0,
		0, 1,
		1, 1,
		10, 10,
	)
	seeds := []volume.Coordinate{{I: 0}, {I: 1}, {I: 2}, {I: 3}}

	st, err := regionstats.VectorFromSeedNeighborhood(g, seeds, 0)
	require.NoError(t, err)

	// each seed is at distance sqrt(1.5) from the mean; the outlier at
	// (10, 10) is at 9.5*sqrt(6)
	seedDist := st.Mahalanobis([]float64{0, 0})
	outlierDist := st.Mahalanobis([]float64{10, 10})
	assert.InDelta(t, math.Sqrt(1.5), seedDist, 1e-9)
	assert.InDelta(t, 9.5*math.Sqrt(6), outlierDist, 1e-6)

	// a multiplier between the two distances admits the seeds and rejects
	// the outlier
	mask, err := VectorConfidenceConnected(g, seeds, Params{Multiplier: 4})
	require.NoError(t, err)
	assert.Equal(t, 4, mask.Count())
	assert.False(t, mask.Get(volume.Coordinate{I: 4}))

	// a multiplier above the outlier's distance admits it too
	mask, err = VectorConfidenceConnected(g, seeds, Params{Multiplier: outlierDist + 1})
	require.NoError(t, err)
	assert.Equal(t, 5, mask.Count())
}

func TestVectorConfidenceConnectedStrictInequality(t *testing.T) {
	g := vectorLine(t, 2,
		0, 0,
		1, 0,
		0, 1,
		1, 1,
	)
	seeds := []volume.Coordinate{{I: 0}, {I: 1}, {I: 2}, {I: 3}}

	st, err := regionstats.VectorFromSeedNeighborhood(g, seeds, 0)
	require.NoError(t, err)
	minDist := math.Inf(1)
	for _, s := range seeds {
		v, err := g.VectorAt(s)
		require.NoError(t, err)
		minDist = math.Min(minDist, st.Mahalanobis(v))
	}

	// the admission test is strict: a multiplier exactly at the closest
	// seed's distance rejects every seed and the mask comes back empty
	mask, err := VectorConfidenceConnected(g, seeds, Params{Multiplier: minDist})
	require.NoError(t, err)
	assert.Equal(t, 0, mask.Count())
}

func TestVectorConfidenceConnectedIterations(t *testing.T) {
	// a gentle gradient the refreshed statistics keep absorbing
	g := vectorLine(t, 2,
		0, 0,
		1, 0,
		0, 1,
		1, 1,
		1.5, 1.5,
		40, 40,
	)
	seeds := []volume.Coordinate{{I: 0}, {I: 1}, {I: 2}, {I: 3}}

	var sizes []int
	p := Params{Multiplier: 4, Iterations: 2, Progress: func(iteration, maskVoxels int) {
		sizes = append(sizes, maskVoxels)
	}}

	mask, err := VectorConfidenceConnected(g, seeds, p)
	require.NoError(t, err)
	assert.Len(t, sizes, 3)
	assert.False(t, mask.Get(volume.Coordinate{I: 5}), "far outlier must stay excluded")
	assert.GreaterOrEqual(t, mask.Count(), 4)
}

func TestVectorConfidenceConnectedSingularSeeds(t *testing.T) {
	// two distinct seed vectors span rank 1 in 2-channel space; iteration 0
	// fails and the returned mask is empty
	g := vectorLine(t, 2,
		0, 0,
		1, 1,
		2, 2,
	)
	seeds := []volume.Coordinate{{I: 0}, {I: 1}}

	mask, err := VectorConfidenceConnected(g, seeds, Params{Multiplier: 2})
	require.ErrorIs(t, err, regionstats.ErrSingularCovariance)
	require.NotNil(t, mask)
	assert.Equal(t, 0, mask.Count())
}

func TestVectorConfidenceConnectedExactMatchPolicy(t *testing.T) {
	// a single seed has no covariance; the distance test degrades to exact
	// match and only identical vectors join the region
	g := vectorLine(t, 2,
		3, 4,
		3, 4,
		3, 5,
	)

	mask, err := VectorConfidenceConnected(g, []volume.Coordinate{{I: 0}}, Params{Multiplier: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, mask.Count())
	assert.False(t, mask.Get(volume.Coordinate{I: 2}))
}

func TestVectorConfidenceConnectedErrors(t *testing.T) {
	g := vectorLine(t, 2, 1, 2, 3, 4)

	_, err := VectorConfidenceConnected(g, nil, Params{Multiplier: 1})
	assert.ErrorIs(t, err, ErrNoSeeds)

	_, err = VectorConfidenceConnected(g, []volume.Coordinate{{I: 5}}, Params{Multiplier: 1})
	assert.ErrorIs(t, err, ErrInvalidSeed)

	_, err = VectorConfidenceConnected(g, []volume.Coordinate{{I: 0}}, Params{Multiplier: -1})
	assert.ErrorIs(t, err, ErrInvalidMultiplier)
}
