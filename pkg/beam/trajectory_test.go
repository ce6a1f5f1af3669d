package beam

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitArcReferencePoints(t *testing.T) {
	t.Parallel()

	model, err := FitArc(DefaultPathPoints, DefaultArcSeed)
	require.NoError(t, err)
	assert.True(t, model.Converged, model.Status)
	// Between the single-point solutions
	assert.GreaterOrEqual(t, model.R, 8780.0)
	assert.LessOrEqual(t, model.R, 8830.0)

	for _, p := range DefaultPathPoints {
		x, err := model.Eval(p.Z)
		require.NoError(t, err)
		assert.InDelta(t, p.Value, x, 0.2, "z = %g", p.Z)
	}
	assert.InDelta(t, math.Sqrt(model.R), model.BendingRadius(), 1e-12)

	lo, hi := model.Domain()
	assert.Equal(t, -model.R, lo)
	assert.Equal(t, model.R, hi)
}

func TestFitArcDegenerate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		points ControlPoints
	}{
		{"repeated z", ControlPoints{{-880, -44}, {-880, -44}, {0, 0}}},
		{"collinear", ControlPoints{{-880, -44}, {-440, -22}, {0, 0}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FitArc(tc.points, DefaultArcSeed)
			var degenerate *DegenerateError
			assert.True(t, errors.As(err, &degenerate), "got %v", err)
		})
	}
}

func TestFitArcSeedOutsideDomain(t *testing.T) {
	t.Parallel()

	_, err := FitArc(DefaultPathPoints, 100)
	var domainErr *DomainError
	assert.True(t, errors.As(err, &domainErr))
}

func TestArcDomainError(t *testing.T) {
	t.Parallel()

	model := ArcModel{R: 1000}
	_, err := model.Eval(-1000.5)
	var domainErr *DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, -1000.5, domainErr.Z)

	x, err := model.Eval(-1000)
	require.NoError(t, err)
	assert.Equal(t, -1000.0, x)
}

func TestFitLinear(t *testing.T) {
	t.Parallel()

	model, err := FitLinear(DefaultAnglePoints)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, model.Eval(0), 0.01)
	assert.InDelta(t, 5.65, model.Eval(-880), 0.05)
	assert.Less(t, model.Slope, 0.0)

	_, err = FitLinear(ControlPoints{{1, 1}, {1, 2}, {2, 3}})
	var degenerate *DegenerateError
	assert.True(t, errors.As(err, &degenerate))
}

func TestRescale(t *testing.T) {
	t.Parallel()

	for _, r := range []float64{8804.2, -8800, 1} {
		assert.Equal(t, r, Rescale(r, 1, DefaultScaling))
	}
	assert.InDelta(t, 4*8800.0, Rescale(8800, 2, DefaultScaling), 1e-9)
	assert.InDelta(t, -8800.0/4, Rescale(-8800, 0.5, DefaultScaling), 1e-9)
	assert.InDelta(t, 2*8800.0, Rescale(8800, 2, MomentumScaling{Exponent: 0.5}), 1e-9)
}

func TestTrajectory(t *testing.T) {
	t.Parallel()

	trajectory, err := Fit(DefaultPathPoints, DefaultAnglePoints, DefaultArcSeed)
	require.NoError(t, err)
	assert.Equal(t, ReferenceEnergy, trajectory.Energy)

	x, theta, err := trajectory.Evaluate(-880)
	require.NoError(t, err)
	assert.InDelta(t, -44, x, 0.2)
	assert.InDelta(t, 5.65, theta, 0.05)

	same, err := trajectory.AtEnergy(ReferenceEnergy, DefaultScaling)
	require.NoError(t, err)
	assert.Equal(t, trajectory.Arc.R, same.Arc.R)

	// A stiffer beam bends less
	stiff, err := trajectory.AtEnergy(8, DefaultScaling)
	require.NoError(t, err)
	xStiff, _, err := stiff.Evaluate(-880)
	require.NoError(t, err)
	assert.Greater(t, xStiff, x)
	assert.Less(t, xStiff, 0.0)

	_, _, err = trajectory.Evaluate(-1e6)
	var domainErr *DomainError
	assert.True(t, errors.As(err, &domainErr))

	_, err = trajectory.AtEnergy(0, DefaultScaling)
	assert.Error(t, err)

	_, err = Fit(ControlPoints{{0, 0}, {0, 0}, {0, 0}}, DefaultAnglePoints, DefaultArcSeed)
	assert.Error(t, err)
}
