package pesim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-hep.org/x/hep/hbook"
)

func TestFitGaussian(t *testing.T) {
	t.Parallel()

	h := hbook.NewH1D(100, -5, 5)
	h.Ann["name"] = "hTest"
	rng := NewRandom(42, 0)
	for i := 0; i < 20000; i++ {
		h.Fill(rng.Gaus(0.5, 1), 1)
	}

	result, err := FitGaussian(h, -5, 5)
	require.NoError(t, err)
	assert.True(t, result.Converged, result.Status)
	assert.Equal(t, "hTest", result.Name)
	assert.InDelta(t, 0.5, result.Mean, 0.05)
	assert.InDelta(t, 1.0, result.Sigma, 0.05)
	// 20000 entries spread over bins of width 0.1
	assert.InDelta(t, 20000*0.1/2.5066, result.Amplitude, 60)
	assert.Greater(t, result.NDF, 0)
}

func TestFitGaussianWindow(t *testing.T) {
	t.Parallel()

	h := hbook.NewH1D(200, -10, 10)
	rng := NewRandom(43, 0)
	for i := 0; i < 20000; i++ {
		h.Fill(rng.Gaus(0, 1), 1)
		// Far component outside the fit window
		if i%4 == 0 {
			h.Fill(rng.Gaus(7, 0.5), 1)
		}
	}

	result, err := FitGaussian(h, -3, 3)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, result.Mean, 0.05)
	assert.InDelta(t, 1.0, result.Sigma, 0.05)
	assert.Equal(t, -3.0, result.Low)
	assert.Equal(t, 3.0, result.High)
}

func TestFitGaussianNotEnoughBins(t *testing.T) {
	t.Parallel()

	h := hbook.NewH1D(10, 0, 10)
	h.Fill(2.5, 1)
	h.Fill(3.5, 1)

	_, err := FitGaussian(h, 0, 10)
	require.Error(t, err)
	var fitErr *FitError
	assert.True(t, errors.As(err, &fitErr))
}
