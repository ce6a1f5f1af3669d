package pesim

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPedestalMethodEstimate(t *testing.T) {
	t.Parallel()

	samples := []float64{7, 3, 10, 1, 9, 2, 8, 4, 6, 5}
	event := &EventType{Samples: samples}

	tests := []struct {
		name       string
		method     PedestalMethod
		nSampInPed int
		want       float64
	}{
		{"mean of first samples", Mean, 4, (7 + 3 + 10 + 1) / 4.0},
		{"mean of all samples", Mean, 10, 5.5},
		{"median band centred", MedianBand, 4, (4 + 5 + 6 + 7) / 4.0},
		{"median band odd width", MedianBand, 3, (5 + 6 + 7) / 3.0},
		{"median band full width", MedianBand, 10, 5.5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, tc.method.Estimate(event, tc.nSampInPed), 1e-12)
		})
	}

	// Sorting works on a copy
	assert.Equal(t, []float64{7, 3, 10, 1, 9, 2, 8, 4, 6, 5}, samples)
}

func TestLegacyMeanAccumulation(t *testing.T) {
	t.Parallel()

	event := &EventType{
		Samples:          make([]float64, 4),
		BackgroundPedSum: 10,
		Pulses: []Pulse{
			{Slot: 0, Amplitude: 1}, // 1.4 + 0.4
			{Slot: 1, Amplitude: 2}, // 1.4*2, tail outside
			{Slot: 2, Amplitude: 5}, // outside
		},
	}
	want := (10 + 1.8 + 2.8) / 2
	assert.InDelta(t, want, LegacyMean.Estimate(event, 2), 1e-12)
}

func TestPedestalMethodJSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal([]PedestalMethod{Mean, MedianBand, LegacyMean})
	require.NoError(t, err)
	assert.JSONEq(t, `["mean","median_band","legacy_mean"]`, string(data))

	var methods []PedestalMethod
	require.NoError(t, json.Unmarshal(data, &methods))
	assert.Equal(t, []PedestalMethod{Mean, MedianBand, LegacyMean}, methods)

	var m PedestalMethod
	assert.Error(t, json.Unmarshal([]byte(`"mode"`), &m))
	assert.Equal(t, "unknown", PedestalMethod(42).String())
}
