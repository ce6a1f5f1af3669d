package pesim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeRanges(t *testing.T) {
	t.Parallel()

	r, err := computeRanges(DefaultConfiguration())
	require.NoError(t, err)
	assert.Equal(t, 3600.0, r.SumMin)
	assert.Equal(t, 4500.0, r.SumMax)
	assert.Equal(t, 1800, r.SumBins)
	assert.Equal(t, -500.0, r.SubMin)
	assert.Equal(t, 500.0, r.SubMax)
	assert.Equal(t, 2000, r.SubBins)
	assert.Equal(t, 101, r.TimeSlotBins)
	assert.Equal(t, 4200.0, r.RawSumFitMax)
	assert.Equal(t, 200.0, r.SubtractedFitHalfWin)

	// Large pulse regime widens the upper edges
	config := DefaultConfiguration()
	config.AvPEMult = 3
	config.PEAmpl = 10
	r, err = computeRanges(config)
	require.NoError(t, err)
	assert.Equal(t, 7000.0, r.SumMax)
	assert.Equal(t, 3000.0, r.SubMax)
}

func TestHistogramsFill(t *testing.T) {
	t.Parallel()

	config := DefaultConfiguration()
	hists, err := NewHistograms(config)
	require.NoError(t, err)

	event := &EventType{
		Samples:   make([]float64, config.NTimeSamples),
		Pulses:    []Pulse{{Slot: 4, Amplitude: 5}, {Slot: 98, Amplitude: 4}},
		Sum:       4012.6,
		Added:     12.6,
		Pedestals: map[PedestalMethod]float64{Mean: 40.1, MedianBand: 39.9},
	}
	hists.Fill(event)
	// Out of range on purpose
	hists.Fill(&EventType{
		Samples:   make([]float64, config.NTimeSamples),
		Sum:       100,
		Pedestals: map[PedestalMethod]float64{Mean: 0, MedianBand: 0},
	})

	assert.Equal(t, int64(2), hists.Sum.Entries())
	under, over := Outflows(hists.Sum)
	assert.Equal(t, int64(1), under)
	assert.Equal(t, int64(0), over)

	assert.Equal(t, int64(2), hists.TimeSample.Entries())
	for _, b := range Bins(hists.TimeSample) {
		switch b.Low {
		case 4, 98:
			assert.Equal(t, int64(1), b.Count)
		default:
			assert.Equal(t, int64(0), b.Count)
		}
	}

	names := []string{}
	for _, nh := range hists.Named() {
		names = append(names, nh.Name)
	}
	assert.Equal(t, []string{"hSum", "hSubtractedSum", "hMedSubtractedSum", "hAddedCharge", "hTimeSample"}, names)
}

func TestBinsCoverRange(t *testing.T) {
	t.Parallel()

	hists, err := NewHistograms(DefaultConfiguration())
	require.NoError(t, err)
	bins := Bins(hists.AddedCharge)
	require.Len(t, bins, 2000)
	assert.Equal(t, -500.0, bins[0].Low)
	assert.InDelta(t, 500.0, bins[len(bins)-1].High, 1e-9)
	for i := 1; i < len(bins); i++ {
		assert.InDelta(t, bins[i-1].High, bins[i].Low, 1e-9)
	}
}
