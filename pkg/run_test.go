package pesim

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func histogramContents(hists *Histograms) map[string][]Bin {
	contents := map[string][]Bin{}
	for _, nh := range hists.Named() {
		under, over := Outflows(nh.H)
		bins := append(Bins(nh.H), Bin{Low: -1, High: -1, Count: under}, Bin{Low: -2, High: -2, Count: over})
		contents[nh.Name] = bins
	}
	return contents
}

// histogramMoments collects the floating-point sums, which depend on the fill
// order and not only on the set of filled values.
func histogramMoments(hists *Histograms) map[string][4]float64 {
	moments := map[string][4]float64{}
	for _, nh := range hists.Named() {
		moments[nh.Name] = [4]float64{nh.H.SumWX(), nh.H.SumWX2(), nh.H.XMean(), nh.H.XRMS()}
	}
	return moments
}

func TestRun(t *testing.T) {
	t.Parallel()

	config := testConfiguration()
	sim, err := NewSimulator(config)
	require.NoError(t, err)

	result, err := sim.Run(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, result.RunID)

	for _, nh := range result.Histograms.Named() {
		if nh.Name == "hTimeSample" {
			continue
		}
		assert.Equal(t, int64(config.NEvents), nh.H.Entries(), nh.Name)

		total := int64(0)
		for _, b := range Bins(nh.H) {
			total += b.Count
		}
		under, over := Outflows(nh.H)
		assert.Equal(t, int64(config.NEvents), total+under+over, nh.Name)
	}

	require.Len(t, result.Retained, config.RetainEvents)
	for i, event := range result.Retained {
		assert.Equal(t, i, event.Index)
		assert.Len(t, event.Samples, config.NTimeSamples)
	}

	require.Len(t, result.Fits, 3)
	assert.Equal(t, "hSum", result.Fits[0].Name)
	assert.Equal(t, "hSubtractedSum", result.Fits[1].Name)
	assert.Equal(t, "hMedSubtractedSum", result.Fits[2].Name)
	assert.Equal(t, 200.0, result.Fits[1].High)
}

func TestRunDeterministic(t *testing.T) {
	t.Parallel()

	for _, workers := range []int{1, 4} {
		config := testConfiguration()
		config.NumWorkers = workers
		config.Seed = 1234

		run := func() *Result {
			sim, err := NewSimulator(config)
			require.NoError(t, err)
			result, err := sim.Run(context.Background())
			require.NoError(t, err)
			return result
		}
		first, second := run(), run()

		if diff := cmp.Diff(histogramContents(first.Histograms), histogramContents(second.Histograms)); diff != "" {
			t.Errorf("workers=%d: histograms differ (-first +second):\n%s", workers, diff)
		}
		if diff := cmp.Diff(histogramMoments(first.Histograms), histogramMoments(second.Histograms)); diff != "" {
			t.Errorf("workers=%d: histogram moments differ (-first +second):\n%s", workers, diff)
		}
		if diff := cmp.Diff(first.Fits, second.Fits); diff != "" {
			t.Errorf("workers=%d: fits differ (-first +second):\n%s", workers, diff)
		}
		require.Len(t, second.Retained, len(first.Retained))
		for i := range first.Retained {
			assert.Equal(t, first.Retained[i].Samples, second.Retained[i].Samples)
		}
	}
}

func TestRunSeedChangesContents(t *testing.T) {
	t.Parallel()

	contents := func(seed uint64) map[string][]Bin {
		config := testConfiguration()
		config.Seed = seed
		sim, err := NewSimulator(config)
		require.NoError(t, err)
		result, err := sim.Run(context.Background())
		require.NoError(t, err)
		return histogramContents(result.Histograms)
	}
	assert.NotEqual(t, contents(1), contents(2))
}

func TestRunCancelled(t *testing.T) {
	t.Parallel()

	for _, workers := range []int{1, 3} {
		config := testConfiguration()
		config.NumWorkers = workers
		sim, err := NewSimulator(config)
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err = sim.Run(ctx)
		assert.True(t, errors.Is(err, context.Canceled), "workers=%d", workers)
	}
}

func TestRunRetainMoreThanEvents(t *testing.T) {
	t.Parallel()

	config := testConfiguration()
	config.NEvents = 20
	config.RetainEvents = 1 << 40
	sim, err := NewSimulator(config)
	require.NoError(t, err)

	result, err := sim.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Retained, 20)
	for i, event := range result.Retained {
		assert.Equal(t, i, event.Index)
		assert.Len(t, event.Samples, config.NTimeSamples)
	}
}

func TestRetainBuffer(t *testing.T) {
	t.Parallel()

	buffer := NewRetainBuffer(3)
	for _, idx := range []int{5, 2, 0, 9, 1} {
		buffer.Offer(&EventType{Index: idx})
	}
	events := buffer.Events()
	require.Len(t, events, 3)
	assert.Equal(t, []int{0, 1, 2}, []int{events[0].Index, events[1].Index, events[2].Index})

	assert.Empty(t, NewRetainBuffer(0).Events())
}
