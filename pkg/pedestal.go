package pesim

import (
	"encoding/json"
	"fmt"

	"golang.org/x/exp/slices"
)

type PedestalMethod int

const (
	// Mean averages the first nSampInPed samples of the event.
	Mean PedestalMethod = iota
	// MedianBand averages nSampInPed samples around the median.
	MedianBand
	// LegacyMean reproduces the accumulation of the original analysis, where
	// a pulse starting before the last pedestal sample counts 1.4 times its
	// amplitude and its tail counts again when it also falls inside.
	LegacyMean
)

var pedestalMethodStrings = []string{
	"mean",
	"median_band",
	"legacy_mean",
}

func (m PedestalMethod) String() string {
	if m < Mean || m > LegacyMean {
		return "unknown"
	}
	return pedestalMethodStrings[m]
}

func (m PedestalMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *PedestalMethod) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	method, err := ParsePedestalMethod(s)
	if err != nil {
		return err
	}
	*m = method
	return nil
}

func ParsePedestalMethod(s string) (PedestalMethod, error) {
	for i, v := range pedestalMethodStrings {
		if v == s {
			return PedestalMethod(i), nil
		}
	}
	return 0, fmt.Errorf("invalid pedestal method: %s", s)
}

// Estimate computes the per-sample pedestal of the event with nSampInPed
// samples.
func (m PedestalMethod) Estimate(event *EventType, nSampInPed int) float64 {
	switch m {
	case Mean:
		return meanPedestal(event.Samples, nSampInPed)
	case MedianBand:
		return medianBandPedestal(event.Samples, nSampInPed)
	case LegacyMean:
		return legacyMeanPedestal(event, nSampInPed)
	}
	return 0
}

func meanPedestal(samples []float64, nSampInPed int) float64 {
	ped := 0.0
	for _, v := range samples[:nSampInPed] {
		ped += v
	}
	return ped / float64(nSampInPed)
}

func medianBandPedestal(samples []float64, nSampInPed int) float64 {
	sorted := slices.Clone(samples)
	slices.Sort(sorted)
	// Same number of samples as the mean method, centred on the median
	offset := len(sorted)/2 - nSampInPed/2
	ped := 0.0
	for _, v := range sorted[offset : offset+nSampInPed] {
		ped += v
	}
	return ped / float64(nSampInPed)
}

func legacyMeanPedestal(event *EventType, nSampInPed int) float64 {
	ped := event.BackgroundPedSum
	for _, p := range event.Pulses {
		if p.Slot+1 < nSampInPed {
			ped += PulseShape[1] * p.Amplitude
		}
		if p.Slot < nSampInPed {
			ped += PulseCharge * p.Amplitude
		}
	}
	return ped / float64(nSampInPed)
}
