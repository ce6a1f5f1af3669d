package pesim

// PulseShape is the fraction of a PE amplitude deposited in the chosen time
// sample and in the one after it.
var PulseShape = [2]float64{1.0, 0.4}

// PulseCharge is the total charge of a pulse of unit amplitude.
const PulseCharge = 1.4

type EventState int

const (
	Sampling EventState = iota
	Injecting
	Reducing
	Done
)

func (s EventState) String() string {
	switch s {
	case Sampling:
		return "Sampling"
	case Injecting:
		return "Injecting"
	case Reducing:
		return "Reducing"
	case Done:
		return "Done"
	default:
		return "Unknown"
	}
}

type Pulse struct {
	Slot      int
	Amplitude float64
}

type EventType struct {
	Index   int
	State   EventState
	Samples []float64
	Pulses  []Pulse
	// Sum of the pedestal+noise draws, before any injection
	BackgroundSum float64
	// Same, restricted to the first nSampInPed samples
	BackgroundPedSum float64
	Sum              float64
	Added            float64
	Pedestals        map[PedestalMethod]float64
}

// Subtracted returns the event sum with the pedestal found by method
// removed from every sample.
func (e *EventType) Subtracted(method PedestalMethod) float64 {
	return e.Sum - e.Pedestals[method]*float64(len(e.Samples))
}
