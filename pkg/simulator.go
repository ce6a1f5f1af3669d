package pesim

type Simulator struct {
	config  Configuration
	methods []PedestalMethod
	ranges  histogramRanges
}

func NewSimulator(config Configuration) (*Simulator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	ranges, err := computeRanges(config)
	if err != nil {
		return nil, err
	}
	return &Simulator{
		config:  config,
		methods: config.PedestalMethods(),
		ranges:  ranges,
	}, nil
}

func (s *Simulator) Configuration() Configuration {
	return s.config
}

// GenerateEvent runs one event through sampling, injection and reduction,
// drawing every random number from rng.
func (s *Simulator) GenerateEvent(rng *Random, index int) *EventType {
	event := &EventType{
		Index:     index,
		State:     Sampling,
		Samples:   make([]float64, s.config.NTimeSamples),
		Pedestals: make(map[PedestalMethod]float64, len(s.methods)),
	}
	s.sample(rng, event)
	s.inject(rng, event)
	s.reduce(event)
	event.State = Done
	return event
}

func (s *Simulator) sample(rng *Random, event *EventType) {
	for i := range event.Samples {
		val := rng.Gaus(s.config.Pedestal, s.config.NoiseLevel)
		event.Samples[i] = val
		event.BackgroundSum += val
		if i < s.config.NSamplesInPed {
			event.BackgroundPedSum += val
		}
	}
	event.Sum = event.BackgroundSum
	event.State = Injecting
}

func (s *Simulator) inject(rng *Random, event *EventType) {
	nPEs := rng.Poisson(s.config.AvPEMult)
	amplSigma := s.config.RelPEWidth * s.config.PEAmpl
	for i := 0; i < nPEs; i++ {
		// The last sample is never a pulse start so the tail stays in range
		slot := rng.IntN(s.config.NTimeSamples - 1)
		amp := rng.Gaus(s.config.PEAmpl, amplSigma)
		for j, fraction := range PulseShape {
			event.Samples[slot+j] += fraction * amp
		}
		event.Sum += PulseCharge * amp
		event.Added += PulseCharge * amp
		event.Pulses = append(event.Pulses, Pulse{Slot: slot, Amplitude: amp})
	}
	event.State = Reducing
}

func (s *Simulator) reduce(event *EventType) {
	for _, method := range s.methods {
		event.Pedestals[method] = method.Estimate(event, s.config.NSamplesInPed)
	}
}
