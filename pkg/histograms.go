package pesim

import (
	"fmt"

	"go-hep.org/x/hep/hbook"
)

type histogramRanges struct {
	SumMin, SumMax       float64
	SumBins              int
	SubMin, SubMax       float64
	SubBins              int
	TimeSlotBins         int
	TimeSlotMax          float64
	RawSumFitMax         float64
	SubtractedFitHalfWin float64
}

// computeRanges derives the histogram ranges from the noise and pulse regime.
// Edges are truncated to integers so that bin widths are 1/binsPerUnit.
func computeRanges(c Configuration) (histogramRanges, error) {
	n := float64(c.NTimeSamples)
	maxMult := int(c.AvPEMult * c.PEAmpl)
	if maxMult < 4 {
		maxMult = 4
	}
	sumMin := int((c.Pedestal - 4*c.NoiseLevel) * n)
	sumMax := int((c.Pedestal + float64(maxMult)*c.NoiseLevel) * n)
	subMax := int(float64(maxMult) * c.NoiseLevel * n)
	subMin := -subMax

	r := histogramRanges{
		SumMin:               float64(sumMin),
		SumMax:               float64(sumMax),
		SumBins:              (sumMax - sumMin) * c.BinsPerUnit,
		SubMin:               float64(subMin),
		SubMax:               float64(subMax),
		SubBins:              (subMax - subMin) * c.BinsPerUnit,
		TimeSlotBins:         c.NTimeSamples + 1,
		TimeSlotMax:          n + 1,
		RawSumFitMax:         n * (c.Pedestal + 2*c.NoiseLevel),
		SubtractedFitHalfWin: 2 * n * c.NoiseLevel,
	}
	if r.SumBins <= 0 {
		return r, &ConfigError{
			Field:  "noise_level",
			Reason: fmt.Sprintf("sum histogram range [%d, %d] is empty", sumMin, sumMax),
		}
	}
	if r.SubBins <= 0 {
		return r, &ConfigError{
			Field:  "noise_level",
			Reason: fmt.Sprintf("subtracted sum histogram range [%d, %d] is empty", subMin, subMax),
		}
	}
	return r, nil
}

// Histograms holds the population histograms filled by every event.
type Histograms struct {
	Sum         *hbook.H1D
	Subtracted  map[PedestalMethod]*hbook.H1D
	AddedCharge *hbook.H1D
	TimeSample  *hbook.H1D
	methods     []PedestalMethod
}

func newH1D(name, title string, nbins int, xmin, xmax float64) *hbook.H1D {
	h := hbook.NewH1D(nbins, xmin, xmax)
	h.Ann["name"] = name
	h.Ann["title"] = title
	return h
}

func NewHistograms(config Configuration) (*Histograms, error) {
	r, err := computeRanges(config)
	if err != nil {
		return nil, err
	}
	methods := config.PedestalMethods()
	hists := &Histograms{
		Sum:         newH1D("hSum", "Simple sum histogram", r.SumBins, r.SumMin, r.SumMax),
		Subtracted:  make(map[PedestalMethod]*hbook.H1D, len(methods)),
		AddedCharge: newH1D("hAddedCharge", "Added total pulse amplitude histogram", r.SubBins, r.SubMin, r.SubMax),
		TimeSample:  newH1D("hTimeSample", "Start time sample chosen for PE pulses", r.TimeSlotBins, 0, r.TimeSlotMax),
		methods:     methods,
	}
	for _, method := range methods {
		name := "hSubtractedSum"
		title := "Pedestal subtracted sum histogram"
		if method == MedianBand {
			name = "hMedSubtractedSum"
			title = "Median range average pedestal subtracted sum histogram"
		}
		hists.Subtracted[method] = newH1D(name, title, r.SubBins, r.SubMin, r.SubMax)
	}
	return hists, nil
}

// Fill adds one reduced event to every histogram.
func (h *Histograms) Fill(event *EventType) {
	for _, p := range event.Pulses {
		h.TimeSample.Fill(float64(p.Slot), 1)
	}
	h.AddedCharge.Fill(event.Added, 1)
	h.Sum.Fill(event.Sum, 1)
	for _, method := range h.methods {
		h.Subtracted[method].Fill(event.Subtracted(method), 1)
	}
}

// Methods returns the pedestal estimators with a subtracted-sum histogram.
func (h *Histograms) Methods() []PedestalMethod {
	return h.methods
}

// Named returns every histogram in a fixed order, keyed by its name.
func (h *Histograms) Named() []NamedHistogram {
	named := []NamedHistogram{{Name: HistogramName(h.Sum), H: h.Sum}}
	for _, method := range h.methods {
		named = append(named, NamedHistogram{Name: HistogramName(h.Subtracted[method]), H: h.Subtracted[method]})
	}
	named = append(named,
		NamedHistogram{Name: HistogramName(h.AddedCharge), H: h.AddedCharge},
		NamedHistogram{Name: HistogramName(h.TimeSample), H: h.TimeSample},
	)
	return named
}

type NamedHistogram struct {
	Name string
	H    *hbook.H1D
}

func HistogramName(h *hbook.H1D) string {
	name, _ := h.Ann["name"].(string)
	return name
}

func HistogramTitle(h *hbook.H1D) string {
	title, _ := h.Ann["title"].(string)
	return title
}

type Bin struct {
	Low   float64
	High  float64
	Count int64
}

// Bins lists the in-range bins of h.
func Bins(h *hbook.H1D) []Bin {
	bins := make([]Bin, len(h.Binning.Bins))
	for i, b := range h.Binning.Bins {
		bins[i] = Bin{Low: b.XMin(), High: b.XMax(), Count: b.Entries()}
	}
	return bins
}

// Outflows returns the number of entries below and above the range of h.
func Outflows(h *hbook.H1D) (underflow, overflow int64) {
	return h.Binning.Outflows[0].Entries(), h.Binning.Outflows[1].Entries()
}
