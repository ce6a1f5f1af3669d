package h5

import (
	"errors"
	"fmt"
	"reflect"

	pesim "github.com/next-exp/pesim_go/pkg"
	"gonum.org/v1/hdf5"
)

// Writer stores the outcome of a simulation run in an HDF5 file:
//
//	/Run/parameters, /Run/runInfo
//	/Histograms/<name>, /Histograms/outflows
//	/Events/samples, /Events/events, /Events/pulses
//	/Fits/gauss
type Writer struct {
	File             *hdf5.File
	Filename         string
	CompressionLevel int
	RunGroup         *hdf5.Group
	HistogramsGroup  *hdf5.Group
	EventsGroup      *hdf5.Group
	FitsGroup        *hdf5.Group
	datasets         []*hdf5.Dataset
}

func NewWriter(filename string, compressionLevel int) (*Writer, error) {
	file, err := openFile(filename)
	if err != nil {
		return nil, err
	}
	writer := &Writer{File: file, Filename: filename, CompressionLevel: compressionLevel}

	groups := []struct {
		name  string
		group **hdf5.Group
	}{
		{"Run", &writer.RunGroup},
		{"Histograms", &writer.HistogramsGroup},
		{"Events", &writer.EventsGroup},
		{"Fits", &writer.FitsGroup},
	}
	for _, g := range groups {
		*g.group, err = createGroup(file, g.name)
		if err != nil {
			writer.Close()
			return nil, err
		}
	}
	return writer, nil
}

func (w *Writer) table(group *hdf5.Group, name string, datatype interface{}) (*hdf5.Dataset, error) {
	dset, err := createTable(group, name, datatype, w.CompressionLevel)
	if err != nil {
		return nil, err
	}
	w.datasets = append(w.datasets, dset)
	return dset, nil
}

// WriteResult writes every part of a run.
func (w *Writer) WriteResult(result *pesim.Result) error {
	if err := w.writeRun(result); err != nil {
		return fmt.Errorf("error writing run information: %w", err)
	}
	if err := w.writeHistograms(result.Histograms); err != nil {
		return fmt.Errorf("error writing histograms: %w", err)
	}
	if err := w.writeEvents(result); err != nil {
		return fmt.Errorf("error writing events: %w", err)
	}
	if err := w.writeFits(result.Fits); err != nil {
		return fmt.Errorf("error writing fits: %w", err)
	}
	return nil
}

func (w *Writer) writeRun(result *pesim.Result) error {
	info, err := w.table(w.RunGroup, "runInfo", RunInfoHDF5{})
	if err != nil {
		return err
	}
	entry := []RunInfoHDF5{{
		RunID:    convertToHdf5String(result.RunID),
		NEvents:  int64(result.Config.NEvents),
		Duration: result.Duration.Milliseconds(),
	}}
	if err := writeArrayToTable(info, entry, 0); err != nil {
		return err
	}

	params, err := w.table(w.RunGroup, "parameters", ParameterHDF5{})
	if err != nil {
		return err
	}
	return writeArrayToTable(params, configurationEntries(result.Config), 0)
}

// configurationEntries lists every numeric configuration field carrying an
// hdf5 tag.
func configurationEntries(config pesim.Configuration) []ParameterHDF5 {
	t := reflect.TypeOf(config)
	v := reflect.ValueOf(config)
	entries := make([]ParameterHDF5, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		paramName := t.Field(i).Tag.Get("hdf5")
		if paramName == "" {
			continue
		}
		var value float64
		switch f := v.Field(i); f.Kind() {
		case reflect.Int, reflect.Int32, reflect.Int64:
			value = float64(f.Int())
		case reflect.Uint, reflect.Uint32, reflect.Uint64:
			value = float64(f.Uint())
		case reflect.Float32, reflect.Float64:
			value = f.Float()
		default:
			continue
		}
		entries = append(entries, ParameterHDF5{Name: convertToHdf5String(paramName), Value: value})
	}
	return entries
}

func (w *Writer) writeHistograms(hists *pesim.Histograms) error {
	named := hists.Named()
	outflows := make([]OutflowHDF5, 0, len(named))
	for _, nh := range named {
		dset, err := w.table(w.HistogramsGroup, nh.Name, BinHDF5{})
		if err != nil {
			return err
		}
		bins := pesim.Bins(nh.H)
		rows := make([]BinHDF5, len(bins))
		for i, b := range bins {
			rows[i] = BinHDF5{Low: b.Low, High: b.High, Count: b.Count}
		}
		if err := writeArrayToTable(dset, rows, 0); err != nil {
			return fmt.Errorf("histogram %s: %w", nh.Name, err)
		}

		under, over := pesim.Outflows(nh.H)
		outflows = append(outflows, OutflowHDF5{
			Name:      convertToHdf5String(nh.Name),
			Underflow: under,
			Overflow:  over,
			Entries:   nh.H.Entries(),
		})
	}
	dset, err := w.table(w.HistogramsGroup, "outflows", OutflowHDF5{})
	if err != nil {
		return err
	}
	return writeArrayToTable(dset, outflows, 0)
}

func (w *Writer) writeEvents(result *pesim.Result) error {
	methods := result.Histograms.Methods()
	events := make([]EventHDF5, 0, len(result.Retained))
	var pulses []PulseHDF5
	for _, event := range result.Retained {
		events = append(events, EventHDF5{
			Event:       int32(event.Index),
			Sum:         event.Sum,
			Added:       event.Added,
			AvPedestal:  event.Pedestals[methods[0]],
			MedPedestal: event.Pedestals[pesim.MedianBand],
			NPulses:     int32(len(event.Pulses)),
		})
		for _, p := range event.Pulses {
			pulses = append(pulses, PulseHDF5{Event: int32(event.Index), Slot: int32(p.Slot), Amplitude: p.Amplitude})
		}
	}

	eventsTable, err := w.table(w.EventsGroup, "events", EventHDF5{})
	if err != nil {
		return err
	}
	if err := writeArrayToTable(eventsTable, events, 0); err != nil {
		return err
	}
	pulsesTable, err := w.table(w.EventsGroup, "pulses", PulseHDF5{})
	if err != nil {
		return err
	}
	if err := writeArrayToTable(pulsesTable, pulses, 0); err != nil {
		return err
	}

	if len(result.Retained) == 0 {
		return nil
	}
	samples, err := create2dArray(w.EventsGroup, "samples", result.Config.NTimeSamples, w.CompressionLevel)
	if err != nil {
		return err
	}
	w.datasets = append(w.datasets, samples)
	for row, event := range result.Retained {
		if err := writeRow(samples, event.Samples, row); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeFits(fits []pesim.GaussFit) error {
	rows := make([]GaussFitHDF5, len(fits))
	for i, f := range fits {
		converged := int32(0)
		if f.Converged {
			converged = 1
		}
		rows[i] = GaussFitHDF5{
			Name:      convertToHdf5String(f.Name),
			Low:       f.Low,
			High:      f.High,
			Amplitude: f.Amplitude,
			Mean:      f.Mean,
			Sigma:     f.Sigma,
			Chi2:      f.Chi2,
			NDF:       int32(f.NDF),
			Converged: converged,
		}
	}
	dset, err := w.table(w.FitsGroup, "gauss", GaussFitHDF5{})
	if err != nil {
		return err
	}
	return writeArrayToTable(dset, rows, 0)
}

func (w *Writer) Close() error {
	var errs []error

	for _, dset := range w.datasets {
		if err := dset.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing dataset: %w", err))
		}
	}
	groups := []struct {
		name  string
		group *hdf5.Group
	}{
		{"run", w.RunGroup},
		{"histograms", w.HistogramsGroup},
		{"events", w.EventsGroup},
		{"fits", w.FitsGroup},
	}
	for _, g := range groups {
		if g.group == nil {
			continue
		}
		if err := g.group.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing %s group: %w", g.name, err))
		}
	}
	if err := w.File.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing file: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
