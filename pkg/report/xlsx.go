package report

import (
	"fmt"

	pesim "github.com/next-exp/pesim_go/pkg"
	"github.com/xuri/excelize/v2"
)

const (
	SummarySheet = "Summary"
	FitsSheet    = "Fits"
	EventsSheet  = "Events"
	PulsesSheet  = "Pulses"
)

func setRow(f *excelize.File, sheet string, row int, values ...interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

// SaveToXLSX exports a run to a workbook with one summary sheet, one sheet per
// histogram and the fits, retained events and pulses.
func SaveToXLSX(filename string, result *pesim.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return err
	}
	if err := writeSummarySheet(f, result); err != nil {
		return fmt.Errorf("error writing %s sheet: %w", SummarySheet, err)
	}

	for _, nh := range result.Histograms.Named() {
		if err := writeHistogramSheet(f, nh); err != nil {
			return fmt.Errorf("error writing %s sheet: %w", nh.Name, err)
		}
	}
	if err := writeFitsSheet(f, result.Fits); err != nil {
		return fmt.Errorf("error writing %s sheet: %w", FitsSheet, err)
	}
	if err := writeEventsSheets(f, result); err != nil {
		return fmt.Errorf("error writing %s sheet: %w", EventsSheet, err)
	}

	return f.SaveAs(filename)
}

func writeSummarySheet(f *excelize.File, result *pesim.Result) error {
	c := result.Config
	rows := [][]interface{}{
		{"Parameter", "Value"},
		{"run_id", result.RunID},
		{"n_events", c.NEvents},
		{"noise_level", c.NoiseLevel},
		{"av_pe_mult", c.AvPEMult},
		{"pe_ampl", c.PEAmpl},
		{"rel_pe_width", c.RelPEWidth},
		{"pedestal", c.Pedestal},
		{"n_time_samples", c.NTimeSamples},
		{"n_samples_in_ped", c.NSamplesInPed},
		{"bins_per_unit", c.BinsPerUnit},
		{"seed", c.Seed},
		{"num_workers", c.NumWorkers},
		{"legacy_pedestal", c.LegacyPedestal},
		{"duration_ms", result.Duration.Milliseconds()},
	}
	for i, row := range rows {
		if err := setRow(f, SummarySheet, i+1, row...); err != nil {
			return err
		}
	}
	return nil
}

func writeHistogramSheet(f *excelize.File, nh pesim.NamedHistogram) error {
	if _, err := f.NewSheet(nh.Name); err != nil {
		return err
	}
	if err := setRow(f, nh.Name, 1, "Low", "High", "Count"); err != nil {
		return err
	}
	for i, b := range pesim.Bins(nh.H) {
		if err := setRow(f, nh.Name, i+2, b.Low, b.High, b.Count); err != nil {
			return err
		}
	}
	return nil
}

func writeFitsSheet(f *excelize.File, fits []pesim.GaussFit) error {
	if _, err := f.NewSheet(FitsSheet); err != nil {
		return err
	}
	err := setRow(f, FitsSheet, 1, "Name", "Low", "High", "Constant", "Mean", "Sigma", "Chi2", "NDF", "Converged", "Status")
	if err != nil {
		return err
	}
	for i, fit := range fits {
		err := setRow(f, FitsSheet, i+2, fit.Name, fit.Low, fit.High, fit.Amplitude,
			fit.Mean, fit.Sigma, fit.Chi2, fit.NDF, fit.Converged, fit.Status)
		if err != nil {
			return err
		}
	}
	return nil
}

func writeEventsSheets(f *excelize.File, result *pesim.Result) error {
	methods := result.Histograms.Methods()
	for _, sheet := range []string{EventsSheet, PulsesSheet} {
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
	}

	header := []interface{}{"Event", "Sum", "Added", "NPulses"}
	for _, m := range methods {
		header = append(header, m.String())
	}
	if err := setRow(f, EventsSheet, 1, header...); err != nil {
		return err
	}
	if err := setRow(f, PulsesSheet, 1, "Event", "Slot", "Amplitude"); err != nil {
		return err
	}

	pulseRow := 2
	for i, event := range result.Retained {
		values := []interface{}{event.Index, event.Sum, event.Added, len(event.Pulses)}
		for _, m := range methods {
			values = append(values, event.Pedestals[m])
		}
		if err := setRow(f, EventsSheet, i+2, values...); err != nil {
			return err
		}
		for _, p := range event.Pulses {
			if err := setRow(f, PulsesSheet, pulseRow, event.Index, p.Slot, p.Amplitude); err != nil {
				return err
			}
			pulseRow++
		}
	}
	return nil
}
