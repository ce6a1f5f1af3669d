package pesim

import "math"

type Configuration struct {
	NEvents          int     `json:"n_events" yaml:"n_events" hdf5:"nEvents"`
	NoiseLevel       float64 `json:"noise_level" yaml:"noise_level" hdf5:"noiseLevel"`
	AvPEMult         float64 `json:"av_pe_mult" yaml:"av_pe_mult" hdf5:"avPEmult"`
	PEAmpl           float64 `json:"pe_ampl" yaml:"pe_ampl" hdf5:"PEampl"`
	RelPEWidth       float64 `json:"rel_pe_width" yaml:"rel_pe_width" hdf5:"relPEwidth"`
	Pedestal         float64 `json:"pedestal" yaml:"pedestal" hdf5:"pedestal"`
	NTimeSamples     int     `json:"n_time_samples" yaml:"n_time_samples" hdf5:"nTimeSamp"`
	NSamplesInPed    int     `json:"n_samples_in_ped" yaml:"n_samples_in_ped" hdf5:"nSampInPed"`
	BinsPerUnit      int     `json:"bins_per_unit" yaml:"bins_per_unit" hdf5:"binsPerUnit"`
	Seed             uint64  `json:"seed" yaml:"seed" hdf5:"seed"`
	NumWorkers       int     `json:"num_workers" yaml:"num_workers"`
	RetainEvents     int     `json:"retain_events" yaml:"retain_events" hdf5:"retainEvents"`
	LegacyPedestal   bool    `json:"legacy_pedestal" yaml:"legacy_pedestal"`
	Verbosity        int     `json:"verbosity" yaml:"verbosity"`
	FileOut          string  `json:"file_out" yaml:"file_out"`
	CompressionLevel int     `json:"compression_level" yaml:"compression_level"`
	XLSXOut          string  `json:"xlsx_out" yaml:"xlsx_out"`
	NoDB             bool    `json:"no_db" yaml:"no_db"`
	DBDriver         string  `json:"db_driver" yaml:"db_driver"`
	DSN              string  `json:"dsn" yaml:"dsn"`
	Host             string  `json:"host" yaml:"host"`
	User             string  `json:"user" yaml:"user"`
	Passwd           string  `json:"pass" yaml:"pass"`
	DBName           string  `json:"dbname" yaml:"dbname"`
}

// DefaultConfiguration returns the parameters of the reference study:
// 100 samples per event around a pedestal of 40, one PE of amplitude 5 on
// average.
func DefaultConfiguration() Configuration {
	return Configuration{
		NEvents:          100000,
		NoiseLevel:       1,
		AvPEMult:         1,
		PEAmpl:           5,
		RelPEWidth:       0.25,
		Pedestal:         40,
		NTimeSamples:     100,
		NSamplesInPed:    50,
		BinsPerUnit:      2,
		Seed:             1,
		NumWorkers:       1,
		RetainEvents:     10,
		LegacyPedestal:   false,
		Verbosity:        0,
		CompressionLevel: 4,
		NoDB:             true,
		DBDriver:         "mysql",
		Host:             "localhost",
		DBName:           "PESIM",
	}
}

// Validate rejects parameters that would make a random draw or a histogram
// ill-defined.
func (c Configuration) Validate() error {
	switch {
	case c.NEvents < 0:
		return &ConfigError{Field: "n_events", Reason: "must not be negative"}
	case !(c.NoiseLevel > 0):
		return &ConfigError{Field: "noise_level", Reason: "must be positive"}
	case c.AvPEMult < 0 || math.IsNaN(c.AvPEMult):
		return &ConfigError{Field: "av_pe_mult", Reason: "must not be negative"}
	case !(c.RelPEWidth*c.PEAmpl > 0):
		return &ConfigError{Field: "rel_pe_width", Reason: "amplitude width rel_pe_width*pe_ampl must be positive"}
	case c.NTimeSamples < 2:
		return &ConfigError{Field: "n_time_samples", Reason: "need room for the pulse tail sample"}
	case c.NSamplesInPed < 1 || c.NSamplesInPed > c.NTimeSamples:
		return &ConfigError{Field: "n_samples_in_ped", Reason: "must be within [1, n_time_samples]"}
	case c.BinsPerUnit < 1:
		return &ConfigError{Field: "bins_per_unit", Reason: "must be at least 1"}
	case c.NumWorkers < 1:
		return &ConfigError{Field: "num_workers", Reason: "must be at least 1"}
	case c.RetainEvents < 0:
		return &ConfigError{Field: "retain_events", Reason: "must not be negative"}
	}
	_, err := computeRanges(c)
	return err
}

// PedestalMethods returns the estimators whose subtracted sums are
// histogrammed, the average one first.
func (c Configuration) PedestalMethods() []PedestalMethod {
	if c.LegacyPedestal {
		return []PedestalMethod{LegacyMean, MedianBand}
	}
	return []PedestalMethod{Mean, MedianBand}
}
