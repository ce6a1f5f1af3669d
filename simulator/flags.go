package main

import (
	"flag"

	pesim "github.com/next-exp/pesim_go/pkg"
)

type commandLine struct {
	fs         *flag.FlagSet
	configFile string
	events     int
	noise      float64
	avPE       float64
	ampl       float64
	width      float64
	seed       uint64
	workers    int
	legacy     bool
	fileOut    string
	xlsxOut    string
	verbosity  int
}

func newCommandLine(name string) *commandLine {
	c := &commandLine{fs: flag.NewFlagSet(name, flag.ContinueOnError)}
	c.fs.StringVar(&c.configFile, "config", "", "Configuration file path (JSON or YAML)")
	c.fs.IntVar(&c.events, "events", 0, "Number of events")
	c.fs.Float64Var(&c.noise, "noise", 0, "Gaussian noise level per sample")
	c.fs.Float64Var(&c.avPE, "avpe", 0, "Average number of PEs per event")
	c.fs.Float64Var(&c.ampl, "ampl", 0, "Mean PE amplitude")
	c.fs.Float64Var(&c.width, "width", 0, "Relative PE amplitude width")
	c.fs.Uint64Var(&c.seed, "seed", 0, "Random seed")
	c.fs.IntVar(&c.workers, "workers", 0, "Number of event generation workers")
	c.fs.BoolVar(&c.legacy, "legacy-pedestal", false, "Use the pulse-aware mean pedestal accumulation")
	c.fs.StringVar(&c.fileOut, "out", "", "HDF5 output file")
	c.fs.StringVar(&c.xlsxOut, "xlsx", "", "Spreadsheet output file")
	c.fs.IntVar(&c.verbosity, "v", 0, "Verbosity level")
	return c
}

func (c *commandLine) Parse(args []string) error {
	return c.fs.Parse(args)
}

// Apply overrides the configuration with the flags given explicitly on the
// command line.
func (c *commandLine) Apply(config *pesim.Configuration) {
	c.fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "events":
			config.NEvents = c.events
		case "noise":
			config.NoiseLevel = c.noise
		case "avpe":
			config.AvPEMult = c.avPE
		case "ampl":
			config.PEAmpl = c.ampl
		case "width":
			config.RelPEWidth = c.width
		case "seed":
			config.Seed = c.seed
		case "workers":
			config.NumWorkers = c.workers
		case "legacy-pedestal":
			config.LegacyPedestal = c.legacy
		case "out":
			config.FileOut = c.fileOut
		case "xlsx":
			config.XLSXOut = c.xlsxOut
		case "v":
			config.Verbosity = c.verbosity
		}
	})
}
