package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	pesim "github.com/next-exp/pesim_go/pkg"
	"gopkg.in/yaml.v3"
)

// LoadConfiguration reads a JSON or YAML file on top of the default
// parameters. An empty filename yields the defaults.
func LoadConfiguration(filename string) (pesim.Configuration, error) {
	config := pesim.DefaultConfiguration()
	if filename == "" {
		return config, nil
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, err
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &config)
	default:
		err = json.Unmarshal(data, &config)
	}
	if err != nil {
		return config, fmt.Errorf("error parsing %s: %w", filename, err)
	}
	return config, nil
}

func printConfiguration(config pesim.Configuration, logger Logger) {
	logger.Info(fmt.Sprintf("Number of events: %d", config.NEvents), "config")
	logger.Info(fmt.Sprintf("Noise level: %g", config.NoiseLevel), "config")
	logger.Info(fmt.Sprintf("Average PE multiplicity: %g", config.AvPEMult), "config")
	logger.Info(fmt.Sprintf("PE amplitude: %g", config.PEAmpl), "config")
	logger.Info(fmt.Sprintf("Relative PE width: %g", config.RelPEWidth), "config")
	logger.Info(fmt.Sprintf("Pedestal: %g", config.Pedestal), "config")
	logger.Info(fmt.Sprintf("Time samples: %d", config.NTimeSamples), "config")
	logger.Info(fmt.Sprintf("Samples in pedestal: %d", config.NSamplesInPed), "config")
	logger.Info(fmt.Sprintf("Bins per unit: %d", config.BinsPerUnit), "config")
	logger.Info(fmt.Sprintf("Seed: %d", config.Seed), "config")
	logger.Info(fmt.Sprintf("Number of workers: %d", config.NumWorkers), "config")
	logger.Info(fmt.Sprintf("Retained events: %d", config.RetainEvents), "config")
	logger.Info(fmt.Sprintf("Legacy pedestal: %t", config.LegacyPedestal), "config")
	logger.Info(fmt.Sprintf("Verbosity: %d", config.Verbosity), "config")
	logger.Info(fmt.Sprintf("File out: %s", config.FileOut), "config")
	logger.Info(fmt.Sprintf("Spreadsheet out: %s", config.XLSXOut), "config")
	logger.Info(fmt.Sprintf("No DB: %t", config.NoDB), "config")
	if !config.NoDB {
		logger.Info(fmt.Sprintf("DB driver: %s", config.DBDriver), "config")
		logger.Info(fmt.Sprintf("Host: %s", config.Host), "config")
		logger.Info(fmt.Sprintf("DB name: %s", config.DBName), "config")
	}
}
