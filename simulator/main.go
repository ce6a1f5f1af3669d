package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	_ "github.com/go-sql-driver/mysql"
	sqlx "github.com/jmoiron/sqlx"
	pesim "github.com/next-exp/pesim_go/pkg"
	"github.com/next-exp/pesim_go/pkg/catalogue"
	"github.com/next-exp/pesim_go/pkg/h5"
	"github.com/next-exp/pesim_go/pkg/report"
	_ "modernc.org/sqlite"
)

var logger Logger

func init() {
	logger = defaultLogger()
}

func main() {
	cmd := newCommandLine(os.Args[0])
	if err := cmd.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	configuration, err := LoadConfiguration(cmd.configFile)
	if err != nil {
		message := fmt.Errorf("Error reading configuration file: %w", err)
		logger.Error(message.Error())
		os.Exit(1)
	}
	cmd.Apply(&configuration)
	pesim.SetLogger(logger)

	if configuration.Verbosity > 0 {
		if cmd.configFile != "" {
			logger.Info(fmt.Sprintf("Reading configuration file: %s", cmd.configFile), "main")
		}
		printConfiguration(configuration, logger)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, configuration); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

func run(ctx context.Context, configuration pesim.Configuration) error {
	sim, err := pesim.NewSimulator(configuration)
	if err != nil {
		return fmt.Errorf("Error in configuration: %w", err)
	}

	result, err := sim.Run(ctx)
	if err != nil {
		return fmt.Errorf("Error running simulation: %w", err)
	}
	if configuration.Verbosity > 0 {
		message := fmt.Sprintf("Simulated %d events in %d ms", configuration.NEvents, result.Duration.Milliseconds())
		logger.Info(message, "main")
	}

	if err := report.WriteSummary(os.Stdout, result); err != nil {
		return fmt.Errorf("Error printing summary: %w", err)
	}

	if configuration.FileOut != "" {
		if err := writeHDF5(configuration, result); err != nil {
			return err
		}
	}
	if configuration.XLSXOut != "" {
		if err := report.SaveToXLSX(configuration.XLSXOut, result); err != nil {
			return fmt.Errorf("Error writing spreadsheet: %w", err)
		}
		if configuration.Verbosity > 0 {
			logger.Info(fmt.Sprintf("Spreadsheet written to %s", configuration.XLSXOut), "main")
		}
	}
	if !configuration.NoDB {
		if err := saveToCatalogue(ctx, configuration, result); err != nil {
			return err
		}
	}
	return nil
}

func writeHDF5(configuration pesim.Configuration, result *pesim.Result) error {
	writer, err := h5.NewWriter(configuration.FileOut, configuration.CompressionLevel)
	if err != nil {
		return fmt.Errorf("Error creating output file: %w", err)
	}
	if err := writer.WriteResult(result); err != nil {
		writer.Close()
		return fmt.Errorf("Error writing output file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("Error closing output file: %w", err)
	}
	if configuration.Verbosity > 0 {
		logger.Info(fmt.Sprintf("Results written to %s", configuration.FileOut), "main")
	}
	return nil
}

func connectToCatalogue(configuration pesim.Configuration) (*sqlx.DB, error) {
	if configuration.DSN == "" && configuration.DBDriver == "mysql" {
		return catalogue.ConnectToDatabase(configuration.User, configuration.Passwd, configuration.Host, configuration.DBName)
	}
	return catalogue.Open(configuration.DBDriver, configuration.DSN)
}

func saveToCatalogue(ctx context.Context, configuration pesim.Configuration, result *pesim.Result) error {
	dbConn, err := connectToCatalogue(configuration)
	if err != nil {
		return fmt.Errorf("Error connection to database: %w", err)
	}
	defer dbConn.Close()

	if err := catalogue.CreateSchema(ctx, dbConn); err != nil {
		return err
	}
	if err := catalogue.SaveRun(ctx, dbConn, result); err != nil {
		return err
	}
	if configuration.Verbosity > 0 {
		logger.Info(fmt.Sprintf("Run %s saved to the catalogue", result.RunID), "database")
	}
	return nil
}
