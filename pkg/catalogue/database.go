package catalogue

import (
	"context"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	sqlx "github.com/jmoiron/sqlx" //make alias name the package to sqlx
	pesim "github.com/next-exp/pesim_go/pkg"
)

func ConnectToDatabase(user string, pass string, host string, dbname string) (*sqlx.DB, error) {
	port := "3306"
	dbURI := fmt.Sprintf("%s:%s@(%s:%s)/%s?parseTime=true", user, pass, host, port, dbname)
	return sqlx.Connect("mysql", dbURI)
}

// Open connects with any registered driver, e.g. "sqlite" for a local
// catalogue file.
func Open(driver string, dsn string) (*sqlx.DB, error) {
	return sqlx.Connect(driver, dsn)
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS Runs (
		RunID VARCHAR(36) NOT NULL PRIMARY KEY,
		CreatedAt TIMESTAMP NOT NULL,
		NEvents INTEGER NOT NULL,
		NoiseLevel DOUBLE NOT NULL,
		AvPEMult DOUBLE NOT NULL,
		PEAmpl DOUBLE NOT NULL,
		RelPEWidth DOUBLE NOT NULL,
		Pedestal DOUBLE NOT NULL,
		NTimeSamples INTEGER NOT NULL,
		NSamplesInPed INTEGER NOT NULL,
		Seed BIGINT NOT NULL,
		LegacyPedestal INTEGER NOT NULL,
		DurationMs BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS GaussFits (
		RunID VARCHAR(36) NOT NULL,
		Name VARCHAR(40) NOT NULL,
		FitLow DOUBLE NOT NULL,
		FitHigh DOUBLE NOT NULL,
		Amplitude DOUBLE NOT NULL,
		Mean DOUBLE NOT NULL,
		Sigma DOUBLE NOT NULL,
		Chi2 DOUBLE NOT NULL,
		NDF INTEGER NOT NULL,
		Converged INTEGER NOT NULL,
		Status VARCHAR(255) NOT NULL,
		PRIMARY KEY (RunID, Name)
	)`,
}

func CreateSchema(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("error creating catalogue schema: %w", err)
		}
	}
	return nil
}

type RunEntry struct {
	RunID          string    `db:"RunID"`
	CreatedAt      time.Time `db:"CreatedAt"`
	NEvents        int       `db:"NEvents"`
	NoiseLevel     float64   `db:"NoiseLevel"`
	AvPEMult       float64   `db:"AvPEMult"`
	PEAmpl         float64   `db:"PEAmpl"`
	RelPEWidth     float64   `db:"RelPEWidth"`
	Pedestal       float64   `db:"Pedestal"`
	NTimeSamples   int       `db:"NTimeSamples"`
	NSamplesInPed  int       `db:"NSamplesInPed"`
	Seed           int64     `db:"Seed"`
	LegacyPedestal bool      `db:"LegacyPedestal"`
	DurationMs     int64     `db:"DurationMs"`
}

type FitEntry struct {
	RunID     string  `db:"RunID"`
	Name      string  `db:"Name"`
	FitLow    float64 `db:"FitLow"`
	FitHigh   float64 `db:"FitHigh"`
	Amplitude float64 `db:"Amplitude"`
	Mean      float64 `db:"Mean"`
	Sigma     float64 `db:"Sigma"`
	Chi2      float64 `db:"Chi2"`
	NDF       int     `db:"NDF"`
	Converged bool    `db:"Converged"`
	Status    string  `db:"Status"`
}

func newRunEntry(result *pesim.Result, createdAt time.Time) RunEntry {
	c := result.Config
	return RunEntry{
		RunID:          result.RunID,
		CreatedAt:      createdAt,
		NEvents:        c.NEvents,
		NoiseLevel:     c.NoiseLevel,
		AvPEMult:       c.AvPEMult,
		PEAmpl:         c.PEAmpl,
		RelPEWidth:     c.RelPEWidth,
		Pedestal:       c.Pedestal,
		NTimeSamples:   c.NTimeSamples,
		NSamplesInPed:  c.NSamplesInPed,
		Seed:           int64(c.Seed),
		LegacyPedestal: c.LegacyPedestal,
		DurationMs:     result.Duration.Milliseconds(),
	}
}

// SaveRun records the parameters and fit results of a run in one
// transaction.
func SaveRun(ctx context.Context, db *sqlx.DB, result *pesim.Result) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	run := newRunEntry(result, time.Now().UTC())
	_, err = tx.NamedExecContext(ctx, `INSERT INTO Runs
		(RunID, CreatedAt, NEvents, NoiseLevel, AvPEMult, PEAmpl, RelPEWidth, Pedestal,
		 NTimeSamples, NSamplesInPed, Seed, LegacyPedestal, DurationMs)
		VALUES (:RunID, :CreatedAt, :NEvents, :NoiseLevel, :AvPEMult, :PEAmpl, :RelPEWidth, :Pedestal,
		 :NTimeSamples, :NSamplesInPed, :Seed, :LegacyPedestal, :DurationMs)`, run)
	if err != nil {
		return fmt.Errorf("error inserting run %s: %w", result.RunID, err)
	}

	for _, f := range result.Fits {
		entry := FitEntry{
			RunID:     result.RunID,
			Name:      f.Name,
			FitLow:    f.Low,
			FitHigh:   f.High,
			Amplitude: f.Amplitude,
			Mean:      f.Mean,
			Sigma:     f.Sigma,
			Chi2:      f.Chi2,
			NDF:       f.NDF,
			Converged: f.Converged,
			Status:    f.Status,
		}
		_, err = tx.NamedExecContext(ctx, `INSERT INTO GaussFits
			(RunID, Name, FitLow, FitHigh, Amplitude, Mean, Sigma, Chi2, NDF, Converged, Status)
			VALUES (:RunID, :Name, :FitLow, :FitHigh, :Amplitude, :Mean, :Sigma, :Chi2, :NDF, :Converged, :Status)`, entry)
		if err != nil {
			return fmt.Errorf("error inserting fit %s of run %s: %w", f.Name, result.RunID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing run %s: %w", result.RunID, err)
	}
	return nil
}

func ListRuns(ctx context.Context, db *sqlx.DB) ([]RunEntry, error) {
	var runs []RunEntry
	err := db.SelectContext(ctx, &runs, "SELECT * FROM Runs ORDER BY CreatedAt, RunID")
	if err != nil {
		return nil, fmt.Errorf("error querying runs: %w", err)
	}
	return runs, nil
}

func GetFits(ctx context.Context, db *sqlx.DB, runID string) ([]FitEntry, error) {
	var fits []FitEntry
	query := db.Rebind("SELECT * FROM GaussFits WHERE RunID = ? ORDER BY Name")
	err := db.SelectContext(ctx, &fits, query, runID)
	if err != nil {
		return nil, fmt.Errorf("error querying fits of run %s: %w", runID, err)
	}
	return fits, nil
}
