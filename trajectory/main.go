package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/next-exp/pesim_go/pkg/beam"
)

var errorLog = slog.New(slog.NewJSONHandler(os.Stderr, nil))

func main() {
	position := flag.Float64("position", -880, "Longitudinal position z [mm]")
	energy := flag.Float64("energy", beam.ReferenceEnergy, "Beam energy [GeV]")
	seed := flag.Float64("seed", beam.DefaultArcSeed, "Initial value of the arc parameter R [mm]")
	exponent := flag.Float64("exponent", beam.DefaultScaling.Exponent, "Exponent of the momentum scaling of R")
	flag.Parse()

	err := run(os.Stdout, *position, *energy, *seed, beam.MomentumScaling{Exponent: *exponent})
	if err != nil {
		errorLog.Error(err.Error())
		os.Exit(1)
	}
}

func run(out io.Writer, position, energy, seed float64, scaling beam.MomentumScaling) error {
	trajectory, err := beam.Fit(beam.DefaultPathPoints, beam.DefaultAnglePoints, seed)
	if err != nil {
		return err
	}
	if !trajectory.Arc.Converged {
		errorLog.Warn("arc fit did not converge", "status", trajectory.Arc.Status)
	}
	fmt.Fprintf(out, "Arc fit: R = %.6g mm (bending radius sqrt|R| = %.6g), chi2 = %.4g\n",
		trajectory.Arc.R, trajectory.Arc.BendingRadius(), trajectory.Arc.Chi2)
	fmt.Fprintf(out, "Angle fit: theta(z) = %.6g + %.6g * z\n", trajectory.Angle.Intercept, trajectory.Angle.Slope)

	x, theta, err := trajectory.Evaluate(position)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "From the fits, we should expect the best x at z = %g to be %.6g and the angle of incidence to be %.6g degrees.\n",
		position, x, theta)

	if energy == trajectory.Energy {
		return nil
	}
	scaled, err := trajectory.AtEnergy(energy, scaling)
	if err != nil {
		return err
	}
	xScaled, err := scaled.Arc.Eval(position)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "At %g GeV (R = %.6g mm) the best x at z = %g would be %.6g.\n",
		energy, scaled.Arc.R, position, xScaled)
	return nil
}
