package beam

import (
	"fmt"
	"math"
)

// ReferenceEnergy is the beam energy [GeV] the control points were taken at.
const ReferenceEnergy = 4.0

// MomentumScaling relates the fitted R to the beam momentum:
// |R'| = (sqrt|R| · ratio^Exponent)². Exponent 1 is the analysis assumption
// that the bending radius is proportional to momentum.
type MomentumScaling struct {
	Exponent float64
}

var DefaultScaling = MomentumScaling{Exponent: 1}

// Rescale returns R for a beam whose momentum is energyRatio times the one
// R was fitted at. The sign of R is kept, so Rescale(R, 1, s) == R.
func Rescale(r, energyRatio float64, scaling MomentumScaling) float64 {
	// (sqrt|R| · k)², exact for k = 1
	return math.Copysign(math.Abs(r)*math.Pow(energyRatio, 2*scaling.Exponent), r)
}

type Trajectory struct {
	Arc    ArcModel
	Angle  LinearModel
	Energy float64
}

// Fit fits the path and angle control points measured at the reference
// energy.
func Fit(path, angle ControlPoints, seed float64) (Trajectory, error) {
	arcModel, err := FitArc(path, seed)
	if err != nil {
		return Trajectory{}, fmt.Errorf("error fitting beam path: %w", err)
	}
	angleModel, err := FitLinear(angle)
	if err != nil {
		return Trajectory{}, fmt.Errorf("error fitting beam angle: %w", err)
	}
	return Trajectory{Arc: arcModel, Angle: angleModel, Energy: ReferenceEnergy}, nil
}

// Evaluate returns the lateral offset and the angle at z.
func (t Trajectory) Evaluate(z float64) (x, theta float64, err error) {
	x, err = t.Arc.Eval(z)
	if err != nil {
		return x, math.NaN(), err
	}
	return x, t.Angle.Eval(z), nil
}

// AtEnergy predicts the path at another beam energy by rescaling the arc.
// The angle model is carried over unchanged.
func (t Trajectory) AtEnergy(beamEnergy float64, scaling MomentumScaling) (Trajectory, error) {
	if !(beamEnergy > 0) {
		return t, fmt.Errorf("invalid beam energy %g GeV", beamEnergy)
	}
	scaled := t
	scaled.Arc.R = Rescale(t.Arc.R, beamEnergy/t.Energy, scaling)
	scaled.Energy = beamEnergy
	return scaled, nil
}
