package beam

import (
	"fmt"
	"math"

	"go-hep.org/x/hep/fit"
	"gonum.org/v1/gonum/optimize"
)

// DefaultArcSeed is the starting radius [mm] for the reference control
// points. Solving the model on the first and second point alone gives 8822
// and 8787.
const DefaultArcSeed = 8800.0

// ArcModel is the circular path x(z) = -R + sqrt(R² - z²), tangent to the z
// axis at the origin.
type ArcModel struct {
	R         float64
	Chi2      float64
	Status    string
	Converged bool
}

func arc(z float64, ps []float64) float64 {
	r := ps[0]
	d := r*r - z*z
	if d < 0 {
		return math.Inf(1)
	}
	return -r + math.Sqrt(d)
}

// Eval returns x at z, or a *DomainError when |z| > |R|.
func (m ArcModel) Eval(z float64) (float64, error) {
	if z*z > m.R*m.R {
		return math.NaN(), &DomainError{Z: z, R: m.R}
	}
	return arc(z, []float64{m.R}), nil
}

// BendingRadius follows the analysis convention sqrt(|R|).
func (m ArcModel) BendingRadius() float64 {
	return math.Sqrt(math.Abs(m.R))
}

func (m ArcModel) Domain() (lo, hi float64) {
	return -math.Abs(m.R), math.Abs(m.R)
}

// FitArc fits R by least squares, starting from seed. The seed has to be in
// the regime of the solution: there is no search over starting values.
func FitArc(points ControlPoints, seed float64) (ArcModel, error) {
	if n := points.distinctZ(); n < len(points) {
		return ArcModel{}, &DegenerateError{Model: "arc", Reason: fmt.Sprintf("%d distinct z values, need %d", n, len(points))}
	}
	if points.collinear() {
		return ArcModel{}, &DegenerateError{Model: "arc", Reason: "control points are collinear"}
	}
	for _, p := range points {
		if p.Z*p.Z > seed*seed {
			return ArcModel{}, &DomainError{Z: p.Z, R: seed}
		}
	}

	zs, xs := points.xy()
	res, err := fit.Curve1D(
		fit.Func1D{
			F:  arc,
			X:  zs,
			Y:  xs,
			Ps: []float64{seed},
		},
		nil, &optimize.NelderMead{},
	)
	if res == nil {
		return ArcModel{}, fmt.Errorf("error fitting arc: %w", err)
	}

	model := ArcModel{
		R:         res.X[0],
		Status:    res.Status.String(),
		Converged: err == nil && converged(res.Status),
	}
	if err != nil {
		model.Status = err.Error()
	}
	for i := range zs {
		r := arc(zs[i], res.X) - xs[i]
		model.Chi2 += r * r
	}
	return model, nil
}

// converged mirrors the check in the pesim package fits, which beam cannot
// import.
func converged(status optimize.Status) bool {
	switch status {
	case optimize.Success, optimize.FunctionConvergence, optimize.GradientThreshold,
		optimize.StepConvergence, optimize.FunctionThreshold, optimize.MethodConverge:
		return true
	}
	return false
}
