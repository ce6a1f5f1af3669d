package beam

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// LinearModel is theta(z) = Intercept + Slope·z.
type LinearModel struct {
	Intercept float64
	Slope     float64
}

func (m LinearModel) Eval(z float64) float64 {
	return m.Intercept + m.Slope*z
}

func FitLinear(points ControlPoints) (LinearModel, error) {
	if n := points.distinctZ(); n < len(points) {
		return LinearModel{}, &DegenerateError{Model: "linear", Reason: fmt.Sprintf("%d distinct z values, need %d", n, len(points))}
	}
	zs, values := points.xy()
	alpha, beta := stat.LinearRegression(zs, values, nil, false)
	return LinearModel{Intercept: alpha, Slope: beta}, nil
}
