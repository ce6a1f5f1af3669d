package beam

import "math"

type ControlPoint struct {
	Z     float64
	Value float64
}

type ControlPoints [3]ControlPoint

// Points along the trajectory used in the simulation: lateral offset x [mm]
// and angle theta [degrees] against z [mm], measured at the 4 GeV reference.
var (
	DefaultPathPoints = ControlPoints{
		{Z: -880, Value: -44},
		{Z: -700, Value: -27.926},
		{Z: 0, Value: 0},
	}
	DefaultAnglePoints = ControlPoints{
		{Z: -880, Value: 5.65},
		{Z: -700, Value: 4.5},
		{Z: 0, Value: 0},
	}
)

func (p ControlPoints) xy() (zs, values []float64) {
	zs = make([]float64, len(p))
	values = make([]float64, len(p))
	for i, point := range p {
		zs[i] = point.Z
		values[i] = point.Value
	}
	return zs, values
}

func (p ControlPoints) distinctZ() int {
	n := 0
	for i := range p {
		unique := true
		for j := 0; j < i; j++ {
			if p[j].Z == p[i].Z {
				unique = false
				break
			}
		}
		if unique {
			n++
		}
	}
	return n
}

// collinear reports whether the three points lie on a straight line, up to a
// relative tolerance on the triangle area.
func (p ControlPoints) collinear() bool {
	ax, ay := p[1].Z-p[0].Z, p[1].Value-p[0].Value
	bx, by := p[2].Z-p[0].Z, p[2].Value-p[0].Value
	cross := ax*by - ay*bx
	scale := math.Hypot(ax, ay) * math.Hypot(bx, by)
	return scale == 0 || math.Abs(cross) <= 1e-12*scale
}

func abs(x float64) float64 {
	return math.Abs(x)
}
