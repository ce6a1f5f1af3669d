package pesim

import (
	"errors"
	"fmt"
	"math"

	"go-hep.org/x/hep/fit"
	"go-hep.org/x/hep/hbook"
	"gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/stat"
)

type GaussFit struct {
	Name      string
	Low       float64
	High      float64
	Amplitude float64
	Mean      float64
	Sigma     float64
	Chi2      float64
	NDF       int
	Status    string
	Converged bool
}

func (g GaussFit) String() string {
	return fmt.Sprintf("%s in [%g, %g]: constant %.4g, mean %.4g, sigma %.4g, chi2/ndf %.4g/%d, status %s",
		g.Name, g.Low, g.High, g.Amplitude, g.Mean, g.Sigma, g.Chi2, g.NDF, g.Status)
}

func gaussian(x float64, ps []float64) float64 {
	v := (x - ps[1]) / ps[2]
	return ps[0] * math.Exp(-0.5*v*v)
}

// FitGaussian fits a Gaussian to the populated bins of h whose centre lies in
// [lo, hi], weighting each bin by its Poisson error. A fit that does not
// converge is reported through Status and Converged, not as an error.
func FitGaussian(h *hbook.H1D, lo, hi float64) (GaussFit, error) {
	result := GaussFit{Name: HistogramName(h), Low: lo, High: hi}

	var xs, ys, errs []float64
	maxCount := 0.0
	for _, b := range h.Binning.Bins {
		x := b.XMid()
		count := b.SumW()
		if x < lo || x > hi || count <= 0 {
			continue
		}
		xs = append(xs, x)
		ys = append(ys, count)
		errs = append(errs, math.Sqrt(count))
		maxCount = math.Max(maxCount, count)
	}
	if len(xs) < 3 {
		return result, &FitError{
			Name:   result.Name,
			Reason: fmt.Sprintf("%d populated bins in [%g, %g], need at least 3", len(xs), lo, hi),
		}
	}

	mean, std := stat.MeanStdDev(xs, ys)
	if !(std > 0) {
		std = h.Binning.Bins[0].XWidth()
	}

	res, err := fit.Curve1D(
		fit.Func1D{
			F:   gaussian,
			X:   xs,
			Y:   ys,
			Err: errs,
			Ps:  []float64{maxCount, mean, std},
		},
		nil, &optimize.NelderMead{},
	)
	if res == nil {
		return result, fmt.Errorf("error fitting %q: %w", result.Name, err)
	}

	result.Amplitude = res.X[0]
	result.Mean = res.X[1]
	result.Sigma = math.Abs(res.X[2])
	for i := range xs {
		r := (gaussian(xs[i], res.X) - ys[i]) / errs[i]
		result.Chi2 += r * r
	}
	result.NDF = len(xs) - 3
	result.Status = res.Status.String()
	result.Converged = err == nil && converged(res.Status)
	if err != nil {
		result.Status = err.Error()
	}
	return result, nil
}

func converged(status optimize.Status) bool {
	switch status {
	case optimize.Success, optimize.FunctionConvergence, optimize.GradientThreshold,
		optimize.StepConvergence, optimize.FunctionThreshold, optimize.MethodConverge:
		return true
	}
	return false
}

// fitTarget names a histogram and the window a Gaussian is fitted on.
type fitTarget struct {
	h      *hbook.H1D
	lo, hi float64
}

func (s *Simulator) fitTargets(hists *Histograms) []fitTarget {
	r := s.ranges
	targets := []fitTarget{{h: hists.Sum, lo: r.SumMin, hi: r.RawSumFitMax}}
	for _, method := range hists.Methods() {
		targets = append(targets, fitTarget{
			h:  hists.Subtracted[method],
			lo: -r.SubtractedFitHalfWin,
			hi: r.SubtractedFitHalfWin,
		})
	}
	return targets
}

// FitAll fits every target histogram. Histograms that cannot be fitted are
// reported with an explanatory status.
func (s *Simulator) FitAll(hists *Histograms) []GaussFit {
	var fits []GaussFit
	for _, t := range s.fitTargets(hists) {
		if s.config.Verbosity > 0 {
			logger.Info(fmt.Sprintf("Fitting %s", HistogramTitle(t.h)), "fit")
		}
		result, err := FitGaussian(t.h, t.lo, t.hi)
		if err != nil {
			var fitErr *FitError
			if !errors.As(err, &fitErr) {
				logger.Error(err.Error())
			}
			result.Status = err.Error()
			result.Converged = false
		}
		if s.config.Verbosity > 0 {
			logger.Info(result.String(), "fit")
		}
		fits = append(fits, result)
	}
	return fits
}
