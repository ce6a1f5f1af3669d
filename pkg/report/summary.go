package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	pesim "github.com/next-exp/pesim_go/pkg"
)

// WriteSummary prints the run identity, the histogram occupancies and the fit
// results in aligned columns.
func WriteSummary(w io.Writer, result *pesim.Result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "Run\t%s\n", result.RunID)
	fmt.Fprintf(tw, "Events\t%d\n", result.Config.NEvents)
	fmt.Fprintf(tw, "Seed\t%d\n", result.Config.Seed)
	fmt.Fprintf(tw, "Duration\t%s\n", result.Duration)
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "Histogram\tEntries\tUnderflow\tOverflow\tMean\tRMS")
	for _, nh := range result.Histograms.Named() {
		under, over := pesim.Outflows(nh.H)
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%.4g\t%.4g\n",
			nh.Name, nh.H.Entries(), under, over, nh.H.XMean(), nh.H.XRMS())
	}
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "Fit\tWindow\tConstant\tMean\tSigma\tChi2/NDF\tStatus")
	for _, f := range result.Fits {
		fmt.Fprintf(tw, "%s\t[%g, %g]\t%.4g\t%.4g\t%.4g\t%.4g/%d\t%s\n",
			f.Name, f.Low, f.High, f.Amplitude, f.Mean, f.Sigma, f.Chi2, f.NDF, f.Status)
	}
	return tw.Flush()
}
