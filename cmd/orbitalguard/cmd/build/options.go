package build

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/orbitalguard"
	"github.com/agentstation/orbitalguard/pkg/imputation"
)

// Flags holds the build command flags.
type Flags struct {
	Strata      string
	FKPolicy    string
	TieBreak    string
	MetricsFile string
	Report      string
}

func addFlags(cmd *cobra.Command) *Flags {
	flags := &Flags{}
	cmd.Flags().StringVar(&flags.Strata, "strata", "",
		"YAML or JSON file of expected lifetime years per orbit class")
	cmd.Flags().StringVar(&flags.FKPolicy, "fk-policy", "",
		"foreign key policy: enforce (reject orphan rows) or report (keep and count them)")
	cmd.Flags().StringVar(&flags.TieBreak, "tie-break", "",
		"mission country and site rule: max or most_frequent")
	cmd.Flags().StringVar(&flags.MetricsFile, "metrics-file", "",
		"write Prometheus textfile metrics to this path")
	cmd.Flags().StringVar(&flags.Report, "report", "",
		"write a Markdown run report to this path")
	return flags
}

// Options converts the flags that were set into pipeline options.
func (f *Flags) Options() ([]orbitalguard.Option, error) {
	var opts []orbitalguard.Option

	if f.Strata != "" {
		strata, err := imputation.LoadStrata(f.Strata)
		if err != nil {
			return nil, err
		}
		opts = append(opts, orbitalguard.WithLifetimeStrata(strata))
	}
	if f.FKPolicy != "" {
		opts = append(opts, orbitalguard.WithForeignKeyPolicy(orbitalguard.ForeignKeyPolicy(f.FKPolicy)))
	}
	if f.TieBreak != "" {
		opts = append(opts, orbitalguard.WithTieBreak(orbitalguard.TieBreak(f.TieBreak)))
	}
	if f.MetricsFile != "" {
		opts = append(opts, orbitalguard.WithMetricsFile(f.MetricsFile))
	}
	if f.Report != "" {
		opts = append(opts, orbitalguard.WithReportFile(f.Report))
	}

	return opts, nil
}
