package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/mozark/roi-planner/internal/benchmark"
	"github.com/spf13/cobra"
)

type BenchmarksOptions struct {
	GlobalOptions
}

func DefaultBenchmarksOptions() *BenchmarksOptions {
	return &BenchmarksOptions{
		GlobalOptions: DefaultGlobalOptions(),
	}
}

func NewCmdBenchmarks() *cobra.Command {
	o := DefaultBenchmarksOptions()
	cmd := &cobra.Command{
		Use:   "benchmarks [INDUSTRY]",
		Short: "Display the industry benchmarks.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
			if err := o.Validate(args); err != nil {
				return err
			}
			return o.Run(cmd.Context(), cmd.OutOrStdout(), args)
		},
		SilenceUsage: true,
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *BenchmarksOptions) Run(ctx context.Context, w io.Writer, args []string) error {
	benchmarks := o.Benchmarks().List()
	if len(args) == 1 {
		b, ok := o.Benchmarks().Get(args[0])
		if !ok {
			return fmt.Errorf("unknown industry %q", args[0])
		}
		benchmarks = []benchmark.IndustryBenchmark{b}
	}

	if o.Output != "" {
		return printOutput(w, o.Output, benchmarks)
	}

	tw := tabwriter.NewWriter(w, 0, 8, 1, '\t', 0)
	fmt.Fprintln(tw, "KEY\tNAME\tTESTERS\tSALARY\tDEVICES\tRELEASES\tEFFICIENCY")
	for _, b := range benchmarks {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%.2f\n",
			b.Key, b.Name,
			formatRange(b.TypicalTesters), formatRange(b.TypicalSalary),
			formatRange(b.TypicalDevices), formatRange(b.TypicalReleases),
			b.EfficiencyMultiplier)
	}
	return tw.Flush()
}

func formatRange(r benchmark.Range) string {
	return fmt.Sprintf("%g-%g", r.Min(), r.Max())
}
