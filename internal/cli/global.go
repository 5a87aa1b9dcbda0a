package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/mozark/roi-planner/internal/benchmark"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/thoas/go-funk"
)

type GlobalOptions struct {
	Output         string
	BenchmarksFile string

	table benchmark.Table
}

func DefaultGlobalOptions() GlobalOptions {
	return GlobalOptions{}
}

func (o *GlobalOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVarP(&o.Output, "output", "o", o.Output, fmt.Sprintf("Output format. One of: (%s).", strings.Join(legalOutputTypes, ", ")))
	fs.StringVar(&o.BenchmarksFile, "benchmarks", o.BenchmarksFile, "Path to a yaml file replacing the built-in industry benchmarks")
}

// Complete loads the benchmark table, from BenchmarksFile when set.
func (o *GlobalOptions) Complete(cmd *cobra.Command, args []string) error {
	if o.BenchmarksFile == "" {
		o.table = benchmark.Default()
		return nil
	}

	data, err := os.ReadFile(o.BenchmarksFile)
	if err != nil {
		return fmt.Errorf("reading benchmarks: %w", err)
	}
	table, err := benchmark.Parse(data)
	if err != nil {
		return fmt.Errorf("parsing benchmarks %s: %w", o.BenchmarksFile, err)
	}
	o.table = table
	return nil
}

func (o *GlobalOptions) Validate(args []string) error {
	if len(o.Output) > 0 && !funk.Contains(legalOutputTypes, o.Output) {
		return fmt.Errorf("output format must be one of %s", strings.Join(legalOutputTypes, ", "))
	}
	return nil
}

func (o *GlobalOptions) Benchmarks() benchmark.Table {
	if o.table == nil {
		return benchmark.Default()
	}
	return o.table
}
