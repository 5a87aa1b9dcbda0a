package cli

import (
	"context"
	"io"

	"github.com/mozark/roi-planner/api/v1alpha1"
	"github.com/mozark/roi-planner/internal/benchmark"
	"github.com/mozark/roi-planner/internal/estimation/calculators"
	"github.com/mozark/roi-planner/internal/handlers/v1alpha1/mappers"
	"github.com/mozark/roi-planner/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// floatFlag binds a calculator input to a flag.
type floatFlag struct {
	name  string
	usage string
	dst   *float64
}

func bindFloats(fs *pflag.FlagSet, flags []floatFlag) {
	for _, f := range flags {
		fs.Float64Var(f.dst, f.name, *f.dst, f.usage)
	}
}

type QAOptions struct {
	GlobalOptions

	Inputs calculators.QAInputs
}

func DefaultQAOptions() *QAOptions {
	return &QAOptions{
		GlobalOptions: DefaultGlobalOptions(),
	}
}

func NewCmdQA() *cobra.Command {
	o := DefaultQAOptions()
	cmd := &cobra.Command{
		Use:   "qa",
		Short: "Calculate the ROI of QA test automation.",
		Long: "Calculate the ROI of QA test automation. Inputs that are not set start from the\n" +
			"midpoint of the industry benchmark, monthly test cycles from the capacity estimate.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
			if err := o.Validate(args); err != nil {
				return err
			}
			return o.Run(cmd.Context(), cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *QAOptions) flags() []floatFlag {
	return []floatFlag{
		{"manual-testers", "Number of manual testers", &o.Inputs.ManualTesters},
		{"tester-salary", "Yearly salary of one tester", &o.Inputs.TesterSalary},
		{"weekly-testing-hours", "Hours per week each tester spends testing", &o.Inputs.WeeklyTestingHours},
		{"monthly-test-cycles", "Test cycles run per month", &o.Inputs.MonthlyTestCycles},
		{"devices-used", "Physical devices in the test lab", &o.Inputs.DevicesUsed},
		{"release-frequency", "Releases shipped per month", &o.Inputs.ReleaseFrequency},
	}
}

func (o *QAOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)
	fs.StringVar(&o.Inputs.Industry, "industry", benchmark.DefaultIndustry, "Industry benchmark to calculate against")
	bindFloats(fs, o.flags())
}

// Complete fills every input not set on the command line from the industry defaults.
// Monthly test cycles are left to the capacity estimate.
func (o *QAOptions) Complete(cmd *cobra.Command, args []string) error {
	if err := o.GlobalOptions.Complete(cmd, args); err != nil {
		return err
	}

	if o.Inputs.Industry == "" {
		o.Inputs.Industry = benchmark.DefaultIndustry
	}
	b, ok := o.Benchmarks().Get(o.Inputs.Industry)
	if !ok {
		// reported by the calculator
		return nil
	}
	defaults := calculators.DefaultQAInputs(b)
	defaults.MonthlyTestCycles = 0

	values := map[string]float64{
		"manual-testers":       defaults.ManualTesters,
		"tester-salary":        defaults.TesterSalary,
		"weekly-testing-hours": defaults.WeeklyTestingHours,
		"monthly-test-cycles":  defaults.MonthlyTestCycles,
		"devices-used":         defaults.DevicesUsed,
		"release-frequency":    defaults.ReleaseFrequency,
	}
	for _, f := range o.flags() {
		if !cmd.Flags().Changed(f.name) {
			*f.dst = values[f.name]
		}
	}
	return nil
}

func (o *QAOptions) Run(ctx context.Context, w io.Writer) error {
	calculation, err := service.NewCalculatorService(o.Benchmarks()).CalculateQA(ctx, o.Inputs)
	if err != nil {
		return err
	}
	out := mappers.QACalculationToApi(calculation)
	return printOutput(w, o.Output, out, out.Results)
}

type OTTOptions struct {
	GlobalOptions

	Inputs calculators.OTTInputs
}

func DefaultOTTOptions() *OTTOptions {
	return &OTTOptions{
		GlobalOptions: DefaultGlobalOptions(),
		Inputs:        calculators.DefaultOTTInputs(),
	}
}

func NewCmdOTT() *cobra.Command {
	o := DefaultOTTOptions()
	cmd := &cobra.Command{
		Use:   "ott",
		Short: "Calculate the ROI of OTT streaming latency improvements.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
			if err := o.Validate(args); err != nil {
				return err
			}
			return o.Run(cmd.Context(), cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *OTTOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)
	bindFloats(fs, []floatFlag{
		{"monthly-viewers", "Monthly active viewers", &o.Inputs.MonthlyViewers},
		{"avg-view-time", "Average monthly view time per viewer, in hours", &o.Inputs.AvgViewTime},
		{"avg-cpm", "Average ad CPM", &o.Inputs.AvgCpm},
		{"current-latency", "Current startup latency, in seconds", &o.Inputs.CurrentLatency},
		{"target-latency", "Target startup latency, in seconds", &o.Inputs.TargetLatency},
		{"subscription-price", "Monthly subscription price", &o.Inputs.SubscriptionPrice},
		{"subscriber-count", "Number of subscribers", &o.Inputs.SubscriberCount},
		{"churn-rate", "Monthly churn rate, as a fraction", &o.Inputs.ChurnRate},
		{"cdn-cost-per-gb", "CDN cost per GB", &o.Inputs.CdnCostPerGb},
		{"monthly-bandwidth", "Monthly bandwidth, in GB", &o.Inputs.MonthlyBandwidth},
		{"support-costs", "Monthly support costs", &o.Inputs.SupportCosts},
		{"licensing-fees", "Monthly licensing fees", &o.Inputs.LicensingFees},
		{"churn-reduction", "Expected churn reduction, as a fraction", &o.Inputs.ChurnReduction},
	})
}

func (o *OTTOptions) Run(ctx context.Context, w io.Writer) error {
	results, err := service.NewCalculatorService(o.Benchmarks()).CalculateOTT(ctx, o.Inputs)
	if err != nil {
		return err
	}
	out := v1alpha1.OTTCalculation{Inputs: mappers.OTTInputsToApi(o.Inputs), Results: mappers.OTTResultsToApi(results)}
	return printOutput(w, o.Output, out, out.Results)
}

type PaymentOptions struct {
	GlobalOptions

	Inputs calculators.PaymentInputs
}

func DefaultPaymentOptions() *PaymentOptions {
	return &PaymentOptions{
		GlobalOptions: DefaultGlobalOptions(),
		Inputs:        calculators.DefaultPaymentInputs(),
	}
}

func NewCmdPayment() *cobra.Command {
	o := DefaultPaymentOptions()
	cmd := &cobra.Command{
		Use:   "payment",
		Short: "Calculate the ROI of payment processing latency improvements.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
			if err := o.Validate(args); err != nil {
				return err
			}
			return o.Run(cmd.Context(), cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *PaymentOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)
	bindFloats(fs, []floatFlag{
		{"transactions", "Transactions per day", &o.Inputs.Transactions},
		{"avg-value", "Average transaction value", &o.Inputs.AvgValue},
		{"current-latency", "Current checkout latency, in milliseconds", &o.Inputs.CurrentLatency},
		{"mozark-latency", "Checkout latency after optimisation, in milliseconds", &o.Inputs.MozarkLatency},
		{"decline-rate", "Decline rate, as a fraction", &o.Inputs.DeclineRate},
		{"fraud-rate", "Fraud rate, as a fraction", &o.Inputs.FraudRate},
		{"chargeback-rate", "Chargeback rate, as a fraction", &o.Inputs.ChargebackRate},
		{"processing-fee", "Processing fee, as a fraction of the value", &o.Inputs.ProcessingFee},
		{"fixed-fee", "Fixed fee per transaction", &o.Inputs.FixedFee},
		{"support-tickets", "Support tickets per day", &o.Inputs.SupportTickets},
		{"cost-per-ticket", "Cost of one support ticket", &o.Inputs.CostPerTicket},
		{"customer-lifetime-value", "Customer lifetime value", &o.Inputs.CustomerLifetimeValue},
		{"decline-reduction", "Decline reduction, in percent", &o.Inputs.DeclineReduction},
		{"fraud-reduction", "Fraud reduction, in percent", &o.Inputs.FraudReduction},
		{"chargeback-reduction", "Chargeback reduction, in percent", &o.Inputs.ChargebackReduction},
		{"support-reduction", "Support ticket reduction, in percent", &o.Inputs.SupportReduction},
		{"fee-optimization", "Fee optimisation, in percent", &o.Inputs.FeeOptimization},
	})
}

func (o *PaymentOptions) Run(ctx context.Context, w io.Writer) error {
	results, err := service.NewCalculatorService(o.Benchmarks()).CalculatePayment(ctx, o.Inputs)
	if err != nil {
		return err
	}
	out := v1alpha1.PaymentCalculation{Inputs: mappers.PaymentInputsToApi(o.Inputs), Results: mappers.PaymentResultsToApi(results)}
	return printOutput(w, o.Output, out, out.Results)
}
