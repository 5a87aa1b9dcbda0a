package service_test

import (
	"context"
	"math"

	"github.com/mozark/roi-planner/internal/benchmark"
	"github.com/mozark/roi-planner/internal/estimation/calculators"
	"github.com/mozark/roi-planner/internal/service"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("CalculatorService", func() {
	var (
		srv *service.CalculatorService
		ctx context.Context
	)

	BeforeEach(func() {
		srv = service.NewCalculatorService(benchmark.Default())
		ctx = context.Background()
	})

	Describe("benchmarks", func() {
		It("lists every industry ordered by key", func() {
			list := srv.ListBenchmarks()
			Expect(list).To(HaveLen(4))
			Expect(list[0].Key).To(Equal("bfsi"))
			Expect(list[3].Key).To(Equal("general"))
		})

		It("returns not found for an unknown industry", func() {
			_, err := srv.GetBenchmark("space")
			var notFound *service.ErrResourceNotFound
			Expect(err).To(BeAssignableToTypeOf(notFound))
		})
	})

	Describe("CalculateQA", func() {
		It("fills monthly test cycles from the capacity estimate", func() {
			result, err := srv.CalculateQA(ctx, calculators.QAInputs{
				ManualTesters:      5,
				TesterSalary:       75000,
				WeeklyTestingHours: 40,
				DevicesUsed:        20,
				ReleaseFrequency:   4,
			})
			Expect(err).To(BeNil())
			Expect(result.Inputs.Industry).To(Equal("general"))
			Expect(result.Capacity).To(BeNumerically("~", 112, 1e-9))
			Expect(result.Inputs.MonthlyTestCycles).To(Equal(112.0))
			Expect(result.Results.TotalAnnualSavings).To(Equal(234585.0))
		})

		It("keeps explicit monthly test cycles", func() {
			in := calculators.DefaultQAInputs(benchmark.Default().Lookup("general"))
			in.MonthlyTestCycles = 8
			result, err := srv.CalculateQA(ctx, in)
			Expect(err).To(BeNil())
			Expect(result.Inputs.MonthlyTestCycles).To(Equal(8.0))
		})

		It("names the field outside the benchmark range", func() {
			in := calculators.DefaultQAInputs(benchmark.Default().Lookup("general"))
			in.DevicesUsed = 500
			_, err := srv.CalculateQA(ctx, in)

			var invalid *service.ErrInvalidInput
			Expect(err).To(BeAssignableToTypeOf(invalid))
			Expect(err.(*service.ErrInvalidInput).Field).To(Equal("devicesUsed"))
		})

		It("rejects an unknown industry", func() {
			_, err := srv.CalculateQA(ctx, calculators.QAInputs{Industry: "space"})
			Expect(err).NotTo(BeNil())
			Expect(err.(*service.ErrInvalidInput).Field).To(Equal("industry"))
		})
	})

	Describe("CalculateOTT and CalculatePayment", func() {
		It("computes the default OTT scenario", func() {
			results, err := srv.CalculateOTT(ctx, calculators.DefaultOTTInputs())
			Expect(err).To(BeNil())
			Expect(results.TotalMonthlySavings).To(BeNumerically("~", 328575, 1e-6))
		})

		It("reports infinite payback when nothing is saved", func() {
			results, err := srv.CalculateOTT(ctx, calculators.OTTInputs{CurrentLatency: 1, TargetLatency: 1})
			Expect(err).To(BeNil())
			Expect(math.IsInf(results.PaybackPeriod, 1)).To(BeTrue())
		})

		It("rejects negative payment figures", func() {
			in := calculators.DefaultPaymentInputs()
			in.Transactions = -1
			_, err := srv.CalculatePayment(ctx, in)
			Expect(err).NotTo(BeNil())
			Expect(err.(*service.ErrInvalidInput).Field).To(Equal("transactions"))
		})

		It("computes the default payment scenario", func() {
			results, err := srv.CalculatePayment(ctx, calculators.DefaultPaymentInputs())
			Expect(err).To(BeNil())
			Expect(results.TotalAnnualSavings).To(BeNumerically("~", 29963437.5, 1e-3))
		})
	})

	Describe("Defaults", func() {
		It("returns the defaults of each calculator", func() {
			qa, err := srv.Defaults(service.CalculatorQA)
			Expect(err).To(BeNil())
			Expect(qa).To(BeAssignableToTypeOf(calculators.QAInputs{}))

			ott, err := srv.Defaults(service.CalculatorOTT)
			Expect(err).To(BeNil())
			Expect(ott).To(Equal(calculators.DefaultOTTInputs()))

			_, err = srv.Defaults("crypto")
			Expect(err).NotTo(BeNil())
		})
	})

	Describe("Estimate", func() {
		It("runs only the calculators whose params are present", func() {
			results := srv.Estimate(ctx, map[string]any{
				calculators.ParamMonthlyViewers:    1000000.0,
				calculators.ParamAvgViewTime:       45.0,
				calculators.ParamCurrentLatencySec: 4.5,
				calculators.ParamTargetLatencySec:  2.0,
			})
			Expect(results).To(HaveLen(1))
			Expect(results).To(HaveKey("OTT Streaming"))
			Expect(results["OTT Streaming"].Failed).To(BeFalse())
		})

		It("reports failing calculators with a reason", func() {
			results := srv.Estimate(ctx, map[string]any{
				calculators.ParamTransactions:     100.0,
				calculators.ParamAvgValue:         "lots",
				calculators.ParamCurrentLatencyMs: 200.0,
				calculators.ParamMozarkLatencyMs:  50.0,
			})
			Expect(results).To(HaveKey("Payment Processing"))
			Expect(results["Payment Processing"].Failed).To(BeTrue())
			Expect(results["Payment Processing"].Reason).To(ContainSubstring("avg_value"))
		})
	})
})
