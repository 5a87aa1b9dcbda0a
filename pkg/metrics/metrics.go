package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	roiPlanner = "roi_planner"

	calculationsTotal     = "calculations_total"
	analysisRequestsTotal = "analysis_requests_total"
	scenarioCount         = "scenarios"

	// Labels
	calculatorLabel = "calculator"
	industryLabel   = "industry"
)

/**
* Metrics definition
**/
var calculationsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: roiPlanner,
		Name:      calculationsTotal,
		Help:      "number of ROI calculations partitioned by calculator",
	},
	[]string{calculatorLabel},
)

var analysisRequestsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: roiPlanner,
		Name:      analysisRequestsTotal,
		Help:      "number of detailed analysis requests partitioned by industry",
	},
	[]string{industryLabel},
)

var scenarioCountMetric = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: roiPlanner,
		Name:      scenarioCount,
		Help:      "number of stored scenarios per industry",
	},
	[]string{industryLabel},
)

func IncreaseCalculationsTotalMetric(calculator string) {
	calculationsTotalMetric.With(prometheus.Labels{calculatorLabel: calculator}).Inc()
}

func IncreaseAnalysisRequestsTotalMetric(industry string) {
	analysisRequestsTotalMetric.With(prometheus.Labels{industryLabel: industry}).Inc()
}

func UpdateScenarioCountMetric(industry string, count int) {
	scenarioCountMetric.With(prometheus.Labels{industryLabel: industry}).Set(float64(count))
}

func init() {
	registerMetrics()
}

func registerMetrics() {
	prometheus.MustRegister(calculationsTotalMetric)
	prometheus.MustRegister(analysisRequestsTotalMetric)
	prometheus.MustRegister(scenarioCountMetric)
	prometheus.MustRegister(totalUniqueCompaniesPerWeekMetric)
}
