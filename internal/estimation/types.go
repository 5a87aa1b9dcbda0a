package estimation

// Calculator encapsulates one ROI model (e.g. "QA Testing", "Payment Processing").
type Calculator interface {
	// Name returns the human-readable name of this calculator, used as the key in Engine results.
	Name() string
	// Keys returns the list of Param keys this calculator requires.
	Keys() []string
	// Calculate runs the model using the provided params and returns an Estimation or an error.
	Calculate(params map[string]Param) (Estimation, error)
}

// Param represents an input for a Calculator (a slider value or a categorical selector)
type Param struct {
	Key   string      // Unique identifier (e.g., "manual_testers")
	Value interface{} // The actual value (e.g., 5, "bfsi", 0.029)
}

// Estimation the result of a Calculator calculation
type Estimation struct {
	// Metrics holds the derived figures keyed by metric name (e.g. "total_annual_savings").
	Metrics map[string]float64
	Reason  string
	Failed  bool
}
