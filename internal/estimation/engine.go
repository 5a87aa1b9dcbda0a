package estimation

import "fmt"

// Engine orchestrates Calculator objects and aggregates their results
type Engine struct {
	calculators []Calculator
}

// NewEngine creates a new Engine with no calculators registered.
func NewEngine() *Engine {
	return &Engine{
		calculators: make([]Calculator, 0),
	}
}

// Register adds a Calculator to participate in the estimation.
// Calculators are executed in the order they are registered.
// Register panics if a calculator with the same Name() is already registered,
// as duplicate names would silently overwrite results in Run.
func (e *Engine) Register(c Calculator) {
	for _, existing := range e.calculators {
		if existing.Name() == c.Name() {
			panic(fmt.Sprintf("estimation: calculator %q already registered", c.Name()))
		}
	}
	e.calculators = append(e.calculators, c)
}

// Names returns the registered calculator names in registration order.
func (e *Engine) Names() []string {
	names := make([]string, 0, len(e.calculators))
	for _, c := range e.calculators {
		names = append(names, c.Name())
	}
	return names
}

// Run executes all registered calculators against the provided params
func (e *Engine) Run(inputs []Param) map[string]Estimation {
	// Convert slice to map for lookups by Calculators
	paramMap := make(map[string]Param)
	for _, p := range inputs {
		paramMap[p.Key] = p
	}

	results := make(map[string]Estimation)
	for _, calc := range e.calculators {
		est, err := calc.Calculate(paramMap)
		if err != nil {
			results[calc.Name()] = Estimation{
				Metrics: map[string]float64{},
				Reason:  fmt.Sprintf("Error: %v", err),
				Failed:  true,
			}
			continue
		}
		results[calc.Name()] = est
	}
	return results
}

// RunApplicable executes only the calculators whose required keys are all present in inputs.
func (e *Engine) RunApplicable(inputs []Param) map[string]Estimation {
	present := make(map[string]struct{}, len(inputs))
	for _, p := range inputs {
		present[p.Key] = struct{}{}
	}

	applicable := NewEngine()
	for _, calc := range e.calculators {
		ok := true
		for _, k := range calc.Keys() {
			if _, found := present[k]; !found {
				ok = false
				break
			}
		}
		if ok {
			applicable.Register(calc)
		}
	}
	return applicable.Run(inputs)
}
