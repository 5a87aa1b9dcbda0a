// Package benchmark holds the static per-industry configuration that bounds calculator inputs
// and scales the QA ROI formulas.
//
// The table is parsed once from the embedded benchmarks.yaml and is never mutated afterwards.
package benchmark

import (
	_ "embed"
	"fmt"
	"math"
	"sort"
	"sync"

	"sigs.k8s.io/yaml"
)

// DefaultIndustry is returned by Lookup for keys missing from the table.
const DefaultIndustry = "general"

//go:embed benchmarks.yaml
var rawBenchmarks []byte

// Range is an inclusive [min, max] interval.
type Range [2]float64

func (r Range) Min() float64 { return r[0] }
func (r Range) Max() float64 { return r[1] }

// Clamp returns v bounded to the range.
func (r Range) Clamp(v float64) float64 {
	return math.Min(r[1], math.Max(r[0], v))
}

// Contains reports whether v lies inside the range.
func (r Range) Contains(v float64) bool {
	return v >= r[0] && v <= r[1]
}

// Midpoint returns round((min+max)/2), the value a slider resets to on industry change.
func (r Range) Midpoint() float64 {
	return math.Round((r[0] + r[1]) / 2)
}

type IndustryBenchmark struct {
	Key                    string  `json:"key"`
	Name                   string  `json:"name"`
	Description            string  `json:"description"`
	TypicalTesters         Range   `json:"typicalTesters"`
	TypicalSalary          Range   `json:"typicalSalary"`
	TypicalTestCycles      Range   `json:"typicalTestCycles"`
	TypicalDevices         Range   `json:"typicalDevices"`
	TypicalReleases        Range   `json:"typicalReleases"`
	TestingComplexity      float64 `json:"testingComplexity"`
	EfficiencyMultiplier   float64 `json:"efficiencyMultiplier"`
	DeviceCost             float64 `json:"deviceCost"`
	CoverageBoost          float64 `json:"coverageBoost"`
	RegulatoryRequirements string  `json:"regulatoryRequirements"`
}

// Validate checks the range and multiplier invariants of a benchmark.
func (b IndustryBenchmark) Validate() error {
	ranges := map[string]Range{
		"typicalTesters":    b.TypicalTesters,
		"typicalSalary":     b.TypicalSalary,
		"typicalTestCycles": b.TypicalTestCycles,
		"typicalDevices":    b.TypicalDevices,
		"typicalReleases":   b.TypicalReleases,
	}
	for name, r := range ranges {
		if r[0] > r[1] {
			return fmt.Errorf("benchmark %s: %s min %v is greater than max %v", b.Key, name, r[0], r[1])
		}
	}
	multipliers := map[string]float64{
		"testingComplexity":    b.TestingComplexity,
		"efficiencyMultiplier": b.EfficiencyMultiplier,
		"deviceCost":           b.DeviceCost,
		"coverageBoost":        b.CoverageBoost,
	}
	for name, m := range multipliers {
		if m <= 0 {
			return fmt.Errorf("benchmark %s: %s must be positive, got %v", b.Key, name, m)
		}
	}
	return nil
}

// Table maps industry keys to benchmarks.
type Table map[string]IndustryBenchmark

var (
	defaultTable Table
	loadOnce     sync.Once
)

// Default returns the process-wide table parsed from the embedded configuration.
// It panics if the embedded file is invalid since nothing can be computed without it.
func Default() Table {
	loadOnce.Do(func() {
		t, err := Parse(rawBenchmarks)
		if err != nil {
			panic(fmt.Sprintf("benchmark: invalid embedded table: %v", err))
		}
		defaultTable = t
	})
	return defaultTable
}

// Parse decodes a YAML benchmark table and validates every entry.
func Parse(data []byte) (Table, error) {
	entries := map[string]IndustryBenchmark{}
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode benchmarks: %w", err)
	}
	if _, ok := entries[DefaultIndustry]; !ok {
		return nil, fmt.Errorf("benchmark table has no %q entry", DefaultIndustry)
	}

	t := make(Table, len(entries))
	for key, b := range entries {
		b.Key = key
		if err := b.Validate(); err != nil {
			return nil, err
		}
		t[key] = b
	}
	return t, nil
}

// Get returns the benchmark for key and whether it exists.
func (t Table) Get(key string) (IndustryBenchmark, bool) {
	b, ok := t[key]
	return b, ok
}

// Lookup is total: unknown keys resolve to the general benchmark.
func (t Table) Lookup(key string) IndustryBenchmark {
	if b, ok := t[key]; ok {
		return b
	}
	return t[DefaultIndustry]
}

// Keys returns the industry keys in lexical order.
func (t Table) Keys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// List returns the benchmarks ordered by key.
func (t Table) List() []IndustryBenchmark {
	keys := t.Keys()
	list := make([]IndustryBenchmark, 0, len(keys))
	for _, k := range keys {
		list = append(list, t[k])
	}
	return list
}
