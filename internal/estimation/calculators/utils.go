package calculators

import (
	"fmt"
	"math"

	"github.com/mozark/roi-planner/internal/estimation"
)

func getFloat(p estimation.Param) (float64, error) {
	switch v := p.Value.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	default:
		return 0.0, fmt.Errorf("param %s is not a number (type: %T)", p.Key, p.Value)
	}
}

func getString(p estimation.Param) (string, error) {
	v, ok := p.Value.(string)
	if !ok {
		return "", fmt.Errorf("param %s is not a string (type: %T)", p.Key, p.Value)
	}
	return v, nil
}

// floatParams reads every key from params into the matching destination.
// Missing keys keep the destination value when optional is true.
func floatParams(params map[string]estimation.Param, dst map[string]*float64, optional bool) error {
	for key, ptr := range dst {
		p, ok := params[key]
		if !ok {
			if optional {
				continue
			}
			return fmt.Errorf("missing %s", key)
		}
		v, err := getFloat(p)
		if err != nil {
			return err
		}
		if v < 0 {
			return fmt.Errorf("%s must be non-negative", key)
		}
		*ptr = v
	}
	return nil
}

// clamp = min(hi, max(lo, x))
func clamp(x, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, x))
}

// round rounds half away from zero.
func round(x float64) float64 {
	return math.Round(x)
}

// paybackMonths divides a one-off cost by a monthly savings rate.
// A non-positive rate never pays back and yields +Inf.
func paybackMonths(cost, monthlySavings float64) float64 {
	if monthlySavings <= 0 {
		return math.Inf(1)
	}
	return cost / monthlySavings
}

type namedValue struct {
	field string
	value float64
}

// firstNegative returns the name of the first negative value.
func firstNegative(values []namedValue) (string, error) {
	for _, v := range values {
		if v.value < 0 || math.IsNaN(v.value) {
			return v.field, fmt.Errorf("%s must be non-negative, got %v", v.field, v.value)
		}
	}
	return "", nil
}
