package validator

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mozark/roi-planner/internal/benchmark"
)

var phoneRegex = regexp.MustCompile(`^\+?[0-9 ().-]{7,20}$`)

func industryValidator(table benchmark.Table) func(fl validator.FieldLevel) bool {
	return func(fl validator.FieldLevel) bool {
		val, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		_, found := table.Get(val)
		return found
	}
}

func scenarioNameValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return strings.TrimSpace(val) != ""
}

func phoneValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	// at least 7 digits, separators aside
	digits := 0
	for _, r := range val {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= 7 && phoneRegex.MatchString(strings.TrimSpace(val))
}
