package validator

import (
	"github.com/go-playground/validator/v10"
	"github.com/mozark/roi-planner/internal/benchmark"
)

func registerFn(tag string, fn func(fl validator.FieldLevel) bool) func(v *validator.Validate) {
	return func(v *validator.Validate) {
		_ = v.RegisterValidation(tag, fn)
	}
}

func NewBenchmarkValidationRules(table benchmark.Table) []ValidationRule {
	return []ValidationRule{
		{
			Rule: registerFn("industry", industryValidator(table)),
		},
	}
}

func NewScenarioValidationRules() []ValidationRule {
	return []ValidationRule{
		{
			Rule: registerFn("scenario_name", scenarioNameValidator),
		},
	}
}

func NewUserInfoValidationRules() []ValidationRule {
	return []ValidationRule{
		{
			Rule: registerFn("phone", phoneValidator),
		},
	}
}
