package v1alpha1

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mozark/roi-planner/api/v1alpha1"
	"github.com/mozark/roi-planner/internal/estimation/calculators"
	"github.com/mozark/roi-planner/internal/handlers/v1alpha1/mappers"
)

// (POST /api/v1/calculators/qa)
func (h *ServiceHandler) CalculateQA(w http.ResponseWriter, r *http.Request) {
	var form v1alpha1.QAInputs
	if err := h.decode(r, &form); err != nil {
		respondServiceError(w, r, err, "failed to decode qa inputs")
		return
	}

	calculation, err := h.calculatorSrv.CalculateQA(r.Context(), mappers.QAInputsFromApi(form))
	if err != nil {
		respondServiceError(w, r, err, "failed to calculate qa roi")
		return
	}

	respond(w, r, http.StatusOK, mappers.QACalculationToApi(calculation))
}

// (POST /api/v1/calculators/ott)
func (h *ServiceHandler) CalculateOTT(w http.ResponseWriter, r *http.Request) {
	var form v1alpha1.OTTInputs
	if err := h.decode(r, &form); err != nil {
		respondServiceError(w, r, err, "failed to decode ott inputs")
		return
	}

	in := mappers.OTTInputsFromApi(form)
	results, err := h.calculatorSrv.CalculateOTT(r.Context(), in)
	if err != nil {
		respondServiceError(w, r, err, "failed to calculate ott roi")
		return
	}

	respond(w, r, http.StatusOK, v1alpha1.OTTCalculation{
		Inputs:  mappers.OTTInputsToApi(in),
		Results: mappers.OTTResultsToApi(results),
	})
}

// (POST /api/v1/calculators/payment)
func (h *ServiceHandler) CalculatePayment(w http.ResponseWriter, r *http.Request) {
	var form v1alpha1.PaymentInputs
	if err := h.decode(r, &form); err != nil {
		respondServiceError(w, r, err, "failed to decode payment inputs")
		return
	}

	in := mappers.PaymentInputsFromApi(form)
	results, err := h.calculatorSrv.CalculatePayment(r.Context(), in)
	if err != nil {
		respondServiceError(w, r, err, "failed to calculate payment roi")
		return
	}

	respond(w, r, http.StatusOK, v1alpha1.PaymentCalculation{
		Inputs:  mappers.PaymentInputsToApi(in),
		Results: mappers.PaymentResultsToApi(results),
	})
}

// (GET /api/v1/calculators/{kind}/defaults)
func (h *ServiceHandler) GetCalculatorDefaults(w http.ResponseWriter, r *http.Request) {
	defaults, err := h.calculatorSrv.Defaults(chi.URLParam(r, "kind"))
	if err != nil {
		respondServiceError(w, r, err, "failed to get calculator defaults")
		return
	}

	switch in := defaults.(type) {
	case calculators.QAInputs:
		respond(w, r, http.StatusOK, mappers.QAInputsToApi(in))
	case calculators.OTTInputs:
		respond(w, r, http.StatusOK, mappers.OTTInputsToApi(in))
	case calculators.PaymentInputs:
		respond(w, r, http.StatusOK, mappers.PaymentInputsToApi(in))
	default:
		respondServiceError(w, r, fmt.Errorf("unexpected defaults type %T", defaults), "failed to get calculator defaults")
	}
}
