package v1alpha1

import (
	"net/http"

	"github.com/mozark/roi-planner/api/v1alpha1"
	"github.com/mozark/roi-planner/internal/handlers/v1alpha1/mappers"
)

// (POST /api/v1/estimations)
// Runs every calculator whose params are all present. A calculator that fails is reported
// in the response with failed set, it does not fail the request.
func (h *ServiceHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	var form v1alpha1.EstimationRequest
	if err := h.decode(r, &form); err != nil {
		respondServiceError(w, r, err, "failed to decode estimation request")
		return
	}

	results := h.calculatorSrv.Estimate(r.Context(), form.Params)
	respond(w, r, http.StatusOK, mappers.EstimationsToApi(results))
}
