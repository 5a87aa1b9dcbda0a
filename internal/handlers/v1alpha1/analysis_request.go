package v1alpha1

import (
	"net/http"

	"github.com/mozark/roi-planner/api/v1alpha1"
	"github.com/mozark/roi-planner/internal/handlers/v1alpha1/mappers"
)

// (POST /api/v1/scenarios/{id}/analysis-requests)
func (h *ServiceHandler) CreateAnalysisRequest(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondServiceError(w, r, err, "")
		return
	}

	var form v1alpha1.UserInfo
	if err := h.decode(r, &form); err != nil {
		respondServiceError(w, r, err, "failed to decode user info")
		return
	}

	request, err := h.analysisSrv.CreateAnalysisRequest(r.Context(), id, mappers.UserInfoFromApi(form))
	if err != nil {
		respondServiceError(w, r, err, "failed to create analysis request")
		return
	}

	respond(w, r, http.StatusCreated, mappers.AnalysisRequestToApi(*request))
}

// (GET /api/v1/scenarios/{id}/analysis-requests)
func (h *ServiceHandler) ListAnalysisRequests(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondServiceError(w, r, err, "")
		return
	}

	requests, err := h.analysisSrv.ListAnalysisRequests(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err, "failed to list analysis requests")
		return
	}

	respond(w, r, http.StatusOK, mappers.AnalysisRequestListToApi(requests))
}

// (GET /api/v1/analysis-requests/{id})
func (h *ServiceHandler) GetAnalysisRequest(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondServiceError(w, r, err, "")
		return
	}

	request, err := h.analysisSrv.GetAnalysisRequest(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err, "failed to get analysis request")
		return
	}

	respond(w, r, http.StatusOK, mappers.AnalysisRequestToApi(*request))
}
