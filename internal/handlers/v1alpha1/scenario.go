package v1alpha1

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/mozark/roi-planner/api/v1alpha1"
	"github.com/mozark/roi-planner/internal/handlers/v1alpha1/mappers"
	"github.com/mozark/roi-planner/internal/service"
)

// (GET /api/v1/scenarios)
func (h *ServiceHandler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := service.ScenarioFilter{Industry: query.Get("industry")}

	var err error
	if filter.Limit, err = queryInt(r, "limit"); err != nil {
		respondServiceError(w, r, err, "")
		return
	}
	if filter.Offset, err = queryInt(r, "offset"); err != nil {
		respondServiceError(w, r, err, "")
		return
	}

	scenarios, err := h.scenarioSrv.ListScenarios(r.Context(), filter)
	if err != nil {
		respondServiceError(w, r, err, "failed to list scenarios")
		return
	}

	respond(w, r, http.StatusOK, mappers.ScenarioListToApi(scenarios))
}

// (POST /api/v1/scenarios)
func (h *ServiceHandler) CreateScenario(w http.ResponseWriter, r *http.Request) {
	var form v1alpha1.ScenarioCreate
	if err := h.decode(r, &form); err != nil {
		respondServiceError(w, r, err, "failed to decode scenario")
		return
	}

	var name, industry string
	if form.Name != nil {
		name = *form.Name
	}
	if form.Industry != nil {
		industry = *form.Industry
	}

	state, err := h.scenarioSrv.CreateScenario(r.Context(), name, industry)
	if err != nil {
		respondServiceError(w, r, err, "failed to create scenario")
		return
	}

	respond(w, r, http.StatusCreated, mappers.ScenarioToApi(state))
}

// (GET /api/v1/scenarios/{id})
func (h *ServiceHandler) GetScenario(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondServiceError(w, r, err, "")
		return
	}

	state, err := h.scenarioSrv.GetScenario(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err, "failed to get scenario")
		return
	}

	respond(w, r, http.StatusOK, mappers.ScenarioToApi(state))
}

// (PATCH /api/v1/scenarios/{id})
func (h *ServiceHandler) UpdateScenario(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondServiceError(w, r, err, "")
		return
	}

	var form v1alpha1.ScenarioUpdate
	if err := h.decode(r, &form); err != nil {
		respondServiceError(w, r, err, "failed to decode scenario update")
		return
	}

	state, err := h.scenarioSrv.UpdateScenario(r.Context(), id, mappers.ScenarioUpdateFromApi(form))
	if err != nil {
		respondServiceError(w, r, err, "failed to update scenario")
		return
	}

	respond(w, r, http.StatusOK, mappers.ScenarioToApi(state))
}

// (DELETE /api/v1/scenarios/{id})
func (h *ServiceHandler) DeleteScenario(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondServiceError(w, r, err, "")
		return
	}

	if err := h.scenarioSrv.DeleteScenario(r.Context(), id); err != nil {
		respondServiceError(w, r, err, "failed to delete scenario")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, service.NewErrInvalidInput(name, fmt.Errorf("%q is not a positive integer", raw))
	}
	return v, nil
}
