package v1alpha1

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mozark/roi-planner/internal/handlers/v1alpha1/mappers"
)

// (GET /api/v1/benchmarks)
func (h *ServiceHandler) ListBenchmarks(w http.ResponseWriter, r *http.Request) {
	respond(w, r, http.StatusOK, mappers.BenchmarkListToApi(h.calculatorSrv.ListBenchmarks()))
}

// (GET /api/v1/benchmarks/{industry})
func (h *ServiceHandler) GetBenchmark(w http.ResponseWriter, r *http.Request) {
	b, err := h.calculatorSrv.GetBenchmark(chi.URLParam(r, "industry"))
	if err != nil {
		respondServiceError(w, r, err, "failed to get benchmark")
		return
	}
	respond(w, r, http.StatusOK, mappers.BenchmarkToApi(b))
}
