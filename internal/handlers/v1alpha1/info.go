package v1alpha1

import (
	"net/http"

	"github.com/mozark/roi-planner/api/v1alpha1"
	"github.com/mozark/roi-planner/pkg/version"
)

// (GET /api/v1/info)
func (h *ServiceHandler) GetInfo(w http.ResponseWriter, r *http.Request) {
	versionInfo := version.Get()

	response := v1alpha1.Info{
		GitCommit:   versionInfo.GitCommit,
		VersionName: versionInfo.GitVersion,
	}

	respond(w, r, http.StatusOK, response)
}

// (GET /health)
func (h *ServiceHandler) Health(w http.ResponseWriter, r *http.Request) {
	respond(w, r, http.StatusOK, v1alpha1.Status{Status: "ok"})
}
