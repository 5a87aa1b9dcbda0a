package v1alpha1

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/mozark/roi-planner/api/v1alpha1"
	"github.com/mozark/roi-planner/internal/handlers/validator"
	"github.com/mozark/roi-planner/internal/service"
	"github.com/mozark/roi-planner/pkg/requestid"
	"go.uber.org/zap"
)

type ServiceHandler struct {
	calculatorSrv *service.CalculatorService
	scenarioSrv   *service.ScenarioService
	analysisSrv   *service.AnalysisRequestService
	reportSrv     *service.ReportService
	validator     *validator.Validator
}

// NewServiceHandler returns a new ServiceHandler. Forms are validated against the benchmarks
// of the calculator service.
func NewServiceHandler(
	calculatorService *service.CalculatorService,
	scenarioService *service.ScenarioService,
	analysisService *service.AnalysisRequestService,
	reportService *service.ReportService,
) *ServiceHandler {
	v := validator.NewValidator()
	v.Register(validator.NewBenchmarkValidationRules(calculatorService.Benchmarks())...)
	v.Register(validator.NewScenarioValidationRules()...)
	v.Register(validator.NewUserInfoValidationRules()...)

	return &ServiceHandler{
		calculatorSrv: calculatorService,
		scenarioSrv:   scenarioService,
		analysisSrv:   analysisService,
		reportSrv:     reportService,
		validator:     v,
	}
}

// Routes mounts the API on r.
func (h *ServiceHandler) Routes(r chi.Router) {
	r.Get("/health", h.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/info", h.GetInfo)

		r.Get("/benchmarks", h.ListBenchmarks)
		r.Get("/benchmarks/{industry}", h.GetBenchmark)

		r.Post("/calculators/qa", h.CalculateQA)
		r.Post("/calculators/ott", h.CalculateOTT)
		r.Post("/calculators/payment", h.CalculatePayment)
		r.Get("/calculators/{kind}/defaults", h.GetCalculatorDefaults)

		r.Post("/estimations", h.Estimate)

		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Post("/", h.CreateScenario)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetScenario)
				r.Patch("/", h.UpdateScenario)
				r.Delete("/", h.DeleteScenario)
				r.Get("/report", h.GetScenarioReport)
				r.Get("/analysis-requests", h.ListAnalysisRequests)
				r.Post("/analysis-requests", h.CreateAnalysisRequest)
			})
		})

		r.Get("/analysis-requests/{id}", h.GetAnalysisRequest)
	})
}

func respond(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

func respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	respond(w, r, status, v1alpha1.Error{Message: message, RequestId: requestid.FromContextPtr(r.Context())})
}

// respondServiceError maps service errors to their status code. Unexpected errors are
// logged and hidden behind defaultMessage.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error, defaultMessage string) {
	var (
		invalidInput *service.ErrInvalidInput
		invalidField *validator.ErrInvalidField
		notFound     *service.ErrResourceNotFound
	)
	switch {
	case errors.As(err, &invalidInput), errors.As(err, &invalidField):
		respondError(w, r, http.StatusBadRequest, err.Error())
	case errors.As(err, &notFound):
		respondError(w, r, http.StatusNotFound, err.Error())
	default:
		zap.S().Named("handler").Errorw(defaultMessage, "error", err, "request_id", requestid.FromRequest(r))
		respondError(w, r, http.StatusInternalServerError, defaultMessage)
	}
}

// decode reads a json body into v and validates it.
func (h *ServiceHandler) decode(r *http.Request, v any) error {
	if err := render.DecodeJSON(r.Body, v); err != nil {
		if errors.Is(err, io.EOF) {
			return service.NewErrInvalidInput("body", errors.New("empty body"))
		}
		return service.NewErrInvalidInput("body", err)
	}
	return h.validator.Struct(v)
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, service.NewErrInvalidInput(name, fmt.Errorf("%q is not a valid uuid", raw))
	}
	return id, nil
}
