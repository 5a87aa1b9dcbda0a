package v1alpha1_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	api "github.com/mozark/roi-planner/api/v1alpha1"
	"github.com/mozark/roi-planner/internal/benchmark"
	"github.com/mozark/roi-planner/internal/config"
	handlers "github.com/mozark/roi-planner/internal/handlers/v1alpha1"
	"github.com/mozark/roi-planner/internal/service"
	"github.com/mozark/roi-planner/internal/store"
	"github.com/mozark/roi-planner/pkg/middleware"
	"github.com/mozark/roi-planner/pkg/requestid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

func strPtr(s string) *string    { return &s }
func numPtr(f float64) *float64 { return &f }

var _ = Describe("api handlers", Ordered, func() {
	var (
		s      store.Store
		gormdb *gorm.DB
		srv    *httptest.Server
	)

	do := func(method, path string, body any) *http.Response {
		var reader io.Reader
		if body != nil {
			data, err := json.Marshal(body)
			Expect(err).To(BeNil())
			reader = bytes.NewReader(data)
		}
		req, err := http.NewRequest(method, srv.URL+path, reader)
		Expect(err).To(BeNil())
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		resp, err := http.DefaultClient.Do(req)
		Expect(err).To(BeNil())
		return resp
	}

	decode := func(resp *http.Response, v any) {
		defer resp.Body.Close()
		Expect(json.NewDecoder(resp.Body).Decode(v)).To(Succeed())
	}

	createScenario := func(industry string) api.Scenario {
		resp := do(http.MethodPost, "/api/v1/scenarios", api.ScenarioCreate{Industry: strPtr(industry)})
		Expect(resp.StatusCode).To(Equal(http.StatusCreated))
		var scenario api.Scenario
		decode(resp, &scenario)
		return scenario
	}

	BeforeAll(func() {
		db, err := store.InitDB(config.NewDefault())
		Expect(err).To(BeNil())

		s = store.NewStore(db)
		gormdb = db
		_ = s.InitialMigration()

		table := benchmark.Default()
		calculatorSrv := service.NewCalculatorService(table)
		scenarioSrv := service.NewScenarioService(s, table, nil)
		h := handlers.NewServiceHandler(
			calculatorSrv,
			scenarioSrv,
			service.NewAnalysisRequestService(s, scenarioSrv, nil),
			service.NewReportService(scenarioSrv),
		)

		router := chi.NewRouter()
		router.Use(middleware.RequestID)
		h.Routes(router)
		srv = httptest.NewServer(router)
	})

	AfterAll(func() {
		srv.Close()
		s.Close()
	})

	AfterEach(func() {
		gormdb.Exec("DELETE FROM analysis_requests;")
		gormdb.Exec("DELETE FROM scenarios;")
	})

	Context("info", func() {
		It("reports the version", func() {
			resp := do(http.MethodGet, "/api/v1/info", nil)
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			var info api.Info
			decode(resp, &info)
			Expect(info.VersionName).NotTo(BeEmpty())
		})

		It("answers the health probe", func() {
			resp := do(http.MethodGet, "/health", nil)
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			var status api.Status
			decode(resp, &status)
			Expect(status.Status).To(Equal("ok"))
		})
	})

	Context("benchmarks", func() {
		It("lists every industry", func() {
			resp := do(http.MethodGet, "/api/v1/benchmarks", nil)
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			var list api.BenchmarkList
			decode(resp, &list)
			Expect(list).To(HaveLen(len(benchmark.Default())))
		})

		It("gets a single industry", func() {
			resp := do(http.MethodGet, "/api/v1/benchmarks/general", nil)
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			var b api.Benchmark
			decode(resp, &b)
			Expect(b.Key).To(Equal("general"))
		})

		It("returns 404 for an unknown industry", func() {
			resp := do(http.MethodGet, "/api/v1/benchmarks/aerospace", nil)
			Expect(resp.StatusCode).To(Equal(http.StatusNotFound))
			var e api.Error
			decode(resp, &e)
			Expect(e.Message).To(ContainSubstring("aerospace"))
			Expect(e.RequestId).NotTo(BeNil())
		})
	})

	Context("calculators", func() {
		It("fills in monthly test cycles from the capacity", func() {
			resp := do(http.MethodPost, "/api/v1/calculators/qa", api.QAInputs{
				ManualTesters:      26,
				TesterSalary:       95000,
				WeeklyTestingHours: 40,
				DevicesUsed:        103,
				ReleaseFrequency:   7,
			})
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			var calculation api.QACalculation
			decode(resp, &calculation)
			Expect(calculation.Inputs.Industry).To(Equal("general"))
			Expect(calculation.Capacity).To(Equal(500.0))
			Expect(calculation.Inputs.MonthlyTestCycles).To(Equal(500.0))
			Expect(calculation.Results.TotalAnnualSavings).To(BeNumerically(">", 0))
		})

		It("rejects an unknown industry", func() {
			resp := do(http.MethodPost, "/api/v1/calculators/qa", api.QAInputs{Industry: "aerospace", ManualTesters: 10})
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
		})

		It("rejects negative inputs", func() {
			resp := do(http.MethodPost, "/api/v1/calculators/qa", map[string]any{"manualTesters": -3})
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
			var e api.Error
			decode(resp, &e)
			Expect(e.Message).To(ContainSubstring("manualTesters"))
		})

		It("rejects an empty body", func() {
			resp := do(http.MethodPost, "/api/v1/calculators/ott", nil)
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
		})

		It("renders a non finite payback as null", func() {
			resp := do(http.MethodPost, "/api/v1/calculators/ott", api.OTTInputs{})
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			var raw map[string]map[string]any
			decode(resp, &raw)
			Expect(raw["results"]).To(HaveKeyWithValue("paybackPeriod", BeNil()))
		})

		It("calculates payment savings from the defaults", func() {
			resp := do(http.MethodGet, "/api/v1/calculators/payment/defaults", nil)
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			var defaults api.PaymentInputs
			decode(resp, &defaults)
			Expect(defaults.Transactions).To(BeNumerically(">", 0))

			resp = do(http.MethodPost, "/api/v1/calculators/payment", defaults)
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			var calculation api.PaymentCalculation
			decode(resp, &calculation)
			Expect(calculation.Results.TotalAnnualSavings).To(BeNumerically(">", 0))
			Expect(calculation.Results.PaybackPeriod).NotTo(BeNil())
		})

		It("returns 400 for an unknown calculator", func() {
			resp := do(http.MethodGet, "/api/v1/calculators/crypto/defaults", nil)
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
		})
	})

	Context("estimations", func() {
		It("runs only the calculators with all their params", func() {
			resp := do(http.MethodPost, "/api/v1/estimations", api.EstimationRequest{Params: map[string]any{
				"manual_testers":       26,
				"tester_salary":        95000,
				"weekly_testing_hours": 40,
				"devices_used":         103,
				"release_frequency":    7,
			}})
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			var results api.EstimationResponse
			decode(resp, &results)
			Expect(results).To(HaveLen(1))
			for _, r := range results {
				Expect(r.Failed).To(BeFalse())
				Expect(r.Metrics).NotTo(BeEmpty())
			}
		})

		It("rejects an empty params map", func() {
			resp := do(http.MethodPost, "/api/v1/estimations", api.EstimationRequest{Params: map[string]any{}})
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
		})
	})

	Context("scenarios", func() {
		It("creates a scenario with the industry defaults", func() {
			scenario := createScenario("general")
			Expect(scenario.Id).NotTo(Equal(uuid.Nil))
			Expect(scenario.Inputs.ManualTesters).To(Equal(26.0))
			Expect(scenario.Inputs.MonthlyTestCycles).To(Equal(500.0))
			Expect(scenario.CyclesOverridden).To(BeFalse())
			Expect(scenario.Results).NotTo(BeNil())
		})

		It("rejects an unknown industry", func() {
			resp := do(http.MethodPost, "/api/v1/scenarios", api.ScenarioCreate{Industry: strPtr("aerospace")})
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
		})

		It("lists and filters scenarios", func() {
			createScenario("general")
			createScenario("bfsi")

			resp := do(http.MethodGet, "/api/v1/scenarios", nil)
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			var list api.ScenarioList
			decode(resp, &list)
			Expect(list).To(HaveLen(2))

			resp = do(http.MethodGet, "/api/v1/scenarios?industry=bfsi", nil)
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			decode(resp, &list)
			Expect(list).To(HaveLen(1))
			Expect(list[0].Inputs.Industry).To(Equal("bfsi"))
		})

		It("rejects a malformed limit", func() {
			resp := do(http.MethodGet, "/api/v1/scenarios?limit=ten", nil)
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
		})

		It("overrides monthly test cycles on update", func() {
			scenario := createScenario("general")

			resp := do(http.MethodPatch, fmt.Sprintf("/api/v1/scenarios/%s", scenario.Id), api.ScenarioUpdate{
				Name:              strPtr("pilot"),
				MonthlyTestCycles: numPtr(120),
			})
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			var updated api.Scenario
			decode(resp, &updated)
			Expect(updated.Name).To(Equal("pilot"))
			Expect(updated.Inputs.MonthlyTestCycles).To(Equal(120.0))
			Expect(updated.CyclesOverridden).To(BeTrue())
		})

		It("rejects a blank name", func() {
			scenario := createScenario("general")

			resp := do(http.MethodPatch, fmt.Sprintf("/api/v1/scenarios/%s", scenario.Id), api.ScenarioUpdate{Name: strPtr("  ")})
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
		})

		It("returns 404 for a missing scenario", func() {
			resp := do(http.MethodGet, fmt.Sprintf("/api/v1/scenarios/%s", uuid.New()), nil)
			Expect(resp.StatusCode).To(Equal(http.StatusNotFound))
		})

		It("returns 400 for a malformed id", func() {
			resp := do(http.MethodGet, "/api/v1/scenarios/not-a-uuid", nil)
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
		})

		It("deletes a scenario", func() {
			scenario := createScenario("general")

			resp := do(http.MethodDelete, fmt.Sprintf("/api/v1/scenarios/%s", scenario.Id), nil)
			Expect(resp.StatusCode).To(Equal(http.StatusNoContent))

			resp = do(http.MethodDelete, fmt.Sprintf("/api/v1/scenarios/%s", scenario.Id), nil)
			Expect(resp.StatusCode).To(Equal(http.StatusNotFound))
		})
	})

	Context("analysis requests", func() {
		It("stores a request with a snapshot of the results", func() {
			scenario := createScenario("general")

			resp := do(http.MethodPost, fmt.Sprintf("/api/v1/scenarios/%s/analysis-requests", scenario.Id), api.UserInfo{
				Name:    "Jane Doe",
				Email:   "jane@example.com",
				Company: "Acme",
			})
			Expect(resp.StatusCode).To(Equal(http.StatusCreated))
			var request api.AnalysisRequest
			decode(resp, &request)
			Expect(request.ScenarioId).To(Equal(scenario.Id))
			Expect(request.Snapshot.Results.TotalAnnualSavings).To(Equal(scenario.Results.TotalAnnualSavings))

			resp = do(http.MethodGet, fmt.Sprintf("/api/v1/analysis-requests/%s", request.Id), nil)
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			resp = do(http.MethodGet, fmt.Sprintf("/api/v1/scenarios/%s/analysis-requests", scenario.Id), nil)
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			var list api.AnalysisRequestList
			decode(resp, &list)
			Expect(list).To(HaveLen(1))
		})

		It("rejects an invalid email", func() {
			scenario := createScenario("general")

			resp := do(http.MethodPost, fmt.Sprintf("/api/v1/scenarios/%s/analysis-requests", scenario.Id), api.UserInfo{
				Name:    "Jane Doe",
				Email:   "not-an-email",
				Company: "Acme",
			})
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
			var e api.Error
			decode(resp, &e)
			Expect(e.Message).To(ContainSubstring("email"))
		})

		It("returns 404 for a missing scenario", func() {
			resp := do(http.MethodPost, fmt.Sprintf("/api/v1/scenarios/%s/analysis-requests", uuid.New()), api.UserInfo{
				Name:    "Jane Doe",
				Email:   "jane@example.com",
				Company: "Acme",
			})
			Expect(resp.StatusCode).To(Equal(http.StatusNotFound))
		})
	})

	Context("reports", func() {
		It("exports csv by default", func() {
			scenario := createScenario("general")

			resp := do(http.MethodGet, fmt.Sprintf("/api/v1/scenarios/%s/report", scenario.Id), nil)
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			Expect(resp.Header.Get("Content-Type")).To(ContainSubstring("text/csv"))
			Expect(resp.Header.Get("Content-Disposition")).To(ContainSubstring(fmt.Sprintf("roi-report-%s.csv", scenario.Id)))
			body, err := io.ReadAll(resp.Body)
			resp.Body.Close()
			Expect(err).To(BeNil())
			Expect(string(body)).To(ContainSubstring("QA AUTOMATION ROI REPORT"))
		})

		It("exports html", func() {
			scenario := createScenario("general")

			resp := do(http.MethodGet, fmt.Sprintf("/api/v1/scenarios/%s/report?format=html", scenario.Id), nil)
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			Expect(resp.Header.Get("Content-Type")).To(ContainSubstring("text/html"))
			resp.Body.Close()
		})

		It("rejects an unsupported format", func() {
			scenario := createScenario("general")

			resp := do(http.MethodGet, fmt.Sprintf("/api/v1/scenarios/%s/report?format=pdf", scenario.Id), nil)
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
			Expect(resp.Header.Get(requestid.Header)).NotTo(BeEmpty())
		})
	})
})
