package service_test

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/mozark/roi-planner/internal/benchmark"
	"github.com/mozark/roi-planner/internal/config"
	"github.com/mozark/roi-planner/internal/events"
	"github.com/mozark/roi-planner/internal/scenario"
	"github.com/mozark/roi-planner/internal/service"
	"github.com/mozark/roi-planner/internal/store"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

func ptr[T any](v T) *T { return &v }

var _ = Describe("scenario service", Ordered, func() {
	var (
		s      store.Store
		gormdb *gorm.DB
	)

	BeforeAll(func() {
		db, err := store.InitDB(config.NewDefault())
		Expect(err).To(BeNil())

		s = store.NewStore(db)
		gormdb = db
		_ = s.InitialMigration()
	})

	AfterAll(func() {
		s.Close()
	})

	AfterEach(func() {
		gormdb.Exec("DELETE FROM analysis_requests;")
		gormdb.Exec("DELETE FROM scenarios;")
	})

	Context("create", func() {
		It("starts from the industry defaults", func() {
			srv := service.NewScenarioService(s, benchmark.Default(), nil)

			state, err := srv.CreateScenario(context.TODO(), "", "general")
			Expect(err).To(BeNil())
			Expect(state.Scenario.ID).NotTo(Equal(uuid.Nil))
			Expect(state.Scenario.Name).To(Equal("General scenario"))
			Expect(state.Scenario.ManualTesters).To(Equal(26.0))
			Expect(state.Scenario.TesterSalary).To(Equal(95000.0))
			Expect(state.Scenario.DevicesUsed).To(Equal(103.0))
			Expect(state.Scenario.ReleaseFrequency).To(Equal(7.0))
			// 26 * 16 * 1.7 = 707.2, clamped to 500
			Expect(state.Capacity).To(Equal(500.0))
			Expect(state.Scenario.MonthlyTestCycles).To(Equal(500.0))
			Expect(state.Scenario.CyclesOverridden).To(BeFalse())

			var count int64
			Expect(gormdb.Table("scenarios").Count(&count).Error).To(BeNil())
			Expect(count).To(Equal(int64(1)))
		})

		It("defaults to the general industry", func() {
			srv := service.NewScenarioService(s, benchmark.Default(), nil)

			state, err := srv.CreateScenario(context.TODO(), "mine", "")
			Expect(err).To(BeNil())
			Expect(state.Scenario.Industry).To(Equal("general"))
			Expect(state.Scenario.Name).To(Equal("mine"))
		})

		It("rejects an unknown industry", func() {
			srv := service.NewScenarioService(s, benchmark.Default(), nil)

			_, err := srv.CreateScenario(context.TODO(), "", "space")
			Expect(err).NotTo(BeNil())
			Expect(err).To(BeAssignableToTypeOf(&service.ErrInvalidInput{}))
		})
	})

	Context("list and get", func() {
		It("filters by industry and pages", func() {
			srv := service.NewScenarioService(s, benchmark.Default(), nil)
			for _, industry := range []string{"general", "bfsi", "bfsi", "fintech"} {
				_, err := srv.CreateScenario(context.TODO(), "", industry)
				Expect(err).To(BeNil())
			}

			all, err := srv.ListScenarios(context.TODO(), service.ScenarioFilter{})
			Expect(err).To(BeNil())
			Expect(all).To(HaveLen(4))

			bfsi, err := srv.ListScenarios(context.TODO(), service.ScenarioFilter{Industry: "bfsi"})
			Expect(err).To(BeNil())
			Expect(bfsi).To(HaveLen(2))

			page, err := srv.ListScenarios(context.TODO(), service.ScenarioFilter{Limit: 3, Offset: 2})
			Expect(err).To(BeNil())
			Expect(page).To(HaveLen(2))
		})

		It("returns not found for a missing scenario", func() {
			srv := service.NewScenarioService(s, benchmark.Default(), nil)

			_, err := srv.GetScenario(context.TODO(), uuid.New())
			Expect(err).To(BeAssignableToTypeOf(&service.ErrResourceNotFound{}))
		})
	})

	Context("update", func() {
		It("re-snaps monthly test cycles on a driver change", func() {
			srv := service.NewScenarioService(s, benchmark.Default(), nil)
			created, err := srv.CreateScenario(context.TODO(), "", "general")
			Expect(err).To(BeNil())

			state, err := srv.UpdateScenario(context.TODO(), created.Scenario.ID, service.ScenarioUpdate{
				Update: scenario.Update{
					ManualTesters:      ptr(5.0),
					WeeklyTestingHours: ptr(40.0),
					ReleaseFrequency:   ptr(4.0),
				},
			})
			Expect(err).To(BeNil())
			Expect(state.Scenario.MonthlyTestCycles).To(Equal(112.0))
			Expect(state.Scenario.CyclesOverridden).To(BeFalse())

			stored, err := srv.GetScenario(context.TODO(), created.Scenario.ID)
			Expect(err).To(BeNil())
			Expect(stored.Scenario.MonthlyTestCycles).To(Equal(112.0))
			Expect(stored.Scenario.ManualTesters).To(Equal(5.0))
		})

		It("keeps an override until the next driver change", func() {
			srv := service.NewScenarioService(s, benchmark.Default(), nil)
			created, err := srv.CreateScenario(context.TODO(), "", "general")
			Expect(err).To(BeNil())
			id := created.Scenario.ID

			state, err := srv.UpdateScenario(context.TODO(), id, service.ScenarioUpdate{
				Update: scenario.Update{MonthlyTestCycles: ptr(42.0)},
			})
			Expect(err).To(BeNil())
			Expect(state.Scenario.CyclesOverridden).To(BeTrue())

			state, err = srv.UpdateScenario(context.TODO(), id, service.ScenarioUpdate{
				Name:   ptr("renamed"),
				Update: scenario.Update{DevicesUsed: ptr(10.0)},
			})
			Expect(err).To(BeNil())
			Expect(state.Scenario.Name).To(Equal("renamed"))
			Expect(state.Scenario.MonthlyTestCycles).To(Equal(42.0))
			Expect(state.Scenario.CyclesOverridden).To(BeTrue())

			state, err = srv.UpdateScenario(context.TODO(), id, service.ScenarioUpdate{
				Update: scenario.Update{ManualTesters: ptr(5.0)},
			})
			Expect(err).To(BeNil())
			Expect(state.Scenario.CyclesOverridden).To(BeFalse())
		})

		It("keeps an override when the full form is resent unchanged", func() {
			srv := service.NewScenarioService(s, benchmark.Default(), nil)
			created, err := srv.CreateScenario(context.TODO(), "", "general")
			Expect(err).To(BeNil())
			id := created.Scenario.ID

			state, err := srv.UpdateScenario(context.TODO(), id, service.ScenarioUpdate{
				Update: scenario.Update{MonthlyTestCycles: ptr(300.0)},
			})
			Expect(err).To(BeNil())
			Expect(state.Scenario.CyclesOverridden).To(BeTrue())

			in := state.Scenario.Inputs()
			state, err = srv.UpdateScenario(context.TODO(), id, service.ScenarioUpdate{
				Update: scenario.Update{
					Industry:           ptr(in.Industry),
					ManualTesters:      ptr(in.ManualTesters),
					TesterSalary:       ptr(in.TesterSalary),
					WeeklyTestingHours: ptr(in.WeeklyTestingHours),
					MonthlyTestCycles:  ptr(in.MonthlyTestCycles),
					DevicesUsed:        ptr(in.DevicesUsed),
					ReleaseFrequency:   ptr(in.ReleaseFrequency),
				},
			})
			Expect(err).To(BeNil())
			Expect(state.Scenario.MonthlyTestCycles).To(Equal(300.0))
			Expect(state.Scenario.CyclesOverridden).To(BeTrue())

			stored, err := srv.GetScenario(context.TODO(), id)
			Expect(err).To(BeNil())
			Expect(stored.Scenario.MonthlyTestCycles).To(Equal(300.0))
			Expect(stored.Scenario.CyclesOverridden).To(BeTrue())
		})

		It("resets to the new industry midpoints and keeps devices", func() {
			srv := service.NewScenarioService(s, benchmark.Default(), nil)
			created, err := srv.CreateScenario(context.TODO(), "", "general")
			Expect(err).To(BeNil())

			state, err := srv.UpdateScenario(context.TODO(), created.Scenario.ID, service.ScenarioUpdate{
				Update: scenario.Update{Industry: ptr("enterprise")},
			})
			Expect(err).To(BeNil())
			Expect(state.Scenario.Industry).To(Equal("enterprise"))
			Expect(state.Scenario.ManualTesters).To(Equal(160.0))
			Expect(state.Scenario.TesterSalary).To(Equal(105000.0))
			Expect(state.Scenario.DevicesUsed).To(Equal(103.0))
			Expect(state.Benchmark.Key).To(Equal("enterprise"))
		})

		It("rejects an empty name and leaves the scenario unchanged", func() {
			srv := service.NewScenarioService(s, benchmark.Default(), nil)
			created, err := srv.CreateScenario(context.TODO(), "kept", "general")
			Expect(err).To(BeNil())

			_, err = srv.UpdateScenario(context.TODO(), created.Scenario.ID, service.ScenarioUpdate{
				Name:   ptr("  "),
				Update: scenario.Update{ManualTesters: ptr(3.0)},
			})
			Expect(err).To(BeAssignableToTypeOf(&service.ErrInvalidInput{}))

			stored, err := srv.GetScenario(context.TODO(), created.Scenario.ID)
			Expect(err).To(BeNil())
			Expect(stored.Scenario.Name).To(Equal("kept"))
			Expect(stored.Scenario.ManualTesters).To(Equal(26.0))
		})

		It("returns not found for a missing scenario", func() {
			srv := service.NewScenarioService(s, benchmark.Default(), nil)

			_, err := srv.UpdateScenario(context.TODO(), uuid.New(), service.ScenarioUpdate{})
			Expect(err).To(BeAssignableToTypeOf(&service.ErrResourceNotFound{}))
		})

		It("rejects an unknown industry", func() {
			srv := service.NewScenarioService(s, benchmark.Default(), nil)
			created, err := srv.CreateScenario(context.TODO(), "", "general")
			Expect(err).To(BeNil())

			_, err = srv.UpdateScenario(context.TODO(), created.Scenario.ID, service.ScenarioUpdate{
				Update: scenario.Update{Industry: ptr("space")},
			})
			Expect(err).To(BeAssignableToTypeOf(&service.ErrInvalidInput{}))
		})
	})

	Context("delete", func() {
		It("removes the scenario and publishes an event", func() {
			eventWriter := newTestWriter()
			producer := events.NewEventProducer(eventWriter)
			defer producer.Close()

			srv := service.NewScenarioService(s, benchmark.Default(), producer)
			created, err := srv.CreateScenario(context.TODO(), "", "general")
			Expect(err).To(BeNil())

			Expect(srv.DeleteScenario(context.TODO(), created.Scenario.ID)).To(Succeed())

			_, err = srv.GetScenario(context.TODO(), created.Scenario.ID)
			Expect(err).To(BeAssignableToTypeOf(&service.ErrResourceNotFound{}))

			Eventually(eventWriter.Len).WithTimeout(2 * time.Second).Should(Equal(1))
			e := eventWriter.Events()[0]
			Expect(e.Type()).To(Equal(events.ScenarioDeletedKind))

			var deleted events.ScenarioDeletedEvent
			Expect(json.Unmarshal(e.Data(), &deleted)).To(Succeed())
			Expect(deleted.ScenarioID).To(Equal(created.Scenario.ID.String()))
		})

		It("keeps the analysis requests when the scenario delete fails", func() {
			srv := service.NewScenarioService(s, benchmark.Default(), nil)
			created, err := srv.CreateScenario(context.TODO(), "", "general")
			Expect(err).To(BeNil())

			requests := service.NewAnalysisRequestService(s, srv, nil)
			_, err = requests.CreateAnalysisRequest(context.TODO(), created.Scenario.ID, service.UserInfo{
				Name:    "Jane Doe",
				Email:   "jane@example.com",
				Company: "Acme Bank",
			})
			Expect(err).To(BeNil())

			tx := gormdb.Exec("CREATE TRIGGER block_scenario_delete BEFORE DELETE ON scenarios BEGIN SELECT RAISE(ABORT, 'scenario delete blocked'); END;")
			Expect(tx.Error).To(BeNil())
			defer gormdb.Exec("DROP TRIGGER IF EXISTS block_scenario_delete;")

			Expect(srv.DeleteScenario(context.TODO(), created.Scenario.ID)).NotTo(Succeed())

			var count int
			tx = gormdb.Raw("SELECT COUNT(*) FROM analysis_requests WHERE scenario_id = ?;", created.Scenario.ID).Scan(&count)
			Expect(tx.Error).To(BeNil())
			Expect(count).To(Equal(1))

			_, err = srv.GetScenario(context.TODO(), created.Scenario.ID)
			Expect(err).To(BeNil())
		})

		It("returns not found for a missing scenario", func() {
			srv := service.NewScenarioService(s, benchmark.Default(), nil)
			Expect(srv.DeleteScenario(context.TODO(), uuid.New())).To(BeAssignableToTypeOf(&service.ErrResourceNotFound{}))
		})
	})
})
