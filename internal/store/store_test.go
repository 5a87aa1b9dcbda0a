package store_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/mozark/roi-planner/internal/config"
	st "github.com/mozark/roi-planner/internal/store"
	"github.com/mozark/roi-planner/internal/store/model"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

func newScenario(name, industry string) model.Scenario {
	return model.Scenario{
		Name:               name,
		Industry:           industry,
		ManualTesters:      5,
		TesterSalary:       75000,
		WeeklyTestingHours: 40,
		MonthlyTestCycles:  112,
		DevicesUsed:        20,
		ReleaseFrequency:   4,
	}
}

var _ = Describe("Store", Ordered, func() {
	var (
		store  st.Store
		gormDB *gorm.DB
	)

	BeforeAll(func() {
		db, err := st.InitDB(config.NewDefault())
		Expect(err).To(BeNil())
		gormDB = db

		store = st.NewStore(db)
		Expect(store).ToNot(BeNil())
		Expect(store.InitialMigration()).To(BeNil())
	})

	AfterAll(func() {
		store.Close()
	})

	AfterEach(func() {
		gormDB.Exec("DELETE FROM analysis_requests;")
		gormDB.Exec("DELETE FROM scenarios;")
	})

	Context("transaction", func() {
		It("insert a scenario successfully", func() {
			ctx, err := store.NewTransactionContext(context.TODO())
			Expect(err).To(BeNil())

			scenario, err := store.Scenario().Create(ctx, newScenario("first", "general"))
			Expect(err).To(BeNil())
			Expect(scenario.ID).NotTo(Equal(uuid.Nil))

			_, cerr := st.Commit(ctx)
			Expect(cerr).To(BeNil())

			count := 0
			err = gormDB.Raw("SELECT COUNT(*) FROM scenarios;").Scan(&count).Error
			Expect(err).To(BeNil())
			Expect(count).To(Equal(1))
		})

		It("rollback a scenario successfully", func() {
			ctx, err := store.NewTransactionContext(context.TODO())
			Expect(err).To(BeNil())

			_, err = store.Scenario().Create(ctx, newScenario("rolled back", "general"))
			Expect(err).To(BeNil())

			// visible inside the transaction
			scenarios, err := store.Scenario().List(ctx, st.NewScenarioQueryFilter(), nil)
			Expect(err).To(BeNil())
			Expect(scenarios).To(HaveLen(1))

			_, rerr := st.Rollback(ctx)
			Expect(rerr).To(BeNil())

			count := 0
			err = gormDB.Raw("SELECT COUNT(*) FROM scenarios;").Scan(&count).Error
			Expect(err).To(BeNil())
			Expect(count).To(Equal(0))
		})
	})

	Context("scenario", func() {
		It("gets a scenario", func() {
			created, err := store.Scenario().Create(context.TODO(), newScenario("get", "bfsi"))
			Expect(err).To(BeNil())

			scenario, err := store.Scenario().Get(context.TODO(), created.ID)
			Expect(err).To(BeNil())
			Expect(scenario.Name).To(Equal("get"))
			Expect(scenario.Industry).To(Equal("bfsi"))
			Expect(scenario.Inputs().MonthlyTestCycles).To(Equal(112.0))
		})

		It("fails to get a missing scenario", func() {
			_, err := store.Scenario().Get(context.TODO(), uuid.New())
			Expect(err).To(MatchError(st.ErrRecordNotFound))
		})

		It("lists with filter and options", func() {
			for _, s := range []model.Scenario{
				newScenario("b", "general"),
				newScenario("a", "general"),
				newScenario("c", "fintech"),
			} {
				_, err := store.Scenario().Create(context.TODO(), s)
				Expect(err).To(BeNil())
			}

			all, err := store.Scenario().List(context.TODO(), st.NewScenarioQueryFilter(), st.NewScenarioQueryOptions())
			Expect(err).To(BeNil())
			Expect(all).To(HaveLen(3))

			general, err := store.Scenario().List(context.TODO(),
				st.NewScenarioQueryFilter().ByIndustry("general"),
				st.NewScenarioQueryOptions().WithSortOrder(st.SortByName))
			Expect(err).To(BeNil())
			Expect(general).To(HaveLen(2))
			Expect(general[0].Name).To(Equal("a"))

			page, err := store.Scenario().List(context.TODO(), nil,
				st.NewScenarioQueryOptions().WithSortOrder(st.SortByName).WithLimit(1).WithOffset(1))
			Expect(err).To(BeNil())
			Expect(page).To(HaveLen(1))
			Expect(page[0].Name).To(Equal("b"))
		})

		It("updates zero values", func() {
			created, err := store.Scenario().Create(context.TODO(), newScenario("update", "general"))
			Expect(err).To(BeNil())

			created.MonthlyTestCycles = 300
			created.CyclesOverridden = true
			created.DevicesUsed = 0

			updated, err := store.Scenario().Update(context.TODO(), *created)
			Expect(err).To(BeNil())
			Expect(updated.MonthlyTestCycles).To(Equal(300.0))
			Expect(updated.CyclesOverridden).To(BeTrue())
			Expect(updated.DevicesUsed).To(Equal(0.0))
			Expect(updated.UpdatedAt).NotTo(BeNil())
		})

		It("fails to update a missing scenario", func() {
			s := newScenario("missing", "general")
			s.ID = uuid.New()
			_, err := store.Scenario().Update(context.TODO(), s)
			Expect(err).To(MatchError(st.ErrRecordNotFound))
		})

		It("counts by industry", func() {
			for _, industry := range []string{"general", "general", "bfsi"} {
				_, err := store.Scenario().Create(context.TODO(), newScenario("count", industry))
				Expect(err).To(BeNil())
			}

			counts, err := store.Scenario().CountByIndustry(context.TODO())
			Expect(err).To(BeNil())
			Expect(counts).To(HaveKeyWithValue("general", 2))
			Expect(counts).To(HaveKeyWithValue("bfsi", 1))
		})

		It("deletes a scenario with its analysis requests", func() {
			created, err := store.Scenario().Create(context.TODO(), newScenario("delete", "general"))
			Expect(err).To(BeNil())

			_, err = store.AnalysisRequest().Create(context.TODO(), model.AnalysisRequest{
				ScenarioID: created.ID,
				Name:       "Jane",
				Email:      "jane@example.com",
				Company:    "Acme",
				Snapshot:   model.MakeJSONField(model.AnalysisSnapshot{}),
			})
			Expect(err).To(BeNil())

			Expect(store.Scenario().Delete(context.TODO(), created.ID)).To(BeNil())

			count := 0
			Expect(gormDB.Raw("SELECT COUNT(*) FROM analysis_requests;").Scan(&count).Error).To(BeNil())
			Expect(count).To(Equal(0))

			// deleting twice is fine
			Expect(store.Scenario().Delete(context.TODO(), created.ID)).To(BeNil())
		})
	})

	Context("seed", func() {
		It("creates the example scenario once", func() {
			Expect(store.Seed()).To(BeNil())
			Expect(store.Seed()).To(BeNil())

			example, err := store.Scenario().Get(context.TODO(), uuid.UUID{})
			Expect(err).To(BeNil())
			Expect(example.Name).To(Equal("Example"))
			Expect(example.Industry).To(Equal("general"))

			visible, err := store.Scenario().List(context.TODO(), st.NewScenarioQueryFilter().WithoutExample(), nil)
			Expect(err).To(BeNil())
			Expect(visible).To(BeEmpty())
		})
	})

	Context("analysis request", func() {
		It("creates and lists requests of a scenario", func() {
			created, err := store.Scenario().Create(context.TODO(), newScenario("leads", "fintech"))
			Expect(err).To(BeNil())

			phone := "+15551234567"
			req, err := store.AnalysisRequest().Create(context.TODO(), model.AnalysisRequest{
				ScenarioID: created.ID,
				Name:       "Jane",
				Email:      "jane@example.com",
				Company:    "Acme",
				Phone:      &phone,
				Snapshot:   model.MakeJSONField(model.AnalysisSnapshot{Capacity: 112}),
			})
			Expect(err).To(BeNil())

			got, err := store.AnalysisRequest().Get(context.TODO(), req.ID)
			Expect(err).To(BeNil())
			Expect(got.Snapshot.Data.Capacity).To(Equal(112.0))
			Expect(*got.Phone).To(Equal(phone))

			list, err := store.AnalysisRequest().ListByScenario(context.TODO(), created.ID)
			Expect(err).To(BeNil())
			Expect(list).To(HaveLen(1))

			other, err := store.AnalysisRequest().ListByScenario(context.TODO(), uuid.New())
			Expect(err).To(BeNil())
			Expect(other).To(BeEmpty())
		})
	})
})
