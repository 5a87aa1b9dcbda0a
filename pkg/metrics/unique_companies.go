package metrics

import (
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

type uniqueCompanies struct {
	counter prometheus.Gauge
	seen    map[string]struct{}
	mu      sync.RWMutex
}

const companiesCountPerWeek = "companies_count_per_week"

var totalUniqueCompaniesPerWeekMetric = prometheus.NewGauge(
	prometheus.GaugeOpts{
		Namespace: roiPlanner,
		Name:      companiesCountPerWeek,
		Help:      "number of distinct companies that requested a detailed analysis this week",
	},
)

// UniqueCompaniesPerWeek is reset weekly by the API server.
var UniqueCompaniesPerWeek = &uniqueCompanies{
	counter: totalUniqueCompaniesPerWeekMetric,
	seen:    make(map[string]struct{}),
}

func (u *uniqueCompanies) Reset() {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.seen = make(map[string]struct{})
	u.counter.Set(0)
}

// Add counts a company once per week. Names are compared case-insensitively.
func (u *uniqueCompanies) Add(company string) {
	key := strings.ToLower(strings.TrimSpace(company))
	if key == "" {
		return
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	if _, exists := u.seen[key]; exists {
		return
	}
	u.seen[key] = struct{}{}
	u.counter.Inc()
}

func (u *uniqueCompanies) Count() int {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return len(u.seen)
}
