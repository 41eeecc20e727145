package lead

import (
	"fmt"
	"sort"
	"time"

	_ "time/tzdata"
)

// DefaultReferenceZone is the civil calendar used for lead statistics
const DefaultReferenceZone = "America/New_York"

// Default sizes of the derived views
const (
	TopIndustriesLimit = 5
	RecentLeadsLimit   = 5
)

// Count is one row of a grouped view
type Count struct {
	Key   string
	Label string
	Count int
}

// Stats is the admin rollup over a set of leads
type Stats struct {
	TotalLeads       int
	TodayLeads       int
	ThisWeekLeads    int
	ThisMonthLeads   int
	TopIndustries    []Count
	SizeDistribution []Count
	RecentLeads      []Lead
	Periods          Periods
}

// Periods are the civil boundaries used for counting, expressed in the reference zone
type Periods struct {
	Today      time.Time
	WeekStart  time.Time
	MonthStart time.Time
}

// PeriodsAt returns the day, week (Sunday) and month starts containing now
func PeriodsAt(now time.Time, zone *time.Location) Periods {
	local := now.In(zone)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, zone)
	weekStart := today.AddDate(0, 0, -int(today.Weekday()))
	monthStart := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, zone)
	return Periods{Today: today, WeekStart: weekStart, MonthStart: monthStart}
}

// Aggregator computes lead statistics in a fixed reference zone
type Aggregator struct {
	zone *time.Location
	now  func() time.Time
}

// NewAggregator loads the named zone. An empty name selects America/New_York.
func NewAggregator(zoneName string) (*Aggregator, error) {
	if zoneName == "" {
		zoneName = DefaultReferenceZone
	}
	zone, err := time.LoadLocation(zoneName)
	if err != nil {
		return nil, fmt.Errorf("load reference zone %q: %w", zoneName, err)
	}
	return &Aggregator{zone: zone, now: time.Now}, nil
}

// WithClock returns a copy of the aggregator that reads time from now
func (a *Aggregator) WithClock(now func() time.Time) *Aggregator {
	return &Aggregator{zone: a.zone, now: now}
}

// Zone returns the reference zone
func (a *Aggregator) Zone() *time.Location {
	return a.zone
}

// Compute rolls up leads relative to the aggregator's clock
func (a *Aggregator) Compute(leads []Lead) Stats {
	return ComputeStats(leads, a.now(), a.zone)
}

// ComputeStats rolls up leads relative to now, bucketing by the civil calendar of zone
func ComputeStats(leads []Lead, now time.Time, zone *time.Location) Stats {
	periods := PeriodsAt(now, zone)
	stats := Stats{
		TotalLeads: len(leads),
		Periods:    periods,
	}

	for i := range leads {
		created := leads[i].CreatedIn(zone)
		if sameCivilDay(created, periods.Today) {
			stats.TodayLeads++
		}
		if !created.Before(periods.WeekStart) {
			stats.ThisWeekLeads++
		}
		if !created.Before(periods.MonthStart) {
			stats.ThisMonthLeads++
		}
	}

	stats.TopIndustries = topIndustries(leads, TopIndustriesLimit)
	stats.SizeDistribution = sizeDistribution(leads)
	stats.RecentLeads = recentLeads(leads, RecentLeadsLimit)
	return stats
}

func sameCivilDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// groupCounts counts keys in first-appearance order, then sorts by count desc.
// The sort is stable so ties keep first-appearance order.
func groupCounts(keys []string, label func(string) string) []Count {
	index := make(map[string]int)
	counts := make([]Count, 0)
	for _, k := range keys {
		if i, ok := index[k]; ok {
			counts[i].Count++
			continue
		}
		index[k] = len(counts)
		counts = append(counts, Count{Key: k, Label: label(k), Count: 1})
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}

func topIndustries(leads []Lead, limit int) []Count {
	keys := make([]string, len(leads))
	for i := range leads {
		keys[i] = leads[i].IndustryLabel()
	}
	counts := groupCounts(keys, func(k string) string { return k })
	if len(counts) > limit {
		counts = counts[:limit]
	}
	return counts
}

func sizeDistribution(leads []Lead) []Count {
	keys := make([]string, len(leads))
	for i := range leads {
		keys[i] = string(leads[i].NumberOfEmployees)
		if !leads[i].NumberOfEmployees.IsValid() {
			keys[i] = UnknownBucketKey
		}
	}
	return groupCounts(keys, func(k string) string { return EmployeeBucket(k).Label() })
}

func recentLeads(leads []Lead, limit int) []Lead {
	sorted := make([]Lead, len(leads))
	copy(sorted, leads)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}
