package lead

import (
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustZone(t *testing.T) *time.Location {
	t.Helper()
	zone, err := time.LoadLocation(DefaultReferenceZone)
	require.NoError(t, err)
	return zone
}

func utc(s string) time.Time {
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return ts
}

func TestPeriodsAt(t *testing.T) {
	zone := mustZone(t)
	// Tuesday evening in New York, already Wednesday in UTC
	now := utc("2026-03-11T02:30:00Z")

	p := PeriodsAt(now, zone)
	assert.Equal(t, utc("2026-03-10T04:00:00Z"), p.Today.UTC())
	assert.Equal(t, time.Sunday, p.WeekStart.Weekday())
	assert.Equal(t, utc("2026-03-08T05:00:00Z"), p.WeekStart.UTC())
	assert.Equal(t, utc("2026-03-01T05:00:00Z"), p.MonthStart.UTC())
}

func TestComputeStats_ZoneBoundaries(t *testing.T) {
	zone := mustZone(t)
	f := gofakeit.New(7)
	now := utc("2026-03-11T02:30:00Z")

	leads := []Lead{
		fakeLead(t, f, Bucket2To5, "Retail", utc("2026-03-11T01:00:00Z")),   // Mar 10 21:00 local
		fakeLead(t, f, Bucket6To10, "", utc("2026-03-10T03:59:00Z")),        // Mar 9 23:59 local
		fakeLead(t, f, Bucket6To10, "Retail", utc("2026-03-08T04:59:00Z")),  // Sat Mar 7 23:59 local
		fakeLead(t, f, Bucket11To25, "Health", utc("2026-03-08T05:00:00Z")), // Sun Mar 8 00:00 local
		fakeLead(t, f, Bucket100AndUp, "Tech", utc("2026-03-01T04:59:00Z")), // Feb 28 23:59 local
		fakeLead(t, f, Bucket26To50, "Tech", utc("2026-03-01T05:00:00Z")),   // Mar 1 00:00 local
	}

	stats := ComputeStats(leads, now, zone)

	assert.Equal(t, 6, stats.TotalLeads)
	assert.Equal(t, 1, stats.TodayLeads)
	assert.Equal(t, 3, stats.ThisWeekLeads)
	assert.Equal(t, 5, stats.ThisMonthLeads)
}

func TestComputeStats_Views(t *testing.T) {
	zone := mustZone(t)
	f := gofakeit.New(11)
	now := utc("2026-06-15T16:00:00Z")
	base := utc("2026-06-01T12:00:00Z")

	industries := []string{"Retail", "", "Tech", "Retail", "Health", "Food", "Auto", "Tech"}
	buckets := []EmployeeBucket{Bucket6To10, Bucket2To5, Bucket6To10, Bucket51To100, Bucket2To5, Bucket6To10, Bucket11To25, Bucket100AndUp}

	leads := make([]Lead, len(industries))
	for i := range industries {
		leads[i] = fakeLead(t, f, buckets[i], industries[i], base.Add(time.Duration(i)*time.Hour))
	}

	stats := ComputeStats(leads, now, zone)

	t.Run("top industries sorted by count with stable ties", func(t *testing.T) {
		require.Len(t, stats.TopIndustries, 5)
		keys := make([]string, 0, 5)
		for _, c := range stats.TopIndustries {
			keys = append(keys, c.Key)
		}
		assert.Equal(t, []string{"Retail", "Tech", NotSpecifiedIndustry, "Health", "Food"}, keys)
		assert.Equal(t, 2, stats.TopIndustries[0].Count)
	})

	t.Run("size distribution covers every bucket seen", func(t *testing.T) {
		require.Len(t, stats.SizeDistribution, 5)
		assert.Equal(t, "6-10", stats.SizeDistribution[0].Key)
		assert.Equal(t, "6-10 employees", stats.SizeDistribution[0].Label)
		assert.Equal(t, 3, stats.SizeDistribution[0].Count)
		assert.Equal(t, "2-5", stats.SizeDistribution[1].Key)

		total := 0
		for _, c := range stats.SizeDistribution {
			total += c.Count
		}
		assert.Equal(t, len(leads), total)
	})

	t.Run("recent leads are newest first", func(t *testing.T) {
		require.Len(t, stats.RecentLeads, RecentLeadsLimit)
		for i := 1; i < len(stats.RecentLeads); i++ {
			assert.True(t, stats.RecentLeads[i-1].CreatedAt.After(stats.RecentLeads[i].CreatedAt))
		}
		assert.Equal(t, leads[len(leads)-1].ID, stats.RecentLeads[0].ID)
	})
}

func TestComputeStats_UnknownBuckets(t *testing.T) {
	zone := mustZone(t)
	f := gofakeit.New(7)
	at := utc("2026-06-10T12:00:00Z")

	leads := []Lead{
		fakeLead(t, f, Bucket2To5, "Retail", at),
		fakeLead(t, f, Bucket2To5, "Retail", at),
		fakeLead(t, f, Bucket2To5, "Retail", at),
	}
	leads[1].NumberOfEmployees = "500+"
	leads[2].NumberOfEmployees = ""

	stats := ComputeStats(leads, at, zone)

	require.Len(t, stats.SizeDistribution, 2)
	assert.Equal(t, Count{Key: UnknownBucketKey, Label: UnknownBucketLabel, Count: 2}, stats.SizeDistribution[0])
	assert.Equal(t, "2-5 employees", stats.SizeDistribution[1].Label)
}

func TestComputeStats_Properties(t *testing.T) {
	zone := mustZone(t)
	f := gofakeit.New(2026)
	now := utc("2026-09-23T18:45:00Z")

	leads := make([]Lead, 0, 200)
	for i := 0; i < 200; i++ {
		at := f.DateRange(utc("2026-07-01T00:00:00Z"), now)
		bucket := AllBuckets[f.IntRange(0, len(AllBuckets)-1)]
		leads = append(leads, fakeLead(t, f, bucket, f.RandomString([]string{"Retail", "Tech", ""}), at))
	}

	stats := ComputeStats(leads, now, zone)
	periods := PeriodsAt(now, zone)

	before := 0
	for i := range leads {
		if leads[i].CreatedAt.Before(periods.Today) {
			before++
		}
	}

	assert.Equal(t, stats.TotalLeads, stats.TodayLeads+before)
	assert.GreaterOrEqual(t, stats.ThisWeekLeads, stats.TodayLeads)
	if periods.WeekStart.Month() == periods.MonthStart.Month() {
		assert.GreaterOrEqual(t, stats.ThisMonthLeads, stats.ThisWeekLeads)
	}
}

func TestComputeStats_IgnoresProcessZone(t *testing.T) {
	zone := mustZone(t)
	f := gofakeit.New(3)
	now := utc("2026-01-02T03:00:00Z") // Jan 1 22:00 in New York

	leads := []Lead{fakeLead(t, f, Bucket2To5, "", utc("2026-01-02T01:00:00Z"))}

	original := time.Local
	time.Local = time.FixedZone("UTC+14", 14*3600)
	defer func() { time.Local = original }()

	stats := ComputeStats(leads, now, zone)
	assert.Equal(t, 1, stats.TodayLeads)
	assert.Equal(t, 1, stats.ThisMonthLeads)
}

func TestAggregator(t *testing.T) {
	agg, err := NewAggregator("")
	require.NoError(t, err)
	assert.Equal(t, DefaultReferenceZone, agg.Zone().String())

	fixed := utc("2026-05-20T15:00:00Z")
	stats := agg.WithClock(func() time.Time { return fixed }).Compute(nil)
	assert.Equal(t, 0, stats.TotalLeads)
	assert.Empty(t, stats.TopIndustries)
	assert.Empty(t, stats.RecentLeads)

	_, err = NewAggregator("Mars/Olympus_Mons")
	assert.Error(t, err)
}
