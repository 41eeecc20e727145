package lead

import (
	"context"
	"testing"
	"time"

	"github.com/RobertWLight/BSC/internal/domain/lead"
	"github.com/RobertWLight/BSC/internal/domain/shared"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockLeadRepository is a mock implementation of lead.Repository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Save(ctx context.Context, l *lead.Lead) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockLeadRepository) FindAll(ctx context.Context, filter shared.Filter) ([]lead.Lead, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]lead.Lead), args.Error(1)
}

func (m *MockLeadRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockRecorder is a mock implementation of Recorder
type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) LeadCaptured(bucket string) {
	m.Called(bucket)
}

func newAggregator(t *testing.T, now time.Time) *lead.Aggregator {
	t.Helper()
	agg, err := lead.NewAggregator(lead.DefaultReferenceZone)
	require.NoError(t, err)
	return agg.WithClock(func() time.Time { return now })
}

func TestLeadService_Capture(t *testing.T) {
	ctx := context.Background()
	f := gofakeit.New(99)

	t.Run("stores lead with savings range", func(t *testing.T) {
		repo := new(MockLeadRepository)
		recorder := new(MockRecorder)
		repo.On("Save", ctx, mock.AnythingOfType("*lead.Lead")).Return(nil)
		recorder.On("LeadCaptured", "6-10").Return()

		svc := NewLeadService(repo, newAggregator(t, time.Now()), WithRecorder(recorder))
		resp, err := svc.Capture(ctx, CaptureLeadRequest{
			FirstName:         f.FirstName(),
			LastName:          f.LastName(),
			Email:             f.Email(),
			Phone:             f.Phone(),
			BusinessName:      f.Company(),
			NumberOfEmployees: "6-10",
			Industry:          "Retail",
		})
		require.NoError(t, err)
		require.NotNil(t, resp.PotentialSavings)
		assert.Equal(t, "$6,600–$11,000", resp.PotentialSavings.Display)
		assert.Equal(t, int64(6), resp.PotentialSavings.MinEmployees)
		recorder.AssertExpectations(t)
	})

	t.Run("rejects unknown bucket", func(t *testing.T) {
		repo := new(MockLeadRepository)
		svc := NewLeadService(repo, newAggregator(t, time.Now()))

		_, err := svc.Capture(ctx, CaptureLeadRequest{
			FirstName:         "Ava",
			LastName:          "Chen",
			Email:             "ava@chen.io",
			BusinessName:      "Chen Co",
			NumberOfEmployees: "1000",
		})
		require.Error(t, err)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestLeadService_List(t *testing.T) {
	ctx := context.Background()
	repo := new(MockLeadRepository)
	repo.On("FindAll", ctx, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Page == 1 && f.PageSize == 50 && f.OrderDir == "desc"
	})).Return([]lead.Lead{}, nil)
	repo.On("Count", ctx).Return(int64(0), nil)

	svc := NewLeadService(repo, newAggregator(t, time.Now()))
	leads, total, err := svc.List(ctx, LeadListFilter{PageSize: 50})
	require.NoError(t, err)
	assert.Empty(t, leads)
	assert.Zero(t, total)
}

func TestLeadService_Stats(t *testing.T) {
	ctx := context.Background()
	f := gofakeit.New(5)
	now := time.Date(2026, 3, 11, 2, 30, 0, 0, time.UTC)

	mk := func(bucket lead.EmployeeBucket, industry string, at time.Time) lead.Lead {
		l, err := lead.NewLead(lead.Input{
			FirstName:         f.FirstName(),
			LastName:          f.LastName(),
			Email:             f.Email(),
			BusinessName:      f.Company(),
			NumberOfEmployees: bucket,
			Industry:          industry,
		})
		require.NoError(t, err)
		l.CreatedAt = at
		return *l
	}

	leads := []lead.Lead{
		mk(lead.Bucket2To5, "Retail", now.Add(-90*time.Minute)),
		mk(lead.Bucket2To5, "", now.Add(-30*time.Hour)),
		mk(lead.Bucket11To25, "Retail", now.Add(-20*24*time.Hour)),
	}

	repo := new(MockLeadRepository)
	repo.On("FindAll", ctx, mock.MatchedBy(func(f shared.Filter) bool { return f.PageSize == 0 })).Return(leads, nil)

	svc := NewLeadService(repo, newAggregator(t, now))
	stats, err := svc.Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalLeads)
	assert.Equal(t, 1, stats.TodayLeads)
	assert.Equal(t, 2, stats.ThisWeekLeads)
	assert.Equal(t, 2, stats.ThisMonthLeads)
	assert.Equal(t, "America/New_York", stats.ReferenceZone)
	require.NotEmpty(t, stats.TopIndustries)
	assert.Equal(t, CountResponse{Key: "Retail", Label: "Retail", Count: 2}, stats.TopIndustries[0])
	assert.Equal(t, "2-5 employees", stats.SizeDistribution[0].Label)
	assert.Len(t, stats.RecentLeads, 3)
}
