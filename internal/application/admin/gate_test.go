package admin

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/RobertWLight/BSC/internal/domain/lead"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockAuthenticator is a mock implementation of Authenticator
type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Authenticate(ctx context.Context, pin string) (bool, error) {
	args := m.Called(ctx, pin)
	return args.Bool(0), args.Error(1)
}

// MockLeadSource is a mock implementation of LeadSource
type MockLeadSource struct {
	mock.Mock
}

func (m *MockLeadSource) ListLeads(ctx context.Context) ([]lead.Lead, error) {
	args := m.Called(ctx)
	return args.Get(0).([]lead.Lead), args.Error(1)
}

func TestStaticPINAuthenticator(t *testing.T) {
	ctx := context.Background()

	ok, err := NewStaticPINAuthenticator("").Authenticate(ctx, "1234")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = NewStaticPINAuthenticator("9021").Authenticate(ctx, "1234")
	assert.False(t, ok)

	ok, _ = NewStaticPINAuthenticator("9021").Authenticate(ctx, "9021")
	assert.True(t, ok)
}

func TestGate_SetInput(t *testing.T) {
	g := NewGate(NewStaticPINAuthenticator(""))

	g.SetInput("1a2")
	assert.Equal(t, "12", g.Input())
	assert.False(t, g.CanSubmit())

	g.SetInput("1234")
	assert.Equal(t, "1234", g.Input())
	assert.True(t, g.CanSubmit())

	g.SetInput("12345")
	assert.Equal(t, "1234", g.Input(), "over-long input is ignored")

	g.SetInput("١٢")
	assert.Equal(t, "", g.Input(), "only ASCII digits are accepted")
}

func TestGate_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("correct PIN unlocks", func(t *testing.T) {
		g := NewGate(NewStaticPINAuthenticator(""))
		g.SetInput("1234")

		ok, err := g.Submit(ctx)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.True(t, g.Authenticated())
		assert.Empty(t, g.Error())
	})

	t.Run("wrong PIN clears input and sets error", func(t *testing.T) {
		g := NewGate(NewStaticPINAuthenticator(""))
		g.SetInput("4321")

		ok, err := g.Submit(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.False(t, g.Authenticated())
		assert.Equal(t, "Incorrect PIN. Please try again.", g.Error())
		assert.Empty(t, g.Input())

		g.SetInput("1")
		assert.Empty(t, g.Error(), "typing clears the error")
	})

	t.Run("incomplete PIN is not checked", func(t *testing.T) {
		auth := new(MockAuthenticator)
		g := NewGate(auth)
		g.SetInput("12")

		ok, err := g.Submit(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
		auth.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything)
	})

	t.Run("authenticator failure is returned", func(t *testing.T) {
		auth := new(MockAuthenticator)
		auth.On("Authenticate", ctx, "1234").Return(false, errors.New("server unavailable"))
		g := NewGate(auth)
		g.SetInput("1234")

		_, err := g.Submit(ctx)
		assert.Error(t, err)
		assert.False(t, g.Authenticated())
		assert.Equal(t, "1234", g.Input())
		assert.Equal(t, ErrMsgPINCheckFailed, g.Error())
	})

	t.Run("logout locks again", func(t *testing.T) {
		g := NewGate(NewStaticPINAuthenticator(""))
		g.SetInput("1234")
		_, err := g.Submit(ctx)
		require.NoError(t, err)

		g.Logout()
		assert.False(t, g.Authenticated())
		assert.Empty(t, g.Input())
	})

	t.Run("logout clears a stale error", func(t *testing.T) {
		g := NewGate(NewStaticPINAuthenticator(""))
		g.SetInput("9999")
		_, err := g.Submit(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, g.Error())

		g.Logout()
		assert.Empty(t, g.Error())
	})
}

func TestDashboard_Load(t *testing.T) {
	ctx := context.Background()
	agg, err := lead.NewAggregator("")
	require.NoError(t, err)
	now := time.Date(2026, 5, 20, 15, 0, 0, 0, time.UTC)
	agg = agg.WithClock(func() time.Time { return now })

	l, err := lead.NewLead(lead.Input{
		FirstName:         "Ava",
		LastName:          "Chen",
		Email:             "ava@chen.io",
		BusinessName:      "Chen Co",
		NumberOfEmployees: lead.Bucket26To50,
	})
	require.NoError(t, err)
	l.CreatedAt = now.Add(-time.Hour)

	source := new(MockLeadSource)
	source.On("ListLeads", ctx).Return([]lead.Lead{*l}, nil)

	d := NewDashboard(NewGate(NewStaticPINAuthenticator("")), source, agg, nil)

	_, err = d.Load(ctx)
	assert.ErrorIs(t, err, ErrLocked)
	source.AssertNotCalled(t, "ListLeads", mock.Anything)

	d.Gate().SetInput("1234")
	_, err = d.Gate().Submit(ctx)
	require.NoError(t, err)

	stats, err := d.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalLeads)
	assert.Equal(t, 1, stats.TodayLeads)
}
