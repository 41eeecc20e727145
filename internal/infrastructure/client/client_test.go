package client_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/RobertWLight/BSC/internal/application/admin"
	appenrollment "github.com/RobertWLight/BSC/internal/application/enrollment"
	applead "github.com/RobertWLight/BSC/internal/application/lead"
	"github.com/RobertWLight/BSC/internal/application/wizard"
	"github.com/RobertWLight/BSC/internal/domain/lead"
	"github.com/RobertWLight/BSC/internal/domain/shared"
	"github.com/RobertWLight/BSC/internal/infrastructure/client"
	"github.com/RobertWLight/BSC/internal/infrastructure/config"
	"github.com/RobertWLight/BSC/internal/server"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const adminPIN = "7364"

func init() {
	gin.SetMode(gin.TestMode)
}

// newLiveClient serves a sqlite-backed API over httptest and points a client at it
func newLiveClient(t *testing.T) *client.Client {
	t.Helper()
	cfg := &config.Config{
		App: config.AppConfig{Name: "bsc-client-test", Env: "test"},
		Database: config.DatabaseConfig{
			Driver:     "sqlite",
			SQLitePath: filepath.Join(t.TempDir(), "client.db"),
		},
		Log:  config.LogConfig{Level: "error"},
		HTTP: config.HTTPConfig{MaxBodySize: 1 << 20},
		Admin: config.AdminConfig{
			PIN:         adminPIN,
			TokenSecret: "client-test-secret-0123456789abcdef",
			TokenTTL:    time.Hour,
			Issuer:      "bsc-test",
		},
		Fica:    config.FicaConfig{Rate: 0.0765, SavingsRate: 0.30},
		Leads:   config.LeadsConfig{StatsTimezone: "America/New_York"},
		Storage: config.StorageConfig{Driver: "memory"},
	}

	app, err := server.New(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close(context.Background()) })

	srv := httptest.NewServer(app.Handler())
	t.Cleanup(srv.Close)

	c, err := client.New(config.ClientConfig{BaseURL: srv.URL + "/api/v1", Timeout: 5 * time.Second},
		client.WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	return c
}

func TestNew_RejectsBadBaseURL(t *testing.T) {
	for _, raw := range []string{"", "localhost:8000", "://nope"} {
		_, err := client.New(config.ClientConfig{BaseURL: raw})
		assert.Error(t, err, raw)
	}
}

func TestClient_ErrorsUnwrapToDomainErrors(t *testing.T) {
	c := newLiveClient(t)
	ctx := context.Background()

	_, err := c.GetBusinessOwner(ctx, uuid.New())
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrNotFound))

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "ERR_NOT_FOUND", apiErr.Code)
	assert.NotEmpty(t, apiErr.RequestID)

	_, err = c.CreateBusinessOwner(ctx, appenrollment.CreateBusinessOwnerRequest{FirstName: "Solo"})
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "ERR_VALIDATION", apiErr.Code)
	assert.Contains(t, apiErr.Fields, "email")
}

func TestClient_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c, err := client.New(config.ClientConfig{BaseURL: base + "/api/v1", Timeout: time.Second})
	require.NoError(t, err)

	_, err = c.ListBenefitPlans(context.Background())
	assert.ErrorIs(t, err, client.ErrUnavailable)
	assert.ErrorIs(t, c.Health(context.Background()), client.ErrUnavailable)
}

func TestClient_DrivesWizard(t *testing.T) {
	c := newLiveClient(t)
	ctx := context.Background()
	require.NoError(t, c.Health(ctx))

	store := wizard.NewFileSessionStore(filepath.Join(t.TempDir(), "session.json"))
	session, err := wizard.NewSession(store, zaptest.NewLogger(t))
	require.NoError(t, err)

	ctrl := wizard.NewController(c, session, wizard.WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, ctrl.Start(ctx))
	require.Len(t, ctrl.HealthPlans(), 2)
	require.Len(t, ctrl.LifePlans(), 2)

	require.NoError(t, ctrl.SubmitBusinessInfo(ctx, wizard.BusinessInfoForm{
		FirstName:       "Marco",
		LastName:        "Alvarez",
		Email:           "marco@alvarezhvac.example",
		Phone:           "555-0142",
		BusinessName:    "Alvarez HVAC",
		BusinessType:    "llc",
		Industry:        "construction",
		TaxID:           "98-7654321",
		YearsInBusiness: "7",
		Address:         "12 Elm St",
		City:            "Tulsa",
		State:           "OK",
		ZipCode:         "74103",
	}))
	assert.Equal(t, wizard.StepEmployeeManagement, ctrl.Step())

	for _, name := range []string{"Lena", "Omar", "Priya"} {
		require.NoError(t, ctrl.AddEmployee(ctx, wizard.EmployeeForm{
			FirstName:    name,
			LastName:     "Tech",
			Email:        name + "@alvarezhvac.example",
			Phone:        "555-0100",
			JobTitle:     "Technician",
			AnnualSalary: "48000",
			HireDate:     "2020-05-01",
			BirthDate:    "1990-01-15",
		}))
	}
	require.Len(t, ctrl.State().Employees, 3)
	require.NoError(t, ctrl.ContinueFromEmployees(ctx))

	health := ctrl.HealthPlans()[0]
	require.NoError(t, ctrl.SelectHealthPlan(ctx, &health.ID))
	state := ctrl.State()
	require.NotNil(t, state.Fica)
	assert.Equal(t, 3, state.Fica.EmployeeCount)
	assert.True(t, health.MonthlyPremiumPerEmployee.Mul(decimal.NewFromInt(36)).Equal(state.Fica.HealthBenefitCost))

	require.NoError(t, ctrl.ContinueFromBenefits(ctx))
	require.NotNil(t, ctrl.State().Eligibility)
	assert.True(t, ctrl.State().Eligibility.Eligible)

	require.NoError(t, ctrl.SubmitApplication(ctx, true))
	assert.True(t, ctrl.Completed())

	submitted := ctrl.State().Application
	require.NotNil(t, submitted)
	assert.Equal(t, "submitted", submitted.Status)

	ownerID, ok := session.BusinessOwnerID()
	require.True(t, ok)

	t.Run("session survives a restart", func(t *testing.T) {
		restored, err := wizard.NewSession(store, nil)
		require.NoError(t, err)
		id, ok := restored.BusinessOwnerID()
		require.True(t, ok)
		assert.Equal(t, ownerID, id)
	})

	t.Run("dashboard and history", func(t *testing.T) {
		dash, err := c.Dashboard(ctx, ownerID)
		require.NoError(t, err)
		assert.Equal(t, "Alvarez HVAC", dash.BusinessName)
		assert.Equal(t, int64(3), dash.EmployeeCount)
		assert.Equal(t, int64(1), dash.ApplicationsCount)

		history, err := c.FicaHistory(ctx, ownerID)
		require.NoError(t, err)
		assert.NotEmpty(t, history)

		apps, err := c.ListApplications(ctx, ownerID)
		require.NoError(t, err)
		require.Len(t, apps, 1)
		assert.Equal(t, submitted.ID, apps[0].ID)
	})

	t.Run("summary pdf", func(t *testing.T) {
		pdf, err := c.ApplicationSummary(ctx, submitted.ID)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))

		_, err = c.ApplicationSummary(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("remove employee", func(t *testing.T) {
		lena := ctrl.State().Employees[0]
		require.NoError(t, ctrl.RemoveEmployee(ctx, lena.ID))
		assert.Len(t, ctrl.State().Employees, 2)
	})
}

func TestClient_AdminDashboard(t *testing.T) {
	c := newLiveClient(t)
	ctx := context.Background()
	faker := gofakeit.New(7)

	buckets := []string{"2-5", "11-25", "11-25", "100+"}
	for _, bucket := range buckets {
		_, err := c.CaptureLead(ctx, applead.CaptureLeadRequest{
			FirstName:         faker.FirstName(),
			LastName:          faker.LastName(),
			Email:             faker.Email(),
			Phone:             faker.Phone(),
			BusinessName:      faker.Company(),
			NumberOfEmployees: bucket,
			Industry:          "Retail",
		})
		require.NoError(t, err)
	}

	_, err := c.LeadStats(ctx)
	require.ErrorIs(t, err, shared.ErrUnauthorized)

	gate := admin.NewGate(c)
	aggregator, err := lead.NewAggregator("America/New_York")
	require.NoError(t, err)
	dashboard := admin.NewDashboard(gate, c, aggregator, zaptest.NewLogger(t))

	_, err = dashboard.Load(ctx)
	require.ErrorIs(t, err, admin.ErrLocked)

	gate.SetInput("0000")
	ok, err := gate.Submit(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, admin.ErrMsgIncorrectPIN, gate.Error())
	assert.Empty(t, c.Token())

	gate.SetInput(adminPIN)
	ok, err = gate.Submit(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotEmpty(t, c.Token())

	stats, err := dashboard.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(buckets), stats.TotalLeads)
	require.NotEmpty(t, stats.SizeDistribution)
	assert.Equal(t, "11-25", stats.SizeDistribution[0].Key)

	remote, err := c.LeadStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, stats.TotalLeads, remote.TotalLeads)
	assert.Equal(t, stats.TodayLeads, remote.TodayLeads)
}
