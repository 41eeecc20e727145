package enrollment

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rosterOf(t *testing.T, ownerID uuid.UUID, n int, salary int64) []Employee {
	t.Helper()
	employees := make([]Employee, 0, n)
	for i := 0; i < n; i++ {
		e, err := NewEmployee(EmployeeInput{
			BusinessOwnerID: ownerID,
			FirstName:       "Worker",
			LastName:        "Number",
			Email:           "worker@example.com",
			JobTitle:        "Technician",
			AnnualSalary:    decimal.NewFromInt(salary),
		})
		require.NoError(t, err)
		employees = append(employees, *e)
	}
	return employees
}

func planOf(t *testing.T, planType PlanType, monthly string) *BenefitPlan {
	t.Helper()
	p, err := NewBenefitPlan(BenefitPlanInput{
		Name:                      string(planType),
		PlanType:                  planType,
		MonthlyPremiumPerEmployee: decimal.RequireFromString(monthly),
	})
	require.NoError(t, err)
	return p
}

func TestFicaCalculator_Calculate(t *testing.T) {
	calc := NewFicaCalculator(decimal.Zero, decimal.Zero)
	ownerID := uuid.New()

	t.Run("ten employees with health plan only", func(t *testing.T) {
		employees := rosterOf(t, ownerID, 10, 50000)
		health := planOf(t, PlanTypeHealthBasic, "50")

		result, err := calc.Calculate(ownerID, employees, health, nil)
		require.NoError(t, err)

		assert.Equal(t, "500000", result.TotalEmployeeSalaries.String())
		assert.Equal(t, "38250", result.CurrentFicaTax.String())
		assert.True(t, result.HealthBenefitCost.Equal(decimal.NewFromInt(6000)))
		assert.True(t, result.LifeInsuranceCost.IsZero())
		assert.True(t, result.TotalBenefitCost.Equal(decimal.NewFromInt(6000)))
		assert.True(t, result.ProjectedFicaSavings.Equal(decimal.NewFromInt(1800)))
		assert.True(t, result.AnnualSavings.Equal(result.ProjectedFicaSavings))
		assert.True(t, result.NetSavings.Equal(decimal.NewFromInt(-4200)))
		require.NotNil(t, result.SelectedHealthPlanID)
		assert.Equal(t, health.ID, *result.SelectedHealthPlanID)
		assert.Nil(t, result.SelectedLifePlanID)
		assert.Equal(t, 10, result.EmployeeCount)
	})

	t.Run("net savings identity holds for both plans", func(t *testing.T) {
		cases := []struct {
			n      int
			health string
			life   string
		}{
			{1, "250", "25"},
			{3, "450", "75"},
			{7, "249.99", "24.99"},
			{42, "333.33", "0"},
		}
		for _, c := range cases {
			employees := rosterOf(t, ownerID, c.n, 41000)
			health := planOf(t, PlanTypeHealthPremium, c.health)
			life := planOf(t, PlanTypeLifeBasic, c.life)

			result, err := calc.Calculate(ownerID, employees, health, life)
			require.NoError(t, err)

			n := decimal.NewFromInt(int64(c.n))
			twelve := decimal.NewFromInt(12)
			wantHealth := decimal.RequireFromString(c.health).Mul(n).Mul(twelve)
			wantLife := decimal.RequireFromString(c.life).Mul(n).Mul(twelve)

			assert.True(t, result.HealthBenefitCost.Equal(wantHealth), "health cost")
			assert.True(t, result.LifeInsuranceCost.Equal(wantLife), "life cost")
			assert.True(t, result.NetSavings.Equal(
				result.ProjectedFicaSavings.Sub(result.HealthBenefitCost.Add(result.LifeInsuranceCost)),
			), "net savings identity")
		}
	})

	t.Run("no plans yields zero costs", func(t *testing.T) {
		employees := rosterOf(t, ownerID, 2, 30000)
		result, err := calc.Calculate(ownerID, employees, nil, nil)
		require.NoError(t, err)
		assert.True(t, result.TotalBenefitCost.IsZero())
		assert.True(t, result.NetSavings.IsZero())
		assert.True(t, result.CurrentFicaTax.Equal(decimal.NewFromInt(4590)))
	})

	t.Run("empty roster is rejected", func(t *testing.T) {
		result, err := calc.Calculate(ownerID, nil, nil, nil)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, ErrNoEmployees)
	})

	t.Run("health slot requires a health plan", func(t *testing.T) {
		employees := rosterOf(t, ownerID, 2, 30000)
		_, err := calc.Calculate(ownerID, employees, planOf(t, PlanTypeLifeBasic, "25"), nil)
		assert.Error(t, err)
	})

	t.Run("custom savings rate", func(t *testing.T) {
		custom := NewFicaCalculator(decimal.Zero, decimal.RequireFromString("0.5"))
		employees := rosterOf(t, ownerID, 1, 30000)
		result, err := custom.Calculate(ownerID, employees, nil, planOf(t, PlanTypeLifePremium, "75"))
		require.NoError(t, err)
		assert.True(t, result.ProjectedFicaSavings.Equal(decimal.NewFromInt(450)))
	})
}

func TestSplitPlans(t *testing.T) {
	plans := []BenefitPlan{
		*planOf(t, PlanTypeLifeBasic, "25"),
		*planOf(t, PlanTypeHealthBasic, "250"),
		*planOf(t, PlanTypeHealthPremium, "450"),
		*planOf(t, PlanTypeLifePremium, "75"),
	}

	health, life := SplitPlans(plans)
	require.Len(t, health, 2)
	require.Len(t, life, 2)
	assert.Equal(t, PlanTypeHealthBasic, health[0].PlanType)
	assert.Equal(t, PlanTypeLifeBasic, life[0].PlanType)
}

func TestDefaultPlanCatalog(t *testing.T) {
	catalog := DefaultPlanCatalog()
	require.Len(t, catalog, 4)

	monthly := map[PlanType]int64{}
	for _, in := range catalog {
		plan, err := NewBenefitPlan(in)
		require.NoError(t, err)
		assert.True(t, plan.IsActive)
		monthly[plan.PlanType] = plan.MonthlyPremiumPerEmployee.IntPart()
	}

	assert.Equal(t, int64(250), monthly[PlanTypeHealthBasic])
	assert.Equal(t, int64(450), monthly[PlanTypeHealthPremium])
	assert.Equal(t, int64(25), monthly[PlanTypeLifeBasic])
	assert.Equal(t, int64(75), monthly[PlanTypeLifePremium])
	assert.Nil(t, catalog[2].Deductible)
	assert.Len(t, catalog[1].Features, 5)
}
