package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with valid amount and currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromFloat(100.50), USD)
		require.NoError(t, err)
		assert.Equal(t, USD, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(100.50)))
	})

	t.Run("returns error for empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromFloat(100), "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "currency cannot be empty")
	})
}

func TestNewMoneyFromString(t *testing.T) {
	t.Run("valid string", func(t *testing.T) {
		m, err := NewMoneyFromString("123.45", USD)
		require.NoError(t, err)
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(123.45)))
	})

	t.Run("invalid string", func(t *testing.T) {
		_, err := NewMoneyFromString("not-a-number", USD)
		assert.Error(t, err)
	})
}

func TestMoney_Arithmetic(t *testing.T) {
	a := NewMoneyUSDFromInt(6000)
	b := NewMoneyUSDFromInt(1800)

	assert.True(t, a.MustAdd(b).Amount().Equal(decimal.NewFromInt(7800)))
	assert.True(t, b.MustSubtract(a).Amount().Equal(decimal.NewFromInt(-4200)))
	assert.True(t, b.MustSubtract(a).IsNegative())
	assert.True(t, a.MultiplyByInt(12).Amount().Equal(decimal.NewFromInt(72000)))
	assert.True(t, a.Multiply(decimal.RequireFromString("0.30")).Amount().Equal(decimal.NewFromInt(1800)))

	t.Run("currency mismatch", func(t *testing.T) {
		eur, err := NewMoney(decimal.NewFromInt(1), EUR)
		require.NoError(t, err)

		_, err = a.Add(eur)
		assert.Error(t, err)
		_, err = a.Subtract(eur)
		assert.Error(t, err)
		assert.Panics(t, func() { a.MustAdd(eur) })
	})
}

func TestMoney_Predicates(t *testing.T) {
	assert.True(t, ZeroUSD().IsZero())
	assert.True(t, NewMoneyUSDFromInt(1).IsPositive())
	assert.False(t, NewMoneyUSDFromInt(1).IsNegative())
	assert.True(t, NewMoneyUSDFromInt(5).Equals(NewMoneyUSD(decimal.RequireFromString("5.00"))))
	assert.False(t, NewMoneyUSDFromInt(5).Equals(Zero(EUR)))
}

func TestMoney_Round(t *testing.T) {
	m := NewMoneyUSD(decimal.RequireFromString("3825.005"))
	assert.Equal(t, "3825.01", m.Round(2).Amount().StringFixed(2))
}

func TestMoney_FormatUS(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		want   string
	}{
		{"whole dollars", "6600", "$6,600"},
		{"large amount", "220000", "$220,000"},
		{"small amount", "25", "$25"},
		{"with cents", "1234.5", "$1,234.50"},
		{"negative", "-4200", "-$4,200"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMoneyUSD(decimal.RequireFromString(tt.amount))
			assert.Equal(t, tt.want, m.FormatUS())
		})
	}
}

func TestMoney_String(t *testing.T) {
	assert.Equal(t, "12.50 USD", NewMoneyUSD(decimal.RequireFromString("12.5")).String())
}

func TestMoney_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(NewMoneyUSDFromInt(1100))
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"1100.00","currency":"USD"}`, string(data))
}
