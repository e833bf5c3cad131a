package measure

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fournil/internal/core/apperror"
)

func TestConvert_WithinClass(t *testing.T) {
	tests := []struct {
		name string
		qty  string
		from Unit
		to   Unit
		want string
	}{
		{"kg to g", "2.5", Kilogram, Gram, "2500"},
		{"g to kg", "250", Gram, Kilogram, "0.25"},
		{"mg to g", "500", Milligram, Gram, "0.5"},
		{"l to ml", "1.2", Liter, Milliliter, "1200"},
		{"cl to l", "75", Centiliter, Liter, "0.75"},
		{"dozen to pcs", "3", Dozen, Piece, "36"},
		{"identity", "42", Gram, Gram, "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Convert(decimal.RequireFromString(tt.qty), tt.from, tt.to)
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"got %s, want %s", got, tt.want)
		})
	}
}

func TestConvert_CrossClassFails(t *testing.T) {
	_, err := Convert(decimal.NewFromInt(1), Kilogram, Liter)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeUnitMismatch))

	_, err = Convert(decimal.NewFromInt(1), Piece, Gram)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeUnitMismatch))
}

func TestConvert_UnknownUnit(t *testing.T) {
	_, err := Convert(decimal.NewFromInt(1), Unit("cup"), Gram)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

func TestToBase(t *testing.T) {
	qty, base, err := ToBase(decimal.RequireFromString("1.5"), Kilogram)
	require.NoError(t, err)
	assert.Equal(t, Gram, base)
	assert.True(t, qty.Equal(decimal.NewFromInt(1500)))
}

func TestIsMass(t *testing.T) {
	assert.True(t, IsMass(Kilogram))
	assert.False(t, IsMass(Liter))
	assert.False(t, IsMass(Unit("cup")))
}
