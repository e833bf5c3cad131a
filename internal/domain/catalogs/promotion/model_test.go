package promotion

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fournil/internal/core/id"
	"fournil/internal/core/types"
)

func TestApply_Percent(t *testing.T) {
	p := New("PROMO-1", "Ten percent off", id.New(), DiscountPercent, decimal.NewFromInt(10))

	got := p.Apply(types.MustMoney("2.50"), 1)
	assert.True(t, got.Equal(types.MustMoney("2.25")), "got %s", got)
}

func TestApply_FixedNeverNegative(t *testing.T) {
	p := New("PROMO-2", "Two euros off", id.New(), DiscountFixed, types.MustMoney("2"))

	got := p.Apply(types.MustMoney("1.50"), 1)
	assert.True(t, got.IsZero(), "price must clamp at zero, got %s", got)
}

func TestApply_VolumeThreshold(t *testing.T) {
	p := New("PROMO-3", "Bulk discount", id.New(), DiscountVolume, decimal.NewFromInt(20))
	p.Threshold = 5

	price := types.MustMoney("10")

	assert.True(t, p.Apply(price, 4).Equal(price), "below threshold keeps full price")
	assert.True(t, p.Apply(price, 5).Equal(types.MustMoney("8")), "threshold reached applies discount")
}

func TestInWindow(t *testing.T) {
	now := time.Now().UTC()

	p := New("PROMO-4", "Spring sale", id.New(), DiscountPercent, decimal.NewFromInt(5))
	p.ValidFrom = now.AddDate(0, 0, -1)
	p.ValidTo = now.AddDate(0, 0, 1)

	assert.True(t, p.InWindow(now))
	assert.False(t, p.InWindow(now.AddDate(0, 0, 2)))

	p.Active = false
	assert.False(t, p.InWindow(now), "inactive promotion never applies")
}

func TestValidate(t *testing.T) {
	ctx := context.Background()

	valid := New("PROMO-5", "Launch offer", id.New(), DiscountPercent, decimal.NewFromInt(15))
	require.NoError(t, valid.Validate(ctx))

	missingFormat := New("PROMO-6", "Dangling", id.Nil(), DiscountPercent, decimal.NewFromInt(15))
	assert.Error(t, missingFormat.Validate(ctx))

	overPercent := New("PROMO-7", "Too deep", id.New(), DiscountPercent, decimal.NewFromInt(120))
	assert.Error(t, overPercent.Validate(ctx))

	badWindow := New("PROMO-8", "Backwards", id.New(), DiscountFixed, types.MustMoney("1"))
	badWindow.ValidFrom = time.Now().UTC()
	badWindow.ValidTo = badWindow.ValidFrom.AddDate(0, 0, -1)
	assert.Error(t, badWindow.Validate(ctx))
}
