package helper

import (
	"testing"

	"shop_manager/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPricingConfig() model.PricingConfig {
	return model.PricingConfig{
		FreeShippingThreshold: 1000000,
		BaseShippingCost:      15000,
		TaxRate:               0.0001,
	}
}

func TestRound10(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{1, 10},
		{10, 10},
		{11, 20},
		{99, 100},
		{100, 100},
		{125000, 125000},
		{125001, 125010},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Round10(tt.in), "Round10(%v)", tt.in)
	}
}

func TestRound10_Idempotent(t *testing.T) {
	for _, x := range []float64{0, 3, 15, 99.5, 123456, 1000001} {
		once := Round10(x)
		assert.Equal(t, once, Round10(once), "Round10(Round10(%v))", x)
	}
}

func TestComputeTotals_FreeShippingOverThreshold(t *testing.T) {
	// 2 x 500.000 = 1.000.000, đủ ngưỡng freeship; tax = round10(100) = 100
	items := []model.LineItem{{Name: "Ghế gaming", Quantity: 2, UnitAmount: 500000}}
	totals := ComputeTotals(items, nil, testPricingConfig())

	assert.Equal(t, float64(1000000), totals.Subtotal)
	assert.True(t, totals.IsFreeShipping)
	assert.Equal(t, float64(0), totals.ShippingCost)
	assert.Equal(t, float64(100), totals.Tax)
	assert.Equal(t, float64(1000100), totals.GrandTotal)
}

func TestComputeTotals_UnderThresholdChargesShipping(t *testing.T) {
	items := []model.LineItem{{Name: "Áo thun", Quantity: 1, UnitAmount: 999990}}
	totals := ComputeTotals(items, nil, testPricingConfig())

	assert.False(t, totals.IsFreeShipping)
	assert.Equal(t, float64(15000), totals.ShippingCost)
}

func TestComputeTotals_ThresholdFlipOnlyChangesShipping(t *testing.T) {
	cfg := testPricingConfig()
	under := ComputeTotals([]model.LineItem{{Quantity: 1, UnitAmount: 999990}}, nil, cfg)
	over := ComputeTotals([]model.LineItem{{Quantity: 1, UnitAmount: 1000000}}, nil, cfg)

	assert.False(t, under.IsFreeShipping)
	assert.True(t, over.IsFreeShipping)
	assert.Equal(t, float64(15000), under.ShippingCost)
	assert.Equal(t, float64(0), over.ShippingCost)
	// Cơ sở tính tax vẫn là subtotal, không cộng shipping vào
	assert.Equal(t, Round10(under.Subtotal*cfg.TaxRate), under.Tax)
	assert.Equal(t, Round10(over.Subtotal*cfg.TaxRate), over.Tax)
}

func TestComputeTotals_RoundsPerLineBeforeSumming(t *testing.T) {
	// 3 x 33 = 99 → round10 = 100 mỗi dòng; cộng xong mới round thì ra khác
	items := []model.LineItem{
		{Quantity: 3, UnitAmount: 33},
		{Quantity: 1, UnitAmount: 1},
	}
	totals := ComputeTotals(items, nil, testPricingConfig())

	// round10(99) + round10(1) = 100 + 10 = 110, không phải round10(99+1) = 100
	assert.Equal(t, float64(110), totals.Subtotal)
}

func TestComputeTotals_PrecomputedSubtotalTrustedVerbatim(t *testing.T) {
	// Caller đã lưu subtotal 955 từ trước: giữ nguyên, không tính lại từ items
	items := []model.LineItem{{Quantity: 100, UnitAmount: 100000}}
	precomputed := 955.0
	totals := ComputeTotals(items, &precomputed, testPricingConfig())

	assert.Equal(t, 955.0, totals.Subtotal)
	assert.False(t, totals.IsFreeShipping)
	assert.Equal(t, float64(15000), totals.ShippingCost)
	assert.Equal(t, Round10(955*0.0001), totals.Tax)
	assert.Equal(t, Round10(955+15000+totals.Tax), totals.GrandTotal)
}

func TestComputeTotals_EmptyItems(t *testing.T) {
	totals := ComputeTotals(nil, nil, testPricingConfig())

	assert.Equal(t, float64(0), totals.Subtotal)
	assert.False(t, totals.IsFreeShipping)
	assert.Equal(t, float64(15000), totals.ShippingCost)
	assert.Equal(t, float64(0), totals.Tax)
	assert.Equal(t, float64(15000), totals.GrandTotal)
}

func TestComputeTotals_Deterministic(t *testing.T) {
	items := []model.LineItem{
		{Quantity: 2, UnitAmount: 123457},
		{Quantity: 5, UnitAmount: 999},
	}
	first := ComputeTotals(items, nil, testPricingConfig())
	second := ComputeTotals(items, nil, testPricingConfig())
	require.Equal(t, first, second)
}

func TestComputeTotals_GrandTotalMultipleOf10(t *testing.T) {
	cases := [][]model.LineItem{
		{{Quantity: 1, UnitAmount: 1}},
		{{Quantity: 3, UnitAmount: 333}, {Quantity: 7, UnitAmount: 123}},
		{{Quantity: 2, UnitAmount: 500000}},
		nil,
	}
	for _, items := range cases {
		totals := ComputeTotals(items, nil, testPricingConfig())
		assert.Zero(t, int64(totals.GrandTotal)%10, "grandTotal %v", totals.GrandTotal)
	}
}
