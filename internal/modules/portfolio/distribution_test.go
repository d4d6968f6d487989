package portfolio

import (
	"fmt"
	"testing"

	"github.com/aristath/folio/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sumBuckets(buckets []CategoryBucket) (decimal.Decimal, decimal.Decimal) {
	value, weight := decimal.Zero, decimal.Zero
	for _, b := range buckets {
		value = value.Add(b.TotalValue)
		weight = weight.Add(b.WeightPercent)
	}
	return value, weight
}

func TestAggregateByCategory_SingleBucket(t *testing.T) {
	v := ValueHoldings([]domain.Holding{
		holding("h1", "THYAO", domain.AssetTypeStock, "10", "100", "120"),
	}, nil)

	dist := AggregateByCategory(v)

	require.Len(t, dist.Buckets, 1)
	b := dist.Buckets[0]
	assert.Equal(t, domain.AssetTypeStock, b.Type)
	assert.Equal(t, "BIST Hisse", b.Label)
	assert.Equal(t, "bg-blue-500", b.ColorTag)
	assertDecimal(t, "1200", b.TotalValue)
	assertDecimal(t, "100", b.WeightPercent)
	assert.Equal(t, 1, b.HoldingCount)
	assert.InDelta(t, 1.0, dist.Concentration, 1e-9)
}

func TestAggregateByCategory_TwoBucketsWeights(t *testing.T) {
	v := ValueHoldings([]domain.Holding{
		holding("h1", "GARAN", domain.AssetTypeStock, "5", "50", ""),
		holding("h2", "BTC", domain.AssetTypeCrypto, "2", "1000", "1200"),
	}, nil)

	dist := AggregateByCategory(v)

	require.Len(t, dist.Buckets, 2)
	assert.Equal(t, domain.AssetTypeCrypto, dist.Buckets[0].Type)
	assertDecimal(t, "2400", dist.Buckets[0].TotalValue)
	assertDecimal(t, "90.57", dist.Buckets[0].WeightPercent)
	assert.Equal(t, domain.AssetTypeStock, dist.Buckets[1].Type)
	assertDecimal(t, "250", dist.Buckets[1].TotalValue)
	assertDecimal(t, "9.43", dist.Buckets[1].WeightPercent)

	value, weight := sumBuckets(dist.Buckets)
	assertDecimal(t, "2650", value)
	assertDecimal(t, "100", weight)
	assertDecimal(t, "2650", dist.TotalValue)
}

func TestAggregateByCategory_WeightsAlwaysSumTo100(t *testing.T) {
	// Three equal buckets: 33.33 each leaves one hundredth for the first bucket
	v := ValueHoldings([]domain.Holding{
		holding("h1", "A", domain.AssetTypeStock, "1", "10", "10"),
		holding("h2", "B", domain.AssetTypeFund, "1", "10", "10"),
		holding("h3", "C", domain.AssetTypeCommodity, "1", "10", "10"),
	}, nil)

	dist := AggregateByCategory(v)

	require.Len(t, dist.Buckets, 3)
	assertDecimal(t, "33.34", dist.Buckets[0].WeightPercent)
	assertDecimal(t, "33.33", dist.Buckets[1].WeightPercent)
	assertDecimal(t, "33.33", dist.Buckets[2].WeightPercent)

	_, weight := sumBuckets(dist.Buckets)
	assertDecimal(t, "100", weight)
}

func TestAggregateByCategory_InvariantsOverManyPortfolios(t *testing.T) {
	types := []domain.AssetType{
		domain.AssetTypeStock, domain.AssetTypeFund, domain.AssetTypeCrypto,
		domain.AssetTypeCommodity, domain.AssetType("bond"),
	}

	for n := 1; n <= 25; n++ {
		t.Run(fmt.Sprintf("holdings_%d", n), func(t *testing.T) {
			holdings := make([]domain.Holding, 0, n)
			for i := 0; i < n; i++ {
				qty := fmt.Sprintf("%d.%08d", i+1, (i*7919)%100000000)
				price := fmt.Sprintf("%d.%02d", (i*37)%500+1, (i*13)%100)
				holdings = append(holdings, holding(fmt.Sprintf("h%d", i), fmt.Sprintf("S%d", i), types[i%len(types)], qty, price, price))
			}

			v := ValueHoldings(holdings, nil)
			dist := AggregateByCategory(v)

			value, weight := sumBuckets(dist.Buckets)
			assert.True(t, value.Equal(v.TotalValue), "bucket sum %s != total %s", value, v.TotalValue)
			assertDecimal(t, "100", weight)

			count := 0
			for _, b := range dist.Buckets {
				count += b.HoldingCount
			}
			assert.Equal(t, n, count)

			for i := 1; i < len(dist.Buckets); i++ {
				assert.False(t, dist.Buckets[i].TotalValue.GreaterThan(dist.Buckets[i-1].TotalValue))
			}
		})
	}
}

func TestAggregateByCategory_ZeroTotal(t *testing.T) {
	v := ValueHoldings([]domain.Holding{
		holding("h1", "A", domain.AssetTypeStock, "0", "10", "10"),
		holding("h2", "B", domain.AssetTypeCrypto, "5", "10", "0"),
	}, nil)

	dist := AggregateByCategory(v)

	require.Len(t, dist.Buckets, 2)
	for _, b := range dist.Buckets {
		assertDecimal(t, "0", b.WeightPercent)
	}
	assert.Equal(t, 0.0, dist.Concentration)
}

func TestAggregateByCategory_Empty(t *testing.T) {
	dist := AggregateByCategory(ValueHoldings(nil, nil))
	assert.Empty(t, dist.Buckets)
	assertDecimal(t, "0", dist.TotalValue)

	assert.Empty(t, AggregateByCategory(nil).Buckets)
}

func TestAggregateByCategory_UnknownTypeGoesToOther(t *testing.T) {
	v := ValueHoldings([]domain.Holding{
		holding("h1", "X", domain.AssetType("bond"), "1", "100", "100"),
		holding("h2", "Y", domain.AssetType("real-estate"), "1", "50", "50"),
		holding("h3", "Z", domain.AssetTypeStock, "1", "10", "10"),
	}, nil)

	dist := AggregateByCategory(v)

	require.Len(t, dist.Buckets, 2)
	other := dist.Buckets[0]
	assert.Equal(t, domain.AssetTypeOther, other.Type)
	assert.Equal(t, "Diğer", other.Label)
	assert.Equal(t, "bg-gray-500", other.ColorTag)
	assertDecimal(t, "150", other.TotalValue)
	assert.Equal(t, 2, other.HoldingCount)
}

func TestAggregateByCategory_TiesKeepEncounterOrder(t *testing.T) {
	v := ValueHoldings([]domain.Holding{
		holding("h1", "GAU", domain.AssetTypeCommodity, "1", "100", "100"),
		holding("h2", "THYAO", domain.AssetTypeStock, "1", "100", "100"),
		holding("h3", "BTC", domain.AssetTypeCrypto, "1", "100", "100"),
	}, nil)

	dist := AggregateByCategory(v)

	require.Len(t, dist.Buckets, 3)
	assert.Equal(t, domain.AssetTypeCommodity, dist.Buckets[0].Type)
	assert.Equal(t, domain.AssetTypeStock, dist.Buckets[1].Type)
	assert.Equal(t, domain.AssetTypeCrypto, dist.Buckets[2].Type)
}

func TestMoneyFormatter(t *testing.T) {
	f, err := NewMoneyFormatter("TRY")
	require.NoError(t, err)
	assert.Equal(t, "TRY", f.Code())
	assert.Equal(t, "₺1,200.00", f.Format(dec("1200")))
	assert.Equal(t, "-₺12.35", f.Format(dec("-12.345")))

	usd, err := NewMoneyFormatter("USD")
	require.NoError(t, err)
	assert.Equal(t, "$2,650.50", usd.Format(dec("2650.5")))

	_, err = NewMoneyFormatter("NOPE")
	assert.Error(t, err)
}

func TestMoneyFormatter_Apply(t *testing.T) {
	f, err := NewMoneyFormatter("USD")
	require.NoError(t, err)

	v := ValueHoldings([]domain.Holding{
		holding("h1", "THYAO", domain.AssetTypeStock, "10", "100", "120"),
	}, nil)
	f.ApplyValuation(v)
	assert.Equal(t, "USD", v.Currency)
	assert.Equal(t, "$1,200.00", v.FormattedTotalValue)
	assert.Equal(t, "$1,000.00", v.FormattedTotalCost)
	assert.Equal(t, "$200.00", v.FormattedGainLoss)
	assert.Equal(t, "$1,200.00", v.PerHolding[0].FormattedValue)

	d := AggregateByCategory(v)
	f.ApplyDistribution(d)
	assert.Equal(t, "$1,200.00", d.Buckets[0].FormattedValue)
}
