package portfolio

import (
	"sort"

	"github.com/aristath/folio/internal/domain"
	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/floats"
)

// weightUnits is 100.00% expressed in hundredths of a percent.
const weightUnits = 10000

// AggregateByCategory groups a valuation into one bucket per asset type.
//
// Unknown types share the "other" bucket, so every holding lands in exactly one
// bucket and bucket totals sum to the valuation total. Buckets are ordered by
// value, largest first, keeping encounter order for equal values. Weights are
// rounded to hundredths with the largest-remainder method so that they sum to
// exactly 100 when the total is positive; they are all zero otherwise.
func AggregateByCategory(v *ValuationResult) *CategoryDistribution {
	dist := &CategoryDistribution{
		TotalValue: decimal.Zero,
		Buckets:    make([]CategoryBucket, 0),
	}
	if v == nil {
		return dist
	}

	index := make(map[domain.AssetType]int)
	for _, hv := range v.PerHolding {
		t := hv.Type.Normalize()
		i, ok := index[t]
		if !ok {
			meta := domain.CategoryFor(t)
			dist.Buckets = append(dist.Buckets, CategoryBucket{
				Type:          t,
				Label:         meta.Label,
				Icon:          meta.Icon,
				ColorTag:      meta.Color,
				TotalValue:    decimal.Zero,
				WeightPercent: decimal.Zero,
			})
			i = len(dist.Buckets) - 1
			index[t] = i
		}
		dist.Buckets[i].TotalValue = dist.Buckets[i].TotalValue.Add(hv.CurrentValue)
		dist.Buckets[i].HoldingCount++
		dist.TotalValue = dist.TotalValue.Add(hv.CurrentValue)
	}

	sort.SliceStable(dist.Buckets, func(i, j int) bool {
		return dist.Buckets[i].TotalValue.GreaterThan(dist.Buckets[j].TotalValue)
	})

	assignWeights(dist.Buckets, dist.TotalValue)
	dist.Concentration = concentration(dist.Buckets)

	return dist
}

// assignWeights distributes 100.00% over buckets proportionally to their value.
// Each bucket gets the floor of its exact share in hundredths; the units lost to
// flooring go to the buckets with the largest remainders, earlier buckets first.
func assignWeights(buckets []CategoryBucket, total decimal.Decimal) {
	if !total.IsPositive() || len(buckets) == 0 {
		return
	}

	units := decimal.NewFromInt(weightUnits)
	floors := make([]int64, len(buckets))
	remainders := make([]decimal.Decimal, len(buckets))
	var assigned int64

	for i, b := range buckets {
		exact := b.TotalValue.Mul(units).Div(total)
		floor := exact.Floor()
		floors[i] = floor.IntPart()
		remainders[i] = exact.Sub(floor)
		assigned += floors[i]
	}

	order := make([]int, len(buckets))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return remainders[order[a]].GreaterThan(remainders[order[b]])
	})

	for k := int64(0); k < weightUnits-assigned && int(k) < len(order); k++ {
		floors[order[k]]++
	}

	for i := range buckets {
		buckets[i].WeightPercent = decimal.New(floors[i], -2)
	}
}

// concentration returns the Herfindahl-Hirschman index of the bucket weights as fractions.
func concentration(buckets []CategoryBucket) float64 {
	if len(buckets) == 0 {
		return 0
	}
	w := make([]float64, len(buckets))
	for i, b := range buckets {
		w[i] = b.WeightPercent.Div(hundred).InexactFloat64()
	}
	return floats.Dot(w, w)
}
