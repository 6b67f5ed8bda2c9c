package roscon

import "github.com/shopspring/decimal"

type sizePrices map[Size]decimal.Decimal

func row(mini, small, medium, large float64) sizePrices {
	return sizePrices{
		SizeMini:   decimal.NewFromFloat(mini),
		SizeSmall:  decimal.NewFromFloat(small),
		SizeMedium: decimal.NewFromFloat(medium),
		SizeLarge:  decimal.NewFromFloat(large),
	}
}

// priceTable must stay in sync with Fillings and Sizes; prices_test walks the
// whole cross product.
var priceTable = map[Filling]sizePrices{
	FillingPlain:     row(5, 8, 10, 16),
	FillingCream:     row(12, 15, 18, 22),
	FillingTruffle:   row(14, 18, 20, 25),
	FillingCustard:   row(12, 15, 18, 22),
	FillingChocolate: row(16, 20, 22, 30),

	FillingCreamTruffle:            row(14, 18, 20, 25),
	FillingCreamCustard:            row(12, 15, 18, 22),
	FillingCreamChocolate:          row(16, 20, 22, 30),
	FillingTruffleCustard:          row(14, 18, 20, 25),
	FillingTruffleChocolate:        row(16, 20, 22, 30),
	FillingCustardChocolate:        row(16, 20, 22, 30),
	FillingCreamTruffleCustard:     row(14, 18, 20, 25),
	FillingCreamTruffleChocolate:   row(16, 20, 22, 30),
	FillingCreamCustardChocolate:   row(16, 20, 22, 30),
	FillingTruffleCustardChocolate: row(16, 20, 22, 30),
}

// UnitPrice returns the tabulated price of one roscón. Combinations missing
// from the table are priced at their most expensive component. Zero means
// the pair could not be priced at all.
func UnitPrice(filling Filling, size Size) decimal.Decimal {
	if prices, ok := priceTable[filling]; ok {
		if price, ok := prices[size]; ok {
			return price
		}
	}

	best := decimal.Zero
	for _, component := range filling.Components() {
		prices, ok := priceTable[component]
		if !ok {
			continue
		}
		if price, ok := prices[size]; ok && price.GreaterThan(best) {
			best = price
		}
	}
	return best
}

// Tabulated reports whether the exact pair has its own table entry.
func Tabulated(filling Filling, size Size) bool {
	prices, ok := priceTable[filling]
	if !ok {
		return false
	}
	_, ok = prices[size]
	return ok
}
