package orders

import "github.com/shopspring/decimal"

// LineItems is the only place that looks at an order's shape. Itemized
// orders come back as stored, legacy orders become one item whose total is
// the order price, malformed orders yield nothing.
func LineItems(o Order) []LineItem {
	switch c := o.Contents.(type) {
	case Itemized:
		if len(c.Items) > 0 {
			return c.Items
		}
	case Legacy:
		divisor := int64(c.Quantity)
		if divisor < 1 {
			divisor = 1
		}
		return []LineItem{{
			Size:      c.Size,
			Filling:   c.Filling,
			Quantity:  c.Quantity,
			UnitPrice: o.Price.Div(decimal.NewFromInt(divisor)),
			Total:     o.Price,
		}}
	}
	return nil
}

// PrimaryItem is the legacy item or the first line item.
func PrimaryItem(o Order) (LineItem, bool) {
	items := LineItems(o)
	if len(items) == 0 {
		return LineItem{}, false
	}
	return items[0], true
}
