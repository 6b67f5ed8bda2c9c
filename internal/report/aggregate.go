// Package report derives production and sales figures from the order
// collection and renders them as text and CSV.
package report

import (
	"sort"

	"roscon_orders/internal/orders"
	"roscon_orders/internal/roscon"

	"github.com/shopspring/decimal"
)

type DateRollup struct {
	Orders  int             `json:"orders"`
	Units   int             `json:"units"`
	Revenue decimal.Decimal `json:"revenue"`
}

// Aggregates is the production plan for a collection of orders.
//
// Revenue and unit totals are separate passes: an order without line items
// still counts towards revenue. Size and filling buckets only cover pending
// orders. Pending units that do not fit the size x filling matrix (a filling
// outside roscon.ReportFillings or an unknown size) are counted in
// Untracked and, for known sizes, in UntrackedBySize. They are never added
// to UnitsByFilling.
type Aggregates struct {
	TotalRevenue    decimal.Decimal                        `json:"total_revenue"`
	TotalUnits      int                                    `json:"total_units"`
	PendingUnits    int                                    `json:"pending_units"`
	UnitsBySize     map[roscon.Size]int                    `json:"units_by_size"`
	UnitsByFilling  map[roscon.Filling]int                 `json:"units_by_filling"`
	Matrix          map[roscon.Size]map[roscon.Filling]int `json:"matrix"`
	Untracked       int                                    `json:"untracked"`
	UntrackedBySize map[roscon.Size]int                    `json:"untracked_by_size,omitempty"`
	ByDeliveryDate  map[string]DateRollup                  `json:"by_delivery_date"`
}

func Compute(list []orders.Order) Aggregates {
	a := Aggregates{
		TotalRevenue:    decimal.Zero,
		UnitsBySize:     make(map[roscon.Size]int, len(roscon.Sizes)),
		UnitsByFilling:  make(map[roscon.Filling]int, len(roscon.ReportFillings)),
		Matrix:          make(map[roscon.Size]map[roscon.Filling]int, len(roscon.Sizes)),
		UntrackedBySize: map[roscon.Size]int{},
		ByDeliveryDate:  map[string]DateRollup{},
	}
	for _, size := range roscon.Sizes {
		a.UnitsBySize[size] = 0
		row := make(map[roscon.Filling]int, len(roscon.ReportFillings))
		for _, filling := range roscon.ReportFillings {
			row[filling] = 0
		}
		a.Matrix[size] = row
	}
	for _, filling := range roscon.ReportFillings {
		a.UnitsByFilling[filling] = 0
	}

	for _, o := range list {
		items := orders.LineItems(o)
		units := 0
		for _, item := range items {
			units += item.Quantity
		}

		a.TotalRevenue = a.TotalRevenue.Add(o.Price)
		a.TotalUnits += units

		rollup, ok := a.ByDeliveryDate[o.DeliveryDate]
		if !ok {
			rollup.Revenue = decimal.Zero
		}
		rollup.Orders++
		rollup.Units += units
		rollup.Revenue = rollup.Revenue.Add(o.Price)
		a.ByDeliveryDate[o.DeliveryDate] = rollup

		if !o.Status.Pending() {
			continue
		}
		a.PendingUnits += units
		for _, item := range items {
			a.addPending(item)
		}
	}
	return a
}

// addPending buckets one pending item. Only items that land in the matrix
// count towards UnitsByFilling, so every matrix column sums to its filling
// total.
func (a *Aggregates) addPending(item orders.LineItem) {
	row, knownSize := a.Matrix[item.Size]
	if knownSize {
		a.UnitsBySize[item.Size] += item.Quantity
	}
	if !item.Filling.Reported() || !knownSize {
		a.Untracked += item.Quantity
		if knownSize {
			a.UntrackedBySize[item.Size] += item.Quantity
		}
		return
	}
	a.UnitsByFilling[item.Filling] += item.Quantity
	row[item.Filling] += item.Quantity
}

// DeliveryDates lists the rollup keys in ascending order.
func (a Aggregates) DeliveryDates() []string {
	dates := make([]string, 0, len(a.ByDeliveryDate))
	for date := range a.ByDeliveryDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}
