package report

import (
	"sort"
	"time"

	"roscon_orders/internal/orders"
	"roscon_orders/internal/roscon"

	"github.com/shopspring/decimal"
)

const recentOrdersLimit = 5

type Dashboard struct {
	TotalOrders   int             `json:"total_orders"`
	TotalUnits    int             `json:"total_units"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	PendingOrders int             `json:"pending_orders"`
	PaidOrders    int             `json:"paid_orders"`
	UnpaidOrders  int             `json:"unpaid_orders"`
	UnpaidAmount  decimal.Decimal `json:"unpaid_amount"`
	DueToday      []orders.Order  `json:"-"`
	DueTomorrow   []orders.Order  `json:"-"`
	Recent        []orders.Order  `json:"-"`
}

// Summarize builds the overview screen. Pending here means not yet started
// or in preparation; ready orders waiting for pickup are not counted.
func Summarize(list []orders.Order, now time.Time) Dashboard {
	d := Dashboard{
		TotalOrders:  len(list),
		TotalRevenue: decimal.Zero,
		UnpaidAmount: decimal.Zero,
	}
	today := now.Format(orders.DateLayout)
	tomorrow := now.AddDate(0, 0, 1).Format(orders.DateLayout)

	for _, o := range list {
		d.TotalUnits += o.Units()
		d.TotalRevenue = d.TotalRevenue.Add(o.Price)
		if o.Status == roscon.StatusPending || o.Status == roscon.StatusPreparing {
			d.PendingOrders++
		}
		if o.Paid {
			d.PaidOrders++
		} else {
			d.UnpaidOrders++
			d.UnpaidAmount = d.UnpaidAmount.Add(o.Price)
		}
		switch o.DeliveryDate {
		case today:
			d.DueToday = append(d.DueToday, o)
		case tomorrow:
			d.DueTomorrow = append(d.DueTomorrow, o)
		}
	}

	recent := make([]orders.Order, len(list))
	copy(recent, list)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if len(recent) > recentOrdersLimit {
		recent = recent[:recentOrdersLimit]
	}
	d.Recent = recent
	return d
}
