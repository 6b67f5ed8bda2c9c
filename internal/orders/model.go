package orders

import (
	"time"

	"roscon_orders/internal/roscon"

	"github.com/shopspring/decimal"
)

type LineItem struct {
	Size      roscon.Size
	Filling   roscon.Filling
	Quantity  int
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
}

// NewLineItem prices an item from the price table at entry time.
func NewLineItem(size roscon.Size, filling roscon.Filling, quantity int) LineItem {
	return LineItem{
		Size:      size,
		Filling:   filling,
		Quantity:  quantity,
		UnitPrice: roscon.UnitPrice(filling, size),
	}.Repriced()
}

// Repriced returns the item with Total recomputed from UnitPrice and Quantity.
func (i LineItem) Repriced() LineItem {
	i.Total = i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
	return i
}

// Contents is what an order carries: Itemized (current shape) or Legacy
// (one item inlined on the order). A nil Contents is a malformed order.
type Contents interface {
	contents()
}

type Itemized struct {
	Items []LineItem
}

type Legacy struct {
	Size     roscon.Size
	Filling  roscon.Filling
	Quantity int
}

func (Itemized) contents() {}
func (Legacy) contents()   {}

type Order struct {
	ID            string
	CustomerName  string
	Phone         string
	DeliveryDate  string
	Notes         string
	Status        roscon.Status
	Paid          bool
	PaymentMethod *roscon.PaymentMethod
	CreatedAt     time.Time
	Price         decimal.Decimal
	Contents      Contents
}

// Input is an order before the store assigns ID and CreatedAt.
type Input struct {
	CustomerName  string
	Phone         string
	DeliveryDate  string
	Notes         string
	Status        roscon.Status
	Paid          bool
	PaymentMethod *roscon.PaymentMethod
	Items         []LineItem
}

func (in Input) order(id string, createdAt time.Time) Order {
	items := make([]LineItem, len(in.Items))
	copy(items, in.Items)
	o := Order{
		ID:            id,
		CustomerName:  in.CustomerName,
		Phone:         in.Phone,
		DeliveryDate:  in.DeliveryDate,
		Notes:         in.Notes,
		Status:        in.Status,
		Paid:          in.Paid,
		PaymentMethod: in.PaymentMethod,
		CreatedAt:     createdAt,
		Contents:      Itemized{Items: items},
	}
	if o.Status == "" {
		o.Status = roscon.StatusPending
	}
	return o.withDerivedPrice()
}

// withDerivedPrice keeps Price equal to the sum of item totals for itemized
// orders. Legacy and malformed orders keep their stored price.
func (o Order) withDerivedPrice() Order {
	itemized, ok := o.Contents.(Itemized)
	if !ok || len(itemized.Items) == 0 {
		return o
	}
	items := make([]LineItem, len(itemized.Items))
	price := decimal.Zero
	for i, item := range itemized.Items {
		items[i] = item.Repriced()
		price = price.Add(items[i].Total)
	}
	o.Contents = Itemized{Items: items}
	o.Price = price
	return o
}

// Units is the number of roscones the order asks for.
func (o Order) Units() int {
	total := 0
	for _, item := range LineItems(o) {
		total += item.Quantity
	}
	return total
}

// Urgent reports an undelivered order due in less than 24 hours.
func (o Order) Urgent(now time.Time) bool {
	if !o.Status.Pending() {
		return false
	}
	due, err := time.ParseInLocation(DateLayout, o.DeliveryDate, now.Location())
	if err != nil {
		return false
	}
	return due.Sub(now) < 24*time.Hour
}

func (o Order) clone() Order {
	if itemized, ok := o.Contents.(Itemized); ok {
		items := make([]LineItem, len(itemized.Items))
		copy(items, itemized.Items)
		o.Contents = Itemized{Items: items}
	}
	if o.PaymentMethod != nil {
		method := *o.PaymentMethod
		o.PaymentMethod = &method
	}
	return o
}
