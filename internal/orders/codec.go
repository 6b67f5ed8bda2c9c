package orders

import (
	"encoding/json"
	"fmt"
	"time"

	"roscon_orders/internal/roscon"

	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

// wireOrder mirrors the persisted blob. Both order shapes share it: items
// for current orders, size/filling/quantity for legacy ones.
type wireOrder struct {
	ID            string                `json:"id"`
	CustomerName  string                `json:"customerName"`
	Phone         string                `json:"phone"`
	DeliveryDate  string                `json:"deliveryDate"`
	Items         []wireItem            `json:"items,omitempty"`
	Size          *roscon.Size          `json:"size,omitempty"`
	Filling       *roscon.Filling       `json:"filling,omitempty"`
	Quantity      *int                  `json:"quantity,omitempty"`
	Price         json.Number           `json:"price"`
	Notes         string                `json:"notes"`
	Status        roscon.Status         `json:"status"`
	Paid          bool                  `json:"paid"`
	PaymentMethod *roscon.PaymentMethod `json:"paymentMethod"`
	CreatedAt     string                `json:"createdAt"`
}

type wireItem struct {
	Size      roscon.Size    `json:"size"`
	Filling   roscon.Filling `json:"filling"`
	Quantity  int            `json:"quantity"`
	UnitPrice json.Number    `json:"unitPrice"`
	Total     json.Number    `json:"total"`
}

// Encode serializes the collection into the blob handed to the key-value store.
func Encode(list []Order) ([]byte, error) {
	wire := make([]wireOrder, 0, len(list))
	for _, o := range list {
		wire = append(wire, toWire(o))
	}
	return json.Marshal(wire)
}

// Decode parses a blob that may mix legacy and itemized orders.
func Decode(data []byte) ([]Order, error) {
	var wire []wireOrder
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	list := make([]Order, 0, len(wire))
	for i, w := range wire {
		o, err := fromWire(w)
		if err != nil {
			return nil, fmt.Errorf("decode order %d: %w", i, err)
		}
		list = append(list, o)
	}
	return list, nil
}

func toWire(o Order) wireOrder {
	w := wireOrder{
		ID:            o.ID,
		CustomerName:  o.CustomerName,
		Phone:         o.Phone,
		DeliveryDate:  o.DeliveryDate,
		Price:         money(o.Price),
		Notes:         o.Notes,
		Status:        o.Status,
		Paid:          o.Paid,
		PaymentMethod: o.PaymentMethod,
	}
	if !o.CreatedAt.IsZero() {
		w.CreatedAt = o.CreatedAt.UTC().Format(time.RFC3339Nano)
	}

	switch c := o.Contents.(type) {
	case Itemized:
		for _, item := range c.Items {
			w.Items = append(w.Items, wireItem{
				Size:      item.Size,
				Filling:   item.Filling,
				Quantity:  item.Quantity,
				UnitPrice: money(item.UnitPrice),
				Total:     money(item.Total),
			})
		}
	case Legacy:
		size, filling, quantity := c.Size, c.Filling, c.Quantity
		w.Size, w.Filling, w.Quantity = &size, &filling, &quantity
	}
	return w
}

func fromWire(w wireOrder) (Order, error) {
	price, err := parseMoney(w.Price)
	if err != nil {
		return Order{}, fmt.Errorf("price: %w", err)
	}
	o := Order{
		ID:            w.ID,
		CustomerName:  w.CustomerName,
		Phone:         w.Phone,
		DeliveryDate:  w.DeliveryDate,
		Notes:         w.Notes,
		Status:        w.Status,
		Paid:          w.Paid,
		PaymentMethod: w.PaymentMethod,
		Price:         price,
	}
	if created, err := time.Parse(time.RFC3339Nano, w.CreatedAt); err == nil {
		o.CreatedAt = created
	}

	switch {
	case len(w.Items) > 0:
		items := make([]LineItem, 0, len(w.Items))
		for _, wi := range w.Items {
			unit, err := parseMoney(wi.UnitPrice)
			if err != nil {
				return Order{}, fmt.Errorf("unit price: %w", err)
			}
			total, err := parseMoney(wi.Total)
			if err != nil {
				return Order{}, fmt.Errorf("item total: %w", err)
			}
			items = append(items, LineItem{
				Size:      wi.Size,
				Filling:   wi.Filling,
				Quantity:  wi.Quantity,
				UnitPrice: unit,
				Total:     total,
			})
		}
		o.Contents = Itemized{Items: items}
	case w.Size != nil && *w.Size != "" && w.Filling != nil && w.Quantity != nil:
		o.Contents = Legacy{Size: *w.Size, Filling: *w.Filling, Quantity: *w.Quantity}
	}
	return o, nil
}

func money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}

func parseMoney(n json.Number) (decimal.Decimal, error) {
	if n == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(string(n))
}
