package cli

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
	"time"

	"roscon_orders/internal/orders"
)

type itemFlags []string

func (f *itemFlags) String() string {
	if f == nil {
		return ""
	}
	return strings.Join(*f, " ")
}

func (f *itemFlags) Set(value string) error {
	*f = append(*f, value)
	return nil
}

// orderForm holds the flags shared by new and edit.
type orderForm struct {
	name   string
	phone  string
	date   string
	notes  string
	status string
	method string
	paid   bool
	items  itemFlags
}

func (f *orderForm) register(fs *flag.FlagSet) {
	fs.StringVar(&f.name, "name", "", "Customer name")
	fs.StringVar(&f.phone, "phone", "", "Customer phone")
	fs.StringVar(&f.date, "date", "", "Delivery date (YYYY-MM-DD, hoy, mañana)")
	fs.StringVar(&f.notes, "notes", "", "Free text notes")
	fs.StringVar(&f.status, "status", "", "pendiente, preparando, listo or entregado")
	fs.StringVar(&f.method, "method", "", "efectivo, tarjeta, transferencia or bizum (implies --paid)")
	fs.BoolVar(&f.paid, "paid", false, "Order is paid")
	fs.Var(&f.items, "item", "size:filling[:quantity], repeatable")
}

func (f *orderForm) input(now time.Time) (orders.Input, error) {
	in := orders.Input{
		CustomerName: f.name,
		Phone:        f.phone,
		DeliveryDate: parseDeliveryDate(f.date, now),
		Notes:        f.notes,
		Paid:         f.paid,
	}

	if f.status != "" {
		status, err := parseStatus(f.status)
		if err != nil {
			return in, err
		}
		in.Status = status
	}
	if f.method != "" {
		method, err := parsePaymentMethod(f.method)
		if err != nil {
			return in, err
		}
		in.Paid = true
		in.PaymentMethod = &method
	}

	items, err := parseItems(f.items)
	if err != nil {
		return in, err
	}
	in.Items = items
	return in, nil
}

// apply copies the visited flags onto o. New items replace the order
// contents, which turns a legacy order into an itemized one.
func (f *orderForm) apply(o orders.Order, visited map[string]bool, now time.Time) (orders.Order, error) {
	if visited["name"] {
		o.CustomerName = f.name
	}
	if visited["phone"] {
		o.Phone = f.phone
	}
	if visited["date"] {
		o.DeliveryDate = parseDeliveryDate(f.date, now)
	}
	if visited["notes"] {
		o.Notes = f.notes
	}
	if visited["status"] {
		status, err := parseStatus(f.status)
		if err != nil {
			return o, err
		}
		o.Status = status
	}
	if visited["paid"] {
		o.Paid = f.paid
	}
	if visited["method"] {
		method, err := parsePaymentMethod(f.method)
		if err != nil {
			return o, err
		}
		o.Paid = true
		o.PaymentMethod = &method
	}
	if visited["item"] {
		items, err := parseItems(f.items)
		if err != nil {
			return o, err
		}
		o.Contents = orders.Itemized{Items: items}
	}
	return o, nil
}

func parseItems(values []string) ([]orders.LineItem, error) {
	items := make([]orders.LineItem, 0, len(values))
	for _, value := range values {
		item, err := parseItem(value)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// parseItem reads "size:filling[:quantity]" and prices it from the table.
// The quantity defaults to 1.
func parseItem(value string) (orders.LineItem, error) {
	parts := strings.Split(value, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return orders.LineItem{}, fmt.Errorf("%w: --item tamaño:relleno[:cantidad], recibido %q", errUsage, value)
	}

	size, err := parseSize(parts[0])
	if err != nil {
		return orders.LineItem{}, err
	}
	filling, err := parseFilling(parts[1])
	if err != nil {
		return orders.LineItem{}, err
	}

	quantity := 1
	if len(parts) == 3 {
		quantity, err = strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil || quantity <= 0 {
			return orders.LineItem{}, fmt.Errorf("%w: %q", orders.ErrInvalidQuantity, parts[2])
		}
	}
	return orders.NewLineItem(size, filling, quantity), nil
}

func parseDeliveryDate(value string, now time.Time) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "hoy":
		return now.Format(orders.DateLayout)
	case "mañana", "manana":
		return now.AddDate(0, 0, 1).Format(orders.DateLayout)
	default:
		return strings.TrimSpace(value)
	}
}
