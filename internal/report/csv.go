package report

import (
	"strconv"
	"strings"
	"time"

	"roscon_orders/internal/orders"
)

var csvHeader = []string{
	"id",
	"cliente",
	"telefono",
	"fecha_entrega",
	"tamaño",
	"relleno",
	"cantidad",
	"roscones",
	"lineas",
	"precio",
	"estado",
	"pagado",
	"metodo_pago",
	"notas",
	"creado",
}

// CSV renders one row per order. Size, filling and quantity describe the
// primary item (the legacy item or the first line item); roscones and lineas
// carry the totals across every line item. Every field is quoted.
func CSV(list []orders.Order) string {
	var b strings.Builder
	writeCSVRow(&b, csvHeader)

	for _, o := range list {
		items := orders.LineItems(o)
		var size, filling, quantity string
		if primary, ok := orders.PrimaryItem(o); ok {
			size = string(primary.Size)
			filling = string(primary.Filling)
			quantity = strconv.Itoa(primary.Quantity)
		}
		method := ""
		if o.PaymentMethod != nil {
			method = string(*o.PaymentMethod)
		}
		paid := "no"
		if o.Paid {
			paid = "si"
		}
		created := ""
		if !o.CreatedAt.IsZero() {
			created = o.CreatedAt.UTC().Format(time.RFC3339)
		}

		writeCSVRow(&b, []string{
			o.ID,
			o.CustomerName,
			o.Phone,
			o.DeliveryDate,
			size,
			filling,
			quantity,
			strconv.Itoa(o.Units()),
			strconv.Itoa(len(items)),
			o.Price.StringFixed(2),
			string(o.Status),
			paid,
			method,
			o.Notes,
			created,
		})
	}
	return b.String()
}

func writeCSVRow(b *strings.Builder, fields []string) {
	for i, field := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(field, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}
