package report

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"roscon_orders/internal/orders"

	"github.com/mattn/go-runewidth"
)

// Ticket renders one order for a narrow receipt printer. The first line is
// the title; the printer prints it bold and centered.
func Ticket(o orders.Order, width int) string {
	lines := []string{
		"PEDIDO ROSCÓN",
		"Cliente: " + o.CustomerName,
		"Tel: " + o.Phone,
		"Entrega: " + o.DeliveryDate,
		strings.Repeat("-", max(width, 1)),
	}

	for _, item := range orders.LineItems(o) {
		lines = append(lines, fmt.Sprintf("%d x %s %s %s", item.Quantity, item.Size, item.Filling, Money(item.Total)))
	}
	lines = append(lines, strings.Repeat("-", max(width, 1)))
	lines = append(lines, "Total: "+Money(o.Price))

	if o.Paid && o.PaymentMethod != nil {
		lines = append(lines, "Pagado ("+string(*o.PaymentMethod)+")")
	} else {
		lines = append(lines, "Pendiente de pago")
	}
	if o.Notes != "" {
		lines = append(lines, "Notas: "+o.Notes)
	}
	lines = append(lines, "Estado: "+string(o.Status))

	var wrapped []string
	for _, line := range lines {
		wrapped = append(wrapped, WrapLine(line, width)...)
	}
	return strings.Join(wrapped, "\n")
}

// WrapLine breaks text into lines of at most width display columns, cutting
// at the last space that fits. A word wider than width is cut hard.
func WrapLine(text string, width int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if width <= 0 {
		return []string{text}
	}

	var lines []string
	for runewidth.StringWidth(text) > width {
		cut, lastSpace, used := 0, -1, 0
		for i, r := range text {
			w := runewidth.RuneWidth(r)
			if used+w > width {
				cut = i
				break
			}
			if r == ' ' {
				lastSpace = i
			}
			used += w
		}
		if strings.HasPrefix(text[cut:], " ") {
			lastSpace = cut
		}
		if lastSpace > 0 {
			cut = lastSpace
		}
		if cut == 0 {
			_, size := utf8.DecodeRuneInString(text)
			cut = size
		}
		lines = append(lines, strings.TrimSpace(text[:cut]))
		text = strings.TrimSpace(text[cut:])
	}
	if text != "" {
		lines = append(lines, text)
	}
	return lines
}
