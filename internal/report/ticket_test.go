package report

import (
	"strings"
	"testing"

	"roscon_orders/internal/orders"
	"roscon_orders/internal/roscon"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapLine(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{"fits", "Total: €45.00", 32, []string{"Total: €45.00"}},
		{"breaks at last space", "Notas: recoger por la mañana", 14, []string{"Notas: recoger", "por la mañana"}},
		{"space right after limit", "abcd efgh", 4, []string{"abcd", "efgh"}},
		{"long word cut hard", "abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{"no width", "sin límite de ancho", 0, []string{"sin límite de ancho"}},
		{"empty", "   ", 10, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WrapLine(tt.text, tt.width))
		})
	}
}

func TestWrapLineRespectsDisplayWidth(t *testing.T) {
	for _, line := range WrapLine("Cliente: María José Fernández de la Peña", 12) {
		assert.LessOrEqual(t, runewidth.StringWidth(line), 12, "line %q", line)
	}
}

func TestTicket(t *testing.T) {
	bizum := roscon.PaymentBizum
	o := legacyOrder("1", "2025-01-06", 45, roscon.SizeLarge, roscon.FillingCream, 2, roscon.StatusPending)
	o.CustomerName = "María García"
	o.Notes = "Recoger por la mañana antes de las diez"
	o.Paid = true
	o.PaymentMethod = &bizum

	lines := strings.Split(Ticket(o, 32), "\n")

	require.GreaterOrEqual(t, len(lines), 10)
	assert.Equal(t, "PEDIDO ROSCÓN", lines[0])
	assert.Equal(t, "Cliente: María García", lines[1])
	assert.Equal(t, "Tel: 6000001", lines[2])
	assert.Equal(t, "Entrega: 2025-01-06", lines[3])
	assert.Equal(t, strings.Repeat("-", 32), lines[4])
	assert.Equal(t, "2 x grande nata €45.00", lines[5])
	assert.Equal(t, strings.Repeat("-", 32), lines[6])
	assert.Equal(t, "Total: €45.00", lines[7])
	assert.Equal(t, "Pagado (bizum)", lines[8])
	assert.Equal(t, "Notas: Recoger por la mañana", lines[9])
	assert.Equal(t, "antes de las diez", lines[10])
	assert.Equal(t, "Estado: pendiente", lines[len(lines)-1])
	for _, line := range lines {
		assert.LessOrEqual(t, runewidth.StringWidth(line), 32)
	}
}

func TestTicketItemizedUnpaid(t *testing.T) {
	o := itemizedOrder("2", "2025-01-05", roscon.StatusReady,
		orders.NewLineItem(roscon.SizeMini, roscon.FillingTruffle, 3),
		orders.NewLineItem(roscon.SizeLarge, roscon.FillingCream, 1),
	)

	text := Ticket(o, 40)

	assert.Contains(t, text, "3 x mini trufa €42.00\n1 x grande nata €22.00\n")
	assert.Contains(t, text, "Total: €64.00")
	assert.Contains(t, text, "Pendiente de pago")
	assert.NotContains(t, text, "Notas:")
}
