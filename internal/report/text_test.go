package report

import (
	"strings"
	"testing"

	"roscon_orders/internal/orders"
	"roscon_orders/internal/roscon"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoney(t *testing.T) {
	assert.Equal(t, "€45.00", Money(decimal.NewFromInt(45)))
	assert.Equal(t, "€22.50", Money(decimal.RequireFromString("22.5")))
}

func TestProductionPlanText(t *testing.T) {
	text := ProductionPlanText(Compute(scenario()))

	assert.True(t, strings.HasPrefix(text, "PLAN DE PRODUCCIÓN\n"))
	assert.Contains(t, text, "Roscones pendientes: 3\n")
	assert.Contains(t, text, "  grande: 3\n")
	assert.Contains(t, text, "  mini: 0\n")
	assert.Contains(t, text, "GRANDE\n  nata: 2\n  trufa: 1\n")
	assert.NotContains(t, text, "MINI\n")
	assert.NotContains(t, text, "Atención")
}

func TestProductionPlanTextWithoutPending(t *testing.T) {
	list := scenario()
	for i := range list {
		list[i].Status = roscon.StatusDelivered
	}

	text := ProductionPlanText(Compute(list))

	assert.Contains(t, text, "Roscones pendientes: 0\n")
	assert.Contains(t, text, "(sin producción pendiente)")
}

func TestProductionPlanTextWarnsAboutUntracked(t *testing.T) {
	list := []orders.Order{
		itemizedOrder("1", "2025-01-05", roscon.StatusPending,
			orders.NewLineItem(roscon.SizeMini, roscon.FillingChocolate, 3)),
	}

	text := ProductionPlanText(Compute(list))

	assert.Contains(t, text, "Atención: 3 roscones pendientes fuera del informe por relleno (mini=3)")
}

func TestMatrixText(t *testing.T) {
	text := MatrixText(Compute(scenario()))
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")

	require.Len(t, lines, len(roscon.Sizes)+2)
	assert.True(t, strings.HasPrefix(lines[0], "tamaño"))
	assert.True(t, strings.HasSuffix(lines[0], "total"))

	mini := strings.Fields(lines[1])
	assert.Equal(t, "mini", mini[0])
	for _, field := range mini[1:] {
		assert.Equal(t, "-", field)
	}

	assert.True(t, strings.HasPrefix(lines[4], "grande"))
	assert.Contains(t, lines[4], "2")
	assert.True(t, strings.HasSuffix(lines[4], "3"))
	assert.True(t, strings.HasPrefix(lines[5], "total"))
	assert.True(t, strings.HasSuffix(lines[5], "3"))
}

func TestDeliveryText(t *testing.T) {
	list := append(scenario(),
		legacyOrder("3", "2025-01-05", 42, roscon.SizeMedium, roscon.FillingPlain, 3, roscon.StatusPreparing))

	lines := strings.Split(strings.TrimRight(DeliveryText(Compute(list)), "\n"), "\n")

	require.Len(t, lines, 4)
	assert.Equal(t, []string{"fecha", "pedidos", "roscones", "ingresos"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"2025-01-05", "1", "3", "€42.00"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"2025-01-06", "2", "3", "€70.00"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"total", "6", "€112.00"}, strings.Fields(lines[3]))
}
