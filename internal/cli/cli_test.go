package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"roscon_orders/internal/config"
	"roscon_orders/internal/orders"
	"roscon_orders/internal/printer"
	"roscon_orders/internal/roscon"
	"roscon_orders/internal/storage"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type memoryKV struct {
	data map[string][]byte
}

func (m *memoryKV) Get(_ context.Context, key string) ([]byte, error) {
	value, ok := m.data[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, key)
	}
	return value, nil
}

func (m *memoryKV) Put(_ context.Context, key string, value []byte) error {
	m.data[key] = append([]byte(nil), value...)
	return nil
}

var testNow = time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC)

type harness struct {
	runner *Runner
	store  *orders.Store
	kv     *memoryKV
	out    *bytes.Buffer
	errOut *bytes.Buffer
}

func newHarness(t *testing.T, input string) *harness {
	t.Helper()
	logger := zaptest.NewLogger(t)
	cfg := config.Default()
	cfg.PrinterChunkDelay = 0

	kv := &memoryKV{data: map[string][]byte{}}
	ids := 0
	store := orders.New(kv, cfg.StorageKey, logger,
		orders.WithClock(func() time.Time { return testNow }),
		orders.WithIDGenerator(func() string {
			ids++
			return fmt.Sprintf("new-%04d-abcdef", ids)
		}),
	)
	require.NoError(t, store.Load(context.Background()))

	runner := NewRunner(cfg, logger, store, printer.NewPrinter(cfg, logger))
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	runner.in = strings.NewReader(input)
	runner.out = out
	runner.errOut = errOut
	runner.now = func() time.Time { return testNow }

	return &harness{runner: runner, store: store, kv: kv, out: out, errOut: errOut}
}

func (h *harness) run(t *testing.T, args ...string) error {
	t.Helper()
	return h.runner.run(context.Background(), args)
}

func TestListShowsSeededOrders(t *testing.T) {
	h := newHarness(t, "")

	require.NoError(t, h.run(t, "list"))

	out := h.out.String()
	assert.Contains(t, out, "María García")
	assert.Contains(t, out, "2 grande nata")
	assert.Contains(t, out, "€45.00")
	assert.Contains(t, out, "pagado (bizum)")
	assert.Contains(t, out, "4 pedidos")
	assert.Less(t, strings.Index(out, "Ana Martínez"), strings.Index(out, "María García"), "sorted by delivery date")
}

func TestListFiltersAndJSON(t *testing.T) {
	h := newHarness(t, "")

	require.NoError(t, h.run(t, "--json", "list", "--size", "grande", "--sort", "cliente"))

	var views []orderView
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &views))
	require.Len(t, views, 2)
	assert.Equal(t, "Juan Pérez", views[0].CustomerName)
	assert.Equal(t, "María García", views[1].CustomerName)
	assert.True(t, views[1].Legacy)
	assert.Equal(t, "45.00", views[1].Price)
	require.Len(t, views[1].Items, 1)
	assert.Equal(t, "22.50", views[1].Items[0].UnitPrice)
}

func TestListRejectsUnknownFilters(t *testing.T) {
	h := newHarness(t, "")

	err := h.run(t, "list", "--size", "enorme")
	require.ErrorIs(t, err, orders.ErrUnknownSize)
	assert.Contains(t, err.Error(), "Tamaño desconocido")

	assert.ErrorIs(t, h.run(t, "list", "--sort", "precio"), errUsage)
}

func TestNewOrder(t *testing.T) {
	h := newHarness(t, "")

	err := h.run(t, "new",
		"--name", "Lucía Gómez",
		"--phone", "655000111",
		"--date", "mañana",
		"--item", "grande:nata+trufa:2",
		"--item", "mini:crema",
		"--method", "tarjeta",
	)
	require.NoError(t, err)
	assert.Contains(t, h.out.String(), "Pedido creado: new-0001")

	o, ok := h.store.Get("new-0001-abcdef")
	require.True(t, ok)
	assert.Equal(t, "2025-01-06", o.DeliveryDate)
	assert.True(t, o.Paid)
	require.NotNil(t, o.PaymentMethod)
	assert.Equal(t, roscon.PaymentCard, *o.PaymentMethod)

	items := orders.LineItems(o)
	require.Len(t, items, 2)
	assert.Equal(t, roscon.FillingCreamTruffle, items[0].Filling)
	assert.Equal(t, 1, items[1].Quantity)
	assert.True(t, o.Price.Equal(decimal.NewFromInt(62)), "price %s", o.Price)

	stored, err := orders.Decode(h.kv.data[config.Default().StorageKey])
	require.NoError(t, err)
	assert.Len(t, stored, 5)
}

func TestNewOrderValidation(t *testing.T) {
	h := newHarness(t, "")

	err := h.run(t, "new", "--name", "Sin Roscones", "--phone", "600", "--date", "2025-01-06")
	require.ErrorIs(t, err, orders.ErrNoItems)
	assert.Equal(t, "Añada al menos un roscón con --item tamaño:relleno:cantidad.", err.Error())

	err = h.run(t, "new", "--name", "X", "--phone", "600", "--date", "2025-01-06", "--item", "grande:nata:0")
	assert.ErrorIs(t, err, orders.ErrInvalidQuantity)

	err = h.run(t, "new", "--name", "X", "--phone", "600", "--date", "2025-01-06", "--item", "grande", "--paid")
	assert.ErrorIs(t, err, errUsage)

	assert.Len(t, h.store.List(), 4)
}

func TestEditConvertsLegacyToItemized(t *testing.T) {
	h := newHarness(t, "")

	require.NoError(t, h.run(t, "edit", "2", "--item", "mediano:trufa:2", "--notes", "Con velas"))

	o, ok := h.store.Get("2")
	require.True(t, ok)
	assert.IsType(t, orders.Itemized{}, o.Contents)
	assert.True(t, o.Price.Equal(decimal.NewFromInt(40)))
	assert.Equal(t, "Con velas", o.Notes)
	assert.Equal(t, "Juan Pérez", o.CustomerName)

	assert.ErrorIs(t, h.run(t, "edit", "2"), errUsage)
	assert.ErrorIs(t, h.run(t, "edit", "2", "--name", " "), orders.ErrCustomerRequired)
}

func TestStatusPayAndUnpay(t *testing.T) {
	h := newHarness(t, "")

	require.NoError(t, h.run(t, "status", "4", "listo"))
	require.NoError(t, h.run(t, "pay", "4", "efectivo"))

	o, _ := h.store.Get("4")
	assert.Equal(t, roscon.StatusReady, o.Status)
	assert.True(t, o.Paid)
	require.NotNil(t, o.PaymentMethod)
	assert.Equal(t, roscon.PaymentCash, *o.PaymentMethod)

	require.NoError(t, h.run(t, "unpay", "4"))
	o, _ = h.store.Get("4")
	assert.False(t, o.Paid)
	assert.Nil(t, o.PaymentMethod)

	assert.ErrorIs(t, h.run(t, "status", "4", "cancelado"), orders.ErrUnknownStatus)
	assert.ErrorIs(t, h.run(t, "pay", "4", "cheque"), orders.ErrUnknownPaymentMethod)
	assert.ErrorIs(t, h.run(t, "status", "99", "listo"), orders.ErrNotFound)
}

func TestDeleteAsksForConfirmation(t *testing.T) {
	h := newHarness(t, "n\ns\n")

	err := h.run(t, "delete", "1")
	assert.ErrorIs(t, err, errCancelled)
	assert.Len(t, h.store.List(), 4)
	assert.Contains(t, h.out.String(), "¿Eliminar el pedido de María García (2025-01-06)? (s/N)")

	require.NoError(t, h.run(t, "delete", "1"))
	assert.Len(t, h.store.List(), 3)

	require.NoError(t, h.run(t, "delete", "2", "--yes"))
	require.NoError(t, h.run(t, "--yes", "delete", "3"))
	assert.Len(t, h.store.List(), 1)
}

func TestResolveOrderByPrefix(t *testing.T) {
	h := newHarness(t, "")
	for i := 0; i < 2; i++ {
		require.NoError(t, h.run(t, "new", "--name", "P", "--phone", "1", "--date", "2025-01-06", "--item", "mini:nata"))
	}

	o, err := h.runner.resolveOrder([]string{"new-0002"}, "show <id>")
	require.NoError(t, err)
	assert.Equal(t, "new-0002-abcdef", o.ID)

	_, err = h.runner.resolveOrder([]string{"new-"}, "show <id>")
	assert.ErrorIs(t, err, errAmbiguousID)

	_, err = h.runner.resolveOrder(nil, "show <id>")
	assert.ErrorIs(t, err, errUsage)
}

func TestReports(t *testing.T) {
	h := newHarness(t, "")

	require.NoError(t, h.run(t, "plan"))
	assert.Contains(t, h.out.String(), "Roscones pendientes: 12")
	assert.Contains(t, h.out.String(), "GRANDE\n  nata: 2\n  trufa: 1\n")

	h.out.Reset()
	require.NoError(t, h.run(t, "matrix"))
	assert.True(t, strings.HasPrefix(h.out.String(), "tamaño"))

	h.out.Reset()
	require.NoError(t, h.run(t, "deliveries"))
	assert.Contains(t, h.out.String(), "2025-01-05")

	h.out.Reset()
	require.NoError(t, h.run(t, "--json", "plan"))
	var plan map[string]any
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &plan))
	assert.EqualValues(t, 12, plan["pending_units"])
}

func TestReportsJSONMoneyHasTwoDecimals(t *testing.T) {
	h := newHarness(t, "")

	require.NoError(t, h.run(t, "--json", "plan"))
	var plan aggregatesView
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &plan))
	assert.Equal(t, "142.00", plan.TotalRevenue)
	require.Len(t, plan.ByDeliveryDate, 3)
	assert.Equal(t, dateRollupView{Date: "2025-01-06", Orders: 2, Units: 3, Revenue: "70.00"}, plan.ByDeliveryDate[1])

	h.out.Reset()
	require.NoError(t, h.run(t, "--json", "deliveries"))
	var rollups []dateRollupView
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &rollups))
	assert.Equal(t, []dateRollupView{
		{Date: "2025-01-05", Orders: 1, Units: 3, Revenue: "42.00"},
		{Date: "2025-01-06", Orders: 2, Units: 3, Revenue: "70.00"},
		{Date: "2025-01-07", Orders: 1, Units: 6, Revenue: "30.00"},
	}, rollups)
}

func TestDashboard(t *testing.T) {
	h := newHarness(t, "")

	require.NoError(t, h.run(t, "dashboard"))
	out := h.out.String()
	assert.Contains(t, out, "- pedidos: 4 (12 roscones)")
	assert.Contains(t, out, "- ingresos: €142.00")
	assert.Contains(t, out, "Entregas hoy:\n- 3 Ana Martínez")

	h.out.Reset()
	require.NoError(t, h.run(t, "--json", "dashboard"))
	var view dashboardView
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &view))
	assert.Equal(t, "142.00", view.TotalRevenue)
	assert.Len(t, view.DueTomorrow, 2)
}

func TestCSVExport(t *testing.T) {
	h := newHarness(t, "")

	require.NoError(t, h.run(t, "csv"))
	lines := strings.Split(strings.TrimSuffix(h.out.String(), "\n"), "\n")
	assert.Len(t, lines, 5)

	path := filepath.Join(t.TempDir(), "pedidos.csv")
	h.out.Reset()
	require.NoError(t, h.run(t, "csv", "--out", path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), `"id","cliente"`))
	assert.Contains(t, h.out.String(), path)
}

func TestTicketAndPrint(t *testing.T) {
	h := newHarness(t, "")

	require.NoError(t, h.run(t, "ticket", "1", "--width", "20"))
	assert.Contains(t, h.out.String(), "PEDIDO ROSCÓN\n")
	assert.Contains(t, h.out.String(), "Pagado (bizum)")

	err := h.run(t, "print", "ticket", "1")
	require.ErrorIs(t, err, printer.ErrNoTransport)
	assert.Contains(t, err.Error(), "--printer-device")

	device := filepath.Join(t.TempDir(), "lp0")
	h.out.Reset()
	require.NoError(t, h.run(t, "--printer-device", device, "print", "plan"))
	data, err := os.ReadFile(device)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte{0x1b, 0x40}))
	assert.Contains(t, string(data), "PLAN DE PRODUCCIÓN")
	assert.Contains(t, h.out.String(), "Enviado a la impresora.")

	assert.ErrorIs(t, h.run(t, "print", "factura"), errUsage)
}

func TestShowMarksItemsOutsidePriceTable(t *testing.T) {
	h := newHarness(t, "")
	offTable := roscon.Filling("nata, trufa, crema, chocolate")

	o, ok := h.store.Get("2")
	require.True(t, ok)
	o.Contents = orders.Itemized{Items: []orders.LineItem{orders.NewLineItem(roscon.SizeLarge, offTable, 1)}}
	_, err := h.store.Update(context.Background(), o)
	require.NoError(t, err)

	require.NoError(t, h.run(t, "show", "2"))
	assert.Contains(t, h.out.String(), "- 1 x grande nata, trufa, crema, chocolate a €30.00 = €30.00 (fuera de tarifa)\n")

	h.out.Reset()
	require.NoError(t, h.run(t, "show", "1"))
	assert.NotContains(t, h.out.String(), "fuera de tarifa")

	h.out.Reset()
	require.NoError(t, h.run(t, "--json", "show", "2"))
	var view orderView
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &view))
	require.Len(t, view.Items, 1)
	assert.True(t, view.Items[0].OffTable)
}

func TestUnknownCommand(t *testing.T) {
	h := newHarness(t, "")

	err := h.run(t, "hornear")
	require.ErrorIs(t, err, errUnknownCommand)
	assert.Equal(t, "Comando desconocido: hornear. Escriba 'ayuda'.", err.Error())
}

func TestREPL(t *testing.T) {
	input := strings.Join([]string{
		`new --name "Pilar Sanz" --phone 699 --date 2025-01-08 --item "mediano:nata, crema:2"`,
		"status new-0001 preparando",
		"nada",
		"history",
		"salir",
		"list",
	}, "\n")
	h := newHarness(t, input)

	require.NoError(t, h.run(t))

	o, ok := h.store.Get("new-0001-abcdef")
	require.True(t, ok)
	assert.Equal(t, "Pilar Sanz", o.CustomerName)
	assert.Equal(t, roscon.FillingCreamCustard, orders.LineItems(o)[0].Filling)
	assert.Equal(t, roscon.StatusPreparing, o.Status)

	assert.Contains(t, h.errOut.String(), "Comando desconocido: nada")
	assert.Contains(t, h.out.String(), "3) nada")
	assert.NotContains(t, h.out.String(), "pedidos\n", "input after salir is ignored")
}

func TestREPLEndsOnEOF(t *testing.T) {
	h := newHarness(t, "help\n")

	require.NoError(t, h.run(t))
	assert.Contains(t, h.out.String(), "Comandos:")
}

func TestSplitArgs(t *testing.T) {
	args, err := splitArgs(`new --name "María José" --item 'grande:nata, trufa:2' --notes sin\ pasas`)
	require.NoError(t, err)
	assert.Equal(t, []string{"new", "--name", "María José", "--item", "grande:nata, trufa:2", "--notes", "sin pasas"}, args)

	_, err = splitArgs(`new --name "María`)
	assert.ErrorIs(t, err, errUnterminatedQuote)
}

func TestParseItem(t *testing.T) {
	item, err := parseItem("Pequeño:Nata + Trufa:3")
	require.NoError(t, err)
	assert.Equal(t, roscon.SizeSmall, item.Size)
	assert.Equal(t, roscon.FillingCreamTruffle, item.Filling)
	assert.Equal(t, 3, item.Quantity)
	assert.True(t, item.Total.Equal(decimal.NewFromInt(54)))

	item, err = parseItem("pequeno:sin relleno")
	require.NoError(t, err)
	assert.Equal(t, 1, item.Quantity)

	_, err = parseItem("grande:pistacho:1")
	assert.ErrorIs(t, err, orders.ErrUnknownFilling)
	_, err = parseItem("grande:nata:dos")
	assert.ErrorIs(t, err, orders.ErrInvalidQuantity)
	_, err = parseItem("grande:nata:1:extra")
	assert.ErrorIs(t, err, errUsage)
}

func TestCommandHistory(t *testing.T) {
	h := NewCommandHistory(2)
	h.Append("list")
	h.Append("plan")
	h.Append("csv")

	assert.Equal(t, []string{"plan", "csv"}, h.Entries())
	h.Clear()
	assert.Nil(t, h.Entries())
}
