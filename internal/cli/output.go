package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"roscon_orders/internal/orders"
	"roscon_orders/internal/report"
	"roscon_orders/internal/roscon"
)

type itemView struct {
	Size      string `json:"size"`
	Filling   string `json:"filling"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Total     string `json:"total"`
	OffTable  bool   `json:"off_table,omitempty"`
}

type orderView struct {
	ID            string     `json:"id"`
	CustomerName  string     `json:"customer_name"`
	Phone         string     `json:"phone"`
	DeliveryDate  string     `json:"delivery_date"`
	Items         []itemView `json:"items"`
	Units         int        `json:"units"`
	Price         string     `json:"price"`
	Status        string     `json:"status"`
	Paid          bool       `json:"paid"`
	PaymentMethod string     `json:"payment_method,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	CreatedAt     string     `json:"created_at"`
	Urgent        bool       `json:"urgent"`
	Legacy        bool       `json:"legacy,omitempty"`
}

func newOrderView(o orders.Order, now time.Time) orderView {
	items := orders.LineItems(o)
	view := orderView{
		ID:           o.ID,
		CustomerName: o.CustomerName,
		Phone:        o.Phone,
		DeliveryDate: o.DeliveryDate,
		Items:        make([]itemView, 0, len(items)),
		Units:        o.Units(),
		Price:        o.Price.StringFixed(2),
		Status:       string(o.Status),
		Paid:         o.Paid,
		Notes:        o.Notes,
		CreatedAt:    o.CreatedAt.Format(time.RFC3339),
		Urgent:       o.Urgent(now),
	}
	if _, ok := o.Contents.(orders.Legacy); ok {
		view.Legacy = true
	}
	if o.PaymentMethod != nil {
		view.PaymentMethod = string(*o.PaymentMethod)
	}
	for _, item := range items {
		view.Items = append(view.Items, itemView{
			Size:      string(item.Size),
			Filling:   string(item.Filling),
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.StringFixed(2),
			Total:     item.Total.StringFixed(2),
			OffTable:  !roscon.Tabulated(item.Filling, item.Size),
		})
	}
	return view
}

func orderViews(list []orders.Order, now time.Time) []orderView {
	views := make([]orderView, 0, len(list))
	for _, o := range list {
		views = append(views, newOrderView(o, now))
	}
	return views
}

type dashboardView struct {
	TotalOrders   int         `json:"total_orders"`
	TotalUnits    int         `json:"total_units"`
	TotalRevenue  string      `json:"total_revenue"`
	PendingOrders int         `json:"pending_orders"`
	PaidOrders    int         `json:"paid_orders"`
	UnpaidOrders  int         `json:"unpaid_orders"`
	UnpaidAmount  string      `json:"unpaid_amount"`
	DueToday      []orderView `json:"due_today"`
	DueTomorrow   []orderView `json:"due_tomorrow"`
	Recent        []orderView `json:"recent"`
}

func newDashboardView(d report.Dashboard, now time.Time) dashboardView {
	return dashboardView{
		TotalOrders:   d.TotalOrders,
		TotalUnits:    d.TotalUnits,
		TotalRevenue:  d.TotalRevenue.StringFixed(2),
		PendingOrders: d.PendingOrders,
		PaidOrders:    d.PaidOrders,
		UnpaidOrders:  d.UnpaidOrders,
		UnpaidAmount:  d.UnpaidAmount.StringFixed(2),
		DueToday:      orderViews(d.DueToday, now),
		DueTomorrow:   orderViews(d.DueTomorrow, now),
		Recent:        orderViews(d.Recent, now),
	}
}

type dateRollupView struct {
	Date    string `json:"date"`
	Orders  int    `json:"orders"`
	Units   int    `json:"units"`
	Revenue string `json:"revenue"`
}

type aggregatesView struct {
	TotalRevenue    string                                 `json:"total_revenue"`
	TotalUnits      int                                    `json:"total_units"`
	PendingUnits    int                                    `json:"pending_units"`
	UnitsBySize     map[roscon.Size]int                    `json:"units_by_size"`
	UnitsByFilling  map[roscon.Filling]int                 `json:"units_by_filling"`
	Matrix          map[roscon.Size]map[roscon.Filling]int `json:"matrix"`
	Untracked       int                                    `json:"untracked"`
	UntrackedBySize map[roscon.Size]int                    `json:"untracked_by_size,omitempty"`
	ByDeliveryDate  []dateRollupView                       `json:"by_delivery_date"`
}

func newAggregatesView(a report.Aggregates) aggregatesView {
	return aggregatesView{
		TotalRevenue:    a.TotalRevenue.StringFixed(2),
		TotalUnits:      a.TotalUnits,
		PendingUnits:    a.PendingUnits,
		UnitsBySize:     a.UnitsBySize,
		UnitsByFilling:  a.UnitsByFilling,
		Matrix:          a.Matrix,
		Untracked:       a.Untracked,
		UntrackedBySize: a.UntrackedBySize,
		ByDeliveryDate:  dateRollupViews(a),
	}
}

// dateRollupViews lists the delivery rollups by ascending date.
func dateRollupViews(a report.Aggregates) []dateRollupView {
	dates := a.DeliveryDates()
	views := make([]dateRollupView, 0, len(dates))
	for _, date := range dates {
		rollup := a.ByDeliveryDate[date]
		views = append(views, dateRollupView{
			Date:    date,
			Orders:  rollup.Orders,
			Units:   rollup.Units,
			Revenue: rollup.Revenue.StringFixed(2),
		})
	}
	return views
}

func (r *Runner) writeJSON(payload any) error {
	enc := json.NewEncoder(r.out)
	return enc.Encode(payload)
}

func (r *Runner) writeOrderTable(list []orders.Order) {
	if len(list) == 0 {
		fmt.Fprintln(r.out, "- (no hay pedidos)")
		return
	}

	now := r.now()
	tw := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tENTREGA\tCLIENTE\tTELÉFONO\tROSCONES\tPRECIO\tESTADO\tPAGO\t")
	for _, o := range list {
		due := o.DeliveryDate
		if o.Urgent(now) {
			due += " !"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			shortID(o.ID),
			due,
			o.CustomerName,
			o.Phone,
			itemsSummary(o),
			report.Money(o.Price),
			o.Status,
			paymentLabel(o),
		)
	}
	_ = tw.Flush()
	fmt.Fprintf(r.out, "%d pedidos\n", len(list))
}

func (r *Runner) writeOrderDetail(o orders.Order) {
	fmt.Fprintf(r.out, "Pedido %s\n", o.ID)
	fmt.Fprintf(r.out, "- cliente: %s\n", o.CustomerName)
	fmt.Fprintf(r.out, "- teléfono: %s\n", o.Phone)
	fmt.Fprintf(r.out, "- entrega: %s", o.DeliveryDate)
	if o.Urgent(r.now()) {
		fmt.Fprint(r.out, " (urgente)")
	}
	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "- estado: %s\n", o.Status)
	fmt.Fprintf(r.out, "- pago: %s\n", paymentLabel(o))

	items := orders.LineItems(o)
	fmt.Fprintln(r.out, "\nRoscones:")
	if len(items) == 0 {
		fmt.Fprintln(r.out, "- (sin roscones)")
	}
	for _, item := range items {
		fmt.Fprintf(r.out, "- %d x %s %s a %s = %s", item.Quantity, item.Size, item.Filling, report.Money(item.UnitPrice), report.Money(item.Total))
		if !roscon.Tabulated(item.Filling, item.Size) {
			fmt.Fprint(r.out, " (fuera de tarifa)")
		}
		fmt.Fprintln(r.out)
	}
	fmt.Fprintf(r.out, "\nTotal: %s\n", report.Money(o.Price))

	if o.Notes != "" {
		fmt.Fprintf(r.out, "Notas: %s\n", o.Notes)
	}
	fmt.Fprintf(r.out, "Creado: %s\n", o.CreatedAt.Local().Format("2006-01-02 15:04"))
}

func (r *Runner) writeDashboard(d report.Dashboard) {
	fmt.Fprintln(r.out, "Resumen:")
	fmt.Fprintf(r.out, "- pedidos: %d (%d roscones)\n", d.TotalOrders, d.TotalUnits)
	fmt.Fprintf(r.out, "- ingresos: %s\n", report.Money(d.TotalRevenue))
	fmt.Fprintf(r.out, "- pendientes: %d\n", d.PendingOrders)
	fmt.Fprintf(r.out, "- pagados: %d, sin pagar: %d (%s)\n", d.PaidOrders, d.UnpaidOrders, report.Money(d.UnpaidAmount))

	r.writeDueList("Entregas hoy", d.DueToday)
	r.writeDueList("Entregas mañana", d.DueTomorrow)

	fmt.Fprintln(r.out, "\nÚltimos pedidos:")
	if len(d.Recent) == 0 {
		fmt.Fprintln(r.out, "- (no hay pedidos)")
	}
	for _, o := range d.Recent {
		fmt.Fprintf(r.out, "- %s %s, %s, %s\n", shortID(o.ID), o.CustomerName, itemsSummary(o), report.Money(o.Price))
	}
}

func (r *Runner) writeDueList(title string, list []orders.Order) {
	fmt.Fprintf(r.out, "\n%s:\n", title)
	if len(list) == 0 {
		fmt.Fprintln(r.out, "- (ninguna)")
		return
	}
	for _, o := range list {
		fmt.Fprintf(r.out, "- %s %s (%s), %s [%s]\n", shortID(o.ID), o.CustomerName, o.Phone, itemsSummary(o), o.Status)
	}
}

func itemsSummary(o orders.Order) string {
	items := orders.LineItems(o)
	if len(items) == 0 {
		return "-"
	}
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = fmt.Sprintf("%d %s %s", item.Quantity, item.Size, item.Filling)
	}
	return strings.Join(parts, "; ")
}

func paymentLabel(o orders.Order) string {
	if !o.Paid {
		return "pendiente"
	}
	if o.PaymentMethod == nil {
		return "pagado"
	}
	return "pagado (" + string(*o.PaymentMethod) + ")"
}
