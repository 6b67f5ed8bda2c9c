package report

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"roscon_orders/internal/roscon"

	"github.com/shopspring/decimal"
)

func Money(d decimal.Decimal) string {
	return "€" + d.StringFixed(2)
}

// ProductionPlanText renders the pending production: totals by size, totals
// by filling, then the non-zero cells of the matrix under each size.
func ProductionPlanText(a Aggregates) string {
	var b strings.Builder

	b.WriteString("PLAN DE PRODUCCIÓN\n")
	fmt.Fprintf(&b, "Roscones pendientes: %d\n", a.PendingUnits)

	b.WriteString("\nPor tamaño\n")
	for _, size := range roscon.Sizes {
		fmt.Fprintf(&b, "  %s: %d\n", size, a.UnitsBySize[size])
	}

	b.WriteString("\nPor relleno\n")
	for _, filling := range roscon.ReportFillings {
		fmt.Fprintf(&b, "  %s: %d\n", filling, a.UnitsByFilling[filling])
	}

	b.WriteString("\nDetalle\n")
	empty := true
	for _, size := range roscon.Sizes {
		var cells []string
		for _, filling := range roscon.ReportFillings {
			if n := a.Matrix[size][filling]; n > 0 {
				cells = append(cells, fmt.Sprintf("  %s: %d\n", filling, n))
			}
		}
		if len(cells) == 0 {
			continue
		}
		empty = false
		fmt.Fprintf(&b, "%s\n", strings.ToUpper(string(size)))
		for _, cell := range cells {
			b.WriteString(cell)
		}
	}
	if empty {
		b.WriteString("  (sin producción pendiente)\n")
	}

	if a.Untracked > 0 {
		fmt.Fprintf(&b, "\nAtención: %d roscones pendientes fuera del informe por relleno", a.Untracked)
		var parts []string
		for _, size := range roscon.Sizes {
			if n := a.UntrackedBySize[size]; n > 0 {
				parts = append(parts, fmt.Sprintf("%s=%d", size, n))
			}
		}
		if len(parts) > 0 {
			fmt.Fprintf(&b, " (%s)", strings.Join(parts, ", "))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// MatrixText renders the full size x filling table, zero cells as "-".
func MatrixText(a Aggregates) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)

	header := []string{"tamaño"}
	for _, filling := range roscon.ReportFillings {
		header = append(header, string(filling))
	}
	header = append(header, "total")
	fmt.Fprintln(w, strings.Join(header, "\t"))

	for _, size := range roscon.Sizes {
		row := []string{string(size)}
		for _, filling := range roscon.ReportFillings {
			row = append(row, cell(a.Matrix[size][filling]))
		}
		row = append(row, cell(a.UnitsBySize[size]))
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}

	footer := []string{"total"}
	for _, filling := range roscon.ReportFillings {
		footer = append(footer, cell(a.UnitsByFilling[filling]))
	}
	footer = append(footer, cell(a.PendingUnits))
	fmt.Fprintln(w, strings.Join(footer, "\t"))

	_ = w.Flush()
	return b.String()
}

func cell(n int) string {
	if n == 0 {
		return "-"
	}
	return fmt.Sprintf("%d", n)
}

// DeliveryText lists orders, units and revenue per delivery date, oldest first.
func DeliveryText(a Aggregates) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "fecha\tpedidos\troscones\tingresos")
	for _, date := range a.DeliveryDates() {
		r := a.ByDeliveryDate[date]
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", date, r.Orders, r.Units, Money(r.Revenue))
	}
	fmt.Fprintf(w, "total\t\t%d\t%s\n", a.TotalUnits, Money(a.TotalRevenue))

	_ = w.Flush()
	return b.String()
}
