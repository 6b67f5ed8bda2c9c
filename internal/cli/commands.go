package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"roscon_orders/internal/orders"
	"roscon_orders/internal/report"
	"roscon_orders/internal/roscon"

	"go.uber.org/zap"
)

var (
	errUnknownCommand = errors.New("unknown command")
	errUsage          = errors.New("usage")
	errAmbiguousID    = errors.New("ambiguous order id")
	errCancelled      = errors.New("cancelled by user")
)

type command struct {
	name    string
	aliases []string
	usage   string
	run     func(ctx context.Context, args []string) error
}

func (r *Runner) commands() []command {
	return []command{
		{name: "list", aliases: []string{"pedidos", "ls"}, usage: "list [--search texto] [--size tamaño] [--filling relleno] [--status estado] [--sort entrega|cliente|creado]", run: r.cmdList},
		{name: "show", aliases: []string{"ver"}, usage: "show <id>", run: r.cmdShow},
		{name: "new", aliases: []string{"nuevo"}, usage: "new --name N --phone T --date AAAA-MM-DD --item tamaño:relleno:cantidad [--item ...] [--notes X] [--paid --method M]", run: r.cmdNew},
		{name: "edit", aliases: []string{"editar"}, usage: "edit <id> [--name N] [--phone T] [--date D] [--notes X] [--item ...] [--status E]", run: r.cmdEdit},
		{name: "status", aliases: []string{"estado"}, usage: "status <id> pendiente|preparando|listo|entregado", run: r.cmdStatus},
		{name: "pay", aliases: []string{"pagar"}, usage: "pay <id> efectivo|tarjeta|transferencia|bizum", run: r.cmdPay},
		{name: "unpay", usage: "unpay <id>", run: r.cmdUnpay},
		{name: "delete", aliases: []string{"borrar", "rm"}, usage: "delete <id> [--yes]", run: r.cmdDelete},
		{name: "plan", aliases: []string{"produccion"}, usage: "plan", run: r.cmdPlan},
		{name: "matrix", aliases: []string{"matriz"}, usage: "matrix", run: r.cmdMatrix},
		{name: "deliveries", aliases: []string{"entregas"}, usage: "deliveries", run: r.cmdDeliveries},
		{name: "dashboard", aliases: []string{"resumen"}, usage: "dashboard", run: r.cmdDashboard},
		{name: "csv", aliases: []string{"exportar"}, usage: "csv [--out fichero.csv]", run: r.cmdCSV},
		{name: "ticket", usage: "ticket <id> [--width N]", run: r.cmdTicket},
		{name: "print", aliases: []string{"imprimir"}, usage: "print plan | print ticket <id>", run: r.cmdPrint},
		{name: "help", aliases: []string{"ayuda"}, usage: "help", run: r.cmdHelp},
	}
}

func (r *Runner) lookup(name string) (command, bool) {
	name = strings.ToLower(name)
	for _, cmd := range r.commands() {
		if cmd.name == name {
			return cmd, true
		}
		for _, alias := range cmd.aliases {
			if alias == name {
				return cmd, true
			}
		}
	}
	return command{}, false
}

func (r *Runner) dispatch(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return nil
	}
	cmd, ok := r.lookup(args[0])
	if !ok {
		return fmt.Errorf("%w: %s", errUnknownCommand, args[0])
	}
	return trackCommand(r.logger, cmd.name, args[1:], func() error {
		return cmd.run(ctx, args[1:])
	})
}

func (r *Runner) writeHelp(w io.Writer) {
	fmt.Fprintln(w, "Comandos:")
	for _, cmd := range r.commands() {
		fmt.Fprintf(w, "  %s\n", cmd.usage)
	}
	fmt.Fprintln(w, "  history")
	fmt.Fprintln(w, "  salir")
}

func (r *Runner) cmdHelp(_ context.Context, _ []string) error {
	r.writeHelp(r.out)
	return nil
}

func (r *Runner) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(r.errOut)
	return fs
}

func (r *Runner) cmdList(_ context.Context, args []string) error {
	var search, size, filling, status, sortBy string

	fs := r.newFlagSet("list")
	fs.StringVar(&search, "search", "", "Customer name or phone")
	fs.StringVar(&size, "size", "", "Only orders with this size")
	fs.StringVar(&filling, "filling", "", "Only orders with this filling")
	fs.StringVar(&status, "status", "", "Only orders in this status")
	fs.StringVar(&sortBy, "sort", "", "entrega, cliente or creado")
	if err := fs.Parse(args); err != nil {
		return err
	}

	query := orders.Query{Search: search}
	var err error
	if size != "" {
		if query.Size, err = parseSize(size); err != nil {
			return err
		}
	}
	if filling != "" {
		if query.Filling, err = parseFilling(filling); err != nil {
			return err
		}
	}
	if status != "" {
		if query.Status, err = parseStatus(status); err != nil {
			return err
		}
	}
	key, ok := orders.ParseSortKey(sortBy)
	if !ok {
		return fmt.Errorf("%w: list --sort entrega|cliente|creado", errUsage)
	}
	query.SortBy = key

	list := query.Apply(r.store.List())
	if r.options.JSON {
		return r.writeJSON(orderViews(list, r.now()))
	}
	r.writeOrderTable(list)
	return nil
}

func (r *Runner) cmdShow(_ context.Context, args []string) error {
	o, err := r.resolveOrder(args, "show <id>")
	if err != nil {
		return err
	}
	if r.options.JSON {
		return r.writeJSON(newOrderView(o, r.now()))
	}
	r.writeOrderDetail(o)
	return nil
}

func (r *Runner) cmdNew(ctx context.Context, args []string) error {
	var form orderForm
	fs := r.newFlagSet("new")
	form.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: %s", errUsage, "new no admite argumentos sueltos")
	}

	in, err := form.input(r.now())
	if err != nil {
		return err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	o, err := r.store.Create(ctx, in)
	if err != nil {
		return err
	}
	if r.options.JSON {
		return r.writeJSON(newOrderView(o, r.now()))
	}
	fmt.Fprintf(r.out, "Pedido creado: %s (%s, %s)\n", shortID(o.ID), o.CustomerName, report.Money(o.Price))
	return nil
}

func (r *Runner) cmdEdit(ctx context.Context, args []string) error {
	id, rest := splitID(args)
	o, err := r.resolveOrder([]string{id}, "edit <id> [flags]")
	if err != nil {
		return err
	}

	var form orderForm
	fs := r.newFlagSet("edit")
	form.register(fs)
	if err := fs.Parse(rest); err != nil {
		return err
	}
	visited := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { visited[f.Name] = true })
	if len(visited) == 0 {
		return fmt.Errorf("%w: edit <id> [flags]", errUsage)
	}

	edited, err := form.apply(o, visited, r.now())
	if err != nil {
		return err
	}
	edited, err = orders.ValidateOrder(edited)
	if err != nil {
		return err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	if _, err := r.store.Update(ctx, edited); err != nil {
		return err
	}
	updated, _ := r.store.Get(o.ID)
	if r.options.JSON {
		return r.writeJSON(newOrderView(updated, r.now()))
	}
	fmt.Fprintf(r.out, "Pedido actualizado: %s (%s, %s)\n", shortID(updated.ID), updated.CustomerName, report.Money(updated.Price))
	return nil
}

func (r *Runner) cmdStatus(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: status <id> <estado>", errUsage)
	}
	o, err := r.resolveOrder(args[:1], "status <id> <estado>")
	if err != nil {
		return err
	}
	status, err := parseStatus(args[1])
	if err != nil {
		return err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	if _, err := r.store.SetStatus(ctx, o.ID, status); err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Pedido %s: %s -> %s\n", shortID(o.ID), o.Status, status)
	return nil
}

func (r *Runner) cmdPay(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: pay <id> <método>", errUsage)
	}
	o, err := r.resolveOrder(args[:1], "pay <id> <método>")
	if err != nil {
		return err
	}
	method, err := parsePaymentMethod(args[1])
	if err != nil {
		return err
	}

	o.Paid = true
	o.PaymentMethod = &method
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	if _, err := r.store.Update(ctx, o); err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Pedido %s pagado (%s)\n", shortID(o.ID), method)
	return nil
}

func (r *Runner) cmdUnpay(ctx context.Context, args []string) error {
	o, err := r.resolveOrder(args, "unpay <id>")
	if err != nil {
		return err
	}

	o.Paid = false
	o.PaymentMethod = nil
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	if _, err := r.store.Update(ctx, o); err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Pedido %s marcado como pendiente de pago\n", shortID(o.ID))
	return nil
}

func (r *Runner) cmdDelete(ctx context.Context, args []string) error {
	id, rest := splitID(args)
	var yes bool
	fs := r.newFlagSet("delete")
	fs.BoolVar(&yes, "yes", false, "Do not ask for confirmation")
	if err := fs.Parse(rest); err != nil {
		return err
	}
	o, err := r.resolveOrder([]string{id}, "delete <id>")
	if err != nil {
		return err
	}

	question := fmt.Sprintf("¿Eliminar el pedido de %s (%s)?", o.CustomerName, o.DeliveryDate)
	if !yes && !r.confirm(question) {
		return errCancelled
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	if _, err := r.store.Remove(ctx, o.ID); err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Pedido %s eliminado\n", shortID(o.ID))
	return nil
}

func (r *Runner) cmdPlan(_ context.Context, _ []string) error {
	a := report.Compute(r.store.List())
	if r.options.JSON {
		return r.writeJSON(newAggregatesView(a))
	}
	fmt.Fprint(r.out, report.ProductionPlanText(a))
	return nil
}

func (r *Runner) cmdMatrix(_ context.Context, _ []string) error {
	a := report.Compute(r.store.List())
	if r.options.JSON {
		return r.writeJSON(a.Matrix)
	}
	fmt.Fprint(r.out, report.MatrixText(a))
	return nil
}

func (r *Runner) cmdDeliveries(_ context.Context, _ []string) error {
	a := report.Compute(r.store.List())
	if r.options.JSON {
		return r.writeJSON(dateRollupViews(a))
	}
	fmt.Fprint(r.out, report.DeliveryText(a))
	return nil
}

func (r *Runner) cmdDashboard(_ context.Context, _ []string) error {
	now := r.now()
	d := report.Summarize(r.store.List(), now)
	if r.options.JSON {
		return r.writeJSON(newDashboardView(d, now))
	}
	r.writeDashboard(d)
	return nil
}

func (r *Runner) cmdCSV(_ context.Context, args []string) error {
	var out string
	fs := r.newFlagSet("csv")
	fs.StringVar(&out, "out", "", "Write to this file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	data := report.CSV(r.store.List())
	if out == "" {
		fmt.Fprint(r.out, data)
		return nil
	}
	if err := os.WriteFile(out, []byte(data), 0o644); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	r.logger.Info("csv exported", zap.String("path", out))
	fmt.Fprintf(r.out, "CSV guardado en %s\n", out)
	return nil
}

func (r *Runner) cmdTicket(_ context.Context, args []string) error {
	id, rest := splitID(args)
	width := r.cfg.TicketWidth
	fs := r.newFlagSet("ticket")
	fs.IntVar(&width, "width", width, "Characters per line")
	if err := fs.Parse(rest); err != nil {
		return err
	}
	o, err := r.resolveOrder([]string{id}, "ticket <id>")
	if err != nil {
		return err
	}

	text := report.Ticket(o, width)
	if r.options.JSON {
		return r.writeJSON(map[string]string{"id": o.ID, "ticket": text})
	}
	fmt.Fprintln(r.out, text)
	return nil
}

func (r *Runner) cmdPrint(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: print plan | print ticket <id>", errUsage)
	}

	var text string
	switch strings.ToLower(args[0]) {
	case "plan":
		text = report.ProductionPlanText(report.Compute(r.store.List()))
	case "ticket":
		o, err := r.resolveOrder(args[1:], "print ticket <id>")
		if err != nil {
			return err
		}
		text = report.Ticket(o, r.cfg.TicketWidth)
	default:
		return fmt.Errorf("%w: print plan | print ticket <id>", errUsage)
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.printer.Print(ctx, text); err != nil {
		return err
	}
	fmt.Fprintln(r.out, "Enviado a la impresora.")
	return nil
}

// resolveOrder finds the order named by args[0], by full id or by a prefix
// that matches exactly one order.
func (r *Runner) resolveOrder(args []string, usage string) (orders.Order, error) {
	if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
		return orders.Order{}, fmt.Errorf("%w: %s", errUsage, usage)
	}
	id := strings.TrimSpace(args[0])
	if o, ok := r.store.Get(id); ok {
		return o, nil
	}

	var matches []orders.Order
	for _, o := range r.store.List() {
		if strings.HasPrefix(o.ID, id) {
			matches = append(matches, o)
		}
	}
	switch len(matches) {
	case 0:
		return orders.Order{}, fmt.Errorf("%w: %s", orders.ErrNotFound, id)
	case 1:
		return matches[0], nil
	default:
		return orders.Order{}, fmt.Errorf("%w: %s (%d pedidos)", errAmbiguousID, id, len(matches))
	}
}

// splitID takes a leading positional id so flags may follow it.
func splitID(args []string) (string, []string) {
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		return args[0], args[1:]
	}
	return "", args
}

func parseStatus(value string) (roscon.Status, error) {
	status := roscon.Status(strings.ToLower(strings.TrimSpace(value)))
	if !status.Valid() {
		return "", fmt.Errorf("%w: %q", orders.ErrUnknownStatus, value)
	}
	return status, nil
}

func parsePaymentMethod(value string) (roscon.PaymentMethod, error) {
	method := roscon.PaymentMethod(strings.ToLower(strings.TrimSpace(value)))
	if !method.Valid() {
		return "", fmt.Errorf("%w: %q", orders.ErrUnknownPaymentMethod, value)
	}
	return method, nil
}

func parseSize(value string) (roscon.Size, error) {
	size := roscon.Size(strings.ToLower(strings.TrimSpace(value)))
	if size == "pequeno" {
		size = roscon.SizeSmall
	}
	if !size.Valid() {
		return "", fmt.Errorf("%w: %q", orders.ErrUnknownSize, value)
	}
	return size, nil
}

// parseFilling accepts "nata, trufa", "nata,trufa" and "nata+trufa".
func parseFilling(value string) (roscon.Filling, error) {
	parts := strings.FieldsFunc(strings.ToLower(value), func(r rune) bool {
		return r == ',' || r == '+'
	})
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}
	filling := roscon.Filling(strings.Join(parts, ", "))
	if !filling.Valid() {
		return "", fmt.Errorf("%w: %q", orders.ErrUnknownFilling, value)
	}
	return filling, nil
}
