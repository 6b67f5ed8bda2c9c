package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"roscon_orders/internal/config"
	"roscon_orders/internal/orders"
	"roscon_orders/internal/printer"

	"go.uber.org/zap"
)

type Runner struct {
	options Options
	cfg     config.Config
	logger  *zap.Logger
	store   *orders.Store
	printer *printer.Printer
	history *CommandHistory

	in      io.Reader
	out     io.Writer
	errOut  io.Writer
	scanner *bufio.Scanner
	now     func() time.Time
}

func NewRunner(cfg config.Config, logger *zap.Logger, store *orders.Store, p *printer.Printer) *Runner {
	logger = logger.Named("cli")
	opts := Options{
		PrinterURL:    cfg.PrinterURL,
		PrinterDevice: cfg.PrinterDevice,
		Timeout:       cfg.Timeout,
	}

	return &Runner{
		options: opts,
		cfg:     cfg,
		logger:  logger,
		store:   store,
		printer: p,
		history: NewCommandHistory(defaultHistoryMaxEntries),
		in:      os.Stdin,
		out:     os.Stdout,
		errOut:  os.Stderr,
		now:     time.Now,
	}
}

func (r *Runner) Execute() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	return r.run(ctx, os.Args[1:])
}

func (r *Runner) run(ctx context.Context, args []string) error {
	var timeoutSeconds int

	fs := flag.NewFlagSet("roscon", flag.ContinueOnError)
	fs.SetOutput(r.errOut)
	fs.Usage = func() {
		fmt.Fprintf(r.errOut, "Uso: %s [flags] [comando [argumentos]]\n", fs.Name())
		fs.PrintDefaults()
		fmt.Fprintln(r.errOut)
		r.writeHelp(r.errOut)
	}

	fs.BoolVar(&r.options.JSON, "json", false, "Output JSON format")
	fs.BoolVar(&r.options.Yes, "yes", false, "Do not ask for confirmation")
	fs.StringVar(&r.options.PrinterURL, "printer-url", r.options.PrinterURL, "ESC/POS HTTP bridge URL (PRINTER_URL)")
	fs.StringVar(&r.options.PrinterDevice, "printer-device", r.options.PrinterDevice, "ESC/POS device path (PRINTER_DEVICE)")
	fs.IntVar(&timeoutSeconds, "timeout", int(r.options.Timeout.Seconds()), "Timeout in seconds")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if timeoutSeconds > 0 {
		r.options.Timeout = time.Duration(timeoutSeconds) * time.Second
	}
	r.options.Command = fs.Args()

	if r.options.PrinterURL != r.cfg.PrinterURL || r.options.PrinterDevice != r.cfg.PrinterDevice {
		r.printer = newPrinterFromOptions(r.cfg, &r.options, r.logger)
	}

	if len(r.options.Command) == 0 {
		return r.runREPL(ctx)
	}
	if err := r.dispatch(ctx, r.options.Command); err != nil {
		return &commandError{err: err}
	}
	return nil
}

func newPrinterFromOptions(base config.Config, opts *Options, logger *zap.Logger) *printer.Printer {
	cfg := base
	cfg.PrinterURL = opts.PrinterURL
	cfg.PrinterDevice = opts.PrinterDevice
	cfg.Timeout = opts.Timeout
	return printer.NewPrinter(cfg, logger)
}

func (r *Runner) runREPL(ctx context.Context) error {
	fmt.Fprintln(r.out, "Pedidos de roscones (escriba 'ayuda' o 'salir')")

	for {
		fmt.Fprint(r.out, "> ")
		line, ok := r.readLine()
		if !ok {
			fmt.Fprintln(r.out)
			return r.lineScanner().Err()
		}
		if ctx.Err() != nil {
			return nil
		}

		switch strings.ToLower(line) {
		case "":
			continue
		case "exit", "quit", "salir":
			return nil
		case "history", "historial":
			r.printHistory()
			continue
		case "/clear":
			r.history.Clear()
			fmt.Fprintln(r.out, "Historial borrado.")
			continue
		}
		r.history.Append(line)

		args, err := splitArgs(line)
		if err != nil {
			fmt.Fprintf(r.errOut, "Error: %s\n", friendlyError(err))
			continue
		}
		if err := r.dispatch(ctx, args); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			fmt.Fprintf(r.errOut, "Error: %s\n", friendlyError(err))
		}
	}
}

func (r *Runner) printHistory() {
	entries := r.history.Entries()
	if len(entries) == 0 {
		fmt.Fprintln(r.out, "Historial vacío.")
		return
	}
	for i, entry := range entries {
		fmt.Fprintf(r.out, "%d) %s\n", i+1, entry)
	}
}

func (r *Runner) lineScanner() *bufio.Scanner {
	if r.scanner == nil {
		r.scanner = bufio.NewScanner(r.in)
	}
	return r.scanner
}

func (r *Runner) readLine() (string, bool) {
	s := r.lineScanner()
	if !s.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.Text()), true
}

// confirm asks a yes/no question on the terminal. --yes answers it.
func (r *Runner) confirm(question string) bool {
	if r.options.Yes {
		return true
	}
	fmt.Fprintf(r.out, "%s (s/N): ", question)
	answer, ok := r.readLine()
	if !ok {
		return false
	}
	switch strings.ToLower(answer) {
	case "s", "si", "sí", "y", "yes":
		return true
	default:
		return false
	}
}

func (r *Runner) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.options.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.options.Timeout)
}

// commandError carries the Spanish message for main to print while keeping
// the cause for errors.Is.
type commandError struct {
	err error
}

func (e *commandError) Error() string { return friendlyError(e.err) }

func (e *commandError) Unwrap() error { return e.err }
