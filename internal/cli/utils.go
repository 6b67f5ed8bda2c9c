package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"roscon_orders/internal/orders"
	"roscon_orders/internal/printer"
	"roscon_orders/internal/roscon"
	"roscon_orders/internal/storage"

	"github.com/mattn/go-shellwords"
	"go.uber.org/zap"
)

const shortIDLength = 8

var errUnterminatedQuote = errors.New("unterminated quote")

type commandRecord struct {
	Name string   `json:"name"`
	Args []string `json:"args,omitempty"`
	MS   int64    `json:"ms"`
	OK   bool     `json:"ok"`
	Err  string   `json:"err,omitempty"`
}

func trackCommand(logger *zap.Logger, name string, args []string, fn func() error) error {
	start := time.Now()
	err := fn()
	elapsed := time.Since(start)
	record := commandRecord{
		Name: name,
		Args: args,
		MS:   elapsed.Milliseconds(),
		OK:   err == nil,
	}
	if err != nil {
		record.Err = err.Error()
	}
	logger.Info("command",
		zap.String("name", record.Name),
		zap.Strings("args", record.Args),
		zap.Int64("ms", record.MS),
		zap.Bool("ok", record.OK),
		zap.String("err", record.Err),
	)
	return err
}

func friendlyError(err error) string {
	var bridgeErr *printer.BridgeError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, errUsage):
		return "Uso: " + detail(err, errUsage)
	case errors.Is(err, errUnknownCommand):
		return fmt.Sprintf("Comando desconocido: %s. Escriba 'ayuda'.", detail(err, errUnknownCommand))
	case errors.Is(err, errAmbiguousID):
		return "Hay varios pedidos con ese prefijo; escriba más caracteres del id."
	case errors.Is(err, errCancelled):
		return "Operación cancelada."
	case errors.Is(err, errUnterminatedQuote):
		return "Falta cerrar una comilla."
	case errors.Is(err, orders.ErrNotFound):
		return "Pedido no encontrado."
	case errors.Is(err, orders.ErrCustomerRequired):
		return "Falta el nombre del cliente."
	case errors.Is(err, orders.ErrPhoneRequired):
		return "Falta el teléfono."
	case errors.Is(err, orders.ErrDeliveryDateRequired):
		return "Falta la fecha de entrega."
	case errors.Is(err, orders.ErrInvalidDeliveryDate):
		return "La fecha de entrega debe tener el formato AAAA-MM-DD."
	case errors.Is(err, orders.ErrNoItems):
		return "Añada al menos un roscón con --item tamaño:relleno:cantidad."
	case errors.Is(err, orders.ErrInvalidQuantity):
		return "La cantidad debe ser mayor que cero."
	case errors.Is(err, orders.ErrUnknownSize):
		return "Tamaño desconocido. Opciones: " + joinValues(roscon.Sizes) + "."
	case errors.Is(err, orders.ErrUnknownFilling):
		return "Relleno desconocido. Opciones: " + joinValues(roscon.Fillings) + "."
	case errors.Is(err, orders.ErrUnknownStatus):
		return "Estado desconocido. Opciones: " + joinValues(roscon.Statuses) + "."
	case errors.Is(err, orders.ErrUnknownPaymentMethod):
		return "Método de pago desconocido. Opciones: " + joinValues(roscon.PaymentMethods) + "."
	case errors.Is(err, orders.ErrPaymentMethodRequired):
		return "Un pedido pagado necesita método de pago (--method)."
	case errors.Is(err, printer.ErrNoTransport):
		return "No hay impresora configurada: use --printer-device o --printer-url."
	case errors.Is(err, printer.ErrBridgeBusy):
		return "La impresora está ocupada. Inténtelo de nuevo."
	case errors.As(err, &bridgeErr):
		return fmt.Sprintf("Error de la impresora (%s).", bridgeErr.Status)
	case errors.Is(err, storage.ErrUnsupportedDriver):
		return "Base de datos no soportada: use sqlite o postgres."
	case errors.Is(err, context.DeadlineExceeded):
		return "Tiempo de espera agotado."
	default:
		return err.Error()
	}
}

func detail(err, sentinel error) string {
	return strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
}

func joinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

func shortID(id string) string {
	if len(id) <= shortIDLength {
		return id
	}
	return id[:shortIDLength]
}

// splitArgs splits a REPL line the way a shell would, honouring quotes and
// backslash escapes. Environment variables are not expanded.
func splitArgs(line string) ([]string, error) {
	args, err := shellwords.Parse(line)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errUnterminatedQuote, err)
	}
	return args, nil
}
