package printer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"roscon_orders/internal/config"

	"go.uber.org/zap"
)

const (
	defaultChunkSize  = 180
	defaultChunkDelay = 50 * time.Millisecond
)

var ErrNoTransport = errors.New("no printer configured")

// Transport delivers raw bytes to the printer.
type Transport interface {
	Send(ctx context.Context, chunk []byte) error
	Name() string
}

type Printer struct {
	transport  Transport
	chunkSize  int
	chunkDelay time.Duration
	charset    *Charset
	logger     *zap.Logger
}

// NewPrinter picks the transport from config: the device path wins over the
// HTTP bridge. With neither set, Print returns ErrNoTransport.
func NewPrinter(cfg config.Config, logger *zap.Logger) *Printer {
	logger = logger.Named("printer")

	var transport Transport
	switch {
	case cfg.PrinterDevice != "":
		transport = NewDevice(cfg.PrinterDevice)
	case cfg.PrinterURL != "":
		transport = NewHTTPBridge(cfg.PrinterURL, cfg.Timeout, logger)
	}
	p := New(transport, cfg.PrinterChunkSize, cfg.PrinterChunkDelay, logger)

	charset, ok := LookupCharset(cfg.PrinterCodepage)
	if !ok {
		logger.Warn("unknown printer code page, sending UTF-8", zap.String("codepage", cfg.PrinterCodepage))
	}
	return p.WithCharset(charset)
}

func New(transport Transport, chunkSize int, chunkDelay time.Duration, logger *zap.Logger) *Printer {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	if chunkDelay < 0 {
		chunkDelay = defaultChunkDelay
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Printer{
		transport:  transport,
		chunkSize:  chunkSize,
		chunkDelay: chunkDelay,
		logger:     logger,
	}
}

// WithCharset makes Print transcode text to cs. A nil cs sends UTF-8.
func (p *Printer) WithCharset(cs *Charset) *Printer {
	p.charset = cs
	return p
}

func (p *Printer) Configured() bool {
	return p != nil && p.transport != nil
}

// Print encodes text as ESC/POS and sends it in chunks with a fixed pause
// between them. Cancelling ctx stops the transfer between chunks.
func (p *Printer) Print(ctx context.Context, text string) error {
	if !p.Configured() {
		return ErrNoTransport
	}

	data := encodeJob(text, p.charset)
	start := time.Now()
	chunks := 0

	for offset := 0; offset < len(data); offset += p.chunkSize {
		if chunks > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(p.chunkDelay):
			}
		}
		end := min(offset+p.chunkSize, len(data))
		if err := p.transport.Send(ctx, data[offset:end]); err != nil {
			p.logger.Warn("print failed",
				zap.String("transport", p.transport.Name()),
				zap.Int("chunk", chunks),
				zap.Error(err),
			)
			return fmt.Errorf("send chunk %d: %w", chunks, err)
		}
		chunks++
	}

	p.logger.Info("printed",
		zap.String("transport", p.transport.Name()),
		zap.Int("bytes", len(data)),
		zap.Int("chunks", chunks),
		zap.Int64("ms", time.Since(start).Milliseconds()),
	)
	return nil
}
