package config

import (
	"fmt"
	"time"

	coreconfig "github.com/go-core-fx/config"
)

type Config struct {
	StorageDriver     string        `koanf:"storage_driver"`
	StorageDSN        string        `koanf:"storage_dsn"`
	StorageKey        string        `koanf:"storage_key"`
	PrinterDevice     string        `koanf:"printer_device"`
	PrinterURL        string        `koanf:"printer_url"`
	PrinterChunkSize  int           `koanf:"printer_chunk_size"`
	PrinterChunkDelay time.Duration `koanf:"printer_chunk_delay"`
	PrinterCodepage   string        `koanf:"printer_codepage"`
	TicketWidth       int           `koanf:"ticket_width"`
	Timeout           time.Duration `koanf:"timeout"`
	LogFile           string        `koanf:"log_file"`
	Debug             bool          `koanf:"debug"`
}

func Default() Config {
	return Config{
		StorageDriver:     "sqlite",
		StorageDSN:        "./roscon.db",
		StorageKey:        "roscon_orders",
		PrinterChunkSize:  180,
		PrinterChunkDelay: 50 * time.Millisecond,
		TicketWidth:       32,
		Timeout:           10 * time.Second,
		LogFile:           "./roscon.log",
	}
}

func New() (Config, error) {
	cfg := Default()

	if err := coreconfig.Load(&cfg); err != nil {
		return Config{}, fmt.Errorf("loading config: %w", err)
	}

	return cfg, nil
}
