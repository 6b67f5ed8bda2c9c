package cli

import "time"

type Options struct {
	Command       []string
	JSON          bool
	Yes           bool
	PrinterURL    string
	PrinterDevice string
	Timeout       time.Duration
}
