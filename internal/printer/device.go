package printer

import (
	"context"
	"fmt"
	"os"
)

// Device writes to a raw printer device such as /dev/usb/lp0. Any regular
// file works too, which is handy for keeping a copy of the job.
type Device struct {
	path string
}

func NewDevice(path string) *Device {
	return &Device{path: path}
}

func (d *Device) Name() string { return "device:" + d.path }

func (d *Device) Send(ctx context.Context, chunk []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := os.OpenFile(d.path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("open printer device: %w", err)
	}
	if _, err := f.Write(chunk); err != nil {
		_ = f.Close()
		return fmt.Errorf("write printer device: %w", err)
	}
	return f.Close()
}
