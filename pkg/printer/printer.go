package printer

import (
	"context"
	"fmt"
	"net"
	"os"
	"time"
)

// Printer sends raw ESC/POS data to a thermal printer.
type Printer interface {
	Print(ctx context.Context, data []byte) error
	IsConnected() bool
	Close() error
}

// Printer types accepted by New
const (
	TypeNone    = "none"
	TypeUSB     = "usb"
	TypeNetwork = "network"
)

// Config selects and addresses a printer.
type Config struct {
	Type    string
	USBPath string // e.g. /dev/usb/lp0
	Address string // host:port, usually port 9100
}

// New creates the printer described by cfg.
func New(cfg Config) (Printer, error) {
	switch cfg.Type {
	case TypeUSB:
		if cfg.USBPath == "" {
			return nil, fmt.Errorf("printer: USB path is required for printer type %q", TypeUSB)
		}
		return &devicePrinter{path: cfg.USBPath}, nil
	case TypeNetwork:
		if cfg.Address == "" {
			return nil, fmt.Errorf("printer: address is required for printer type %q", TypeNetwork)
		}
		return &tcpPrinter{address: cfg.Address, dialTimeout: 5 * time.Second, writeTimeout: 10 * time.Second}, nil
	case TypeNone, "":
		return Null(), nil
	}
	return nil, fmt.Errorf("printer: unknown printer type %q (use usb, network or none)", cfg.Type)
}

// devicePrinter writes each job to a character device, opened per job.
type devicePrinter struct {
	path string
}

func (p *devicePrinter) Print(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := os.OpenFile(p.path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("printer: open %s: %w", p.path, err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("printer: write %s: %w", p.path, err)
	}
	return nil
}

func (p *devicePrinter) IsConnected() bool {
	_, err := os.Stat(p.path)
	return err == nil
}

func (p *devicePrinter) Close() error { return nil }

// tcpPrinter dials a raw-socket printer per job.
type tcpPrinter struct {
	address      string
	dialTimeout  time.Duration
	writeTimeout time.Duration
}

func (p *tcpPrinter) Print(ctx context.Context, data []byte) error {
	dialer := net.Dialer{Timeout: p.dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", p.address)
	if err != nil {
		return fmt.Errorf("printer: connect %s: %w", p.address, err)
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(p.writeTimeout))
	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("printer: write %s: %w", p.address, err)
	}
	return nil
}

func (p *tcpPrinter) IsConnected() bool {
	conn, err := net.DialTimeout("tcp", p.address, 2*time.Second)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

func (p *tcpPrinter) Close() error { return nil }

type nullPrinter struct{}

// Null returns a printer that discards every job, for terminals without
// hardware.
func Null() Printer {
	return nullPrinter{}
}

func (nullPrinter) Print(context.Context, []byte) error { return nil }
func (nullPrinter) IsConnected() bool                   { return false }
func (nullPrinter) Close() error                        { return nil }
