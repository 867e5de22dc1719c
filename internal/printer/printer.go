// Package printer streams a rendered or raw ZPL label directly to a
// Zebra-compatible thermal printer over a serial or Bluetooth-RFCOMM
// connection. Zebra printers interpret ZPL natively, so there is no
// bitmap-to-command translation step here.
package printer

import (
	"errors"
	"fmt"
	"time"

	"go.bug.st/serial"
)

var (
	ErrNotConnected = errors.New("printer: not connected")
)

// Printer is an open connection to a Zebra-compatible printer.
type Printer struct {
	port     serial.Port
	portName string
}

// ListPorts enumerates serial ports that might host a connected printer,
// including Bluetooth-RFCOMM devices once paired and bound by the OS.
func ListPorts() ([]string, error) {
	return serial.GetPortsList()
}

// Connect opens portName at the baud rate Zebra's serial/Bluetooth
// interface defaults to (9600 8N1).
func Connect(portName string) (*Printer, error) {
	mode := &serial.Mode{
		BaudRate: 9600,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("printer: failed to open port %s: %w", portName, err)
	}
	port.SetReadTimeout(3 * time.Second)

	return &Printer{port: port, portName: portName}, nil
}

// Close closes the underlying connection.
func (p *Printer) Close() error {
	if p.port == nil {
		return nil
	}
	return p.port.Close()
}

// PortName returns the port this Printer was opened on.
func (p *Printer) PortName() string {
	return p.portName
}

// Send writes raw ZPL bytes straight to the printer -- this can be the
// original source the caller parsed, letting the printer's own firmware
// do the rendering, or a ^GFA-wrapped bitmap built from a rasterized
// canvas when the caller wants pixel-perfect parity with the PNG/PDF
// output.
func (p *Printer) Send(zpl []byte) error {
	if p.port == nil {
		return ErrNotConnected
	}
	_, err := p.port.Write(zpl)
	if err != nil {
		return fmt.Errorf("printer: write failed: %w", err)
	}
	return nil
}

// QueryStatus issues a Host Status (~HS) request and returns whatever the
// printer responds with inside the read timeout. Many printers answer with
// three comma-delimited status lines; callers that need structured fields
// can split on newlines themselves.
func (p *Printer) QueryStatus() (string, error) {
	if p.port == nil {
		return "", ErrNotConnected
	}
	if _, err := p.port.Write([]byte("~HS")); err != nil {
		return "", fmt.Errorf("printer: status request failed: %w", err)
	}

	buf := make([]byte, 256)
	n, err := p.port.Read(buf)
	if err != nil {
		return "", fmt.Errorf("printer: status read failed: %w", err)
	}
	return string(buf[:n]), nil
}
