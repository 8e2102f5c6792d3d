package source

import (
	"fmt"
	"time"

	"go-leapchord/debug"

	"go.bug.st/serial"
)

// OpenSerial reads the line protocol from a serial tracker bridge.
func OpenSerial(name string, baud int, clock func() time.Time) (*LineSource, error) {
	mode := &serial.Mode{BaudRate: baud}
	port, err := serial.Open(name, mode)
	if err != nil {
		return nil, fmt.Errorf("open serial %s: %w", name, err)
	}
	debug.Info("source", "serial port opened", "device", name, "baud", baud)
	return NewLineSource(port, clock), nil
}

// SerialPorts lists serial devices present on the system.
func SerialPorts() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("list serial ports: %w", err)
	}
	return ports, nil
}
