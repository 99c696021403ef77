//go:build !linux

package fortune

import (
	"errors"
	"os"
)

func OpenSerial(dev string, baud int) (*os.File, error) {
	return nil, errors.New("fortune: serial printers are only supported on linux")
}
