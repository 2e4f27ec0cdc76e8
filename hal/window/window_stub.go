//go:build !tinygo && !cgo

package window

import (
	"errors"

	"calcboard/hal"
)

func Run(_ *hal.Host, _ string, _ func(hal.HAL) hal.App) error {
	return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")
}
