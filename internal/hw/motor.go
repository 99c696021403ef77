package hw

import (
	"context"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// Motor is a phase/enable stepper driver: one pin picks the direction, the
// other is clocked at the step rate.
type Motor struct {
	dir  gpio.PinOut
	step gpio.PinOut

	Speed       physic.Frequency
	SecsPerRev  time.Duration
	RevsPerItem float64
	// Backward drives the phase pin high.
	Backward bool
}

func NewMotor(dir, step gpio.PinOut) *Motor {
	return &Motor{
		dir:         dir,
		step:        step,
		Speed:       400 * physic.Hertz,
		SecsPerRev:  1060 * time.Millisecond,
		RevsPerItem: 2,
		Backward:    true,
	}
}

// RunTime is how long Dispense runs for items.
func (m *Motor) RunTime(items int) time.Duration {
	return time.Duration(float64(m.SecsPerRev) * m.RevsPerItem * float64(items))
}

// Dispense turns the motor long enough to drop items. The motor is stopped
// before returning, including on cancellation.
func (m *Motor) Dispense(ctx context.Context, items int) error {
	if items <= 0 {
		return nil
	}
	phase := gpio.Low
	if m.Backward {
		phase = gpio.High
	}
	if err := m.dir.Out(phase); err != nil {
		return err
	}
	if err := m.step.PWM(gpio.DutyHalf, m.Speed); err != nil {
		return err
	}
	werr := Sleep(ctx, m.RunTime(items))
	if err := m.Stop(); err != nil {
		return err
	}
	return werr
}

func (m *Motor) Stop() error {
	return All(gpio.Low, m.step, m.dir)
}
