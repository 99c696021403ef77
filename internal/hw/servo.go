package hw

import (
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

const (
	servoFreq   = 50 * physic.Hertz
	servoPeriod = 20 * time.Millisecond
)

// Servo positions a hobby servo by pulse width on a PWM-capable pin.
type Servo struct {
	pin      gpio.PinOut
	MinAngle float64
	MaxAngle float64
	MinPulse time.Duration
	MaxPulse time.Duration
	angle    float64
}

func NewServo(pin gpio.PinOut, minAngle, maxAngle float64) *Servo {
	return &Servo{
		pin:      pin,
		MinAngle: minAngle,
		MaxAngle: maxAngle,
		MinPulse: time.Millisecond,
		MaxPulse: 2 * time.Millisecond,
		angle:    minAngle,
	}
}

// SetAngle clamps a into [MinAngle, MaxAngle] and drives the matching pulse.
func (s *Servo) SetAngle(a float64) error {
	if a < s.MinAngle {
		a = s.MinAngle
	}
	if a > s.MaxAngle {
		a = s.MaxAngle
	}
	if err := s.pin.PWM(s.duty(a), servoFreq); err != nil {
		return err
	}
	s.angle = a
	return nil
}

func (s *Servo) Angle() float64 { return s.angle }

func (s *Servo) duty(a float64) gpio.Duty {
	frac := 0.0
	if span := s.MaxAngle - s.MinAngle; span > 0 {
		frac = (a - s.MinAngle) / span
	}
	pulse := float64(s.MinPulse) + frac*float64(s.MaxPulse-s.MinPulse)
	return gpio.Duty(float64(gpio.DutyMax) * pulse / float64(servoPeriod))
}

// Halt stops the pulse train so the servo goes limp.
func (s *Servo) Halt() error {
	return s.pin.Out(gpio.Low)
}
