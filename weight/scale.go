// Package weight converts raw load-cell ADC counts into mass. It owns the
// zero-offset and counts-per-kilogram math; the chip itself does not retain
// either across power cycles, so callers persist them and restore on start.
package weight

import (
	"context"
	"fmt"
)

const defaultSamples = 8

var ErrNotCalibrated = fmt.Errorf("scale is not calibrated")

// Reader yields one raw conversion per call.
type Reader interface {
	Read(ctx context.Context) (int32, error)
}

type Opt func(*Scale)

func WithSamples(n int) Opt {
	return func(s *Scale) {
		if n > 0 {
			s.samples = n
		}
	}
}

// Scale averages conversions from a Reader and maps them to kilograms.
type Scale struct {
	dev     Reader
	samples int

	zeroOffset float64
	factor     float64 // counts per kilogram
}

func New(dev Reader, opts ...Opt) *Scale {
	s := &Scale{dev: dev, samples: defaultSamples}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Scale) average(ctx context.Context) (float64, error) {
	var sum float64
	for i := 0; i < s.samples; i++ {
		val, err := s.dev.Read(ctx)
		if err != nil {
			return 0, fmt.Errorf("could not read conversion %d of %d: %w", i+1, s.samples, err)
		}
		sum += float64(val)
	}
	return sum / float64(s.samples), nil
}

// Tare captures the current averaged reading as the zero offset.
func (s *Scale) Tare(ctx context.Context) error {
	avg, err := s.average(ctx)
	if err != nil {
		return fmt.Errorf("could not establish zero offset: %w", err)
	}
	s.zeroOffset = avg
	return nil
}

// CalibrateTo derives the counts-per-kilogram factor from a known mass placed
// on the cell. Tare must have been run first with the cell empty.
func (s *Scale) CalibrateTo(ctx context.Context, knownMass float64) error {
	if knownMass <= 0 {
		return fmt.Errorf("known mass must be positive, got %f", knownMass)
	}
	avg, err := s.average(ctx)
	if err != nil {
		return fmt.Errorf("could not establish calibration factor: %w", err)
	}
	s.factor = (avg - s.zeroOffset) / knownMass
	return nil
}

// Weigh returns the averaged mass in kilograms.
func (s *Scale) Weigh(ctx context.Context) (float64, error) {
	if s.factor == 0 {
		return 0, ErrNotCalibrated
	}
	avg, err := s.average(ctx)
	if err != nil {
		return 0, err
	}
	return (avg - s.zeroOffset) / s.factor, nil
}

// Raw returns the averaged conversion without offset or scaling applied.
func (s *Scale) Raw(ctx context.Context) (float64, error) {
	return s.average(ctx)
}

func (s *Scale) ZeroOffset() float64 { return s.zeroOffset }

func (s *Scale) CalibrationFactor() float64 { return s.factor }

// Restore reinstates a previously persisted calibration.
func (s *Scale) Restore(zeroOffset, factor float64) {
	s.zeroOffset = zeroOffset
	s.factor = factor
}
