package weight

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sequenceReader replays a fixed series of conversions.
type sequenceReader struct {
	values []int32
	pos    int
	err    error
}

func (r *sequenceReader) Read(context.Context) (int32, error) {
	if r.err != nil {
		return 0, r.err
	}
	if r.pos >= len(r.values) {
		return r.values[len(r.values)-1], nil
	}
	v := r.values[r.pos]
	r.pos++
	return v, nil
}

func repeat(v int32, n int) []int32 {
	out := make([]int32, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestScale_TareAndWeigh(t *testing.T) {
	// Empty cell reads 1000 counts, loaded cell 21000: with a 2kg reference
	// that makes 10000 counts per kilogram.
	readings := append(repeat(1000, 4), repeat(21000, 4)...)
	readings = append(readings, repeat(11000, 4)...)
	r := &sequenceReader{values: readings}
	s := New(r, WithSamples(4))
	ctx := context.Background()

	require.NoError(t, s.Tare(ctx))
	assert.Equal(t, float64(1000), s.ZeroOffset())

	require.NoError(t, s.CalibrateTo(ctx, 2))
	assert.Equal(t, float64(10000), s.CalibrationFactor())

	mass, err := s.Weigh(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, mass, 1e-9)
}

func TestScale_Averaging(t *testing.T) {
	r := &sequenceReader{values: []int32{100, 200, 300, 400}}
	s := New(r, WithSamples(4))
	avg, err := s.Raw(context.Background())
	require.NoError(t, err)
	assert.Equal(t, float64(250), avg)
}

func TestScale_NegativeReadings(t *testing.T) {
	// A load cell wired in reverse produces negative counts; the math must
	// carry the sign through.
	readings := append(repeat(-500, 2), repeat(-10500, 2)...)
	r := &sequenceReader{values: readings}
	s := New(r, WithSamples(2))
	ctx := context.Background()

	require.NoError(t, s.Tare(ctx))
	require.NoError(t, s.CalibrateTo(ctx, 1))
	assert.Equal(t, float64(-10000), s.CalibrationFactor())
}

func TestScale_WeighRequiresCalibration(t *testing.T) {
	s := New(&sequenceReader{values: []int32{1}})
	_, err := s.Weigh(context.Background())
	assert.ErrorIs(t, err, ErrNotCalibrated)
}

func TestScale_RestoredCalibration(t *testing.T) {
	r := &sequenceReader{values: repeat(16000, 8)}
	s := New(r)
	s.Restore(1000, 5000)
	mass, err := s.Weigh(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 3.0, mass, 1e-9)
}

func TestScale_ReadErrorPropagates(t *testing.T) {
	cause := errors.New("bus gone")
	s := New(&sequenceReader{err: cause})
	err := s.Tare(context.Background())
	assert.ErrorIs(t, err, cause)
}

func TestScale_RejectsNonPositiveMass(t *testing.T) {
	s := New(&sequenceReader{values: []int32{1}})
	assert.Error(t, s.CalibrateTo(context.Background(), 0))
	assert.Error(t, s.CalibrateTo(context.Background(), -1))
}
