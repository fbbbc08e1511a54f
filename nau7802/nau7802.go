package nau7802

import (
	"context"
	"time"

	"github.com/mklimuk/scale"
)

// DeviceAddress is the fixed 7-bit I2C address of the NAU7802.
const DeviceAddress = 0x2A

const (
	// powerupAttempts bounds the PUR polls after the 200us settle. The device
	// is documented to assert readiness within roughly 200us, so these are a
	// safety margin rather than a real wait loop.
	powerupAttempts = 5
	powerupSettle   = 200 * time.Microsecond

	calibrationPollInterval = time.Millisecond

	// readAttempts x readPollInterval covers the worst-case conversion
	// latency with margin: the slowest rate (10SPS) takes up to 100ms per
	// sample.
	readAttempts     = 5
	readPollInterval = 30 * time.Millisecond
)

// Device drives a NAU7802 24-bit sigma-delta ADC over a register-addressed
// I2C transport. It exclusively owns the transport and delay handles: register
// access is read-modify-write over the bus and must never interleave with
// another path to the same chip. All operations are strictly sequential and
// offer no internal synchronization.
//
// Typical usage:
//
//	dev, err := nau7802.New(ctx, bus, scale.TimerDelay{})
//	if err != nil { ... }
//	counts, err := dev.Read(ctx)
type Device struct {
	transport scale.I2CBus
	delay     scale.Delay
	addr      byte
	buf       []byte
}

// New brings up the device with the default settings: 3.3V LDO, gain x128,
// 10 samples per second.
func New(ctx context.Context, transport scale.I2CBus, delay scale.Delay) (*Device, error) {
	return NewWithSettings(ctx, transport, LDO3V3, Gain128, SPS10, delay)
}

// NewWithSettings runs the full bring-up sequence: reset, power-up
// confirmation, LDO/gain/sample-rate programming, datasheet analog tweaks and
// an offset calibration pass. It returns either a ready handle or the first
// error encountered; there is no partially initialized state.
func NewWithSettings(ctx context.Context, transport scale.I2CBus, ldo LDO, gain Gain, rate SampleRate, delay scale.Delay) (*Device, error) {
	d := &Device{
		transport: transport,
		delay:     delay,
		addr:      DeviceAddress,
		buf:       make([]byte, 3),
	}
	if err := d.reset(ctx); err != nil {
		return nil, err
	}
	if err := d.powerUp(ctx); err != nil {
		return nil, err
	}
	if err := d.SetLDO(ctx, ldo); err != nil {
		return nil, err
	}
	if err := d.SetGain(ctx, gain); err != nil {
		return nil, err
	}
	if err := d.SetSampleRate(ctx, rate); err != nil {
		return nil, err
	}
	if err := d.miscInit(ctx); err != nil {
		return nil, err
	}
	if err := d.Calibrate(ctx); err != nil {
		return nil, err
	}
	return d, nil
}

// Read polls the cycle-ready flag and returns one conversion as a signed
// 24-bit value widened to int32. It fails with ErrReadTimeout when no
// conversion becomes available within the polling budget.
func (d *Device) Read(ctx context.Context) (int32, error) {
	for attempt := 0; ; attempt++ {
		ready, err := d.dataAvailable(ctx)
		if err != nil {
			return 0, err
		}
		if ready {
			break
		}
		if attempt == readAttempts-1 {
			return 0, ErrReadTimeout
		}
		if err := d.delay.Sleep(ctx, readPollInterval); err != nil {
			return 0, err
		}
	}
	return d.readUnchecked(ctx)
}

// readUnchecked assumes dataAvailable has just returned true. It primes the
// device read pointer at the most significant result byte, burst-reads the
// three result registers and sign-extends the big-endian value.
func (d *Device) readUnchecked(ctx context.Context) (int32, error) {
	if err := d.requestRegister(ctx, RegAdcoB2); err != nil {
		return 0, err
	}
	if err := d.transport.ReadFromAddr(ctx, d.addr, d.buf); err != nil {
		return 0, &OpError{Op: OpReadConversion, Register: RegAdcoB2, Err: err}
	}
	return decodeConversion(d.buf), nil
}

// decodeConversion interprets three big-endian bytes as a 24-bit two's
// complement value.
func decodeConversion(buf []byte) int32 {
	raw := int32(uint32(buf[0])<<16 | uint32(buf[1])<<8 | uint32(buf[2]))
	return raw << 8 >> 8
}

func (d *Device) dataAvailable(ctx context.Context) (bool, error) {
	return d.getBit(ctx, RegPuCtrl, PuCtrlCR)
}

// Calibrate starts an offset calibration and polls until the device clears
// the start bit. The poll is deliberately unbounded: the CALS bit is
// guaranteed by the device to self-clear, so no timeout is layered on top;
// callers wanting a deadline supply one through ctx. Calibration must be
// re-run after every gain change.
func (d *Device) Calibrate(ctx context.Context) error {
	if err := d.setBit(ctx, RegCtrl2, Ctrl2CALS); err != nil {
		return err
	}
	for {
		status, err := d.calibrationStatus(ctx)
		if err != nil {
			return err
		}
		switch status {
		case CalibrationSuccess:
			return nil
		case CalibrationFailed:
			return ErrCalibrationFailed
		}
		if err := d.delay.Sleep(ctx, calibrationPollInterval); err != nil {
			return err
		}
	}
}

// calibrationStatus derives the tri-state outcome from the CALS and CAL_ERR
// bits; nothing is cached between polls.
func (d *Device) calibrationStatus(ctx context.Context) (CalibrationStatus, error) {
	inProgress, err := d.getBit(ctx, RegCtrl2, Ctrl2CALS)
	if err != nil {
		return CalibrationFailed, err
	}
	if inProgress {
		return CalibrationInProgress, nil
	}
	failed, err := d.getBit(ctx, RegCtrl2, Ctrl2CalError)
	if err != nil {
		return CalibrationFailed, err
	}
	if failed {
		return CalibrationFailed, nil
	}
	return CalibrationSuccess, nil
}

// SetSampleRate programs the conversion rate field.
func (d *Device) SetSampleRate(ctx context.Context, rate SampleRate) error {
	return d.setField(ctx, rateField, byte(rate))
}

// SetGain programs the PGA gain field.
func (d *Device) SetGain(ctx context.Context, gain Gain) error {
	return d.setField(ctx, gainField, byte(gain))
}

// SetLDO programs the regulator voltage and routes AVDD to the internal LDO;
// both are required for the setting to take effect.
func (d *Device) SetLDO(ctx context.Context, ldo LDO) error {
	if err := d.setField(ctx, ldoField, byte(ldo)); err != nil {
		return err
	}
	return d.setBit(ctx, RegPuCtrl, PuCtrlAVDDS)
}

// Revision returns the chip revision code.
func (d *Device) Revision(ctx context.Context) (byte, error) {
	val, err := d.getRegister(ctx, RegDeviceRev)
	if err != nil {
		return 0, err
	}
	return val & 0x0F, nil
}

func (d *Device) powerUp(ctx context.Context) error {
	if err := d.setBit(ctx, RegPuCtrl, PuCtrlPUD); err != nil {
		return err
	}
	if err := d.setBit(ctx, RegPuCtrl, PuCtrlPUA); err != nil {
		return err
	}
	// After about 200 microseconds the PUR bit reads 1 and the device accepts
	// the remaining programming.
	if err := d.delay.Sleep(ctx, powerupSettle); err != nil {
		return err
	}
	for attempt := 0; attempt < powerupAttempts; attempt++ {
		if attempt > 0 {
			if err := d.delay.Sleep(ctx, time.Duration(5*attempt)*time.Microsecond); err != nil {
				return err
			}
		}
		ready, err := d.getBit(ctx, RegPuCtrl, PuCtrlPUR)
		if err != nil {
			return err
		}
		if ready {
			return nil
		}
	}
	return ErrPowerupFailed
}

func (d *Device) reset(ctx context.Context) error {
	if err := d.setBit(ctx, RegPuCtrl, PuCtrlRR); err != nil {
		return err
	}
	if err := d.delay.Sleep(ctx, time.Millisecond); err != nil {
		return err
	}
	return d.clearBit(ctx, RegPuCtrl, PuCtrlRR)
}

func (d *Device) miscInit(ctx context.Context) error {
	// Turn off CLK_CHP. From 9.1 power-on sequencing.
	const turnOffClkChp = 0x30
	if err := d.setRegister(ctx, RegAdc, turnOffClkChp); err != nil {
		return err
	}
	// Enable 330pF decoupling cap on chan 2. From 9.14 application circuit note.
	return d.setBit(ctx, RegPgaPwr, PgaPwrCapEn)
}

// setField rewrites a multi-bit field without disturbing the register's other
// bits: read, clear the field through its mask, OR in the shifted value,
// write back.
func (d *Device) setField(ctx context.Context, f field, value byte) error {
	val, err := d.getRegister(ctx, f.reg)
	if err != nil {
		return err
	}
	val &= f.mask
	val |= value << f.shift
	return d.setRegister(ctx, f.reg, val)
}

func (d *Device) setBit(ctx context.Context, reg Register, bit Bit) error {
	val, err := d.getRegister(ctx, reg)
	if err != nil {
		return err
	}
	val |= 1 << bit.Index()
	return d.setRegister(ctx, reg, val)
}

func (d *Device) clearBit(ctx context.Context, reg Register, bit Bit) error {
	val, err := d.getRegister(ctx, reg)
	if err != nil {
		return err
	}
	val &^= 1 << bit.Index()
	return d.setRegister(ctx, reg, val)
}

func (d *Device) getBit(ctx context.Context, reg Register, bit Bit) (bool, error) {
	val, err := d.getRegister(ctx, reg)
	if err != nil {
		return false, err
	}
	return val&(1<<bit.Index()) != 0, nil
}

// getRegister selects a register and reads one byte back. The transport
// exposes separate write and read primitives, so the combined transaction is
// a write followed by a read.
func (d *Device) getRegister(ctx context.Context, reg Register) (byte, error) {
	if err := d.transport.WriteToAddr(ctx, d.addr, []byte{byte(reg)}); err != nil {
		return 0, &OpError{Op: OpGetRegister, Register: reg, Err: err}
	}
	buf := d.buf[:1]
	if err := d.transport.ReadFromAddr(ctx, d.addr, buf); err != nil {
		return 0, &OpError{Op: OpGetRegister, Register: reg, Err: err}
	}
	return buf[0], nil
}

func (d *Device) setRegister(ctx context.Context, reg Register, val byte) error {
	if err := d.transport.WriteToAddr(ctx, d.addr, []byte{byte(reg), val}); err != nil {
		return &OpError{Op: OpSetRegister, Register: reg, Err: err}
	}
	return nil
}

// requestRegister writes a bare register address with no trailing read,
// priming the device's auto-incrementing read pointer before a burst read.
func (d *Device) requestRegister(ctx context.Context, reg Register) error {
	if err := d.transport.WriteToAddr(ctx, d.addr, []byte{byte(reg)}); err != nil {
		return &OpError{Op: OpRequestRegister, Register: reg, Err: err}
	}
	return nil
}
