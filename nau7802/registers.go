package nau7802

// Register identifies one addressable register of the NAU7802. The conversion
// result spans the three ADCO registers, most significant byte first; the
// device auto-increments its read pointer so a burst read from ADCO_B2
// returns all three.
type Register byte

// Register map (datasheet table 16).
const (
	RegPuCtrl     Register = 0x00 // power-up control and ready/cycle status
	RegCtrl1      Register = 0x01 // gain and LDO voltage selects
	RegCtrl2      Register = 0x02 // calibration control, conversion rate, channel
	RegOcal1B2    Register = 0x03
	RegOcal1B1    Register = 0x04
	RegOcal1B0    Register = 0x05
	RegGcal1B3    Register = 0x06
	RegGcal1B2    Register = 0x07
	RegGcal1B1    Register = 0x08
	RegGcal1B0    Register = 0x09
	RegOcal2B2    Register = 0x0A
	RegOcal2B1    Register = 0x0B
	RegOcal2B0    Register = 0x0C
	RegGcal2B3    Register = 0x0D
	RegGcal2B2    Register = 0x0E
	RegGcal2B1    Register = 0x0F
	RegGcal2B0    Register = 0x10
	RegI2CControl Register = 0x11
	RegAdcoB2     Register = 0x12 // conversion result 23:16
	RegAdcoB1     Register = 0x13 // conversion result 15:8
	RegAdcoB0     Register = 0x14 // conversion result 7:0
	RegAdc        Register = 0x15 // ADC config, shared with OTP 32:24
	RegOtpB1      Register = 0x16
	RegOtpB0      Register = 0x17
	RegPga        Register = 0x1B
	RegPgaPwr     Register = 0x1C
	RegDeviceRev  Register = 0x1F // chip revision in the low nibble
)

// Bit identifies a single named flag within a register. Each register with
// named bits gets its own closed enumeration so a PU_CTRL flag cannot be
// applied to CTRL2 by accident.
type Bit interface {
	Index() uint8
}

// PuCtrlBit enumerates the PU_CTRL (0x00) flags.
type PuCtrlBit uint8

const (
	PuCtrlRR    PuCtrlBit = 0 // register reset, self-holding until cleared
	PuCtrlPUD   PuCtrlBit = 1 // power up digital
	PuCtrlPUA   PuCtrlBit = 2 // power up analog
	PuCtrlPUR   PuCtrlBit = 3 // power-up ready (read only)
	PuCtrlCS    PuCtrlBit = 4 // cycle start
	PuCtrlCR    PuCtrlBit = 5 // cycle ready, conversion available (read only)
	PuCtrlOSCS  PuCtrlBit = 6 // system clock source select
	PuCtrlAVDDS PuCtrlBit = 7 // AVDD sourced from internal LDO
)

func (b PuCtrlBit) Index() uint8 { return uint8(b) }

// Ctrl2Bit enumerates the CTRL2 (0x02) flags.
type Ctrl2Bit uint8

const (
	Ctrl2CALS     Ctrl2Bit = 2 // start calibration, cleared by the device on completion
	Ctrl2CalError Ctrl2Bit = 3 // calibration failed (read only)
	Ctrl2CHS      Ctrl2Bit = 7 // analog input channel select
)

func (b Ctrl2Bit) Index() uint8 { return uint8(b) }

// PgaPwrBit enumerates the PGA_PWR (0x1C) flags.
type PgaPwrBit uint8

const (
	PgaPwrCapEn PgaPwrBit = 7 // enable 330pF decoupling cap on channel 2
)

func (b PgaPwrBit) Index() uint8 { return uint8(b) }

// field describes a contiguous multi-bit configuration value. The mask has the
// field's own bits cleared so ANDing it wipes the field without touching its
// neighbours.
type field struct {
	reg   Register
	mask  byte
	shift uint8
}

var (
	gainField = field{RegCtrl1, 0b1111_1000, 0}
	ldoField  = field{RegCtrl1, 0b1100_0111, 3}
	rateField = field{RegCtrl2, 0b1000_1111, 4}
)

// Gain selects the PGA amplification factor.
type Gain byte

const (
	Gain1 Gain = iota
	Gain2
	Gain4
	Gain8
	Gain16
	Gain32
	Gain64
	Gain128
)

func (g Gain) String() string {
	switch g {
	case Gain1:
		return "x1"
	case Gain2:
		return "x2"
	case Gain4:
		return "x4"
	case Gain8:
		return "x8"
	case Gain16:
		return "x16"
	case Gain32:
		return "x32"
	case Gain64:
		return "x64"
	case Gain128:
		return "x128"
	}
	return "unknown"
}

// LDO selects the internal regulator voltage. Encodings are inverted relative
// to voltage: 0b000 is the highest setting.
type LDO byte

const (
	LDO4V5 LDO = iota
	LDO4V2
	LDO3V9
	LDO3V6
	LDO3V3
	LDO3V0
	LDO2V7
	LDO2V4
)

func (l LDO) String() string {
	switch l {
	case LDO4V5:
		return "4.5V"
	case LDO4V2:
		return "4.2V"
	case LDO3V9:
		return "3.9V"
	case LDO3V6:
		return "3.6V"
	case LDO3V3:
		return "3.3V"
	case LDO3V0:
		return "3.0V"
	case LDO2V7:
		return "2.7V"
	case LDO2V4:
		return "2.4V"
	}
	return "unknown"
}

// SampleRate selects the conversion rate. Encodings 4..6 are reserved by the
// device.
type SampleRate byte

const (
	SPS10  SampleRate = 0b000
	SPS20  SampleRate = 0b001
	SPS40  SampleRate = 0b010
	SPS80  SampleRate = 0b011
	SPS320 SampleRate = 0b111
)

func (r SampleRate) String() string {
	switch r {
	case SPS10:
		return "10SPS"
	case SPS20:
		return "20SPS"
	case SPS40:
		return "40SPS"
	case SPS80:
		return "80SPS"
	case SPS320:
		return "320SPS"
	}
	return "unknown"
}

// CalibrationStatus is the tri-state outcome of a calibration probe, derived
// from the CALS and CAL_ERR bits on every poll.
type CalibrationStatus int

const (
	CalibrationInProgress CalibrationStatus = iota
	CalibrationSuccess
	CalibrationFailed
)
