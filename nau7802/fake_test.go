package nau7802

import (
	"context"
	"fmt"
	"sync"
)

// fakeDevice simulates the chip's register file behind the scale.I2CBus
// interface. Behaviour knobs drive the status bits the bring-up and read
// paths poll for; counters record how often each path touched the bus.
type fakeDevice struct {
	mu      sync.Mutex
	regs    [0x20]byte
	pointer byte

	powerupAck   bool // assert PUR once PUD and PUA are both set
	calFail      bool // raise CAL_ERR when CALS clears
	calBusyPolls int  // CTRL2 polls during which CALS stays set after a start
	readyOnPoll  int  // PU_CTRL poll (1-based, since last mark) on which CR asserts; 0 = never

	calCountdown int
	puCtrlReads  int
	burstReads   int

	writeErr error
	readErr  error
	burstErr error // fails only the 3-byte conversion read
}

// cooperativeFake acks power-up immediately, self-clears calibration on the
// first status poll and always reports a conversion ready.
func cooperativeFake() *fakeDevice {
	return &fakeDevice{powerupAck: true, readyOnPoll: 1}
}

func (f *fakeDevice) WriteToAddr(_ context.Context, address byte, buffer []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	if address != DeviceAddress {
		return fmt.Errorf("unexpected device address %#02x", address)
	}
	switch len(buffer) {
	case 1:
		f.pointer = buffer[0]
	case 2:
		f.store(buffer[0], buffer[1])
	default:
		return fmt.Errorf("unexpected write length %d", len(buffer))
	}
	return nil
}

func (f *fakeDevice) store(reg, val byte) {
	if reg == byte(RegPuCtrl) {
		// PUR and CR are read-only; the chip ignores writes to them.
		val &^= 1<<PuCtrlPUR.Index() | 1<<PuCtrlCR.Index()
	}
	if reg == byte(RegCtrl2) {
		started := val&(1<<Ctrl2CALS.Index()) != 0
		wasRunning := f.regs[reg]&(1<<Ctrl2CALS.Index()) != 0
		if started && !wasRunning {
			f.calCountdown = f.calBusyPolls
		}
	}
	f.regs[reg] = val
}

func (f *fakeDevice) ReadFromAddr(_ context.Context, address byte, buffer []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.readErr != nil {
		return f.readErr
	}
	if address != DeviceAddress {
		return fmt.Errorf("unexpected device address %#02x", address)
	}
	if len(buffer) == 3 && f.pointer == byte(RegAdcoB2) {
		if f.burstErr != nil {
			return f.burstErr
		}
		copy(buffer, f.regs[RegAdcoB2:RegAdcoB0+1])
		f.burstReads++
		return nil
	}
	if len(buffer) != 1 {
		return fmt.Errorf("unexpected read length %d", len(buffer))
	}
	buffer[0] = f.load(f.pointer)
	return nil
}

func (f *fakeDevice) load(reg byte) byte {
	val := f.regs[reg]
	switch Register(reg) {
	case RegPuCtrl:
		f.puCtrlReads++
		powered := val&(1<<PuCtrlPUD.Index()) != 0 && val&(1<<PuCtrlPUA.Index()) != 0
		if f.powerupAck && powered {
			val |= 1 << PuCtrlPUR.Index()
		}
		if f.readyOnPoll > 0 && f.puCtrlReads >= f.readyOnPoll {
			val |= 1 << PuCtrlCR.Index()
		}
	case RegCtrl2:
		if val&(1<<Ctrl2CALS.Index()) != 0 {
			if f.calCountdown > 0 {
				f.calCountdown--
			} else {
				val &^= 1 << Ctrl2CALS.Index()
				if f.calFail {
					val |= 1 << Ctrl2CalError.Index()
				}
				f.regs[reg] = val
			}
		}
	}
	return val
}

func (f *fakeDevice) Release(context.Context) error { return nil }

// mark resets the poll and burst counters, isolating the next operation's bus
// traffic from the bring-up sequence's.
func (f *fakeDevice) mark() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.puCtrlReads = 0
	f.burstReads = 0
}

// setConversion stores a raw 3-byte big-endian result.
func (f *fakeDevice) setConversion(b2, b1, b0 byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.regs[RegAdcoB2] = b2
	f.regs[RegAdcoB1] = b1
	f.regs[RegAdcoB0] = b0
}
